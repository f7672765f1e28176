package order_test

import (
	"testing"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var createdAt = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

func newPendingOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.NewUUID(), "u1", "p1", 3, "", createdAt)
	require.NoError(t, err)
	return o
}

func trackingNumber(t *testing.T) kernel.TrackingNumber {
	t.Helper()
	tn, err := kernel.NewTrackingNumber("TRACK-1767261600000-QWERTY123")
	require.NoError(t, err)
	return tn
}

func TestNewOrder(t *testing.T) {
	t.Run("creates a pending order", func(t *testing.T) {
		id := kernel.NewUUID()
		o, err := order.NewOrder(id, "u1", "p1", 3, " key-1 ", createdAt)

		require.NoError(t, err)
		require.NoError(t, o.Validate())
		assert.True(t, id.IsEqual(o.ID()))
		assert.Equal(t, "u1", o.UserID())
		assert.Equal(t, "p1", o.ProductID())
		assert.Equal(t, 3, o.Quantity().Int())
		assert.Equal(t, "key-1", o.IdempotencyKey())
		assert.Equal(t, order.Pending, o.Status())
		assert.Equal(t, createdAt, o.CreatedAt())
		assert.Nil(t, o.ShippedAt())
		assert.Nil(t, o.DeliveredAt())
		assert.True(t, o.TrackingNumber().IsZero())
	})

	t.Run("quantity boundary", func(t *testing.T) {
		_, err := order.NewOrder(kernel.NewUUID(), "u1", "p1", 0, "", createdAt)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)

		o, err := order.NewOrder(kernel.NewUUID(), "u1", "p1", 1, "", createdAt)
		require.NoError(t, err)
		assert.Equal(t, 1, o.Quantity().Int())
	})

	t.Run("collects every missing field", func(t *testing.T) {
		_, err := order.NewOrder(kernel.UUID{}, "", " ", -2, "", time.Time{})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "user_id")
		assert.Contains(t, err.Error(), "product_id")
		assert.Contains(t, err.Error(), "quantity")
		assert.Contains(t, err.Error(), "created_at")
		assert.True(t, errs.IsValidation(err))
	})
}

func TestOrder_ZeroValueIsNotConstructed(t *testing.T) {
	var o *order.Order
	require.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)
	require.ErrorIs(t, (&order.Order{}).Validate(), order.ErrOrderIsNotConstructed)
}

func TestOrder_ShipThenDeliver(t *testing.T) {
	o := newPendingOrder(t)
	tn := trackingNumber(t)
	shippedAt := createdAt.Add(time.Hour)
	deliveredAt := shippedAt.Add(time.Hour)

	require.NoError(t, o.Ship(tn, shippedAt))
	assert.Equal(t, order.Shipped, o.Status())
	assert.Equal(t, tn, o.TrackingNumber())
	require.NotNil(t, o.ShippedAt())
	assert.Equal(t, shippedAt, *o.ShippedAt())

	require.NoError(t, o.Deliver(deliveredAt))
	assert.Equal(t, order.Delivered, o.Status())
	require.NotNil(t, o.DeliveredAt())
	assert.Equal(t, deliveredAt, *o.DeliveredAt())

	err := o.Ship(tn, deliveredAt)
	require.ErrorIs(t, err, errs.ErrInvalidTransition)
	err = o.Deliver(deliveredAt)
	require.ErrorIs(t, err, errs.ErrInvalidTransition)
	assert.Equal(t, order.Delivered, o.Status())
}

func TestOrder_DeliverWhilePendingLeavesStatusUnchanged(t *testing.T) {
	o := newPendingOrder(t)

	err := o.Deliver(createdAt.Add(time.Hour))

	var transitionErr *errs.InvalidTransitionError
	require.ErrorAs(t, err, &transitionErr)
	assert.Equal(t, "Pending", transitionErr.From)
	assert.Equal(t, "Delivered", transitionErr.To)
	assert.Equal(t, order.Pending, o.Status())
	assert.Nil(t, o.DeliveredAt())
}

func TestOrder_ShipRequiresTrackingNumber(t *testing.T) {
	o := newPendingOrder(t)

	err := o.Ship(kernel.TrackingNumber{}, createdAt)

	require.ErrorIs(t, err, errs.ErrValueIsRequired)
	assert.Equal(t, order.Pending, o.Status())
}

func TestOrder_AdvanceTo(t *testing.T) {
	tn := trackingNumber(t)
	shippedAt := createdAt.Add(time.Hour)
	deliveredAt := shippedAt.Add(time.Hour)

	t.Run("applies a single step", func(t *testing.T) {
		o := newPendingOrder(t)

		changed, err := o.AdvanceTo(order.Shipped, tn, shippedAt, time.Time{})

		require.NoError(t, err)
		assert.True(t, changed)
		assert.Equal(t, order.Shipped, o.Status())
	})

	t.Run("duplicate event is a no-op", func(t *testing.T) {
		o := newPendingOrder(t)
		_, err := o.AdvanceTo(order.Shipped, tn, shippedAt, time.Time{})
		require.NoError(t, err)

		changed, err := o.AdvanceTo(order.Shipped, tn, shippedAt, time.Time{})

		require.NoError(t, err)
		assert.False(t, changed)
	})

	t.Run("late shipped after delivered is a no-op", func(t *testing.T) {
		o := newPendingOrder(t)
		_, err := o.AdvanceTo(order.Delivered, tn, shippedAt, deliveredAt)
		require.NoError(t, err)

		changed, err := o.AdvanceTo(order.Shipped, tn, shippedAt, time.Time{})

		require.NoError(t, err)
		assert.False(t, changed)
		assert.Equal(t, order.Delivered, o.Status())
	})

	t.Run("early delivered catches up through shipped", func(t *testing.T) {
		o := newPendingOrder(t)

		changed, err := o.AdvanceTo(order.Delivered, tn, shippedAt, deliveredAt)

		require.NoError(t, err)
		assert.True(t, changed)
		assert.Equal(t, order.Delivered, o.Status())
		assert.Equal(t, tn, o.TrackingNumber())
		require.NotNil(t, o.ShippedAt())
		require.NotNil(t, o.DeliveredAt())
	})

	t.Run("early delivered without tracking number fails", func(t *testing.T) {
		o := newPendingOrder(t)

		_, err := o.AdvanceTo(order.Delivered, kernel.TrackingNumber{}, time.Time{}, deliveredAt)

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.Equal(t, order.Pending, o.Status())
	})

	t.Run("delivered on a shipped order needs no shipment data", func(t *testing.T) {
		o := newPendingOrder(t)
		require.NoError(t, o.Ship(tn, shippedAt))

		changed, err := o.AdvanceTo(order.Delivered, kernel.TrackingNumber{}, time.Time{}, deliveredAt)

		require.NoError(t, err)
		assert.True(t, changed)
		assert.Equal(t, order.Delivered, o.Status())
		assert.Equal(t, tn, o.TrackingNumber())
		assert.Equal(t, shippedAt, *o.ShippedAt())
	})

	t.Run("rejects a target outside the enum", func(t *testing.T) {
		o := newPendingOrder(t)

		_, err := o.AdvanceTo(order.Unknown, tn, shippedAt, deliveredAt)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestRestoreOrder(t *testing.T) {
	shippedAt := createdAt.Add(time.Hour)
	base := order.Snapshot{
		ID:        kernel.NewUUID(),
		UserID:    "u1",
		ProductID: "p1",
		Quantity:  2,
		Status:    order.Shipped,
		CreatedAt: createdAt,
		ShippedAt: &shippedAt,
	}

	t.Run("round trips through Snapshot", func(t *testing.T) {
		s := base
		s.TrackingNumber = "TRACK-1-ABCDEFGHI"

		o, err := order.RestoreOrder(s)

		require.NoError(t, err)
		assert.Equal(t, s, o.Snapshot())
	})

	t.Run("rejects shipped without tracking number", func(t *testing.T) {
		_, err := order.RestoreOrder(base)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "tracking_number")
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		s := base
		s.Status = order.Unknown
		_, err := order.RestoreOrder(s)
		require.Error(t, err)
	})
}

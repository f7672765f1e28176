package order

import (
	"errors"
	"strings"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// Order is the sales-side record of a customer purchase request. It is the
// aggregate root; all status changes go through Ship, Deliver or AdvanceTo.
type Order struct {
	id             kernel.UUID
	userID         string
	productID      string
	quantity       kernel.Quantity
	idempotencyKey string

	status         Status
	trackingNumber kernel.TrackingNumber
	createdAt      time.Time
	shippedAt      *time.Time
	deliveredAt    *time.Time

	isConstructed bool
}

// Snapshot is the flat state of an Order, used to restore it from storage and
// to render it.
type Snapshot struct {
	ID             kernel.UUID
	UserID         string
	ProductID      string
	Quantity       int
	IdempotencyKey string
	Status         Status
	TrackingNumber string
	CreatedAt      time.Time
	ShippedAt      *time.Time
	DeliveredAt    *time.Time
}

// NewOrder creates a Pending order.
//
// Example:
//
//	o, err := order.NewOrder(kernel.NewUUID(), "u1", "p1", 3, "", time.Now())
//	if err != nil {
//	    // errs.ValueIsRequiredError or errs.ValueIsInvalidError
//	}
func NewOrder(
	id kernel.UUID,
	userID, productID string,
	quantity int,
	idempotencyKey string,
	createdAt time.Time,
) (*Order, error) {
	o := &Order{
		status:         Pending,
		idempotencyKey: strings.TrimSpace(idempotencyKey),
		isConstructed:  true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setUserID(userID),
		o.setProductID(productID),
		o.setQuantity(quantity),
		o.setCreatedAt(createdAt),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder rebuilds an order from persisted state, enforcing the same
// invariants the lifecycle methods maintain.
func RestoreOrder(s Snapshot) (*Order, error) {
	o := &Order{
		status:         s.Status,
		idempotencyKey: s.IdempotencyKey,
		shippedAt:      s.ShippedAt,
		deliveredAt:    s.DeliveredAt,
		isConstructed:  true,
	}

	var trackingErr error
	if s.TrackingNumber != "" {
		o.trackingNumber, trackingErr = kernel.NewTrackingNumber(s.TrackingNumber)
	}

	if err := errors.Join(
		o.setID(s.ID),
		o.setUserID(s.UserID),
		o.setProductID(s.ProductID),
		o.setQuantity(s.Quantity),
		o.setCreatedAt(s.CreatedAt),
		s.Status.Validate(),
		trackingErr,
	); err != nil {
		return nil, err
	}

	if err := kernel.ValidateFulfillment(s.Status.Stage(), o.createdAt, o.trackingNumber, o.shippedAt, o.deliveredAt); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the Order was created through NewOrder or RestoreOrder.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

func (o *Order) ID() kernel.UUID                       { return o.id }
func (o *Order) UserID() string                        { return o.userID }
func (o *Order) ProductID() string                     { return o.productID }
func (o *Order) Quantity() kernel.Quantity             { return o.quantity }
func (o *Order) IdempotencyKey() string                { return o.idempotencyKey }
func (o *Order) Status() Status                        { return o.status }
func (o *Order) TrackingNumber() kernel.TrackingNumber { return o.trackingNumber }
func (o *Order) CreatedAt() time.Time                  { return o.createdAt }
func (o *Order) ShippedAt() *time.Time                 { return o.shippedAt }
func (o *Order) DeliveredAt() *time.Time               { return o.deliveredAt }

// Snapshot returns a copy of the order state.
func (o *Order) Snapshot() Snapshot {
	return Snapshot{
		ID:             o.id,
		UserID:         o.userID,
		ProductID:      o.productID,
		Quantity:       o.quantity.Int(),
		IdempotencyKey: o.idempotencyKey,
		Status:         o.status,
		TrackingNumber: o.trackingNumber.String(),
		CreatedAt:      o.createdAt,
		ShippedAt:      copyTime(o.shippedAt),
		DeliveredAt:    copyTime(o.deliveredAt),
	}
}

// Ship moves a Pending order to Shipped and records the tracking number.
func (o *Order) Ship(trackingNumber kernel.TrackingNumber, at time.Time) error {
	if err := trackingNumber.Validate(); err != nil {
		return err
	}

	newStatus, err := o.status.Ship()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.trackingNumber = trackingNumber
	o.shippedAt = &at
	return nil
}

// Deliver moves a Shipped order to Delivered.
func (o *Order) Deliver(at time.Time) error {
	newStatus, err := o.status.Deliver()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.deliveredAt = &at
	return nil
}

// AdvanceTo brings the order to target, applying every intermediate stage, so
// that status events consumed out of order or more than once converge.
//
// Returns changed=false with no error when target was already reached. An
// early Delivered on a Pending order also ships it, which needs the tracking
// number carried by the event; without one it is an InvalidTransitionError.
// Once the order is Shipped no shipment data is needed.
func (o *Order) AdvanceTo(
	target Status,
	trackingNumber kernel.TrackingNumber,
	shippedAt, deliveredAt time.Time,
) (bool, error) {
	if err := target.Validate(); err != nil {
		return false, err
	}
	if o.status.Reached(target) {
		return false, nil
	}

	if o.status == Pending {
		if target == Delivered && trackingNumber.IsZero() {
			return false, errs.NewInvalidTransitionError("order", o.status, target)
		}
		if err := o.Ship(trackingNumber, shippedAt); err != nil {
			return false, err
		}
	}
	if target == Delivered {
		if err := o.Deliver(deliveredAt); err != nil {
			return false, err
		}
	}

	if o.status != target {
		return false, errs.NewInvalidTransitionError("order", o.status, target)
	}
	return true, nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setUserID(userID string) error {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return errs.NewValueIsRequiredError("user_id")
	}
	o.userID = userID
	return nil
}

func (o *Order) setProductID(productID string) error {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return errs.NewValueIsRequiredError("product_id")
	}
	o.productID = productID
	return nil
}

func (o *Order) setQuantity(quantity int) error {
	q, err := kernel.NewQuantity(quantity)
	if err != nil {
		return err
	}
	o.quantity = q
	return nil
}

func (o *Order) setCreatedAt(createdAt time.Time) error {
	if createdAt.IsZero() {
		return errs.NewValueIsRequiredError("created_at")
	}
	o.createdAt = createdAt
	return nil
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

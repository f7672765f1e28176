package delivery

import (
	"errors"
	"strings"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"
)

var ErrDeliveryIsNotConstructed = errors.New("Delivery must be created via NewDelivery constructor")

// Delivery tracks the shipment of one order. user, product and quantity are
// copied from the originating OrderCreated event and never re-validated
// against inventory.
type Delivery struct {
	id        kernel.UUID
	orderID   kernel.UUID
	userID    string
	productID string
	quantity  kernel.Quantity

	status         Status
	trackingNumber kernel.TrackingNumber
	createdAt      time.Time
	shippedAt      *time.Time
	deliveredAt    *time.Time

	isConstructed bool
}

// Snapshot is the flat state of a Delivery.
type Snapshot struct {
	ID             kernel.UUID
	OrderID        kernel.UUID
	UserID         string
	ProductID      string
	Quantity       int
	Status         Status
	TrackingNumber string
	CreatedAt      time.Time
	ShippedAt      *time.Time
	DeliveredAt    *time.Time
}

// NewDelivery creates a Processing delivery for orderID.
func NewDelivery(
	id, orderID kernel.UUID,
	userID, productID string,
	quantity int,
	createdAt time.Time,
) (*Delivery, error) {
	d := &Delivery{
		status:        Processing,
		isConstructed: true,
	}

	if err := errors.Join(
		d.setID(id),
		d.setOrderID(orderID),
		d.setUserID(userID),
		d.setProductID(productID),
		d.setQuantity(quantity),
		d.setCreatedAt(createdAt),
	); err != nil {
		return nil, err
	}

	return d, nil
}

// RestoreDelivery rebuilds a delivery from persisted state.
func RestoreDelivery(s Snapshot) (*Delivery, error) {
	d := &Delivery{
		status:        s.Status,
		shippedAt:     s.ShippedAt,
		deliveredAt:   s.DeliveredAt,
		isConstructed: true,
	}

	var trackingErr error
	if s.TrackingNumber != "" {
		d.trackingNumber, trackingErr = kernel.NewTrackingNumber(s.TrackingNumber)
	}

	if err := errors.Join(
		d.setID(s.ID),
		d.setOrderID(s.OrderID),
		d.setUserID(s.UserID),
		d.setProductID(s.ProductID),
		d.setQuantity(s.Quantity),
		d.setCreatedAt(s.CreatedAt),
		s.Status.Validate(),
		trackingErr,
	); err != nil {
		return nil, err
	}

	if err := kernel.ValidateFulfillment(s.Status.Stage(), d.createdAt, d.trackingNumber, d.shippedAt, d.deliveredAt); err != nil {
		return nil, err
	}

	return d, nil
}

func (d *Delivery) Validate() error {
	if d == nil || !d.isConstructed {
		return ErrDeliveryIsNotConstructed
	}
	return nil
}

func (d *Delivery) ID() kernel.UUID                       { return d.id }
func (d *Delivery) OrderID() kernel.UUID                  { return d.orderID }
func (d *Delivery) UserID() string                        { return d.userID }
func (d *Delivery) ProductID() string                     { return d.productID }
func (d *Delivery) Quantity() kernel.Quantity             { return d.quantity }
func (d *Delivery) Status() Status                        { return d.status }
func (d *Delivery) TrackingNumber() kernel.TrackingNumber { return d.trackingNumber }
func (d *Delivery) CreatedAt() time.Time                  { return d.createdAt }
func (d *Delivery) ShippedAt() *time.Time                 { return d.shippedAt }
func (d *Delivery) DeliveredAt() *time.Time               { return d.deliveredAt }

func (d *Delivery) Snapshot() Snapshot {
	return Snapshot{
		ID:             d.id,
		OrderID:        d.orderID,
		UserID:         d.userID,
		ProductID:      d.productID,
		Quantity:       d.quantity.Int(),
		Status:         d.status,
		TrackingNumber: d.trackingNumber.String(),
		CreatedAt:      d.createdAt,
		ShippedAt:      copyTime(d.shippedAt),
		DeliveredAt:    copyTime(d.deliveredAt),
	}
}

// Ship moves a Processing delivery to Shipped.
func (d *Delivery) Ship(trackingNumber kernel.TrackingNumber, at time.Time) error {
	if err := trackingNumber.Validate(); err != nil {
		return err
	}

	newStatus, err := d.status.Ship()
	if err != nil {
		return err
	}

	d.status = newStatus
	d.trackingNumber = trackingNumber
	d.shippedAt = &at
	return nil
}

// Deliver moves a Shipped delivery to Delivered.
func (d *Delivery) Deliver(at time.Time) error {
	newStatus, err := d.status.Deliver()
	if err != nil {
		return err
	}

	d.status = newStatus
	d.deliveredAt = &at
	return nil
}

func (d *Delivery) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	d.id = id
	return nil
}

func (d *Delivery) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("order_id", err)
	}
	d.orderID = orderID
	return nil
}

func (d *Delivery) setUserID(userID string) error {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return errs.NewValueIsRequiredError("user_id")
	}
	d.userID = userID
	return nil
}

func (d *Delivery) setProductID(productID string) error {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return errs.NewValueIsRequiredError("product_id")
	}
	d.productID = productID
	return nil
}

func (d *Delivery) setQuantity(quantity int) error {
	q, err := kernel.NewQuantity(quantity)
	if err != nil {
		return err
	}
	d.quantity = q
	return nil
}

func (d *Delivery) setCreatedAt(createdAt time.Time) error {
	if createdAt.IsZero() {
		return errs.NewValueIsRequiredError("created_at")
	}
	d.createdAt = createdAt
	return nil
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

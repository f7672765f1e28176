package commands

import (
	"errors"
	"strings"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand is a customer's request to buy quantity units of a product.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand("u1", "p1", 3, r.Header.Get("Idempotency-Key"))
//	if err != nil {
//	    return err // errs.ValueIsRequiredError / errs.ValueIsInvalidError
//	}
//	result, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	userID         string
	productID      string
	quantity       kernel.Quantity
	idempotencyKey string

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates every field and reports all problems at once.
// idempotencyKey may be empty.
func NewCreateOrderCommand(userID, productID string, quantity int, idempotencyKey string) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		idempotencyKey: strings.TrimSpace(idempotencyKey),
		guard:          guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setUserID(userID),
		cmd.setProductID(productID),
		cmd.setQuantity(quantity),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) UserID() string            { return c.userID }
func (c CreateOrderCommand) ProductID() string         { return c.productID }
func (c CreateOrderCommand) Quantity() kernel.Quantity { return c.quantity }
func (c CreateOrderCommand) IdempotencyKey() string    { return c.idempotencyKey }

func (c *CreateOrderCommand) setUserID(userID string) error {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return errs.NewValueIsRequiredError("user_id")
	}
	c.userID = userID
	return nil
}

func (c *CreateOrderCommand) setProductID(productID string) error {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return errs.NewValueIsRequiredError("product_id")
	}
	c.productID = productID
	return nil
}

func (c *CreateOrderCommand) setQuantity(quantity int) error {
	q, err := kernel.NewQuantity(quantity)
	if err != nil {
		return err
	}
	c.quantity = q
	return nil
}

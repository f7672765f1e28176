package ports

import (
	"context"

	"orderflow/internal/core/domain/model/kernel"
)

// ProductCatalog answers stock questions. It never reserves or decrements stock.
type ProductCatalog interface {
	// IsAvailable reports whether productID exists with at least quantity units.
	IsAvailable(ctx context.Context, productID string, quantity kernel.Quantity) (bool, error)
}

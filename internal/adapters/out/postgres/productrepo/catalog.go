// Package productrepo answers product availability from the products table.
package productrepo

import (
	"context"

	"orderflow/internal/core/domain/model/kernel"

	"gorm.io/gorm"
)

// ProductDTO is the row layout of the products table. The table is owned by
// inventory tooling; this package only reads it.
type ProductDTO struct {
	ProductID string `gorm:"primaryKey"`
	Name      string
	Quantity  int `gorm:"not null"`
}

func (ProductDTO) TableName() string {
	return "products"
}

// GormProductCatalog implements ports.ProductCatalog.
type GormProductCatalog struct {
	db *gorm.DB
}

func NewGormProductCatalog(db *gorm.DB) *GormProductCatalog {
	return &GormProductCatalog{db: db}
}

func (c *GormProductCatalog) IsAvailable(ctx context.Context, productID string, quantity kernel.Quantity) (bool, error) {
	var count int64
	err := c.db.WithContext(ctx).Model(&ProductDTO{}).
		Where("product_id = ? AND quantity >= ?", productID, quantity.Int()).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

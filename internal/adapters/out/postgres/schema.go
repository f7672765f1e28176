package postgres

import (
	"fmt"

	"orderflow/internal/adapters/out/postgres/deliveryrepo"
	"orderflow/internal/adapters/out/postgres/eventlogrepo"
	"orderflow/internal/adapters/out/postgres/orderrepo"
	"orderflow/internal/adapters/out/postgres/productrepo"

	"gorm.io/gorm"
)

// MigrateSales creates or updates the tables owned by the sales service.
func MigrateSales(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&productrepo.ProductDTO{},
		&eventlogrepo.OrderEventDTO{},
	); err != nil {
		return fmt.Errorf("migrate sales schema: %w", err)
	}
	return nil
}

// MigrateDelivery creates or updates the tables owned by the delivery service.
func MigrateDelivery(db *gorm.DB) error {
	if err := db.AutoMigrate(&deliveryrepo.DeliveryDTO{}); err != nil {
		return fmt.Errorf("migrate delivery schema: %w", err)
	}
	return nil
}

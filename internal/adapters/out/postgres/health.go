package postgres

import (
	"context"

	"gorm.io/gorm"
)

// StoreProbe checks store reachability for health endpoints and jobs.
type StoreProbe struct {
	db *gorm.DB
}

func NewStoreProbe(db *gorm.DB) *StoreProbe {
	return &StoreProbe{db: db}
}

// Ping round-trips to the database on a pooled connection.
func (p *StoreProbe) Ping(ctx context.Context) error {
	sqlDB, err := p.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

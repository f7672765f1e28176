// Package postgres provides the GORM-backed unit of work, schema migration and
// store health probe shared by the sales and delivery services.
//
// Usage:
//
//	uow := postgres.NewGormUnitOfWorkFactory(db).Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer uow.Rollback(ctx)
//
//	if err := uow.DeliveryRepository().UpdateStatus(ctx, d, delivery.Processing); err != nil {
//	    return err
//	}
//
//	return uow.Commit(ctx)
//
// Each UnitOfWork instance owns at most one transaction and must not be shared
// between goroutines.
package postgres

import (
	"context"

	"orderflow/internal/adapters/out/postgres/deliveryrepo"
	"orderflow/internal/adapters/out/postgres/eventlogrepo"
	"orderflow/internal/adapters/out/postgres/orderrepo"
	"orderflow/internal/core/domain/model/delivery"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/ports"
	"orderflow/internal/pkg/metrics"

	"gorm.io/gorm"
)

// trackedAggregate is an aggregate written during the unit of work.
type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate any
}

// GormUnitOfWorkFactory creates UnitOfWork instances sharing one *gorm.DB.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork coordinates one database transaction. Aggregates written
// through its repositories are tracked and, once the commit succeeds, counted
// in orderflow_status_transitions_total.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	trackedAggregates []trackedAggregate
}

// Begin is a no-op when a transaction is already open.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		err := uow.tx.Error
		uow.tx = nil
		return err
	}

	return nil
}

func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	if err != nil {
		uow.trackedAggregates = uow.trackedAggregates[:0]
		return err
	}

	uow.recordTransitions()
	return nil
}

// Rollback returns gorm.ErrInvalidTransaction after Commit, so it is safe to defer.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	uow.trackedAggregates = uow.trackedAggregates[:0]
	return err
}

func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) DeliveryRepository() ports.DeliveryRepository {
	return deliveryrepo.NewGormDeliveryRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) OrderEventLog() ports.OrderEventLog {
	return eventlogrepo.NewGormOrderEventLog(uow.conn())
}

// TrackAggregate is called by repositories after a successful write.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate any) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})

	if uow.tx == nil {
		uow.recordTransitions()
	}
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

func (uow *GormUnitOfWork) recordTransitions() {
	for _, tracked := range uow.trackedAggregates {
		switch a := tracked.Aggregate.(type) {
		case *order.Order:
			metrics.StatusTransitionsTotal.WithLabelValues("order", a.Status().String()).Inc()
		case *delivery.Delivery:
			metrics.StatusTransitionsTotal.WithLabelValues("delivery", a.Status().String()).Inc()
		}
	}
	uow.trackedAggregates = uow.trackedAggregates[:0]
}

package deliveryrepo

import (
	"context"
	"errors"

	"orderflow/internal/core/domain/model/delivery"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormDeliveryRepository implements ports.DeliveryRepository using GORM.
type GormDeliveryRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormDeliveryRepository(db *gorm.DB, tracker aggregateTracker) *GormDeliveryRepository {
	return &GormDeliveryRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add returns errs.ConflictError when the id or the order_id already exists.
func (r *GormDeliveryRepository) Add(ctx context.Context, aggregate *delivery.Delivery) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewConflictErrorWithCause("delivery", aggregate.OrderID().String(), err)
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormDeliveryRepository) Get(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error) {
	return r.first(ctx, "id", id)
}

func (r *GormDeliveryRepository) GetByOrderID(ctx context.Context, orderID kernel.UUID) (*delivery.Delivery, error) {
	return r.first(ctx, "order_id", orderID)
}

func (r *GormDeliveryRepository) first(ctx context.Context, column string, id kernel.UUID) (*delivery.Delivery, error) {
	if err := id.Validate(); err != nil {
		return nil, errs.NewObjectNotFoundError("delivery", id.String())
	}

	var dto DeliveryDTO
	if err := r.db.WithContext(ctx).First(&dto, column+" = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("delivery", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormDeliveryRepository) List(ctx context.Context, status *delivery.Status) ([]*delivery.Delivery, error) {
	query := r.db.WithContext(ctx).Order("created_at DESC")
	if status != nil {
		query = query.Where("status = ?", status.String())
	}

	var dtos []DeliveryDTO
	if err := query.Find(&dtos).Error; err != nil {
		return nil, err
	}

	deliveries := make([]*delivery.Delivery, 0, len(dtos))
	for _, dto := range dtos {
		d, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		deliveries = append(deliveries, d)
	}

	return deliveries, nil
}

func (r *GormDeliveryRepository) UpdateStatus(
	ctx context.Context,
	aggregate *delivery.Delivery,
	expected delivery.Status,
) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&DeliveryDTO{}).
		Where("id = ? AND status = ?", dto.ID, expected.String()).
		Updates(map[string]any{
			"status":          dto.Status,
			"tracking_number": dto.TrackingNumber,
			"shipped_at":      dto.ShippedAt,
			"delivered_at":    dto.DeliveredAt,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&DeliveryDTO{}).Where("id = ?", dto.ID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return errs.NewObjectNotFoundError("delivery", aggregate.ID().String())
		}
		return errs.NewConflictError("delivery", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

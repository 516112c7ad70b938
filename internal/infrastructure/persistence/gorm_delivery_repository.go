package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/drinkbox/storefront/internal/domain/deliveries"
	"github.com/drinkbox/storefront/internal/infrastructure/persistence/models"
	"github.com/drinkbox/storefront/internal/pkg/logger"
	"github.com/drinkbox/storefront/internal/pkg/validators"

	"gorm.io/gorm"
)

type gormDeliveryRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormDeliveryRepository creates a new GORM-based DeliveryRepository implementation
func NewGormDeliveryRepository(db *gorm.DB, logger logger.Logger) (deliveries.DeliveryRepository, error) {
	return &gormDeliveryRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormDeliveryRepository) CreateBatch(ctx context.Context, list []*deliveries.Delivery) error {
	if len(list) == 0 {
		return nil
	}

	modelList := make([]*models.DeliveryModel, len(list))
	for i, d := range list {
		modelList[i] = &models.DeliveryModel{}
		modelList[i].FromDomain(d)
	}

	if err := dbFromContext(ctx, r.db).Create(&modelList).Error; err != nil {
		return fmt.Errorf("failed to create deliveries: %w", err)
	}

	r.logger.Info("Scheduled ", len(list), " deliveries for order ", list[0].OrderID)
	return nil
}

func (r *gormDeliveryRepository) GetByID(ctx context.Context, deliveryID string) (*deliveries.Delivery, error) {
	var model models.DeliveryModel
	if err := dbFromContext(ctx, r.db).Where("id = ?", deliveryID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", deliveries.ErrNotFound, deliveryID)
		}
		return nil, fmt.Errorf("failed to fetch delivery: %w", err)
	}
	return model.ToDomain(), nil
}

func (r *gormDeliveryRepository) ListByOrder(ctx context.Context, orderID string) ([]*deliveries.Delivery, error) {
	return r.List(ctx, &deliveries.DeliveryQuery{OrderID: orderID})
}

func (r *gormDeliveryRepository) List(ctx context.Context, query *deliveries.DeliveryQuery) ([]*deliveries.Delivery, error) {
	if err := validators.Struct(query); err != nil {
		return nil, fmt.Errorf("invalid query parameters: %w", err)
	}

	var modelList []*models.DeliveryModel
	dbQuery := dbFromContext(ctx, r.db).Model(&models.DeliveryModel{})

	if query.OrderID != "" {
		dbQuery = dbQuery.Where("order_id = ?", query.OrderID)
	}
	if query.Status != "" {
		dbQuery = dbQuery.Where("status = ?", string(query.Status))
	}
	if query.From != nil {
		dbQuery = dbQuery.Where("scheduled_date >= ?", *query.From)
	}
	if query.To != nil {
		dbQuery = dbQuery.Where("scheduled_date < ?", *query.To)
	}
	dbQuery = paginate(dbQuery.Order("scheduled_date asc").Order("sequence asc"), query.Limit, query.Offset)

	if err := dbQuery.Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch deliveries: %w", err)
	}

	domainList := make([]*deliveries.Delivery, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}
	return domainList, nil
}

func (r *gormDeliveryRepository) UpdateByID(ctx context.Context, delivery *deliveries.Delivery) error {
	model := &models.DeliveryModel{}
	model.FromDomain(delivery)

	res := dbFromContext(ctx, r.db).Model(&models.DeliveryModel{}).Where("id = ?", delivery.ID).
		Updates(map[string]interface{}{
			"scheduled_date":    model.ScheduledDate,
			"status":            model.Status,
			"delivered_at":      model.DeliveredAt,
			"date_time_updated": model.DateTimeUpdated,
		})
	if res.Error != nil {
		return fmt.Errorf("failed to update delivery: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: %s", deliveries.ErrNotFound, delivery.ID)
	}

	r.logger.Info("Updated delivery ", delivery.ID, " to status ", delivery.Status)
	return nil
}

func (r *gormDeliveryRepository) CancelScheduled(ctx context.Context, orderID string) (int, error) {
	res := dbFromContext(ctx, r.db).Model(&models.DeliveryModel{}).
		Where("order_id = ? AND status = ?", orderID, string(deliveries.StatusScheduled)).
		Update("status", string(deliveries.StatusCancelled))
	if res.Error != nil {
		return 0, fmt.Errorf("failed to cancel deliveries: %w", res.Error)
	}

	r.logger.Info("Cancelled ", res.RowsAffected, " deliveries of order ", orderID)
	return int(res.RowsAffected), nil
}

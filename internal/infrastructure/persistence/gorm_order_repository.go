package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/drinkbox/storefront/internal/domain/orders"
	"github.com/drinkbox/storefront/internal/infrastructure/persistence/models"
	"github.com/drinkbox/storefront/internal/pkg/logger"
	"github.com/drinkbox/storefront/internal/pkg/validators"

	"gorm.io/gorm"
)

type gormOrderRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormOrderRepository creates a new GORM-based OrderRepository implementation
func NewGormOrderRepository(db *gorm.DB, logger logger.Logger) (orders.OrderRepository, error) {
	return &gormOrderRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormOrderRepository) Create(ctx context.Context, order *orders.Order) error {
	if err := order.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.OrderModel{}
	model.FromDomain(order)

	if err := dbFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}

	r.logger.Info("Created order ", order.Number, " with id ", order.ID)
	return nil
}

func (r *gormOrderRepository) GetByID(ctx context.Context, orderID string) (*orders.Order, error) {
	return r.getBy(ctx, "id = ?", orderID)
}

func (r *gormOrderRepository) GetByNumber(ctx context.Context, number string) (*orders.Order, error) {
	return r.getBy(ctx, "number = ?", number)
}

func (r *gormOrderRepository) GetByProviderRef(ctx context.Context, ref string) (*orders.Order, error) {
	if ref == "" {
		return nil, fmt.Errorf("%w: empty provider reference", orders.ErrNotFound)
	}
	return r.getBy(ctx, "payment_provider_ref = ?", ref)
}

func (r *gormOrderRepository) getBy(ctx context.Context, cond, value string) (*orders.Order, error) {
	var model models.OrderModel
	err := dbFromContext(ctx, r.db).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position asc") }).
		Where(cond, value).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", orders.ErrNotFound, value)
		}
		return nil, fmt.Errorf("failed to fetch order: %w", err)
	}
	return model.ToDomain(), nil
}

func (r *gormOrderRepository) List(ctx context.Context, query *orders.OrderQuery) ([]*orders.Order, error) {
	if err := validators.Struct(query); err != nil {
		return nil, fmt.Errorf("invalid query parameters: %w", err)
	}

	var modelList []*models.OrderModel
	dbQuery := dbFromContext(ctx, r.db).Model(&models.OrderModel{}).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position asc") })

	if query.Status != "" {
		dbQuery = dbQuery.Where("status = ?", string(query.Status))
	}
	if query.Kind != "" {
		dbQuery = dbQuery.Where("kind = ?", string(query.Kind))
	}
	if query.CustomerID != "" {
		dbQuery = dbQuery.Where("customer_id = ?", query.CustomerID)
	}
	if query.From != nil {
		dbQuery = dbQuery.Where("date_time_created >= ?", *query.From)
	}
	if query.To != nil {
		dbQuery = dbQuery.Where("date_time_created < ?", *query.To)
	}
	dbQuery = paginate(dbQuery.Order("date_time_created desc"), query.Limit, query.Offset)

	if err := dbQuery.Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch orders: %w", err)
	}

	domainList := make([]*orders.Order, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}
	return domainList, nil
}

func (r *gormOrderRepository) UpdateByID(ctx context.Context, order *orders.Order) error {
	res := dbFromContext(ctx, r.db).Model(&models.OrderModel{}).Where("id = ?", order.ID).
		Updates(map[string]interface{}{
			"status":               string(order.Status),
			"payment_provider_ref": order.PaymentProviderRef,
			"date_time_updated":    order.DateTimeUpdated,
		})
	if res.Error != nil {
		return fmt.Errorf("failed to update order: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: %s", orders.ErrNotFound, order.ID)
	}

	r.logger.Info("Updated order ", order.Number, " to status ", order.Status)
	return nil
}

package persistence

import (
	"context"
	"fmt"

	"github.com/drinkbox/storefront/internal/domain/payments"
	"github.com/drinkbox/storefront/internal/infrastructure/persistence/models"
	"github.com/drinkbox/storefront/internal/pkg/logger"

	"gorm.io/gorm"
)

type gormPaymentEventRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormPaymentEventRepository creates a new GORM-based PaymentEventRepository implementation
func NewGormPaymentEventRepository(db *gorm.DB, logger logger.Logger) (payments.PaymentEventRepository, error) {
	return &gormPaymentEventRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormPaymentEventRepository) Create(ctx context.Context, event *payments.PaymentEvent) error {
	model := &models.PaymentEventModel{}
	model.FromDomain(event)

	if err := dbFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to record payment event: %w", err)
	}

	r.logger.Info("Recorded ", event.Provider, " event ", event.ProviderStatus, " for order ", event.OrderID)
	return nil
}

func (r *gormPaymentEventRepository) FindOrderID(ctx context.Context, provider payments.Provider, ref string) (string, error) {
	var model models.PaymentEventModel
	err := dbFromContext(ctx, r.db).
		Where("provider = ? AND provider_ref = ?", string(provider), ref).
		Order("date_time_created asc").
		Limit(1).Find(&model).Error
	if err != nil {
		return "", fmt.Errorf("failed to look up payment reference: %w", err)
	}
	if model.ID == "" {
		return "", fmt.Errorf("%w: %s reference %s", payments.ErrUnknownPayment, provider, ref)
	}
	return model.OrderID, nil
}

func (r *gormPaymentEventRepository) ListByOrder(ctx context.Context, orderID string) ([]*payments.PaymentEvent, error) {
	var modelList []*models.PaymentEventModel
	err := dbFromContext(ctx, r.db).Where("order_id = ?", orderID).
		Order("date_time_created asc").Find(&modelList).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch payment events: %w", err)
	}

	domainList := make([]*payments.PaymentEvent, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}
	return domainList, nil
}

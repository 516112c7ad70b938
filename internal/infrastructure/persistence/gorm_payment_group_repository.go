package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/drinkbox/storefront/internal/domain/billing"
	"github.com/drinkbox/storefront/internal/infrastructure/persistence/models"
	"github.com/drinkbox/storefront/internal/pkg/logger"
	"github.com/drinkbox/storefront/internal/pkg/validators"

	"gorm.io/gorm"
)

type gormPaymentGroupRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormPaymentGroupRepository creates a new GORM-based PaymentGroupRepository implementation
func NewGormPaymentGroupRepository(db *gorm.DB, logger logger.Logger) (billing.PaymentGroupRepository, error) {
	return &gormPaymentGroupRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormPaymentGroupRepository) CreateBatch(ctx context.Context, groups []*billing.PaymentGroup) error {
	if len(groups) == 0 {
		return nil
	}

	modelList := make([]*models.PaymentGroupModel, len(groups))
	for i, g := range groups {
		modelList[i] = &models.PaymentGroupModel{}
		modelList[i].FromDomain(g)
	}

	if err := dbFromContext(ctx, r.db).Create(&modelList).Error; err != nil {
		return fmt.Errorf("failed to create payment groups: %w", err)
	}

	r.logger.Info("Created ", len(groups), " payment groups for order ", groups[0].OrderID)
	return nil
}

func (r *gormPaymentGroupRepository) GetByID(ctx context.Context, groupID string) (*billing.PaymentGroup, error) {
	var model models.PaymentGroupModel
	if err := dbFromContext(ctx, r.db).Where("id = ?", groupID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", billing.ErrNotFound, groupID)
		}
		return nil, fmt.Errorf("failed to fetch payment group: %w", err)
	}
	return model.ToDomain(), nil
}

func (r *gormPaymentGroupRepository) ListByOrder(ctx context.Context, orderID string) ([]*billing.PaymentGroup, error) {
	return r.List(ctx, &billing.PaymentGroupQuery{OrderID: orderID, IncludeVoided: true})
}

func (r *gormPaymentGroupRepository) List(ctx context.Context, query *billing.PaymentGroupQuery) ([]*billing.PaymentGroup, error) {
	if err := validators.Struct(query); err != nil {
		return nil, fmt.Errorf("invalid query parameters: %w", err)
	}

	var modelList []*models.PaymentGroupModel
	dbQuery := dbFromContext(ctx, r.db).Model(&models.PaymentGroupModel{})

	if query.OrderID != "" {
		dbQuery = dbQuery.Where("order_id = ?", query.OrderID)
	}
	if query.DueBefore != nil {
		dbQuery = dbQuery.Where("due_date < ?", *query.DueBefore)
	}
	if query.BillCreated != nil {
		dbQuery = dbQuery.Where("bill_created = ?", *query.BillCreated)
	}
	if query.BillSent != nil {
		dbQuery = dbQuery.Where("bill_sent = ?", *query.BillSent)
	}
	if query.Paid != nil {
		dbQuery = dbQuery.Where("paid = ?", *query.Paid)
	}
	if !query.IncludeVoided {
		dbQuery = dbQuery.Where("voided = ?", false)
	}
	dbQuery = paginate(dbQuery.Order("due_date asc").Order("sequence asc"), query.Limit, query.Offset)

	if err := dbQuery.Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch payment groups: %w", err)
	}

	domainList := make([]*billing.PaymentGroup, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}
	return domainList, nil
}

func (r *gormPaymentGroupRepository) UpdateByID(ctx context.Context, group *billing.PaymentGroup) error {
	res := dbFromContext(ctx, r.db).Model(&models.PaymentGroupModel{}).Where("id = ?", group.ID).
		Updates(map[string]interface{}{
			"bill_created":    group.BillCreated,
			"bill_created_at": group.BillCreatedAt,
			"bill_sent":       group.BillSent,
			"bill_sent_at":    group.BillSentAt,
			"paid":            group.Paid,
			"paid_at":         group.PaidAt,
			"voided":          group.Voided,
			"voided_at":       group.VoidedAt,
		})
	if res.Error != nil {
		return fmt.Errorf("failed to update payment group: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: %s", billing.ErrNotFound, group.ID)
	}

	r.logger.Info("Updated payment group ", group.ID, " of order ", group.OrderID)
	return nil
}

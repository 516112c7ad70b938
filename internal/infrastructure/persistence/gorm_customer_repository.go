package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/drinkbox/storefront/internal/domain/customers"
	"github.com/drinkbox/storefront/internal/infrastructure/persistence/models"
	"github.com/drinkbox/storefront/internal/pkg/logger"

	"gorm.io/gorm"
)

type gormCustomerRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormCustomerRepository creates a new GORM-based CustomerRepository implementation
func NewGormCustomerRepository(db *gorm.DB, logger logger.Logger) (customers.CustomerRepository, error) {
	return &gormCustomerRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormCustomerRepository) Create(ctx context.Context, customer *customers.Customer) error {
	if err := customer.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.CustomerModel{}
	model.FromDomain(customer)

	if err := dbFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create customer: %w", err)
	}

	r.logger.Info("Created customer with id ", customer.ID)
	return nil
}

func (r *gormCustomerRepository) GetByID(ctx context.Context, customerID string) (*customers.Customer, error) {
	return r.getBy(ctx, "id = ?", customerID)
}

func (r *gormCustomerRepository) GetByEmail(ctx context.Context, email string) (*customers.Customer, error) {
	return r.getBy(ctx, "email = ?", email)
}

func (r *gormCustomerRepository) getBy(ctx context.Context, cond, value string) (*customers.Customer, error) {
	var model models.CustomerModel
	if err := dbFromContext(ctx, r.db).Where(cond, value).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", customers.ErrNotFound, value)
		}
		return nil, fmt.Errorf("failed to fetch customer: %w", err)
	}
	return model.ToDomain(), nil
}

func (r *gormCustomerRepository) List(ctx context.Context, query *customers.CustomerQuery) ([]*customers.Customer, error) {
	if err := query.Validate(); err != nil {
		return nil, fmt.Errorf("invalid query parameters: %w", err)
	}

	var modelList []*models.CustomerModel
	dbQuery := dbFromContext(ctx, r.db).Model(&models.CustomerModel{})
	if query.Email != "" {
		dbQuery = dbQuery.Where("email LIKE ?", "%"+query.Email+"%")
	}
	dbQuery = paginate(dbQuery.Order("date_time_created desc"), query.Limit, query.Offset)

	if err := dbQuery.Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch customers: %w", err)
	}

	domainList := make([]*customers.Customer, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}
	return domainList, nil
}

func (r *gormCustomerRepository) UpdateByID(ctx context.Context, customer *customers.Customer) error {
	if err := customer.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.CustomerModel{}
	model.FromDomain(customer)

	if err := dbFromContext(ctx, r.db).Save(model).Error; err != nil {
		return fmt.Errorf("failed to update customer: %w", err)
	}

	r.logger.Info("Updated customer with id ", customer.ID)
	return nil
}

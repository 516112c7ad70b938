package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/drinkbox/storefront/internal/domain/customers"
	"github.com/drinkbox/storefront/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
)

// customerService implements the CustomerService interface
type customerService struct {
	customerRepo customers.CustomerRepository
	clock        clockwork.Clock
	logger       logger.Logger
}

// NewCustomerService creates a new instance of CustomerService
func NewCustomerService(customerRepo customers.CustomerRepository, clock clockwork.Clock, logger logger.Logger) (customers.CustomerService, error) {
	return &customerService{
		customerRepo: customerRepo,
		clock:        clock,
		logger:       logger,
	}, nil
}

// FindOrCreate matches customers by normalized email. A returning customer
// gets the contact details of the latest checkout.
func (s *customerService) FindOrCreate(ctx context.Context, customer *customers.Customer) (*customers.Customer, error) {
	customer.Normalize()

	existing, err := s.customerRepo.GetByEmail(ctx, customer.Email)
	if err != nil && !errors.Is(err, customers.ErrNotFound) {
		return nil, err
	}

	if existing != nil {
		existing.FullName = customer.FullName
		existing.Phone = customer.Phone
		existing.ShippingAddress = customer.ShippingAddress
		existing.BillingAddress = customer.BillingAddress
		if err := existing.Validate(); err != nil {
			return nil, err
		}
		if err := s.customerRepo.UpdateByID(ctx, existing); err != nil {
			return nil, fmt.Errorf("failed to update customer: %w", err)
		}
		return existing, nil
	}

	customer.ID = uuid.NewString()
	customer.DateTimeCreated = s.clock.Now().UTC()
	if err := customer.Validate(); err != nil {
		return nil, err
	}
	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}
	return customer, nil
}

func (s *customerService) GetByID(ctx context.Context, customerID string) (*customers.Customer, error) {
	return s.customerRepo.GetByID(ctx, customerID)
}

func (s *customerService) List(ctx context.Context, query *customers.CustomerQuery) ([]*customers.Customer, error) {
	if query == nil {
		query = &customers.CustomerQuery{Limit: 50}
	}
	if err := query.Validate(); err != nil {
		return nil, fmt.Errorf("invalid customer query: %w", err)
	}
	return s.customerRepo.List(ctx, query)
}

package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/drinkbox/storefront/internal/domain/catalog"
	"github.com/drinkbox/storefront/internal/domain/uow"
	"github.com/drinkbox/storefront/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
)

// productCatalogService implements the ProductCatalogService interface
type productCatalogService struct {
	productRepo catalog.ProductRepository
	logger      logger.Logger
}

// NewProductCatalogService creates a new instance of ProductCatalogService
func NewProductCatalogService(productRepo catalog.ProductRepository, logger logger.Logger) (catalog.ProductCatalogService, error) {
	return &productCatalogService{
		productRepo: productRepo,
		logger:      logger,
	}, nil
}

// List returns the active products matching query.
func (s *productCatalogService) List(ctx context.Context, query *catalog.ProductQuery) ([]*catalog.Product, error) {
	if query == nil {
		query = catalog.NewProductQuery()
	}
	query.ActiveOnly = true
	if err := query.Validate(); err != nil {
		return nil, fmt.Errorf("invalid product query: %w", err)
	}
	return s.productRepo.List(ctx, query)
}

// GetByID hides inactive products behind ErrNotFound.
func (s *productCatalogService) GetByID(ctx context.Context, productID string) (*catalog.Product, error) {
	p, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !p.Active {
		return nil, fmt.Errorf("%w: %s", catalog.ErrNotFound, productID)
	}
	return p, nil
}

func (s *productCatalogService) GetBySlug(ctx context.Context, slug string) (*catalog.Product, error) {
	p, err := s.productRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if !p.Active {
		return nil, fmt.Errorf("%w: %s", catalog.ErrNotFound, slug)
	}
	return p, nil
}

// productAdminService implements the ProductAdminService interface
type productAdminService struct {
	productRepo catalog.ProductRepository
	transactor  uow.Transactor
	clock       clockwork.Clock
	logger      logger.Logger
}

// NewProductAdminService creates a new instance of ProductAdminService
func NewProductAdminService(
	productRepo catalog.ProductRepository,
	transactor uow.Transactor,
	clock clockwork.Clock,
	logger logger.Logger,
) (catalog.ProductAdminService, error) {
	return &productAdminService{
		productRepo: productRepo,
		transactor:  transactor,
		clock:       clock,
		logger:      logger,
	}, nil
}

func (s *productAdminService) Create(ctx context.Context, product *catalog.Product) (*catalog.Product, error) {
	s.prepareNew(product)
	if err := product.Validate(); err != nil {
		return nil, err
	}
	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}
	s.logger.Info("Created product with id ", product.ID)
	return product, nil
}

func (s *productAdminService) List(ctx context.Context, query *catalog.ProductQuery) ([]*catalog.Product, error) {
	if query == nil {
		query = catalog.NewProductQuery()
	}
	if err := query.Validate(); err != nil {
		return nil, fmt.Errorf("invalid product query: %w", err)
	}
	return s.productRepo.List(ctx, query)
}

func (s *productAdminService) GetByID(ctx context.Context, productID string) (*catalog.Product, error) {
	return s.productRepo.GetByID(ctx, productID)
}

// Update replaces the editable fields of an existing product. Stock is only
// changed through AdjustStock.
func (s *productAdminService) Update(ctx context.Context, product *catalog.Product) (*catalog.Product, error) {
	existing, err := s.productRepo.GetByID(ctx, product.ID)
	if err != nil {
		return nil, err
	}
	product.Stock = existing.Stock
	product.DateTimeCreated = existing.DateTimeCreated
	product.DateTimeUpdated = s.clock.Now().UTC()
	if product.Currency == "" {
		product.Currency = existing.Currency
	}
	product.Slug = strings.ToLower(strings.TrimSpace(product.Slug))
	if err := product.Validate(); err != nil {
		return nil, err
	}
	if err := s.productRepo.UpdateByID(ctx, product); err != nil {
		return nil, err
	}
	s.logger.Info("Updated product with id ", product.ID)
	return product, nil
}

func (s *productAdminService) SetActive(ctx context.Context, productID string, active bool) (*catalog.Product, error) {
	p, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if p.Active == active {
		return p, nil
	}
	p.Active = active
	p.DateTimeUpdated = s.clock.Now().UTC()
	if err := s.productRepo.UpdateByID(ctx, p); err != nil {
		return nil, err
	}
	s.logger.Info("Set product ", productID, " active=", active)
	return p, nil
}

func (s *productAdminService) AdjustStock(ctx context.Context, productID string, delta int) (*catalog.Product, error) {
	if err := s.productRepo.AdjustStock(ctx, productID, delta); err != nil {
		return nil, err
	}
	s.logger.Info("Adjusted stock of product ", productID, " by ", delta)
	return s.productRepo.GetByID(ctx, productID)
}

func (s *productAdminService) DeleteByID(ctx context.Context, productID string) error {
	if err := s.productRepo.DeleteByID(ctx, productID); err != nil {
		return err
	}
	s.logger.Info("Deleted product with id ", productID)
	return nil
}

// Import upserts products by slug in a single transaction. An existing
// product keeps its ID and creation time; its stock is replaced.
func (s *productAdminService) Import(ctx context.Context, products []*catalog.Product) (int, int, error) {
	created, updated := 0, 0
	err := s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		created, updated = 0, 0
		for _, p := range products {
			p.Slug = strings.ToLower(strings.TrimSpace(p.Slug))
			existing, err := s.productRepo.GetBySlug(ctx, p.Slug)
			switch {
			case errors.Is(err, catalog.ErrNotFound):
				s.prepareNew(p)
				if err := p.Validate(); err != nil {
					return err
				}
				if err := s.productRepo.Create(ctx, p); err != nil {
					return err
				}
				created++
			case err != nil:
				return err
			default:
				p.ID = existing.ID
				p.DateTimeCreated = existing.DateTimeCreated
				p.DateTimeUpdated = s.clock.Now().UTC()
				if p.Currency == "" {
					p.Currency = existing.Currency
				}
				if err := p.Validate(); err != nil {
					return err
				}
				if err := s.productRepo.UpdateByID(ctx, p); err != nil {
					return err
				}
				updated++
			}
		}
		return nil
	})
	if err != nil {
		return 0, 0, fmt.Errorf("import failed: %w", err)
	}
	s.logger.Info("Imported products: ", created, " created, ", updated, " updated")
	return created, updated, nil
}

func (s *productAdminService) prepareNew(p *catalog.Product) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Currency == "" {
		p.Currency = catalog.DefaultCurrency
	}
	p.Slug = strings.ToLower(strings.TrimSpace(p.Slug))
	now := s.clock.Now().UTC()
	p.DateTimeCreated = now
	p.DateTimeUpdated = now
}

package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/drinkbox/storefront/internal/domain/catalog"
	"github.com/drinkbox/storefront/internal/infrastructure/persistence/models"
	"github.com/drinkbox/storefront/internal/pkg/logger"

	"gorm.io/gorm"
)

type gormProductRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormProductRepository creates a new GORM-based ProductRepository implementation
func NewGormProductRepository(db *gorm.DB, logger logger.Logger) (catalog.ProductRepository, error) {
	return &gormProductRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormProductRepository) Create(ctx context.Context, product *catalog.Product) error {
	if err := product.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}
	if err := r.ensureSlugFree(ctx, product.Slug, product.ID); err != nil {
		return err
	}

	model := &models.ProductModel{}
	model.FromDomain(product)

	if err := dbFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}

	r.logger.Info("Created product with id ", product.ID)
	return nil
}

func (r *gormProductRepository) List(ctx context.Context, query *catalog.ProductQuery) ([]*catalog.Product, error) {
	if err := query.Validate(); err != nil {
		return nil, fmt.Errorf("invalid query parameters: %w", err)
	}

	var modelList []*models.ProductModel
	dbQuery := dbFromContext(ctx, r.db).Model(&models.ProductModel{})

	if query.Name != "" {
		dbQuery = dbQuery.Where("name LIKE ?", "%"+query.Name+"%")
	}
	if query.Category != "" {
		dbQuery = dbQuery.Where("category = ?", query.Category)
	}
	if query.ActiveOnly {
		dbQuery = dbQuery.Where("active = ?", true)
	}
	if query.SubscriptionOnly {
		dbQuery = dbQuery.Where("subscription_eligible = ?", true)
	}

	dbQuery = sortBy(dbQuery, query.SortBy, query.SortOrder, "name asc")
	dbQuery = paginate(dbQuery, query.Limit, query.Offset)

	if err := dbQuery.Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}

	domainList := make([]*catalog.Product, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}
	return domainList, nil
}

func (r *gormProductRepository) GetByID(ctx context.Context, productID string) (*catalog.Product, error) {
	return r.getBy(ctx, "id = ?", productID)
}

func (r *gormProductRepository) GetBySlug(ctx context.Context, slug string) (*catalog.Product, error) {
	return r.getBy(ctx, "slug = ?", slug)
}

func (r *gormProductRepository) getBy(ctx context.Context, cond string, value string) (*catalog.Product, error) {
	var model models.ProductModel
	if err := dbFromContext(ctx, r.db).Where(cond, value).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", catalog.ErrNotFound, value)
		}
		return nil, fmt.Errorf("failed to fetch product: %w", err)
	}
	return model.ToDomain(), nil
}

func (r *gormProductRepository) UpdateByID(ctx context.Context, product *catalog.Product) error {
	if err := product.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}
	if err := r.ensureSlugFree(ctx, product.Slug, product.ID); err != nil {
		return err
	}

	model := &models.ProductModel{}
	model.FromDomain(product)

	res := dbFromContext(ctx, r.db).Model(&models.ProductModel{}).Where("id = ?", product.ID).
		Select("*").Omit("id", "date_time_created").Updates(model)
	if res.Error != nil {
		return fmt.Errorf("failed to update product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: %s", catalog.ErrNotFound, product.ID)
	}

	r.logger.Info("Updated product with id ", product.ID)
	return nil
}

func (r *gormProductRepository) AdjustStock(ctx context.Context, productID string, delta int) error {
	res := dbFromContext(ctx, r.db).Model(&models.ProductModel{}).
		Where("id = ? AND stock + ? >= 0", productID, delta).
		Update("stock", gorm.Expr("stock + ?", delta))
	if res.Error != nil {
		return fmt.Errorf("failed to adjust stock: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		if _, err := r.GetByID(ctx, productID); err != nil {
			return err
		}
		return fmt.Errorf("%w: product %s", catalog.ErrInsufficientStock, productID)
	}

	r.logger.Debug("Adjusted stock of product ", productID, " by ", delta)
	return nil
}

func (r *gormProductRepository) DeleteByID(ctx context.Context, productID string) error {
	res := dbFromContext(ctx, r.db).Where("id = ?", productID).Delete(&models.ProductModel{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: %s", catalog.ErrNotFound, productID)
	}

	r.logger.Info("Deleted product with id ", productID)
	return nil
}

func (r *gormProductRepository) ensureSlugFree(ctx context.Context, slug, productID string) error {
	var count int64
	err := dbFromContext(ctx, r.db).Model(&models.ProductModel{}).
		Where("slug = ? AND id <> ?", slug, productID).Count(&count).Error
	if err != nil {
		return fmt.Errorf("failed to check product slug: %w", err)
	}
	if count > 0 {
		return fmt.Errorf("%w: %s", catalog.ErrDuplicateSlug, slug)
	}
	return nil
}

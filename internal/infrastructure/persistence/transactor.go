package persistence

import (
	"context"

	"github.com/drinkbox/storefront/internal/domain/uow"

	"gorm.io/gorm"
)

type txKey struct{}

type gormTransactor struct {
	db *gorm.DB
}

// NewGormTransactor creates a Transactor backed by GORM transactions
func NewGormTransactor(db *gorm.DB) uow.Transactor {
	return &gormTransactor{db: db}
}

// WithinTransaction runs fn in a transaction. A nested call joins the
// transaction already carried by ctx.
func (t *gormTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return fn(ctx)
	}
	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

// dbFromContext returns the transaction carried by ctx, or db bound to ctx.
func dbFromContext(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return db.WithContext(ctx)
}

// inTransaction runs fn in the transaction of ctx or in a new one.
func inTransaction(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return fn(tx)
	}
	return db.WithContext(ctx).Transaction(fn)
}

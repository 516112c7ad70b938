// Package uow defines the unit-of-work boundary used by multi-aggregate writes.
package uow

import "context"

// Transactor runs fn inside one database transaction. Repository calls made
// with the context handed to fn join that transaction; fn returning an error
// rolls it back.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

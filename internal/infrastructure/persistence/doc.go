// Package persistence provides the GORM repositories of the shop. Postgres
// is used in production and SQLite for local runs and tests. Repository
// calls made with a context from Transactor.WithinTransaction join that
// transaction.
package persistence

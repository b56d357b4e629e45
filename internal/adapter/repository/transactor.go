package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/leondli/centriq/internal/domain/repository"
)

// transactor implements repository.Transactor
type transactor struct {
	db *gorm.DB
}

// NewTransactor creates a new transactor
func NewTransactor(db *gorm.DB) repository.Transactor {
	return &transactor{db: db}
}

// WithinTransaction runs fn in a transaction stored in the context.
// Nested calls become savepoints of the outer transaction.
func (t *transactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return dbFromContext(ctx, t.db).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

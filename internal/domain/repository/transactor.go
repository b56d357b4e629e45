package repository

import "context"

// Transactor runs a function inside a single database transaction.
// Repositories called with the context passed to fn share that transaction;
// any error returned by fn rolls everything back.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

package repository

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	apperrors "github.com/leondli/centriq/pkg/errors"
)

// activatable is implemented by models carrying an is_active soft-delete flag
type activatable interface {
	activeColumn() string
}

// activeOnly is the single place the "is active" predicate is written.
// Every query that must hide deactivated rows goes through it.
func activeOnly[M activatable]() func(*gorm.DB) *gorm.DB {
	var model M
	column := model.activeColumn()
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(column+" = ?", true)
	}
}

// includeInactive returns the active scope unless all rows are requested
func includeInactive[M activatable](all bool) func(*gorm.DB) *gorm.DB {
	if all {
		return func(db *gorm.DB) *gorm.DB { return db }
	}
	return activeOnly[M]()
}

type txKey struct{}

// dbFromContext returns the transaction carried by ctx, or the base handle
func dbFromContext(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx.WithContext(ctx)
	}
	return db.WithContext(ctx)
}

// translateError maps storage errors onto the application sentinels
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.ErrNotFound
	}
	if isDuplicateKey(err) {
		return errors.Mark(err, apperrors.ErrAlreadyExists)
	}
	return err
}

func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}

// AutoMigrate creates the schema from the gorm models.
// Deployed databases are migrated with the SQL migrations instead.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&TagModel{}, &TaskModel{}, &CallModel{}, &CallTaskModel{})
}

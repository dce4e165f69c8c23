package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"mtg-labels/models"
)

// PgxIface is the subset of a pgx pool used by the repositories.
// *pgxpool.Pool and pgxmock pools satisfy it.
type PgxIface interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// SheetRepositoryInterface defines the contract for sheet history operations
type SheetRepositoryInterface interface {
	EnsureSchema(ctx context.Context) error
	Insert(ctx context.Context, sheet *models.Sheet) error
	ListRecent(ctx context.Context, limit int) ([]models.Sheet, error)
}

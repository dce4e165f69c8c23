package repository

import (
	"context"
	"fmt"

	"mtg-labels/models"
)

const createSheetsTable = `
	CREATE TABLE IF NOT EXISTS label_sheets (
		id          BIGSERIAL PRIMARY KEY,
		paper_size  TEXT        NOT NULL,
		page        INTEGER     NOT NULL,
		set_codes   TEXT[]      NOT NULL,
		svg_path    TEXT        NOT NULL,
		pdf_path    TEXT        NOT NULL DEFAULT '',
		created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
	)
`

// SheetRepository handles database operations for rendered sheets
type SheetRepository struct {
	pool PgxIface
}

// NewSheetRepository creates a new SheetRepository
func NewSheetRepository(pool PgxIface) *SheetRepository {
	return &SheetRepository{pool: pool}
}

// Ensure SheetRepository implements SheetRepositoryInterface
var _ SheetRepositoryInterface = (*SheetRepository)(nil)

// EnsureSchema creates the label_sheets table when missing
func (r *SheetRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, createSheetsTable); err != nil {
		return fmt.Errorf("failed to create label_sheets table: %w", err)
	}
	return nil
}

// Insert records a rendered sheet and fills its ID and CreatedAt
func (r *SheetRepository) Insert(ctx context.Context, sheet *models.Sheet) error {
	query := `
		INSERT INTO label_sheets (paper_size, page, set_codes, svg_path, pdf_path)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err := r.pool.QueryRow(ctx, query,
		sheet.PaperSize,
		sheet.Page,
		sheet.SetCodes,
		sheet.SVGPath,
		sheet.PDFPath,
	).Scan(&sheet.ID, &sheet.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert sheet: %w", err)
	}
	return nil
}

// ListRecent returns the latest recorded sheets, newest first
func (r *SheetRepository) ListRecent(ctx context.Context, limit int) ([]models.Sheet, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT id, paper_size, page, set_codes, svg_path, pdf_path, created_at
		FROM label_sheets
		ORDER BY created_at DESC, id DESC
		LIMIT $1
	`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query sheets: %w", err)
	}
	defer rows.Close()

	var sheets []models.Sheet
	for rows.Next() {
		var sheet models.Sheet
		if err := rows.Scan(
			&sheet.ID,
			&sheet.PaperSize,
			&sheet.Page,
			&sheet.SetCodes,
			&sheet.SVGPath,
			&sheet.PDFPath,
			&sheet.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan sheet: %w", err)
		}
		sheets = append(sheets, sheet)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate sheets: %w", err)
	}
	return sheets, nil
}

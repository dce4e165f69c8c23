package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mtg-labels/models"
)

func newMockRepository(t *testing.T) (*SheetRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return NewSheetRepository(mock), mock
}

func TestSheetRepository_EnsureSchema(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS label_sheets")).
		WillReturnResult(pgxmock.NewResult("CREATE TABLE", 0))

	require.NoError(t, repo.EnsureSchema(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSheetRepository_EnsureSchema_Error(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS label_sheets")).
		WillReturnError(errors.New("permission denied"))

	err := repo.EnsureSchema(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "permission denied")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSheetRepository_Insert(t *testing.T) {
	repo, mock := newMockRepository(t)
	created := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	sheet := &models.Sheet{
		PaperSize: "letter",
		Page:      1,
		SetCodes:  []string{"lea", "leb"},
		SVGPath:   "/out/labels-letter-01.svg",
		PDFPath:   "/out/labels-letter-01.pdf",
	}

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO label_sheets")).
		WithArgs("letter", 1, []string{"lea", "leb"}, sheet.SVGPath, sheet.PDFPath).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(int64(7), created))

	require.NoError(t, repo.Insert(context.Background(), sheet))
	assert.Equal(t, int64(7), sheet.ID)
	assert.Equal(t, created, sheet.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSheetRepository_Insert_Error(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO label_sheets")).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(errors.New("connection reset"))

	err := repo.Insert(context.Background(), &models.Sheet{PaperSize: "a4", Page: 2})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to insert sheet")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSheetRepository_ListRecent(t *testing.T) {
	repo, mock := newMockRepository(t)
	newer := time.Date(2024, 6, 2, 9, 0, 0, 0, time.UTC)
	older := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

	rows := pgxmock.NewRows([]string{"id", "paper_size", "page", "set_codes", "svg_path", "pdf_path", "created_at"}).
		AddRow(int64(2), "a4", 1, []string{"mh3"}, "/out/labels-a4-01.svg", "", newer).
		AddRow(int64(1), "letter", 1, []string{"lea", "leb"}, "/out/labels-letter-01.svg", "/out/labels-letter-01.pdf", older)

	mock.ExpectQuery(regexp.QuoteMeta("FROM label_sheets")).
		WithArgs(5).
		WillReturnRows(rows)

	sheets, err := repo.ListRecent(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, sheets, 2)
	assert.Equal(t, int64(2), sheets[0].ID)
	assert.Equal(t, []string{"mh3"}, sheets[0].SetCodes)
	assert.Empty(t, sheets[0].PDFPath)
	assert.Equal(t, "letter", sheets[1].PaperSize)
	assert.Equal(t, older, sheets[1].CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSheetRepository_ListRecent_DefaultLimit(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM label_sheets")).
		WithArgs(20).
		WillReturnRows(pgxmock.NewRows([]string{"id", "paper_size", "page", "set_codes", "svg_path", "pdf_path", "created_at"}))

	sheets, err := repo.ListRecent(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, sheets)
	assert.NoError(t, mock.ExpectationsWereMet())
}

package service

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"mtg-labels/models"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeCatalog serves a fixed set list and icon bodies keyed by URI,
// counting icon downloads
type fakeCatalog struct {
	sets    []models.SetRecord
	setsErr error
	icons   map[string][]byte

	mu        sync.Mutex
	downloads map[string]int
}

var _ CatalogClientInterface = (*fakeCatalog)(nil)

func (f *fakeCatalog) FetchAllSets(ctx context.Context) ([]models.SetRecord, error) {
	if f.setsErr != nil {
		return nil, f.setsErr
	}
	return append([]models.SetRecord(nil), f.sets...), nil
}

func (f *fakeCatalog) FetchIcon(ctx context.Context, uri string) ([]byte, error) {
	f.mu.Lock()
	if f.downloads == nil {
		f.downloads = make(map[string]int)
	}
	f.downloads[uri]++
	f.mu.Unlock()

	data, ok := f.icons[uri]
	if !ok {
		return nil, &models.DownloadError{URL: uri, StatusCode: 404}
	}
	return data, nil
}

func (f *fakeCatalog) downloadCount(uri string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.downloads[uri]
}

func (f *fakeCatalog) totalDownloads() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	total := 0
	for _, n := range f.downloads {
		total += n
	}
	return total
}

// fakeRasterizer returns canned documents and records its calls
type fakeRasterizer struct {
	pdfErr  error
	shotErr error
	shot    []byte

	mu    sync.Mutex
	pdfs  []string
	shots []string
}

var _ Rasterizer = (*fakeRasterizer)(nil)

func (f *fakeRasterizer) PDF(ctx context.Context, svgPath string, paper models.PaperSize) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pdfs = append(f.pdfs, svgPath)
	if f.pdfErr != nil {
		return nil, f.pdfErr
	}
	return []byte("%PDF-1.4 " + paper.Name), nil
}

func (f *fakeRasterizer) Screenshot(ctx context.Context, svgPath string, paper models.PaperSize) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.shots = append(f.shots, svgPath)
	if f.shotErr != nil {
		return nil, f.shotErr
	}
	return f.shot, nil
}

func (f *fakeRasterizer) pdfCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.pdfs)
}

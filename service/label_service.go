package service

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"mtg-labels/models"
	"mtg-labels/render"
	"mtg-labels/repository"
)

// LabelServiceOptions wires the collaborators of a LabelService.
// Sheets and Publisher are optional.
type LabelServiceOptions struct {
	Client       CatalogClientInterface
	Engine       *render.Engine
	Rasterizer   Rasterizer
	Sheets       repository.SheetRepositoryInterface
	Publisher    PublisherInterface
	CacheDir     string
	Workers      int
	SkipPDF      bool
	Preview      bool
	PreviewWidth int
	Logger       *slog.Logger
	// Progress is called after each rendered page
	Progress func(done, total int)
}

// RunOptions selects what a single run renders
type RunOptions struct {
	Filter    models.FilterConfig
	PaperSize string
	OutputDir string
}

// RunResult summarizes a finished run
type RunResult struct {
	Sets         int
	Labels       int
	Skipped      []string // set codes dropped for a missing icon
	UnknownCodes []string
	Pages        []RenderedPage
}

// LabelService runs the label pipeline: fetch, filter, resolve, lay out,
// render
type LabelService struct {
	opts   LabelServiceOptions
	cache  *IconCache
	logger *slog.Logger
}

// Ensure LabelService implements LabelServiceInterface
var _ LabelServiceInterface = (*LabelService)(nil)

// NewLabelService creates a new LabelService
func NewLabelService(opts LabelServiceOptions) *LabelService {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &LabelService{
		opts:   opts,
		cache:  NewIconCache(opts.CacheDir),
		logger: logger,
	}
}

// Plan fetches the catalog and returns the sets a run would print,
// oldest first, without touching icons or output files. Unknown codes are
// returned for the caller to report.
func (s *LabelService) Plan(ctx context.Context, filter models.FilterConfig) (models.FilterResult, error) {
	sets, err := s.opts.Client.FetchAllSets(ctx)
	if err != nil {
		return models.FilterResult{}, err
	}

	return SelectSets(sets, filter), nil
}

// Run renders every page of the selected sets. Configuration, catalog and
// render errors abort the run; sets without an icon are skipped.
func (s *LabelService) Run(ctx context.Context, opts RunOptions) (*RunResult, error) {
	paper, err := models.LookupPaperSize(opts.PaperSize)
	if err != nil {
		return nil, err
	}
	if opts.OutputDir == "" {
		return nil, fmt.Errorf("%w: output directory is required", models.ErrConfiguration)
	}
	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	selection, err := s.Plan(ctx, opts.Filter)
	if err != nil {
		return nil, err
	}

	resolver := NewIconResolver(s.opts.Client, s.cache, opts.OutputDir, s.opts.Workers, s.logger)
	resolved, skipped, err := resolver.ResolveAll(ctx, selection.Sets)
	if err != nil {
		return nil, err
	}

	layout := NewGridLayout(paper)
	labels := layout.Layout(resolved)
	pages := Paginate(labels, layout.Capacity())

	result := &RunResult{
		Sets:         len(selection.Sets),
		Labels:       len(labels),
		UnknownCodes: selection.UnknownCodes,
	}
	for _, set := range skipped {
		result.Skipped = append(result.Skipped, set.Code)
	}

	s.logger.Info("laying out labels",
		"sets", len(selection.Sets),
		"labels", len(labels),
		"skipped", len(skipped),
		"pages", len(pages),
		"paper", paper.Name,
	)

	renderer := NewPageRenderer(s.opts.Engine, s.opts.Rasterizer, PageRendererOptions{
		OutputDir:    opts.OutputDir,
		Paper:        paper,
		Layout:       layout,
		SkipPDF:      s.opts.SkipPDF,
		Preview:      s.opts.Preview,
		PreviewWidth: s.opts.PreviewWidth,
		Logger:       s.logger,
	})

	for _, batch := range pages {
		page, err := renderer.RenderPage(ctx, batch)
		if err != nil {
			return result, err
		}
		result.Pages = append(result.Pages, *page)

		s.recordSheet(ctx, paper, batch, page)
		s.publish(ctx, page)

		if s.opts.Progress != nil {
			s.opts.Progress(batch.Number, len(pages))
		}
	}

	return result, nil
}

// recordSheet stores the page in the sheet history; failures only warn
func (s *LabelService) recordSheet(ctx context.Context, paper models.PaperSize, batch models.PageBatch, page *RenderedPage) {
	if s.opts.Sheets == nil {
		return
	}
	sheet := &models.Sheet{
		PaperSize: paper.Name,
		Page:      batch.Number,
		SetCodes:  batch.Codes(),
		SVGPath:   page.SVGPath,
		PDFPath:   page.PDFPath,
	}
	if err := s.opts.Sheets.Insert(ctx, sheet); err != nil {
		s.logger.Warn("failed to record sheet", "page", batch.Number, "error", err)
	}
}

// publish uploads the page document; failures only warn
func (s *LabelService) publish(ctx context.Context, page *RenderedPage) {
	if s.opts.Publisher == nil {
		return
	}
	path := page.PDFPath
	if path == "" {
		path = page.SVGPath
	}
	id, err := s.opts.Publisher.Publish(ctx, path)
	if err != nil {
		s.logger.Warn("failed to publish page", "file", path, "error", err)
		return
	}
	s.logger.Info("published page", "file", path, "id", id)
}

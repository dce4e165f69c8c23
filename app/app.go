// Package app wires the label services and the mtglabels command line
package app

import (
	"context"
	"fmt"
	"log/slog"

	"mtg-labels/config"
	"mtg-labels/db"
	"mtg-labels/render"
	"mtg-labels/repository"
	"mtg-labels/service"
)

// Services holds the wired application services of one invocation
type Services struct {
	Labels service.LabelServiceInterface
	Sheets repository.SheetRepositoryInterface // nil without a database

	closers []func()
}

// Close releases the browser and database pool
func (s *Services) Close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		s.closers[i]()
	}
	s.closers = nil
}

// Initialize initializes the application services from configuration.
// The sheet history and Drive publishing are optional: when configured but
// unreachable they are disabled with a warning.
func Initialize(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Services, error) {
	services := &Services{}

	client := service.NewCatalogClient(service.CatalogClientOptions{
		CatalogURL: cfg.Catalog.URL,
		UserAgent:  cfg.Catalog.UserAgent,
		Timeout:    cfg.Catalog.Timeout,
		Logger:     logger,
	})

	engineOpts := []render.Option{
		render.WithGlobalData(map[string]any{"generator": "mtglabels", "version": version}),
	}
	if cfg.Render.TemplateDir != "" {
		engineOpts = append(engineOpts, render.WithBaseDir(cfg.Render.TemplateDir))
	}
	engine, err := render.New(engineOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize templates: %w", err)
	}

	rasterizer := service.NewChromeRasterizer(cfg.Render.ChromePath, cfg.Render.Timeout, logger)
	services.closers = append(services.closers, rasterizer.Close)

	connStr := cfg.Database.URL
	if connStr == "" {
		connStr = db.ConnString()
	}
	if connStr != "" {
		sheets, closePool, err := openSheets(ctx, connStr)
		if err != nil {
			logger.Warn("sheet history disabled", "error", err)
		} else {
			services.Sheets = sheets
			services.closers = append(services.closers, closePool)
		}
	}

	var publisher service.PublisherInterface
	if cfg.Drive.FolderID != "" {
		drivePublisher, err := service.NewDrivePublisher(ctx, cfg.Drive.Credentials, cfg.Drive.FolderID)
		if err != nil {
			logger.Warn("drive publishing disabled", "error", err)
		} else {
			publisher = drivePublisher
		}
	}

	opts := service.LabelServiceOptions{
		Client:       client,
		Engine:       engine,
		Rasterizer:   rasterizer,
		Publisher:    publisher,
		CacheDir:     cfg.CacheDir,
		Workers:      cfg.Workers,
		SkipPDF:      cfg.Render.SkipPDF,
		Preview:      cfg.Render.Preview,
		PreviewWidth: cfg.Render.PreviewWidth,
		Logger:       logger,
		Progress: func(done, total int) {
			logger.Info("page rendered", "page", done, "of", total)
		},
	}
	opts.Sheets = services.Sheets
	services.Labels = service.NewLabelService(opts)

	return services, nil
}

func openSheets(ctx context.Context, connStr string) (repository.SheetRepositoryInterface, func(), error) {
	pool, err := db.Open(ctx, connStr)
	if err != nil {
		return nil, nil, err
	}
	sheets := repository.NewSheetRepository(pool)
	if err := sheets.EnsureSchema(ctx); err != nil {
		pool.Close()
		return nil, nil, err
	}
	return sheets, pool.Close, nil
}

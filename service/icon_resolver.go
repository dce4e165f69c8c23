package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"mtg-labels/models"
	"mtg-labels/utils"
)

// ResolvedSet is a set with its label name and a local icon ready to render
type ResolvedSet struct {
	Set          models.SetRecord
	DisplayName  string
	IconFilename string
}

// IconResolver maps sets to display names and local icon files, downloading
// icons through the catalog client when they are not cached yet
type IconResolver struct {
	client    CatalogClientInterface
	cache     *IconCache
	outputDir string
	workers   int
	logger    *slog.Logger

	mu     sync.Mutex
	failed map[string]error // icon filename -> download failure
}

// NewIconResolver creates a new IconResolver. workers <= 1 disables the
// concurrent prefetch so icons are fetched one by one as sets are resolved.
func NewIconResolver(client CatalogClientInterface, cache *IconCache, outputDir string, workers int, logger *slog.Logger) *IconResolver {
	if logger == nil {
		logger = slog.Default()
	}
	if workers < 1 {
		workers = 1
	}
	return &IconResolver{
		client:    client,
		cache:     cache,
		outputDir: outputDir,
		workers:   workers,
		logger:    logger,
		failed:    make(map[string]error),
	}
}

// Resolve returns the display name and local icon of a set.
// An icon that cannot be obtained yields a *models.IconError; the caller
// drops the set. Any other error is a local filesystem failure.
func (r *IconResolver) Resolve(ctx context.Context, set models.SetRecord) (ResolvedSet, error) {
	filename, err := utils.IconFilename(set.IconSVGURI)
	if err != nil {
		return ResolvedSet{}, &models.IconError{Code: set.Code, URI: set.IconSVGURI, Err: err}
	}

	if err := r.ensureCached(ctx, filename, set.IconSVGURI); err != nil {
		if errors.Is(err, models.ErrDownload) {
			return ResolvedSet{}, &models.IconError{Code: set.Code, URI: set.IconSVGURI, Err: err}
		}
		return ResolvedSet{}, fmt.Errorf("set %q: %w", set.Code, err)
	}

	if err := r.cache.CopyTo(filename, r.outputDir); err != nil {
		return ResolvedSet{}, fmt.Errorf("set %q: %w", set.Code, err)
	}

	return ResolvedSet{
		Set:          set,
		DisplayName:  DisplayName(set.Name),
		IconFilename: filename,
	}, nil
}

// ResolveAll resolves sets in order. Sets whose icon is unavailable are
// left out and returned separately; other errors abort.
func (r *IconResolver) ResolveAll(ctx context.Context, sets []models.SetRecord) ([]ResolvedSet, []models.SetRecord, error) {
	if err := r.cache.EnsureDir(); err != nil {
		return nil, nil, err
	}
	if r.workers > 1 {
		if err := r.Prefetch(ctx, sets); err != nil {
			return nil, nil, err
		}
	}

	resolved := make([]ResolvedSet, 0, len(sets))
	var skipped []models.SetRecord
	for _, set := range sets {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
		item, err := r.Resolve(ctx, set)
		if err != nil && ctx.Err() != nil {
			return nil, nil, ctx.Err()
		}
		if errors.Is(err, models.ErrIconUnavailable) {
			r.logger.Warn("skipping set without icon", "code", set.Code, "uri", set.IconSVGURI, "error", err)
			skipped = append(skipped, set)
			continue
		}
		if err != nil {
			return nil, nil, err
		}
		resolved = append(resolved, item)
	}
	return resolved, skipped, nil
}

// Prefetch downloads every missing icon with at most workers concurrent
// requests, one per unique filename. Download failures are remembered so
// Resolve drops the owning sets without asking again; a cache write failure
// stops the prefetch.
func (r *IconResolver) Prefetch(ctx context.Context, sets []models.SetRecord) error {
	pending := make(map[string]string)
	var order []string
	for _, set := range sets {
		filename, err := utils.IconFilename(set.IconSVGURI)
		if err != nil {
			continue
		}
		if _, seen := pending[filename]; seen || r.cache.Exists(filename) {
			continue
		}
		// first URI wins when two URIs share a filename
		pending[filename] = set.IconSVGURI
		order = append(order, filename)
	}
	if len(order) == 0 {
		return nil
	}

	r.logger.Info("prefetching icons", "count", len(order), "workers", r.workers)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)
	for _, filename := range order {
		uri := pending[filename]
		g.Go(func() error {
			err := r.download(gctx, filename, uri)
			if errors.Is(err, models.ErrDownload) {
				r.markFailed(filename, err)
				return gctx.Err()
			}
			return err
		})
	}
	return g.Wait()
}

func (r *IconResolver) ensureCached(ctx context.Context, filename, uri string) error {
	if r.cache.Exists(filename) {
		r.logger.Debug("skipping download, icon already cached", "file", filename)
		return nil
	}
	if err := r.failure(filename); err != nil {
		return err
	}
	err := r.download(ctx, filename, uri)
	if errors.Is(err, models.ErrDownload) {
		r.markFailed(filename, err)
	}
	return err
}

// download fetches an icon into the cache. Fetch failures always carry
// models.ErrDownload so they can be told apart from cache write failures.
func (r *IconResolver) download(ctx context.Context, filename, uri string) error {
	data, err := r.client.FetchIcon(ctx, uri)
	if err != nil {
		if !errors.Is(err, models.ErrDownload) {
			err = &models.DownloadError{URL: uri, Err: err}
		}
		return err
	}
	if err := r.cache.Save(filename, data); err != nil {
		return err
	}
	r.logger.Debug("icon downloaded", "file", filename, "bytes", len(data))
	return nil
}

func (r *IconResolver) failure(filename string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.failed[filename]
}

func (r *IconResolver) markFailed(filename string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failed[filename] = err
}

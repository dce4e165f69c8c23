package service

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"mtg-labels/models"
	"mtg-labels/render"
)

// Label box geometry inside a grid cell, in 1/10 mm
const (
	labelInset = 20
	iconOffset = 30
	iconLeft   = 16
	textGap    = 24
)

// Rasterizer turns a written SVG page into print and preview formats
type Rasterizer interface {
	PDF(ctx context.Context, svgPath string, paper models.PaperSize) ([]byte, error)
	Screenshot(ctx context.Context, svgPath string, paper models.PaperSize) ([]byte, error)
}

// RenderedPage lists the files written for one page
type RenderedPage struct {
	Number      int
	SVGPath     string
	PDFPath     string
	PreviewPath string
	SVG         []byte
	PDF         []byte
}

// PageRendererOptions configures a PageRenderer
type PageRendererOptions struct {
	OutputDir    string
	Paper        models.PaperSize
	Layout       *GridLayout
	Template     string
	SkipPDF      bool
	Preview      bool
	PreviewWidth int
	Logger       *slog.Logger
}

// PageRenderer writes each page as SVG through the labels template and
// rasterizes it to PDF
type PageRenderer struct {
	engine     *render.Engine
	rasterizer Rasterizer
	opts       PageRendererOptions
	logger     *slog.Logger
}

// NewPageRenderer creates a new PageRenderer
func NewPageRenderer(engine *render.Engine, rasterizer Rasterizer, opts PageRendererOptions) *PageRenderer {
	if opts.Template == "" {
		opts.Template = render.LabelsTemplate
	}
	if opts.Layout == nil {
		opts.Layout = NewGridLayout(opts.Paper)
	}
	if opts.PreviewWidth <= 0 {
		opts.PreviewWidth = DefaultPreviewWidth
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &PageRenderer{
		engine:     engine,
		rasterizer: rasterizer,
		opts:       opts,
		logger:     logger,
	}
}

// PageBaseName returns the file name without extension of a page:
// labels-<paper>-<NN>
func PageBaseName(paper string, page int) string {
	return fmt.Sprintf("labels-%s-%02d", paper, page)
}

// RenderPage renders one batch. Any failure is a *models.RenderError.
func (r *PageRenderer) RenderPage(ctx context.Context, batch models.PageBatch) (*RenderedPage, error) {
	svg, err := r.engine.Render(r.opts.Template, r.pageData(batch))
	if err != nil {
		return nil, &models.RenderError{Page: batch.Number, Stage: "template", Err: err}
	}

	base := filepath.Join(r.opts.OutputDir, PageBaseName(r.opts.Paper.Name, batch.Number))
	page := &RenderedPage{
		Number:  batch.Number,
		SVGPath: base + ".svg",
		SVG:     svg,
	}

	r.logger.Info("writing page", "file", page.SVGPath, "labels", len(batch.Labels))
	if err := os.WriteFile(page.SVGPath, svg, 0644); err != nil {
		return nil, &models.RenderError{Page: batch.Number, Stage: "write", Err: err}
	}

	if !r.opts.SkipPDF {
		page.PDFPath = base + ".pdf"
		r.logger.Info("writing page", "file", page.PDFPath)

		pdf, err := r.rasterizer.PDF(ctx, page.SVGPath, r.opts.Paper)
		if err != nil {
			return nil, &models.RenderError{Page: batch.Number, Stage: "pdf", Err: err}
		}
		if err := os.WriteFile(page.PDFPath, pdf, 0644); err != nil {
			return nil, &models.RenderError{Page: batch.Number, Stage: "write", Err: err}
		}
		page.PDF = pdf
	}

	if r.opts.Preview {
		page.PreviewPath = base + ".png"
		if err := r.writePreview(ctx, page.SVGPath, page.PreviewPath); err != nil {
			return nil, &models.RenderError{Page: batch.Number, Stage: "preview", Err: err}
		}
	}

	return page, nil
}

func (r *PageRenderer) writePreview(ctx context.Context, svgPath, pngPath string) error {
	shot, err := r.rasterizer.Screenshot(ctx, svgPath, r.opts.Paper)
	if err != nil {
		return err
	}
	thumb, err := ScalePreview(shot, r.opts.PreviewWidth)
	if err != nil {
		return err
	}
	r.logger.Debug("writing preview", "file", pngPath, "bytes", len(thumb))
	return os.WriteFile(pngPath, thumb, 0644)
}

// pageData builds the template context of a page
func (r *PageRenderer) pageData(batch models.PageBatch) map[string]any {
	paper := r.opts.Paper
	deltaX, deltaY := r.opts.Layout.Deltas()

	labelWidth := deltaX - labelInset
	labelHeight := deltaY - labelInset/2
	iconSize := labelHeight - 2*iconOffset
	textX := iconLeft + iconSize + textGap

	labels := make([]map[string]any, 0, len(batch.Labels))
	for _, label := range batch.Labels {
		date := ""
		if !label.Date.IsZero() {
			date = label.Date.Format(models.ReleaseDateLayout)
		}
		labels = append(labels, map[string]any{
			"name":          label.Name,
			"code":          label.Code,
			"date":          date,
			"icon_filename": label.IconFilename,
			"x":             formatUnits(label.X),
			"y":             formatUnits(label.Y),
		})
	}

	return map[string]any{
		"labels":       labels,
		"page":         batch.Number,
		"paper":        paper.Name,
		"width":        formatUnits(paper.Width),
		"height":       formatUnits(paper.Height),
		"width_mm":     formatUnits(paper.Width / 10),
		"height_mm":    formatUnits(paper.Height / 10),
		"label_width":  formatUnits(labelWidth),
		"label_height": formatUnits(labelHeight),
		"icon_size":    formatUnits(iconSize),
		"icon_offset":  formatUnits(iconOffset),
		"text_x":       formatUnits(textX),
		"name_y":       formatUnits(labelHeight/2 - 10),
		"meta_y":       formatUnits(labelHeight/2 + 50),
	}
}

// formatUnits prints a coordinate with at most two decimals
func formatUnits(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}

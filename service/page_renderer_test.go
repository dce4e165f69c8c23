package service

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mtg-labels/models"
	"mtg-labels/render"
)

func testBatch(t *testing.T, paper models.PaperSize) models.PageBatch {
	t.Helper()
	layout := NewGridLayout(paper)
	sets := []ResolvedSet{
		{
			Set:          models.SetRecord{Code: "lea", Released: time.Date(1993, 8, 5, 0, 0, 0, 0, time.UTC)},
			DisplayName:  "Limited Edition Alpha",
			IconFilename: "lea.svg",
		},
		{
			Set:          models.SetRecord{Code: "pd2"},
			DisplayName:  "PD: Fire & Lightning",
			IconFilename: "pd2.svg",
		},
	}
	return Paginate(layout.Layout(sets), layout.Capacity())[0]
}

func pngOf(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))))
	return buf.Bytes()
}

func newTestRenderer(t *testing.T, engine *render.Engine, rasterizer Rasterizer, opts PageRendererOptions) *PageRenderer {
	t.Helper()
	if engine == nil {
		var err error
		engine, err = render.New()
		require.NoError(t, err)
	}
	if opts.OutputDir == "" {
		opts.OutputDir = t.TempDir()
	}
	if opts.Paper.Name == "" {
		paper, err := models.LookupPaperSize("letter")
		require.NoError(t, err)
		opts.Paper = paper
	}
	opts.Logger = discardLogger()
	return NewPageRenderer(engine, rasterizer, opts)
}

func TestPageBaseName(t *testing.T) {
	assert.Equal(t, "labels-letter-01", PageBaseName("letter", 1))
	assert.Equal(t, "labels-a4-12", PageBaseName("a4", 12))
	assert.Equal(t, "labels-a4-123", PageBaseName("a4", 123))
}

func TestPageRenderer_WritesSVGAndPDF(t *testing.T) {
	rasterizer := &fakeRasterizer{}
	outDir := t.TempDir()
	renderer := newTestRenderer(t, nil, rasterizer, PageRendererOptions{OutputDir: outDir})

	page, err := renderer.RenderPage(context.Background(), testBatch(t, renderer.opts.Paper))
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(outDir, "labels-letter-01.svg"), page.SVGPath)
	assert.Equal(t, filepath.Join(outDir, "labels-letter-01.pdf"), page.PDFPath)
	assert.Empty(t, page.PreviewPath)

	svg, err := os.ReadFile(page.SVGPath)
	require.NoError(t, err)
	assert.Equal(t, page.SVG, svg)
	assert.Contains(t, string(svg), "Limited Edition Alpha")
	assert.Contains(t, string(svg), "PD: Fire &amp; Lightning")
	assert.Contains(t, string(svg), `href="lea.svg"`)
	assert.Contains(t, string(svg), "LEA &#183; 1993-08-05")
	assert.Contains(t, string(svg), `translate(40 80)`)
	assert.Contains(t, string(svg), `viewBox="0 0 2160 2790"`)

	pdf, err := os.ReadFile(page.PDFPath)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4 letter", string(pdf))
	assert.Equal(t, []string{page.SVGPath}, rasterizer.pdfs)
}

func TestPageRenderer_SkipPDF(t *testing.T) {
	rasterizer := &fakeRasterizer{}
	renderer := newTestRenderer(t, nil, rasterizer, PageRendererOptions{SkipPDF: true})

	page, err := renderer.RenderPage(context.Background(), testBatch(t, renderer.opts.Paper))
	require.NoError(t, err)

	assert.Empty(t, page.PDFPath)
	assert.FileExists(t, page.SVGPath)
	assert.Equal(t, 0, rasterizer.pdfCalls())
}

func TestPageRenderer_Preview(t *testing.T) {
	rasterizer := &fakeRasterizer{shot: pngOf(t, 816, 1054)}
	renderer := newTestRenderer(t, nil, rasterizer, PageRendererOptions{Preview: true, PreviewWidth: 204})

	page, err := renderer.RenderPage(context.Background(), testBatch(t, renderer.opts.Paper))
	require.NoError(t, err)
	require.NotEmpty(t, page.PreviewPath)
	assert.Equal(t, ".png", filepath.Ext(page.PreviewPath))

	data, err := os.ReadFile(page.PreviewPath)
	require.NoError(t, err)
	cfg, err := png.DecodeConfig(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 204, cfg.Width)
	assert.Equal(t, 264, cfg.Height)
}

func TestPageRenderer_Errors(t *testing.T) {
	brokenDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(brokenDir, render.LabelsTemplate), []byte("{% for label in %}"), 0644))
	broken, err := render.New(render.WithBaseDir(brokenDir))
	require.NoError(t, err)

	tests := []struct {
		name       string
		engine     *render.Engine
		rasterizer *fakeRasterizer
		opts       PageRendererOptions
		stage      string
	}{
		{name: "template", engine: broken, rasterizer: &fakeRasterizer{}, stage: "template"},
		{name: "pdf", rasterizer: &fakeRasterizer{pdfErr: errors.New("chrome crashed")}, stage: "pdf"},
		{
			name:       "preview",
			rasterizer: &fakeRasterizer{shotErr: errors.New("no screenshot")},
			opts:       PageRendererOptions{Preview: true},
			stage:      "preview",
		},
		{
			name:       "write",
			rasterizer: &fakeRasterizer{},
			opts:       PageRendererOptions{OutputDir: filepath.Join(t.TempDir(), "missing")},
			stage:      "write",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			renderer := newTestRenderer(t, tt.engine, tt.rasterizer, tt.opts)

			_, err := renderer.RenderPage(context.Background(), testBatch(t, renderer.opts.Paper))
			require.Error(t, err)
			assert.ErrorIs(t, err, models.ErrRender)

			var renderErr *models.RenderError
			require.ErrorAs(t, err, &renderErr)
			assert.Equal(t, tt.stage, renderErr.Stage)
			assert.Equal(t, 1, renderErr.Page)
		})
	}
}

func TestScalePreview(t *testing.T) {
	scaled, err := ScalePreview(pngOf(t, 800, 1000), 400)
	require.NoError(t, err)

	cfg, err := png.DecodeConfig(bytes.NewReader(scaled))
	require.NoError(t, err)
	assert.Equal(t, 400, cfg.Width)
	assert.Equal(t, 500, cfg.Height)

	// narrower images keep their size
	same, err := ScalePreview(pngOf(t, 100, 50), 400)
	require.NoError(t, err)
	cfg, err = png.DecodeConfig(bytes.NewReader(same))
	require.NoError(t, err)
	assert.Equal(t, 100, cfg.Width)

	_, err = ScalePreview([]byte("not an image"), 400)
	assert.Error(t, err)
}

func TestFormatUnits(t *testing.T) {
	assert.Equal(t, "40", formatUnits(40))
	assert.Equal(t, "703.33", formatUnits(703.3333))
	assert.Equal(t, "0.5", formatUnits(0.5))
	assert.Equal(t, "0", formatUnits(0))
}

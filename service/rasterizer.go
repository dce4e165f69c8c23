package service

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"mtg-labels/models"
)

// DefaultRenderTimeout bounds the rasterization of a single page
const DefaultRenderTimeout = 60 * time.Second

// chromePaths are checked in order when no browser path is configured
var chromePaths = []string{
	"/usr/bin/chromium",
	"/usr/bin/chromium-browser",
	"/usr/bin/google-chrome",
	"/usr/bin/google-chrome-stable",
	"/snap/bin/chromium",
	"/Applications/Google Chrome.app/Contents/MacOS/Google Chrome",
}

// DetectChromePath returns the Chrome/Chromium executable to use.
// configured wins when it exists, then CHROME_PATH, then common
// installation paths. An empty result lets chromedp search on its own.
func DetectChromePath(configured string) string {
	for _, candidate := range []string{configured, os.Getenv("CHROME_PATH")} {
		if candidate == "" {
			continue
		}
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	for _, path := range chromePaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ChromeRasterizer prints SVG pages with a headless Chrome. The browser is
// started on first use and shared by all pages until Close.
type ChromeRasterizer struct {
	chromePath string
	timeout    time.Duration
	logger     *slog.Logger

	mu            sync.Mutex
	browserCtx    context.Context
	cancelBrowser context.CancelFunc
	cancelAlloc   context.CancelFunc
}

// Ensure ChromeRasterizer implements Rasterizer
var _ Rasterizer = (*ChromeRasterizer)(nil)

// NewChromeRasterizer creates a new ChromeRasterizer
func NewChromeRasterizer(chromePath string, timeout time.Duration, logger *slog.Logger) *ChromeRasterizer {
	if timeout <= 0 {
		timeout = DefaultRenderTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ChromeRasterizer{
		chromePath: DetectChromePath(chromePath),
		timeout:    timeout,
		logger:     logger,
	}
}

// PDF prints the SVG file to a single PDF page of the paper size
func (c *ChromeRasterizer) PDF(ctx context.Context, svgPath string, paper models.PaperSize) ([]byte, error) {
	var pdfBuf []byte
	err := c.run(ctx, svgPath, paper,
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdfBuf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(paper.WidthInches()).
				WithPaperHeight(paper.HeightInches()).
				WithMarginTop(0).
				WithMarginBottom(0).
				WithMarginLeft(0).
				WithMarginRight(0).
				WithPageRanges("1").
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return pdfBuf, nil
}

// Screenshot captures the SVG page as PNG at 96 DPI
func (c *ChromeRasterizer) Screenshot(ctx context.Context, svgPath string, paper models.PaperSize) ([]byte, error) {
	var buf []byte
	err := c.run(ctx, svgPath, paper, chromedp.CaptureScreenshot(&buf))
	if err != nil {
		return nil, fmt.Errorf("failed to capture screenshot: %w", err)
	}
	return buf, nil
}

// Close shuts the browser down
func (c *ChromeRasterizer) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cancelBrowser != nil {
		c.cancelBrowser()
		c.cancelBrowser = nil
	}
	if c.cancelAlloc != nil {
		c.cancelAlloc()
		c.cancelAlloc = nil
	}
	c.browserCtx = nil
}

func (c *ChromeRasterizer) run(ctx context.Context, svgPath string, paper models.PaperSize, action chromedp.Action) error {
	browserCtx, err := c.browser()
	if err != nil {
		return err
	}

	target, err := fileURL(svgPath)
	if err != nil {
		return err
	}

	tabCtx, cancelTab := chromedp.NewContext(browserCtx)
	defer cancelTab()
	tabCtx, cancelTimeout := context.WithTimeout(tabCtx, c.timeout)
	defer cancelTimeout()

	// abort the tab when the caller gives up
	stop := context.AfterFunc(ctx, cancelTab)
	defer stop()

	width, height := paper.PixelSize()
	return chromedp.Run(tabCtx,
		chromedp.EmulateViewport(int64(width), int64(height)),
		chromedp.Navigate(target),
		chromedp.WaitReady(":root", chromedp.ByQuery),
		action,
	)
}

func (c *ChromeRasterizer) browser() (context.Context, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.browserCtx != nil {
		return c.browserCtx, nil
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox, // Required for running in Docker/containers
		chromedp.Flag("allow-file-access-from-files", true),
	)
	if c.chromePath != "" {
		opts = append(opts, chromedp.ExecPath(c.chromePath))
	} else {
		c.logger.Warn("no Chrome/Chromium found, letting chromedp search the PATH")
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(context.Background(), opts...)
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)

	// start the browser now so a missing binary fails the first page
	if err := chromedp.Run(browserCtx); err != nil {
		cancelBrowser()
		cancelAlloc()
		return nil, fmt.Errorf("failed to start browser: %w", err)
	}

	c.logger.Debug("browser started", "path", c.chromePath)
	c.browserCtx = browserCtx
	c.cancelBrowser = cancelBrowser
	c.cancelAlloc = cancelAlloc
	return browserCtx, nil
}

func fileURL(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	return (&url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}).String(), nil
}

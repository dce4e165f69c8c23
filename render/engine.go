package render

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"
)

// LabelsTemplate is the page template rendered for every sheet
const LabelsTemplate = "labels.svg"

//go:embed templates/*.svg
var embedded embed.FS

// Option configures the Engine before construction.
type Option func(*config)

type config struct {
	baseDir    string
	globalData map[string]any
}

// WithBaseDir loads templates from a directory on disk ahead of the
// embedded ones.
func WithBaseDir(dir string) Option {
	return func(cfg *config) {
		cfg.baseDir = strings.TrimSpace(dir)
	}
}

// WithGlobalData seeds values available to every template. Per-render data
// with the same key wins.
func WithGlobalData(data map[string]any) Option {
	return func(cfg *config) {
		if len(data) == 0 {
			return
		}
		if cfg.globalData == nil {
			cfg.globalData = make(map[string]any, len(data))
		}
		for key, value := range data {
			cfg.globalData[strings.TrimSpace(key)] = value
		}
	}
}

// Engine renders named templates with a pongo2 template set.
type Engine struct {
	mu sync.RWMutex

	templateSet *pongo2.TemplateSet
	templates   map[string]*pongo2.Template
}

// New constructs an Engine using the provided configuration options.
func New(options ...Option) (*Engine, error) {
	cfg := &config{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(cfg)
	}

	files, err := fs.Sub(embedded, "templates")
	if err != nil {
		return nil, fmt.Errorf("render: embedded templates: %w", err)
	}

	var loaders []pongo2.TemplateLoader
	if cfg.baseDir != "" {
		loader, err := pongo2.NewLocalFileSystemLoader(cfg.baseDir)
		if err != nil {
			return nil, fmt.Errorf("render: create local loader: %w", err)
		}
		loaders = append(loaders, loader)
	}
	loaders = append(loaders, pongo2.NewFSLoader(files))

	engine := &Engine{
		templateSet: pongo2.NewSet("mtglabels", loaders...),
		templates:   make(map[string]*pongo2.Template),
	}
	if len(cfg.globalData) > 0 {
		if engine.templateSet.Globals == nil {
			engine.templateSet.Globals = make(pongo2.Context)
		}
		engine.templateSet.Globals.Update(pongo2.Context(cfg.globalData))
	}

	return engine, nil
}

// Render executes the named template with data.
func (e *Engine) Render(name string, data map[string]any) ([]byte, error) {
	if e == nil || e.templateSet == nil {
		return nil, errors.New("render: engine is nil")
	}

	tmpl, err := e.getTemplate(name)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteWriter(pongo2.Context(data), &buf); err != nil {
		return nil, fmt.Errorf("render: execute template %q: %w", name, err)
	}
	return buf.Bytes(), nil
}

func (e *Engine) getTemplate(name string) (*pongo2.Template, error) {
	e.mu.RLock()
	if tmpl, ok := e.templates[name]; ok {
		e.mu.RUnlock()
		return tmpl, nil
	}
	e.mu.RUnlock()

	e.mu.Lock()
	defer e.mu.Unlock()

	if tmpl, ok := e.templates[name]; ok {
		return tmpl, nil
	}

	tmpl, err := e.templateSet.FromFile(name)
	if err != nil {
		return nil, fmt.Errorf("render: load template %q: %w", name, err)
	}

	e.templates[name] = tmpl
	return tmpl, nil
}

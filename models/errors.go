package models

import (
	"errors"
	"fmt"
)

// Error kinds shared across the pipeline. Match them with errors.Is.
var (
	ErrConfiguration    = errors.New("configuration error")
	ErrUnknownPaperSize = fmt.Errorf("%w: unknown paper size", ErrConfiguration)
	ErrUpstream         = errors.New("upstream catalog error")
	ErrDownload         = errors.New("icon download failed")
	ErrIconUnavailable  = errors.New("icon unavailable")
	ErrRender           = errors.New("render failed")
)

// UpstreamError reports a failed or malformed catalog response
type UpstreamError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *UpstreamError) Error() string {
	switch {
	case e.StatusCode != 0:
		return fmt.Sprintf("catalog %s returned status %d", e.URL, e.StatusCode)
	case e.Err != nil:
		return fmt.Sprintf("catalog %s: %v", e.URL, e.Err)
	default:
		return fmt.Sprintf("catalog %s failed", e.URL)
	}
}

func (e *UpstreamError) Unwrap() []error {
	return joinCauses(ErrUpstream, e.Err)
}

// DownloadError reports a failed icon download
type DownloadError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *DownloadError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("download %s: status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("download %s: %v", e.URL, e.Err)
}

func (e *DownloadError) Unwrap() []error {
	return joinCauses(ErrDownload, e.Err)
}

// IconError reports a set whose icon could not be resolved.
// The set is dropped from the run.
type IconError struct {
	Code string
	URI  string
	Err  error
}

func (e *IconError) Error() string {
	return fmt.Sprintf("icon for set %q unavailable: %v", e.Code, e.Err)
}

func (e *IconError) Unwrap() []error {
	return joinCauses(ErrIconUnavailable, e.Err)
}

// RenderError reports a page that could not be produced
type RenderError struct {
	Page  int
	Stage string // template, write, pdf, preview
	Err   error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render page %02d (%s): %v", e.Page, e.Stage, e.Err)
}

func (e *RenderError) Unwrap() []error {
	return joinCauses(ErrRender, e.Err)
}

func joinCauses(kind error, cause error) []error {
	if cause == nil {
		return []error{kind}
	}
	return []error{kind, cause}
}

package output

import (
	"errors"
	"fmt"

	"github.com/fatih/color"

	"mtg-labels/models"
)

// Exit code constants
const (
	ExitSuccess       = 0
	ExitGeneral       = 1
	ExitUsageError    = 2
	ExitUpstreamError = 3
	ExitConfigError   = 4
	ExitRenderError   = 5
)

// CLIError is a structured error with user-facing context
type CLIError struct {
	Summary    string
	Detail     string
	Suggestion string
	ExitCode   int
	Err        error
}

// Error implements the error interface, returning the summary
func (e *CLIError) Error() string {
	return e.Summary
}

func (e *CLIError) Unwrap() error {
	return e.Err
}

// Classify turns a pipeline error into a CLIError with an exit code
func Classify(err error) *CLIError {
	var cliErr *CLIError
	if errors.As(err, &cliErr) {
		return cliErr
	}

	switch {
	case errors.Is(err, models.ErrUnknownPaperSize):
		return &CLIError{
			Summary:    "unknown paper size",
			Detail:     err.Error(),
			Suggestion: fmt.Sprintf("use one of %v", models.PaperSizeNames()),
			ExitCode:   ExitConfigError,
			Err:        err,
		}
	case errors.Is(err, models.ErrConfiguration):
		return &CLIError{
			Summary:  "invalid configuration",
			Detail:   err.Error(),
			ExitCode: ExitConfigError,
			Err:      err,
		}
	case errors.Is(err, models.ErrUpstream):
		return &CLIError{
			Summary:    "could not fetch the set catalog",
			Detail:     err.Error(),
			Suggestion: "check network access to the catalog endpoint (catalog.url)",
			ExitCode:   ExitUpstreamError,
			Err:        err,
		}
	case errors.Is(err, models.ErrRender):
		return &CLIError{
			Summary:    "could not render labels",
			Detail:     err.Error(),
			Suggestion: "set render.chrome_path or CHROME_PATH to a Chrome/Chromium binary, or use --skip-pdf",
			ExitCode:   ExitRenderError,
			Err:        err,
		}
	default:
		return &CLIError{
			Summary:  err.Error(),
			ExitCode: ExitGeneral,
			Err:      err,
		}
	}
}

// FormatError prints a structured error message to stderr
func (p *Printer) FormatError(e *CLIError) {
	if p.useColors {
		color.New(color.FgRed, color.Bold).Fprintf(p.err, "Error: %s\n", e.Summary)
		if e.Detail != "" {
			fmt.Fprintf(p.err, "  Cause: %s\n", e.Detail)
		}
		if e.Suggestion != "" {
			color.New(color.FgCyan).Fprintf(p.err, "  Suggestion: %s\n", e.Suggestion)
		}
		return
	}

	fmt.Fprintf(p.err, "[ERROR] %s\n", e.Summary)
	if e.Detail != "" {
		fmt.Fprintf(p.err, "  Cause: %s\n", e.Detail)
	}
	if e.Suggestion != "" {
		fmt.Fprintf(p.err, "  Suggestion: %s\n", e.Suggestion)
	}
}

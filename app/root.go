package app

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"mtg-labels/config"
	"mtg-labels/models"
	"mtg-labels/output"
	"mtg-labels/service"
	"mtg-labels/utils"
)

var (
	cfgFile string
	verbose bool
	cfg     *config.Config
	logger  *slog.Logger
	version = "dev"

	// newServices is replaced in tests
	newServices = Initialize
)

// rootCmd generates the label sheets when called without a subcommand
var rootCmd = &cobra.Command{
	Use:   "mtglabels [SET...]",
	Short: "Generate printable Magic: The Gathering set labels",
	Long: `mtglabels fetches the Scryfall set catalog and renders printable label
sheets (SVG and PDF) with the name, code, release date and icon of each set.

Without arguments every set passing the default filter is printed. Set codes
on the command line select exactly those sets.

Example usage:
  mtglabels                         # All default sets on letter paper
  mtglabels lea mh3 --paper-size a4 # Two sets on A4
  mtglabels --skip-pdf --preview    # SVG and PNG previews only
  mtglabels list                    # Show what would be printed`,
	Args:          cobra.ArbitraryArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig(cmd)
	},
	RunE: runGenerate,
}

// Execute adds all child commands to the root command and runs it
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// SetVersion sets the version string for the CLI
func SetVersion(v string) {
	version = v
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .mtglabels.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	flags := rootCmd.Flags()
	flags.String("paper-size", models.DefaultPaperSize, "paper size ("+strings.Join(models.PaperSizeNames(), ", ")+")")
	flags.String("output-dir", "", "directory for the generated sheets (default ./output)")
	flags.String("cache-dir", service.DefaultCacheDir, "directory of the icon cache")
	flags.Int("workers", 1, "concurrent icon downloads")
	flags.Bool("preview", false, "also write a PNG preview of each page")
	flags.Bool("skip-pdf", false, "write SVG pages only")
	flags.String("chrome", "", "path to the Chrome/Chromium binary used for PDF output")
	flags.String("templates", "", "directory overriding the embedded label templates")

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return &output.CLIError{
			Summary:    err.Error(),
			Suggestion: "run '" + cmd.CommandPath() + " --help' for usage",
			ExitCode:   output.ExitUsageError,
			Err:        err,
		}
	})
}

// initConfig loads configuration and sets up the logger
func initConfig(cmd *cobra.Command) error {
	var err error

	logger = newLogger(cmd, "info")

	cfg, err = config.Load(cfgFile, cmd.Flags())
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger = newLogger(cmd, cfg.Logging.Level)
	slog.SetDefault(logger)

	logger.Debug("configuration loaded",
		"paper_size", cfg.PaperSize,
		"output_dir", cfg.OutputDir,
		"cache_dir", cfg.CacheDir,
		"workers", cfg.Workers,
	)
	return nil
}

func newLogger(cmd *cobra.Command, level string) *slog.Logger {
	logLevel := slog.LevelInfo
	switch strings.ToLower(level) {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	}
	if verbose {
		logLevel = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
		Level: logLevel,
	}))
}

func newPrinter(cmd *cobra.Command) *output.Printer {
	return output.NewPrinterWithWriters(cmd.OutOrStdout(), cmd.ErrOrStderr(), cfg.Output.Colors)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	printer := newPrinter(cmd)

	services, err := newServices(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer services.Close()

	started := time.Now()
	result, err := services.Labels.Run(ctx, service.RunOptions{
		Filter:    cfg.FilterFor(utils.NormalizeCodes(args)),
		PaperSize: cfg.PaperSize,
		OutputDir: cfg.OutputDir,
	})
	if err != nil {
		return err
	}

	printSummary(printer, result, time.Since(started))
	return nil
}

func printSummary(printer *output.Printer, result *service.RunResult, elapsed time.Duration) {
	for _, code := range result.UnknownCodes {
		printer.Warning("Unknown set code: %s", code)
	}
	if len(result.Skipped) > 0 {
		printer.Warning("Skipped %d set(s) without an icon: %s", len(result.Skipped), strings.Join(result.Skipped, ", "))
	}
	if len(result.Pages) == 0 {
		printer.Warning("No sets matched, nothing was rendered")
		return
	}

	for _, page := range result.Pages {
		if page.PDFPath != "" {
			printer.Info("  %s", page.PDFPath)
		} else {
			printer.Info("  %s", page.SVGPath)
		}
	}
	printer.Success("Rendered %d label(s) on %d page(s) in %s",
		result.Labels, len(result.Pages), elapsed.Round(time.Millisecond))
}

// Package config provides Viper-based configuration management for mtglabels
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"mtg-labels/models"
	"mtg-labels/service"
)

// Config represents the complete mtglabels configuration
type Config struct {
	PaperSize string         `mapstructure:"paper_size"`
	OutputDir string         `mapstructure:"output_dir"`
	CacheDir  string         `mapstructure:"cache_dir"`
	Workers   int            `mapstructure:"workers"`
	Catalog   CatalogConfig  `mapstructure:"catalog"`
	Filter    FilterConfig   `mapstructure:"filter"`
	Render    RenderConfig   `mapstructure:"render"`
	Database  DatabaseConfig `mapstructure:"database"`
	Drive     DriveConfig    `mapstructure:"drive"`
	Logging   LoggingConfig  `mapstructure:"logging"`
	Output    OutputConfig   `mapstructure:"output"`
}

// CatalogConfig contains catalog endpoint settings
type CatalogConfig struct {
	URL       string        `mapstructure:"url"`
	Timeout   time.Duration `mapstructure:"timeout"`
	UserAgent string        `mapstructure:"user_agent"`
}

// FilterConfig contains the default-mode filtering policy
type FilterConfig struct {
	MinimumSetSize int      `mapstructure:"minimum_set_size"`
	SetTypes       []string `mapstructure:"set_types"`
	IgnoredSets    []string `mapstructure:"ignored_sets"`
}

// RenderConfig contains page rendering settings
type RenderConfig struct {
	ChromePath   string        `mapstructure:"chrome_path"`
	Timeout      time.Duration `mapstructure:"timeout"`
	TemplateDir  string        `mapstructure:"template_dir"`
	Preview      bool          `mapstructure:"preview"`
	PreviewWidth int           `mapstructure:"preview_width"`
	SkipPDF      bool          `mapstructure:"skip_pdf"`
}

// DatabaseConfig enables the sheet history when URL is set
type DatabaseConfig struct {
	URL string `mapstructure:"url"`
}

// DriveConfig enables Drive publishing when FolderID is set
type DriveConfig struct {
	FolderID    string `mapstructure:"folder_id"`
	Credentials string `mapstructure:"credentials"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level string `mapstructure:"level"`
}

// OutputConfig contains output formatting settings
type OutputConfig struct {
	Colors bool `mapstructure:"colors"`
}

// flagKeys maps command-line flags to configuration keys
var flagKeys = map[string]string{
	"paper-size": "paper_size",
	"output-dir": "output_dir",
	"cache-dir":  "cache_dir",
	"workers":    "workers",
	"preview":    "render.preview",
	"skip-pdf":   "render.skip_pdf",
	"chrome":     "render.chrome_path",
	"templates":  "render.template_dir",
}

// Load reads configuration from file, environment variables and the flags
// that were set on the command line
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName(".mtglabels")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/mtglabels")
	}

	// MTGLABELS_PAPER_SIZE, MTGLABELS_RENDER_CHROME_PATH, ...
	v.SetEnvPrefix("MTGLABELS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if flags != nil {
		for name, key := range flagKeys {
			flag := flags.Lookup(name)
			if flag == nil || !flag.Changed {
				continue
			}
			if err := v.BindPFlag(key, flag); err != nil {
				return nil, fmt.Errorf("binding flag %s: %w", name, err)
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	applyEnvFallbacks(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// setDefaults configures default values
func setDefaults(v *viper.Viper) {
	v.SetDefault("paper_size", models.DefaultPaperSize)
	v.SetDefault("output_dir", defaultOutputDir())
	v.SetDefault("cache_dir", service.DefaultCacheDir)
	v.SetDefault("workers", 1)

	v.SetDefault("catalog.url", service.DefaultCatalogURL)
	v.SetDefault("catalog.timeout", 30*time.Second)
	v.SetDefault("catalog.user_agent", "mtglabels/1.0")

	v.SetDefault("filter.minimum_set_size", service.DefaultMinimumSetSize)
	v.SetDefault("filter.set_types", service.DefaultSetTypes)
	v.SetDefault("filter.ignored_sets", service.DefaultIgnoredSets)

	v.SetDefault("render.chrome_path", "")
	v.SetDefault("render.timeout", service.DefaultRenderTimeout)
	v.SetDefault("render.template_dir", "")
	v.SetDefault("render.preview", false)
	v.SetDefault("render.preview_width", service.DefaultPreviewWidth)
	v.SetDefault("render.skip_pdf", false)

	v.SetDefault("database.url", "")
	v.SetDefault("drive.folder_id", "")
	v.SetDefault("drive.credentials", "")

	v.SetDefault("logging.level", "info")
	v.SetDefault("output.colors", true)
}

// applyEnvFallbacks honors the conventional variables of the collaborators
func applyEnvFallbacks(cfg *Config) {
	if cfg.Drive.Credentials == "" {
		cfg.Drive.Credentials = os.Getenv("GOOGLE_APPLICATION_CREDENTIALS")
	}
	if cfg.Render.ChromePath == "" {
		cfg.Render.ChromePath = os.Getenv("CHROME_PATH")
	}
}

func defaultOutputDir() string {
	cwd, err := os.Getwd()
	if err != nil {
		return "output"
	}
	return filepath.Join(cwd, "output")
}

// Validate checks values that would otherwise fail late in a run.
// Every failure wraps models.ErrConfiguration.
func Validate(cfg *Config) error {
	if _, err := models.LookupPaperSize(cfg.PaperSize); err != nil {
		return err
	}
	if strings.TrimSpace(cfg.OutputDir) == "" {
		return fmt.Errorf("%w: output_dir must not be empty", models.ErrConfiguration)
	}
	if cfg.Workers < 1 {
		return fmt.Errorf("%w: workers must be at least 1, got %d", models.ErrConfiguration, cfg.Workers)
	}
	if cfg.Filter.MinimumSetSize < 0 {
		return fmt.Errorf("%w: filter.minimum_set_size must not be negative", models.ErrConfiguration)
	}
	switch strings.ToLower(cfg.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: logging.level must be debug, info, warn or error, got %q", models.ErrConfiguration, cfg.Logging.Level)
	}
	return nil
}

// FilterFor builds the filtering policy of a run. Explicit set codes switch
// to allow-list mode.
func (c *Config) FilterFor(setCodes []string) models.FilterConfig {
	return models.FilterConfig{
		IgnoredSets:    c.Filter.IgnoredSets,
		SetTypes:       c.Filter.SetTypes,
		MinimumSetSize: c.Filter.MinimumSetSize,
		SetCodes:       setCodes,
	}
}

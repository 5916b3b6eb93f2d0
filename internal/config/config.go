// Package config loads application configuration from file and environment.
package config

import (
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Data     DataConfig     `yaml:"data" mapstructure:"data"`
	Catalog  CatalogConfig  `yaml:"catalog" mapstructure:"catalog"`
	HTTP     HTTPConfig     `yaml:"http" mapstructure:"http"`
	Source   SourceConfig   `yaml:"source" mapstructure:"source"`
	Validate ValidateConfig `yaml:"validate" mapstructure:"validate"`
	Extract  ExtractConfig  `yaml:"extract" mapstructure:"extract"`
	PDF      PDFConfig      `yaml:"pdf" mapstructure:"pdf"`
	RunLog   RunLogConfig   `yaml:"runlog" mapstructure:"runlog"`
	Log      LogConfig      `yaml:"log" mapstructure:"log"`
}

// DataConfig configures on-disk layout.
type DataConfig struct {
	PDFDir    string `yaml:"pdf_dir" mapstructure:"pdf_dir"`
	LedgerDir string `yaml:"ledger_dir" mapstructure:"ledger_dir"`
}

// CatalogConfig configures the product catalog source.
type CatalogConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// HTTPConfig configures the document fetcher.
type HTTPConfig struct {
	UserAgent      string `yaml:"user_agent" mapstructure:"user_agent"`
	TimeoutSecs    int    `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	MaxRetries     int    `yaml:"max_retries" mapstructure:"max_retries"`
	RequestsPerSec int    `yaml:"requests_per_sec" mapstructure:"requests_per_sec"`
}

// SourceConfig configures candidate URL generation and acquisition pacing.
type SourceConfig struct {
	BaseURL            string `yaml:"base_url" mapstructure:"base_url"`
	CandidateDelayMS   int    `yaml:"candidate_delay_ms" mapstructure:"candidate_delay_ms"`
	DateDelayMS        int    `yaml:"date_delay_ms" mapstructure:"date_delay_ms"`
	ProbeConcurrency   int    `yaml:"probe_concurrency" mapstructure:"probe_concurrency"`
	FallbackPriorDay   bool   `yaml:"fallback_prior_day" mapstructure:"fallback_prior_day"`
}

// ValidateConfig configures document validity checks.
type ValidateConfig struct {
	MinBytes       int      `yaml:"min_bytes" mapstructure:"min_bytes"`
	TextPrefixLen  int      `yaml:"text_prefix_len" mapstructure:"text_prefix_len"`
	MarkerKeywords []string `yaml:"marker_keywords" mapstructure:"marker_keywords"`
}

// ExtractConfig configures the extraction strategy pipeline.
type ExtractConfig struct {
	// MinPrice and MaxPrice bound the plausible price magnitude; numbers
	// outside the range (page numbers, years, phone numbers) are rejected.
	MinPrice   float64 `yaml:"min_price" mapstructure:"min_price"`
	MaxPrice   float64 `yaml:"max_price" mapstructure:"max_price"`
	WindowSize int     `yaml:"window_size" mapstructure:"window_size"`
}

// PDFConfig configures PDF text extraction.
type PDFConfig struct {
	PdfToTextPath string `yaml:"pdftotext_path" mapstructure:"pdftotext_path"`
}

// RunLogConfig configures the run-history database. An empty path disables it.
type RunLogConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// HTTPTimeout returns the fetch timeout as a duration.
func (c HTTPConfig) HTTPTimeout() time.Duration {
	return time.Duration(c.TimeoutSecs) * time.Second
}

// CandidateDelay returns the pause between candidate URL attempts.
func (c SourceConfig) CandidateDelay() time.Duration {
	return time.Duration(c.CandidateDelayMS) * time.Millisecond
}

// DateDelay returns the pause between processed dates.
func (c SourceConfig) DateDelay() time.Duration {
	return time.Duration(c.DateDelayMS) * time.Millisecond
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("RECKONER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("data.pdf_dir", "pdfs")
	v.SetDefault("data.ledger_dir", "csv_data")
	v.SetDefault("catalog.path", "")
	v.SetDefault("http.user_agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36")
	v.SetDefault("http.timeout_secs", 30)
	v.SetDefault("http.max_retries", 2)
	v.SetDefault("http.requests_per_sec", 2)
	v.SetDefault("source.base_url", "https://www.hindalco.com")
	v.SetDefault("source.candidate_delay_ms", 500)
	v.SetDefault("source.date_delay_ms", 2000)
	v.SetDefault("source.probe_concurrency", 8)
	v.SetDefault("source.fallback_prior_day", true)
	v.SetDefault("validate.min_bytes", 1000)
	v.SetDefault("validate.text_prefix_len", 4000)
	v.SetDefault("validate.marker_keywords", []string{"reckoner", "hindalco", "copper", "price"})
	v.SetDefault("extract.min_price", 100)
	v.SetDefault("extract.max_price", 5000000)
	v.SetDefault("extract.window_size", 120)
	v.SetDefault("pdf.pdftotext_path", "pdftotext")
	v.SetDefault("runlog.path", "runlog.db")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}

package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	apperrors "livingwage/internal/errors"
)

// EnvPrefix namespaces every environment variable read by Load (LW_REPORT_WIDTH, ...)
const EnvPrefix = "LW"

// Config represents the complete application configuration
type Config struct {
	Logging LoggingConfig `yaml:"logging"`
	Paths   PathsConfig   `yaml:"paths"`
	Report  ReportConfig  `yaml:"report"`
	Tracing TracingConfig `yaml:"tracing"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" split_words:"true"`
	Format   string `yaml:"format" split_words:"true"`
	Output   string `yaml:"output" split_words:"true"`
	FilePath string `yaml:"file_path" split_words:"true"`
}

// PathsConfig contains file system paths configuration
type PathsConfig struct {
	BaseDir     string `yaml:"base_dir" split_words:"true"`
	DataDir     string `yaml:"data_dir" split_words:"true"`
	ReportsDir  string `yaml:"reports_dir" split_words:"true"`
	LogsDir     string `yaml:"logs_dir" split_words:"true"`
	WagesFile   string `yaml:"wages_file" split_words:"true"`
	SunriseFile string `yaml:"sunrise_file" split_words:"true"`
}

// ReportConfig controls table printing and chart output
type ReportConfig struct {
	Width       int    `yaml:"width" split_words:"true"`
	TopN        int    `yaml:"top_n" split_words:"true"`
	ChartTop    int    `yaml:"chart_top" split_words:"true"`
	ChartFormat string `yaml:"chart_format" split_words:"true"`
	Headless    bool   `yaml:"headless" split_words:"true"`
}

// TracingConfig controls span export. Spans are written as JSON lines.
type TracingConfig struct {
	Exporter    string  `yaml:"exporter" split_words:"true"`
	FilePath    string  `yaml:"file_path" split_words:"true"`
	SampleRatio float64 `yaml:"sample_ratio" split_words:"true"`
}

// Load builds the configuration from defaults, an optional YAML file and the
// environment, in increasing order of precedence. An empty configFile falls back
// to the well-known locations searched by getConfigFilePath.
func Load(configFile string) (*Config, error) {
	cfg := Default()

	if configFile == "" {
		configFile = getConfigFilePath()
	}
	if configFile != "" {
		if err := loadFromFile(configFile, cfg); err != nil {
			return nil, apperrors.NewConfigError(fmt.Sprintf("failed to load config from %s", configFile), err)
		}
	}

	// Only variables that are set override; Default() carries the defaults.
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, apperrors.NewConfigError("failed to load config from environment", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, apperrors.NewConfigError("config validation failed", err)
	}

	return cfg, nil
}

// loadFromFile overlays the YAML file onto cfg; keys absent from the file keep their value
func loadFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// validate validates the configuration
func (c *Config) validate() error {
	if c.Report.Width <= 0 {
		return fmt.Errorf("report width must be positive, got %d", c.Report.Width)
	}
	if c.Report.TopN <= 0 {
		return fmt.Errorf("report top_n must be positive, got %d", c.Report.TopN)
	}
	if c.Report.ChartTop < 0 {
		return fmt.Errorf("report chart_top must not be negative, got %d", c.Report.ChartTop)
	}

	c.Report.ChartFormat = strings.ToLower(c.Report.ChartFormat)
	switch c.Report.ChartFormat {
	case ChartFormatHTML, ChartFormatXLSX, ChartFormatNone:
	default:
		return fmt.Errorf("unknown chart format %q", c.Report.ChartFormat)
	}

	switch strings.ToLower(c.Logging.Output) {
	case "console", "file", "both":
	default:
		return fmt.Errorf("unknown logging output %q", c.Logging.Output)
	}

	// JSON is the only supported format
	c.Logging.Format = "json"

	if c.Logging.FilePath == "" {
		c.Logging.FilePath = DefaultLogFile
	}

	c.Tracing.Exporter = strings.ToLower(c.Tracing.Exporter)
	switch c.Tracing.Exporter {
	case TraceExporterFile, TraceExporterStderr, TraceExporterNone:
	default:
		return fmt.Errorf("unknown trace exporter %q", c.Tracing.Exporter)
	}
	if c.Tracing.SampleRatio < 0 || c.Tracing.SampleRatio > 1 {
		return fmt.Errorf("tracing sample_ratio must be between 0 and 1, got %v", c.Tracing.SampleRatio)
	}
	if c.Tracing.FilePath == "" {
		c.Tracing.FilePath = DefaultTraceFile
	}

	if c.Paths.WagesFile == "" || c.Paths.SunriseFile == "" {
		return fmt.Errorf("dataset file names must not be empty")
	}

	return nil
}

// getConfigFilePath returns the path to the config file
func getConfigFilePath() string {
	locations := []string{
		"livingwage.yaml",
		"configs/livingwage.yaml",
		"../configs/livingwage.yaml",
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}

	return ""
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "json",
			Output:   "console",
			FilePath: DefaultLogFile,
		},
		Paths: PathsConfig{
			BaseDir:     ".",
			DataDir:     DefaultDataDir,
			ReportsDir:  DefaultReportsDir,
			LogsDir:     DefaultLogsDir,
			WagesFile:   DefaultWagesFile,
			SunriseFile: DefaultSunriseFile,
		},
		Report: ReportConfig{
			Width:       DefaultColumnWidth,
			TopN:        DefaultTopN,
			ChartTop:    DefaultChartTop,
			ChartFormat: ChartFormatNone,
		},
		Tracing: TracingConfig{
			Exporter:    TraceExporterFile,
			FilePath:    DefaultTraceFile,
			SampleRatio: 1.0,
		},
	}
}

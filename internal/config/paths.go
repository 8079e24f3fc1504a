package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Paths contains the resolved file system locations used by the tools.
// Every path is relative to BaseDir unless configured as absolute.
type Paths struct {
	BaseDir    string
	DataDir    string
	ReportsDir string
	LogsDir    string

	WagesCSV   string
	SunriseCSV string
}

// ResolvePaths turns the configured names into concrete paths
func (c *Config) ResolvePaths() (*Paths, error) {
	base := c.Paths.BaseDir
	if base == "" {
		base = "."
	}
	base, err := filepath.Abs(base)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve base directory: %w", err)
	}

	p := &Paths{
		BaseDir:    base,
		DataDir:    resolve(base, c.Paths.DataDir),
		ReportsDir: resolve(base, c.Paths.ReportsDir),
		LogsDir:    resolve(base, c.Paths.LogsDir),
	}
	p.WagesCSV = p.GetDataPath(c.Paths.WagesFile)
	p.SunriseCSV = p.GetDataPath(c.Paths.SunriseFile)
	return p, nil
}

func resolve(base, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}

// EnsureDirectories creates the output directories if they don't exist.
// The data directory is input only and is never created.
func (p *Paths) EnsureDirectories() error {
	for _, dir := range []string{p.ReportsDir, p.LogsDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
		slog.Debug("Ensured directory exists", slog.String("directory", dir))
	}
	return nil
}

// GetDataPath returns the path for an input dataset
func (p *Paths) GetDataPath(filename string) string {
	return resolve(p.DataDir, filename)
}

// GetReportPath returns the path for a report file
func (p *Paths) GetReportPath(filename string) string {
	return resolve(p.ReportsDir, filename)
}

// GetLogPath returns the path for a log file
func (p *Paths) GetLogPath(filename string) string {
	return resolve(p.LogsDir, filename)
}

// LogPathResolution logs the resolved paths for debugging
func (p *Paths) LogPathResolution(logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Debug("Path resolution summary",
		slog.Group("directories",
			slog.String("base", p.BaseDir),
			slog.String("data", p.DataDir),
			slog.String("reports", p.ReportsDir),
			slog.String("logs", p.LogsDir),
		),
		slog.Group("datasets",
			slog.String("wages", p.WagesCSV),
			slog.String("sunrise", p.SunriseCSV),
		))
}

// FileExists checks if a file exists
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}

package files

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	apperrors "livingwage/internal/errors"
)

// FileInfo represents information about a discovered file
type FileInfo struct {
	Path    string
	Name    string
	Size    int64
	ModTime time.Time
}

// Discovery finds dataset files under a base directory
type Discovery struct {
	basePath string
}

// NewDiscovery creates a new file discovery instance
func NewDiscovery(basePath string) *Discovery {
	return &Discovery{basePath: basePath}
}

// FindDataFiles lists the CSV and XLSX files in dir, sorted by name.
// Excel lock files (~$name.xlsx) are skipped.
func (d *Discovery) FindDataFiles(dir string) ([]FileInfo, error) {
	return d.find(dir, func(name string) bool {
		ext := strings.ToLower(filepath.Ext(name))
		return (ext == ".csv" || ext == ".xlsx") && !strings.HasPrefix(name, "~$")
	})
}

func (d *Discovery) find(dir string, keep func(name string) bool) ([]FileInfo, error) {
	fullPath := dir
	if !filepath.IsAbs(dir) {
		fullPath = filepath.Join(d.basePath, dir)
	}

	entries, err := os.ReadDir(fullPath)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to read directory "+fullPath, err)
	}

	files := []FileInfo{}
	for _, entry := range entries {
		if entry.IsDir() || !keep(entry.Name()) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		files = append(files, FileInfo{
			Path:    filepath.Join(fullPath, entry.Name()),
			Name:    entry.Name(),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Name < files[j].Name
	})
	return files, nil
}

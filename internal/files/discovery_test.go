package files

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644))
	}
}

func names(files []FileInfo) []string {
	out := make([]string, 0, len(files))
	for _, f := range files {
		out = append(out, f.Name)
	}
	return out
}

func TestDiscovery_FindDataFiles(t *testing.T) {
	base := t.TempDir()
	dataDir := filepath.Join(base, "DataFiles")
	require.NoError(t, os.MkdirAll(filepath.Join(dataDir, "archive.csv"), 0755))
	createFiles(t, dataDir, "wages.csv", "sunRiseSet.csv", "wages.XLSX", "~$wages.xlsx", "notes.txt")

	d := NewDiscovery(base)

	tests := []struct {
		name string
		dir  string
	}{
		{"relative to base", "DataFiles"},
		{"absolute", dataDir},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			files, err := d.FindDataFiles(tt.dir)
			require.NoError(t, err)
			assert.Equal(t, []string{"sunRiseSet.csv", "wages.XLSX", "wages.csv"}, names(files))
			assert.Equal(t, filepath.Join(dataDir, "sunRiseSet.csv"), files[0].Path)
			assert.Equal(t, int64(1), files[0].Size)
		})
	}
}

func TestDiscovery_FindDataFiles_MissingDir(t *testing.T) {
	_, err := NewDiscovery(t.TempDir()).FindDataFiles("nope")
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

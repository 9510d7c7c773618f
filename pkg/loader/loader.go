// pkg/loader/loader.go
package loader

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"go.uber.org/zap"

	"github.com/datainf-eval/noisegen/pkg/model"
)

// ErrDatasetNotFound indicates a dataset file missing from the data directory.
var ErrDatasetNotFound = errors.New("loader: dataset file not found")

// Loader reads and writes datasets as JSON record arrays under one data
// directory. File naming is <name>.json for originals and arbitrary for
// generated variants.
type Loader struct {
	dataDir string
	logger  *zap.Logger
}

// New creates a Loader rooted at dataDir.
func New(dataDir string, logger *zap.Logger) (*Loader, error) {
	if dataDir == "" {
		return nil, errors.New("data directory cannot be empty")
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	return &Loader{dataDir: dataDir, logger: logger}, nil
}

// DataDir returns the loader's root directory.
func (l *Loader) DataDir() string {
	return l.dataDir
}

// Load reads the named dataset (<name>.json) into a table.
func (l *Loader) Load(name string) (*model.Table, error) {
	path := filepath.Join(l.dataDir, name+".json")

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrDatasetNotFound, path)
		}
		return nil, fmt.Errorf("failed to read dataset %s: %w", name, err)
	}

	table, err := model.UnmarshalRecords(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse dataset %s: %w", name, err)
	}

	l.logger.Info("Dataset loaded",
		zap.String("dataset", name),
		zap.Int("rows", table.RowCount()),
		zap.Strings("columns", table.Columns()))

	return table, nil
}

// Save writes a table as a JSON record array to filename inside the data
// directory, creating the directory if needed.
func (l *Loader) Save(table *model.Table, filename string) (string, error) {
	if table == nil {
		return "", errors.New("table cannot be nil")
	}

	if err := os.MkdirAll(l.dataDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create data directory: %w", err)
	}

	data, err := model.MarshalRecords(table)
	if err != nil {
		return "", fmt.Errorf("failed to encode dataset: %w", err)
	}

	path := filepath.Join(l.dataDir, filename)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write dataset %s: %w", path, err)
	}

	l.logger.Info("Dataset saved",
		zap.String("path", path),
		zap.Int("rows", table.RowCount()),
		zap.Int("bytes", len(data)))

	return path, nil
}

// FileInfo describes one stored dataset file.
type FileInfo struct {
	Name  string
	Bytes int64
}

// List returns the JSON files currently under the data directory, sorted by
// name. A missing directory is reported as an empty listing.
func (l *Loader) List() ([]FileInfo, error) {
	entries, err := os.ReadDir(l.dataDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read data directory: %w", err)
	}

	var infos []FileInfo
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		fi, err := entry.Info()
		if err != nil {
			continue
		}
		infos = append(infos, FileInfo{Name: entry.Name(), Bytes: fi.Size()})
	}

	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
	return infos, nil
}

// Clear removes every JSON file from the data directory and returns how many
// files were deleted.
func (l *Loader) Clear() (int, error) {
	infos, err := l.List()
	if err != nil {
		return 0, err
	}

	removed := 0
	for _, info := range infos {
		path := filepath.Join(l.dataDir, info.Name)
		if err := os.Remove(path); err != nil {
			return removed, fmt.Errorf("failed to remove %s: %w", path, err)
		}
		removed++
	}

	l.logger.Info("Data directory cleared",
		zap.String("dir", l.dataDir),
		zap.Int("removed", removed))

	return removed, nil
}

// pkg/loader/loader_test.go
package loader

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/datainf-eval/noisegen/pkg/model"
)

func newLoader(t *testing.T) *Loader {
	t.Helper()
	ld, err := New(t.TempDir(), zap.NewNop())
	require.NoError(t, err)
	return ld
}

func sampleTable(t *testing.T) *model.Table {
	t.Helper()
	table, err := model.NewTable(
		[]string{"sentence", "label"},
		[]model.Row{
			{"sentence": "an engaging and heartfelt film", "label": float64(1)},
			{"sentence": "a tedious mess", "label": float64(0)},
		},
	)
	require.NoError(t, err)
	return table
}

func TestNewValidation(t *testing.T) {
	_, err := New("", zap.NewNop())
	assert.Error(t, err)

	_, err = New("somewhere", nil)
	assert.Error(t, err)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	ld := newLoader(t)
	table := sampleTable(t)

	path, err := ld.Save(table, "sst2.json")
	require.NoError(t, err)
	assert.FileExists(t, path)

	loaded, err := ld.Load("sst2")
	require.NoError(t, err)

	assert.Equal(t, table.Columns(), loaded.Columns())
	assert.Equal(t, table.RowCount(), loaded.RowCount())
	assert.Equal(t, "a tedious mess", loaded.CellString(1, "sentence"))
	assert.Equal(t, "1", loaded.CellString(0, "label"))
}

func TestLoadMissingDataset(t *testing.T) {
	ld := newLoader(t)
	_, err := ld.Load("nope")
	assert.True(t, errors.Is(err, ErrDatasetNotFound))
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	ld := newLoader(t)
	require.NoError(t, os.WriteFile(filepath.Join(ld.DataDir(), "bad.json"), []byte("{broken"), 0o644))

	_, err := ld.Load("bad")
	assert.Error(t, err)
}

func TestListAndClear(t *testing.T) {
	ld := newLoader(t)
	table := sampleTable(t)

	_, err := ld.Save(table, "b.json")
	require.NoError(t, err)
	_, err = ld.Save(table, "a.json")
	require.NoError(t, err)

	infos, err := ld.List()
	require.NoError(t, err)
	require.Len(t, infos, 2)
	assert.Equal(t, "a.json", infos[0].Name)
	assert.Equal(t, "b.json", infos[1].Name)
	assert.Positive(t, infos[0].Bytes)

	removed, err := ld.Clear()
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	infos, err = ld.List()
	require.NoError(t, err)
	assert.Empty(t, infos)
}

func TestListMissingDirectoryIsEmpty(t *testing.T) {
	ld, err := New(filepath.Join(t.TempDir(), "does-not-exist"), zap.NewNop())
	require.NoError(t, err)

	infos, err := ld.List()
	require.NoError(t, err)
	assert.Empty(t, infos)
}

package lib

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "wafer.g85")
	require.NoError(t, os.WriteFile(src, []byte(sample), 0644))

	abs, err := Normalize(src)
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(abs))
	assert.True(t, Exists(abs))

	_, err = Normalize(filepath.Join(dir, "missing.g85"))
	assert.Error(t, err)
}

func TestMarshalEntry(t *testing.T) {
	entry := &Entry{ID: "x", Name: "wafer.g85", LotId: "A1.2", Rows: 3, Columns: 4}

	data, err := Marshal(entry)
	require.NoError(t, err)

	got := &Entry{}
	require.NoError(t, Unmarshal(data, got))
	assert.Equal(t, entry, got)
}

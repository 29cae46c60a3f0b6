package lib

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mholt/archiver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeMaps(t *testing.T, dir string, maps map[string]*WaferMap) []string {
	t.Helper()

	paths := []string{}
	for name, m := range maps {
		path := filepath.Join(dir, name)
		require.NoError(t, WriteFile(path, m))
		paths = append(paths, path)
	}

	return paths
}

func TestReadArchive(t *testing.T) {
	dir := t.TempDir()
	sources := writeMaps(t, dir, map[string]*WaferMap{
		"b.g85": fill(2, 2, Pass),
		"a.g85": fill(3, 3, Null),
	})
	notes := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(notes, []byte("pass 2 rescanned"), 0644))

	zip := filepath.Join(dir, "lot.zip")
	require.NoError(t, archiver.Archive(append(sources, notes), zip))

	assert.True(t, IsArchive(zip))
	maps, err := ReadArchive(zip)
	require.NoError(t, err)

	require.Len(t, maps, 2)
	assert.Equal(t, "a.g85", maps[0].Name)
	assert.Equal(t, "b.g85", maps[1].Name)
	assert.Equal(t, Null, maps[0].Map.Dies[Coord{X: 2, Y: 2}])
	assert.Len(t, maps[1].Map.Dies, 4)
}

func TestLoadNamed(t *testing.T) {
	dir := t.TempDir()
	sources := writeMaps(t, dir, map[string]*WaferMap{
		"scan1.g85": fill(2, 2, Pass),
		"scan2.g85": fill(2, 2, Pass),
	})
	zip := filepath.Join(dir, "scans.zip")
	require.NoError(t, archiver.Archive(sources, zip))

	control := filepath.Join(dir, "control.xml")
	require.NoError(t, WriteFile(control, fill(4, 4, Pass)))

	named, err := LoadNamed([]string{control, zip})
	require.NoError(t, err)

	names := []string{}
	for _, nm := range named {
		names = append(names, nm.Name)
	}
	assert.Equal(t, []string{"control.xml", "scan1.g85", "scan2.g85"}, names)

	maps, err := LoadMaps([]string{zip, control})
	require.NoError(t, err)
	require.Len(t, maps, 3)
	assert.Len(t, maps[2].Dies, 16)
}

func TestLoadNamedErrors(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.g85")
	require.NoError(t, os.WriteFile(bad, []byte("<Wafer/>"), 0644))

	_, err := LoadNamed([]string{bad})
	assert.Error(t, err)

	_, err = LoadNamed([]string{filepath.Join(dir, "missing.g85")})
	assert.Error(t, err)
}

func TestIsMapFile(t *testing.T) {
	assert.True(t, IsMapFile("lot.g85"))
	assert.True(t, IsMapFile("LOT.XML"))
	assert.True(t, IsMapFile("a/b/c.map"))
	assert.False(t, IsMapFile("lot.zip"))
	assert.False(t, IsArchive("lot.g85"))
	assert.True(t, IsArchive("lot.tar.gz"))
}

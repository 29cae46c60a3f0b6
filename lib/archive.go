package lib

import (
	"fmt"
	"io"
	"path/filepath"
	"sort"

	"github.com/mholt/archiver"
)

// NamedMap is a parsed map and the file it came from.
type NamedMap struct {
	Name string
	Map  *WaferMap
}

// IsArchive reports whether src is an archive format that ReadArchive can
// open.
func IsArchive(src string) bool {
	_, err := archiver.ByExtension(src)
	return err == nil
}

// ReadArchive parses every G85 file inside an archive and returns them
// sorted by file name, which is the order scan passes are merged in.
func ReadArchive(src string) ([]NamedMap, error) {
	maps := []NamedMap{}
	err := archiver.Walk(src, func(f archiver.File) error {
		if f.IsDir() || !IsMapFile(f.Name()) {
			return nil
		}

		data, err := io.ReadAll(f)
		if err != nil {
			return fmt.Errorf("reading %s: %w", f.Name(), err)
		}

		m, err := Parse(string(data))
		if err != nil {
			return fmt.Errorf("parsing %s: %w", f.Name(), err)
		}

		maps = append(maps, NamedMap{Name: f.Name(), Map: m})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(maps, func(i, j int) bool { return maps[i].Name < maps[j].Name })
	return maps, nil
}

// LoadNamed reads map files in order. Archives contribute all of their maps,
// sorted by name.
func LoadNamed(paths []string) ([]NamedMap, error) {
	named := []NamedMap{}
	for _, path := range paths {
		if !IsMapFile(path) && IsArchive(path) {
			maps, err := ReadArchive(path)
			if err != nil {
				return nil, err
			}
			named = append(named, maps...)
			continue
		}

		m, err := ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		named = append(named, NamedMap{Name: filepath.Base(path), Map: m})
	}

	return named, nil
}

// LoadMaps is LoadNamed without the names.
func LoadMaps(paths []string) ([]*WaferMap, error) {
	named, err := LoadNamed(paths)
	if err != nil {
		return nil, err
	}

	maps := make([]*WaferMap, 0, len(named))
	for _, nm := range named {
		maps = append(maps, nm.Map)
	}

	return maps, nil
}

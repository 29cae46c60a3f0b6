package lib

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func Exists(path string) bool {
	if _, err := os.Stat(path); err == nil {
		return true
	} else if os.IsNotExist(err) {
		return false
	}

	return true
}

/*
	return an encoded object as bytes
*/
func Marshal(v interface{}) ([]byte, error) {
	b := new(bytes.Buffer)
	err := gob.NewEncoder(b).Encode(v)
	if err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

/*
	return a decoded object from bytes
*/
func Unmarshal(data []byte, v interface{}) error {
	b := bytes.NewBuffer(data)
	return gob.NewDecoder(b).Decode(v)
}

/*
	G85 files are seen with any of these extensions
*/
var mapExtensions = []string{".g85", ".xml", ".map"}

// IsMapFile reports whether name looks like a G85 map file.
func IsMapFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range mapExtensions {
		if ext == e {
			return true
		}
	}

	return false
}

// Normalize returns the absolute path of an existing G85 file or archive.
func Normalize(src string) (string, error) {
	abs, err := filepath.Abs(src)
	if err != nil {
		return "", err
	}

	if !Exists(abs) {
		return "", fmt.Errorf("%s does not exist", abs)
	}

	return abs, nil
}

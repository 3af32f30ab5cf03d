// Package util provides small file helpers shared by the CLI and parser.
package util

import (
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// OpenFile opens an input file, transparently decompressing gzip.
// The returned cleanup must be called when done reading.
func OpenFile(path string) (io.Reader, func() error, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}

	if IsGzipFile(path) {
		gz, err := gzip.NewReader(file)
		if err != nil {
			file.Close()
			return nil, nil, err
		}
		cleanup := func() error {
			gz.Close()
			return file.Close()
		}
		return gz, cleanup, nil
	}

	return file, file.Close, nil
}

// IsGzipFile reports whether the path names a gzip-compressed file.
func IsGzipFile(path string) bool {
	return strings.HasSuffix(strings.ToLower(path), ".gz")
}

// BaseFormat returns the lowercase extension after stripping a .gz
// suffix: "events.csv.gz" -> ".csv".
func BaseFormat(path string) string {
	if IsGzipFile(path) {
		path = path[:len(path)-3]
	}
	return strings.ToLower(filepath.Ext(path))
}

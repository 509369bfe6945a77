package memory

import (
	"archive/zip"
	"bytes"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/sevenzip"
)

// ErrEmptyArchive is returned when an archive holds no file to load.
var ErrEmptyArchive = errors.New("archive is empty")

// LoadFile reads a ROM or boot ROM image from disk. Raw images (.gb, .gbc,
// .bin or no extension) are returned as they are; .zip and .7z archives yield
// their first file and .gz files are decompressed.
func LoadFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".gz":
		decoder, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("opening gzip %s: %w", path, err)
		}
		defer decoder.Close()
		return readAll(path, decoder)
	case ".zip":
		r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
		if err != nil {
			return nil, fmt.Errorf("opening zip %s: %w", path, err)
		}
		for _, f := range r.File {
			if f.FileInfo().IsDir() {
				continue
			}
			rc, err := f.Open()
			if err != nil {
				return nil, fmt.Errorf("opening %s in %s: %w", f.Name, path, err)
			}
			defer rc.Close()
			return readAll(path, rc)
		}
		return nil, fmt.Errorf("%s: %w", path, ErrEmptyArchive)
	case ".7z":
		r, err := sevenzip.NewReader(bytes.NewReader(data), int64(len(data)))
		if err != nil {
			return nil, fmt.Errorf("opening 7z %s: %w", path, err)
		}
		for _, f := range r.File {
			if f.FileInfo().IsDir() {
				continue
			}
			rc, err := f.Open()
			if err != nil {
				return nil, fmt.Errorf("opening %s in %s: %w", f.Name, path, err)
			}
			defer rc.Close()
			return readAll(path, rc)
		}
		return nil, fmt.Errorf("%s: %w", path, ErrEmptyArchive)
	default:
		return data, nil
	}
}

func readAll(path string, r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("decompressing %s: %w", path, err)
	}
	return data, nil
}

// LoadCartridge loads a ROM file and parses its header.
func LoadCartridge(path string) (*Cartridge, error) {
	data, err := LoadFile(path)
	if err != nil {
		return nil, err
	}

	cart, err := NewCartridgeWithData(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cart, nil
}

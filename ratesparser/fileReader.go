// Package ratesparser reads and decodes the EU VAT rates snapshot.
package ratesparser

import (
	"io/fs"

	"github.com/giygas/eu-vat-rates/logging"
)

// ReadDataFile reads the raw resource from fsys.
// Any failure is reported as a *FileAccessError.
func ReadDataFile(fsys fs.FS, path string) ([]byte, error) {
	if fsys == nil {
		return nil, &FileAccessError{Path: path, Err: fs.ErrInvalid}
	}

	content, err := fs.ReadFile(fsys, path)
	if err != nil {
		logging.Debug("Failed to read rates data file", "path", path, "error", err)
		return nil, &FileAccessError{Path: path, Err: err}
	}

	return content, nil
}

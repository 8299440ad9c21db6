package data

import (
	"embed"
	"io/fs"
	"os"
	"path/filepath"
)

// BundlePath is the location of the snapshot inside BundleFS
const BundlePath = "eu-vat-rates-data.json"

//go:embed eu-vat-rates-data.json
var bundle embed.FS

// BundleFS returns the filesystem holding the bundled snapshot
func BundleFS() fs.FS {
	return bundle
}

// SourceForFile returns a filesystem and path for a snapshot on disk,
// so a container can serve an operator-provided file instead of the bundle
func SourceForFile(path string) (fs.FS, string) {
	return os.DirFS(filepath.Dir(path)), filepath.Base(path)
}

//go:generate mockgen -source=interfaces.go -destination=mocks/mock_interfaces.go -package=mocks

package domain

import (
	"context"
	"io/fs"

	"github.com/quantmind-br/pkgfile-go/internal/document"
)

// ManifestService reads and writes manifest files while preserving the
// surface formatting of the file on disk.
type ManifestService interface {
	// ReadFile loads and parses the manifest at path
	ReadFile(ctx context.Context, path string) (*document.Document, error)
	// WriteFile replaces the manifest at path with doc, reusing the
	// indentation and trailing newline of the current file content
	WriteFile(ctx context.Context, path string, doc *document.Document) error
}

// FileSystem defines the whole-file operations the manifest service needs
type FileSystem interface {
	// Stat returns file info for path
	Stat(path string) (fs.FileInfo, error)
	// ReadFile returns the full content of path
	ReadFile(path string) ([]byte, error)
	// OverwriteFile truncates an existing file and writes data to it.
	// It must not create the file when it is missing.
	OverwriteFile(path string, data []byte) error
}

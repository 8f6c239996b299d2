package manifest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"strconv"

	"golang.org/x/text/encoding/unicode"

	"github.com/quantmind-br/pkgfile-go/internal/document"
	"github.com/quantmind-br/pkgfile-go/internal/domain"
	"github.com/quantmind-br/pkgfile-go/internal/format"
	"github.com/quantmind-br/pkgfile-go/internal/utils"
)

// Service reads and writes manifest files
type Service struct {
	fs     domain.FileSystem
	logger *utils.Logger
	format domain.FormatOptions
}

var _ domain.ManifestService = (*Service)(nil)

// NewService creates a new manifest service
func NewService(opts ServiceOptions) *Service {
	opts = opts.withDefaults()

	return &Service{
		fs:     opts.FileSystem,
		logger: opts.Logger.WithComponent("manifest"),
		format: opts.Format,
	}
}

// ReadFile loads the manifest at path and parses it as a JSON object
func (s *Service) ReadFile(ctx context.Context, path string) (*document.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	raw, err := s.readFileContents(path)
	if err != nil {
		return nil, err
	}

	text, err := decodeText(raw)
	if err != nil {
		return nil, domain.NewParseError(path, -1, err)
	}

	doc, err := document.Parse(text)
	if err != nil {
		return nil, domain.NewParseError(path, errorOffset(err), err)
	}

	s.logger.Debug().
		Str("path", path).
		Int("bytes", len(raw)).
		Int("keys", doc.Len()).
		Msg("Manifest read")
	return doc, nil
}

// WriteFile replaces the manifest at path with doc. Formatting is taken
// from the file's current content, not from any earlier read.
func (s *Service) WriteFile(ctx context.Context, path string, doc *document.Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if doc == nil {
		return fmt.Errorf("%w: %s", domain.ErrNilDocument, path)
	}

	raw, err := s.readFileContents(path)
	if err != nil {
		return err
	}

	style := s.detectStyle(raw)

	body, err := doc.Encode(style.Indent)
	if err != nil {
		return fmt.Errorf("encoding manifest %s: %w", path, err)
	}

	data := style.Apply(body)
	if err := s.fs.OverwriteFile(path, data); err != nil {
		return err
	}

	s.logger.Debug().
		Str("path", path).
		Int("bytes", len(data)).
		Str("indent", strconv.Quote(style.Indent)).
		Bool("indent_detected", style.IndentDetected).
		Bool("trailing_newline", style.TrailingNewline).
		Str("line_ending", strconv.Quote(style.LineEnding)).
		Bool("bom", style.BOM).
		Msg("Manifest written")
	return nil
}

// DetectStyle returns the formatting WriteFile would use for path
func (s *Service) DetectStyle(ctx context.Context, path string) (format.Style, error) {
	if err := ctx.Err(); err != nil {
		return format.Style{}, err
	}

	raw, err := s.readFileContents(path)
	if err != nil {
		return format.Style{}, err
	}
	return s.detectStyle(raw), nil
}

func (s *Service) detectStyle(raw []byte) format.Style {
	style := format.Detect(raw, s.format.DefaultIndent)
	if s.format.StripBOM {
		style.BOM = false
	}
	if s.format.NormalizeLineEndings {
		style.LineEnding = format.LF
	}
	return style
}

func (s *Service) readFileContents(path string) ([]byte, error) {
	if err := s.assertFile(path); err != nil {
		return nil, err
	}
	return s.fs.ReadFile(path)
}

func (s *Service) assertFile(path string) error {
	_, err := s.fs.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return domain.NewNotFoundError(path)
	}
	return err
}

// decodeText decodes raw bytes as UTF-8, dropping a leading byte order
// mark. Invalid sequences become U+FFFD.
func decodeText(raw []byte) ([]byte, error) {
	return unicode.UTF8BOM.NewDecoder().Bytes(raw)
}

func errorOffset(err error) int64 {
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return syntaxErr.Offset
	}
	return -1
}

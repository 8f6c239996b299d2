package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/quantmind-br/pkgfile-go/internal/config"
	"github.com/quantmind-br/pkgfile-go/internal/document"
	"github.com/quantmind-br/pkgfile-go/internal/domain"
	"github.com/quantmind-br/pkgfile-go/internal/format"
	"github.com/quantmind-br/pkgfile-go/internal/manifest"
	"github.com/quantmind-br/pkgfile-go/internal/utils"
)

// Editor applies edits to manifest files through a ManifestService.
// Each edit is a full read, modify, write cycle.
type Editor struct {
	config  *config.Config
	service domain.ManifestService
	logger  *utils.Logger
}

// EditorOptions contains options for creating an editor
type EditorOptions struct {
	Config  *config.Config
	Service domain.ManifestService
	Logger  *utils.Logger
	Verbose bool
}

// NewEditor creates a new editor with the given configuration
func NewEditor(opts EditorOptions) (*Editor, error) {
	cfg := opts.Config
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	logger := opts.Logger
	if logger == nil {
		logger = utils.NewLogger(utils.LoggerOptions{
			Level:   cfg.Logging.Level,
			Format:  cfg.Logging.Format,
			Verbose: opts.Verbose,
		})
	}

	service := opts.Service
	if service == nil {
		service = manifest.NewService(manifest.ServiceOptions{
			Logger: logger,
			Format: cfg.FormatOptions(),
		})
	}

	return &Editor{
		config:  cfg,
		service: service,
		logger:  logger.WithComponent("editor"),
	}, nil
}

// Read returns the whole manifest
func (e *Editor) Read(ctx context.Context, path string) (*document.Document, error) {
	return e.service.ReadFile(ctx, path)
}

// Get returns the value at keyPath. An empty keyPath returns the whole document.
func (e *Editor) Get(ctx context.Context, path, keyPath string) (any, error) {
	doc, err := e.service.ReadFile(ctx, path)
	if err != nil {
		return nil, err
	}

	keys := document.SplitPath(keyPath)
	if len(keys) == 0 {
		return doc, nil
	}

	v, ok := doc.GetIn(keys...)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrKeyNotFound, keyPath)
	}
	return v, nil
}

// Set stores value at keyPath, creating intermediate objects.
// value is parsed as JSON; text that is not valid JSON is stored as a string.
func (e *Editor) Set(ctx context.Context, path, keyPath, value string) error {
	keys := document.SplitPath(keyPath)
	if len(keys) == 0 {
		return fmt.Errorf("key path is required")
	}

	return e.edit(ctx, path, "set", func(doc *document.Document) error {
		return doc.SetIn(ParseValue(value), keys...)
	})
}

// Unset removes the member at keyPath
func (e *Editor) Unset(ctx context.Context, path, keyPath string) error {
	keys := document.SplitPath(keyPath)
	if len(keys) == 0 {
		return fmt.Errorf("key path is required")
	}

	return e.edit(ctx, path, "unset", func(doc *document.Document) error {
		removed, err := doc.DeleteIn(keys...)
		if err != nil {
			return err
		}
		if !removed {
			return fmt.Errorf("%w: %s", ErrKeyNotFound, keyPath)
		}
		return nil
	})
}

// AddDependency sets name to spec in the given dependency section.
// The section object is created at the end of the manifest when missing.
func (e *Editor) AddDependency(ctx context.Context, path string, section Section, name, spec string) error {
	if !IsValidSection(section) {
		return fmt.Errorf("%w: %s", ErrInvalidSection, section)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("dependency name is required")
	}
	if err := ValidateSpec(spec); err != nil {
		return err
	}

	return e.edit(ctx, path, "add-dependency", func(doc *document.Document) error {
		e.logger.Debug().
			Str("section", string(section)).
			Str("name", name).
			Str("spec", spec).
			Str("kind", string(DetectSpecKind(spec))).
			Msg("Adding dependency")
		return doc.SetIn(strings.TrimSpace(spec), string(section), name)
	})
}

// RemoveDependency deletes name from every dependency section that has it
// and returns the sections it was removed from
func (e *Editor) RemoveDependency(ctx context.Context, path, name string) ([]Section, error) {
	var removed []Section
	err := e.edit(ctx, path, "remove-dependency", func(doc *document.Document) error {
		for _, section := range AllSections() {
			ok, err := doc.DeleteIn(string(section), name)
			if err != nil {
				return err
			}
			if ok {
				removed = append(removed, section)
			}
		}
		if len(removed) == 0 {
			return fmt.Errorf("%w: dependency %s", ErrKeyNotFound, name)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return removed, nil
}

// Format rewrites the manifest without semantic changes, normalising
// indentation to the file's dominant unit
func (e *Editor) Format(ctx context.Context, path string) error {
	return e.edit(ctx, path, "format", func(*document.Document) error { return nil })
}

// styleDetector is implemented by services that can report the
// formatting they would write with
type styleDetector interface {
	DetectStyle(ctx context.Context, path string) (format.Style, error)
}

// Style reports the formatting a write to path would use
func (e *Editor) Style(ctx context.Context, path string) (format.Style, error) {
	sd, ok := e.service.(styleDetector)
	if !ok {
		return format.Style{}, fmt.Errorf("manifest service does not report styles")
	}
	return sd.DetectStyle(ctx, path)
}

// FormatAllOptions controls a multi-file format run
type FormatAllOptions struct {
	Workers int
	// OnDone is called after each file, from the worker goroutine
	OnDone func(path string, err error)
}

// FormatAll formats several manifests in parallel. Paths naming the same
// file are formatted once, so no file is written by two workers. The
// returned error joins every per-file failure.
func (e *Editor) FormatAll(ctx context.Context, paths []string, opts FormatAllOptions) error {
	unique := dedupePaths(paths)

	errs := utils.ParallelForEach(ctx, unique, opts.Workers, func(ctx context.Context, path string) error {
		err := e.Format(ctx, path)
		if opts.OnDone != nil {
			opts.OnDone(path, err)
		}
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		return nil
	})

	failed := utils.CollectErrors(errs)
	if len(failed) > 0 {
		e.logger.Warn().
			Int("failed", len(failed)).
			Int("total", len(unique)).
			Msg("Some manifests could not be formatted")
	}
	return errors.Join(failed...)
}

// dedupePaths drops paths naming a file already in the list, whether
// spelled differently or reached through a symlink or hard link
func dedupePaths(paths []string) []string {
	seen := make(map[string]bool, len(paths))
	var infos []os.FileInfo
	unique := make([]string, 0, len(paths))
	for _, p := range paths {
		key := filepath.Clean(p)
		if abs, err := filepath.Abs(key); err == nil {
			key = abs
		}
		if seen[key] {
			continue
		}

		if info, err := os.Stat(p); err == nil {
			if sameAsAny(info, infos) {
				continue
			}
			infos = append(infos, info)
		}
		seen[key] = true
		unique = append(unique, p)
	}
	return unique
}

func sameAsAny(info os.FileInfo, infos []os.FileInfo) bool {
	for _, other := range infos {
		if os.SameFile(info, other) {
			return true
		}
	}
	return false
}

func (e *Editor) edit(ctx context.Context, path, op string, fn func(*document.Document) error) error {
	logger := e.logger.WithPath(path).WithOperation(op)

	doc, err := e.service.ReadFile(ctx, path)
	if err != nil {
		return err
	}

	if err := fn(doc); err != nil {
		return err
	}

	if err := e.service.WriteFile(ctx, path, doc); err != nil {
		logger.Error().Err(err).Msg("Failed to write manifest")
		return err
	}

	logger.Info().Msg("Manifest updated")
	return nil
}

// ParseValue interprets a command-line value as JSON, falling back to
// the raw string
func ParseValue(raw string) any {
	v, err := document.ParseValue([]byte(raw))
	if err != nil {
		return raw
	}
	return v
}

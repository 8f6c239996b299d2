// Package manifest reads and writes JSON package manifests while keeping
// the surface formatting of the file on disk intact.
//
// # Reading
//
//	svc := manifest.NewService(manifest.ServiceOptions{})
//	doc, err := svc.ReadFile(ctx, "package.json")
//	if err != nil {
//	    return err
//	}
//
// # Writing
//
// WriteFile replaces the whole file with the given document. Before
// writing, the current file content is read again and its indentation
// unit, trailing newline, line ending and byte order mark are detected, so
// the only differences in the written file are the semantic ones:
//
//	deps, _ := doc.GetIn("dependencies")
//	deps.(*document.Document).Set("@types/node", "^20.0.0")
//	if err := svc.WriteFile(ctx, "package.json", doc); err != nil {
//	    return err
//	}
//
// The target file must exist. When no indentation can be detected (empty or
// single-line files) two spaces are used unless configured otherwise.
//
// # Error Handling
//
//   - domain.ErrNotFound: the file does not exist (message contains "does not exist")
//   - *domain.ParseError: the content is not a JSON object (errors.Is domain.ErrInvalidJSON)
//   - any other filesystem error is returned as is
//
// # Concurrency
//
// A Service holds no mutable state and may be shared between goroutines.
// Calls on different paths never interfere. Calls on the same path are not
// coordinated: concurrent writes race and the last one wins, so callers that
// touch one file from several goroutines must serialize those calls.
package manifest

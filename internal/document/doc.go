// Package document provides the in-memory model of a JSON package manifest.
//
// A Document is a JSON object whose members keep the order in which they were
// parsed or inserted. Encoding a Document reproduces the layout produced by
// JavaScript's JSON.stringify(value, null, indent), which is what package
// managers and most editors emit for manifests:
//
//	doc, err := document.Parse([]byte(`{"name":"demo","dependencies":{}}`))
//	if err != nil {
//	    return err
//	}
//	deps, _ := doc.GetIn("dependencies")
//	deps.(*document.Document).Set("left-pad", "^1.3.0")
//	out, err := doc.Encode("  ")
//
// # Values
//
// Decoded values are one of nil, bool, string, json.Number, *Document or
// []any. Number literals keep their original text. Values handed to Set may be
// any JSON-marshalable Go value; they are normalised when encoded.
package document

package format

import (
	"bytes"
)

// Line endings
const (
	LF   = "\n"
	CRLF = "\r\n"
)

// BOM is the UTF-8 byte order mark
var BOM = []byte{0xEF, 0xBB, 0xBF}

// Style is the formatting inferred from a manifest's raw content
type Style struct {
	Indent          string
	IndentDetected  bool
	TrailingNewline bool
	LineEnding      string
	BOM             bool
}

// Detect infers the style of raw file content. fallbackIndent is used
// when no indentation unit can be found, e.g. for empty or single-line files.
func Detect(raw []byte, fallbackIndent string) Style {
	text := bytes.TrimPrefix(raw, BOM)

	style := Style{
		Indent:          fallbackIndent,
		TrailingNewline: HasTrailingNewline(raw),
		LineEnding:      DetectLineEnding(raw),
		BOM:             HasBOM(raw),
	}

	if indent := DetectIndent(string(text)); indent.Detected() {
		style.Indent = indent.Unit
		style.IndentDetected = true
	}
	return style
}

// HasTrailingNewline reports whether the last byte of raw is a newline
func HasTrailingNewline(raw []byte) bool {
	return len(raw) > 0 && raw[len(raw)-1] == '\n'
}

// HasBOM reports whether raw starts with a UTF-8 byte order mark
func HasBOM(raw []byte) bool {
	return bytes.HasPrefix(raw, BOM)
}

// DetectLineEnding returns CRLF when CRLF line breaks outnumber bare LF
// ones, LF otherwise
func DetectLineEnding(raw []byte) string {
	crlf := bytes.Count(raw, []byte(CRLF))
	lf := bytes.Count(raw, []byte(LF)) - crlf
	if crlf > lf {
		return CRLF
	}
	return LF
}

// Apply lays out serialized JSON according to the style. body must use
// "\n" for line breaks, as the document encoder does.
func (s Style) Apply(body []byte) []byte {
	eol := s.LineEnding
	if eol == "" {
		eol = LF
	}

	out := make([]byte, 0, len(body)+len(BOM)+len(eol)+8)
	if s.BOM {
		out = append(out, BOM...)
	}
	if eol == CRLF {
		out = append(out, bytes.ReplaceAll(body, []byte(LF), []byte(CRLF))...)
	} else {
		out = append(out, body...)
	}
	if s.TrailingNewline {
		out = append(out, eol...)
	}
	return out
}

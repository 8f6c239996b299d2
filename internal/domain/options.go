package domain

// DefaultIndent is used when no indentation can be inferred from a file
const DefaultIndent = "  "

// FormatOptions controls how formatting is reproduced on write.
// The zero value preserves everything and falls back to DefaultIndent.
type FormatOptions struct {
	// DefaultIndent is used when the file has no detectable indentation
	DefaultIndent string
	// StripBOM drops a UTF-8 byte order mark instead of keeping it
	StripBOM bool
	// NormalizeLineEndings writes "\n" even when the file used "\r\n"
	NormalizeLineEndings bool
}

// DefaultFormatOptions returns FormatOptions with default values.
func DefaultFormatOptions() FormatOptions {
	return FormatOptions{
		DefaultIndent: DefaultIndent,
	}
}

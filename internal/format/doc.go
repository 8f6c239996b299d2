// Package format infers the surface formatting of a manifest from its raw
// bytes: the indentation unit, whether the file ends with a newline, the
// line ending in use and the presence of a UTF-8 byte order mark.
//
// Detection is always done on the current file content, so the result
// reflects the file as it is on disk at the time of the call.
package format

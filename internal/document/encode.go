package document

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"unicode/utf8"
)

const hexDigits = "0123456789abcdef"

// Encode serializes the document the way JSON.stringify(doc, null, indent)
// does. An empty indent produces compact output.
func (d *Document) Encode(indent string) ([]byte, error) {
	e := &encoder{indent: indent}
	if err := e.encodeObject(d, 0); err != nil {
		return nil, err
	}
	return e.buf.Bytes(), nil
}

// EncodeValue serializes any document value with the given indent
func EncodeValue(v any, indent string) ([]byte, error) {
	e := &encoder{indent: indent}
	if err := e.encodeValue(v, 0); err != nil {
		return nil, err
	}
	return e.buf.Bytes(), nil
}

type encoder struct {
	buf    bytes.Buffer
	indent string
}

func (e *encoder) newline(depth int) {
	if e.indent == "" {
		return
	}
	e.buf.WriteByte('\n')
	for i := 0; i < depth; i++ {
		e.buf.WriteString(e.indent)
	}
}

func (e *encoder) encodeValue(v any, depth int) error {
	v, err := normalize(v)
	if err != nil {
		return err
	}

	switch val := v.(type) {
	case nil:
		e.buf.WriteString("null")
	case bool:
		e.buf.WriteString(strconv.FormatBool(val))
	case string:
		writeString(&e.buf, val)
	case json.Number:
		e.buf.WriteString(val.String())
	case *Document:
		return e.encodeObject(val, depth)
	case []any:
		return e.encodeArray(val, depth)
	default:
		return fmt.Errorf("document: unsupported value type %T", v)
	}
	return nil
}

func (e *encoder) encodeObject(d *Document, depth int) error {
	if d.Len() == 0 {
		e.buf.WriteString("{}")
		return nil
	}

	e.buf.WriteByte('{')
	for i, k := range d.keys {
		if i > 0 {
			e.buf.WriteByte(',')
		}
		e.newline(depth + 1)
		writeString(&e.buf, k)
		e.buf.WriteByte(':')
		if e.indent != "" {
			e.buf.WriteByte(' ')
		}
		if err := e.encodeValue(d.values[k], depth+1); err != nil {
			return fmt.Errorf("%s: %w", k, err)
		}
	}
	e.newline(depth)
	e.buf.WriteByte('}')
	return nil
}

func (e *encoder) encodeArray(a []any, depth int) error {
	if len(a) == 0 {
		e.buf.WriteString("[]")
		return nil
	}

	e.buf.WriteByte('[')
	for i, item := range a {
		if i > 0 {
			e.buf.WriteByte(',')
		}
		e.newline(depth + 1)
		if err := e.encodeValue(item, depth+1); err != nil {
			return fmt.Errorf("[%d]: %w", i, err)
		}
	}
	e.newline(depth)
	e.buf.WriteByte(']')
	return nil
}

// writeString quotes s escaping only what JSON requires: quote, backslash
// and control characters. Invalid UTF-8 is replaced with U+FFFD.
func writeString(buf *bytes.Buffer, s string) {
	buf.WriteByte('"')
	start := 0
	for i := 0; i < len(s); {
		b := s[i]
		if b < utf8.RuneSelf {
			if b >= 0x20 && b != '"' && b != '\\' {
				i++
				continue
			}
			buf.WriteString(s[start:i])
			switch b {
			case '"', '\\':
				buf.WriteByte('\\')
				buf.WriteByte(b)
			case '\b':
				buf.WriteString(`\b`)
			case '\f':
				buf.WriteString(`\f`)
			case '\n':
				buf.WriteString(`\n`)
			case '\r':
				buf.WriteString(`\r`)
			case '\t':
				buf.WriteString(`\t`)
			default:
				buf.WriteString(`\u00`)
				buf.WriteByte(hexDigits[b>>4])
				buf.WriteByte(hexDigits[b&0xF])
			}
			i++
			start = i
			continue
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			buf.WriteString(s[start:i])
			buf.WriteString("\ufffd")
			i += size
			start = i
			continue
		}
		i += size
	}
	buf.WriteString(s[start:])
	buf.WriteByte('"')
}

// normalize maps caller-supplied Go values onto the document value model.
// Model values are returned unchanged.
func normalize(v any) (any, error) {
	switch val := v.(type) {
	case nil, bool, string, json.Number, *Document, []any:
		return v, nil
	case Document:
		return &val, nil
	case int:
		return json.Number(strconv.FormatInt(int64(val), 10)), nil
	case int64:
		return json.Number(strconv.FormatInt(val, 10)), nil
	case int32:
		return json.Number(strconv.FormatInt(int64(val), 10)), nil
	case uint:
		return json.Number(strconv.FormatUint(uint64(val), 10)), nil
	case uint64:
		return json.Number(strconv.FormatUint(val, 10)), nil
	case float64:
		return formatFloat(val, 64)
	case float32:
		return formatFloat(float64(val), 32)
	case []string:
		a := make([]any, len(val))
		for i, s := range val {
			a[i] = s
		}
		return a, nil
	}

	// Anything else goes through encoding/json and back into the model.
	// Go maps come out with sorted keys.
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("document: %w", err)
	}
	return ParseValue(data)
}

func formatFloat(f float64, bits int) (any, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, fmt.Errorf("document: unsupported number %v", f)
	}
	// encoding/json formats floats like ECMAScript Number.prototype.toString
	var data []byte
	var err error
	if bits == 32 {
		data, err = json.Marshal(float32(f))
	} else {
		data, err = json.Marshal(f)
	}
	if err != nil {
		return nil, fmt.Errorf("document: %w", err)
	}
	return json.Number(data), nil
}

package document

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// ErrNotObject indicates the top-level JSON value is not an object
var ErrNotObject = errors.New("manifest root must be a JSON object")

// ErrTrailingData indicates content after the top-level value
var ErrTrailingData = errors.New("unexpected data after top-level value")

// Parse decodes data as a single JSON object, keeping member order.
// Duplicate keys keep their first position and their last value.
func Parse(data []byte) (*Document, error) {
	dec := newDecoder(data)

	tok, err := dec.Token()
	if err != nil {
		return nil, eofAsUnexpected(err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("%w: got %s", ErrNotObject, describeToken(tok))
	}

	doc, err := decodeObject(dec)
	if err != nil {
		return nil, err
	}

	if err := expectEOF(dec); err != nil {
		return nil, err
	}
	return doc, nil
}

// ParseValue decodes data as a single JSON value of any kind
func ParseValue(data []byte) (any, error) {
	dec := newDecoder(data)

	tok, err := dec.Token()
	if err != nil {
		return nil, eofAsUnexpected(err)
	}
	v, err := decodeValue(dec, tok)
	if err != nil {
		return nil, err
	}

	if err := expectEOF(dec); err != nil {
		return nil, err
	}
	return v, nil
}

func newDecoder(data []byte) *json.Decoder {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	return dec
}

func expectEOF(dec *json.Decoder) error {
	_, err := dec.Token()
	if err == io.EOF {
		return nil
	}
	if err != nil {
		return err
	}
	return fmt.Errorf("%w at offset %d", ErrTrailingData, dec.InputOffset())
}

func decodeValue(dec *json.Decoder, tok json.Token) (any, error) {
	switch v := tok.(type) {
	case json.Delim:
		switch v {
		case '{':
			return decodeObject(dec)
		case '[':
			return decodeArray(dec)
		default:
			return nil, fmt.Errorf("unexpected delimiter %q at offset %d", rune(v), dec.InputOffset())
		}
	case string, json.Number, bool, nil:
		return v, nil
	default:
		return nil, fmt.Errorf("unexpected token %v", tok)
	}
}

func decodeObject(dec *json.Decoder) (*Document, error) {
	doc := New()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, eofAsUnexpected(err)
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("expected object key at offset %d, got %s", dec.InputOffset(), describeToken(tok))
		}

		tok, err = dec.Token()
		if err != nil {
			return nil, eofAsUnexpected(err)
		}
		value, err := decodeValue(dec, tok)
		if err != nil {
			return nil, err
		}
		doc.Set(key, value)
	}

	// Closing brace
	if _, err := dec.Token(); err != nil {
		return nil, eofAsUnexpected(err)
	}
	return doc, nil
}

func decodeArray(dec *json.Decoder) ([]any, error) {
	arr := make([]any, 0)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, eofAsUnexpected(err)
		}
		value, err := decodeValue(dec, tok)
		if err != nil {
			return nil, err
		}
		arr = append(arr, value)
	}

	// Closing bracket
	if _, err := dec.Token(); err != nil {
		return nil, eofAsUnexpected(err)
	}
	return arr, nil
}

func eofAsUnexpected(err error) error {
	if err == io.EOF {
		return io.ErrUnexpectedEOF
	}
	return err
}

func describeToken(tok json.Token) string {
	switch v := tok.(type) {
	case json.Delim:
		if v == '[' {
			return "array"
		}
		return fmt.Sprintf("%q", rune(v))
	case string:
		return "string"
	case json.Number:
		return "number"
	case bool:
		return "boolean"
	case nil:
		return "null"
	default:
		return fmt.Sprintf("%T", tok)
	}
}

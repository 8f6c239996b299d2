package document

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotContainer indicates a key path walks through a non-object value
var ErrNotContainer = errors.New("value is not an object")

// SplitPath splits a dotted key path. A backslash escapes the next
// character, so "dependencies.lodash\.merge" addresses the key
// "lodash.merge" inside "dependencies".
func SplitPath(path string) []string {
	if path == "" {
		return nil
	}

	var parts []string
	var cur strings.Builder
	escaped := false
	for _, r := range path {
		switch {
		case escaped:
			cur.WriteRune(r)
			escaped = false
		case r == '\\':
			escaped = true
		case r == '.':
			parts = append(parts, cur.String())
			cur.Reset()
		default:
			cur.WriteRune(r)
		}
	}
	if escaped {
		cur.WriteRune('\\')
	}
	return append(parts, cur.String())
}

// GetIn returns the value addressed by keys
func (d *Document) GetIn(keys ...string) (any, bool) {
	if len(keys) == 0 {
		return d, d != nil
	}

	cur := d
	for i, k := range keys {
		v, ok := cur.Get(k)
		if !ok {
			return nil, false
		}
		if i == len(keys)-1 {
			return v, true
		}
		next, ok := v.(*Document)
		if !ok {
			return nil, false
		}
		cur = next
	}
	return nil, false
}

// SetIn sets the value addressed by keys, creating intermediate objects.
// Existing intermediate values that are not objects cause ErrNotContainer.
func (d *Document) SetIn(value any, keys ...string) error {
	if len(keys) == 0 {
		return errors.New("document: empty key path")
	}

	parent, err := d.walk(keys[:len(keys)-1], true)
	if err != nil {
		return err
	}
	parent.Set(keys[len(keys)-1], value)
	return nil
}

// DeleteIn removes the member addressed by keys and reports whether it existed
func (d *Document) DeleteIn(keys ...string) (bool, error) {
	if len(keys) == 0 {
		return false, errors.New("document: empty key path")
	}

	parent, err := d.walk(keys[:len(keys)-1], false)
	if err != nil {
		return false, err
	}
	if parent == nil {
		return false, nil
	}
	return parent.Delete(keys[len(keys)-1]), nil
}

// walk descends through keys. With create set, missing objects are added;
// otherwise a missing member yields a nil document.
func (d *Document) walk(keys []string, create bool) (*Document, error) {
	cur := d
	for i, k := range keys {
		v, ok := cur.Get(k)
		if !ok {
			if !create {
				return nil, nil
			}
			next := New()
			cur.Set(k, next)
			cur = next
			continue
		}
		next, ok := v.(*Document)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrNotContainer, strings.Join(keys[:i+1], "."))
		}
		cur = next
	}
	return cur, nil
}

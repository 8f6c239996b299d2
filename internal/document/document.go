package document

// Document is an insertion-ordered JSON object.
// The zero value is an empty document ready to use.
type Document struct {
	keys   []string
	values map[string]any
}

// New creates an empty document
func New() *Document {
	return &Document{values: make(map[string]any)}
}

// Len returns the number of members
func (d *Document) Len() int {
	if d == nil {
		return 0
	}
	return len(d.keys)
}

// Keys returns member names in order
func (d *Document) Keys() []string {
	if d == nil {
		return nil
	}
	keys := make([]string, len(d.keys))
	copy(keys, d.keys)
	return keys
}

// Has checks if a member exists
func (d *Document) Has(key string) bool {
	if d == nil {
		return false
	}
	_, ok := d.values[key]
	return ok
}

// Get returns the value of a member
func (d *Document) Get(key string) (any, bool) {
	if d == nil {
		return nil, false
	}
	v, ok := d.values[key]
	return v, ok
}

// Set replaces the value of an existing member in place, or appends a new
// member at the end. It returns d so calls can be chained.
func (d *Document) Set(key string, value any) *Document {
	if d.values == nil {
		d.values = make(map[string]any)
	}
	if _, ok := d.values[key]; !ok {
		d.keys = append(d.keys, key)
	}
	d.values[key] = value
	return d
}

// Delete removes a member and reports whether it existed
func (d *Document) Delete(key string) bool {
	if d == nil {
		return false
	}
	if _, ok := d.values[key]; !ok {
		return false
	}
	delete(d.values, key)
	for i, k := range d.keys {
		if k == key {
			d.keys = append(d.keys[:i], d.keys[i+1:]...)
			break
		}
	}
	return true
}

// Range calls fn for each member in order until fn returns false
func (d *Document) Range(fn func(key string, value any) bool) {
	if d == nil {
		return
	}
	for _, k := range d.keys {
		if !fn(k, d.values[k]) {
			return
		}
	}
}

// Clone returns a deep copy of the document
func (d *Document) Clone() *Document {
	if d == nil {
		return nil
	}
	c := &Document{
		keys:   make([]string, len(d.keys)),
		values: make(map[string]any, len(d.values)),
	}
	copy(c.keys, d.keys)
	for k, v := range d.values {
		c.values[k] = cloneValue(v)
	}
	return c
}

func cloneValue(v any) any {
	switch val := v.(type) {
	case *Document:
		return val.Clone()
	case []any:
		a := make([]any, len(val))
		for i, item := range val {
			a[i] = cloneValue(item)
		}
		return a
	default:
		return val
	}
}

// Equal reports whether both documents have the same members in the same
// order with equal values. Numbers compare by their literal text.
func (d *Document) Equal(other *Document) bool {
	if d.Len() != other.Len() {
		return false
	}
	if d.Len() == 0 {
		return true
	}
	for i, k := range d.keys {
		if other.keys[i] != k {
			return false
		}
		if !equalValues(d.values[k], other.values[k]) {
			return false
		}
	}
	return true
}

func equalValues(a, b any) bool {
	a, errA := normalize(a)
	b, errB := normalize(b)
	if errA != nil || errB != nil {
		return false
	}

	switch av := a.(type) {
	case *Document:
		bv, ok := b.(*Document)
		return ok && av.Equal(bv)
	case []any:
		bv, ok := b.([]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !equalValues(av[i], bv[i]) {
				return false
			}
		}
		return true
	default:
		return a == b
	}
}

// MarshalJSON implements json.Marshaler with compact output
func (d *Document) MarshalJSON() ([]byte, error) {
	return d.Encode("")
}

// UnmarshalJSON implements json.Unmarshaler
func (d *Document) UnmarshalJSON(data []byte) error {
	parsed, err := Parse(data)
	if err != nil {
		return err
	}
	*d = *parsed
	return nil
}

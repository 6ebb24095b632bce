package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// MarshalJSON writes the selections as a flat {"dimension": "option"} object.
// Keys keep sampling order, so equal selections encode to equal bytes.
func (s Selections) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, sel := range s {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(sel.Dimension)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(sel.Option)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a flat object back in document order. Repeated
// dimensions and non-string options are rejected.
func (s *Selections) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*s = nil
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSelections, err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("%w: want a JSON object", ErrInvalidSelections)
	}

	var out Selections
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidSelections, err)
		}
		dim, _ := tok.(string)
		var opt string
		if err := dec.Decode(&opt); err != nil {
			return fmt.Errorf("%w: dimension %q: %w", ErrInvalidSelections, dim, err)
		}
		if _, dup := out.Get(dim); dup {
			return fmt.Errorf("%w: dimension %q repeated", ErrInvalidSelections, dim)
		}
		out = append(out, Selection{Dimension: dim, Option: opt})
	}
	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSelections, err)
	}
	*s = out
	return nil
}

package domain

import (
	"bytes"
	"encoding/json"
	"errors"
)

var ErrNotObject = errors.New("collection must be a JSON object")

// Entry is one raw record of a collection. Value is whatever the backend
// stored under ID and is not guaranteed to be an object.
type Entry struct {
	ID    string
	Value any
}

// Collection is an id -> raw record mapping that keeps the order in which
// records were delivered. Bucket order downstream depends on it.
type Collection []Entry

func (c Collection) Get(id string) (any, bool) {
	for _, e := range c {
		if e.ID == id {
			return e.Value, true
		}
	}
	return nil, false
}

// MarshalJSON writes the collection as a JSON object in entry order.
func (c Collection) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range c {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(e.ID)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(e.Value)
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

// UnmarshalJSON reads a JSON object keeping key order. A repeated key keeps
// its first position and takes the last value. null decodes as empty.
func (c *Collection) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*c = Collection{}
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return ErrNotObject
	}

	out := Collection{}
	index := map[string]int{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return ErrNotObject
		}

		var v any
		if err := dec.Decode(&v); err != nil {
			return err
		}

		if i, seen := index[key]; seen {
			out[i].Value = v
			continue
		}
		index[key] = len(out)
		out = append(out, Entry{ID: key, Value: v})
	}

	if _, err := dec.Token(); err != nil {
		return err
	}

	*c = out
	return nil
}

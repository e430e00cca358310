package results

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/sparced/benchviz/pkg/errors"
)

// LoadJSON reads a results file written as nested JSON objects:
//
//	{"EGF": {"cell 0": {"ppERK": {"toutS": [0, 30], "xoutS": [1.2, 3.4]}}}}
//
// Object key order is preserved.
func LoadJSON(path string) (*Store, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "results file %s", path)
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadJSON(f)
}

// ReadJSON decodes a results document from r.
func ReadJSON(r io.Reader) (*Store, error) {
	dec := json.NewDecoder(r)
	st := NewStore()
	err := decodeObject(dec, func(cond string) error {
		st.AddCondition(cond)
		return decodeObject(dec, func(rep string) error {
			st.ensureReplicate(cond, rep)
			return decodeObject(dec, func(key string) error {
				var s Series
				if err := dec.Decode(&s); err != nil {
					return fmt.Errorf("series %s/%s/%s: %w", cond, rep, key, err)
				}
				return st.Add(cond, rep, key, s)
			})
		})
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode results")
	}
	return st, nil
}

// decodeObject walks one JSON object, calling fn for each key with the
// decoder positioned at the key's value.
func decodeObject(dec *json.Decoder, fn func(key string) error) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("expected object, got %v", tok)
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("expected object key, got %v", tok)
		}
		if err := fn(key); err != nil {
			return err
		}
	}
	_, err = dec.Token()
	return err
}

// MarshalJSON encodes the store in the nested form read by [ReadJSON],
// keeping insertion order.
func (st *Store) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, cond := range st.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		writeKey(&buf, cond)
		c := st.conditions[cond]
		buf.WriteByte('{')
		for j, rep := range c.order {
			if j > 0 {
				buf.WriteByte(',')
			}
			writeKey(&buf, rep)
			r := c.replicates[rep]
			buf.WriteByte('{')
			for k, key := range r.order {
				if k > 0 {
					buf.WriteByte(',')
				}
				writeKey(&buf, key)
				data, err := json.Marshal(r.series[key])
				if err != nil {
					return nil, err
				}
				buf.Write(data)
			}
			buf.WriteByte('}')
		}
		buf.WriteByte('}')
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes the nested form, replacing the store contents.
func (st *Store) UnmarshalJSON(data []byte) error {
	decoded, err := ReadJSON(bytes.NewReader(data))
	if err != nil {
		return err
	}
	*st = *decoded
	return nil
}

func writeKey(buf *bytes.Buffer, key string) {
	k, _ := json.Marshal(key)
	buf.Write(k)
	buf.WriteByte(':')
}

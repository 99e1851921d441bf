package manifest

import (
	"bytes"
	"encoding/json"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Section is one object-valued block of the manifest, such as
// devDependencies or scripts.
type Section struct {
	fields *orderedmap.OrderedMap[string, json.RawMessage]
}

func NewSection() *Section {
	return &Section{fields: orderedmap.New[string, json.RawMessage]()}
}

func (s *Section) Len() int { return s.fields.Len() }

func (s *Section) Has(key string) bool {
	_, ok := s.fields.Get(key)
	return ok
}

func (s *Section) Keys() []string {
	keys := make([]string, 0, s.fields.Len())
	for p := s.fields.Oldest(); p != nil; p = p.Next() {
		keys = append(keys, p.Key)
	}
	return keys
}

// String returns the value under key when it is a JSON string.
func (s *Section) String(key string) (string, bool) {
	raw, ok := s.fields.Get(key)
	if !ok {
		return "", false
	}
	var v string
	if err := json.Unmarshal(raw, &v); err != nil {
		return "", false
	}
	return v, true
}

// Strings returns the value under key when it is an array of strings.
func (s *Section) Strings(key string) ([]string, bool) {
	raw, ok := s.fields.Get(key)
	if !ok {
		return nil, false
	}
	var v []string
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, false
	}
	return v, true
}

func (s *Section) SetString(key, value string) {
	raw, _ := marshal(value)
	s.fields.Set(key, raw)
}

func (s *Section) SetStrings(key string, values []string) {
	if values == nil {
		values = []string{}
	}
	raw, _ := marshal(values)
	s.fields.Set(key, raw)
}

func (s *Section) Delete(key string) bool {
	_, ok := s.fields.Delete(key)
	return ok
}

func (s *Section) encode() json.RawMessage {
	return encodeObject(s.fields)
}

func encodeObject(fields *orderedmap.OrderedMap[string, json.RawMessage]) json.RawMessage {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for p := fields.Oldest(); p != nil; p = p.Next() {
		if p != fields.Oldest() {
			buf.WriteByte(',')
		}
		k, _ := marshal(p.Key)
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(p.Value)
	}
	buf.WriteByte('}')
	return buf.Bytes()
}

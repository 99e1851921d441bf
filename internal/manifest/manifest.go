// Package manifest reads and rewrites package.json without losing fields it
// does not know about. Key order is preserved and unknown values are carried
// through verbatim; only whitespace is normalized on save.
package manifest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/JuanVilla424/devtools/internal/toolchain"
)

// FileName is the manifest file at the root of a project.
const FileName = "package.json"

// ErrNotObject is returned when the manifest, or one of its sections, is
// valid JSON but not an object.
var ErrNotObject = errors.New("not a JSON object")

type Manifest struct {
	path   string
	fields *orderedmap.OrderedMap[string, json.RawMessage]
}

// PathIn returns the manifest path for a project directory.
func PathIn(dir string) string {
	return filepath.Join(dir, FileName)
}

// Load reads and parses the manifest at path.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	fields, err := decodeObject(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	return &Manifest{path: path, fields: fields}, nil
}

// Default builds the minimal manifest npm init would write for a project
// called name. Nothing is written until Save.
func Default(path, name string) *Manifest {
	m := &Manifest{path: path, fields: orderedmap.New[string, json.RawMessage]()}
	scripts := NewSection()
	scripts.SetString("test", `echo "Error: no test specified" && exit 1`)

	m.setString("name", name)
	m.setString("version", "1.0.0")
	m.setString("description", "")
	m.setString("main", "index.js")
	m.SetSection("scripts", scripts)
	m.fields.Set("keywords", json.RawMessage("[]"))
	m.setString("author", "")
	m.setString("license", "ISC")
	return m
}

func (m *Manifest) Path() string { return m.path }

func (m *Manifest) Has(key string) bool {
	_, ok := m.fields.Get(key)
	return ok
}

// Keys returns the top-level keys in file order.
func (m *Manifest) Keys() []string {
	keys := make([]string, 0, m.fields.Len())
	for p := m.fields.Oldest(); p != nil; p = p.Next() {
		keys = append(keys, p.Key)
	}
	return keys
}

// Raw returns the undecoded value stored under key.
func (m *Manifest) Raw(key string) (json.RawMessage, bool) {
	return m.fields.Get(key)
}

// Set stores v under key. An existing key keeps its position.
func (m *Manifest) Set(key string, v any) error {
	raw, err := marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	m.fields.Set(key, raw)
	return nil
}

func (m *Manifest) Delete(key string) bool {
	_, ok := m.fields.Delete(key)
	return ok
}

// String returns the value under key when it is a JSON string.
func (m *Manifest) String(key string) (string, bool) {
	raw, ok := m.fields.Get(key)
	if !ok {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

// Section returns the object stored under key. A missing key yields an empty
// section; a key holding anything other than an object is an error.
func (m *Manifest) Section(key string) (*Section, error) {
	raw, ok := m.fields.Get(key)
	if !ok || isNull(raw) {
		return NewSection(), nil
	}
	fields, err := decodeObject(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", key, err)
	}
	return &Section{fields: fields}, nil
}

// SetSection replaces the object under key.
func (m *Manifest) SetSection(key string, s *Section) {
	m.fields.Set(key, s.encode())
}

// MergeSection overlays entries onto the object under key. Keys already
// present are overwritten in place; new keys are appended in entry order;
// everything else is left alone.
func (m *Manifest) MergeSection(key string, entries []toolchain.Entry) error {
	s, err := m.Section(key)
	if err != nil {
		return err
	}
	for _, e := range entries {
		s.SetString(e.Name, e.Value)
	}
	m.SetSection(key, s)
	return nil
}

// Bytes renders the manifest with two-space indentation and a trailing newline.
func (m *Manifest) Bytes() ([]byte, error) {
	var out bytes.Buffer
	if err := json.Indent(&out, encodeObject(m.fields), "", "  "); err != nil {
		return nil, err
	}
	out.WriteByte('\n')
	return out.Bytes(), nil
}

// Save writes the manifest back to its path.
func (m *Manifest) Save() error {
	data, err := m.Bytes()
	if err != nil {
		return fmt.Errorf("encode %s: %w", filepath.Base(m.path), err)
	}
	return os.WriteFile(m.path, data, 0644)
}

func (m *Manifest) setString(key, v string) {
	raw, _ := marshal(v)
	m.fields.Set(key, raw)
}

func decodeObject(data []byte) (*orderedmap.OrderedMap[string, json.RawMessage], error) {
	trimmed := bytes.TrimSpace(data)
	// The ordered map stops at the end of the first object, so anything
	// after it has to be rejected here.
	if !json.Valid(trimmed) {
		return nil, errors.New("invalid JSON")
	}
	if trimmed[0] != '{' {
		return nil, ErrNotObject
	}
	fields := orderedmap.New[string, json.RawMessage]()
	if err := fields.UnmarshalJSON(trimmed); err != nil {
		return nil, err
	}
	return fields, nil
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// marshal encodes v without escaping &, < and >; package.json files are read
// by people and "git add . && czg" must stay legible.
func marshal(v any) (json.RawMessage, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return json.RawMessage(bytes.TrimRight(buf.Bytes(), "\n")), nil
}

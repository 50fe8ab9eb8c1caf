// Package documenter reads and writes the search-index artifact emitted by
// Documenter-style static documentation generators:
//
//	var documenterSearchIndex = {"docs": [{"location": ..., "page": ..., ...}]}
package documenter

import (
	"bytes"
	"encoding/json"
	"sort"

	"github.com/fwojciec/docindex"
)

// Defaults for the artifact layout.
const (
	DefaultVariable = "documenterSearchIndex"
	DefaultKey      = "docs"
)

// requiredFields lists the record keys every entry must carry as strings.
var requiredFields = []string{"location", "page", "title", "text", "category"}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Ensure Decoder implements docindex.ArtifactDecoder at compile time.
var _ docindex.ArtifactDecoder = (*Decoder)(nil)

// Decoder parses search-index artifacts into entries.
type Decoder struct {
	key string
}

// Option configures a Decoder.
type Option func(*Decoder)

// WithKey sets the top-level key holding the records.
// Defaults to DefaultKey.
func WithKey(key string) Option {
	return func(d *Decoder) {
		d.key = key
	}
}

// NewDecoder creates a new Decoder.
func NewDecoder(opts ...Option) *Decoder {
	d := &Decoder{key: DefaultKey}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Decode parses raw JSON or a JavaScript variable assignment wrapping it.
// Every record must carry the required keys as strings; unknown keys are
// ignored. Any deviation fails the whole artifact with EMALFORMED.
func (d *Decoder) Decode(data []byte) ([]docindex.Entry, error) {
	payload, err := unwrap(data)
	if err != nil {
		return nil, err
	}

	var top map[string]json.RawMessage
	if err := json.Unmarshal(payload, &top); err != nil || top == nil {
		return nil, docindex.Errorf(docindex.EMALFORMED, "artifact is not a JSON object")
	}

	key, raw, err := d.records(top)
	if err != nil {
		return nil, err
	}

	var records []json.RawMessage
	if isNull(raw) || json.Unmarshal(raw, &records) != nil {
		return nil, docindex.Errorf(docindex.EMALFORMED, "%q is not a sequence", key)
	}

	entries := make([]docindex.Entry, 0, len(records))
	for i, rec := range records {
		entry, err := decodeRecord(rec)
		if err != nil {
			return nil, docindex.Errorf(docindex.EMALFORMED, "record %d: %s", i, docindex.ErrorMessage(err))
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

// records picks the key holding the record sequence. The configured key
// wins; an object with a single key is accepted whatever its name.
func (d *Decoder) records(top map[string]json.RawMessage) (string, json.RawMessage, error) {
	if raw, ok := top[d.key]; ok {
		return d.key, raw, nil
	}
	if len(top) == 1 {
		for k, raw := range top {
			return k, raw, nil
		}
	}

	keys := make([]string, 0, len(top))
	for k := range top {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return "", nil, docindex.Errorf(docindex.EMALFORMED, "artifact has no %q key (found %v)", d.key, keys)
}

func decodeRecord(raw json.RawMessage) (docindex.Entry, error) {
	var fields map[string]json.RawMessage
	if isNull(raw) || json.Unmarshal(raw, &fields) != nil {
		return docindex.Entry{}, docindex.Errorf(docindex.EMALFORMED, "not an object")
	}

	values := make(map[string]string, len(requiredFields))
	for _, name := range requiredFields {
		v, ok := fields[name]
		if !ok {
			return docindex.Entry{}, docindex.Errorf(docindex.EMALFORMED, "missing %q", name)
		}
		var s string
		if isNull(v) || json.Unmarshal(v, &s) != nil {
			return docindex.Entry{}, docindex.Errorf(docindex.EMALFORMED, "field %q is not a string", name)
		}
		values[name] = s
	}

	category, err := docindex.ParseCategory(values["category"])
	if err != nil {
		return docindex.Entry{}, err
	}

	return docindex.Entry{
		Location: values["location"],
		Page:     values["page"],
		Title:    values["title"],
		Text:     values["text"],
		Category: category,
	}, nil
}

// unwrap strips a BOM, surrounding whitespace, and a leading
// "var name =" assignment with its trailing semicolon.
func unwrap(data []byte) ([]byte, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, docindex.Errorf(docindex.EMALFORMED, "artifact is empty")
	}

	if data[0] != '{' && data[0] != '[' {
		if eq := bytes.IndexByte(data, '='); eq >= 0 {
			data = bytes.TrimSpace(data[eq+1:])
		}
	}

	data = bytes.TrimSpace(bytes.TrimSuffix(data, []byte(";")))
	return data, nil
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

package documenter

import (
	"bytes"
	"encoding/json"

	"github.com/fwojciec/docindex"
)

// Encode writes entries in the JavaScript assignment form consumed by
// Documenter front ends. Entries are validated first; EMALFORMED is
// returned for the first invalid one.
func Encode(entries []docindex.Entry) ([]byte, error) {
	for i := range entries {
		if err := entries[i].Validate(); err != nil {
			return nil, docindex.Errorf(docindex.EMALFORMED, "record %d: %s", i, docindex.ErrorMessage(err))
		}
	}

	if entries == nil {
		entries = []docindex.Entry{}
	}

	payload, err := json.Marshal(map[string][]docindex.Entry{DefaultKey: entries})
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.WriteString("var ")
	buf.WriteString(DefaultVariable)
	buf.WriteString(" = ")
	buf.Write(payload)
	buf.WriteString("\n")
	return buf.Bytes(), nil
}

// pkg/model/json.go
package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// MarshalRecords serializes a table as a record-array JSON document:
// one object per row, UTF-8, non-ASCII left unescaped. This is the only
// format contract with the surrounding persistence layer; corrupted values
// must survive a round-trip byte-for-byte.
func MarshalRecords(t *Table) ([]byte, error) {
	if t == nil {
		return nil, errors.New("table cannot be nil")
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")

	records := make([]map[string]interface{}, t.RowCount())
	for i := 0; i < t.RowCount(); i++ {
		records[i] = t.Row(i)
	}
	if err := enc.Encode(records); err != nil {
		return nil, fmt.Errorf("failed to encode records: %w", err)
	}
	return buf.Bytes(), nil
}

// UnmarshalRecords parses a record-array JSON document into a Table.
// Column order is taken from the key order of the first record so that a
// save/load cycle keeps a stable column layout; later records may add
// columns, which are appended in first-seen order.
func UnmarshalRecords(data []byte) (*Table, error) {
	var raw []map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode records: %w", err)
	}
	if len(raw) == 0 {
		return nil, errors.New("record array is empty")
	}

	columns, err := recordKeyOrder(data)
	if err != nil {
		return nil, err
	}

	// Append any column the first record did not carry.
	known := make(map[string]bool, len(columns))
	for _, col := range columns {
		known[col] = true
	}
	for _, rec := range raw {
		for k := range rec {
			if !known[k] {
				columns = append(columns, k)
				known[k] = true
			}
		}
	}

	rows := make([]Row, len(raw))
	for i, rec := range raw {
		rows[i] = Row(rec)
	}
	return NewTable(columns, rows)
}

// recordKeyOrder walks the tokens of the first object in a record array and
// returns its keys in document order. encoding/json maps lose key order, so
// this is the only way to preserve the on-disk column layout.
func recordKeyOrder(data []byte) ([]string, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	// Opening '[' of the array.
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("failed to read array start: %w", err)
	}
	// Opening '{' of the first record.
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("failed to read first record: %w", err)
	}

	var keys []string
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("failed to scan first record: %w", err)
		}
		if delim, ok := tok.(json.Delim); ok && delim == '}' {
			return keys, nil
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected token in first record: %v", tok)
		}
		keys = append(keys, key)

		// Skip the value belonging to this key.
		var discard json.RawMessage
		if err := dec.Decode(&discard); err != nil {
			return nil, fmt.Errorf("failed to skip value: %w", err)
		}
	}
}

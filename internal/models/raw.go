package models

import "fmt"

// RawRecord maps a field name to the display value scraped for it.
// A nil value or a missing key is the null marker. Values are usually
// strings but the extraction boundary does not guarantee it.
type RawRecord map[string]any

// DisplayString renders the raw value of a field as text.
// Null values render as the empty string.
func (r RawRecord) DisplayString(field string) string {
	v, ok := r[field]
	if !ok || v == nil {
		return ""
	}

	if s, ok := v.(string); ok {
		return s
	}

	return fmt.Sprint(v)
}

// RawTable is an ordered set of raw records plus the schema they share.
// Row order is extraction order; stages never mutate a table in place.
type RawTable struct {
	Columns []string    `json:"columns"`
	Rows    []RawRecord `json:"rows"`
}

// NewRawTable creates an empty raw table with the standard catalog schema.
func NewRawTable() RawTable {
	return RawTable{Columns: Header()}
}

// Len returns the number of rows.
func (t RawTable) Len() int {
	return len(t.Rows)
}

// IsEmpty reports whether the table has no rows.
func (t RawTable) IsEmpty() bool {
	return len(t.Rows) == 0
}

// HasColumn reports whether the schema contains the named column.
func (t RawTable) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}

	return false
}

package transform

import "fashionetl/internal/models"

// DirtyFilter drops rows whose raw fields match known placeholder strings
// before any cleaning happens.
type DirtyFilter struct {
	patterns map[string]map[string]struct{}
}

// NewDirtyFilter builds a filter from per-column placeholder sets.
func NewDirtyFilter(patterns map[string][]string) *DirtyFilter {
	sets := make(map[string]map[string]struct{}, len(patterns))

	for column, values := range patterns {
		set := make(map[string]struct{}, len(values))
		for _, v := range values {
			set[v] = struct{}{}
		}

		sets[column] = set
	}

	return &DirtyFilter{patterns: sets}
}

// Apply returns a new table containing only the clean rows, preserving
// order. A row is dropped when any configured column present in the schema
// holds a null value or an exact placeholder match. An empty table passes
// through unchanged.
func (f *DirtyFilter) Apply(table models.RawTable) models.RawTable {
	if table.IsEmpty() {
		return table
	}

	result := models.RawTable{Columns: table.Columns}

	for _, row := range table.Rows {
		if f.isDirty(table, row) {
			continue
		}

		result.Rows = append(result.Rows, row)
	}

	return result
}

func (f *DirtyFilter) isDirty(table models.RawTable, row models.RawRecord) bool {
	for column, set := range f.patterns {
		if !table.HasColumn(column) {
			continue
		}

		v, present := row[column]
		if !present || v == nil {
			return true
		}

		if s, ok := v.(string); ok {
			if _, dirty := set[s]; dirty {
				return true
			}
		}
	}

	return false
}

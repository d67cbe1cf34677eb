// Package models defines the data structures shared across the ETL stages.
package models

import "strconv"

// Field names used across the raw and typed tables.
const (
	FieldTitle     = "title"
	FieldPrice     = "price"
	FieldRating    = "rating"
	FieldColors    = "colors"
	FieldSize      = "size"
	FieldGender    = "gender"
	FieldTimestamp = "timestamp"
)

// Header returns the column names in table order.
func Header() []string {
	return []string{
		FieldTitle,
		FieldPrice,
		FieldRating,
		FieldColors,
		FieldSize,
		FieldGender,
		FieldTimestamp,
	}
}

// CleanedFields returns the five columns that must be non-null after cleaning.
func CleanedFields() []string {
	return []string{FieldPrice, FieldRating, FieldColors, FieldSize, FieldGender}
}

// Product is a fully typed, cleaned catalog record.
type Product struct {
	Title     string  `json:"title" db:"title"`
	Price     float64 `json:"price" db:"price"`
	Rating    float64 `json:"rating" db:"rating"`
	Colors    int     `json:"colors" db:"colors"`
	Size      string  `json:"size" db:"size"`
	Gender    string  `json:"gender" db:"gender"`
	Timestamp string  `json:"timestamp" db:"timestamp"`
}

// Cells returns the record's values as display strings in header order.
func (p Product) Cells() []string {
	return []string{
		p.Title,
		strconv.FormatFloat(p.Price, 'f', -1, 64),
		strconv.FormatFloat(p.Rating, 'f', -1, 64),
		strconv.Itoa(p.Colors),
		p.Size,
		p.Gender,
		p.Timestamp,
	}
}

// ProductTable is an ordered, read-only set of typed records.
type ProductTable struct {
	Rows []Product `json:"rows"`
}

// Len returns the number of rows.
func (t *ProductTable) Len() int {
	if t == nil {
		return 0
	}

	return len(t.Rows)
}

// IsEmpty reports whether the table is nil or has no rows.
func (t *ProductTable) IsEmpty() bool {
	return t.Len() == 0
}

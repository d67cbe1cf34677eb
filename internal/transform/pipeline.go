package transform

import (
	"fashionetl/internal/config"
	"fashionetl/internal/logger"
	"fashionetl/internal/models"
)

// Pipeline orchestrates the full transform stage: dirty-record filtering,
// per-field cleaning, and the completeness cut.
type Pipeline struct {
	filter  *DirtyFilter
	cleaner *Cleaner
	log     *logger.Logger
}

// NewPipeline creates a pipeline from the transform configuration.
func NewPipeline(cfg config.TransformConfig, log *logger.Logger) *Pipeline {
	patterns := cfg.DirtyPatterns
	if patterns == nil {
		patterns = config.DefaultDirtyPatterns()
	}

	return &Pipeline{
		filter:  NewDirtyFilter(patterns),
		cleaner: NewCleaner(cfg.CurrencyRate),
		log:     log,
	}
}

// Run transforms a raw table into a typed product table. It never fails:
// empty input, a missing required column, or an internal panic all yield an
// empty table, so callers distinguish "no valid data" only by emptiness.
func (p *Pipeline) Run(raw models.RawTable) (result models.ProductTable) {
	defer func() {
		if r := recover(); r != nil {
			p.log.Error("transform pipeline panicked, returning empty table", "panic", r)
			result = models.ProductTable{}
		}
	}()

	if raw.IsEmpty() {
		p.log.Warn("input table is empty, returning empty table")
		return models.ProductTable{}
	}

	for _, column := range models.CleanedFields() {
		if !raw.HasColumn(column) {
			p.log.Error("required column missing from input schema, returning empty table", "column", column)
			return models.ProductTable{}
		}
	}

	p.log.Info("starting transformation", "records", raw.Len())

	filtered := p.filter.Apply(raw)
	p.log.Info("removed dirty records", "remaining", filtered.Len(), "dropped", raw.Len()-filtered.Len())

	for _, row := range filtered.Rows {
		product, ok := p.cleanRow(row)
		if !ok {
			continue
		}

		result.Rows = append(result.Rows, product)
	}

	p.log.Info("transformation complete",
		"records", result.Len(),
		"dropped_incomplete", filtered.Len()-result.Len(),
	)

	return result
}

// cleanRow applies every field cleaner and reports false when any of the
// five required fields comes out absent.
func (p *Pipeline) cleanRow(row models.RawRecord) (models.Product, bool) {
	price, ok := p.cleaner.Price(row[models.FieldPrice])
	if !ok {
		return models.Product{}, false
	}

	rating, ok := p.cleaner.Rating(row[models.FieldRating])
	if !ok {
		return models.Product{}, false
	}

	colors, ok := p.cleaner.Colors(row[models.FieldColors])
	if !ok {
		return models.Product{}, false
	}

	size, ok := p.cleaner.Size(row[models.FieldSize])
	if !ok {
		return models.Product{}, false
	}

	gender, ok := p.cleaner.Gender(row[models.FieldGender])
	if !ok {
		return models.Product{}, false
	}

	return models.Product{
		Title:     row.DisplayString(models.FieldTitle),
		Price:     price,
		Rating:    rating,
		Colors:    colors,
		Size:      size,
		Gender:    gender,
		Timestamp: row.DisplayString(models.FieldTimestamp),
	}, true
}

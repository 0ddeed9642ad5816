package normalize

import (
	"fmt"

	"github.com/bytedance/sonic"
)

// Record is the outcome of extracting one source row against a category
// schema. Fields holds the typed values destined for dedicated columns;
// Additional collects the named extras plus every unmapped source column.
type Record struct {
	StatType   string
	Fields     map[string]any
	Additional map[string]any
}

// Extract applies the category schema to a row. Identity columns are
// consumed by the resolver and excluded from the overflow; so is any source
// column that happens to share a mapped column's name.
func Extract(row Row, specs []FieldSpec, identityColumns []string, statType string) Record {
	rec := Record{
		StatType:   statType,
		Fields:     make(map[string]any, len(specs)),
		Additional: make(map[string]any),
	}

	mapped := make(map[string]struct{}, len(specs)+1)
	mapped["additional_stats"] = struct{}{}

	for _, spec := range specs {
		var value any
		switch spec.Kind {
		case KindFloat:
			if v := row.Float(spec.Aliases...); v != nil {
				value = *v
			}
		default:
			if v := row.Int(spec.Aliases...); v != nil {
				value = *v
			}
		}

		if spec.Extra {
			if value != nil {
				rec.Additional[spec.Column] = value
			}
			continue
		}

		mapped[spec.Column] = struct{}{}
		if value != nil {
			rec.Fields[spec.Column] = value
		}
	}

	identity := make(map[string]struct{}, len(identityColumns))
	for _, col := range identityColumns {
		identity[col] = struct{}{}
	}

	for col, value := range row {
		if _, ok := identity[col]; ok {
			continue
		}
		if _, ok := mapped[col]; ok {
			continue
		}
		if isNull(value) {
			continue
		}
		rec.Additional[col] = overflowValue(value)
	}

	return rec
}

// overflowValue keeps JSON scalars as they are and renders anything else as
// a string so the document always serializes.
func overflowValue(value any) any {
	switch value.(type) {
	case string, float64, int, int64, bool:
		return value
	default:
		return fmt.Sprintf("%v", value)
	}
}

func (r Record) Int(column string) *int {
	value, ok := r.Fields[column]
	if !ok {
		return nil
	}

	return coerceInt(value)
}

func (r Record) Float(column string) *float64 {
	value, ok := r.Fields[column]
	if !ok {
		return nil
	}

	return coerceFloat(value)
}

// EncodeAdditional serializes the overflow document. An empty document
// encodes as {} rather than null so the column stays queryable.
func (r Record) EncodeAdditional() (string, error) {
	if len(r.Additional) == 0 {
		return "{}", nil
	}

	out, err := sonic.MarshalString(r.Additional)
	if err != nil {
		return "", fmt.Errorf("encode additional stats: %w", err)
	}

	return out, nil
}

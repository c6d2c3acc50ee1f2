package domain

// Record is one structured row from the record source: a mapping from
// field name to scalar value, already rendered as strings. Fields may be
// missing entirely or present with an empty value; both are treated as
// absent during document synthesis.
type Record map[string]string

// Value returns the value for the given field, and whether it is present
// and non-empty.
func (r Record) Value(field string) (string, bool) {
	v, ok := r[field]
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

// FeatureVector is a numeric feature mapping consumed by the external
// churn classifier. Field names match the classifier's training schema.
type FeatureVector map[string]float64

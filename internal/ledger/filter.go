package ledger

import "expensetracker/internal/core"

// CategoryAll disables category filtering. The empty string behaves
// the same, so an unset flag or form field needs no special casing.
const CategoryAll = "All"

// Criteria is the transient filter value object: an optional category
// and optional inclusive date bounds in YYYY-MM-DD form. A bound that
// does not parse as a real date imposes no constraint at all:
// filtering is advisory, display-only, and must never fail.
type Criteria struct {
	Category string
	From     string
	To       string
}

// IsZero reports whether the criteria constrain nothing.
func (c Criteria) IsZero() bool {
	from, to := c.bounds()
	return (c.Category == "" || c.Category == CategoryAll) && from == "" && to == ""
}

// Apply derives the filtered view of the given records. It is pure and
// stable: output preserves ledger order, no sorting.
func Apply(records []core.Record, c Criteria) []core.Record {
	from, to := c.bounds()
	byCategory := c.Category != "" && c.Category != CategoryAll

	out := make([]core.Record, 0, len(records))
	for _, r := range records {
		if byCategory && r.Category != c.Category {
			continue
		}
		d := r.Date.String()
		if from != "" && d < from {
			continue
		}
		if to != "" && d > to {
			continue
		}
		out = append(out, r)
	}
	return out
}

// bounds normalizes the date bounds, dropping any that fail to parse.
func (c Criteria) bounds() (from, to string) {
	if d, err := core.ParseDate(c.From); err == nil {
		from = d.String()
	}
	if d, err := core.ParseDate(c.To); err == nil {
		to = d.String()
	}
	return from, to
}

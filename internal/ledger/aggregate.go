package ledger

import (
	"sort"

	"expensetracker/internal/core"
)

// Aggregates are pure functions over a view, typically the filtered
// one. They are recomputed on demand after every mutation or filter
// change; nothing is cached.

// Total sums the amounts of the view. Zero for an empty view.
func Total(records []core.Record) core.Money {
	var total core.Money
	for _, r := range records {
		total = total.Add(r.Amount)
	}
	return total
}

// MonthlyTotal sums the amounts of records falling in the given
// YYYY-MM month.
func MonthlyTotal(records []core.Record, yearMonth string) core.Money {
	var total core.Money
	for _, r := range records {
		if r.Date.YearMonth() == yearMonth {
			total = total.Add(r.Amount)
		}
	}
	return total
}

// DailyAverage returns total / span in currency units, where span is
// the inclusive day count between the earliest and latest dates in the
// view. The span covers only the dates actually present in the view.
// Zero for an empty view.
func DailyAverage(records []core.Record) float64 {
	if len(records) == 0 {
		return 0
	}
	total := Total(records)
	earliest, latest := records[0].Date, records[0].Date
	for _, r := range records[1:] {
		if r.Date.Before(earliest.Time) {
			earliest = r.Date
		}
		if r.Date.After(latest.Time) {
			latest = r.Date
		}
	}
	span := int(latest.Sub(earliest.Time).Hours()/24) + 1
	if span <= 0 {
		return total.Units()
	}
	return total.Units() / float64(span)
}

// CategoryTotals groups the view's amounts by category. Categories
// absent from the view are omitted, not zero-filled. The result is
// ordered by descending amount, then name, so chart and table output
// is deterministic.
func CategoryTotals(records []core.Record) []core.CategoryAmount {
	cents := make(map[string]int64)
	for _, r := range records {
		cents[r.Category] += r.Amount.Cents
	}
	out := make([]core.CategoryAmount, 0, len(cents))
	for name, c := range cents {
		out = append(out, core.CategoryAmount{Name: name, Amount: core.Money{Cents: c}})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Amount.Cents != out[j].Amount.Cents {
			return out[i].Amount.Cents > out[j].Amount.Cents
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// Extremes returns the records with the highest and lowest amounts in
// the view, or nil, nil for an empty view. When several records share
// the extreme amount, the first one in ledger order wins.
func Extremes(records []core.Record) (highest, lowest *core.Record) {
	for i := range records {
		r := records[i]
		if highest == nil || r.Amount.Cents > highest.Amount.Cents {
			c := r
			highest = &c
		}
		if lowest == nil || r.Amount.Cents < lowest.Amount.Cents {
			c := r
			lowest = &c
		}
	}
	return highest, lowest
}

// MonthTotals groups the view's amounts by YYYY-MM month, sorted
// chronologically. It feeds the monthly trend chart.
func MonthTotals(records []core.Record) []core.CategoryAmount {
	cents := make(map[string]int64)
	for _, r := range records {
		cents[r.Date.YearMonth()] += r.Amount.Cents
	}
	out := make([]core.CategoryAmount, 0, len(cents))
	for month, c := range cents {
		out = append(out, core.CategoryAmount{Name: month, Amount: core.Money{Cents: c}})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Package render draws the textual display surface: the expense
// table, the statistics block, the category breakdown and the
// activity log.
package render

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"expensetracker/internal/core"
	"expensetracker/internal/services"
)

// Renderer formats ledger output with the configured currency symbol.
type Renderer struct {
	Currency string
}

func New(currency string) *Renderer {
	if currency == "" {
		currency = "$"
	}
	return &Renderer{Currency: currency}
}

func (r *Renderer) money(m core.Money) string {
	return r.Currency + m.String()
}

// Table writes the expense view as an aligned table, ledger order.
func (r *Renderer) Table(w io.Writer, records []core.Record) {
	if len(records) == 0 {
		fmt.Fprintln(w, "No expenses recorded.")
		return
	}
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"ID", "Date", "Description", "Category", "Amount"})
	for _, rec := range records {
		t.AppendRow(table.Row{rec.ID, rec.Date.String(), rec.Description, rec.Category, r.money(rec.Amount)})
	}
	t.Render()
}

// Summary writes the statistics block for the current view.
func (r *Renderer) Summary(w io.Writer, s services.Summary) {
	fmt.Fprintf(w, "Total expenses: %s\n", r.money(s.Total))
	fmt.Fprintf(w, "This month:     %s\n", r.money(s.MonthTotal))
	fmt.Fprintf(w, "Daily average:  %s%.2f\n", r.Currency, s.DailyAverage)
	if s.Highest != nil && s.Lowest != nil {
		fmt.Fprintf(w, "Highest: %s (%s)   Lowest: %s (%s)\n",
			s.Highest.Description, text.FgRed.Sprint(r.money(s.Highest.Amount)),
			s.Lowest.Description, text.FgGreen.Sprint(r.money(s.Lowest.Amount)))
	}
}

// CategoryTotals writes the per-category breakdown feeding the charts.
func (r *Renderer) CategoryTotals(w io.Writer, totals []core.CategoryAmount) {
	if len(totals) == 0 {
		return
	}
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Category", "Amount"})
	for _, ct := range totals {
		t.AppendRow(table.Row{ct.Name, r.money(ct.Amount)})
	}
	t.Render()
}

// ActivityLog writes the bounded activity log, oldest first.
func (r *Renderer) ActivityLog(w io.Writer, entries []string) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No activity yet.")
		return
	}
	for _, e := range entries {
		fmt.Fprintln(w, e)
	}
}

// Package charts renders PNG charts from ledger aggregates: a pie and
// a bar of the category breakdown, and a line of the monthly trend.
package charts

import (
	"bytes"
	"fmt"
	"time"

	chart "github.com/wcharczuk/go-chart/v2"

	"expensetracker/internal/core"
	"expensetracker/internal/ledger"
)

// Generator renders charts from aggregate data.
type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// CategoryPie renders the share of each category in the view. Returns
// nil bytes when there is nothing to plot.
func (g *Generator) CategoryPie(totals []core.CategoryAmount) ([]byte, error) {
	if len(totals) == 0 {
		return nil, nil
	}
	var grand int64
	for _, t := range totals {
		grand += t.Amount.Cents
	}
	values := make([]chart.Value, 0, len(totals))
	for _, t := range totals {
		share := float64(t.Amount.Cents) / float64(grand) * 100
		values = append(values, chart.Value{
			Label: fmt.Sprintf("%s: %s (%.1f%%)", t.Name, t.Amount, share),
			Value: t.Amount.Units(),
		})
	}

	pie := chart.PieChart{
		Width:  800,
		Height: 600,
		Values: values,
		Background: chart.Style{
			Padding:   chart.Box{Top: 30, Left: 30, Right: 30, Bottom: 30},
			FillColor: chart.ColorWhite,
		},
	}

	var buf bytes.Buffer
	if err := pie.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render category pie: %w", err)
	}
	return buf.Bytes(), nil
}

// CategoryBar renders the category totals as bars.
func (g *Generator) CategoryBar(totals []core.CategoryAmount) ([]byte, error) {
	if len(totals) == 0 {
		return nil, nil
	}
	bars := make([]chart.Value, 0, len(totals))
	for _, t := range totals {
		bars = append(bars, chart.Value{
			Label: t.Name,
			Value: t.Amount.Units(),
		})
	}

	bar := chart.BarChart{
		Width:    900,
		Height:   500,
		BarWidth: 60,
		Background: chart.Style{
			Padding:   chart.Box{Top: 30, Left: 30, Right: 30, Bottom: 30},
			FillColor: chart.ColorWhite,
		},
		XAxis: chart.Style{FontSize: 10},
		YAxis: chart.YAxis{
			ValueFormatter: func(v interface{}) string {
				return fmt.Sprintf("%.0f", v.(float64))
			},
		},
		Bars: bars,
	}

	var buf bytes.Buffer
	if err := bar.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render category bar: %w", err)
	}
	return buf.Bytes(), nil
}

// DailyScatter plots every expense as a point, date against amount.
// A single distinct date gives the x axis no range, so nil bytes are
// returned until a second day appears.
func (g *Generator) DailyScatter(records []core.Record) ([]byte, error) {
	dates := make(map[string]bool, len(records))
	for _, r := range records {
		dates[r.Date.String()] = true
	}
	if len(dates) < 2 {
		return nil, nil
	}

	xValues := make([]time.Time, 0, len(records))
	yValues := make([]float64, 0, len(records))
	for _, r := range records {
		xValues = append(xValues, r.Date.Time)
		yValues = append(yValues, r.Amount.Units())
	}

	graph := chart.Chart{
		Width:  1000,
		Height: 500,
		Background: chart.Style{
			Padding:   chart.Box{Top: 40, Left: 40, Right: 40, Bottom: 40},
			FillColor: chart.ColorWhite,
		},
		XAxis: chart.XAxis{
			ValueFormatter: chart.TimeValueFormatterWithFormat(core.DateLayout),
		},
		YAxis: chart.YAxis{
			ValueFormatter: func(v interface{}) string {
				return fmt.Sprintf("%.0f", v.(float64))
			},
		},
		Series: []chart.Series{
			chart.TimeSeries{
				Name:    "Daily expenses",
				XValues: xValues,
				YValues: yValues,
				Style: chart.Style{
					StrokeWidth: chart.Disabled,
					DotWidth:    4,
					DotColor:    chart.ColorBlue,
				},
			},
		},
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render daily scatter: %w", err)
	}
	return buf.Bytes(), nil
}

// MonthlyTrend renders total spending per month over time. With fewer
// than two months there is no trend to draw and nil bytes are
// returned.
func (g *Generator) MonthlyTrend(records []core.Record) ([]byte, error) {
	months := ledger.MonthTotals(records)
	if len(months) < 2 {
		return nil, nil
	}

	xValues := make([]time.Time, 0, len(months))
	yValues := make([]float64, 0, len(months))
	for _, m := range months {
		t, err := time.Parse("2006-01", m.Name)
		if err != nil {
			return nil, fmt.Errorf("bad month key %q: %w", m.Name, err)
		}
		xValues = append(xValues, t)
		yValues = append(yValues, m.Amount.Units())
	}

	graph := chart.Chart{
		Width:  1000,
		Height: 500,
		Background: chart.Style{
			Padding:   chart.Box{Top: 40, Left: 40, Right: 40, Bottom: 40},
			FillColor: chart.ColorWhite,
		},
		XAxis: chart.XAxis{
			ValueFormatter: chart.TimeValueFormatterWithFormat("2006-01"),
		},
		YAxis: chart.YAxis{
			ValueFormatter: func(v interface{}) string {
				return fmt.Sprintf("%.0f", v.(float64))
			},
		},
		Series: []chart.Series{
			chart.TimeSeries{
				Name:    "Monthly total",
				XValues: xValues,
				YValues: yValues,
				Style: chart.Style{
					StrokeColor: chart.ColorBlue,
					StrokeWidth: 2,
				},
			},
		},
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render monthly trend: %w", err)
	}
	return buf.Bytes(), nil
}

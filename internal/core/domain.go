package core

import (
	"errors"
	"strings"
	"time"
)

// DateLayout is the canonical YYYY-MM-DD form used on disk and in
// filters. Lexicographic order of this form equals chronological order.
const DateLayout = "2006-01-02"

// Categories is the default category set offered by the presentation
// layer. The core stores whatever label it is given; membership is not
// enforced here.
var Categories = []string{
	"Food", "Transportation", "Entertainment", "Shopping",
	"Bills", "Healthcare", "Education", "Other",
}

type (
	Date struct {
		time.Time
	}

	Money struct {
		Cents int64
	}

	// Record is one expense entry. IDs are positive, unique within the
	// ledger and never reused after deletion.
	Record struct {
		ID          int64
		Description string
		Amount      Money
		Category    string
		Date        Date
	}

	// CategoryAmount is an amount aggregated under one category name.
	CategoryAmount struct {
		Name   string
		Amount Money
	}
)

var (
	ErrEmptyDescription = errors.New("empty description")
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrInvalidDate      = errors.New("invalid date")
)

// NewDate composes a Date from year, month and day components. It fails
// with ErrInvalidDate when the components do not name a real calendar
// date (Feb 30, month 13, day 32 and so on). Leap years follow the
// Gregorian rule via the time package.
func NewDate(year, month, day int) (Date, error) {
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || int(t.Month()) != month || t.Day() != day {
		return Date{}, ErrInvalidDate
	}
	return Date{Time: t}, nil
}

// ParseDate parses a YYYY-MM-DD string into a Date.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return NewDate(t.Year(), int(t.Month()), t.Day())
}

// String formats the date in the canonical YYYY-MM-DD form.
func (d Date) String() string {
	return d.Format(DateLayout)
}

// YearMonth returns the YYYY-MM prefix used for monthly grouping.
func (d Date) YearMonth() string {
	return d.Format("2006-01")
}

func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

// RecordInput carries raw candidate field values exactly as the
// presentation layer collects them: free text for description and
// amount, a category label and the date string.
type RecordInput struct {
	Description string
	Amount      string
	Category    string
	Date        string
}

// Fields is a validated set of record fields, ready for the ledger.
type Fields struct {
	Description string
	Amount      Money
	Category    string
	Date        Date
}

// Validate checks a candidate record and returns the validated fields.
// The category is stored as-is: the presentation layer always offers
// the fixed set, but an unrecognized label must not be rejected here.
func (in RecordInput) Validate() (Fields, error) {
	desc := strings.TrimSpace(in.Description)
	if desc == "" {
		return Fields{}, ErrEmptyDescription
	}
	cents, err := ParseAmount(in.Amount)
	if err != nil {
		return Fields{}, err
	}
	date, err := ParseDate(in.Date)
	if err != nil {
		return Fields{}, err
	}
	return Fields{
		Description: desc,
		Amount:      Money{Cents: cents},
		Category:    in.Category,
		Date:        date,
	}, nil
}

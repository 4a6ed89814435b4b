package core

import (
	"fmt"
	"sort"
	"time"
)

// DateString is the canonical storage form of an expense date: an RFC 3339
// instant normalized to UTC. Display and manipulation use time.Time; storage
// and comparison use this string form.
//
// Bucketing is always done on the UTC calendar date of the stored instant,
// never on a re-localized display value, so a record cannot land in a
// different month depending on where it is rendered.
type DateString string

// ToCanonical converts a date value to its canonical storage form.
func ToCanonical(t time.Time) DateString {
	return DateString(t.UTC().Format(time.RFC3339Nano))
}

// Time converts the canonical form back to a date value in UTC.
// ToCanonical and Time round-trip: the result is time.Equal to the input.
func (d DateString) Time() (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, string(d))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, string(d))
	}
	return t.UTC(), nil
}

// Bucket is the (year, month) grouping key used for monthly aggregation.
type Bucket struct {
	Year  int
	Month time.Month
}

func NewBucket(year int, month time.Month) Bucket {
	return Bucket{Year: year, Month: month}
}

func (b Bucket) String() string {
	return fmt.Sprintf("%04d-%02d", b.Year, int(b.Month))
}

// Bucket returns the month bucket of the stored date.
func (d DateString) Bucket() (Bucket, error) {
	t, err := d.Time()
	if err != nil {
		return Bucket{}, err
	}
	return Bucket{Year: t.Year(), Month: t.Month()}, nil
}

// SortExpensesByDate orders records by date descending, in place. The sort is
// stable: ties keep their insertion recency. Every mutation of the record set
// re-establishes this ordering.
func SortExpensesByDate(items []Expense) {
	sort.SliceStable(items, func(i, j int) bool {
		ti, _ := items[i].Date.Time()
		tj, _ := items[j].Date.Time()
		return ti.After(tj)
	})
}

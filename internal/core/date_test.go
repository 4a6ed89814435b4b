package core

import (
	"testing"
	"time"
)

func TestDateRoundTrip(t *testing.T) {
	cases := []time.Time{
		time.Date(2024, 3, 3, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 12, 31, 23, 59, 59, 0, time.UTC),
		time.Date(2024, 2, 29, 10, 30, 0, 0, time.UTC), // leap day
		time.Date(2024, 6, 15, 22, 0, 0, 0, time.FixedZone("CEST", 2*3600)),
	}
	for i, in := range cases {
		got, err := ToCanonical(in).Time()
		if err != nil {
			t.Fatalf("case %d: %v", i, err)
		}
		if !got.Equal(in) {
			t.Fatalf("case %d: round trip changed value: %v != %v", i, got, in)
		}
	}
}

func TestDateBucket(t *testing.T) {
	cases := []struct {
		date string
		want Bucket
	}{
		{"2024-03-03T12:00:00Z", NewBucket(2024, time.March)},
		{"2024-03-01T00:00:00Z", NewBucket(2024, time.March)},
		{"2024-02-29T23:59:59Z", NewBucket(2024, time.February)},
		// bucketing follows the UTC calendar date of the stored instant
		{"2024-03-31T23:30:00Z", NewBucket(2024, time.March)},
	}
	for _, tc := range cases {
		got, err := DateString(tc.date).Bucket()
		if err != nil {
			t.Fatalf("%s: %v", tc.date, err)
		}
		if got != tc.want {
			t.Fatalf("%s: expected %v, got %v", tc.date, tc.want, got)
		}
	}

	if _, err := DateString("last tuesday").Bucket(); err == nil {
		t.Fatalf("expected error for garbage date")
	}
}

func TestSortExpensesByDate(t *testing.T) {
	day := func(d int) DateString {
		return ToCanonical(time.Date(2024, 3, d, 0, 0, 0, 0, time.UTC))
	}
	items := []Expense{
		{ID: "a", Date: day(1)},
		{ID: "b", Date: day(10)},
		{ID: "c", Date: day(10)}, // same date as b, inserted later
		{ID: "d", Date: day(5)},
	}
	SortExpensesByDate(items)

	want := []string{"b", "c", "d", "a"}
	for i, id := range want {
		if items[i].ID != id {
			t.Fatalf("position %d: expected %s, got %s", i, id, items[i].ID)
		}
	}
}

package core

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	cases := []struct {
		in string
		ok bool
	}{
		{"2024-01-05", true},
		{" 2024-12-31 ", true},
		{"2024-13-01", false},
		{"05/01/2024", false},
		{"yesterday", false},
		{"", false},
	}
	for _, tc := range cases {
		d, err := ParseDate(tc.in)
		if tc.ok && err != nil {
			t.Fatalf("%q expected ok, got %v", tc.in, err)
		}
		if !tc.ok && err == nil {
			t.Fatalf("%q expected error", tc.in)
		}
		if tc.ok && d.Validate() != nil {
			t.Fatalf("%q parsed to invalid date", tc.in)
		}
	}
}

func TestDateString(t *testing.T) {
	d := NewDate(2024, 3, 7)
	if got := d.String(); got != "2024-03-07" {
		t.Fatalf("expected 2024-03-07, got %s", got)
	}
}

func TestExpenseValidate(t *testing.T) {
	good := Expense{
		Date:     NewDate(2024, 1, 5),
		Category: "Food",
		Amount:   Money{Cents: 10000},
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bads := []Expense{
		{Date: Date{Time: time.Time{}}, Category: "Food", Amount: Money{Cents: 1}},
		{Date: NewDate(2024, 1, 5), Category: "", Amount: Money{Cents: 1}},
		{Date: NewDate(2024, 1, 5), Category: "  ", Amount: Money{Cents: 1}},
		{Date: NewDate(2024, 1, 5), Category: "Food", Amount: Money{Cents: 0}},
		{Date: NewDate(2024, 1, 5), Category: "Food", Amount: Money{Cents: -5}},
	}
	for i, e := range bads {
		if err := e.Validate(); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestFilterApply(t *testing.T) {
	items := []Expense{
		{Date: NewDate(2024, 1, 5), Category: "Food", Amount: Money{Cents: 10000}},
		{Date: NewDate(2024, 2, 10), Category: "Transport", Amount: Money{Cents: 20000}},
		{Date: NewDate(2024, 3, 15), Category: "Food", Amount: Money{Cents: 30000}},
	}

	cases := []struct {
		name string
		f    Filter
		want int
	}{
		{"unbounded", Filter{}, 3},
		{"all sentinel", Filter{Category: CategoryAll}, 3},
		{"all sentinel case-insensitive", Filter{Category: "ALL"}, 3},
		{"all sentinel lowercase", Filter{Category: "all"}, 3},
		{"full range", Filter{From: NewDate(2024, 1, 1), To: NewDate(2024, 12, 31)}, 3},
		{"from only", Filter{From: NewDate(2024, 2, 1)}, 2},
		{"to only", Filter{To: NewDate(2024, 2, 28)}, 2},
		{"inclusive bounds", Filter{From: NewDate(2024, 2, 10), To: NewDate(2024, 2, 10)}, 1},
		{"category", Filter{Category: "Food"}, 2},
		{"category case-insensitive", Filter{Category: "food"}, 2},
		{"range and category", Filter{From: NewDate(2024, 2, 1), Category: "Food"}, 1},
		{"no match", Filter{Category: "Rent"}, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.f.Apply(items)
			if len(got) != tc.want {
				t.Fatalf("expected %d records, got %d", tc.want, len(got))
			}
		})
	}
}

func TestFilterPreservesOrder(t *testing.T) {
	items := []Expense{
		{Date: NewDate(2024, 3, 15), Category: "Food", Amount: Money{Cents: 300}},
		{Date: NewDate(2024, 1, 5), Category: "Food", Amount: Money{Cents: 100}},
		{Date: NewDate(2024, 2, 10), Category: "Food", Amount: Money{Cents: 200}},
	}
	got := (Filter{Category: CategoryAll}).Apply(items)
	if len(got) != len(items) {
		t.Fatalf("expected %d records, got %d", len(items), len(got))
	}
	for i := range items {
		if got[i] != items[i] {
			t.Fatalf("record %d reordered: got %+v want %+v", i, got[i], items[i])
		}
	}
}

func TestFilterIsZero(t *testing.T) {
	cases := []struct {
		name string
		f    Filter
		want bool
	}{
		{"empty", Filter{}, true},
		{"all sentinel", Filter{Category: CategoryAll}, true},
		{"all sentinel case-insensitive", Filter{Category: "aLL"}, true},
		{"category", Filter{Category: "Food"}, false},
		{"from bound", Filter{From: NewDate(2024, 1, 1)}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.f.IsZero(); got != tc.want {
				t.Fatalf("IsZero() = %v, want %v", got, tc.want)
			}
		})
	}
}

package model

import (
	"errors"
	"testing"
)

func TestParseFilter(t *testing.T) {
	cases := []struct {
		in   string
		want Filter
	}{
		{"", FilterAll},
		{"all", FilterAll},
		{"#/", FilterAll},
		{" Active ", FilterActive},
		{"#/active", FilterActive},
		{"completed", FilterCompleted},
		{"done", FilterCompleted},
	}
	for _, tc := range cases {
		got, err := ParseFilter(tc.in)
		if err != nil {
			t.Fatalf("parse %q: %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("parse %q = %s, want %s", tc.in, got, tc.want)
		}
	}
	if _, err := ParseFilter("someday"); !errors.Is(err, ErrInvalidFilter) {
		t.Fatalf("expected ErrInvalidFilter, got %v", err)
	}
}

func TestFilterMatches(t *testing.T) {
	open := Item{Text: "a"}
	done := Item{Text: "b", IsComplete: true}
	if !FilterAll.Matches(open) || !FilterAll.Matches(done) {
		t.Fatalf("all should match everything")
	}
	if !FilterActive.Matches(open) || FilterActive.Matches(done) {
		t.Fatalf("active should match only open items")
	}
	if FilterCompleted.Matches(open) || !FilterCompleted.Matches(done) {
		t.Fatalf("completed should match only done items")
	}
}

func TestFilterHrefRoundTrips(t *testing.T) {
	for _, f := range Filters {
		got, err := ParseFilter(f.Href())
		if err != nil || got != f {
			t.Fatalf("href %s parsed to %s (%v)", f.Href(), got, err)
		}
	}
	if Filter("later").IsValid() {
		t.Fatalf("unexpected valid filter")
	}
}

func TestItemIDString(t *testing.T) {
	if got := ItemID(7).String(); got != "todo-7" {
		t.Fatalf("unexpected id string %q", got)
	}
}

// Package slots defines the fixed daily template of bookable walk-in times.
package slots

import (
	"cmp"
	"slices"
	"strings"
	"time"
)

const DateLayout = time.DateOnly

// Labels is the daily template, in display order. Every calendar date offers
// the same eight hourly slots.
var Labels = []string{
	"9:00 AM",
	"10:00 AM",
	"11:00 AM",
	"12:00 PM",
	"1:00 PM",
	"2:00 PM",
	"3:00 PM",
	"4:00 PM",
}

var labelIndex = func() map[string]int {
	idx := make(map[string]int, len(Labels))
	for i, l := range Labels {
		idx[l] = i
	}
	return idx
}()

// SlotsForDate returns a fresh copy of the daily template.
func SlotsForDate(_ time.Time) []string {
	out := make([]string, len(Labels))
	copy(out, Labels)
	return out
}

// ParseDate accepts YYYY-MM-DD or an RFC 3339 timestamp and returns the
// calendar day at UTC midnight. For timestamps the date part as written is
// used, ignoring the offset.
func ParseDate(input string) (time.Time, bool) {
	input = strings.TrimSpace(input)
	if input == "" {
		return time.Time{}, false
	}

	if d, err := time.Parse(DateLayout, input); err == nil {
		return d, true
	}

	ts, err := time.Parse(time.RFC3339, input)
	if err != nil {
		return time.Time{}, false
	}
	return time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, time.UTC), true
}

// FormatDate renders the canonical storage key for a calendar day.
func FormatDate(d time.Time) string {
	return d.Format(DateLayout)
}

// CanonicalDate parses input and returns its storage key.
func CanonicalDate(input string) (string, bool) {
	d, ok := ParseDate(input)
	if !ok {
		return "", false
	}
	return FormatDate(d), true
}

func IsValidDate(input string) bool {
	_, ok := ParseDate(input)
	return ok
}

func IsValidLabel(label string) bool {
	_, ok := labelIndex[label]
	return ok
}

// Order sorts labels by their position in the template. Labels outside the
// template sort last, alphabetically.
func Order(labels []string) []string {
	out := make([]string, len(labels))
	copy(out, labels)

	rank := func(l string) int {
		if i, ok := labelIndex[l]; ok {
			return i
		}
		return len(Labels)
	}

	slices.SortStableFunc(out, func(a, b string) int {
		if c := cmp.Compare(rank(a), rank(b)); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	})
	return out
}

// Partition splits the template into free and taken labels, both in template
// order. Taken labels that are not part of the template are kept in booked.
func Partition(taken []string) (available, booked []string) {
	takenSet := make(map[string]struct{}, len(taken))
	for _, l := range taken {
		takenSet[l] = struct{}{}
	}

	available = make([]string, 0, len(Labels))
	for _, l := range Labels {
		if _, ok := takenSet[l]; !ok {
			available = append(available, l)
		}
	}

	booked = make([]string, 0, len(takenSet))
	for l := range takenSet {
		booked = append(booked, l)
	}
	return available, Order(booked)
}

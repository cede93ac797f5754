// Package chronology orders resume entries for display: current entries first,
// then most recent end date, then most recent start date.
package chronology

import (
	"slices"
	"strings"
	"time"

	"github.com/abdellahzou/HiResume/internal/types"
)

// dateLayouts are tried in order. Anything else sorts as the zero time.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01",
	"2006/01/02",
	"2006/01",
	"01/2006",
	"01-2006",
	"Jan 2006",
	"January 2006",
	"Jan. 2006",
	"2006",
}

// ParseDate parses the loose date strings users type into date fields.
// Empty or unparsable input returns the zero time and false.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// endKey ignores the end date of current entries.
func endKey(current bool, s string) time.Time {
	if current {
		return time.Time{}
	}
	return dateKey(s)
}

func dateKey(s string) time.Time {
	t, _ := ParseDate(s)
	return t
}

// span is the ordering key shared by every timeline entry.
type span struct {
	current bool
	end     time.Time
	start   time.Time
}

// compareSpans orders a before b when a is more recent.
func compareSpans(a, b span) int {
	if a.current != b.current {
		if a.current {
			return -1
		}
		return 1
	}
	if c := b.end.Compare(a.end); c != 0 {
		return c
	}
	return b.start.Compare(a.start)
}

func sortTimeline[T any](entries []T, key func(T) span) []T {
	out := slices.Clone(entries)
	slices.SortStableFunc(out, func(a, b T) int {
		return compareSpans(key(a), key(b))
	})
	return out
}

// Experience returns the entries in display order.
func Experience(entries []types.Experience) []types.Experience {
	return sortTimeline(entries, func(e types.Experience) span {
		return span{current: e.Current, end: endKey(e.Current, e.EndDate), start: dateKey(e.StartDate)}
	})
}

// Education returns the entries in display order.
func Education(entries []types.Education) []types.Education {
	return sortTimeline(entries, func(e types.Education) span {
		return span{current: e.Current, end: endKey(e.Current, e.EndDate), start: dateKey(e.StartDate)}
	})
}

// CustomItems returns the entries in display order.
func CustomItems(entries []types.CustomItem) []types.CustomItem {
	return sortTimeline(entries, func(e types.CustomItem) span {
		return span{current: e.Current, end: endKey(e.Current, e.EndDate), start: dateKey(e.StartDate)}
	})
}

// Certifications returns certifications by date, newest first.
func Certifications(entries []types.Certification) []types.Certification {
	out := slices.Clone(entries)
	slices.SortStableFunc(out, func(a, b types.Certification) int {
		return dateKey(b.Date).Compare(dateKey(a.Date))
	})
	return out
}

// Normalize returns a copy of doc with every timeline sorted. doc is not modified.
func Normalize(doc types.ResumeDocument) types.ResumeDocument {
	out := doc.Clone()
	out.Experience = Experience(doc.Experience)
	out.Education = Education(doc.Education)
	out.CustomItems = CustomItems(doc.CustomItems)
	out.Certifications = Certifications(doc.Certifications)
	return out
}

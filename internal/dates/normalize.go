// Package dates turns natural date phrases ("today", "monday", "05/20")
// into canonical calendar dates.
package dates

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"voiceledger/internal/core"
)

// ErrUnparsed reports that a non-empty phrase matched no known form. The
// returned date is still usable: normalization degrades to the reference
// day instead of aborting, so callers may log the miss and continue.
var ErrUnparsed = errors.New("unparseable date phrase")

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// Layouts tried for free-form phrases, most specific first. Numeric
// layouts come in padded and unpadded pairs: time.Parse is fixed-width,
// so "01/02/2006" alone would reject "2/5/2025".
var freeformLayouts = []string{
	"2006-01-02",
	"2006-1-2",
	"01/02/2006",
	"1/2/2006",
	"01-02-2006",
	"1-2-2006",
	"January 2, 2006",
	"January 2 2006",
	"Jan 2, 2006",
	"Jan 2 2006",
	"2 January 2006",
}

// Normalize resolves a raw date phrase against a reference timestamp.
//
// Priority order: empty phrase -> reference day; the literal keywords
// today/tomorrow/yesterday; a weekday name -> its next occurrence on or
// after the reference day (the reference day itself when it matches);
// explicit YYYY-MM-DD or MM/DD/YYYY, zero-padded or not; then a
// cascade of laxer attempts
// (as-is, with the current year appended, as month/day with the current
// year, with day and month reversed). A successful parse whose year was
// never written out in the phrase is pinned to the reference year.
//
// A phrase that survives none of the above yields the reference day plus
// ErrUnparsed.
func Normalize(raw string, now time.Time) (core.Date, error) {
	today := core.DateOf(now)

	phrase := strings.ToLower(strings.TrimSpace(raw))
	if phrase == "" {
		return today, nil
	}

	switch phrase {
	case "today":
		return today, nil
	case "tomorrow":
		return core.DateOf(now.AddDate(0, 0, 1)), nil
	case "yesterday":
		return core.DateOf(now.AddDate(0, 0, -1)), nil
	}

	if target, ok := weekdays[phrase]; ok {
		ahead := (int(target) - int(now.Weekday()) + 7) % 7
		return core.DateOf(now.AddDate(0, 0, ahead)), nil
	}

	for _, layout := range []string{"2006-01-02", "2006-1-2", "01/02/2006", "1/2/2006"} {
		if t, err := time.Parse(layout, phrase); err == nil {
			return core.DateOf(t), nil
		}
	}

	year := now.Year()
	attempts := []string{
		phrase,
		phrase + " " + strconv.Itoa(year),
		phrase + "/" + strconv.Itoa(year),
		reverseComponents(phrase),
		reverseComponents(phrase) + "/" + strconv.Itoa(year),
	}
	for _, attempt := range attempts {
		t, ok := parseFreeform(attempt)
		if !ok {
			continue
		}
		// A year the user never said is noise from the laxer layouts;
		// pin it to the reference year.
		if !strings.Contains(phrase, strconv.Itoa(t.Year())) {
			t = time.Date(year, t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		}
		return core.DateOf(t), nil
	}

	return today, ErrUnparsed
}

func parseFreeform(s string) (time.Time, bool) {
	// Month names in the layouts are capitalized; the phrase was
	// lowercased, so try a title-cased variant as well.
	for _, candidate := range []string{s, titleCase(s)} {
		for _, layout := range freeformLayouts {
			if t, err := time.Parse(layout, candidate); err == nil {
				return t, true
			}
		}
	}
	return time.Time{}, false
}

func titleCase(s string) string {
	fields := strings.Fields(s)
	for i, f := range fields {
		if f != "" && f[0] >= 'a' && f[0] <= 'z' {
			fields[i] = strings.ToUpper(f[:1]) + f[1:]
		}
	}
	return strings.Join(fields, " ")
}

// reverseComponents flips slash-separated parts: "20/05" -> "05/20".
func reverseComponents(s string) string {
	parts := strings.Split(s, "/")
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return strings.Join(parts, "/")
}

package normalize

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"buildyourcv/resume/model"
)

var (
	isoMonthPrefix = regexp.MustCompile(`^(\d{4})-(\d{1,2})(?:-\d{1,2}(?:[T ].*)?)?$`)
	slashYearFirst = regexp.MustCompile(`^(\d{4})[/.](\d{1,2})$`)
	slashYearLast  = regexp.MustCompile(`^(\d{1,2})[/.-](\d{4})$`)
	namedMonth     = regexp.MustCompile(`^([A-Za-z]+)\.?,?\s+(\d{4})$`)
	digitRun       = regexp.MustCompile(`\d+`)
)

var monthNames = map[string]int{
	"jan": 1, "january": 1,
	"feb": 2, "february": 2,
	"mar": 3, "march": 3,
	"apr": 4, "april": 4,
	"may": 5,
	"jun": 6, "june": 6,
	"jul": 7, "july": 7,
	"aug": 8, "august": 8,
	"sep": 9, "sept": 9, "september": 9,
	"oct": 10, "october": 10,
	"nov": 11, "november": 11,
	"dec": 12, "december": 12,
}

var ongoingWords = map[string]struct{}{
	"present":   {},
	"current":   {},
	"currently": {},
	"now":       {},
	"ongoing":   {},
	"today":     {},
}

// canonicalMonth rewrites the common spellings of a calendar month into
// YYYY-MM. Values that do not name a specific month are rejected rather
// than guessed.
func canonicalMonth(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if model.IsMonthDate(raw) {
		return raw, true
	}
	if m := isoMonthPrefix.FindStringSubmatch(raw); m != nil {
		return month(m[1], m[2])
	}
	if m := slashYearFirst.FindStringSubmatch(raw); m != nil {
		return month(m[1], m[2])
	}
	if m := slashYearLast.FindStringSubmatch(raw); m != nil {
		return month(m[2], m[1])
	}
	if m := namedMonth.FindStringSubmatch(raw); m != nil {
		n, ok := monthNames[strings.ToLower(m[1])]
		if !ok {
			return "", false
		}
		return month(m[2], strconv.Itoa(n))
	}
	return "", false
}

func month(year, mon string) (string, bool) {
	n, err := strconv.Atoi(mon)
	if err != nil || n < 1 || n > 12 {
		return "", false
	}
	return fmt.Sprintf("%s-%02d", year, n), true
}

func isOngoing(raw string) bool {
	_, ok := ongoingWords[strings.ToLower(strings.TrimSpace(raw))]
	return ok
}

// canonicalDate returns raw as YYYY-MM, or as YYYY when only the year can be
// read. A value naming several years or none is unreadable.
func canonicalDate(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if model.IsResumeDate(raw) {
		return raw, true
	}
	if d, ok := canonicalMonth(raw); ok {
		return d, true
	}
	var year string
	for _, run := range digitRun.FindAllString(raw, -1) {
		if len(run) != 4 {
			continue
		}
		if year != "" {
			return "", false
		}
		year = run
	}
	return year, year != ""
}

func (o *object) rewritten(key, raw, d string) {
	if d != raw {
		o.report.add(o.fieldPath(key), ActionConverted, fmt.Sprintf("%q rewritten as %s", raw, d))
	}
}

// startDate reads a required start date. Unknown or unreadable dates become
// the empty marker.
func (o *object) startDate(key string) string {
	raw := o.marker(key)
	if raw == "" {
		return ""
	}
	d, ok := canonicalDate(raw)
	if !ok {
		o.report.add(o.fieldPath(key), ActionDefaulted, fmt.Sprintf("unreadable date %q marked unknown", raw))
		return ""
	}
	o.rewritten(key, raw, d)
	return d
}

// optionalDate reads an optional start date; unreadable values are dropped.
func (o *object) optionalDate(key string) *string {
	raw := o.optional(key)
	if raw == nil {
		return nil
	}
	d, ok := canonicalDate(*raw)
	if !ok {
		o.report.add(o.fieldPath(key), ActionDropped, fmt.Sprintf("unreadable date %q", *raw))
		return nil
	}
	o.rewritten(key, *raw, d)
	return &d
}

// endDate reads an optional end date. Ongoing markers become Present and an
// absent value stays absent. An explicit end is never dropped; text with no
// readable year is kept as written.
func (o *object) endDate(key string) *string {
	raw := o.optional(key)
	if raw == nil {
		return nil
	}
	if isOngoing(*raw) {
		o.rewritten(key, *raw, model.Present)
		return model.String(model.Present)
	}
	d, ok := canonicalDate(*raw)
	if !ok {
		return raw
	}
	o.rewritten(key, *raw, d)
	return &d
}

// Package dates handles civil-date logic for the bot. All captured messages
// and all day-scoped queries use a fixed UTC-3 zone, regardless of where the
// process runs.
package dates

import (
	"fmt"
	"regexp"
	"time"
)

// Location is the fixed civil time zone used for message timestamps and
// day-window queries. It does not observe DST.
var Location = time.FixedZone("UTC-3", -3*60*60)

// DateLayout is the only accepted format for free-text date input.
const DateLayout = "02/01/2006"

var datePattern = regexp.MustCompile(`^\d{2}/\d{2}/\d{4}$`)

// Now returns the current time in the fixed zone.
func Now() time.Time {
	return time.Now().In(Location)
}

// DayOf truncates t to the start of its civil day in the fixed zone.
func DayOf(t time.Time) time.Time {
	t = t.In(Location)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, Location)
}

// DayBounds returns the half-open interval [start, end) covering the civil
// day containing d.
func DayBounds(d time.Time) (start, end time.Time) {
	start = DayOf(d)
	return start, start.Add(24 * time.Hour)
}

// ResolveToken parses an operator-supplied date token. Accepted forms are
// "hoje"/"today", "ontem"/"yesterday", and an explicit DD/MM/YYYY date.
// Anything else, including impossible calendar dates, is rejected.
func ResolveToken(token string, now time.Time) (time.Time, error) {
	now = now.In(Location)

	switch token {
	case "hoje", "today":
		return DayOf(now), nil
	case "ontem", "yesterday":
		return DayOf(now.AddDate(0, 0, -1)), nil
	}

	if !datePattern.MatchString(token) {
		return time.Time{}, fmt.Errorf("invalid date %q: expected hoje, ontem or DD/MM/YYYY", token)
	}

	d, err := time.ParseInLocation(DateLayout, token, Location)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", token, err)
	}
	// time.Parse normalizes overflowing components (31/13/2026 becomes a
	// January date); round-trip to reject those.
	if d.Format(DateLayout) != token {
		return time.Time{}, fmt.Errorf("invalid date %q: no such calendar day", token)
	}
	return d, nil
}

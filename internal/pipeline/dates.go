package pipeline

import (
	"strconv"
	"strings"
	"time"
)

// Registry sheets mix two date conventions: slash-numeric day/month/year
// (usually with a Buddhist Era year) and a textual Thai form like
// "25 มีนาคม 2568". Years above 2400 are taken as BE and shifted by 543.
const buddhistEraCutoff = 2400

var thaiMonths = []string{
	"มกราคม", "กุมภาพันธ์", "มีนาคม", "เมษายน", "พฤษภาคม", "มิถุนายน",
	"กรกฎาคม", "สิงหาคม", "กันยายน", "ตุลาคม", "พฤศจิกายน", "ธันวาคม",
}

// ThaiShortMonths are the chart labels, canonical January..December order.
var ThaiShortMonths = []string{
	"ม.ค.", "ก.พ.", "มี.ค.", "เม.ย.", "พ.ค.", "มิ.ย.",
	"ก.ค.", "ส.ค.", "ก.ย.", "ต.ค.", "พ.ย.", "ธ.ค.",
}

var genericLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2 January 2006",
	"January 2, 2006",
	"Jan 2, 2006",
}

// ParseThaiDate turns free-text date input into a calendar date (midnight
// UTC, no time component). It never fails hard: unparseable input reports
// ok=false and the caller keeps the raw text.
func ParseThaiDate(input string) (time.Time, bool) {
	s := strings.TrimSpace(input)
	if s == "" {
		return time.Time{}, false
	}
	if d, ok := parseSlashNumeric(s); ok {
		return d, true
	}
	if d, ok := parseThaiTextual(s); ok {
		return d, true
	}
	return parseGeneric(s)
}

// parseSlashNumeric handles D/M/Y with 1-2 digit day and month. Out-of-range
// days are left to calendar rollover, matching the source sheets' habits.
func parseSlashNumeric(s string) (time.Time, bool) {
	parts := strings.Split(s, "/")
	if len(parts) != 3 {
		return time.Time{}, false
	}
	day, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return time.Time{}, false
	}
	month, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return time.Time{}, false
	}
	year, err := strconv.Atoi(strings.TrimSpace(parts[2]))
	if err != nil {
		return time.Time{}, false
	}
	if year > buddhistEraCutoff {
		year -= 543
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), true
}

// parseThaiTextual scans whitespace tokens for a Thai month name (substring
// containment, first canonical month wins), a 4-digit year and a 1-2 digit
// day. Day defaults to 1 and year to the current year when absent; a month
// token is mandatory.
func parseThaiTextual(s string) (time.Time, bool) {
	tokens := strings.Fields(s)
	if len(tokens) < 2 {
		return time.Time{}, false
	}

	monthIndex := -1
	for _, tok := range tokens {
		for i, m := range thaiMonths {
			if strings.Contains(tok, m) {
				monthIndex = i
				break
			}
		}
		if monthIndex >= 0 {
			break
		}
	}
	if monthIndex < 0 {
		return time.Time{}, false
	}

	year := time.Now().Year()
	yearToken := ""
	for _, tok := range tokens {
		if isDigits(tok) && len(tok) == 4 {
			yearToken = tok
			parsed, _ := strconv.Atoi(tok)
			if parsed > buddhistEraCutoff {
				parsed -= 543
			}
			year = parsed
			break
		}
	}

	day := 1
	for _, tok := range tokens {
		if isDigits(tok) && len(tok) >= 1 && len(tok) <= 2 && tok != yearToken {
			day, _ = strconv.Atoi(tok)
			break
		}
	}

	return time.Date(year, time.Month(monthIndex+1), day, 0, 0, 0, 0, time.UTC), true
}

func parseGeneric(s string) (time.Time, bool) {
	for _, layout := range genericLayouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
	}
	return time.Time{}, false
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

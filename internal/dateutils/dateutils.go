// Package dateutils provides common date and time operations used throughout the application.
package dateutils

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Common date format constants used throughout the application
const (
	DateLayoutISO      = "2006-01-02"
	DateLayoutEuropean = "02.01.2006"
	DateLayoutUS       = "01/02/2006"
	DateLayoutFull     = "2006-01-02 15:04:05"
)

var whitespaceRe = regexp.MustCompile(`\s+`)

// CleanDateString removes unwanted characters and normalizes a date string
func CleanDateString(dateStr string) string {
	dateStr = strings.TrimSpace(dateStr)
	return whitespaceRe.ReplaceAllString(dateStr, " ")
}

// ParseDateString attempts to parse a date string using the formats commonly
// found in financial exports. Returns an error when no format matches; the
// caller decides whether that drops the row or only its period fields.
func ParseDateString(dateStr string) (time.Time, error) {
	if dateStr == "" {
		return time.Time{}, fmt.Errorf("empty date string")
	}

	cleanDate := CleanDateString(dateStr)

	formats := []string{
		DateLayoutISO,                     // YYYY-MM-DD
		DateLayoutEuropean,                // DD.MM.YYYY
		DateLayoutFull,                    // YYYY-MM-DD HH:MM:SS
		DateLayoutISO + "T15:04:05Z",      // ISO 8601
		DateLayoutISO + "T15:04:05-07:00", // ISO 8601 with timezone
		"02/01/2006",                      // DD/MM/YYYY
		DateLayoutUS,                      // MM/DD/YYYY
		"02-01-2006",                      // DD-MM-YYYY
		"2.1.2006",                        // D.M.YYYY
		"January 2, 2006",                 // Month D, YYYY
		"2 January 2006",                  // D Month YYYY
		"02 Jan 2006",                     // DD MMM YYYY
		"Jan 02, 2006",                    // MMM DD, YYYY
		"January 2006",                    // Month YYYY (monthly statements)
		"Jan 2006",                        // MMM YYYY
		"01/2006",                         // MM/YYYY
		"2006/01",                         // YYYY/MM
	}

	for _, format := range formats {
		if t, err := time.Parse(format, cleanDate); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unable to parse date: %s", dateStr)
}

// YearMonth extracts the calendar year and month from a date.
// Zero dates yield (0, 0) so unparseable rows carry null period fields.
func YearMonth(date time.Time) (int, int) {
	if date.IsZero() {
		return 0, 0
	}
	return date.Year(), int(date.Month())
}

// ToISODate formats a time.Time value as an ISO date (YYYY-MM-DD)
func ToISODate(date time.Time) string {
	if date.IsZero() {
		return ""
	}
	return date.Format(DateLayoutISO)
}

// MonthsOfQuarter returns the month numbers covered by a quarter (1..4).
// Unknown quarters return nil.
func MonthsOfQuarter(quarter int) []int {
	switch quarter {
	case 1:
		return []int{1, 2, 3}
	case 2:
		return []int{4, 5, 6}
	case 3:
		return []int{7, 8, 9}
	case 4:
		return []int{10, 11, 12}
	default:
		return nil
	}
}

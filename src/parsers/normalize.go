// src/parsers/normalize.go
package parsers

import (
	"fmt"
	"strconv"
	"strings"
)

// Shared numeric/locale normalizers used by every schema. They follow one
// policy: malformed numeric or time input degrades to zero rather than
// rejecting the row. Only a malformed date rejects a row, because the date is
// the aggregation key and everything else is best-effort.

const fullWidthMinus = "−" // U+2212, seen in kabucom exports

// ParseCurrency parses a broker currency cell such as "1,234円" or "−500".
// Thousands separators, a trailing 円 glyph and surrounding whitespace are
// stripped. A bare "-" (either minus form) means "no amount" and yields zero,
// as does anything unparsable.
func ParseCurrency(value string) float64 {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" || trimmed == "-" || trimmed == fullWidthMinus {
		return 0
	}

	sign := 1.0
	switch {
	case strings.HasPrefix(trimmed, "+"):
		trimmed = trimmed[1:]
	case strings.HasPrefix(trimmed, "-"):
		sign = -1
		trimmed = trimmed[1:]
	case strings.HasPrefix(trimmed, fullWidthMinus):
		sign = -1
		trimmed = strings.TrimPrefix(trimmed, fullWidthMinus)
	}

	digits := strings.ReplaceAll(trimmed, ",", "")
	digits = strings.TrimSpace(strings.ReplaceAll(digits, "円", ""))

	parsed, err := strconv.ParseFloat(digits, 64)
	if err != nil {
		return 0
	}
	return parsed * sign
}

// ParseInteger parses an integer cell, tolerating thousands separators.
func ParseInteger(value string) int {
	trimmed := strings.ReplaceAll(strings.TrimSpace(value), ",", "")
	if trimmed == "" {
		return 0
	}
	parsed, err := strconv.Atoi(trimmed)
	if err != nil {
		return 0
	}
	return parsed
}

// ParseDecimal parses a decimal cell, tolerating thousands separators.
func ParseDecimal(value string) float64 {
	trimmed := strings.ReplaceAll(strings.TrimSpace(value), ",", "")
	if trimmed == "" {
		return 0
	}
	parsed, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0
	}
	return parsed
}

// NormalizeTimeString accepts "H:MM" or "HH:MM[:SS]" and always emits a
// zero-padded "HH:MM". Missing or unparsable components default to zero.
func NormalizeTimeString(value string) string {
	if strings.TrimSpace(value) == "" {
		return "00:00"
	}
	parts := strings.SplitN(value, ":", 3)
	hour := safeInt(parts[0])
	minute := 0
	if len(parts) > 1 {
		minute = safeInt(parts[1])
	}
	return padTimePart(hour) + ":" + padTimePart(minute)
}

// ToIsoDate converts a "/"-separated broker date such as "2024/3/5" into
// "2024-03-05". It returns "" when the text is not a three-part numeric date;
// callers treat that as "reject the row".
func ToIsoDate(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return ""
	}
	parts := strings.Split(trimmed, "/")
	if len(parts) != 3 {
		return ""
	}
	year, errY := strconv.Atoi(strings.TrimSpace(parts[0]))
	month, errM := strconv.Atoi(strings.TrimSpace(parts[1]))
	day, errD := strconv.Atoi(strings.TrimSpace(parts[2]))
	if errY != nil || errM != nil || errD != nil || year <= 0 || month <= 0 || day <= 0 {
		return ""
	}
	return fmt.Sprintf("%04d-%02d-%02d", year, month, day)
}

// ParsedDateTime is the canonical ISO triplet derived from one broker
// date/time cell.
type ParsedDateTime struct {
	IsoDate     string
	IsoTime     string
	IsoDateTime string
}

// ParseDateTime parses a combined "date[ time]" cell ("2024/3/5 9:30:15").
// The time portion is optional and defaults to midnight; a bad date returns
// nil so the row can be rejected.
func ParseDateTime(value string) *ParsedDateTime {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}

	parts := strings.Fields(trimmed)
	isoDate := ToIsoDate(parts[0])
	if isoDate == "" {
		return nil
	}
	if len(parts) < 2 {
		return &ParsedDateTime{
			IsoDate:     isoDate,
			IsoTime:     "00:00",
			IsoDateTime: isoDate + "T00:00:00",
		}
	}

	timeParts := strings.SplitN(parts[1], ":", 3)
	hh := padTimePart(safeInt(timeParts[0]))
	mm := "00"
	ss := "00"
	if len(timeParts) > 1 {
		mm = padTimePart(safeInt(timeParts[1]))
	}
	if len(timeParts) > 2 {
		ss = padTimePart(safeInt(timeParts[2]))
	}

	return &ParsedDateTime{
		IsoDate:     isoDate,
		IsoTime:     hh + ":" + mm,
		IsoDateTime: isoDate + "T" + hh + ":" + mm + ":" + ss,
	}
}

func safeInt(value string) int {
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0
	}
	return parsed
}

func padTimePart(value int) string {
	if value < 0 {
		value = 0
	}
	return fmt.Sprintf("%02d", value)
}

// src/calendar/calendar.go
package calendar

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// WeekdayLabels are the column headers the calendar UI renders, Sunday first.
var WeekdayLabels = []string{"日", "月", "火", "水", "木", "金", "土"}

// ErrInvalidYear is returned for a year that is not a positive integer.
var ErrInvalidYear = errors.New("year must be a positive integer")

type CalendarDay struct {
	Day     int    `json:"day"`
	IsoDate string `json:"isoDate"`
	IsToday bool   `json:"isToday"`
}

// CalendarWeek always holds seven cells; cells outside the month are nil.
type CalendarWeek []*CalendarDay

type CalendarMonth struct {
	Month int            `json:"month"`
	Title string         `json:"title"`
	Weeks []CalendarWeek `json:"weeks"`
}

type CalendarYear struct {
	Year   int             `json:"year"`
	Months []CalendarMonth `json:"months"`
}

// NewYearCalendar builds the twelve-month grid for a year. The now argument
// decides which day cell carries the isToday flag.
func NewYearCalendar(year int, now time.Time) (*CalendarYear, error) {
	if year <= 0 {
		return nil, ErrInvalidYear
	}

	months := make([]CalendarMonth, 0, 12)
	for month := time.January; month <= time.December; month++ {
		months = append(months, newMonth(year, month, now))
	}

	return &CalendarYear{Year: year, Months: months}, nil
}

func newMonth(year int, month time.Month, now time.Time) CalendarMonth {
	firstOfMonth := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	daysInMonth := firstOfMonth.AddDate(0, 1, -1).Day()
	firstWeekday := int(firstOfMonth.Weekday())

	var weeks []CalendarWeek
	currentDay := 1

	week := make(CalendarWeek, 7)
	for weekday := firstWeekday; weekday < 7 && currentDay <= daysInMonth; weekday++ {
		week[weekday] = newDay(year, month, currentDay, now)
		currentDay++
	}
	weeks = append(weeks, week)

	for currentDay <= daysInMonth {
		week = make(CalendarWeek, 7)
		for weekday := 0; weekday < 7 && currentDay <= daysInMonth; weekday++ {
			week[weekday] = newDay(year, month, currentDay, now)
			currentDay++
		}
		weeks = append(weeks, week)
	}

	return CalendarMonth{
		Month: int(month),
		Title: fmt.Sprintf("%d年%02d月", year, int(month)),
		Weeks: weeks,
	}
}

func newDay(year int, month time.Month, day int, now time.Time) *CalendarDay {
	return &CalendarDay{
		Day:     day,
		IsoDate: fmt.Sprintf("%04d-%02d-%02d", year, int(month), day),
		IsToday: now.Year() == year && now.Month() == month && now.Day() == day,
	}
}

// ParseYear validates a year query parameter. An empty value falls back to
// fallbackYear; anything that is not a positive integer is an error.
func ParseYear(value string, fallbackYear int) (int, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return fallbackYear, nil
	}

	year, err := strconv.Atoi(trimmed)
	if err != nil {
		return 0, fmt.Errorf("year must be numeric: %q", value)
	}
	if year <= 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidYear, value)
	}
	return year, nil
}

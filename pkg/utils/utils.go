package utils

import (
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// dateLayouts are tried in order by ParseDate. They cover ISO timestamps as
// emitted by the backend API and the text forms Postgres uses for date and
// timestamp columns.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.999999999-07",
	"2006-01-02 15:04:05-07",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
	time.DateOnly,
}

// ParseDate parses s using the known layouts. It reports false when s is
// blank or matches none of them.
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

// AddDays moves t by the given number of calendar days.
func AddDays(t time.Time, days int) time.Time {
	return t.AddDate(0, 0, days)
}

// DaysUntil returns the number of whole days from now until deadline,
// rounding partial days up. The result is never negative.
func DaysUntil(now, deadline time.Time) int {
	remaining := deadline.Sub(now)
	if remaining <= 0 {
		return 0
	}

	return int(math.Ceil(remaining.Hours() / 24))
}

// WithinLastDays reports whether t falls in the closed window [now-days, now].
func WithinLastDays(t, now time.Time, days int) bool {
	start := AddDays(now, -days)
	return !t.Before(start) && !t.After(now)
}

// Percent returns round(part / whole * 100). A zero whole yields 0.
func Percent(part, whole int) int {
	if whole == 0 {
		return 0
	}

	ratio := decimal.NewFromInt(int64(part)).
		Mul(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(int64(whole)))

	return int(ratio.Round(0).IntPart())
}

// Average returns total / count rounded to two decimal places, or zero when
// count is zero.
func Average(total decimal.Decimal, count int) decimal.Decimal {
	if count == 0 {
		return decimal.Zero
	}

	return total.Div(decimal.NewFromInt(int64(count))).Round(2)
}

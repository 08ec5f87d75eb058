package utils

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected time.Time
		ok       bool
	}{
		{
			name:     "date only",
			input:    "2025-01-01",
			expected: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
			ok:       true,
		},
		{
			name:     "RFC3339 with zone",
			input:    "2025-01-01T10:30:00Z",
			expected: time.Date(2025, 1, 1, 10, 30, 0, 0, time.UTC),
			ok:       true,
		},
		{
			name:     "postgres timestamp",
			input:    "2025-01-01 10:30:00",
			expected: time.Date(2025, 1, 1, 10, 30, 0, 0, time.UTC),
			ok:       true,
		},
		{
			name:     "surrounding whitespace",
			input:    "  2025-03-10 ",
			expected: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
			ok:       true,
		},
		{
			name:  "blank",
			input: "   ",
		},
		{
			name:  "garbage",
			input: "31/02/2025",
		},
		{
			name:  "impossible date",
			input: "2025-02-30",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, ok := ParseDate(tt.input)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.True(t, tt.expected.Equal(result), "expected %v, got %v", tt.expected, result)
			}
		})
	}
}

func TestDaysUntil(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		deadline time.Time
		expected int
	}{
		{name: "same instant", deadline: now, expected: 0},
		{name: "in the past", deadline: now.AddDate(0, 0, -3), expected: 0},
		{name: "exactly seven days", deadline: now.AddDate(0, 0, 7), expected: 7},
		{name: "one hour left", deadline: now.Add(time.Hour), expected: 1},
		{name: "two and a half days", deadline: now.Add(60 * time.Hour), expected: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DaysUntil(now, tt.deadline))
		})
	}
}

func TestWithinLastDays(t *testing.T) {
	now := time.Date(2025, 3, 31, 12, 0, 0, 0, time.UTC)

	assert.True(t, WithinLastDays(now, now, 30))
	assert.True(t, WithinLastDays(now.AddDate(0, 0, -30), now, 30))
	assert.False(t, WithinLastDays(now.AddDate(0, 0, -30).Add(-time.Second), now, 30))
	assert.False(t, WithinLastDays(now.Add(time.Second), now, 30))
}

func TestPercent(t *testing.T) {
	tests := []struct {
		name     string
		part     int
		whole    int
		expected int
	}{
		{name: "zero denominator", part: 0, whole: 0, expected: 0},
		{name: "forty percent", part: 4, whole: 10, expected: 40},
		{name: "rounds half up", part: 1, whole: 8, expected: 13},
		{name: "rounds down", part: 1, whole: 3, expected: 33},
		{name: "complete", part: 7, whole: 7, expected: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Percent(tt.part, tt.whole))
		})
	}
}

func TestAverage(t *testing.T) {
	assert.True(t, Average(decimal.NewFromInt(100), 0).IsZero())
	assert.True(t, Average(decimal.NewFromInt(100), 3).Equal(decimal.RequireFromString("33.33")))
	assert.True(t, Average(decimal.NewFromInt(120), 3).Equal(decimal.NewFromInt(40)))
}

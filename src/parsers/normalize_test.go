package parsers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCurrency(t *testing.T) {
	tests := []struct {
		input string
		want  float64
	}{
		{"1,234円", 1234},
		{"16,000円", 16000},
		{"-500", -500},
		{"−500", -500}, // full-width minus
		{"+200", 200},
		{"-6,038円", -6038},
		{"", 0},
		{"-", 0},
		{"−", 0},
		{"  ", 0},
		{"abc", 0},
		{"0.5", 0.5},
		{" 1,000 ", 1000},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.InDelta(t, tt.want, ParseCurrency(tt.input), 1e-9)
		})
	}
}

func TestParseInteger(t *testing.T) {
	assert.Equal(t, 1200, ParseInteger("1,200"))
	assert.Equal(t, 2, ParseInteger(" 2 "))
	assert.Equal(t, 0, ParseInteger(""))
	assert.Equal(t, 0, ParseInteger("x"))
	assert.Equal(t, -3, ParseInteger("-3"))
}

func TestParseDecimal(t *testing.T) {
	assert.InDelta(t, 2720.5, ParseDecimal("2,720.5"), 1e-9)
	assert.InDelta(t, 0, ParseDecimal(""), 1e-9)
	assert.InDelta(t, 0, ParseDecimal("n/a"), 1e-9)
}

func TestNormalizeTimeString(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"9:05", "09:05"},
		{"9:5", "09:05"},
		{"14:30", "14:30"},
		{"12:34:56", "12:34"},
		{"", "00:00"},
		{"xx:10", "00:10"},
		{"7", "07:00"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeTimeString(tt.input), "input %q", tt.input)
	}
}

func TestToIsoDate(t *testing.T) {
	assert.Equal(t, "2025-01-06", ToIsoDate("2025/1/6"))
	assert.Equal(t, "2024-12-30", ToIsoDate("2024/12/30"))
	assert.Equal(t, "", ToIsoDate(""))
	assert.Equal(t, "", ToIsoDate("2024/12"))
	assert.Equal(t, "", ToIsoDate("not/a/date"))
	assert.Equal(t, "", ToIsoDate("2024-12-30"))
}

func TestParseDateTime(t *testing.T) {
	dt := ParseDateTime("2025/3/14 9:30:15")
	require.NotNil(t, dt)
	assert.Equal(t, "2025-03-14", dt.IsoDate)
	assert.Equal(t, "09:30", dt.IsoTime)
	assert.Equal(t, "2025-03-14T09:30:15", dt.IsoDateTime)
}

func TestParseDateTime_DateOnly(t *testing.T) {
	dt := ParseDateTime("2025/3/14")
	require.NotNil(t, dt)
	assert.Equal(t, "00:00", dt.IsoTime)
	assert.Equal(t, "2025-03-14T00:00:00", dt.IsoDateTime)
}

func TestParseDateTime_MissingSeconds(t *testing.T) {
	dt := ParseDateTime("2025/3/14 15:02")
	require.NotNil(t, dt)
	assert.Equal(t, "2025-03-14T15:02:00", dt.IsoDateTime)
}

func TestParseDateTime_Invalid(t *testing.T) {
	assert.Nil(t, ParseDateTime(""))
	assert.Nil(t, ParseDateTime("   "))
	assert.Nil(t, ParseDateTime("garbage"))
	assert.Nil(t, ParseDateTime("2025-03-14 09:30"))
}

package offer

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatValueGermanNotation(t *testing.T) {
	r := NewTextResolver(nil)

	tests := []struct {
		name      string
		value     any
		unit      string
		precision int
		want      string
	}{
		{"simple euro amount", 1234.567, "€", 2, "1.234,57 €"},
		{"grouping over a million", 1234567.0, "€", 2, "1.234.567,00 €"},
		{"no unit", 42.0, "", 0, "42"},
		{"negative value", -9876.5, "€", 2, "-9.876,50 €"},
		{"integer input", 15, "kWh", 0, "15 kWh"},
		{"int64 input", int64(2500), "€", 2, "2.500,00 €"},
		{"percent one decimal", 19.0, "%", 1, "19,0 %"},
		{"zero", 0.0, "€", 2, "0,00 €"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatValue(tt.value, tt.unit, tt.precision, "", r))
		})
	}
}

func TestFormatValueStringParsing(t *testing.T) {
	r := NewTextResolver(nil)

	tests := []struct {
		name  string
		input string
		want  string
	}{
		// Rightmost separator wins as decimal mark
		{"english convention", "1,234.5", "1.234,50 €"},
		{"german convention", "1.234,5", "1.234,50 €"},
		{"comma decimal only", "12,5", "12,50 €"},
		{"dot decimal only", "12.5", "12,50 €"},
		{"non-numeric passthrough", "auf Anfrage", "auf Anfrage"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatValue(tt.input, "€", 2, "", r))
		})
	}
}

func TestFormatValueSpecialValues(t *testing.T) {
	r := NewTextResolver(nil)

	assert.Equal(t, "k.A.", FormatValue(nil, "€", 2, "", r))
	assert.Equal(t, "k.A.", FormatValue(math.NaN(), "€", 2, "", r))
	assert.Equal(t, "Nicht berechenbar", FormatValue(math.Inf(1), "Jahre", 1, "", r))
	assert.Equal(t, "Nicht berechenbar", FormatValue(math.Inf(-1), "€", 2, "", r))

	// The configured na text round-trips unchanged
	assert.Equal(t, "k.A.", FormatValue("k.A.", "€", 2, "", r))
}

func TestFormatValueYearsTemplate(t *testing.T) {
	r := NewTextResolver(nil)

	assert.Equal(t, "12,3 Jahre", FormatValue(12.34, "Jahre", 2, "", r))
	assert.Equal(t, "8,0 Jahre", FormatValue(8.0, "Jahre", 0, "", r))
}

func TestFormatValueCustomNAKey(t *testing.T) {
	r := NewTextResolver(map[string]string{
		"value_not_calculated_short": "k.B.",
	})

	assert.Equal(t, "k.B.", FormatValue(nil, "€", 2, NAKeyNotCalculated, r))
}

func TestParseLocalizedNumber(t *testing.T) {
	tests := []struct {
		input string
		want  float64
		ok    bool
	}{
		{"1.234,56", 1234.56, true},
		{"1,234.56", 1234.56, true},
		{"1234", 1234, true},
		{"  7,5 ", 7.5, true},
		{"abc", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		got, ok := parseLocalizedNumber(tt.input)
		assert.Equal(t, tt.ok, ok, "input %q", tt.input)
		if ok {
			assert.InDelta(t, tt.want, got, 1e-9, "input %q", tt.input)
		}
	}
}

func TestGermanNumberGrouping(t *testing.T) {
	assert.Equal(t, "100", germanNumber(100, 0))
	assert.Equal(t, "1.000", germanNumber(1000, 0))
	assert.Equal(t, "10.000", germanNumber(10000, 0))
	assert.Equal(t, "100.000", germanNumber(100000, 0))
	assert.Equal(t, "1.000.000", germanNumber(1000000, 0))
	assert.Equal(t, "-1.000,50", germanNumber(-1000.5, 2))
}

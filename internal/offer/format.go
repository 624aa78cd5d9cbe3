package offer

import (
	"math"
	"strconv"
	"strings"
)

// Default lookup keys for not-available placeholders
const (
	NAKeyDefault       = "not_applicable_short"
	NAKeyNotCalculated = "value_not_calculated_short"
	NAKeyNotAvailable  = "value_not_available_short_pdf"
)

// FormatValue renders a KPI value in German notation ("1.234,57 €").
// It accepts float64, int and string inputs; strings are parsed with a
// separator heuristic (the rightmost of '.'/',' wins as decimal mark)
// and returned unchanged when they are not numeric. nil and NaN map to
// the na text, infinity to a dedicated marker text. The unit "Jahre"
// uses its own one-decimal template.
func FormatValue(value any, unit string, precision int, naKey string, r *TextResolver) string {
	if naKey == "" {
		naKey = NAKeyDefault
	}
	naText := r.Get(naKey, "k.A.")

	var num float64
	switch v := value.(type) {
	case nil:
		return naText
	case float64:
		num = v
	case float32:
		num = float64(v)
	case int:
		num = float64(v)
	case int64:
		num = float64(v)
	case string:
		if v == naText {
			return v
		}
		parsed, ok := parseLocalizedNumber(v)
		if !ok {
			return v
		}
		num = parsed
	default:
		return naText
	}

	if math.IsNaN(num) {
		return naText
	}
	if math.IsInf(num, 0) {
		return r.Get("value_infinite", "Nicht berechenbar")
	}
	if unit == "Jahre" {
		tpl := r.Get("years_format_string_pdf", "{val:.1f} Jahre")
		return strings.ReplaceAll(tpl, "{val:.1f}", germanNumber(num, 1))
	}
	return strings.TrimSpace(germanNumber(num, precision) + " " + unit)
}

// FormatFloat is FormatValue for a value that is known to be present
func FormatFloat(v float64, unit string, precision int, r *TextResolver) string {
	return FormatValue(v, unit, precision, "", r)
}

// parseLocalizedNumber accepts both German ("1.234,5") and English
// ("1,234.5") separator conventions. When both separators appear, the
// rightmost one is the decimal mark and the other is grouping.
func parseLocalizedNumber(s string) (float64, bool) {
	cleaned := strings.TrimSpace(s)
	hasDot := strings.Contains(cleaned, ".")
	hasComma := strings.Contains(cleaned, ",")
	if hasDot && hasComma {
		if strings.LastIndex(cleaned, ".") > strings.LastIndex(cleaned, ",") {
			cleaned = strings.ReplaceAll(cleaned, ",", "")
		} else {
			cleaned = strings.ReplaceAll(cleaned, ".", "")
		}
	}
	cleaned = strings.ReplaceAll(cleaned, ",", ".")
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// germanNumber renders v with '.' thousands grouping and ',' decimals
func germanNumber(v float64, precision int) string {
	if precision < 0 {
		precision = 0
	}
	s := strconv.FormatFloat(v, 'f', precision, 64)

	sign := ""
	if strings.HasPrefix(s, "-") {
		sign = "-"
		s = s[1:]
	}
	intPart := s
	fracPart := ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, fracPart = s[:i], s[i+1:]
	}

	var b strings.Builder
	b.WriteString(sign)
	lead := len(intPart) % 3
	if lead > 0 {
		b.WriteString(intPart[:lead])
		if len(intPart) > lead {
			b.WriteByte('.')
		}
	}
	for i := lead; i < len(intPart); i += 3 {
		b.WriteString(intPart[i : i+3])
		if i+3 < len(intPart) {
			b.WriteByte('.')
		}
	}
	if fracPart != "" {
		b.WriteByte(',')
		b.WriteString(fracPart)
	}
	return b.String()
}

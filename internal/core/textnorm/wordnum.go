package textnorm

import (
	"strconv"
	"strings"
	"unicode"

	"hssearch/internal/core/annotate"
)

// numeralValue parses a Number-categorized token into its digit form.
// Digit tokens pass through with grouping commas removed; word-form numerals
// resolve via the annotator's single-token vocabulary. Anything else fails
func numeralValue(surface string) (string, bool) {
	if isNumeric(surface) {
		return strings.ReplaceAll(surface, ",", ""), true
	}
	if v, ok := annotate.NumberValue(surface); ok {
		return strconv.FormatInt(v, 10), true
	}
	return "", false
}

// isNumeric reports whether s is entirely digits, allowing inner grouping
// commas and a decimal point ("1,200", "3.5")
func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	digits := 0
	for _, r := range s {
		switch {
		case unicode.IsDigit(r):
			digits++
		case r == ',' || r == '.':
			// separators only count between digits; the tokenizer already
			// guarantees that, so just require at least one digit overall
		default:
			return false
		}
	}
	return digits > 0
}

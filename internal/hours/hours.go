// Package hours converts textual time expressions into numeric hour values.
package hours

import (
	"strconv"
	"strings"
)

// fraction glyph replacements applied before numeric parsing.
var fractionReplacer = strings.NewReplacer(
	"½", ".5",
	"¼", ".25",
	"¾", ".75",
)

// Parse converts a time expression to hours. Handles plain numbers ("10",
// "10.5"), unicode fractions ("6½" -> 6.5) and hyphenated ranges ("10-12"
// -> 11, the arithmetic mean). Returns false on anything unparseable; it
// never panics on malformed input.
func Parse(text string) (float64, bool) {
	text = strings.TrimSpace(fractionReplacer.Replace(text))
	if text == "" {
		return 0, false
	}

	if strings.Contains(text, "-") {
		parts := strings.SplitN(text, "-", 2)
		low, lowErr := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
		high, highErr := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		switch {
		case lowErr == nil && highErr == nil:
			return (low + high) / 2, true
		case lowErr == nil:
			return low, true
		default:
			return 0, false
		}
	}

	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

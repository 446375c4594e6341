package codec

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

var hexPattern = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

var rgbPattern = regexp.MustCompile(`(?i)^rgba?\s*\(\s*(\d+)\s*,\s*(\d+)\s*,\s*(\d+)\s*(?:,\s*[\d.]+\s*)?\)$`)

// ParseUnits returns the unit tag of value text: "#" for colours, otherwise
// whatever follows the leading number ("px", "%", or "").
func ParseUnits(text string) string {
	text = strings.TrimSpace(text)
	if isColorText(text) {
		return ColorUnits
	}
	n := numericPrefix(text)
	return strings.TrimSpace(text[n:])
}

// ParseValue reads value text as a colour triple or as the leading number.
func ParseValue(text string) (Value, error) {
	text = strings.TrimSpace(text)
	if isColorText(text) {
		rgb, err := ParseColor(text)
		if err != nil {
			return Value{}, err
		}
		return Value{Kind: KindColor, RGB: rgb}, nil
	}

	n := numericPrefix(text)
	if n == 0 {
		return Value{}, fmt.Errorf("%w: %q", ErrMalformedValue, text)
	}
	f, err := strconv.ParseFloat(text[:n], 64)
	if err != nil {
		return Value{}, fmt.Errorf("%w: %q: %v", ErrMalformedValue, text, err)
	}
	return Scalar(f), nil
}

// ParseColor reads "#rrggbb", "#rgb" or "rgb(r, g, b)" into channels in
// [0, 255].
func ParseColor(text string) ([3]float64, error) {
	text = strings.TrimSpace(text)
	if m := rgbPattern.FindStringSubmatch(text); m != nil {
		var rgb [3]float64
		for i := 0; i < 3; i++ {
			c, err := strconv.Atoi(m[i+1])
			if err != nil || c > 255 {
				return rgb, fmt.Errorf("%w: channel %q in %q", ErrMalformedValue, m[i+1], text)
			}
			rgb[i] = float64(c)
		}
		return rgb, nil
	}

	if !hexPattern.MatchString(text) {
		return [3]float64{}, fmt.Errorf("%w: %q", ErrMalformedValue, text)
	}
	c, err := colorful.Hex(text)
	if err != nil {
		return [3]float64{}, fmt.Errorf("%w: %q", ErrMalformedValue, text)
	}
	r, g, b := c.RGB255()
	return [3]float64{float64(r), float64(g), float64(b)}, nil
}

func isColorText(text string) bool {
	return strings.HasPrefix(text, "#") || strings.HasPrefix(strings.ToLower(text), "rgb")
}

// numericPrefix returns the length of the leading decimal number in text,
// or 0 when there is none.
func numericPrefix(text string) int {
	i := 0
	if i < len(text) && (text[i] == '+' || text[i] == '-') {
		i++
	}
	digits := 0
	for i < len(text) && isDigit(text[i]) {
		i++
		digits++
	}
	if i < len(text) && text[i] == '.' {
		j := i + 1
		frac := 0
		for j < len(text) && isDigit(text[j]) {
			j++
			frac++
		}
		if digits+frac > 0 {
			i = j
			digits += frac
		}
	}
	if digits == 0 {
		return 0
	}
	// Exponent only when digits follow, so "1em" keeps its unit.
	if i < len(text) && (text[i] == 'e' || text[i] == 'E') {
		j := i + 1
		if j < len(text) && (text[j] == '+' || text[j] == '-') {
			j++
		}
		k := j
		for k < len(text) && isDigit(text[k]) {
			k++
		}
		if k > j {
			i = k
		}
	}
	return i
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

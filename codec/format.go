package codec

import (
	"math"
	"strconv"

	"github.com/lucasb-eyer/go-colorful"
)

// FormatColor rounds each channel into [0, 255] and encodes "#rrggbb".
func FormatColor(rgb [3]float64) string {
	var c colorful.Color
	c.R = float64(channel(rgb[0])) / 255.0
	c.G = float64(channel(rgb[1])) / 255.0
	c.B = float64(channel(rgb[2])) / 255.0
	return c.Hex()
}

// Format renders v for writing out. Colours ignore units; scalars get the
// unit suffix appended.
func Format(v Value, units string) string {
	if v.IsColor() {
		return FormatColor(v.RGB)
	}
	return formatNumber(v.Num) + units
}

func channel(v float64) uint8 {
	if math.IsNaN(v) {
		return 0
	}
	r := math.Round(v)
	if r < 0 {
		return 0
	}
	if r > 255 {
		return 255
	}
	return uint8(r)
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// Package codec converts presentation value text to interpolable numbers
// and back.
package codec

import (
	"errors"
	"fmt"
)

// ErrMalformedValue is returned when value text has no numeric or colour
// reading.
var ErrMalformedValue = errors.New("malformed value")

// ColorUnits is the unit tag carried by colour values.
const ColorUnits = "#"

// Kind discriminates Value.
type Kind int

const (
	// KindScalar is a single number such as a length or percentage.
	KindScalar Kind = iota
	// KindColor is an RGB triple with channels in [0, 255].
	KindColor
)

func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindColor:
		return "color"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Value is either a scalar or a 3-channel colour.
type Value struct {
	Kind Kind
	Num  float64
	RGB  [3]float64
}

// Scalar makes a scalar Value.
func Scalar(v float64) Value {
	return Value{Kind: KindScalar, Num: v}
}

// RGB makes a colour Value.
func RGB(r, g, b float64) Value {
	return Value{Kind: KindColor, RGB: [3]float64{r, g, b}}
}

// IsColor reports whether v holds a colour.
func (v Value) IsColor() bool {
	return v.Kind == KindColor
}

// Zero returns the zero value of kind k.
func Zero(k Kind) Value {
	return Value{Kind: k}
}

func (v Value) String() string {
	if v.IsColor() {
		return FormatColor(v.RGB)
	}
	return formatNumber(v.Num)
}

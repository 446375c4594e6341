// Package tween computes the current value of an animated property from its
// start and end values and eased progress.
package tween

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/matt-g-everett/ledtween/codec"
)

// ErrKindMismatch is returned when one end of a tween is a colour and the
// other a scalar.
var ErrKindMismatch = errors.New("tween endpoints differ in kind")

// Space selects how colours are blended.
type Space string

const (
	// SpaceRGB blends each channel linearly.
	SpaceRGB Space = "rgb"
	SpaceHCL Space = "hcl"
	SpaceLab Space = "lab"
	SpaceLuv Space = "luv"
	SpaceHSV Space = "hsv"
)

// ParseSpace maps a name to a Space. Empty text is SpaceRGB.
func ParseSpace(name string) (Space, error) {
	switch s := Space(strings.ToLower(strings.TrimSpace(name))); s {
	case "":
		return SpaceRGB, nil
	case SpaceRGB, SpaceHCL, SpaceLab, SpaceLuv, SpaceHSV:
		return s, nil
	default:
		return "", fmt.Errorf("unknown colour space %q", name)
	}
}

// Lerp linearly interpolates between a and b.
func Lerp(a, b, t float64) float64 {
	return (b-a)*t + a
}

// LerpRGB interpolates each channel independently.
func LerpRGB(a, b [3]float64, t float64) [3]float64 {
	return [3]float64{
		Lerp(a[0], b[0], t),
		Lerp(a[1], b[1], t),
		Lerp(a[2], b[2], t),
	}
}

// Interpolate returns the Value between from and to at eased progress t.
func Interpolate(from, to codec.Value, t float64, space Space) (codec.Value, error) {
	if from.Kind != to.Kind {
		return codec.Value{}, fmt.Errorf("%w: %s to %s", ErrKindMismatch, from.Kind, to.Kind)
	}
	if !to.IsColor() {
		return codec.Scalar(Lerp(from.Num, to.Num, t)), nil
	}
	if space == "" || space == SpaceRGB {
		return codec.Value{Kind: codec.KindColor, RGB: LerpRGB(from.RGB, to.RGB, t)}, nil
	}
	return codec.Value{Kind: codec.KindColor, RGB: blend(from.RGB, to.RGB, t, space)}, nil
}

// Compute returns presentation text for the value at eased progress t.
// Scalars get units appended; colours are encoded as "#rrggbb".
func Compute(from, to codec.Value, t float64, units string) (string, error) {
	return ComputeIn(SpaceRGB, from, to, t, units)
}

// ComputeIn is Compute with an explicit colour space.
func ComputeIn(space Space, from, to codec.Value, t float64, units string) (string, error) {
	v, err := Interpolate(from, to, t, space)
	if err != nil {
		return "", err
	}
	return codec.Format(v, units), nil
}

func blend(a, b [3]float64, t float64, space Space) [3]float64 {
	c1 := toColorful(a)
	c2 := toColorful(b)

	var c colorful.Color
	switch space {
	case SpaceHCL:
		c = c1.BlendHcl(c2, t)
	case SpaceLab:
		c = c1.BlendLab(c2, t)
	case SpaceLuv:
		c = c1.BlendLuv(c2, t)
	case SpaceHSV:
		c = c1.BlendHsv(c2, t)
	default:
		c = c1.BlendRgb(c2, t)
	}

	c = c.Clamped()
	return [3]float64{c.R * 255, c.G * 255, c.B * 255}
}

func toColorful(rgb [3]float64) colorful.Color {
	return colorful.Color{R: rgb[0] / 255, G: rgb[1] / 255, B: rgb[2] / 255}
}

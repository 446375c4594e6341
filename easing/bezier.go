package easing

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// CSS returns the named CSS timing functions.
func CSS() map[string]Func {
	return map[string]Func{
		"ease":        CubicBezier(0.25, 0.1, 0.25, 1.0),
		"ease-in":     CubicBezier(0.42, 0.0, 1.0, 1.0),
		"ease-out":    CubicBezier(0.0, 0.0, 0.58, 1.0),
		"ease-in-out": CubicBezier(0.42, 0.0, 0.58, 1.0),
	}
}

// CubicBezier returns an easing function matching CSS cubic-bezier().
// The curve starts at (0,0) and ends at (1,1); (x1,y1) and (x2,y2) are the
// control points.
func CubicBezier(x1, y1, x2, y2 float64) Func {
	return newBezier(x1, y1, x2, y2).at
}

// bezier holds the polynomial form of a unit cubic bezier so that
// x(u) = ((ax*u + bx)*u + cx)*u, and likewise for y.
type bezier struct {
	ax, bx, cx float64
	ay, by, cy float64
}

func newBezier(x1, y1, x2, y2 float64) bezier {
	var c bezier
	c.cx = 3 * x1
	c.bx = 3*(x2-x1) - c.cx
	c.ax = 1 - c.cx - c.bx
	c.cy = 3 * y1
	c.by = 3*(y2-y1) - c.cy
	c.ay = 1 - c.cy - c.by
	return c
}

func (c bezier) x(u float64) float64  { return ((c.ax*u+c.bx)*u + c.cx) * u }
func (c bezier) y(u float64) float64  { return ((c.ay*u+c.by)*u + c.cy) * u }
func (c bezier) dx(u float64) float64 { return (3*c.ax*u+2*c.bx)*u + c.cx }

func (c bezier) at(t float64) float64 {
	switch {
	case t <= 0:
		return 0
	case t >= 1:
		return 1
	}
	return c.y(c.solve(t))
}

// solve finds u in [0,1] with x(u) = x.
func (c bezier) solve(x float64) float64 {
	const epsilon = 1e-7

	u := x
	for i := 0; i < 8; i++ {
		err := c.x(u) - x
		if math.Abs(err) < epsilon && u >= 0 && u <= 1 {
			return u
		}
		d := c.dx(u)
		if math.Abs(d) < epsilon {
			break
		}
		u -= err / d
	}

	// x(u) is monotonic on [0,1] when x1 and x2 are, so halving converges.
	lo, hi := 0.0, 1.0
	u = x
	for hi-lo > epsilon {
		v := c.x(u)
		if math.Abs(v-x) < epsilon {
			break
		}
		if v > x {
			hi = u
		} else {
			lo = u
		}
		u = (lo + hi) / 2
	}
	return u
}

// ParseCubicBezier parses text of the form "cubic-bezier(x1, y1, x2, y2)".
func ParseCubicBezier(text string) (Func, error) {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "cubic-bezier(") || !strings.HasSuffix(text, ")") {
		return nil, fmt.Errorf("not a cubic-bezier: %q", text)
	}

	args := strings.Split(text[len("cubic-bezier("):len(text)-1], ",")
	if len(args) != 4 {
		return nil, fmt.Errorf("cubic-bezier needs 4 arguments, got %d", len(args))
	}

	var v [4]float64
	for i, a := range args {
		f, err := strconv.ParseFloat(strings.TrimSpace(a), 64)
		if err != nil {
			return nil, fmt.Errorf("cubic-bezier argument %d: %w", i+1, err)
		}
		v[i] = f
	}
	if v[0] < 0 || v[0] > 1 || v[2] < 0 || v[2] > 1 {
		return nil, fmt.Errorf("cubic-bezier x values must be within [0,1]: %q", text)
	}

	return CubicBezier(v[0], v[1], v[2], v[3]), nil
}

package stream

import (
	"encoding/binary"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/matt-g-everett/ledtween/codec"
	"github.com/matt-g-everett/ledtween/scene"
)

// Frame represents a frame of RGB pixels to display on an ledrx device.
type Frame struct {
	pixels []colorful.Color
}

// NewFrame creates a black Frame of n pixels.
func NewFrame(n int) *Frame {
	f := new(Frame)
	f.pixels = make([]colorful.Color, n)
	return f
}

// FrameFromElements builds a Frame with one pixel per element, coloured by
// the element's property. Unset or unparsable colours are black.
func FrameFromElements(elements []*scene.Element, property string) *Frame {
	f := NewFrame(len(elements))
	for i, e := range elements {
		rgb, err := codec.ParseColor(e.Style(property))
		if err != nil {
			continue
		}
		f.pixels[i] = colorful.Color{R: rgb[0] / 255, G: rgb[1] / 255, B: rgb[2] / 255}
	}
	return f
}

// Len returns the number of pixels.
func (f *Frame) Len() int {
	return len(f.pixels)
}

// MarshalBinary converts a Frame into binary data: a little-endian pixel
// count followed by an RGB triplet per pixel.
func (f *Frame) MarshalBinary() (data []byte, err error) {
	data = make([]byte, 2, (len(f.pixels)*3)+2)
	binary.LittleEndian.PutUint16(data, uint16(len(f.pixels)))
	for _, p := range f.pixels {
		r, g, b := p.Clamped().RGB255()
		data = append(data, r, g, b)
	}

	return data, nil
}

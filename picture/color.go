package picture

import (
	"fmt"
	"image/color"
)

// Color is an opaque 8-bit RGB triple.
type Color struct {
	R uint8
	G uint8
	B uint8
}

var (
	Black = Color{}
	White = Color{R: 0xff, G: 0xff, B: 0xff}
)

// RGBA implements color.Color. Pixels are always fully opaque.
func (c Color) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R)
	r |= r << 8
	g = uint32(c.G)
	g |= g << 8
	b = uint32(c.B)
	b |= b << 8
	return r, g, b, 0xffff
}

func (c Color) String() string {
	return fmt.Sprintf("(%d,%d,%d)", c.R, c.G, c.B)
}

// ColorModel converts any color to a Color, dropping the alpha channel.
// Straight (non-premultiplied) channel values are kept.
var ColorModel = color.ModelFunc(colorConvert)

func colorConvert(c color.Color) color.Color {
	if pc, ok := c.(Color); ok {
		return pc
	}

	nc := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Color{R: nc.R, G: nc.G, B: nc.B}
}

// Point is a pixel coordinate.
type Point struct {
	X, Y int
}

func (p Point) String() string {
	return fmt.Sprintf("(%d, %d)", p.X, p.Y)
}

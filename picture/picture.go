package picture

import (
	"encoding/binary"
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/image/draw"
)

// BoundsError reports an access to a coordinate outside a Picture.
type BoundsError struct {
	X, Y          int
	Width, Height int
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("pixel (%d, %d) outside %dx%d picture", e.X, e.Y, e.Width, e.Height)
}

// Picture is an in-memory grid of opaque RGB pixels. The zero coordinate is
// the top left corner.
type Picture struct {
	// Pix holds the pixels in row-major order. The pixel at (x, y) is
	// Pix[y*width + x].
	Pix    []Color
	width  int
	height int
}

var (
	_ image.Image = &Picture{}
	_ draw.Image  = &Picture{}
)

// New returns a width x height Picture with every pixel black.
func New(width, height int) *Picture {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}

	return &Picture{
		Pix:    make([]Color, width*height),
		width:  width,
		height: height,
	}
}

// FromImage copies img into a new Picture anchored at (0, 0).
func FromImage(img image.Image) *Picture {
	b := img.Bounds()
	pic := New(b.Dx(), b.Dy())
	draw.Draw(pic, pic.Bounds(), img, b.Min, draw.Src)
	return pic
}

func (p *Picture) Width() int {
	return p.width
}

func (p *Picture) Height() int {
	return p.height
}

// Contains reports whether (x, y) lies within the picture.
func (p *Picture) Contains(x, y int) bool {
	return x >= 0 && y >= 0 && x < p.width && y < p.height
}

// Pixel returns the color at (x, y).
func (p *Picture) Pixel(x, y int) (Color, error) {
	if !p.Contains(x, y) {
		return Color{}, &BoundsError{X: x, Y: y, Width: p.width, Height: p.height}
	}
	return p.Pix[y*p.width+x], nil
}

// SetPixel overwrites the color at (x, y).
func (p *Picture) SetPixel(x, y int, c Color) error {
	if !p.Contains(x, y) {
		return &BoundsError{X: x, Y: y, Width: p.width, Height: p.height}
	}
	p.Pix[y*p.width+x] = c
	return nil
}

func (p *Picture) ColorModel() color.Model {
	return ColorModel
}

func (p *Picture) Bounds() image.Rectangle {
	return image.Rect(0, 0, p.width, p.height)
}

// At implements image.Image. Points outside the picture are transparent.
func (p *Picture) At(x, y int) color.Color {
	if !p.Contains(x, y) {
		return color.RGBA{}
	}
	return p.Pix[y*p.width+x]
}

// Set implements draw.Image. Points outside the picture are ignored.
func (p *Picture) Set(x, y int, c color.Color) {
	if !p.Contains(x, y) {
		return
	}
	p.Pix[y*p.width+x] = ColorModel.Convert(c).(Color)
}

// Clone returns an independent copy of p.
func (p *Picture) Clone() *Picture {
	c := New(p.width, p.height)
	copy(c.Pix, p.Pix)
	return c
}

// Equal reports whether both pictures have the same dimensions and pixels.
func (p *Picture) Equal(other *Picture) bool {
	if p == nil || other == nil {
		return p == other
	}
	if p.width != other.width || p.height != other.height {
		return false
	}

	for i, c := range p.Pix {
		if other.Pix[i] != c {
			return false
		}
	}
	return true
}

// Hash digests the dimensions and every pixel. Equal pictures hash equally.
func (p *Picture) Hash() uint64 {
	d := xxhash.New()

	var dims [16]byte
	binary.LittleEndian.PutUint64(dims[:8], uint64(p.width))
	binary.LittleEndian.PutUint64(dims[8:], uint64(p.height))
	_, _ = d.Write(dims[:])

	row := make([]byte, 3*p.width)
	for y := range p.height {
		for x, c := range p.Pix[y*p.width : (y+1)*p.width] {
			row[3*x], row[3*x+1], row[3*x+2] = c.R, c.G, c.B
		}
		_, _ = d.Write(row)
	}

	return d.Sum64()
}

// String dumps the pixels one row per line.
func (p *Picture) String() string {
	var sb strings.Builder
	for y := range p.height {
		for x := range p.width {
			sb.WriteString(p.Pix[y*p.width+x].String())
		}
		sb.WriteByte('\n')
	}
	sb.WriteByte('\n')
	return sb.String()
}

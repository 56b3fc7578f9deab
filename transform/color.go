package transform

import (
	"pictool/parallel"
	"pictool/picture"
)

// Invert returns the complement of c on every channel.
func Invert(c picture.Color) picture.Color {
	return picture.Color{R: 255 - c.R, G: 255 - c.G, B: 255 - c.B}
}

// Grayscale replaces every channel with the truncated mean of the three.
func Grayscale(c picture.Color) picture.Color {
	avg := uint8((uint(c.R) + uint(c.G) + uint(c.B)) / 3)
	return picture.Color{R: avg, G: avg, B: avg}
}

// BlendPixel averages colors channel by channel, truncating. An empty slice
// blends to black.
func BlendPixel(colors []picture.Color) picture.Color {
	if len(colors) == 0 {
		return picture.Black
	}

	var r, g, b uint
	for _, c := range colors {
		r += uint(c.R)
		g += uint(c.G)
		b += uint(c.B)
	}
	n := uint(len(colors))
	return picture.Color{R: uint8(r / n), G: uint8(g / n), B: uint8(b / n)}
}

// InvertPicture returns a new picture with every pixel inverted.
func InvertPicture(src *picture.Picture) *picture.Picture {
	return mapColors(inline, src, Invert)
}

// GrayscalePicture returns a new grayscale copy of src.
func GrayscalePicture(src *picture.Picture) *picture.Picture {
	return mapColors(inline, src, Grayscale)
}

// mapColors applies fn to every pixel of src into a new picture, spreading
// rows over the pool.
func mapColors(pool *parallel.Pool, src *picture.Picture, fn func(picture.Color) picture.Color) *picture.Picture {
	dst := picture.New(src.Width(), src.Height())
	w := src.Width()

	pool.Split(src.Height(), func(lo, hi int) {
		for i := lo * w; i < hi*w; i++ {
			dst.Pix[i] = fn(src.Pix[i])
		}
	})
	return dst
}

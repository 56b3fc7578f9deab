package transform

import (
	"pictool/parallel"
	"pictool/picture"
)

// Blur replaces every pixel with the truncated mean of its 3x3
// neighbourhood. Edge pixels average only the neighbours that exist.
func Blur(src *picture.Picture) *picture.Picture {
	return blur(inline, src)
}

func blur(pool *parallel.Pool, src *picture.Picture) *picture.Picture {
	w, h := src.Width(), src.Height()
	dst := picture.New(w, h)

	// reads only touch src, writes only touch dst
	pool.Split(h, func(lo, hi int) {
		for y := lo; y < hi; y++ {
			y0, y1 := max(y-1, 0), min(y+1, h-1)
			for x := range w {
				x0, x1 := max(x-1, 0), min(x+1, w-1)

				var r, g, b, n uint
				for ny := y0; ny <= y1; ny++ {
					for _, c := range src.Pix[ny*w+x0 : ny*w+x1+1] {
						r += uint(c.R)
						g += uint(c.G)
						b += uint(c.B)
						n++
					}
				}
				dst.Pix[y*w+x] = picture.Color{R: uint8(r / n), G: uint8(g / n), B: uint8(b / n)}
			}
		}
	})
	return dst
}

package transform

import (
	"errors"
	"fmt"
	"math"

	"pictool/parallel"
	"pictool/picture"
)

var ErrInvalidAxis = errors.New("invalid flip axis")

// Axis selects the mirror direction of Flip.
type Axis int

const (
	// Horizontal mirrors left and right.
	Horizontal Axis = iota
	// Vertical mirrors top and bottom.
	Vertical
)

func (a Axis) String() string {
	switch a {
	case Horizontal:
		return "h"
	case Vertical:
		return "v"
	}
	return fmt.Sprintf("Axis(%d)", int(a))
}

// ParseAxis reads an axis from its first character, 'h' or 'v'.
func ParseAxis(s string) (Axis, error) {
	if s == "" {
		return 0, fmt.Errorf("%w: empty", ErrInvalidAxis)
	}

	switch s[0] {
	case 'h':
		return Horizontal, nil
	case 'v':
		return Vertical, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidAxis, s)
}

// Flip mirrors src along axis.
func Flip(src *picture.Picture, axis Axis) (*picture.Picture, error) {
	return flip(inline, src, axis)
}

func flip(pool *parallel.Pool, src *picture.Picture, axis Axis) (*picture.Picture, error) {
	if axis != Horizontal && axis != Vertical {
		return nil, fmt.Errorf("%w: %s", ErrInvalidAxis, axis)
	}

	w, h := src.Width(), src.Height()
	dst := picture.New(w, h)

	pool.Split(h, func(lo, hi int) {
		for y := lo; y < hi; y++ {
			sy := y
			if axis == Vertical {
				sy = h - 1 - y
			}
			for x := range w {
				sx := x
				if axis == Horizontal {
					sx = w - 1 - x
				}
				dst.Pix[y*w+x] = src.Pix[sy*w+sx]
			}
		}
	})
	return dst, nil
}

// rightAngleCorrection offsets the mapped destination of the axis aligned
// rotations, where the rotation center falls between pixel boundaries.
// Other angles get no correction.
var rightAngleCorrection = map[int]picture.Point{
	90:  {X: -1, Y: 0},
	180: {X: -1, Y: -1},
	270: {X: 0, Y: -1},
}

// RotatedSize returns the bounding box of a width x height picture turned by
// angle degrees.
func RotatedSize(width, height, angle int) (int, int) {
	theta := float64(normalizeAngle(angle)) * (math.Pi / 180)
	sin, cos := math.Sincos(theta)
	w, h := float64(width), float64(height)

	newWidth := int(math.Round(math.Abs(w*cos) + math.Abs(h*sin)))
	newHeight := int(math.Round(math.Abs(w*sin) + math.Abs(h*cos)))
	return newWidth, newHeight
}

// Rotate turns src clockwise by angle degrees into a new picture sized to
// the rotated bounding box. Each source pixel is mapped to a single
// destination pixel, so multiples of 90 are exact while other angles leave
// black holes; there is no resampling or anti-aliasing. The angle is
// reduced to [0, 360) first, so -90 is corrected exactly like 270.
func Rotate(src *picture.Picture, angle int) (*picture.Picture, error) {
	angle = normalizeAngle(angle)
	width, height := src.Width(), src.Height()
	newWidth, newHeight := RotatedSize(width, height, angle)
	dst := picture.New(newWidth, newHeight)
	if newWidth == 0 || newHeight == 0 {
		return dst, nil
	}

	theta := float64(angle) * (math.Pi / 180)
	sin, cos := math.Sincos(-theta)
	corr := rightAngleCorrection[angle]

	halfW, halfH := float64(width)/2, float64(height)/2
	newHalfW, newHalfH := float64(newWidth)/2, float64(newHeight)/2

	// x-major order; later writes to the same destination win
	for x := range width {
		for y := range height {
			tx := float64(x) - halfW
			ty := float64(-y) + halfH

			rx := tx*cos - ty*sin
			ry := tx*sin + ty*cos

			newX := rx + newHalfW + float64(corr.X)
			newY := -(ry - newHalfH) + float64(corr.Y)

			dx := clamp(int(math.Round(newX)), 0, newWidth-1)
			dy := clamp(int(math.Round(newY)), 0, newHeight-1)

			c, err := src.Pixel(x, y)
			if err != nil {
				return nil, fmt.Errorf("rotating %d degrees: %w", angle, err)
			}
			if err := dst.SetPixel(dx, dy, c); err != nil {
				return nil, fmt.Errorf("rotating %d degrees: %w", angle, err)
			}
		}
	}
	return dst, nil
}

func normalizeAngle(angle int) int {
	angle %= 360
	if angle < 0 {
		angle += 360
	}
	return angle
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}

package transform

import (
	"errors"
	"fmt"

	"github.com/samber/lo"

	"pictool/parallel"
	"pictool/picture"
)

var (
	ErrEmptyInput           = errors.New("no input pictures")
	ErrInputCount           = errors.New("wrong number of input pictures")
	ErrUnsupportedOperation = errors.New("unsupported operation")
)

// inline runs everything on the caller's goroutine; a single worker pool
// never starts goroutines and needs no Close.
var inline = parallel.Start(1)

// Op selects the transform applied by Engine.Apply.
type Op int

const (
	OpInvert Op = iota
	OpGrayscale
	OpRotate
	OpFlip
	OpBlend
	OpBlur
)

var opNames = map[Op]string{
	OpInvert:    "invert",
	OpGrayscale: "grayscale",
	OpRotate:    "rotate",
	OpFlip:      "flip",
	OpBlend:     "blend",
	OpBlur:      "blur",
}

func (o Op) String() string {
	if name, ok := opNames[o]; ok {
		return name
	}
	return fmt.Sprintf("Op(%d)", int(o))
}

// ParseOp maps a command name to its Op.
func ParseOp(name string) (Op, error) {
	for op, n := range opNames {
		if n == name {
			return op, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedOperation, name)
}

// Params carries the per-operation arguments. Only the field matching the
// selected Op is read.
type Params struct {
	Angle int
	Axis  Axis
}

// Engine applies transforms, spreading independent rows over a worker pool.
// Results are identical whatever the pool size.
type Engine struct {
	pool *parallel.Pool
}

// NewEngine returns an Engine using pool. A nil pool runs sequentially.
func NewEngine(pool *parallel.Pool) *Engine {
	if pool == nil {
		pool = inline
	}
	return &Engine{pool: pool}
}

// Apply runs op over inputs and returns a new picture. Blend accepts any
// non-zero number of inputs, every other op exactly one. Inputs are never
// modified.
func (e *Engine) Apply(op Op, params Params, inputs ...*picture.Picture) (*picture.Picture, error) {
	if len(inputs) == 0 {
		return nil, fmt.Errorf("%s: %w", op, ErrEmptyInput)
	}
	if op == OpBlend {
		return e.Blend(inputs...)
	}
	if len(inputs) != 1 {
		return nil, fmt.Errorf("%s takes one picture, got %d: %w", op, len(inputs), ErrInputCount)
	}

	src := inputs[0]
	switch op {
	case OpInvert:
		return mapColors(e.pool, src, Invert), nil
	case OpGrayscale:
		return mapColors(e.pool, src, Grayscale), nil
	case OpRotate:
		// sequential, overlapping writes must land in x-major order
		return Rotate(src, params.Angle)
	case OpFlip:
		return flip(e.pool, src, params.Axis)
	case OpBlur:
		return blur(e.pool, src), nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedOperation, op)
}

// Blend averages inputs pixel by pixel over the largest top-left rectangle
// they all cover.
func (e *Engine) Blend(inputs ...*picture.Picture) (*picture.Picture, error) {
	if len(inputs) == 0 {
		return nil, fmt.Errorf("blend: %w", ErrEmptyInput)
	}

	width := lo.Min(lo.Map(inputs, func(p *picture.Picture, _ int) int { return p.Width() }))
	height := lo.Min(lo.Map(inputs, func(p *picture.Picture, _ int) int { return p.Height() }))
	dst := picture.New(width, height)

	e.pool.Split(height, func(from, to int) {
		colors := make([]picture.Color, len(inputs))
		for y := from; y < to; y++ {
			for x := range width {
				for i, in := range inputs {
					colors[i] = in.Pix[y*in.Width()+x]
				}
				dst.Pix[y*width+x] = BlendPixel(colors)
			}
		}
	})
	return dst, nil
}

// Blend averages inputs sequentially. See Engine.Blend.
func Blend(inputs ...*picture.Picture) (*picture.Picture, error) {
	return NewEngine(nil).Blend(inputs...)
}

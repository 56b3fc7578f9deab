package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pictool/parallel"
	"pictool/picture"
)

// fromRows builds a picture from rows of red channel values.
func fromRows(t *testing.T, rows [][]uint8) *picture.Picture {
	t.Helper()
	pic := picture.New(len(rows[0]), len(rows))
	for y, row := range rows {
		for x, v := range row {
			require.NoError(t, pic.SetPixel(x, y, picture.Color{R: v, G: 255 - v, B: v / 2}))
		}
	}
	return pic
}

func solid(w, h int, c picture.Color) *picture.Picture {
	pic := picture.New(w, h)
	for i := range pic.Pix {
		pic.Pix[i] = c
	}
	return pic
}

// pattern returns a w x h picture with a distinct color per pixel.
func pattern(w, h int) *picture.Picture {
	pic := picture.New(w, h)
	for i := range pic.Pix {
		pic.Pix[i] = picture.Color{R: uint8(i), G: uint8(3 * i), B: uint8(7 * i)}
	}
	return pic
}

func TestColorOps(t *testing.T) {
	assert.Equal(t, picture.Color{R: 245, G: 135, B: 0}, Invert(picture.Color{R: 10, G: 120, B: 255}))

	for _, tc := range []struct {
		in   picture.Color
		want uint8
	}{
		{picture.Color{R: 1, G: 1, B: 1}, 1},
		{picture.Color{R: 1, G: 1, B: 0}, 0},
		{picture.Color{R: 255, G: 255, B: 255}, 255},
		{picture.Color{R: 10, G: 20, B: 31}, 20},
	} {
		assert.Equal(t, picture.Color{R: tc.want, G: tc.want, B: tc.want}, Grayscale(tc.in), "%s", tc.in)
	}

	red := picture.Color{R: 255}
	blue := picture.Color{B: 255}
	assert.Equal(t, picture.Color{R: 127, B: 127}, BlendPixel([]picture.Color{red, blue}))
	assert.Equal(t, picture.Color{R: 85, B: 170}, BlendPixel([]picture.Color{red, blue, blue}))
	assert.Equal(t, picture.Black, BlendPixel(nil))
}

func TestInvertBlackToWhite(t *testing.T) {
	out := InvertPicture(picture.New(2, 2))
	assert.True(t, solid(2, 2, picture.White).Equal(out), out.String())
}

func TestInvertInvolutive(t *testing.T) {
	src := pattern(5, 3)
	orig := src.Clone()
	assert.True(t, src.Equal(InvertPicture(InvertPicture(src))))
	assert.True(t, orig.Equal(src), "input must not be modified")
}

func TestGrayscaleIdempotent(t *testing.T) {
	once := GrayscalePicture(pattern(4, 4))
	assert.True(t, once.Equal(GrayscalePicture(once)))
}

func TestFlip(t *testing.T) {
	src := fromRows(t, [][]uint8{
		{1, 2, 3},
		{4, 5, 6},
	})

	h, err := Flip(src, Horizontal)
	require.NoError(t, err)
	assert.True(t, fromRows(t, [][]uint8{
		{3, 2, 1},
		{6, 5, 4},
	}).Equal(h), h.String())

	v, err := Flip(src, Vertical)
	require.NoError(t, err)
	assert.True(t, fromRows(t, [][]uint8{
		{4, 5, 6},
		{1, 2, 3},
	}).Equal(v), v.String())

	for _, axis := range []Axis{Horizontal, Vertical} {
		once, err := Flip(src, axis)
		require.NoError(t, err)
		twice, err := Flip(once, axis)
		require.NoError(t, err)
		assert.True(t, src.Equal(twice), "axis %s", axis)
	}

	_, err = Flip(src, Axis(7))
	assert.ErrorIs(t, err, ErrInvalidAxis)
}

func TestParseAxis(t *testing.T) {
	a, err := ParseAxis("h")
	require.NoError(t, err)
	assert.Equal(t, Horizontal, a)

	a, err = ParseAxis("vertical")
	require.NoError(t, err)
	assert.Equal(t, Vertical, a)

	for _, s := range []string{"", "x", "H"} {
		_, err = ParseAxis(s)
		assert.ErrorIs(t, err, ErrInvalidAxis, "%q", s)
	}
}

func TestRotateTwoByOne(t *testing.T) {
	src := fromRows(t, [][]uint8{{1, 2}})

	out, err := Rotate(src, 90)
	require.NoError(t, err)
	require.Equal(t, 1, out.Width())
	require.Equal(t, 2, out.Height())
	assert.True(t, fromRows(t, [][]uint8{{1}, {2}}).Equal(out), out.String())
}

func TestRotateRightAngles(t *testing.T) {
	src := fromRows(t, [][]uint8{
		{1, 2, 3, 4},
		{5, 6, 7, 8},
		{9, 10, 11, 12},
	})

	for _, tc := range []struct {
		angle int
		want  [][]uint8
	}{
		{0, [][]uint8{{1, 2, 3, 4}, {5, 6, 7, 8}, {9, 10, 11, 12}}},
		{90, [][]uint8{{9, 5, 1}, {10, 6, 2}, {11, 7, 3}, {12, 8, 4}}},
		{180, [][]uint8{{12, 11, 10, 9}, {8, 7, 6, 5}, {4, 3, 2, 1}}},
		{270, [][]uint8{{4, 8, 12}, {3, 7, 11}, {2, 6, 10}, {1, 5, 9}}},
		{360, [][]uint8{{1, 2, 3, 4}, {5, 6, 7, 8}, {9, 10, 11, 12}}},
		{-90, [][]uint8{{4, 8, 12}, {3, 7, 11}, {2, 6, 10}, {1, 5, 9}}},
		{450, [][]uint8{{9, 5, 1}, {10, 6, 2}, {11, 7, 3}, {12, 8, 4}}},
	} {
		out, err := Rotate(src, tc.angle)
		require.NoError(t, err)
		assert.True(t, fromRows(t, tc.want).Equal(out), "angle %d:\n%s", tc.angle, out.String())
	}
}

func TestRotateFourQuarterTurnsIsIdentity(t *testing.T) {
	for _, size := range []picture.Point{{X: 1, Y: 1}, {X: 2, Y: 1}, {X: 2, Y: 2}, {X: 3, Y: 2}, {X: 3, Y: 3}, {X: 4, Y: 3}, {X: 7, Y: 5}} {
		src := pattern(size.X, size.Y)
		out := src
		for range 4 {
			var err error
			out, err = Rotate(out, 90)
			require.NoError(t, err)
		}
		assert.True(t, src.Equal(out), "size %s", size)
	}
}

func TestRotateOtherAngles(t *testing.T) {
	w, h := RotatedSize(4, 4, 45)
	assert.Equal(t, 6, w)
	assert.Equal(t, 6, h)

	src := solid(4, 4, picture.White)
	out, err := Rotate(src, 45)
	require.NoError(t, err)
	require.Equal(t, 6, out.Width())
	require.Equal(t, 6, out.Height())

	// point mapping without resampling leaves the corners black
	c, err := out.Pixel(0, 0)
	require.NoError(t, err)
	assert.Equal(t, picture.Black, c)
	c, err = out.Pixel(3, 3)
	require.NoError(t, err)
	assert.Equal(t, picture.White, c)
}

func TestRotateEmpty(t *testing.T) {
	out, err := Rotate(picture.New(0, 0), 90)
	require.NoError(t, err)
	assert.Equal(t, 0, out.Width())
	assert.Equal(t, 0, out.Height())
}

func TestBlurUniform(t *testing.T) {
	src := solid(5, 4, picture.Color{R: 12, G: 200, B: 77})
	assert.True(t, src.Equal(Blur(src)))
}

func TestBlurNeighbourhood(t *testing.T) {
	src := fromRows(t, [][]uint8{
		{0, 0, 0},
		{0, 90, 0},
		{0, 0, 0},
	})
	out := Blur(src)

	// corners see 4 pixels, edges 6, the center 9
	for _, tc := range []struct {
		pt   picture.Point
		want uint8
	}{
		{picture.Point{X: 0, Y: 0}, 22},
		{picture.Point{X: 1, Y: 0}, 15},
		{picture.Point{X: 1, Y: 1}, 10},
		{picture.Point{X: 2, Y: 2}, 22},
	} {
		c, err := out.Pixel(tc.pt.X, tc.pt.Y)
		require.NoError(t, err)
		assert.Equal(t, tc.want, c.R, "at %s", tc.pt)
	}
}

func TestBlend(t *testing.T) {
	red := solid(3, 3, picture.Color{R: 255})
	blue := solid(3, 3, picture.Color{B: 255})

	out, err := Blend(red, blue)
	require.NoError(t, err)
	assert.True(t, solid(3, 3, picture.Color{R: 127, B: 127}).Equal(out), out.String())

	src := pattern(4, 3)
	out, err = Blend(src, src, src)
	require.NoError(t, err)
	assert.True(t, src.Equal(out))

	_, err = Blend()
	assert.ErrorIs(t, err, ErrEmptyInput)
}

func TestBlendCropsToSmallest(t *testing.T) {
	big := pattern(5, 2)
	tall := pattern(3, 6)

	out, err := Blend(big, tall)
	require.NoError(t, err)
	require.Equal(t, 3, out.Width())
	require.Equal(t, 2, out.Height())

	for y := range 2 {
		for x := range 3 {
			a, _ := big.Pixel(x, y)
			b, _ := tall.Pixel(x, y)
			got, err := out.Pixel(x, y)
			require.NoError(t, err)
			assert.Equal(t, BlendPixel([]picture.Color{a, b}), got, "at (%d, %d)", x, y)
		}
	}
}

func TestEngineMatchesSequential(t *testing.T) {
	pool := parallel.Start(4)
	defer pool.Close()
	engine := NewEngine(pool)
	sequential := NewEngine(nil)

	src := pattern(13, 9)
	for _, tc := range []struct {
		op     Op
		params Params
	}{
		{OpInvert, Params{}},
		{OpGrayscale, Params{}},
		{OpRotate, Params{Angle: 90}},
		{OpFlip, Params{Axis: Vertical}},
		{OpBlur, Params{}},
		{OpBlend, Params{}},
	} {
		want, err := sequential.Apply(tc.op, tc.params, src)
		require.NoError(t, err)
		got, err := engine.Apply(tc.op, tc.params, src)
		require.NoError(t, err)
		assert.True(t, want.Equal(got), "op %s", tc.op)
		assert.Equal(t, want.Hash(), got.Hash(), "op %s", tc.op)
	}
}

func TestEngineApplyErrors(t *testing.T) {
	engine := NewEngine(nil)
	src := pattern(2, 2)

	_, err := engine.Apply(OpInvert, Params{})
	assert.ErrorIs(t, err, ErrEmptyInput)

	_, err = engine.Apply(OpBlend, Params{})
	assert.ErrorIs(t, err, ErrEmptyInput)

	_, err = engine.Apply(OpBlur, Params{}, src, src)
	assert.ErrorIs(t, err, ErrInputCount)

	_, err = engine.Apply(Op(42), Params{}, src)
	assert.ErrorIs(t, err, ErrUnsupportedOperation)
}

func TestParseOp(t *testing.T) {
	for _, name := range []string{"invert", "grayscale", "rotate", "flip", "blend", "blur"} {
		op, err := ParseOp(name)
		require.NoError(t, err)
		assert.Equal(t, name, op.String())
	}

	_, err := ParseOp("sharpen")
	assert.ErrorIs(t, err, ErrUnsupportedOperation)
}

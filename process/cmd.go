package process

import (
	"fmt"
	"log/slog"

	"github.com/alecthomas/kong"
	"github.com/samber/lo"

	"pictool/imageio"
	"pictool/picture"
	"pictool/transform"
)

// Options are the global flags every command needs when writing its result.
type Options struct {
	Format    string
	Overwrite bool
}

// CLI is the command line of the tool.
type CLI struct {
	Workers   int    `help:"Number of workers transforming pixels. 0 uses every CPU, 1 runs sequentially." default:"0"`
	Verbose   bool   `help:"Log debug messages" short:"v"`
	Format    string `help:"Output format. 'auto' picks it from the output extension, defaulting to png" enum:"auto,png,bmp,tiff,gif,jpeg" default:"auto"`
	Overwrite bool   `help:"Replace the output file if it exists" default:"true" negatable:""`

	Invert    InvertCmd    `cmd:"" help:"Invert the colors of a picture"`
	Grayscale GrayscaleCmd `cmd:"" help:"Convert a picture to grayscale"`
	Rotate    RotateCmd    `cmd:"" help:"Rotate a picture clockwise by whole degrees. Multiples of 90 are exact."`
	Flip      FlipCmd      `cmd:"" help:"Mirror a picture horizontally (h) or vertically (v)"`
	Blend     BlendCmd     `cmd:"" help:"Average several pictures, cropped to the smallest one"`
	Blur      BlurCmd      `cmd:"" help:"Blur a picture with a 3x3 box filter"`
}

func (c *CLI) Options() Options {
	return Options{Format: c.Format, Overwrite: c.Overwrite}
}

type IOParams struct {
	Input  string `arg:"" help:"Source picture"`
	Output string `arg:"" help:"Destination picture"`
}

type InvertCmd struct {
	IOParams
}

func (c *InvertCmd) Run(engine *transform.Engine, opts Options) error {
	return apply(engine, opts, transform.OpInvert, transform.Params{}, []string{c.Input}, c.Output)
}

type GrayscaleCmd struct {
	IOParams
}

func (c *GrayscaleCmd) Run(engine *transform.Engine, opts Options) error {
	return apply(engine, opts, transform.OpGrayscale, transform.Params{}, []string{c.Input}, c.Output)
}

type RotateCmd struct {
	Angle int `arg:"" help:"Clockwise angle in degrees"`
	IOParams
}

func (c *RotateCmd) Run(engine *transform.Engine, opts Options) error {
	return apply(engine, opts, transform.OpRotate, transform.Params{Angle: c.Angle}, []string{c.Input}, c.Output)
}

type FlipCmd struct {
	Axis string `arg:"" help:"h to mirror left and right, v to mirror top and bottom"`
	IOParams

	axis transform.Axis `kong:"-"`
}

func (c *FlipCmd) Validate(kctx *kong.Context) error {
	axis, err := transform.ParseAxis(c.Axis)
	if err != nil {
		return err
	}
	c.axis = axis
	return nil
}

func (c *FlipCmd) Run(engine *transform.Engine, opts Options) error {
	return apply(engine, opts, transform.OpFlip, transform.Params{Axis: c.axis}, []string{c.Input}, c.Output)
}

type BlendCmd struct {
	Files []string `arg:"" name:"file" help:"Source pictures followed by the destination picture"`
}

func (c *BlendCmd) Validate(kctx *kong.Context) error {
	if len(c.Files) < 2 {
		return fmt.Errorf("blend needs at least one source and a destination, got %d files", len(c.Files))
	}
	return nil
}

func (c *BlendCmd) Run(engine *transform.Engine, opts Options) error {
	inputs := lo.DropRight(c.Files, 1)
	output := c.Files[len(c.Files)-1]
	return apply(engine, opts, transform.OpBlend, transform.Params{}, inputs, output)
}

type BlurCmd struct {
	IOParams
}

func (c *BlurCmd) Run(engine *transform.Engine, opts Options) error {
	return apply(engine, opts, transform.OpBlur, transform.Params{}, []string{c.Input}, c.Output)
}

func apply(engine *transform.Engine, opts Options, op transform.Op, params transform.Params, inputs []string, output string) error {
	logger := slog.Default().With("op", op.String(), "output", output)
	logger.Info("processing", "inputs", inputs)

	pics, err := imageio.LoadAll(inputs)
	if err != nil {
		return err
	}

	var result *picture.Picture
	if result, err = engine.Apply(op, params, pics...); err != nil {
		return fmt.Errorf("could not %s: %w", op, err)
	}

	if err = imageio.Save(result, output, opts.Format, opts.Overwrite); err != nil {
		return err
	}

	logger.Info("done", "width", result.Width(), "height", result.Height())
	return nil
}

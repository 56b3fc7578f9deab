package main

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"pictool/parallel"
	"pictool/process"
	"pictool/transform"
)

func main() {
	var cli process.CLI
	kctx := kong.Parse(&cli,
		kong.Name("pictool"),
		kong.Description("Apply simple transforms to raster pictures."),
		kong.UsageOnError(),
		kong.WithHyphenPrefixedParameters(true),
	)

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	pool := parallel.Start(cli.Workers)
	slog.Debug("running", "command", kctx.Command(), "workers", pool.Workers())

	err := kctx.Run(transform.NewEngine(pool), cli.Options())
	pool.Close()
	kctx.FatalIfErrorf(err)
}

package imageio

import (
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// Formats lists the accepted output formats. Auto picks the format from the
// destination extension and falls back to png.
var Formats = []string{"auto", "png", "bmp", "tiff", "gif", "jpeg"}

var extFormats = map[string]string{
	".png":  "png",
	".bmp":  "bmp",
	".tif":  "tiff",
	".tiff": "tiff",
	".gif":  "gif",
	".jpg":  "jpeg",
	".jpeg": "jpeg",
}

// ResolveFormat returns the concrete format used to write path.
func ResolveFormat(format, path string) string {
	if format != "" && format != "auto" {
		return format
	}
	if f, ok := extFormats[strings.ToLower(filepath.Ext(path))]; ok {
		return f
	}
	return "png"
}

// Save encodes img to path. The data goes to a temporary file in the same
// directory first and is renamed over path once fully written.
func Save(img image.Image, path, format string, overwrite bool) (err error) {
	mode, err := checkDestination(path, overwrite)
	if err != nil {
		return &EncodeError{Path: path, Err: err}
	}

	outType := ResolveFormat(format, path)
	destDir, destName := filepath.Split(path)
	if destDir == "" {
		destDir = "."
	}

	outFile, err := os.CreateTemp(destDir, "."+destName+".*")
	if err != nil {
		return &EncodeError{Path: path, Err: fmt.Errorf("could not create temporary destination: %w", err)}
	}
	canRename := false
	defer func() {
		if defErr := outFile.Chmod(mode); defErr != nil && err == nil {
			err = &EncodeError{Path: path, Err: fmt.Errorf("could not set permissions on temporary destination: %w", defErr)}
		}
		if defErr := outFile.Sync(); defErr != nil && err == nil {
			err = &EncodeError{Path: path, Err: fmt.Errorf("could not flush temporary destination: %w", defErr)}
		}
		if defErr := outFile.Close(); defErr != nil && err == nil {
			err = &EncodeError{Path: path, Err: fmt.Errorf("could not close temporary destination: %w", defErr)}
		}

		if canRename && err == nil {
			if defErr := os.Rename(outFile.Name(), path); defErr != nil {
				err = &EncodeError{Path: path, Err: fmt.Errorf("could not rename destination file: %w", defErr)}
			}
		}
		if err != nil {
			if rmErr := os.Remove(outFile.Name()); rmErr != nil {
				slog.Error("could not remove temporary destination", "name", outFile.Name(), "error", rmErr)
			}
		}
	}()

	if err = encode(outFile, img, outType); err != nil {
		return &EncodeError{Path: path, Err: err}
	}

	slog.Debug("saved", "file", path, "type", outType)
	canRename = true
	return nil
}

func encode(w io.Writer, img image.Image, outType string) error {
	switch outType {
	case "gif":
		if err := gif.Encode(w, img, nil); err != nil {
			return fmt.Errorf("could not encode GIF: %w", err)
		}
	case "jpeg":
		if err := jpeg.Encode(w, img, &jpeg.Options{Quality: 100}); err != nil {
			return fmt.Errorf("could not encode JPEG: %w", err)
		}
	case "png":
		enc := png.Encoder{
			CompressionLevel: png.BestCompression,
			BufferPool:       pngPool,
		}
		if err := enc.Encode(w, img); err != nil {
			return fmt.Errorf("could not encode PNG: %w", err)
		}
	case "bmp":
		if err := bmp.Encode(w, img); err != nil {
			return fmt.Errorf("could not encode BMP: %w", err)
		}
	case "tiff":
		if err := tiff.Encode(w, img, nil); err != nil {
			return fmt.Errorf("could not encode TIFF: %w", err)
		}
	default:
		return fmt.Errorf("unsupported output format: %s", outType)
	}
	return nil
}

type pngEncoderBufferPool struct {
	pool sync.Pool
}

func (p *pngEncoderBufferPool) Get() *png.EncoderBuffer {
	return p.pool.Get().(*png.EncoderBuffer)
}

func (p *pngEncoderBufferPool) Put(buf *png.EncoderBuffer) {
	p.pool.Put(buf)
}

var pngPool = &pngEncoderBufferPool{
	pool: sync.Pool{
		New: func() any {
			return &png.EncoderBuffer{}
		},
	},
}

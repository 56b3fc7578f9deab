package imageio

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"
	"log/slog"
	"os"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/vp8l"
	_ "golang.org/x/image/webp"

	"pictool/picture"
)

// DecodeError reports a picture that could not be read.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("could not decode %q: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// EncodeError reports a picture that could not be written.
type EncodeError struct {
	Path string
	Err  error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("could not encode %q: %v", e.Path, e.Err)
}

func (e *EncodeError) Unwrap() error {
	return e.Err
}

// Load decodes the picture stored at path. Any registered format is
// accepted: png, jpeg, gif, bmp, tiff and webp.
func Load(path string) (*picture.Picture, error) {
	if err := checkSource(path); err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			slog.Error("could not close source file", "name", path, "error", closeErr)
		}
	}()

	img, imgType, err := image.Decode(f)
	if err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}

	pic := picture.FromImage(img)
	slog.Debug("loaded", "file", path, "type", imgType, "width", pic.Width(), "height", pic.Height())
	return pic, nil
}

// LoadAll decodes every path in order, stopping at the first failure.
func LoadAll(paths []string) ([]*picture.Picture, error) {
	pics := make([]*picture.Picture, 0, len(paths))
	for _, path := range paths {
		pic, err := Load(path)
		if err != nil {
			return nil, err
		}
		pics = append(pics, pic)
	}
	return pics, nil
}

func checkSource(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("cannot stat source file: %w", err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("cannot read non-regular file %q: %s", info.Name(), info.Mode().String())
	}
	return nil
}

var ErrDestinationExists = errors.New("destination file already exists")

// defaultMode is the permission of newly created pictures.
const defaultMode fs.FileMode = 0o644

// checkDestination returns the permissions the written file should carry:
// those of the file being replaced, or defaultMode.
func checkDestination(path string, overwrite bool) (fs.FileMode, error) {
	info, err := os.Stat(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return 0, fmt.Errorf("cannot stat destination file: %w", err)
		}
		return defaultMode, nil
	}

	if !info.Mode().IsRegular() {
		return 0, fmt.Errorf("cannot replace non-regular file %q: %s", info.Name(), info.Mode().String())
	}
	if !overwrite {
		return 0, ErrDestinationExists
	}
	return info.Mode().Perm(), nil
}

package raster

import (
	"fmt"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/disintegration/imaging"
	"github.com/klauspost/compress/zstd"
	_ "golang.org/x/image/bmp"  // Register BMP format decoder
	_ "golang.org/x/image/tiff" // Register TIFF format decoder
	_ "golang.org/x/image/webp" // Register WebP format decoder
)

// jpegQuality is used for ".jpg" and ".jpeg" output.
const jpegQuality = 95

// IOError records a failed decode or encode together with the file involved.
type IOError struct {
	Op   string // "decode" or "encode"
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// Decode reads the image at path, choosing the format from its extension.
func Decode(path string) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &IOError{Op: "decode", Path: path, Err: err}
	}
	defer f.Close()

	m, err := DecodeReader(f, path)
	if err != nil {
		return nil, &IOError{Op: "decode", Path: path, Err: err}
	}
	return m, nil
}

// DecodeReader decodes an image from r. name is only used for its extension.
func DecodeReader(r io.Reader, name string) (*Image, error) {
	ext := strings.ToLower(filepath.Ext(name))
	if ext == ".zst" {
		dec, err := zstd.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("failed to open zstd stream: %w", err)
		}
		defer dec.Close()
		return DecodeReader(dec, strings.TrimSuffix(name, filepath.Ext(name)))
	}

	switch ext {
	case ".ppm", ".pnm":
		return DecodePPM(r)
	}

	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return FromImage(img), nil
}

// Encode writes m to path, choosing the format from its extension. A file
// that fails to encode is removed.
func Encode(m *Image, path string) error {
	enc, err := encoderFor(path)
	if err != nil {
		return &IOError{Op: "encode", Path: path, Err: err}
	}

	f, err := os.Create(path)
	if err != nil {
		return &IOError{Op: "encode", Path: path, Err: err}
	}
	if err := enc(f, m); err != nil {
		f.Close()
		os.Remove(path)
		return &IOError{Op: "encode", Path: path, Err: err}
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return &IOError{Op: "encode", Path: path, Err: err}
	}
	return nil
}

// EncodeWriter writes m to w in the format implied by name's extension.
func EncodeWriter(w io.Writer, m *Image, name string) error {
	enc, err := encoderFor(name)
	if err != nil {
		return err
	}
	return enc(w, m)
}

// CanEncode reports whether Encode supports the extension of path.
func CanEncode(path string) bool {
	_, err := encoderFor(path)
	return err == nil
}

type encodeFunc func(io.Writer, *Image) error

func encoderFor(name string) (encodeFunc, error) {
	ext := strings.ToLower(filepath.Ext(name))
	if ext == ".zst" {
		inner, err := encoderFor(strings.TrimSuffix(name, filepath.Ext(name)))
		if err != nil {
			return nil, err
		}
		return func(w io.Writer, m *Image) error {
			zw, err := zstd.NewWriter(w)
			if err != nil {
				return fmt.Errorf("failed to open zstd stream: %w", err)
			}
			if err := inner(zw, m); err != nil {
				zw.Close()
				return err
			}
			return zw.Close()
		}, nil
	}

	var bildEnc imgio.Encoder
	switch ext {
	case ".ppm", ".pnm":
		return EncodePPM, nil
	case ".png":
		bildEnc = imgio.PNGEncoder()
	case ".jpg", ".jpeg":
		bildEnc = imgio.JPEGEncoder(jpegQuality)
	case ".bmp":
		bildEnc = imgio.BMPEncoder()
	default:
		return nil, fmt.Errorf("unsupported output format %q", ext)
	}
	return func(w io.Writer, m *Image) error {
		if err := bildEnc(w, m.ToNRGBA()); err != nil {
			return fmt.Errorf("failed to encode image: %w", err)
		}
		return nil
	}, nil
}

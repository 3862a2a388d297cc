// Package imaging normalizes listing photos before they are stored.
package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"net/http"

	"golang.org/x/image/draw"
)

// DefaultMaxDimension bounds photo width and height when no limit is given.
const DefaultMaxDimension = 1024

// JPEGQuality is the compression quality of stored photos.
const JPEGQuality = 80

// ErrUnsupportedFormat is returned for anything other than JPEG or PNG.
var ErrUnsupportedFormat = errors.New("unsupported image format")

var allowedMIME = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
}

// Photo is a normalized listing photo.
type Photo struct {
	Data   []byte
	MIME   string
	Width  int
	Height int
}

// Normalize sniffs the upload, rejects non-photos, shrinks it to fit within
// maxDim on both sides and re-encodes it as JPEG. A maxDim of zero or less
// uses DefaultMaxDimension.
func Normalize(r io.Reader, maxDim int) (*Photo, error) {
	if maxDim <= 0 {
		maxDim = DefaultMaxDimension
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading photo: %w", err)
	}

	// The client's Content-Type is not trusted.
	if detected := http.DetectContentType(data); !allowedMIME[detected] {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, detected)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding photo: %w", err)
	}

	img = fit(img, maxDim)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: JPEGQuality}); err != nil {
		return nil, fmt.Errorf("encoding photo: %w", err)
	}

	b := img.Bounds()
	return &Photo{Data: buf.Bytes(), MIME: "image/jpeg", Width: b.Dx(), Height: b.Dy()}, nil
}

// fit scales img down, keeping its aspect ratio, until neither side exceeds
// maxDim. Smaller images are returned unchanged.
func fit(img image.Image, maxDim int) image.Image {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= maxDim && h <= maxDim {
		return img
	}

	newW, newH := maxDim, maxDim
	if w > h {
		newH = max(1, h*maxDim/w)
	} else {
		newW = max(1, w*maxDim/h)
	}

	dst := image.NewRGBA(image.Rect(0, 0, newW, newH))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst
}

func init() {
	image.RegisterFormat("png", "\x89PNG", png.Decode, png.DecodeConfig)
}

// Package imagex validates and resizes profile-picture uploads.
package imagex

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"path/filepath"
	"strings"

	xdraw "golang.org/x/image/draw"

	_ "image/gif"
	_ "image/png"

	_ "golang.org/x/image/webp"
)

// MaxFileSize is the upload size cap (5 MB).
const MaxFileSize = 5 * 1024 * 1024

var (
	ErrTooLarge     = errors.New("file size too large")
	ErrBadExtension = errors.New("invalid file type")
	ErrNotAnImage   = errors.New("invalid image file")
)

var allowedExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".gif":  {},
	".webp": {},
}

// Ext returns the lower-cased extension of filename, including the dot.
func Ext(filename string) string {
	return strings.ToLower(filepath.Ext(filename))
}

// Validate checks the upload against the size cap and extension allowlist and
// verifies the content actually decodes as an image.
func Validate(content []byte, filename string) error {
	if len(content) > MaxFileSize {
		return ErrTooLarge
	}

	if _, ok := allowedExtensions[Ext(filename)]; !ok {
		return ErrBadExtension
	}

	if _, _, err := image.Decode(bytes.NewReader(content)); err != nil {
		return ErrNotAnImage
	}

	return nil
}

// Thumbnail decodes content, scales it down to fit within maxWidth x maxHeight
// (never upscaling), flattens any transparency onto a white background, and
// re-encodes the result as JPEG (quality 85).
func Thumbnail(content []byte, maxWidth, maxHeight int) ([]byte, error) {
	src, _, err := image.Decode(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("error processing image: %w", err)
	}

	w, h := fit(src.Bounds().Dx(), src.Bounds().Dy(), maxWidth, maxHeight)

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Over, nil)

	var out bytes.Buffer
	if err := jpeg.Encode(&out, dst, &jpeg.Options{Quality: 85}); err != nil {
		return nil, fmt.Errorf("error processing image: %w", err)
	}

	return out.Bytes(), nil
}

// fit returns dimensions bounded by maxW x maxH preserving aspect ratio.
func fit(w, h, maxW, maxH int) (int, int) {
	if w <= maxW && h <= maxH {
		return w, h
	}

	rw := float64(maxW) / float64(w)
	rh := float64(maxH) / float64(h)
	r := rw
	if rh < r {
		r = rh
	}

	nw := int(float64(w) * r)
	nh := int(float64(h) * r)
	if nw < 1 {
		nw = 1
	}
	if nh < 1 {
		nh = 1
	}
	return nw, nh
}

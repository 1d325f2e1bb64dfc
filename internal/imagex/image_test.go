package imagex

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"
)

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode error: %v", err)
	}
	return buf.Bytes()
}

func TestValidate_Success(t *testing.T) {
	content := encodePNG(t, 10, 10)
	if err := Validate(content, "avatar.PNG"); err != nil {
		t.Fatalf("Validate error: %v", err)
	}
}

func TestValidate_TooLarge(t *testing.T) {
	content := make([]byte, MaxFileSize+1)
	if err := Validate(content, "a.png"); !errors.Is(err, ErrTooLarge) {
		t.Fatalf("want ErrTooLarge, got %v", err)
	}
}

func TestValidate_BadExtension(t *testing.T) {
	content := encodePNG(t, 4, 4)
	if err := Validate(content, "a.bmp"); !errors.Is(err, ErrBadExtension) {
		t.Fatalf("want ErrBadExtension, got %v", err)
	}
}

func TestValidate_NotAnImage(t *testing.T) {
	if err := Validate([]byte("plain text"), "a.jpg"); !errors.Is(err, ErrNotAnImage) {
		t.Fatalf("want ErrNotAnImage, got %v", err)
	}
}

func TestThumbnail_DownscalesToBounds(t *testing.T) {
	content := encodePNG(t, 800, 600)

	out, err := Thumbnail(content, 400, 400)
	if err != nil {
		t.Fatalf("Thumbnail error: %v", err)
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("decoding thumbnail: %v", err)
	}
	if format != "jpeg" {
		t.Fatalf("want jpeg output, got %s", format)
	}
	if cfg.Width != 400 || cfg.Height != 300 {
		t.Fatalf("want 400x300, got %dx%d", cfg.Width, cfg.Height)
	}
}

func TestThumbnail_DoesNotUpscale(t *testing.T) {
	content := encodePNG(t, 100, 50)

	out, err := Thumbnail(content, 400, 400)
	if err != nil {
		t.Fatalf("Thumbnail error: %v", err)
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("decoding thumbnail: %v", err)
	}
	if cfg.Width != 100 || cfg.Height != 50 {
		t.Fatalf("want 100x50, got %dx%d", cfg.Width, cfg.Height)
	}
}

func TestThumbnail_GarbageInput(t *testing.T) {
	if _, err := Thumbnail([]byte("nope"), 400, 400); err == nil {
		t.Fatalf("expected error for non-image input")
	}
}

package texture

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestFromPixelsRGBA(t *testing.T) {
	pixels := []byte{
		255, 0, 0, 255, 0, 255, 0, 128,
		0, 0, 255, 255, 255, 255, 255, 0,
	}
	img, err := FromPixels(pixels, 2, 2, 4)
	if err != nil {
		t.Fatalf("FromPixels failed: %v", err)
	}
	if img.Bounds() != image.Rect(0, 0, 2, 2) {
		t.Errorf("unexpected bounds %v", img.Bounds())
	}
	got := img.(*image.NRGBA).NRGBAAt(0, 1)
	if got != (color.NRGBA{B: 255, A: 255}) {
		t.Errorf("pixel (0,1) = %+v, want blue", got)
	}
}

func TestFromPixelsRGB(t *testing.T) {
	pixels := []byte{10, 20, 30, 40, 50, 60}
	img, err := FromPixels(pixels, 2, 1, 3)
	if err != nil {
		t.Fatalf("FromPixels failed: %v", err)
	}
	got := img.(*image.NRGBA).NRGBAAt(1, 0)
	want := color.NRGBA{R: 40, G: 50, B: 60, A: 255}
	if got != want {
		t.Errorf("pixel (1,0) = %+v, want %+v", got, want)
	}
}

func TestFromPixelsInvalid(t *testing.T) {
	if _, err := FromPixels([]byte{1, 2, 3}, 2, 2, 4); err == nil {
		t.Error("expected error for short buffer")
	}
	if _, err := FromPixels([]byte{1, 2, 3, 4}, 0, 1, 4); err == nil {
		t.Error("expected error for zero width")
	}
	if _, err := FromPixels(make([]byte, 8), 2, 2, 2); err == nil {
		t.Error("expected error for unsupported channel count")
	}
}

func TestWriteFileAndLoadFile(t *testing.T) {
	tmpDir := t.TempDir()

	src := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for i := range src.Pix {
		src.Pix[i] = byte(i * 7)
	}

	tests := []struct {
		name   string
		asJPEG bool
	}{
		{"0.png", false},
		{"1.jpg", true},
	}
	for _, tt := range tests {
		path := filepath.Join(tmpDir, tt.name)
		if err := WriteFile(path, src, tt.asJPEG, 90); err != nil {
			t.Fatalf("WriteFile(%s) failed: %v", tt.name, err)
		}
		img, err := LoadFile(path)
		if err != nil {
			t.Fatalf("LoadFile(%s) failed: %v", tt.name, err)
		}
		if img.Bounds() != src.Bounds() {
			t.Errorf("%s: bounds %v, want %v", tt.name, img.Bounds(), src.Bounds())
		}
	}
}

func TestLoadFileMissing(t *testing.T) {
	if _, err := LoadFile("/nonexistent/texture.png"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestDecodeTGAUncompressed(t *testing.T) {
	// 2x1, 24bpp, top-to-bottom, pixels stored BGR.
	data := []byte{
		0, 0, 2, // no ID, no color map, type 2
		0, 0, 0, 0, 0, // color map spec
		0, 0, 0, 0, // origin
		2, 0, 1, 0, // 2x1
		24, 0x20, // bpp, top-to-bottom
		255, 0, 0, // blue pixel
		0, 0, 255, // red pixel
	}

	img, err := DecodeTGA(data)
	if err != nil {
		t.Fatalf("DecodeTGA failed: %v", err)
	}
	rgba := img.(*image.RGBA)
	if got := rgba.RGBAAt(0, 0); got != (color.RGBA{B: 255, A: 255}) {
		t.Errorf("pixel (0,0) = %+v, want blue", got)
	}
	if got := rgba.RGBAAt(1, 0); got != (color.RGBA{R: 255, A: 255}) {
		t.Errorf("pixel (1,0) = %+v, want red", got)
	}
}

func TestDecodeTGARejectsUnsupported(t *testing.T) {
	if _, err := DecodeTGA([]byte{0, 0}); err == nil {
		t.Error("expected error for truncated header")
	}

	colorMapped := make([]byte, 18)
	colorMapped[1] = 1
	colorMapped[2] = 2
	if _, err := DecodeTGA(colorMapped); err == nil {
		t.Error("expected error for color-mapped TGA")
	}
}

func TestLoadFileTGADispatch(t *testing.T) {
	tmpDir := t.TempDir()

	// Write a tiny TGA and make sure LoadFile routes it by extension.
	data := []byte{
		0, 0, 2,
		0, 0, 0, 0, 0,
		0, 0, 0, 0,
		1, 0, 1, 0,
		24, 0x20,
		0, 255, 0, // green in BGR
	}
	path := filepath.Join(tmpDir, "tex.tga")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("writing tga: %v", err)
	}

	img, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if got := img.(*image.RGBA).RGBAAt(0, 0); got != (color.RGBA{G: 255, A: 255}) {
		t.Errorf("pixel = %+v, want green", got)
	}
}

func TestLoadFilePNG(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "tex.png")

	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, image.NewGray(image.Rect(0, 0, 2, 2))); err != nil {
		t.Fatal(err)
	}
	f.Close()

	if _, err := LoadFile(path); err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
}

// Package texture decodes texture inputs and re-encodes them into the
// export directory as JPEG or PNG.
package texture

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	// Widen accepted file texture formats beyond stdlib PNG/JPEG.
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

// LoadFile reads and decodes a texture image from disk. PNG, JPEG, BMP and
// TIFF decode through image.Decode; TGA has no magic bytes and dispatches
// on extension to the package's own decoder.
func LoadFile(path string) (image.Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading texture %s: %w", path, err)
	}

	if strings.EqualFold(filepath.Ext(path), ".tga") {
		img, err := DecodeTGA(data)
		if err != nil {
			return nil, fmt.Errorf("decoding texture %s: %w", path, err)
		}
		return img, nil
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding texture %s: %w", path, err)
	}
	return img, nil
}

// FromPixels wraps a packed raw pixel buffer as an image. Supported channel
// counts are 1 (grayscale), 3 (RGB) and 4 (RGBA).
func FromPixels(pixels []byte, width, height, channels int) (image.Image, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid packed texture dimensions %dx%d", width, height)
	}
	if len(pixels) < width*height*channels {
		return nil, fmt.Errorf("packed texture buffer too short: %d bytes for %dx%dx%d",
			len(pixels), width, height, channels)
	}

	rect := image.Rect(0, 0, width, height)
	switch channels {
	case 1:
		return &image.Gray{Pix: pixels, Stride: width, Rect: rect}, nil
	case 3:
		img := image.NewNRGBA(rect)
		for i := 0; i < width*height; i++ {
			img.Pix[i*4+0] = pixels[i*3+0]
			img.Pix[i*4+1] = pixels[i*3+1]
			img.Pix[i*4+2] = pixels[i*3+2]
			img.Pix[i*4+3] = 255
		}
		return img, nil
	case 4:
		return &image.NRGBA{Pix: pixels, Stride: width * 4, Rect: rect}, nil
	default:
		return nil, fmt.Errorf("unsupported packed texture channel count %d", channels)
	}
}

// WriteFile encodes the image to path as JPEG with the given quality, or as
// PNG at maximum compression when asJPEG is false.
func WriteFile(path string, img image.Image, asJPEG bool, quality int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating texture file %s: %w", path, err)
	}
	defer f.Close()

	if asJPEG {
		err = jpeg.Encode(f, img, &jpeg.Options{Quality: quality})
	} else {
		enc := &png.Encoder{CompressionLevel: png.BestCompression}
		err = enc.Encode(f, img)
	}
	if err != nil {
		return fmt.Errorf("encoding texture file %s: %w", path, err)
	}

	return f.Close()
}

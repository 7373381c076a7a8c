// Package codec decodes source images and encodes the finished canvas.
// Sources are read through a read-only memory mapping rather than buffered
// file reads, which keeps large webp and jpeg files out of the heap.
package codec

import (
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chai2010/webp"
	"golang.org/x/exp/mmap"
)

// DecodeFile decodes the image at path, chosen by extension. Supported
// inputs are webp and jpeg.
func DecodeFile(path string) (image.Image, error) {
	r, err := mmap.Open(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	sr := io.NewSectionReader(r, 0, int64(r.Len()))
	switch strings.ToLower(filepath.Ext(path)) {
	case ".webp":
		return webp.Decode(sr)
	case ".jpg", ".jpeg":
		return jpeg.Decode(sr)
	default:
		return nil, fmt.Errorf("unsupported file extension: %s", filepath.Ext(path))
	}
}

// ValidateOutput checks that the output path names a supported encode
// format, so a bad path is rejected before any compositing work.
func ValidateOutput(path string) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".webp", ".png":
		return nil
	default:
		return fmt.Errorf("unsupported output format: %s", filepath.Ext(path))
	}
}

// EncodeFile writes img losslessly to path, chosen by extension: webp is
// encoded as lossless RGB, png with the fast stdlib encoder. The image is
// expected to be fully opaque.
func EncodeFile(path string, img image.Image) error {
	if err := ValidateOutput(path); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".webp":
		var data []byte
		data, err = webp.EncodeLosslessRGB(img)
		if err == nil {
			_, err = f.Write(data)
		}
	case ".png":
		err = (&png.Encoder{CompressionLevel: png.BestSpeed}).Encode(f, img)
	}
	if err != nil {
		return fmt.Errorf("encode %s: %w", filepath.Base(path), err)
	}
	return nil
}

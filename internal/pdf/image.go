package pdf

import (
	"bytes"
	"fmt"
	"image"

	// raster formats the offer pipeline accepts
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
)

// ImageInfo describes a decoded raster image
type ImageInfo struct {
	Format string // gofpdf image type: "PNG", "JPG" or "GIF"
	Width  int
	Height int
}

// DecodeImageData reads the header of an encoded image and returns its
// format and intrinsic dimensions. Images with non-positive dimensions
// are rejected.
func DecodeImageData(data []byte) (ImageInfo, error) {
	if len(data) == 0 {
		return ImageInfo{}, fmt.Errorf("empty image data")
	}
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return ImageInfo{}, fmt.Errorf("decode image: %w", err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return ImageInfo{}, fmt.Errorf("invalid image dimensions %dx%d", cfg.Width, cfg.Height)
	}
	var pdfType string
	switch format {
	case "png":
		pdfType = "PNG"
	case "jpeg":
		pdfType = "JPG"
	case "gif":
		pdfType = "GIF"
	default:
		return ImageInfo{}, fmt.Errorf("unsupported image format %q", format)
	}
	return ImageInfo{Format: pdfType, Width: cfg.Width, Height: cfg.Height}, nil
}

// FitToBox scales intrinsic pixel dimensions to targetWidth preserving
// aspect ratio. If the resulting height exceeds maxHeight (> 0), the
// image is instead constrained by height and the width recomputed.
func FitToBox(intrinsicW, intrinsicH int, targetWidth, maxHeight float64) (w, h float64) {
	aspect := float64(intrinsicH) / float64(intrinsicW)
	w = targetWidth
	h = targetWidth * aspect
	if maxHeight > 0 && h > maxHeight {
		h = maxHeight
		if aspect > 0 {
			w = h / aspect
		}
	}
	return w, h
}

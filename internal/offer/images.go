package offer

import (
	"encoding/base64"
	"strings"

	"github.com/sunline-energie/offer-api/internal/pdf"
)

// DecodeImageInput normalizes the image inputs accepted throughout the
// request payloads: raw base64, data URIs and the junk literals some
// upstream exports produce ("none", "null", "nan"). A nil result means
// no usable image.
func DecodeImageInput(input string) []byte {
	trimmed := strings.TrimSpace(input)
	switch strings.ToLower(trimmed) {
	case "", "none", "null", "nan":
		return nil
	}
	if strings.HasPrefix(trimmed, "data:image") {
		if i := strings.Index(trimmed, ","); i >= 0 {
			trimmed = trimmed[i+1:]
		}
	}
	data, err := base64.StdEncoding.DecodeString(trimmed)
	if err != nil {
		return nil
	}
	return data
}

// ImageBlocks builds the blocks for one embedded image: the image sized
// to targetWidth (shrunk further when maxHeight binds), followed by an
// optional caption. A broken or missing image yields only the caption
// fallback note, or nothing when no caption was requested.
func ImageBlocks(data []byte, targetWidth, maxHeight float64, align string, caption string, theme *pdf.Theme, r *TextResolver) []pdf.Block {
	img, err := embeddedImage(data, targetWidth, maxHeight, align)
	if err != nil || img == nil {
		if caption == "" {
			return nil
		}
		note := "(" + caption + ": " + r.Get("image_not_available_pdf", "Bild nicht verfügbar") + ")"
		return []pdf.Block{pdf.Paragraph{Text: note, Style: theme.ImageCaption}}
	}
	blocks := []pdf.Block{*img}
	if caption != "" {
		blocks = append(blocks,
			pdf.Spacer{Height: 1},
			pdf.Paragraph{Text: caption, Style: theme.ImageCaption},
		)
	}
	return blocks
}

func embeddedImage(data []byte, targetWidth, maxHeight float64, align string) (*pdf.Image, error) {
	if len(data) == 0 {
		return nil, nil
	}
	info, err := pdf.DecodeImageData(data)
	if err != nil {
		return nil, err
	}
	w, h := pdf.FitToBox(info.Width, info.Height, targetWidth, maxHeight)
	return &pdf.Image{Data: data, Format: info.Format, Width: w, Height: h, Align: align}, nil
}

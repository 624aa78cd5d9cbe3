package pdf

import (
	"bytes"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodeImage(t *testing.T, format string, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	var buf bytes.Buffer
	var err error
	switch format {
	case "png":
		err = png.Encode(&buf, img)
	case "jpeg":
		err = jpeg.Encode(&buf, img, nil)
	case "gif":
		err = gif.Encode(&buf, img, nil)
	default:
		t.Fatalf("unknown format %s", format)
	}
	require.NoError(t, err)
	return buf.Bytes()
}

func TestDecodeImageData(t *testing.T) {
	tests := []struct {
		format     string
		wantFormat string
	}{
		{"png", "PNG"},
		{"jpeg", "JPG"},
		{"gif", "GIF"},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			info, err := DecodeImageData(encodeImage(t, tt.format, 120, 80))
			require.NoError(t, err)
			assert.Equal(t, tt.wantFormat, info.Format)
			assert.Equal(t, 120, info.Width)
			assert.Equal(t, 80, info.Height)
		})
	}
}

func TestDecodeImageDataRejectsBadInput(t *testing.T) {
	_, err := DecodeImageData(nil)
	assert.Error(t, err)

	_, err = DecodeImageData([]byte("definitely not an image"))
	assert.Error(t, err)
}

func TestFitToBox(t *testing.T) {
	t.Run("width bound", func(t *testing.T) {
		w, h := FitToBox(200, 100, 80, 0)
		assert.InDelta(t, 80, w, 0.001)
		assert.InDelta(t, 40, h, 0.001)
	})

	t.Run("height bound", func(t *testing.T) {
		w, h := FitToBox(100, 200, 80, 100)
		assert.InDelta(t, 100, h, 0.001)
		assert.InDelta(t, 50, w, 0.001)
	})

	t.Run("max height not reached", func(t *testing.T) {
		w, h := FitToBox(100, 50, 60, 100)
		assert.InDelta(t, 60, w, 0.001)
		assert.InDelta(t, 30, h, 0.001)
	})
}

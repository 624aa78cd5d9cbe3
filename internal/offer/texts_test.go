package offer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextResolverGet(t *testing.T) {
	r := NewTextResolver(map[string]string{
		"pdf_offer_title": "Ihr Angebot",
	})

	assert.Equal(t, "Ihr Angebot", r.Get("pdf_offer_title", "unused fallback"))
	assert.Equal(t, "mein Fallback", r.Get("unknown_key", "mein Fallback"))
	assert.Equal(t, "Unknown Key (PDF-Text fehlt)", r.Get("unknown_key", ""))
}

func TestTextResolverNilCatalog(t *testing.T) {
	r := NewTextResolver(nil)

	assert.Equal(t, "fallback", r.Get("any_key", "fallback"))
	assert.False(t, r.Has("any_key"))
}

func TestHumanizeKey(t *testing.T) {
	assert.Equal(t, "Pdf Offer Title", HumanizeKey("pdf_offer_title"))
	assert.Equal(t, "Satellite Image Caption Pdf", HumanizeKey("satellite_image_caption_pdf"))
	assert.Equal(t, "Key", HumanizeKey("key"))
}

func TestLoadTexts(t *testing.T) {
	t.Run("missing file yields empty catalog", func(t *testing.T) {
		texts, err := LoadTexts(filepath.Join(t.TempDir(), "nope.json"))
		require.NoError(t, err)
		assert.Empty(t, texts)
	})

	t.Run("empty path yields empty catalog", func(t *testing.T) {
		texts, err := LoadTexts("")
		require.NoError(t, err)
		assert.Empty(t, texts)
	})

	t.Run("valid file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "texts.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"a_key":"Ein Text"}`), 0o644))

		texts, err := LoadTexts(path)
		require.NoError(t, err)
		assert.Equal(t, "Ein Text", texts["a_key"])
	})

	t.Run("invalid json fails", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "broken.json")
		require.NoError(t, os.WriteFile(path, []byte("{"), 0o644))

		_, err := LoadTexts(path)
		assert.Error(t, err)
	})
}

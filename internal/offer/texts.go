package offer

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"unicode"
)

// MissingTextMarker is appended to humanized keys so missing template
// texts are visible in a generated document instead of failing the run.
const MissingTextMarker = " (PDF-Text fehlt)"

// TextResolver resolves display texts by key from the configurable text
// catalog. Every lookup degrades: an unknown key yields the caller's
// fallback, or a humanized form of the key marked as missing.
type TextResolver struct {
	texts map[string]string
}

// NewTextResolver wraps a text catalog; a nil map is valid and resolves
// everything through fallbacks.
func NewTextResolver(texts map[string]string) *TextResolver {
	return &TextResolver{texts: texts}
}

// Get resolves key, preferring the catalog, then the fallback, then the
// humanized key with the missing-text marker.
func (r *TextResolver) Get(key, fallback string) string {
	if r != nil && r.texts != nil {
		if v, ok := r.texts[key]; ok {
			return v
		}
	}
	if fallback != "" {
		return fallback
	}
	return HumanizeKey(key) + MissingTextMarker
}

// Has reports whether the catalog carries an entry for key
func (r *TextResolver) Has(key string) bool {
	if r == nil || r.texts == nil {
		return false
	}
	_, ok := r.texts[key]
	return ok
}

// HumanizeKey turns "pdf_offer_title" into "Pdf Offer Title"
func HumanizeKey(key string) string {
	words := strings.Split(key, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		runes := []rune(w)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}

// LoadTexts reads a JSON text catalog from disk. The file maps text
// keys to display strings; a missing path yields an empty catalog so a
// bare deployment still produces documents.
func LoadTexts(path string) (map[string]string, error) {
	if path == "" {
		return map[string]string{}, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("read text catalog: %w", err)
	}
	var texts map[string]string
	if err := json.Unmarshal(raw, &texts); err != nil {
		return nil, fmt.Errorf("parse text catalog %s: %w", path, err)
	}
	return texts, nil
}

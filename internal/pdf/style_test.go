package pdf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    RGB
		wantErr bool
	}{
		{"with hash", "#003366", RGB{R: 0x00, G: 0x33, B: 0x66}, false},
		{"without hash", "4F81BD", RGB{R: 0x4F, G: 0x81, B: 0xBD}, false},
		{"surrounding whitespace", "  #FF0000 ", RGB{R: 0xFF}, false},
		{"too short", "#FFF", RGB{}, true},
		{"too long", "#AABBCCDD", RGB{}, true},
		{"non-hex digits", "#GGHHII", RGB{}, true},
		{"empty", "", RGB{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseHexColor(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHexColorOr(t *testing.T) {
	def := RGB{R: 1, G: 2, B: 3}
	assert.Equal(t, RGB{R: 0x11, G: 0x22, B: 0x33}, HexColorOr("#112233", def))
	assert.Equal(t, def, HexColorOr("garbage", def))
	assert.Equal(t, def, HexColorOr("", def))
}

func TestTextStyleFontStyle(t *testing.T) {
	assert.Equal(t, "", TextStyle{}.fontStyle())
	assert.Equal(t, "B", TextStyle{Bold: true}.fontStyle())
	assert.Equal(t, "I", TextStyle{Italic: true}.fontStyle())
	assert.Equal(t, "BI", TextStyle{Bold: true, Italic: true}.fontStyle())
}

func TestWithAlignCopies(t *testing.T) {
	base := TextStyle{Size: 10, Align: AlignLeft}
	right := base.WithAlign(AlignRight)
	assert.Equal(t, AlignRight, right.Align)
	assert.Equal(t, AlignLeft, base.Align)
	assert.Equal(t, base.Size, right.Size)
}

func TestNewThemeAccentColors(t *testing.T) {
	primary := RGB{R: 0x10, G: 0x20, B: 0x30}
	secondary := RGB{R: 0x40, G: 0x50, B: 0x60}
	theme := NewTheme(primary, secondary)

	assert.Equal(t, primary, theme.Primary)
	assert.Equal(t, secondary, theme.Secondary)
	assert.Equal(t, primary, theme.Title.Color)
	assert.Equal(t, primary, theme.SectionTitle.Color)
	assert.Equal(t, secondary, theme.SubSectionTitle.Color)

	header := theme.DataTable().HeaderFill
	require.NotNil(t, header)
	assert.Equal(t, secondary, *header)
}

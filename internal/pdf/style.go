// Package pdf implements a small flowing-document engine on top of gofpdf.
//
// Content is described as a flat list of blocks (paragraphs, tables,
// images, spacers). Layout happens in two phases: Paginator flows blocks
// into pages using real font metrics, then Render draws each page with the
// total page count known, letting a Decorator composite running headers
// and footers per page.
package pdf

import (
	"fmt"
	"strings"
)

// RGB is a 24-bit color
type RGB struct {
	R, G, B int
}

// ParseHexColor parses "#RRGGBB" (leading '#' optional)
func ParseHexColor(s string) (RGB, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return RGB{}, fmt.Errorf("invalid hex color %q", s)
	}
	var c RGB
	if _, err := fmt.Sscanf(s, "%02x%02x%02x", &c.R, &c.G, &c.B); err != nil {
		return RGB{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	return c, nil
}

// HexColorOr parses a hex color, falling back to def on any error
func HexColorOr(s string, def RGB) RGB {
	c, err := ParseHexColor(s)
	if err != nil {
		return def
	}
	return c
}

// Alignment values as understood by gofpdf cell drawing
const (
	AlignLeft   = "L"
	AlignCenter = "C"
	AlignRight  = "R"
)

// TextStyle describes how a run of text is set. Size is in points,
// vertical measures are in millimeters.
type TextStyle struct {
	Size        float64
	LineHeight  float64
	Bold        bool
	Italic      bool
	Align       string
	Color       RGB
	SpaceBefore float64
	SpaceAfter  float64
}

func (s TextStyle) fontStyle() string {
	var b strings.Builder
	if s.Bold {
		b.WriteString("B")
	}
	if s.Italic {
		b.WriteString("I")
	}
	return b.String()
}

// WithAlign returns a copy of the style with a different alignment
func (s TextStyle) WithAlign(align string) TextStyle {
	s.Align = align
	return s
}

// Theme is the per-generation style table. It is constructed once per
// document from the design settings and threaded through every renderer;
// there is no process-wide style registry.
type Theme struct {
	Primary   RGB
	Secondary RGB
	Text      RGB
	Grey      RGB

	Title           TextStyle
	SectionTitle    TextStyle
	SubSectionTitle TextStyle
	ComponentTitle  TextStyle
	Normal          TextStyle
	NormalRight     TextStyle
	NormalCenter    TextStyle
	CoverLetter     TextStyle
	CompanyCover    TextStyle
	CustomerAddress TextStyle
	TableText       TextStyle
	TableTextSmall  TextStyle
	TableNumber     TextStyle
	TableLabel      TextStyle
	TableHeader     TextStyle
	TableBoldRight  TextStyle
	ImageCaption    TextStyle
	ChartTitle      TextStyle
	ChapterHeader   TextStyle
	Footer          TextStyle
}

// Default theme colors
const (
	DefaultPrimaryHex   = "#003366"
	DefaultSecondaryHex = "#4F81BD"
)

var (
	DefaultPrimary   = RGB{R: 0x00, G: 0x33, B: 0x66}
	DefaultSecondary = RGB{R: 0x4F, G: 0x81, B: 0xBD}
	DefaultText      = RGB{R: 0x33, G: 0x33, B: 0x33}
	greyColor        = RGB{R: 0x80, G: 0x80, B: 0x80}
	lightGrey        = RGB{R: 0xD3, G: 0xD3, B: 0xD3}
	whiteSmoke       = RGB{R: 0xF5, G: 0xF5, B: 0xF5}
)

// NewTheme builds the style table for the given accent colors
func NewTheme(primary, secondary RGB) *Theme {
	t := &Theme{
		Primary:   primary,
		Secondary: secondary,
		Text:      DefaultText,
		Grey:      greyColor,
	}
	t.Normal = TextStyle{Size: 10, LineHeight: 4.5, Align: AlignLeft, Color: t.Text}
	t.NormalRight = t.Normal.WithAlign(AlignRight)
	t.NormalCenter = t.Normal.WithAlign(AlignCenter)
	t.Title = TextStyle{Size: 18, LineHeight: 8, Bold: true, Align: AlignCenter, Color: primary, SpaceBefore: 10, SpaceAfter: 8}
	t.SectionTitle = TextStyle{Size: 14, LineHeight: 6.5, Bold: true, Align: AlignLeft, Color: primary, SpaceBefore: 8, SpaceAfter: 4}
	t.SubSectionTitle = TextStyle{Size: 12, LineHeight: 5.5, Bold: true, Align: AlignLeft, Color: secondary, SpaceBefore: 6, SpaceAfter: 3}
	t.ComponentTitle = TextStyle{Size: 11, LineHeight: 5, Bold: true, Align: AlignLeft, Color: t.Text, SpaceBefore: 4, SpaceAfter: 1}
	t.CoverLetter = TextStyle{Size: 11, LineHeight: 5.2, Align: AlignLeft, Color: t.Text, SpaceBefore: 1.5, SpaceAfter: 1.5}
	t.CompanyCover = TextStyle{Size: 9, LineHeight: 4.1, Align: AlignCenter, Color: t.Text, SpaceAfter: 5}
	t.CustomerAddress = TextStyle{Size: 10, LineHeight: 4.5, Align: AlignLeft, Color: t.Text, SpaceBefore: 5, SpaceAfter: 8}
	t.TableText = TextStyle{Size: 9, LineHeight: 4.1, Align: AlignLeft, Color: t.Text}
	t.TableTextSmall = TextStyle{Size: 8, LineHeight: 3.7, Align: AlignLeft, Color: t.Text}
	t.TableNumber = TextStyle{Size: 9, LineHeight: 4.1, Align: AlignRight, Color: t.Text}
	t.TableLabel = TextStyle{Size: 9, LineHeight: 4.1, Bold: true, Align: AlignLeft, Color: t.Text}
	t.TableHeader = TextStyle{Size: 9, LineHeight: 4.1, Bold: true, Align: AlignCenter, Color: whiteSmoke}
	t.TableBoldRight = TextStyle{Size: 9, LineHeight: 4.1, Bold: true, Align: AlignRight, Color: t.Text}
	t.ImageCaption = TextStyle{Size: 8, LineHeight: 3.7, Italic: true, Align: AlignCenter, Color: t.Grey, SpaceBefore: 1}
	t.ChartTitle = TextStyle{Size: 11, LineHeight: 5, Bold: true, Align: AlignCenter, Color: t.Text, SpaceBefore: 6, SpaceAfter: 2}
	t.ChapterHeader = TextStyle{Size: 9, LineHeight: 4.1, Align: AlignRight, Color: t.Grey}
	t.Footer = TextStyle{Size: 8, LineHeight: 3.7, Italic: true, Align: AlignCenter, Color: t.Grey}
	return t
}

// TableGridStyle configures border and fill behaviour of a table
type TableGridStyle struct {
	Grid         bool
	GridColor    RGB
	Padding      float64
	FirstColFill *RGB
	HeaderFill   *RGB
}

// DefaultKeyValueTable is the two-column label/value look: grid lines,
// light grey label column.
func (t *Theme) DefaultKeyValueTable() TableGridStyle {
	fill := lightGrey
	return TableGridStyle{Grid: true, GridColor: greyColor, Padding: 2, FirstColFill: &fill}
}

// DataTable is the look for multi-column data tables: grid lines and a
// secondary-colored header row.
func (t *Theme) DataTable() TableGridStyle {
	header := t.Secondary
	return TableGridStyle{Grid: true, GridColor: greyColor, Padding: 1.5, HeaderFill: &header}
}

// ProductTable is the borderless label/value look used for component
// detail tables.
func (t *Theme) ProductTable() TableGridStyle {
	return TableGridStyle{Grid: false, Padding: 1.5}
}

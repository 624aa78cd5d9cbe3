package pdf

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

// PageDecorator draws the repeating page chrome of an offer document:
// company logo bottom left, chapter title top right, a centered company
// line and a right-aligned footer with the page counter. The cover page
// stays clean, so page 1 is skipped entirely.
type PageDecorator struct {
	Geo   Geometry
	Theme *Theme

	Logo       []byte
	LogoFormat string
	LogoWidth  float64
	LogoHeight float64

	// PageInfoTemplate carries {current} and {total}; FooterTemplate
	// carries {page_info} with offer number and date already resolved.
	PageInfoTemplate string
	FooterTemplate   string
	CompanyFooter    string
}

func (d *PageDecorator) DecoratePage(doc *gofpdf.Fpdf, pageNum, totalPages int, chapter string) {
	if pageNum <= 1 {
		return
	}
	tr := doc.UnicodeTranslatorFromDescriptor("")
	geo := d.Geo
	contentW := geo.ContentWidth()

	if len(d.Logo) > 0 && d.LogoWidth > 0 && d.LogoHeight > 0 {
		opts := gofpdf.ImageOptions{ImageType: d.LogoFormat, ReadDpi: false}
		doc.RegisterImageOptionsReader("decorator-logo", opts, bytes.NewReader(d.Logo))
		logoY := geo.PageHeight - geo.MarginBottom*0.35 - d.LogoHeight
		doc.ImageOptions("decorator-logo", geo.MarginLeft, logoY, d.LogoWidth, d.LogoHeight, false, opts, 0, "")
	}

	if chapter != "" {
		st := d.Theme.ChapterHeader
		doc.SetFont("Helvetica", st.fontStyle(), st.Size)
		doc.SetTextColor(st.Color.R, st.Color.G, st.Color.B)
		doc.SetXY(geo.MarginLeft, geo.MarginTop-st.LineHeight-3)
		doc.CellFormat(contentW, st.LineHeight, tr(chapter), "", 0, "R", false, 0, "")
	}

	st := d.Theme.Footer
	doc.SetFont("Helvetica", st.fontStyle(), st.Size)
	doc.SetTextColor(st.Color.R, st.Color.G, st.Color.B)

	if d.CompanyFooter != "" {
		doc.SetXY(geo.MarginLeft, geo.PageHeight-geo.MarginBottom*0.75)
		doc.CellFormat(contentW, st.LineHeight, tr(d.CompanyFooter), "", 0, "C", false, 0, "")
	}

	footer := d.footerLine(pageNum, totalPages)
	if footer != "" {
		doc.SetXY(geo.MarginLeft, geo.PageHeight-geo.MarginBottom*0.45)
		doc.CellFormat(contentW, st.LineHeight, tr(footer), "", 0, "R", false, 0, "")
	}
}

func (d *PageDecorator) footerLine(pageNum, totalPages int) string {
	pageInfo := d.PageInfoTemplate
	pageInfo = strings.ReplaceAll(pageInfo, "{current}", strconv.Itoa(pageNum))
	pageInfo = strings.ReplaceAll(pageInfo, "{total}", strconv.Itoa(totalPages))
	if d.FooterTemplate == "" {
		return pageInfo
	}
	return strings.ReplaceAll(d.FooterTemplate, "{page_info}", pageInfo)
}

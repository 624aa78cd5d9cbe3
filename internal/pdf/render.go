package pdf

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

// Decorator draws per-page chrome (running header, footer, logo) after
// the page content. It receives the final page count, so footers can
// show "X von Y" without a second rendering pass.
type Decorator interface {
	DecoratePage(doc *gofpdf.Fpdf, pageNum, totalPages int, chapter string)
}

// DocInfo carries the document metadata written into the PDF catalog
type DocInfo struct {
	Title  string
	Author string
}

// Render draws flowed pages into a finished PDF. The decorator may be
// nil when no page chrome is wanted.
func Render(pages []*FlowedPage, geo Geometry, info DocInfo, dec Decorator) ([]byte, error) {
	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetAutoPageBreak(false, 0)
	doc.SetMargins(geo.MarginLeft, geo.MarginTop, geo.MarginRight)
	if info.Title != "" {
		doc.SetTitle(info.Title, true)
	}
	if info.Author != "" {
		doc.SetAuthor(info.Author, true)
	}
	tr := doc.UnicodeTranslatorFromDescriptor("")

	r := &renderer{doc: doc, tr: tr, family: "Helvetica"}
	total := len(pages)
	for i, page := range pages {
		doc.AddPage()
		for _, item := range page.items {
			r.drawItem(item, 0)
		}
		if dec != nil {
			dec.DecoratePage(doc, i+1, total, page.Chapter)
		}
	}

	if doc.Err() {
		return nil, fmt.Errorf("render pdf: %w", doc.Error())
	}
	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return buf.Bytes(), nil
}

type renderer struct {
	doc    *gofpdf.Fpdf
	tr     func(string) string
	family string
	imgSeq int
}

func (r *renderer) setFont(s TextStyle) {
	r.doc.SetFont(r.family, s.fontStyle(), s.Size)
	r.doc.SetTextColor(s.Color.R, s.Color.G, s.Color.B)
}

func (r *renderer) drawItem(item placedItem, yOff float64) {
	y := item.y + yOff
	switch {
	case item.para != nil:
		r.drawPara(item.para, y)
	case item.img != nil:
		r.drawImage(item.img, y)
	case item.table != nil:
		r.drawTable(item.table, y)
	case item.cols != nil:
		r.drawColumns(item.cols, y)
	}
}

func (r *renderer) drawPara(p *placedPara, y float64) {
	r.setFont(p.style)
	align := p.style.Align
	if align == "" {
		align = "L"
	}
	for _, line := range p.lines {
		r.doc.SetXY(p.x, y)
		r.doc.CellFormat(p.w, p.style.LineHeight, r.tr(line), "", 0, align, false, 0, "")
		y += p.style.LineHeight
	}
}

func (r *renderer) drawImage(img *placedImage, y float64) {
	r.imgSeq++
	name := fmt.Sprintf("img%d", r.imgSeq)
	opts := gofpdf.ImageOptions{ImageType: img.format, ReadDpi: false}
	r.doc.RegisterImageOptionsReader(name, opts, bytes.NewReader(img.data))
	r.doc.ImageOptions(name, img.x, y, img.w, img.h, false, opts, 0, "")
}

func (r *renderer) drawTable(t *placedTable, y float64) {
	grid := t.style.Grid
	if grid {
		gc := t.style.GridColor
		r.doc.SetDrawColor(gc.R, gc.G, gc.B)
		r.doc.SetLineWidth(0.2)
	}
	pad := t.style.Padding
	for _, row := range t.rows {
		x := t.x
		for _, cell := range row.cells {
			if cell.fill != nil {
				r.doc.SetFillColor(cell.fill.R, cell.fill.G, cell.fill.B)
			}
			switch {
			case grid && cell.fill != nil:
				r.doc.Rect(x, y, cell.w, row.h, "FD")
			case grid:
				r.doc.Rect(x, y, cell.w, row.h, "D")
			case cell.fill != nil:
				r.doc.Rect(x, y, cell.w, row.h, "F")
			}
			r.setFont(cell.style)
			align := cell.style.Align
			if align == "" {
				align = "L"
			}
			lineY := y + pad
			for _, line := range cell.lines {
				r.doc.SetXY(x+pad, lineY)
				r.doc.CellFormat(cell.w-2*pad, cell.style.LineHeight, r.tr(line), "", 0, align, false, 0, "")
				lineY += cell.style.LineHeight
			}
			x += cell.w
		}
		y += row.h
	}
}

func (r *renderer) drawColumns(c *placedColumns, y float64) {
	for _, item := range c.left {
		r.drawItem(item, y)
	}
	// the right side is clipped so an oversized image cannot bleed
	// into whatever flows below the pair
	r.doc.ClipRect(c.rightX, y, c.rightW, c.h, false)
	for _, item := range c.right {
		r.drawItem(item, y)
	}
	r.doc.ClipEnd()
}

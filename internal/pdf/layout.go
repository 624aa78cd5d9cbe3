package pdf

import (
	"strings"

	"github.com/jung-kurt/gofpdf"
)

// Geometry fixes the page box and margins for one document, in mm
type Geometry struct {
	PageWidth    float64
	PageHeight   float64
	MarginLeft   float64
	MarginRight  float64
	MarginTop    float64
	MarginBottom float64
}

// A4Geometry returns the offer document page setup
func A4Geometry() Geometry {
	return Geometry{
		PageWidth:    210,
		PageHeight:   297,
		MarginLeft:   20,
		MarginRight:  20,
		MarginTop:    25,
		MarginBottom: 25,
	}
}

// ContentWidth is the usable width between margins
func (g Geometry) ContentWidth() float64 {
	return g.PageWidth - g.MarginLeft - g.MarginRight
}

// ContentHeight is the usable height between margins
func (g Geometry) ContentHeight() float64 {
	return g.PageHeight - g.MarginTop - g.MarginBottom
}

func (g Geometry) contentBottom() float64 {
	return g.PageHeight - g.MarginBottom
}

// FlowedPage is the phase-1 result for one page: its placed content and
// the chapter title the running header should show. The chapter is the
// one most recently started by the time the page is complete.
type FlowedPage struct {
	Chapter string
	items   []placedItem
}

// ItemCount reports how many placed items the page holds
func (p *FlowedPage) ItemCount() int {
	return len(p.items)
}

type placedItem struct {
	y     float64
	para  *placedPara
	img   *placedImage
	table *placedTable
	cols  *placedColumns
}

type placedPara struct {
	x     float64
	w     float64
	lines []string
	style TextStyle
}

type placedImage struct {
	data    []byte
	format  string
	x, w, h float64
}

type placedTable struct {
	x     float64
	colW  []float64
	style TableGridStyle
	rows  []placedRow
}

type placedRow struct {
	h     float64
	cells []placedCell
}

type placedCell struct {
	w     float64
	lines []string
	style TextStyle
	fill  *RGB
}

type placedColumns struct {
	left   []placedItem
	right  []placedItem
	rightX float64
	rightW float64
	h      float64
}

// Paginator flows blocks into pages using real font metrics from a
// measurement-only gofpdf instance. It performs no drawing.
type Paginator struct {
	geo     Geometry
	doc     *gofpdf.Fpdf
	family  string
	pages   []*FlowedPage
	cur     *FlowedPage
	y       float64
	chapter string
}

// NewPaginator creates a paginator for the given geometry
func NewPaginator(geo Geometry) *Paginator {
	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetAutoPageBreak(false, 0)
	return &Paginator{geo: geo, doc: doc, family: "Helvetica"}
}

// Paginate flows the block list into pages. Trailing empty pages are
// dropped; the result always contains at least one page.
func (p *Paginator) Paginate(blocks []Block) []*FlowedPage {
	p.pages = nil
	p.cur = nil
	p.chapter = ""
	p.newPage()

	for _, b := range blocks {
		switch blk := b.(type) {
		case Paragraph:
			p.flowParagraph(blk)
		case Spacer:
			p.flowSpacer(blk.Height)
		case PageBreak:
			if len(p.cur.items) > 0 {
				p.newPage()
			}
		case ChapterMark:
			p.chapter = blk.Title
			p.cur.Chapter = blk.Title
		case Image:
			p.flowImage(blk)
		case Table:
			p.flowTable(blk)
		case Columns:
			p.flowColumns(blk)
		}
	}

	if len(p.pages) > 1 && len(p.pages[len(p.pages)-1].items) == 0 {
		p.pages = p.pages[:len(p.pages)-1]
	}
	return p.pages
}

func (p *Paginator) newPage() {
	p.cur = &FlowedPage{Chapter: p.chapter}
	p.pages = append(p.pages, p.cur)
	p.y = p.geo.MarginTop
}

func (p *Paginator) remaining() float64 {
	return p.geo.contentBottom() - p.y
}

func (p *Paginator) atPageTop() bool {
	return len(p.cur.items) == 0
}

func (p *Paginator) setFont(s TextStyle) {
	p.doc.SetFont(p.family, s.fontStyle(), s.Size)
}

func (p *Paginator) wrap(text string, width float64, s TextStyle) []string {
	p.setFont(s)
	if text == "" {
		return []string{""}
	}
	var lines []string
	for _, seg := range strings.Split(text, "\n") {
		if seg == "" {
			lines = append(lines, "")
			continue
		}
		lines = append(lines, p.doc.SplitText(seg, width)...)
	}
	return lines
}

func (p *Paginator) flowParagraph(blk Paragraph) {
	x := p.geo.MarginLeft
	w := p.geo.ContentWidth()
	lines := p.wrap(blk.Text, w, blk.Style)

	if !p.atPageTop() {
		p.y += blk.Style.SpaceBefore
	}
	for len(lines) > 0 {
		fit := int(p.remaining() / blk.Style.LineHeight)
		if fit <= 0 {
			p.newPage()
			continue
		}
		take := fit
		if take > len(lines) {
			take = len(lines)
		}
		p.cur.items = append(p.cur.items, placedItem{
			y:    p.y,
			para: &placedPara{x: x, w: w, lines: lines[:take], style: blk.Style},
		})
		p.y += float64(take) * blk.Style.LineHeight
		lines = lines[take:]
	}
	p.y += blk.Style.SpaceAfter
}

func (p *Paginator) flowSpacer(h float64) {
	p.y += h
	if p.y >= p.geo.contentBottom() {
		p.newPage()
	}
}

func (p *Paginator) flowImage(blk Image) {
	w, h := blk.Width, blk.Height
	// scale down anything taller than a full content box
	if h > p.geo.ContentHeight() {
		scale := p.geo.ContentHeight() / h
		h *= scale
		w *= scale
	}
	if h > p.remaining() && !p.atPageTop() {
		p.newPage()
	}
	x := p.geo.MarginLeft
	switch blk.Align {
	case AlignCenter:
		x = p.geo.MarginLeft + (p.geo.ContentWidth()-w)/2
	case AlignRight:
		x = p.geo.PageWidth - p.geo.MarginRight - w
	}
	p.cur.items = append(p.cur.items, placedItem{
		y:   p.y,
		img: &placedImage{data: blk.Data, format: blk.Format, x: x, w: w, h: h},
	})
	p.y += h
}

func (p *Paginator) layoutRow(cells []Cell, colW []float64, style TableGridStyle, rowIdx int) placedRow {
	pad := style.Padding
	row := placedRow{}
	for i, c := range cells {
		w := colW[i]
		lines := p.wrap(c.Text, w-2*pad, c.Style)
		h := float64(len(lines))*c.Style.LineHeight + 2*pad
		if h > row.h {
			row.h = h
		}
		fill := c.Fill
		if fill == nil {
			switch {
			case rowIdx == 0 && style.HeaderFill != nil:
				fill = style.HeaderFill
			case i == 0 && style.FirstColFill != nil:
				fill = style.FirstColFill
			}
		}
		row.cells = append(row.cells, placedCell{w: w, lines: lines, style: c.Style, fill: fill})
	}
	return row
}

func (p *Paginator) tableColumnWidths(blk Table, tableW float64) []float64 {
	cols := 0
	for _, r := range blk.Rows {
		if len(r) > cols {
			cols = len(r)
		}
	}
	colW := make([]float64, cols)
	if len(blk.ColFracs) == cols {
		for i, f := range blk.ColFracs {
			colW[i] = f * tableW
		}
	} else {
		for i := range colW {
			colW[i] = tableW / float64(cols)
		}
	}
	return colW
}

func (p *Paginator) flowTable(blk Table) {
	if len(blk.Rows) == 0 {
		return
	}
	widthFrac := blk.WidthFrac
	if widthFrac <= 0 || widthFrac > 1 {
		widthFrac = 1
	}
	tableW := widthFrac * p.geo.ContentWidth()
	colW := p.tableColumnWidths(blk, tableW)

	rows := make([]placedRow, 0, len(blk.Rows))
	for i, r := range blk.Rows {
		rows = append(rows, p.layoutRow(r, colW, blk.Style, i))
	}
	var header *placedRow
	if blk.RepeatHeader {
		header = &rows[0]
	}

	cur := &placedTable{x: p.geo.MarginLeft, colW: colW, style: blk.Style}
	curItem := placedItem{y: p.y, table: cur}
	flush := func() {
		if len(cur.rows) > 0 {
			p.cur.items = append(p.cur.items, curItem)
		}
	}
	for i := 0; i < len(rows); i++ {
		row := rows[i]
		if row.h > p.remaining() && !p.atPageTop() {
			flush()
			p.newPage()
			cur = &placedTable{x: p.geo.MarginLeft, colW: colW, style: blk.Style}
			curItem = placedItem{y: p.y, table: cur}
			if header != nil && i > 0 {
				cur.rows = append(cur.rows, *header)
				p.y += header.h
			}
		}
		cur.rows = append(cur.rows, row)
		p.y += row.h
	}
	flush()
}

// layoutStack lays out a block stack at a fixed x/width without page
// breaking, returning items positioned relative to the stack top.
// Supports the block kinds that appear inside column pairs.
func (p *Paginator) layoutStack(blocks []Block, x, w float64) ([]placedItem, float64) {
	var items []placedItem
	y := 0.0
	for _, b := range blocks {
		switch blk := b.(type) {
		case Paragraph:
			y += blk.Style.SpaceBefore
			lines := p.wrap(blk.Text, w, blk.Style)
			items = append(items, placedItem{
				y:    y,
				para: &placedPara{x: x, w: w, lines: lines, style: blk.Style},
			})
			y += float64(len(lines))*blk.Style.LineHeight + blk.Style.SpaceAfter
		case Spacer:
			y += blk.Height
		case Image:
			iw, ih := blk.Width, blk.Height
			if iw > w && iw > 0 {
				scale := w / iw
				iw *= scale
				ih *= scale
			}
			ix := x
			if blk.Align == AlignCenter {
				ix = x + (w-iw)/2
			}
			items = append(items, placedItem{
				y:   y,
				img: &placedImage{data: blk.Data, format: blk.Format, x: ix, w: iw, h: ih},
			})
			y += ih
		case Table:
			colW := p.tableColumnWidths(blk, w)
			t := &placedTable{x: x, colW: colW, style: blk.Style}
			for i, r := range blk.Rows {
				row := p.layoutRow(r, colW, blk.Style, i)
				t.rows = append(t.rows, row)
			}
			items = append(items, placedItem{y: y, table: t})
			for _, r := range t.rows {
				y += r.h
			}
		}
	}
	return items, y
}

func (p *Paginator) flowColumns(blk Columns) {
	leftFrac := blk.LeftFrac
	if leftFrac <= 0 || leftFrac >= 1 {
		leftFrac = 0.62
	}
	gutter := blk.GutterFrac
	if gutter < 0 {
		gutter = 0.03
	}
	contentW := p.geo.ContentWidth()
	leftW := leftFrac * contentW
	rightW := (1 - leftFrac - gutter) * contentW
	leftX := p.geo.MarginLeft
	rightX := leftX + leftW + gutter*contentW

	left, leftH := p.layoutStack(blk.Left, leftX, leftW)
	right, rightH := p.layoutStack(blk.Right, rightX, rightW)
	if blk.MaxRightHeight > 0 && rightH > blk.MaxRightHeight {
		rightH = blk.MaxRightHeight
	}
	h := leftH
	if rightH > h {
		h = rightH
	}

	if h > p.remaining() && !p.atPageTop() {
		p.newPage()
	}
	p.cur.items = append(p.cur.items, placedItem{
		y:    p.y,
		cols: &placedColumns{left: left, right: right, rightX: rightX, rightW: rightW, h: h},
	})
	p.y += h
}

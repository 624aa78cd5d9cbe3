package pdf

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testStyle = TextStyle{Size: 10, LineHeight: 5, Align: AlignLeft}

func TestA4Geometry(t *testing.T) {
	geo := A4Geometry()
	assert.Equal(t, 170.0, geo.ContentWidth())
	assert.Equal(t, 247.0, geo.ContentHeight())
}

func TestPaginateEmptyInput(t *testing.T) {
	pages := NewPaginator(A4Geometry()).Paginate(nil)
	require.Len(t, pages, 1)
	assert.Zero(t, pages[0].ItemCount())
}

func TestPaginateParagraphSpansPages(t *testing.T) {
	geo := A4Geometry()
	// 60 explicit lines at 5mm exceed the 247mm content height
	text := strings.TrimSuffix(strings.Repeat("Zeile\n", 60), "\n")

	pages := NewPaginator(geo).Paginate([]Block{Paragraph{Text: text, Style: testStyle}})
	require.Len(t, pages, 2)

	first := pages[0].items[0].para
	second := pages[1].items[0].para
	assert.Len(t, first.lines, 49, "247mm room holds 49 lines of 5mm")
	assert.Len(t, second.lines, 11)
	assert.Equal(t, geo.MarginTop, pages[0].items[0].y)
	assert.Equal(t, geo.MarginTop, pages[1].items[0].y)
}

func TestPaginateBlankLinesSurviveWrapping(t *testing.T) {
	pages := NewPaginator(A4Geometry()).Paginate([]Block{
		Paragraph{Text: "erster Absatz\n\nzweiter Absatz", Style: testStyle},
	})
	require.Len(t, pages, 1)
	lines := pages[0].items[0].para.lines
	require.Len(t, lines, 3)
	assert.Equal(t, "", lines[1])
}

func TestPaginatePageBreak(t *testing.T) {
	t.Run("splits content", func(t *testing.T) {
		pages := NewPaginator(A4Geometry()).Paginate([]Block{
			Paragraph{Text: "Seite eins", Style: testStyle},
			PageBreak{},
			Paragraph{Text: "Seite zwei", Style: testStyle},
		})
		require.Len(t, pages, 2)
		assert.Equal(t, 1, pages[0].ItemCount())
		assert.Equal(t, 1, pages[1].ItemCount())
	})

	t.Run("ignored on an empty page", func(t *testing.T) {
		pages := NewPaginator(A4Geometry()).Paginate([]Block{
			PageBreak{},
			PageBreak{},
			Paragraph{Text: "Inhalt", Style: testStyle},
		})
		assert.Len(t, pages, 1)
	})

	t.Run("trailing empty page dropped", func(t *testing.T) {
		pages := NewPaginator(A4Geometry()).Paginate([]Block{
			Paragraph{Text: "Inhalt", Style: testStyle},
			PageBreak{},
		})
		assert.Len(t, pages, 1)
	})
}

func TestPaginateChapterMarks(t *testing.T) {
	pages := NewPaginator(A4Geometry()).Paginate([]Block{
		ChapterMark{Title: "Anschreiben"},
		Paragraph{Text: "Brief", Style: testStyle},
		PageBreak{},
		ChapterMark{Title: "Komponenten"},
		Paragraph{Text: "Module", Style: testStyle},
		PageBreak{},
		Paragraph{Text: "ohne neues Kapitel", Style: testStyle},
	})
	require.Len(t, pages, 3)
	assert.Equal(t, "Anschreiben", pages[0].Chapter)
	assert.Equal(t, "Komponenten", pages[1].Chapter)
	assert.Equal(t, "Komponenten", pages[2].Chapter, "chapter carries over until the next mark")
}

func TestPaginateSpacerBreaksAtPageBottom(t *testing.T) {
	pages := NewPaginator(A4Geometry()).Paginate([]Block{
		Paragraph{Text: "oben", Style: testStyle},
		Spacer{Height: 300},
		Paragraph{Text: "unten", Style: testStyle},
	})
	require.Len(t, pages, 2)
	assert.Equal(t, 1, pages[1].ItemCount())
}

func TestFlowTableRepeatsHeaderAfterSplit(t *testing.T) {
	style := TableGridStyle{Padding: 1}
	header := []Cell{{Text: "Jahr", Style: testStyle}, {Text: "Wert", Style: testStyle}}
	rows := [][]Cell{header}
	for i := 0; i < 60; i++ {
		rows = append(rows, []Cell{{Text: "x", Style: testStyle}, {Text: "y", Style: testStyle}})
	}

	pages := NewPaginator(A4Geometry()).Paginate([]Block{
		Table{Rows: rows, RepeatHeader: true, Style: style},
	})
	require.Len(t, pages, 2)

	second := pages[1].items[0].table
	require.NotEmpty(t, second.rows)
	assert.Equal(t, []string{"Jahr"}, second.rows[0].cells[0].lines)
}

func TestTableColumnWidths(t *testing.T) {
	p := NewPaginator(A4Geometry())

	t.Run("explicit fractions", func(t *testing.T) {
		blk := Table{
			Rows:     [][]Cell{{{Text: "a"}, {Text: "b"}}},
			ColFracs: []float64{0.6, 0.4},
		}
		assert.Equal(t, []float64{60, 40}, p.tableColumnWidths(blk, 100))
	})

	t.Run("even split without fractions", func(t *testing.T) {
		blk := Table{Rows: [][]Cell{{{Text: "a"}, {Text: "b"}, {Text: "c"}, {Text: "d"}}}}
		assert.Equal(t, []float64{25, 25, 25, 25}, p.tableColumnWidths(blk, 100))
	})
}

func TestFlowImage(t *testing.T) {
	t.Run("oversized image scaled to content height", func(t *testing.T) {
		geo := A4Geometry()
		pages := NewPaginator(geo).Paginate([]Block{
			Image{Width: 100, Height: 494, Align: AlignLeft},
		})
		require.Len(t, pages, 1)
		img := pages[0].items[0].img
		assert.InDelta(t, 247, img.h, 0.001)
		assert.InDelta(t, 50, img.w, 0.001)
	})

	t.Run("centered image x position", func(t *testing.T) {
		geo := A4Geometry()
		pages := NewPaginator(geo).Paginate([]Block{
			Image{Width: 70, Height: 40, Align: AlignCenter},
		})
		img := pages[0].items[0].img
		assert.InDelta(t, geo.MarginLeft+(geo.ContentWidth()-70)/2, img.x, 0.001)
	})

	t.Run("image pushed to next page when it no longer fits", func(t *testing.T) {
		pages := NewPaginator(A4Geometry()).Paginate([]Block{
			Paragraph{Text: strings.TrimSuffix(strings.Repeat("x\n", 40), "\n"), Style: testStyle},
			Image{Width: 100, Height: 100},
		})
		require.Len(t, pages, 2)
		require.NotNil(t, pages[1].items[0].img)
	})
}

func TestFlowColumnsStaysTogether(t *testing.T) {
	filler := Paragraph{Text: strings.TrimSuffix(strings.Repeat("x\n", 45), "\n"), Style: testStyle}
	pair := Columns{
		Left:           []Block{Paragraph{Text: "Tabelle", Style: testStyle}},
		Right:          []Block{Image{Width: 40, Height: 80}},
		LeftFrac:       0.62,
		GutterFrac:     0.03,
		MaxRightHeight: 60,
	}

	pages := NewPaginator(A4Geometry()).Paginate([]Block{filler, pair})
	require.Len(t, pages, 2, "the pair moves to a fresh page instead of splitting")

	cols := pages[1].items[0].cols
	require.NotNil(t, cols)
	assert.InDelta(t, 60, cols.h, 0.001, "right stack clipped to its height cap")
}

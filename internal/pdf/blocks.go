package pdf

// Block is one unit of flowing document content
type Block interface {
	blockNode()
}

// Paragraph is a run of wrapped text in a single style
type Paragraph struct {
	Text  string
	Style TextStyle
}

// Spacer inserts fixed vertical whitespace
type Spacer struct {
	Height float64
}

// PageBreak forces the following content onto a fresh page
type PageBreak struct{}

// ChapterMark is a zero-height annotation: from the page it lands on
// onward, the running header shows Title. It draws nothing itself.
type ChapterMark struct {
	Title string
}

// Image places a raster image with a pre-computed display size.
// Format is the gofpdf image type ("PNG", "JPG", "GIF").
type Image struct {
	Data   []byte
	Format string
	Width  float64
	Height float64
	Align  string
}

// Cell is one table cell
type Cell struct {
	Text  string
	Style TextStyle
	Fill  *RGB
}

// Table is a grid of cells. ColFracs are fractions of the table width
// and must sum to 1; a nil value distributes columns evenly.
// When RepeatHeader is set the first row is re-drawn after a page split.
type Table struct {
	Rows         [][]Cell
	ColFracs     []float64
	WidthFrac    float64
	RepeatHeader bool
	Style        TableGridStyle
}

// Columns places two block stacks side by side (detail table next to a
// product photo). The pair is kept together: it never splits across a
// page boundary, and the right stack is clipped to MaxRightHeight.
type Columns struct {
	Left           []Block
	Right          []Block
	LeftFrac       float64
	GutterFrac     float64
	MaxRightHeight float64
}

func (Paragraph) blockNode()   {}
func (Spacer) blockNode()      {}
func (PageBreak) blockNode()   {}
func (ChapterMark) blockNode() {}
func (Image) blockNode()       {}
func (Table) blockNode()       {}
func (Columns) blockNode()     {}

package offer

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sunline-energie/offer-api/internal/domain"
	"github.com/sunline-energie/offer-api/internal/pdf"
)

type fakeDocuments struct {
	docs []domain.CompanyDocument
	err  error
}

func (f *fakeDocuments) ListCompanyDocuments(_ context.Context, companyID int64, documentType string) ([]domain.CompanyDocument, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []domain.CompanyDocument
	for _, d := range f.docs {
		if d.CompanyID != companyID {
			continue
		}
		if documentType != "" && d.DocumentType != documentType {
			continue
		}
		out = append(out, d)
	}
	return out, nil
}

func writeFile(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("dummy"), 0o644))
	return path
}

func newMergeGenerator(products ProductLookup, documents DocumentLookup, datasheetDir, companyDocsDir string) *Generator {
	return NewGenerator(GeneratorParams{
		Products:           products,
		Settings:           newMemSettings(),
		Documents:          documents,
		DatasheetBaseDir:   datasheetDir,
		CompanyDocsBaseDir: companyDocsDir,
		Logger:             zap.NewNop(),
	})
}

func TestDatasheetPaths(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "module.pdf")
	writeFile(t, dir, "wallbox.pdf")

	moduleID, inverterID, storageID := int64(1), int64(2), int64(1)
	wallboxID, emsID := int64(4), int64(5)
	products := &fakeProducts{products: map[int64]*domain.Product{
		1: {ID: 1, DatasheetPath: "module.pdf"},
		2: {ID: 2, DatasheetPath: "missing.pdf"},
		4: {ID: 4, DatasheetPath: "wallbox.pdf"},
		5: {ID: 5}, // no datasheet registered
	}}
	g := newMergeGenerator(products, &fakeDocuments{}, dir, "")
	issues := &issueList{}

	details := domain.ProjectDetails{
		SelectedModuleID:            &moduleID,
		SelectedInverterID:          &inverterID,
		IncludeStorage:              true,
		SelectedStorageID:           &storageID, // same product as the module
		IncludeAdditionalComponents: true,
		SelectedWallboxID:           &wallboxID,
		SelectedEMSID:               &emsID,
	}

	paths := g.datasheetPaths(context.Background(), details, issues)
	assert.Equal(t, []string{
		filepath.Join(dir, "module.pdf"),
		filepath.Join(dir, "wallbox.pdf"),
	}, paths)
	assert.Empty(t, issues.issues)
}

func TestDatasheetPathsSkipsOptionalComponentsWhenDisabled(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "wallbox.pdf")

	wallboxID := int64(4)
	products := &fakeProducts{products: map[int64]*domain.Product{
		4: {ID: 4, DatasheetPath: "wallbox.pdf"},
	}}
	g := newMergeGenerator(products, &fakeDocuments{}, dir, "")

	details := domain.ProjectDetails{SelectedWallboxID: &wallboxID}
	paths := g.datasheetPaths(context.Background(), details, &issueList{})
	assert.Empty(t, paths)
}

func TestDatasheetPathsLookupFailureIsContained(t *testing.T) {
	moduleID := int64(1)
	g := newMergeGenerator(&fakeProducts{err: errors.New("timeout")}, &fakeDocuments{}, t.TempDir(), "")
	issues := &issueList{}

	paths := g.datasheetPaths(context.Background(), domain.ProjectDetails{SelectedModuleID: &moduleID}, issues)
	assert.Empty(t, paths)
	require.Len(t, issues.issues, 1)
	assert.Equal(t, "appendix", issues.issues[0].Stage)
	assert.Contains(t, issues.issues[0].Message, "timeout")
}

func TestCompanyDocumentPaths(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "company-7/agb.pdf")

	docs := &fakeDocuments{docs: []domain.CompanyDocument{
		{ID: 10, CompanyID: 7, RelativePath: "company-7/agb.pdf"},
		{ID: 11, CompanyID: 7, RelativePath: "company-7/gone.pdf"},
		{ID: 12, CompanyID: 7, RelativePath: "company-7/unselected.pdf"},
	}}
	g := newMergeGenerator(&fakeProducts{}, docs, "", dir)
	issues := &issueList{}

	paths := g.companyDocumentPaths(context.Background(), 7, []int64{10, 11}, issues)
	assert.Equal(t, []string{filepath.Join(dir, "company-7/agb.pdf")}, paths)
	assert.Empty(t, issues.issues)
}

func TestCompanyDocumentPathsEdgeCases(t *testing.T) {
	g := newMergeGenerator(&fakeProducts{}, &fakeDocuments{err: errors.New("db down")}, "", t.TempDir())

	t.Run("nothing selected", func(t *testing.T) {
		issues := &issueList{}
		assert.Nil(t, g.companyDocumentPaths(context.Background(), 7, nil, issues))
		assert.Empty(t, issues.issues)
	})

	t.Run("no company scope", func(t *testing.T) {
		issues := &issueList{}
		assert.Nil(t, g.companyDocumentPaths(context.Background(), 0, []int64{10}, issues))
		assert.Empty(t, issues.issues)
	})

	t.Run("listing failure recorded", func(t *testing.T) {
		issues := &issueList{}
		assert.Nil(t, g.companyDocumentPaths(context.Background(), 7, []int64{10}, issues))
		require.Len(t, issues.issues, 1)
		assert.Contains(t, issues.issues[0].Message, "db down")
	})
}

// renderFixturePDF builds a small real document with the given number
// of pages, for exercising the merge against actual PDF input.
func renderFixturePDF(t *testing.T, pageCount int, text string) []byte {
	t.Helper()
	style := pdf.TextStyle{Size: 10, LineHeight: 4.5}
	var blocks []pdf.Block
	for i := 0; i < pageCount; i++ {
		if i > 0 {
			blocks = append(blocks, pdf.PageBreak{})
		}
		blocks = append(blocks, pdf.Paragraph{Text: text, Style: style})
	}
	geo := pdf.A4Geometry()
	out, err := pdf.Render(pdf.NewPaginator(geo).Paginate(blocks), geo, pdf.DocInfo{}, nil)
	require.NoError(t, err)
	return out
}

func pdfPageCount(t *testing.T, doc []byte) int {
	t.Helper()
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	n, err := api.PageCount(bytes.NewReader(doc), conf)
	require.NoError(t, err)
	return n
}

func TestAppendDocumentsMergesAppendices(t *testing.T) {
	dir := t.TempDir()
	main := renderFixturePDF(t, 2, "Hauptdokument")
	datasheet := filepath.Join(dir, "datenblatt.pdf")
	agb := filepath.Join(dir, "agb.pdf")
	require.NoError(t, os.WriteFile(datasheet, renderFixturePDF(t, 3, "Datenblatt"), 0o644))
	require.NoError(t, os.WriteFile(agb, renderFixturePDF(t, 1, "AGB"), 0o644))

	merged, err := AppendDocuments(main, []string{datasheet, agb})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(merged, []byte("%PDF-")))
	assert.Equal(t, 6, pdfPageCount(t, merged))

	// a vanished appendix is skipped, the rest still merges
	require.NoError(t, os.Remove(datasheet))
	merged, err = AppendDocuments(main, []string{datasheet, agb})
	require.NoError(t, err)
	assert.Equal(t, 3, pdfPageCount(t, merged))
}

func TestAppendDocumentsWithoutAppendices(t *testing.T) {
	main := []byte("%PDF-1.4 main document")

	out, err := AppendDocuments(main, nil)
	require.NoError(t, err)
	assert.Equal(t, main, out)

	// unreadable paths are skipped, leaving nothing to merge
	out, err = AppendDocuments(main, []string{filepath.Join(t.TempDir(), "nope.pdf")})
	require.NoError(t, err)
	assert.Equal(t, main, out)
}

func TestAppendDocumentsRejectsCorruptInput(t *testing.T) {
	dir := t.TempDir()
	garbage := writeFile(t, dir, "broken.pdf")

	_, err := AppendDocuments([]byte("not a pdf either"), []string{garbage})
	assert.Error(t, err)
}

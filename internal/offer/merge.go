package offer

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"go.uber.org/zap"

	"github.com/sunline-energie/offer-api/internal/domain"
)

// appendCompanionDocuments concatenates product datasheets and selected
// company documents onto the rendered offer. The whole step is best
// effort: unreadable or missing files are skipped and a merge failure
// returns the offer unchanged.
func (g *Generator) appendCompanionDocuments(ctx context.Context, document []byte, input GenerateInput, issues *issueList) []byte {
	paths := g.datasheetPaths(ctx, input.Project.ProjectDetails, issues)
	paths = append(paths, g.companyDocumentPaths(ctx, input.CompanyID, input.Options.CompanyDocumentIDs, issues)...)
	if len(paths) == 0 {
		return document
	}

	merged, err := AppendDocuments(document, paths)
	if err != nil {
		g.logger.Warn("appendix merge failed, keeping offer without appendices",
			zap.Int("documents", len(paths)), zap.Error(err))
		issues.add("appendix", "merge failed: %v", err)
		return document
	}
	return merged
}

// datasheetPaths resolves the datasheet files of every selected
// component, deduplicated and filtered to files that exist on disk.
func (g *Generator) datasheetPaths(ctx context.Context, details domain.ProjectDetails, issues *issueList) []string {
	ids := []*int64{details.SelectedModuleID, details.SelectedInverterID}
	if details.IncludeStorage {
		ids = append(ids, details.SelectedStorageID)
	}
	if details.IncludeAdditionalComponents {
		ids = append(ids,
			details.SelectedWallboxID,
			details.SelectedEMSID,
			details.SelectedOptimizerID,
			details.SelectedCarportID,
			details.SelectedEmergencyPowerID,
			details.SelectedAnimalDefenseID,
		)
	}

	seen := make(map[int64]bool)
	var paths []string
	for _, id := range ids {
		if id == nil || seen[*id] {
			continue
		}
		seen[*id] = true
		product, err := g.products.ByID(ctx, *id)
		if err != nil {
			issues.add("appendix", "datasheet lookup for product %d: %v", *id, err)
			continue
		}
		if product.DatasheetPath == "" {
			continue
		}
		full := filepath.Join(g.datasheetBaseDir, product.DatasheetPath)
		if fileExists(full) {
			paths = append(paths, full)
		}
	}
	return paths
}

// companyDocumentPaths resolves the selected company documents to
// existing files under the company docs directory.
func (g *Generator) companyDocumentPaths(ctx context.Context, companyID int64, selectedIDs []int64, issues *issueList) []string {
	if len(selectedIDs) == 0 || companyID == 0 {
		return nil
	}
	docs, err := g.documents.ListCompanyDocuments(ctx, companyID, "")
	if err != nil {
		issues.add("appendix", "company documents for company %d: %v", companyID, err)
		return nil
	}
	wanted := make(map[int64]bool, len(selectedIDs))
	for _, id := range selectedIDs {
		wanted[id] = true
	}
	var paths []string
	for _, doc := range docs {
		if !wanted[doc.ID] || doc.RelativePath == "" {
			continue
		}
		full := filepath.Join(g.companyDocsBaseDir, doc.RelativePath)
		if fileExists(full) {
			paths = append(paths, full)
		}
	}
	return paths
}

// AppendDocuments concatenates the PDFs at the given paths onto main.
// Files that cannot be opened are skipped; a failing merge is an error
// and the caller keeps the unmerged document.
func AppendDocuments(main []byte, paths []string) ([]byte, error) {
	readers := []io.ReadSeeker{bytes.NewReader(main)}
	var closers []io.Closer
	defer func() {
		for _, c := range closers {
			c.Close()
		}
	}()
	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			continue
		}
		closers = append(closers, f)
		readers = append(readers, f)
	}
	if len(readers) == 1 {
		return main, nil
	}

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	var out bytes.Buffer
	if err := api.MergeRaw(readers, &out, false, conf); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

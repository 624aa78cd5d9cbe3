package offer

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sunline-energie/offer-api/internal/domain"
	"github.com/sunline-energie/offer-api/internal/pdf"
)

func newTestGenerator(settings *memSettings) *Generator {
	g := NewGenerator(GeneratorParams{
		Products:  &fakeProducts{},
		Settings:  settings,
		Documents: &fakeDocuments{},
		Logger:    zap.NewNop(),
	})
	g.now = fixedClock(time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC))
	return g
}

func TestGenerateProducesDocument(t *testing.T) {
	g := newTestGenerator(newMemSettings())

	var gotInfo pdf.DocInfo
	var gotPages int
	g.renderFunc = func(pages []*pdf.FlowedPage, _ pdf.Geometry, info pdf.DocInfo, _ pdf.Decorator) ([]byte, error) {
		gotInfo = info
		gotPages = len(pages)
		return []byte("%PDF-rendered"), nil
	}

	result, err := g.Generate(context.Background(), GenerateInput{
		Project: domain.ProjectData{Customer: domain.CustomerData{
			Salutation: "Herr", FirstName: "Max", LastName: "Mustermann",
		}},
		Analysis: &domain.AnalysisResults{KPIs: map[string]float64{"anlage_kwp": 9.84}},
		Company:  domain.CompanyInfo{Name: "Sunline Energie GmbH"},
		Sections: []string{domain.SectionCO2Savings},
	})
	require.NoError(t, err)

	assert.Equal(t, []byte("%PDF-rendered"), result.Document)
	assert.Equal(t, "AN2026-1001", result.OfferNumber)
	assert.False(t, result.Fallback)
	assert.Empty(t, result.Issues)

	assert.Equal(t, "Angebot: Photovoltaikanlage", gotInfo.Title)
	assert.Equal(t, "Sunline Energie GmbH", gotInfo.Author)
	assert.Greater(t, gotPages, 1, "cover page and letter break onto separate pages")
}

func TestGenerateNilSectionsRendersFullUniverse(t *testing.T) {
	g := newTestGenerator(newMemSettings())
	g.renderFunc = func([]*pdf.FlowedPage, pdf.Geometry, pdf.DocInfo, pdf.Decorator) ([]byte, error) {
		return []byte("ok"), nil
	}

	var rendered []string
	renderers := make(map[string]SectionRenderer, len(domain.AllSections()))
	for _, key := range domain.AllSections() {
		key := key
		renderers[key] = func(*renderContext) ([]pdf.Block, error) {
			rendered = append(rendered, key)
			return nil, nil
		}
	}
	g.sectionRenderers = renderers

	_, err := g.Generate(context.Background(), GenerateInput{
		Company: domain.CompanyInfo{Name: "Sunline"},
	})
	require.NoError(t, err)
	assert.Equal(t, domain.AllSections(), rendered)
}

func TestGenerateFallsBackToPlaintext(t *testing.T) {
	g := newTestGenerator(newMemSettings())
	g.renderFunc = func([]*pdf.FlowedPage, pdf.Geometry, pdf.DocInfo, pdf.Decorator) ([]byte, error) {
		return nil, errors.New("font missing")
	}

	result, err := g.Generate(context.Background(), GenerateInput{
		Company:  domain.CompanyInfo{Name: "Sunline Energie GmbH"},
		Sections: []string{},
	})
	require.NoError(t, err, "a render failure degrades, it does not fail the run")

	assert.True(t, result.Fallback)
	assert.Equal(t, "AN2026-1001", result.OfferNumber)

	text := string(result.Document)
	assert.Contains(t, text, "PV-Angebot (Textversion)")
	assert.Contains(t, text, "Firma: Sunline Energie GmbH")
	assert.Contains(t, text, "Ihr individuelles Angebot für eine Photovoltaikanlage")
	assert.Contains(t, text, "Angebot Nr. AN2026-1001", "cover letter placeholders are resolved")
	assert.Contains(t, text, "Anlagengröße: k.A.")
	assert.Contains(t, text, "vereinfachte Textversion")

	require.Len(t, result.Issues, 1)
	assert.Equal(t, "render", result.Issues[0].Stage)
	assert.Contains(t, result.Issues[0].Message, "font missing")
}

func TestGenerateRecoversFromRenderPanic(t *testing.T) {
	g := newTestGenerator(newMemSettings())
	g.renderFunc = func([]*pdf.FlowedPage, pdf.Geometry, pdf.DocInfo, pdf.Decorator) ([]byte, error) {
		panic("corrupt font table")
	}

	result, err := g.Generate(context.Background(), GenerateInput{
		Company:  domain.CompanyInfo{Name: "Sunline"},
		Sections: []string{},
	})
	require.NoError(t, err)
	assert.True(t, result.Fallback)
	require.Len(t, result.Issues, 1)
	assert.Contains(t, result.Issues[0].Message, "corrupt font table")
}

func TestGenerateUsesCustomTitleAndLetter(t *testing.T) {
	g := newTestGenerator(newMemSettings())
	g.renderFunc = func([]*pdf.FlowedPage, pdf.Geometry, pdf.DocInfo, pdf.Decorator) ([]byte, error) {
		return nil, errors.New("boom")
	}

	result, err := g.Generate(context.Background(), GenerateInput{
		Company:         domain.CompanyInfo{Name: "Sunline"},
		OfferTitleText:  "Sonderangebot Frühjahrsaktion",
		CoverLetterText: "Guten Tag,\n\nIhr Angebot [Angebotsnummer] liegt bei.",
		Sections:        []string{},
	})
	require.NoError(t, err)

	text := string(result.Document)
	assert.Contains(t, text, "Angebotstitel: Sonderangebot Frühjahrsaktion")
	assert.Contains(t, text, "Ihr Angebot AN2026-1001 liegt bei.")
}

func TestLoadTheme(t *testing.T) {
	settings := newMemSettings()
	g := newTestGenerator(settings)

	t.Run("defaults without stored design", func(t *testing.T) {
		theme := g.loadTheme(context.Background())
		assert.Equal(t, pdf.DefaultPrimary, theme.Primary)
		assert.Equal(t, pdf.DefaultSecondary, theme.Secondary)
	})

	t.Run("stored colors override, invalid values fall back", func(t *testing.T) {
		settings.values["pdf_design_settings"] = json.RawMessage(
			`{"primary_color":"#112233","secondary_color":"not-a-color"}`)
		theme := g.loadTheme(context.Background())
		assert.Equal(t, pdf.RGB{R: 0x11, G: 0x22, B: 0x33}, theme.Primary)
		assert.Equal(t, pdf.DefaultSecondary, theme.Secondary)
	})
}

func TestCustomerAddressBlock(t *testing.T) {
	g := newTestGenerator(newMemSettings())

	tests := []struct {
		name     string
		customer domain.CustomerData
		want     string
	}{
		{
			name: "full private person",
			customer: domain.CustomerData{
				Salutation: "Herr", Title: "Dr.", FirstName: "Max", LastName: "Mustermann",
				Address: "Sonnenallee", HouseNumber: "12", ZipCode: "10115", City: "Berlin",
			},
			want: "Herr Dr. Max Mustermann\nSonnenallee 12\n10115 Berlin",
		},
		{
			name: "company only",
			customer: domain.CustomerData{
				CompanyName: "Bäckerei Schmidt KG", ZipCode: "80331", City: "München",
			},
			want: "Bäckerei Schmidt KG\n80331 München",
		},
		{
			name: "person with distinct company line",
			customer: domain.CustomerData{
				FirstName: "Erika", LastName: "Musterfrau", CompanyName: "Musterfrau GbR",
				Address: "Hauptstraße", HouseNumber: "1",
			},
			want: "Erika Musterfrau\nMusterfrau GbR\nHauptstraße 1",
		},
		{
			name:     "empty recipient",
			customer: domain.CustomerData{},
			want:     "Interessent",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, g.customerAddressBlock(tt.customer))
		})
	}
}

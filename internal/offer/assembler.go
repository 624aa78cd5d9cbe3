package offer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/sunline-energie/offer-api/internal/domain"
	"github.com/sunline-energie/offer-api/internal/pdf"
)

// GeneratorParams wires a Generator to its collaborators
type GeneratorParams struct {
	Products           ProductLookup
	Settings           SettingsStore
	Documents          DocumentLookup
	Texts              map[string]string
	DatasheetBaseDir   string
	CompanyDocsBaseDir string
	Logger             *zap.Logger
}

// Generator assembles complete offer documents: cover page, cover
// letter, the requested content sections, page chrome and appended
// datasheets. Generation is best effort end to end; it degrades through
// inline issue notes down to a plaintext fallback, but does not fail.
type Generator struct {
	products           ProductLookup
	settings           SettingsStore
	documents          DocumentLookup
	numbers            *OfferNumberGenerator
	texts              *TextResolver
	datasheetBaseDir   string
	companyDocsBaseDir string
	logger             *zap.Logger
	now                func() time.Time

	sectionRenderers map[string]SectionRenderer
	renderFunc       func([]*pdf.FlowedPage, pdf.Geometry, pdf.DocInfo, pdf.Decorator) ([]byte, error)
}

// NewGenerator builds a Generator from its collaborators
func NewGenerator(p GeneratorParams) *Generator {
	return &Generator{
		products:           p.Products,
		settings:           p.Settings,
		documents:          p.Documents,
		numbers:            NewOfferNumberGenerator(p.Settings, p.Logger),
		texts:              NewTextResolver(p.Texts),
		datasheetBaseDir:   p.DatasheetBaseDir,
		companyDocsBaseDir: p.CompanyDocsBaseDir,
		logger:             p.Logger,
		now:                time.Now,
		sectionRenderers:   defaultSectionRenderers(),
		renderFunc:         pdf.Render,
	}
}

// GenerateInput is one document generation order
type GenerateInput struct {
	Project          domain.ProjectData
	Analysis         *domain.AnalysisResults
	Company          domain.CompanyInfo
	CompanyID        int64
	TitleImageBase64 string
	OfferTitleText   string
	CoverLetterText  string
	Sections         []string
	Options          domain.InclusionOptions
}

// Result is a finished generation run. Fallback marks the plaintext
// emergency document produced when PDF rendering itself failed.
type Result struct {
	Document    []byte
	OfferNumber string
	Fallback    bool
	Issues      []RenderIssue
}

// designSettings is the admin-configurable color scheme
type designSettings struct {
	PrimaryColor   string `json:"primary_color"`
	SecondaryColor string `json:"secondary_color"`
}

// Generate builds the offer document for one input
func (g *Generator) Generate(ctx context.Context, input GenerateInput) (*Result, error) {
	theme := g.loadTheme(ctx)
	offerNumber := g.numbers.Next(ctx)
	now := g.now()
	issues := &issueList{}

	sections := input.Sections
	if sections == nil {
		sections = domain.AllSections()
	}
	titleText := input.OfferTitleText
	if strings.TrimSpace(titleText) == "" {
		titleText = g.texts.Get("pdf_default_offer_title", "Ihr individuelles Angebot für eine Photovoltaikanlage")
	}
	coverLetterText := input.CoverLetterText
	if strings.TrimSpace(coverLetterText) == "" {
		coverLetterText = g.texts.Get("pdf_default_cover_letter",
			"[VollständigeAnrede]\n\nvielen Dank für Ihr Interesse an einer Photovoltaikanlage. "+
				"Gerne unterbreiten wir Ihnen unser Angebot Nr. [Angebotsnummer].")
	}

	geo := pdf.A4Geometry()
	rc := &renderContext{
		ctx:          ctx,
		texts:        g.texts,
		theme:        theme,
		project:      input.Project,
		analysis:     input.Analysis,
		company:      input.Company,
		options:      input.Options,
		products:     g.products,
		offerNumber:  offerNumber,
		now:          now,
		contentWidth: geo.ContentWidth(),
		issues:       issues,
	}
	phCtx := PlaceholderContext{
		Customer:    input.Project.Customer,
		Company:     input.Company,
		OfferNumber: offerNumber,
		Analysis:    input.Analysis,
		Texts:       g.texts,
		Now:         now,
	}

	var story []pdf.Block
	story = append(story, g.coverBlocks(rc, phCtx, input, titleText, geo)...)
	story = append(story, g.coverLetterBlocks(rc, phCtx, coverLetterText)...)
	story = append(story, renderSections(rc, sections, g.sectionRenderers)...)

	docTitle := strings.ReplaceAll(
		g.texts.Get("pdf_offer_title_doc_param", "Angebot: Photovoltaikanlage"),
		"{offer_number}", offerNumber)

	document, err := g.renderDocument(story, geo, docTitle, input, offerNumber, theme, now)
	if err != nil {
		g.logger.Error("pdf rendering failed, producing plaintext fallback",
			zap.String("offerNumber", offerNumber), zap.Error(err))
		issues.add("render", "%v", err)
		return &Result{
			Document:    g.plaintextFallback(input, titleText, coverLetterText, phCtx),
			OfferNumber: offerNumber,
			Fallback:    true,
			Issues:      issues.issues,
		}, nil
	}

	if input.Options.IncludeAllDocuments {
		document = g.appendCompanionDocuments(ctx, document, input, issues)
	}

	return &Result{
		Document:    document,
		OfferNumber: offerNumber,
		Issues:      issues.issues,
	}, nil
}

func (g *Generator) loadTheme(ctx context.Context) *pdf.Theme {
	design := designSettings{
		PrimaryColor:   pdf.DefaultPrimaryHex,
		SecondaryColor: pdf.DefaultSecondaryHex,
	}
	if _, err := g.settings.Load(ctx, "pdf_design_settings", &design); err != nil {
		g.logger.Warn("design settings unreadable, using defaults", zap.Error(err))
	}
	primary := pdf.HexColorOr(design.PrimaryColor, pdf.DefaultPrimary)
	secondary := pdf.HexColorOr(design.SecondaryColor, pdf.DefaultSecondary)
	return pdf.NewTheme(primary, secondary)
}

func (g *Generator) renderDocument(story []pdf.Block, geo pdf.Geometry, docTitle string, input GenerateInput, offerNumber string, theme *pdf.Theme, now time.Time) (document []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			document = nil
			err = fmt.Errorf("layout panicked: %v", r)
		}
	}()

	pages := pdf.NewPaginator(geo).Paginate(story)
	dec := g.pageDecorator(geo, theme, input, offerNumber, now)
	return g.renderFunc(pages, geo, pdf.DocInfo{Title: docTitle, Author: input.Company.Name}, dec)
}

func (g *Generator) pageDecorator(geo pdf.Geometry, theme *pdf.Theme, input GenerateInput, offerNumber string, now time.Time) *pdf.PageDecorator {
	dec := &pdf.PageDecorator{
		Geo:              geo,
		Theme:            theme,
		PageInfoTemplate: g.texts.Get("pdf_page_x_of_y", "Seite {current} von {total}"),
		CompanyFooter:    input.Company.PDFFooterText,
	}
	footer := g.texts.Get("pdf_footer_text_format_simple", "Angebot {offer_no} | {date} | {page_info}")
	footer = strings.ReplaceAll(footer, "{offer_no}", offerNumber)
	footer = strings.ReplaceAll(footer, "{date}", now.Format("02.01.2006"))
	dec.FooterTemplate = footer

	if input.Options.IncludeCompanyLogo {
		if data := DecodeImageInput(input.Company.LogoBase64); data != nil {
			if info, err := pdf.DecodeImageData(data); err == nil {
				w, h := pdf.FitToBox(info.Width, info.Height, 18, 10)
				dec.Logo = data
				dec.LogoFormat = info.Format
				dec.LogoWidth = w
				dec.LogoHeight = h
			}
		}
	}
	return dec
}

func (g *Generator) coverBlocks(rc *renderContext, phCtx PlaceholderContext, input GenerateInput, titleText string, geo pdf.Geometry) []pdf.Block {
	var blocks []pdf.Block

	if img := ImageBlocks(DecodeImageInput(input.TitleImageBase64), geo.ContentWidth(), geo.ContentHeight()/1.8, pdf.AlignCenter, "", rc.theme, rc.texts); len(img) > 0 {
		blocks = append(blocks, img...)
		blocks = append(blocks, pdf.Spacer{Height: 5})
	}
	if input.Options.IncludeCompanyLogo {
		if logo := ImageBlocks(DecodeImageInput(input.Company.LogoBase64), 60, 30, pdf.AlignCenter, "", rc.theme, rc.texts); len(logo) > 0 {
			blocks = append(blocks, logo...)
			blocks = append(blocks, pdf.Spacer{Height: 5})
		}
	}

	blocks = append(blocks, pdf.Paragraph{
		Text:  ReplacePlaceholders(titleText, phCtx),
		Style: rc.theme.Title,
	})

	company := input.Company
	companyLines := []string{company.Name, company.Street, joinNonEmpty(" ", company.ZipCode, company.City)}
	if company.Phone != "" {
		companyLines = append(companyLines, rc.texts.Get("pdf_phone_label_short", "Tel.")+": "+company.Phone)
	}
	if company.Email != "" {
		companyLines = append(companyLines, rc.texts.Get("pdf_email_label_short", "Mail")+": "+company.Email)
	}
	if company.Website != "" {
		companyLines = append(companyLines, rc.texts.Get("pdf_website_label_short", "Web")+": "+company.Website)
	}
	if company.TaxID != "" {
		companyLines = append(companyLines, rc.texts.Get("pdf_taxid_label", "StNr/USt-ID")+": "+company.TaxID)
	}
	blocks = append(blocks, pdf.Paragraph{
		Text:  joinLines(companyLines),
		Style: rc.theme.CompanyCover,
	})

	blocks = append(blocks, pdf.Paragraph{
		Text:  g.customerAddressBlock(input.Project.Customer),
		Style: rc.theme.CustomerAddress,
	})

	blocks = append(blocks,
		pdf.Spacer{Height: 2},
		pdf.Paragraph{
			Text:  rc.texts.Get("pdf_offer_number_label", "Angebotsnummer") + ": " + rc.offerNumber,
			Style: rc.theme.NormalRight,
		},
		pdf.Paragraph{
			Text:  rc.texts.Get("pdf_offer_date_label", "Datum") + ": " + rc.now.Format("02.01.2006"),
			Style: rc.theme.NormalRight,
		},
		pdf.PageBreak{},
	)
	return blocks
}

func (g *Generator) coverLetterBlocks(rc *renderContext, phCtx PlaceholderContext, coverLetterText string) []pdf.Block {
	company := rc.company
	blocks := []pdf.Block{
		pdf.ChapterMark{Title: rc.texts.Get("pdf_chapter_title_cover_letter", "Anschreiben")},
		pdf.Paragraph{
			Text:  joinLines([]string{company.Name, company.Street, joinNonEmpty(" ", company.ZipCode, company.City)}),
			Style: rc.theme.Normal,
		},
		pdf.Spacer{Height: 15},
		pdf.Paragraph{Text: g.customerAddressBlock(rc.project.Customer), Style: rc.theme.Normal},
		pdf.Spacer{Height: 10},
		pdf.Paragraph{Text: rc.now.Format("02.01.2006"), Style: rc.theme.NormalRight},
		pdf.Spacer{Height: 5},
	}

	subjectStyle := rc.theme.Normal
	subjectStyle.Bold = true
	subject := strings.ReplaceAll(
		rc.texts.Get("pdf_offer_subject_line_param", "Ihr persönliches Angebot für eine Photovoltaikanlage, Nr. {offer_number}"),
		"{offer_number}", rc.offerNumber)
	blocks = append(blocks,
		pdf.Paragraph{Text: subject, Style: subjectStyle},
		pdf.Spacer{Height: 5},
	)

	letter := ReplacePlaceholders(coverLetterText, phCtx)
	for _, para := range strings.Split(letter, "\n") {
		para = strings.TrimRight(para, "\r")
		if strings.TrimSpace(para) == "" {
			blocks = append(blocks, pdf.Spacer{Height: 2})
			continue
		}
		blocks = append(blocks, pdf.Paragraph{Text: para, Style: rc.theme.CoverLetter})
	}

	blocks = append(blocks,
		pdf.Spacer{Height: 10},
		pdf.Paragraph{Text: rc.texts.Get("pdf_closing_greeting", "Mit freundlichen Grüßen"), Style: rc.theme.Normal},
		pdf.Spacer{Height: 3},
		pdf.Paragraph{Text: company.Name, Style: rc.theme.Normal},
		pdf.PageBreak{},
	)
	return blocks
}

// customerAddressBlock renders the multi-line recipient address used on
// the cover page and in the letter head.
func (g *Generator) customerAddressBlock(c domain.CustomerData) string {
	name := joinNonEmpty(" ", c.Salutation, c.Title, c.FirstName, c.LastName)
	if name == "" {
		name = strings.TrimSpace(c.CompanyName)
	}
	if name == "" {
		name = g.texts.Get("customer_name_fallback_pdf", "Interessent")
	}
	lines := []string{name}
	if c.CompanyName != "" && name != c.CompanyName {
		lines = append(lines, c.CompanyName)
	}
	lines = append(lines,
		joinNonEmpty(" ", c.Address, c.HouseNumber),
		joinNonEmpty(" ", c.ZipCode, c.City),
	)
	return joinLines(lines)
}

// plaintextFallback emits a minimal UTF-8 text document when PDF
// rendering is impossible, so a sales conversation can still proceed.
func (g *Generator) plaintextFallback(input GenerateInput, titleText, coverLetterText string, phCtx PlaceholderContext) []byte {
	var b strings.Builder
	b.WriteString(g.texts.Get("pdf_plaintext_title_pdf", "PV-Angebot (Textversion)") + "\n")
	b.WriteString(strings.Repeat("=", 40) + "\n\n")
	b.WriteString(g.texts.Get("pdf_offer_title_label_fb", "Angebotstitel") + ": " + titleText + "\n")
	b.WriteString(g.texts.Get("pdf_date_label_fb", "Datum") + ": " + g.now().Format("02.01.2006") + "\n\n")
	b.WriteString(g.texts.Get("pdf_company_label_fb", "Firma") + ": " + input.Company.Name + "\n")
	b.WriteString("\n" + g.texts.Get("pdf_cover_letter_label_fb", "Anschreiben") + ":\n")
	b.WriteString(ReplacePlaceholders(coverLetterText, phCtx) + "\n\n")
	b.WriteString("\n--- " + g.texts.Get("pdf_section_title_overview_fb", "Projektübersicht") + " ---\n")
	var kwp any
	if v, ok := input.Analysis.KPI("anlage_kwp"); ok {
		kwp = v
	}
	b.WriteString(g.texts.Get("anlage_size_label_pdf_fb", "Anlagengröße") + ": " +
		FormatValue(kwp, "kWp", 2, NAKeyNotAvailable, g.texts) + "\n")
	b.WriteString("\n(" + g.texts.Get("pdf_plaintext_fallback_note",
		"Dies ist eine vereinfachte Textversion des Angebots aufgrund eines Fehlers bei der PDF-Erstellung.") + ")\n")
	return []byte(b.String())
}

func joinLines(lines []string) string {
	kept := lines[:0:0]
	for _, l := range lines {
		if strings.TrimSpace(l) != "" {
			kept = append(kept, l)
		}
	}
	return strings.Join(kept, "\n")
}

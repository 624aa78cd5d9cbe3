package offer

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sunline-energie/offer-api/internal/domain"
	"github.com/sunline-energie/offer-api/internal/pdf"
)

// renderContext bundles the per-run state handed to section renderers
type renderContext struct {
	ctx          context.Context
	texts        *TextResolver
	theme        *pdf.Theme
	project      domain.ProjectData
	analysis     *domain.AnalysisResults
	company      domain.CompanyInfo
	options      domain.InclusionOptions
	products     ProductLookup
	offerNumber  string
	now          time.Time
	contentWidth float64
	issues       *issueList
}

// SectionRenderer builds the body blocks of one offer section
type SectionRenderer func(rc *renderContext) ([]pdf.Block, error)

type sectionDef struct {
	key             string
	titleKey        string
	defaultTitle    string
	chapterKey      string
	defaultChapter  string
}

// sectionDefs fixes the document order of the section universe
var sectionDefs = []sectionDef{
	{domain.SectionProjectOverview, "pdf_section_title_overview", "Projektübersicht & Eckdaten", "pdf_chapter_title_overview", "Projektübersicht"},
	{domain.SectionTechnicalComponents, "pdf_section_title_components", "Angebotene Systemkomponenten", "pdf_chapter_title_components", "Komponenten"},
	{domain.SectionCostDetails, "pdf_section_title_cost_details", "Detaillierte Kostenaufstellung", "pdf_chapter_title_cost_details", "Kosten"},
	{domain.SectionEconomics, "pdf_section_title_economics", "Wirtschaftlichkeit im Überblick", "pdf_chapter_title_economics", "Wirtschaftlichkeit"},
	{domain.SectionSimulationDetails, "pdf_section_title_simulation", "Simulationsübersicht (Auszug)", "pdf_chapter_title_simulation", "Simulation"},
	{domain.SectionCO2Savings, "pdf_section_title_co2", "Ihre CO₂-Einsparung", "pdf_chapter_title_co2", "CO₂-Einsparung"},
	{domain.SectionVisualizations, "pdf_section_title_visualizations", "Grafische Auswertungen", "pdf_chapter_title_visualizations", "Visualisierungen"},
	{domain.SectionFutureAspects, "pdf_chapter_title_future_aspects", "Zukunftsaspekte & Erweiterungen", "pdf_chapter_title_future_aspects", "Zukunftsaspekte"},
}

func defaultSectionRenderers() map[string]SectionRenderer {
	return map[string]SectionRenderer{
		domain.SectionProjectOverview:     renderProjectOverview,
		domain.SectionTechnicalComponents: renderTechnicalComponents,
		domain.SectionCostDetails:         renderCostDetails,
		domain.SectionEconomics:           renderEconomics,
		domain.SectionSimulationDetails:   renderSimulationDetails,
		domain.SectionCO2Savings:          renderCO2Savings,
		domain.SectionVisualizations:      renderVisualizations,
		domain.SectionFutureAspects:       renderFutureAspects,
	}
}

// renderSections assembles all requested sections in universe order.
// Section numbering counts only the sections actually rendered. A
// renderer failure or panic is contained: the section body is replaced
// by an inline error note and assembly continues.
func renderSections(rc *renderContext, requested []string, renderers map[string]SectionRenderer) []pdf.Block {
	requestedSet := make(map[string]bool, len(requested))
	for _, s := range requested {
		requestedSet[s] = true
	}

	var blocks []pdf.Block
	counter := 1
	for _, def := range sectionDefs {
		if !requestedSet[def.key] {
			continue
		}
		renderer, ok := renderers[def.key]
		if !ok {
			continue
		}
		title := rc.texts.Get(def.titleKey, def.defaultTitle)
		chapter := rc.texts.Get(def.chapterKey, def.defaultChapter)

		blocks = append(blocks,
			pdf.ChapterMark{Title: chapter},
			pdf.Paragraph{Text: fmt.Sprintf("%d. %s", counter, title), Style: rc.theme.SectionTitle},
			pdf.Spacer{Height: 2},
		)
		body, err := renderSectionSafe(rc, def.key, renderer)
		if err != nil {
			rc.issues.add(def.key, "%v", err)
			body = []pdf.Block{pdf.Paragraph{
				Text:  fmt.Sprintf("Fehler in Sektion '%s': %v", title, err),
				Style: rc.theme.Normal,
			}}
		}
		blocks = append(blocks, body...)
		blocks = append(blocks, pdf.Spacer{Height: 5})
		counter++
	}
	return blocks
}

func renderSectionSafe(rc *renderContext, key string, renderer SectionRenderer) (blocks []pdf.Block, err error) {
	defer func() {
		if r := recover(); r != nil {
			blocks = nil
			err = fmt.Errorf("section %s panicked: %v", key, r)
		}
	}()
	return renderer(rc)
}

func renderProjectOverview(rc *renderContext) ([]pdf.Block, error) {
	var blocks []pdf.Block
	details := rc.project.ProjectDetails

	if details.VisualizeRoofInPDF && details.SatelliteImageBase64 != "" {
		blocks = append(blocks, pdf.Paragraph{
			Text:  rc.texts.Get("satellite_image_header_pdf", "Satellitenansicht Objekt"),
			Style: rc.theme.SubSectionTitle,
		})
		caption := rc.texts.Get("satellite_image_caption_pdf", "Satellitenbild des Objekts")
		sat := ImageBlocks(DecodeImageInput(details.SatelliteImageBase64), rc.contentWidth*0.8, 100, pdf.AlignCenter, caption, rc.theme, rc.texts)
		if len(sat) > 0 {
			blocks = append(blocks, sat...)
			blocks = append(blocks, pdf.Spacer{Height: 5})
		}
	}

	rows := [][2]string{
		{
			rc.texts.Get("anlage_size_label_pdf", "Anlagengröße"),
			rc.formatKPI("anlage_kwp", "kWp", 2),
		},
		{
			rc.texts.Get("module_quantity_label_pdf", "Anzahl Module"),
			strconv.Itoa(details.ModuleQuantity),
		},
		{
			rc.texts.Get("annual_pv_production_kwh_pdf", "Jährliche PV-Produktion (ca.)"),
			rc.formatKPI("annual_pv_production_kwh", "kWh", 0),
		},
		{
			rc.texts.Get("self_supply_rate_percent_pdf", "Autarkiegrad (ca.)"),
			rc.formatKPI("self_supply_rate_percent", "%", 1),
		},
	}
	if details.IncludeStorage {
		rows = append(rows, [2]string{
			rc.texts.Get("selected_storage_capacity_label_pdf", "Speicherkapazität"),
			FormatValue(details.SelectedStorageCapacityKWh, "kWh", 2, NAKeyNotAvailable, rc.texts),
		})
	}
	blocks = append(blocks, rc.keyValueTable(rows, 0.5, rc.theme.TableText))
	return blocks, nil
}

func renderTechnicalComponents(rc *renderContext) ([]pdf.Block, error) {
	details := rc.project.ProjectDetails
	blocks := []pdf.Block{
		pdf.Paragraph{
			Text:  rc.texts.Get("pdf_components_intro", "Nachfolgend die Details zu den Kernkomponenten Ihrer Anlage:"),
			Style: rc.theme.Normal,
		},
		pdf.Spacer{Height: 3},
	}

	type component struct {
		id    *int64
		title string
	}
	main := []component{
		{details.SelectedModuleID, rc.texts.Get("pdf_component_module_title", "PV-Module")},
		{details.SelectedInverterID, rc.texts.Get("pdf_component_inverter_title", "Wechselrichter")},
	}
	if details.IncludeStorage {
		main = append(main, component{details.SelectedStorageID, rc.texts.Get("pdf_component_storage_title", "Batteriespeicher")})
	}
	for _, c := range main {
		if c.id != nil {
			blocks = append(blocks, rc.productDetailBlocks(*c.id, c.title)...)
		}
	}

	if details.IncludeAdditionalComponents && rc.options.IncludeOptionalComponentDetails {
		blocks = append(blocks, pdf.Paragraph{
			Text:  rc.texts.Get("pdf_additional_components_header_pdf", "Optionale Komponenten"),
			Style: rc.theme.SubSectionTitle,
		})
		optional := []component{
			{details.SelectedWallboxID, rc.texts.Get("pdf_component_wallbox_title", "Wallbox")},
			{details.SelectedEMSID, rc.texts.Get("pdf_component_ems_title", "Energiemanagementsystem")},
			{details.SelectedOptimizerID, rc.texts.Get("pdf_component_optimizer_title", "Leistungsoptimierer")},
			{details.SelectedCarportID, rc.texts.Get("pdf_component_carport_title", "Solarcarport")},
			{details.SelectedEmergencyPowerID, rc.texts.Get("pdf_component_emergency_power_title", "Notstromversorgung")},
			{details.SelectedAnimalDefenseID, rc.texts.Get("pdf_component_animal_defense_title", "Tierabwehrschutz")},
		}
		rendered := false
		for _, c := range optional {
			if c.id != nil {
				blocks = append(blocks, rc.productDetailBlocks(*c.id, c.title)...)
				rendered = true
			}
		}
		if !rendered {
			blocks = append(blocks, pdf.Paragraph{
				Text:  rc.texts.Get("pdf_no_optional_components_selected_for_details", "Keine optionalen Komponenten für Detailanzeige ausgewählt."),
				Style: rc.theme.Normal,
			})
		}
	}
	return blocks, nil
}

// productField pairs a product attribute with its label text key
type productField struct {
	value    func(*domain.Product) (any, bool)
	labelKey string
	unit     string
	prec     int
}

func categoryFields(category domain.ProductCategory) []productField {
	strField := func(get func(*domain.Product) string) func(*domain.Product) (any, bool) {
		return func(p *domain.Product) (any, bool) {
			v := strings.TrimSpace(get(p))
			return v, v != ""
		}
	}
	floatField := func(get func(*domain.Product) *float64) func(*domain.Product) (any, bool) {
		return func(p *domain.Product) (any, bool) {
			v := get(p)
			if v == nil {
				return nil, false
			}
			return *v, true
		}
	}
	intField := func(get func(*domain.Product) *int) func(*domain.Product) (any, bool) {
		return func(p *domain.Product) (any, bool) {
			v := get(p)
			if v == nil {
				return nil, false
			}
			return *v, true
		}
	}

	base := []productField{
		{strField(func(p *domain.Product) string { return p.Brand }), "product_brand", "", 0},
		{strField(func(p *domain.Product) string { return p.ModelName }), "product_model", "", 0},
		{intField(func(p *domain.Product) *int { return p.WarrantyYears }), "product_warranty", "Jahre", 0},
	}

	var extra []productField
	switch category {
	case domain.CategoryModule:
		extra = []productField{
			{floatField(func(p *domain.Product) *float64 { return p.CapacityW }), "product_capacity_wp", "Wp", 0},
			{floatField(func(p *domain.Product) *float64 { return p.EfficiencyPercent }), "product_efficiency", "%", 1},
			{floatField(func(p *domain.Product) *float64 { return p.LengthM }), "product_length_m", "m", 3},
			{floatField(func(p *domain.Product) *float64 { return p.WidthM }), "product_width_m", "m", 3},
			{floatField(func(p *domain.Product) *float64 { return p.WeightKg }), "product_weight_kg", "kg", 1},
		}
	case domain.CategoryInverter:
		extra = []productField{
			{floatField(func(p *domain.Product) *float64 { return p.PowerKW }), "product_power_kw", "kW", 1},
			{floatField(func(p *domain.Product) *float64 { return p.EfficiencyPercent }), "product_efficiency_inverter", "%", 1},
		}
	case domain.CategoryStorage:
		extra = []productField{
			{floatField(func(p *domain.Product) *float64 { return p.StoragePowerKW }), "product_capacity_kwh", "kWh", 1},
			{floatField(func(p *domain.Product) *float64 { return p.PowerKW }), "product_power_storage_kw", "kW", 1},
			{intField(func(p *domain.Product) *int { return p.MaxCycles }), "product_max_cycles_label", "Zyklen", 0},
		}
	case domain.CategoryWallbox:
		extra = []productField{
			{floatField(func(p *domain.Product) *float64 { return p.PowerKW }), "product_power_wallbox_kw", "kW", 1},
		}
	case domain.CategoryEMS:
		extra = []productField{
			{strField(func(p *domain.Product) string { return p.Description }), "product_description_short", "", 0},
		}
	case domain.CategoryOptimizer:
		extra = []productField{
			{floatField(func(p *domain.Product) *float64 { return p.EfficiencyPercent }), "product_optimizer_efficiency", "%", 1},
		}
	case domain.CategoryCarport:
		extra = []productField{
			{floatField(func(p *domain.Product) *float64 { return p.LengthM }), "product_length_m", "m", 3},
			{floatField(func(p *domain.Product) *float64 { return p.WidthM }), "product_width_m", "m", 3},
		}
	case domain.CategoryEmergencyPower:
		extra = []productField{
			{floatField(func(p *domain.Product) *float64 { return p.PowerKW }), "product_emergency_power_kw", "kW", 1},
		}
	case domain.CategoryAnimalDefense:
		extra = []productField{
			{strField(func(p *domain.Product) string { return p.Description }), "product_description_short", "", 0},
		}
	}
	return append(base, extra...)
}

// productDetailBlocks renders one component: title, attribute table and
// optional product photo beside it, plus the description underneath.
func (rc *renderContext) productDetailBlocks(id int64, title string) []pdf.Block {
	product, err := rc.products.ByID(rc.ctx, id)
	if err != nil || product == nil {
		if err != nil {
			rc.issues.add("product-lookup", "component %q (id %d): %v", title, id, err)
		}
		return []pdf.Block{
			pdf.Paragraph{
				Text:  title + ": " + rc.texts.Get("details_not_available_pdf", "Details nicht verfügbar"),
				Style: rc.theme.Normal,
			},
			pdf.Spacer{Height: 3},
		}
	}

	blocks := []pdf.Block{pdf.Paragraph{Text: title, Style: rc.theme.ComponentTitle}}

	var rows [][]pdf.Cell
	for _, field := range categoryFields(product.Category) {
		value, ok := field.value(product)
		if !ok {
			continue
		}
		label := rc.texts.Get(field.labelKey, "")
		formatted := FormatValue(value, field.unit, field.prec, NAKeyNotAvailable, rc.texts)
		rows = append(rows, []pdf.Cell{
			{Text: label, Style: rc.theme.TableLabel},
			{Text: formatted, Style: rc.theme.TableText},
		})
	}

	detailTable := pdf.Table{
		Rows:     rows,
		ColFracs: []float64{0.4, 0.6},
		Style:    rc.theme.ProductTable(),
	}

	var photo []pdf.Block
	if rc.options.IncludeProductImages && product.ImageBase64 != "" {
		photoWidth := rc.contentWidth * 0.30
		if photoWidth > 50 {
			photoWidth = 50
		}
		photo = ImageBlocks(DecodeImageInput(product.ImageBase64), photoWidth, 50, pdf.AlignCenter, "", rc.theme, rc.texts)
	}

	switch {
	case len(rows) > 0 && len(photo) > 0:
		blocks = append(blocks, pdf.Columns{
			Left:           []pdf.Block{detailTable},
			Right:          append([]pdf.Block{pdf.Spacer{Height: 1}}, photo...),
			LeftFrac:       0.62,
			GutterFrac:     0.03,
			MaxRightHeight: 60,
		})
	case len(rows) > 0:
		blocks = append(blocks, detailTable)
	case len(photo) > 0:
		blocks = append(blocks, photo...)
	}

	if desc := strings.TrimSpace(product.Description); desc != "" {
		blocks = append(blocks,
			pdf.Spacer{Height: 2},
			pdf.Paragraph{Text: desc, Style: rc.theme.TableTextSmall},
		)
	}
	blocks = append(blocks, pdf.Spacer{Height: 5})
	return blocks
}

// costRow describes one line of the cost breakdown
type costRow struct {
	kpiKey   string
	labelKey string
	isEuro   bool
	bold     bool
}

// costRows fixes the order of the cost breakdown. Zero-valued lines are
// suppressed except for the rows alwaysShownCostRows names.
var costRows = []costRow{
	{"base_matrix_price_netto", "base_matrix_price_netto", true, false},
	{"cost_modules_aufpreis_netto", "cost_modules", true, false},
	{"cost_inverter_aufpreis_netto", "cost_inverter", true, false},
	{"cost_storage_aufpreis_product_db_netto", "cost_storage", true, false},
	{"total_optional_components_cost_netto", "total_optional_components_cost_netto_label", true, false},
	{"cost_accessories_aufpreis_netto", "cost_accessories_aufpreis_netto", true, false},
	{"cost_scaffolding_netto", "cost_scaffolding_netto", true, false},
	{"cost_misc_netto", "cost_misc_netto", true, false},
	{"cost_custom_netto", "cost_custom_netto", true, false},
	{"subtotal_netto", "subtotal_netto", true, true},
	{"one_time_bonus_eur", "one_time_bonus_eur_label", true, false},
	{"total_investment_netto", "total_investment_netto", true, true},
	{"vat_rate_percent", "vat_rate_percent", false, false},
	{"total_investment_brutto", "total_investment_brutto", true, true},
}

var alwaysShownCostRows = map[string]bool{
	"total_investment_netto":  true,
	"total_investment_brutto": true,
	"subtotal_netto":          true,
	"vat_rate_percent":        true,
	"base_matrix_price_netto": true,
	"one_time_bonus_eur":      true,
}

func renderCostDetails(rc *renderContext) ([]pdf.Block, error) {
	var rows [][]pdf.Cell
	for _, row := range costRows {
		value, ok := rc.analysis.KPI(row.kpiKey)
		if !ok {
			continue
		}
		if value == 0 && !alwaysShownCostRows[row.kpiKey] {
			continue
		}
		unit := ""
		precision := 2
		switch {
		case row.kpiKey == "vat_rate_percent":
			unit = "%"
			precision = 1
		case row.isEuro:
			unit = "€"
		}
		valueStyle := rc.theme.TableNumber
		if row.bold {
			valueStyle = rc.theme.TableBoldRight
		}
		rows = append(rows, []pdf.Cell{
			{Text: rc.texts.Get(row.labelKey, HumanizeKey(row.labelKey)), Style: rc.theme.TableLabel},
			{Text: FormatValue(value, unit, precision, "", rc.texts), Style: valueStyle},
		})
	}
	if len(rows) == 0 {
		return nil, nil
	}

	blocks := []pdf.Block{pdf.Table{
		Rows:     rows,
		ColFracs: []float64{0.6, 0.4},
		Style:    rc.theme.DefaultKeyValueTable(),
	}}

	matrixPrice := rc.analysis.KPIOr("base_matrix_price_netto", 0)
	storageCost := rc.analysis.KPIOr("cost_storage_aufpreis_product_db_netto", 0)
	switch {
	case matrixPrice == 0 && storageCost > 0:
		blocks = append(blocks,
			pdf.Spacer{Height: 2},
			pdf.Paragraph{
				Text:  rc.texts.Get("analysis_storage_cost_note_single_price_pdf", "Hinweis: Speicherkosten als Einzelposten, da kein Matrix-Pauschalpreis."),
				Style: rc.theme.TableTextSmall,
			},
		)
	case matrixPrice > 0 && storageCost > 0:
		blocks = append(blocks,
			pdf.Spacer{Height: 2},
			pdf.Paragraph{
				Text:  rc.texts.Get("analysis_storage_cost_note_matrix_pdf", "Hinweis: Speicherkosten als Aufpreis, da Matrixpreis 'Ohne Speicher' verwendet wurde."),
				Style: rc.theme.TableTextSmall,
			},
		)
	}
	return blocks, nil
}

func renderEconomics(rc *renderContext) ([]pdf.Block, error) {
	type kpiRow struct {
		labelKey     string
		defaultLabel string
		kpiKey       string
		unit         string
		prec         int
	}
	defs := []kpiRow{
		{"total_investment_brutto_pdf", "Gesamtinvestition (Brutto)", "total_investment_brutto", "€", 2},
		{"annual_financial_benefit_pdf", "Finanzieller Vorteil (Jahr 1, ca.)", "annual_financial_benefit_year1", "€", 2},
		{"amortization_time_years_pdf", "Amortisationszeit (ca.)", "amortization_time_years", "Jahre", 2},
		{"simple_roi_percent_label_pdf", "Einfache Rendite (Jahr 1, ca.)", "simple_roi_percent", "%", 1},
		{"lcoe_euro_per_kwh_label_pdf", "Stromgestehungskosten (LCOE, ca.)", "lcoe_euro_per_kwh", "€/kWh", 3},
		{"npv_over_years_pdf", "Kapitalwert über Laufzeit (NPV, ca.)", "npv_value", "€", 2},
		{"irr_percent_pdf", "Interner Zinsfuß (IRR, ca.)", "irr_percent", "%", 1},
	}
	rows := make([][]pdf.Cell, 0, len(defs))
	for _, def := range defs {
		var value any
		if v, ok := rc.analysis.KPI(def.kpiKey); ok {
			value = v
		}
		rows = append(rows, []pdf.Cell{
			{Text: rc.texts.Get(def.labelKey, def.defaultLabel), Style: rc.theme.TableLabel},
			{Text: FormatValue(value, def.unit, def.prec, NAKeyNotCalculated, rc.texts), Style: rc.theme.TableNumber},
		})
	}
	return []pdf.Block{pdf.Table{
		Rows:     rows,
		ColFracs: []float64{0.6, 0.4},
		Style:    rc.theme.DefaultKeyValueTable(),
	}}, nil
}

// simulationDisplayYears caps the simulation table length; longer runs
// end in an ellipsis row.
const simulationDisplayYears = 10

func renderSimulationDetails(rc *renderContext) ([]pdf.Block, error) {
	years := int(rc.analysis.KPIOr("simulation_period_years_effective", 0))
	if years <= 0 {
		return []pdf.Block{pdf.Paragraph{
			Text:  rc.texts.Get("pdf_simulation_data_not_available", "Simulationsdetails nicht ausreichend für Tabellendarstellung."),
			Style: rc.theme.Normal,
		}}, nil
	}

	type simColumn struct {
		headerKey     string
		defaultHeader string
		seriesKey     string
		unit          string
		prec          int
		bold          bool
	}
	columns := []simColumn{
		{"annual_pv_production_kwh", "PV Prod.", "annual_productions_sim", "kWh", 0, false},
		{"annual_financial_benefit", "Jährl. Vorteil", "annual_benefits_sim", "€", 2, false},
		{"annual_maintenance_cost_sim", "Wartung", "annual_maintenance_costs_sim", "€", 2, false},
		{"analysis_table_annual_cf_header", "Jährl. CF", "annual_cash_flows_sim", "€", 2, false},
		{"analysis_table_cumulative_cf_header", "Kum. CF", "", "€", 2, true},
	}

	header := []pdf.Cell{{Text: rc.texts.Get("analysis_table_year_header", "Jahr"), Style: rc.theme.TableHeader}}
	for _, col := range columns {
		header = append(header, pdf.Cell{Text: rc.texts.Get(col.headerKey, col.defaultHeader), Style: rc.theme.TableHeader})
	}
	rows := [][]pdf.Cell{header}

	// the cumulative series may carry a year-0 seed; display drops it
	cumulative := rc.analysis.SeriesValues("cumulative_cash_flows_sim")
	if len(cumulative) == years+1 {
		cumulative = cumulative[1:]
	} else {
		cumulative = nil
	}

	display := years
	if display > simulationDisplayYears {
		display = simulationDisplayYears
	}
	for year := 0; year < display; year++ {
		row := []pdf.Cell{{Text: strconv.Itoa(year + 1), Style: rc.theme.TableText}}
		for _, col := range columns {
			series := cumulative
			if col.seriesKey != "" {
				series = rc.analysis.SeriesValues(col.seriesKey)
			}
			var value any
			if year < len(series) {
				value = series[year]
			}
			style := rc.theme.TableNumber
			if col.bold {
				style = rc.theme.TableBoldRight
			}
			row = append(row, pdf.Cell{
				Text:  FormatValue(value, col.unit, col.prec, NAKeyNotAvailable, rc.texts),
				Style: style,
			})
		}
		rows = append(rows, row)
	}
	if years > simulationDisplayYears {
		ellipsis := make([]pdf.Cell, len(header))
		for i := range ellipsis {
			ellipsis[i] = pdf.Cell{Text: "...", Style: rc.theme.TableText.WithAlign(pdf.AlignCenter)}
		}
		rows = append(rows, ellipsis)
	}

	return []pdf.Block{pdf.Table{
		Rows:         rows,
		RepeatHeader: true,
		Style:        rc.theme.DataTable(),
	}}, nil
}

func renderCO2Savings(rc *renderContext) ([]pdf.Block, error) {
	tpl := rc.texts.Get("pdf_annual_co2_savings_param_pdf",
		"Durch Ihre neue Photovoltaikanlage vermeiden Sie jährlich ca. {co2_savings_kg_formatted} kg CO₂. "+
			"Dies entspricht der Bindungskapazität von etwa {trees_equiv} Bäumen oder der Vermeidung von ca. {car_km_equiv} Autokilometern.")

	text := tpl
	text = strings.ReplaceAll(text, "{co2_savings_kg_formatted}",
		FormatValue(rc.analysis.KPIOr("annual_co2_savings_kg", 0), "", 0, "", rc.texts))
	text = strings.ReplaceAll(text, "{trees_equiv}",
		fmt.Sprintf("%.0f", rc.analysis.KPIOr("co2_equivalent_trees_per_year", 0)))
	text = strings.ReplaceAll(text, "{car_km_equiv}",
		fmt.Sprintf("%.0f", rc.analysis.KPIOr("co2_equivalent_car_km_per_year", 0)))

	return []pdf.Block{pdf.Paragraph{Text: text, Style: rc.theme.Normal}}, nil
}

// chartDef names one selectable chart and its caption text
type chartDef struct {
	key          string
	titleKey     string
	defaultTitle string
}

// chartCatalog is the full set of charts the analysis engine can
// deliver, in the order they appear in the document.
var chartCatalog = []chartDef{
	{"monthly_prod_cons_chart_bytes", "pdf_chart_title_monthly_comp_pdf", "Monatl. Produktion/Verbrauch (2D)"},
	{"cost_projection_chart_bytes", "pdf_chart_label_cost_projection", "Stromkosten-Hochrechnung (2D)"},
	{"cumulative_cashflow_chart_bytes", "pdf_chart_label_cum_cashflow", "Kumulierter Cashflow (2D)"},
	{"consumption_coverage_pie_chart_bytes", "pdf_chart_title_consumption_coverage_pdf", "Deckung Gesamtverbrauch (Jahr 1)"},
	{"pv_usage_pie_chart_bytes", "pdf_chart_title_pv_usage_pdf", "Nutzung PV-Strom (Jahr 1)"},
	{"daily_production_switcher_chart_bytes", "pdf_chart_label_daily_3d", "Tagesproduktion (3D)"},
	{"weekly_production_switcher_chart_bytes", "pdf_chart_label_weekly_3d", "Wochenproduktion (3D)"},
	{"yearly_production_switcher_chart_bytes", "pdf_chart_label_yearly_3d_bar", "Jahresproduktion (3D-Balken)"},
	{"project_roi_matrix_switcher_chart_bytes", "pdf_chart_label_roi_matrix_3d", "Projektrendite-Matrix (3D)"},
	{"feed_in_revenue_switcher_chart_bytes", "pdf_chart_label_feedin_3d", "Einspeisevergütung (3D)"},
	{"prod_vs_cons_switcher_chart_bytes", "pdf_chart_label_prodcons_3d", "Verbr. vs. Prod. (3D)"},
	{"tariff_cube_switcher_chart_bytes", "pdf_chart_label_tariffcube_3d", "Tarifvergleich (3D)"},
	{"co2_savings_value_switcher_chart_bytes", "pdf_chart_label_co2value_3d", "CO2-Ersparnis vs. Wert (3D)"},
	{"investment_value_switcher_chart_bytes", "pdf_chart_label_investval_3D", "Investitionsnutzwert (3D)"},
	{"storage_effect_switcher_chart_bytes", "pdf_chart_label_storageeff_3d", "Speicherwirkung (3D)"},
	{"selfuse_stack_switcher_chart_bytes", "pdf_chart_label_selfusestack_3d", "Eigenverbr. vs. Einspeis. (3D)"},
	{"cost_growth_switcher_chart_bytes", "pdf_chart_label_costgrowth_3d", "Stromkostensteigerung (3D)"},
	{"selfuse_ratio_switcher_chart_bytes", "pdf_chart_label_selfuseratio_3d", "Eigenverbrauchsgrad (3D)"},
	{"roi_comparison_switcher_chart_bytes", "pdf_chart_label_roicompare_3d", "ROI-Vergleich (3D)"},
	{"scenario_comparison_switcher_chart_bytes", "pdf_chart_label_scenariocomp_3d", "Szenarienvergleich (3D)"},
	{"tariff_comparison_switcher_chart_bytes", "pdf_chart_label_tariffcomp_3d", "Vorher/Nachher Stromkosten (3D)"},
	{"income_projection_switcher_chart_bytes", "pdf_chart_label_incomeproj_3d", "Einnahmenprognose (3D)"},
	{"yearly_production_chart_bytes", "pdf_chart_label_pvvis_yearly", "PV Visuals: Jahresproduktion"},
	{"break_even_chart_bytes", "pdf_chart_label_pvvis_breakeven", "PV Visuals: Break-Even"},
	{"amortisation_chart_bytes", "pdf_chart_label_pvvis_amort", "PV Visuals: Amortisation"},
}

// ChartKeys lists the selectable chart identifiers in document order
func ChartKeys() []string {
	keys := make([]string, len(chartCatalog))
	for i, def := range chartCatalog {
		keys[i] = def.key
	}
	return keys
}

func renderVisualizations(rc *renderContext) ([]pdf.Block, error) {
	blocks := []pdf.Block{
		pdf.Paragraph{
			Text:  rc.texts.Get("pdf_visualizations_intro", "Die folgenden Diagramme visualisieren die Ergebnisse Ihrer Photovoltaikanlage und deren Wirtschaftlichkeit:"),
			Style: rc.theme.Normal,
		},
		pdf.Spacer{Height: 3},
	}

	selected := make(map[string]bool, len(rc.options.SelectedChartKeys))
	for _, k := range rc.options.SelectedChartKeys {
		selected[k] = true
	}
	if len(selected) == 0 {
		blocks = append(blocks, pdf.Paragraph{
			Text:  rc.texts.Get("pdf_no_charts_selected_for_section", "Keine Diagramme für diese Sektion ausgewählt."),
			Style: rc.theme.NormalCenter,
		})
		return blocks, nil
	}

	added := 0
	for _, def := range chartCatalog {
		if !selected[def.key] {
			continue
		}
		data := rc.analysis.Chart(def.key)
		if len(data) == 0 {
			continue
		}
		title := rc.texts.Get(def.titleKey, def.defaultTitle)
		img := ImageBlocks(data, rc.contentWidth*0.9, 120, pdf.AlignCenter, "", rc.theme, rc.texts)
		if len(img) == 0 {
			blocks = append(blocks,
				pdf.Paragraph{Text: "(Fehler beim Laden: " + title + ")", Style: rc.theme.NormalCenter},
				pdf.Spacer{Height: 5},
			)
			rc.issues.add("charts", "chart %s not decodable", def.key)
			continue
		}
		blocks = append(blocks, pdf.Paragraph{Text: title, Style: rc.theme.ChartTitle})
		blocks = append(blocks, img...)
		blocks = append(blocks, pdf.Spacer{Height: 7})
		added++
	}
	if added == 0 {
		blocks = append(blocks, pdf.Paragraph{
			Text:  rc.texts.Get("pdf_selected_charts_not_renderable", "Ausgewählte Diagramme konnten nicht geladen/angezeigt werden."),
			Style: rc.theme.NormalCenter,
		})
	}
	return blocks, nil
}

func renderFutureAspects(rc *renderContext) ([]pdf.Block, error) {
	details := rc.project.ProjectDetails
	var parts []string
	if details.FutureEV {
		tpl := rc.texts.Get("pdf_future_ev_text_param",
			"E-Mobilität: Die Anlage ist auf eine zukünftige Erweiterung um ein Elektrofahrzeug vorbereitet. "+
				"Der prognostizierte PV-Anteil an der Fahrzeugladung beträgt ca. {eauto_pv_coverage_kwh} kWh/Jahr.")
		parts = append(parts, strings.ReplaceAll(tpl, "{eauto_pv_coverage_kwh}",
			fmt.Sprintf("%.0f", rc.analysis.KPIOr("eauto_ladung_durch_pv_kwh", 0))))
	}
	if details.FutureHP {
		tpl := rc.texts.Get("pdf_future_hp_text_param",
			"Wärmepumpe: Die Anlage kann zur Unterstützung einer zukünftigen Wärmepumpe beitragen. "+
				"Der geschätzte PV-Deckungsgrad für die Wärmepumpe liegt bei ca. {hp_pv_coverage_pct}%.")
		parts = append(parts, strings.ReplaceAll(tpl, "{hp_pv_coverage_pct}",
			fmt.Sprintf("%.0f", rc.analysis.KPIOr("pv_deckungsgrad_wp_pct", 0))))
	}
	if len(parts) == 0 {
		parts = append(parts, rc.texts.Get("pdf_no_future_aspects_selected", "Keine spezifischen Zukunftsaspekte für dieses Angebot ausgewählt."))
	}

	blocks := make([]pdf.Block, 0, len(parts))
	for _, text := range parts {
		blocks = append(blocks, pdf.Paragraph{Text: text, Style: rc.theme.Normal})
	}
	return blocks, nil
}

// formatKPI renders a named analysis scalar, or the not-available
// marker when the KPI is absent.
func (rc *renderContext) formatKPI(key, unit string, precision int) string {
	if v, ok := rc.analysis.KPI(key); ok {
		return FormatValue(v, unit, precision, NAKeyNotAvailable, rc.texts)
	}
	return rc.texts.Get(NAKeyNotAvailable, "k.A.")
}

// keyValueTable builds a two-column label/value table
func (rc *renderContext) keyValueTable(rows [][2]string, labelFrac float64, valueStyle pdf.TextStyle) pdf.Block {
	cells := make([][]pdf.Cell, 0, len(rows))
	for _, row := range rows {
		cells = append(cells, []pdf.Cell{
			{Text: row[0], Style: rc.theme.TableLabel},
			{Text: row[1], Style: valueStyle},
		})
	}
	return pdf.Table{
		Rows:     cells,
		ColFracs: []float64{labelFrac, 1 - labelFrac},
		Style:    rc.theme.DefaultKeyValueTable(),
	}
}

package domain

// CustomerData identifies the offer recipient as captured by the intake
// forms. All fields may be empty; the document pipeline degrades to
// generic salutations and address lines.
type CustomerData struct {
	Salutation  string `json:"salutation"`
	Title       string `json:"title"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	CompanyName string `json:"companyName"`
	Address     string `json:"address"`
	HouseNumber string `json:"houseNumber"`
	ZipCode     string `json:"zipCode"`
	City        string `json:"city"`
}

// ProjectDetails carries the configured system: selected components,
// storage and accessory choices, and future expansion flags.
type ProjectDetails struct {
	ModuleQuantity     int    `json:"moduleQuantity"`
	SelectedModuleID   *int64 `json:"selectedModuleId,omitempty"`
	SelectedModuleName string `json:"selectedModuleName,omitempty"`

	SelectedInverterID   *int64 `json:"selectedInverterId,omitempty"`
	SelectedInverterName string `json:"selectedInverterName,omitempty"`

	IncludeStorage             bool    `json:"includeStorage"`
	SelectedStorageID          *int64  `json:"selectedStorageId,omitempty"`
	SelectedStorageName        string  `json:"selectedStorageName,omitempty"`
	SelectedStorageCapacityKWh float64 `json:"selectedStorageCapacityKwh,omitempty"`

	IncludeAdditionalComponents bool   `json:"includeAdditionalComponents"`
	SelectedWallboxID           *int64 `json:"selectedWallboxId,omitempty"`
	SelectedEMSID               *int64 `json:"selectedEmsId,omitempty"`
	SelectedOptimizerID         *int64 `json:"selectedOptimizerId,omitempty"`
	SelectedCarportID           *int64 `json:"selectedCarportId,omitempty"`
	SelectedEmergencyPowerID    *int64 `json:"selectedEmergencyPowerId,omitempty"`
	SelectedAnimalDefenseID     *int64 `json:"selectedAnimalDefenseId,omitempty"`

	SatelliteImageBase64 string `json:"satelliteImageBase64,omitempty"`
	VisualizeRoofInPDF   bool   `json:"visualizeRoofInPdf"`

	FutureEV bool `json:"futureEv"`
	FutureHP bool `json:"futureHp"`
}

// ProjectData is the immutable customer/system record consumed by the
// document pipeline.
type ProjectData struct {
	Customer       CustomerData   `json:"customer"`
	ProjectDetails ProjectDetails `json:"projectDetails"`
}

// AnalysisResults carries the analysis engine's output for one project:
// scalar KPIs, simulation time series (length = simulation years, plus an
// optional year-0 seed on the cumulative series) and pre-rendered chart
// images keyed by chart name. Any entry may be absent.
type AnalysisResults struct {
	KPIs   map[string]float64   `json:"kpis,omitempty"`
	Series map[string][]float64 `json:"series,omitempty"`
	Charts map[string][]byte    `json:"charts,omitempty"`
}

// KPI returns a named scalar and whether it is present
func (r *AnalysisResults) KPI(key string) (float64, bool) {
	if r == nil || r.KPIs == nil {
		return 0, false
	}
	v, ok := r.KPIs[key]
	return v, ok
}

// KPIOr returns a named scalar or the given default
func (r *AnalysisResults) KPIOr(key string, def float64) float64 {
	if v, ok := r.KPI(key); ok {
		return v
	}
	return def
}

// SeriesValues returns a named time series, nil when absent
func (r *AnalysisResults) SeriesValues(key string) []float64 {
	if r == nil || r.Series == nil {
		return nil
	}
	return r.Series[key]
}

// Chart returns a named chart image, nil when absent
func (r *AnalysisResults) Chart(key string) []byte {
	if r == nil || r.Charts == nil {
		return nil
	}
	return r.Charts[key]
}

// CompanyInfo is the read-only snapshot of the active installer firm
// passed into a generation run.
type CompanyInfo struct {
	Name          string `json:"name"`
	Street        string `json:"street"`
	ZipCode       string `json:"zipCode"`
	City          string `json:"city"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
	Website       string `json:"website"`
	TaxID         string `json:"taxId"`
	LogoBase64    string `json:"logoBase64,omitempty"`
	PDFFooterText string `json:"pdfFooterText,omitempty"`
}

// InclusionOptions are the caller-supplied toggles controlling optional
// offer content.
type InclusionOptions struct {
	IncludeCompanyLogo              bool     `json:"includeCompanyLogo"`
	IncludeProductImages            bool     `json:"includeProductImages"`
	IncludeOptionalComponentDetails bool     `json:"includeOptionalComponentDetails"`
	IncludeAllDocuments             bool     `json:"includeAllDocuments"`
	CompanyDocumentIDs              []int64  `json:"companyDocumentIds,omitempty"`
	SelectedChartKeys               []string `json:"selectedChartKeys,omitempty"`
}

// Offer section identifiers. Order here is the fixed document order;
// omitted sections are skipped, never reordered.
const (
	SectionProjectOverview     = "ProjectOverview"
	SectionTechnicalComponents = "TechnicalComponents"
	SectionCostDetails         = "CostDetails"
	SectionEconomics           = "Economics"
	SectionSimulationDetails   = "SimulationDetails"
	SectionCO2Savings          = "CO2Savings"
	SectionVisualizations      = "Visualizations"
	SectionFutureAspects       = "FutureAspects"
)

// AllSections lists the full section universe in document order
func AllSections() []string {
	return []string{
		SectionProjectOverview,
		SectionTechnicalComponents,
		SectionCostDetails,
		SectionEconomics,
		SectionSimulationDetails,
		SectionCO2Savings,
		SectionVisualizations,
		SectionFutureAspects,
	}
}

// GenerateOfferRequest is the HTTP payload for one PDF generation run
type GenerateOfferRequest struct {
	Project          ProjectData      `json:"project" validate:"required"`
	Analysis         *AnalysisResults `json:"analysis,omitempty"`
	CompanyID        int64            `json:"companyId" validate:"required,gt=0"`
	TitleImageBase64 string           `json:"titleImageBase64,omitempty"`
	OfferTitleText   string           `json:"offerTitleText,omitempty"`
	CoverLetterText  string           `json:"coverLetterText,omitempty"`
	Sections         []string         `json:"sections,omitempty"`
	Options          InclusionOptions `json:"options"`
}

// ProductDTO is the create/update payload for catalog entries
type ProductDTO struct {
	Category            string   `json:"category" validate:"required,max=50"`
	ModelName           string   `json:"modelName" validate:"required,max=200"`
	Brand               string   `json:"brand" validate:"max=100"`
	PriceEuro           float64  `json:"priceEuro" validate:"gte=0"`
	CapacityW           *float64 `json:"capacityW,omitempty"`
	StoragePowerKW      *float64 `json:"storagePowerKw,omitempty"`
	PowerKW             *float64 `json:"powerKw,omitempty"`
	MaxCycles           *int     `json:"maxCycles,omitempty"`
	WarrantyYears       *int     `json:"warrantyYears,omitempty"`
	LengthM             *float64 `json:"lengthM,omitempty"`
	WidthM              *float64 `json:"widthM,omitempty"`
	WeightKg            *float64 `json:"weightKg,omitempty"`
	EfficiencyPercent   *float64 `json:"efficiencyPercent,omitempty"`
	OriginCountry       string   `json:"originCountry,omitempty"`
	Description         string   `json:"description,omitempty"`
	ImageBase64         string   `json:"imageBase64,omitempty"`
	DatasheetPath       string   `json:"datasheetPath,omitempty"`
	AdditionalCostNetto float64  `json:"additionalCostNetto"`
}

// PaginatedResponse wraps list endpoints
type PaginatedResponse struct {
	Data       interface{} `json:"data"`
	Total      int64       `json:"total"`
	Page       int         `json:"page"`
	PageSize   int         `json:"pageSize"`
	TotalPages int         `json:"totalPages"`
}

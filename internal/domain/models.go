package domain

import (
	"time"

	"github.com/google/uuid"
)

// ProductCategory classifies catalog entries. The values mirror the
// German category names used throughout the sales tooling.
type ProductCategory string

const (
	CategoryModule         ProductCategory = "Modul"
	CategoryInverter       ProductCategory = "Wechselrichter"
	CategoryStorage        ProductCategory = "Batteriespeicher"
	CategoryWallbox        ProductCategory = "Wallbox"
	CategoryEMS            ProductCategory = "Energiemanagementsystem"
	CategoryOptimizer      ProductCategory = "Leistungsoptimierer"
	CategoryCarport        ProductCategory = "Carport"
	CategoryEmergencyPower ProductCategory = "Notstromversorgung"
	CategoryAnimalDefense  ProductCategory = "Tierabwehrschutz"
)

// Product is one row of the component catalog (modules, inverters,
// storage units and accessories). Numeric spec fields are nullable since
// not every category fills every column.
type Product struct {
	ID                  int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	Category            ProductCategory `gorm:"type:varchar(50);not null;index" json:"category"`
	ModelName           string          `gorm:"type:varchar(200);not null;uniqueIndex" json:"modelName"`
	Brand               string          `gorm:"type:varchar(100)" json:"brand"`
	PriceEuro           float64         `gorm:"column:price_euro" json:"priceEuro"`
	CapacityW           *float64        `gorm:"column:capacity_w" json:"capacityW,omitempty"`
	StoragePowerKW      *float64        `gorm:"column:storage_power_kw" json:"storagePowerKw,omitempty"`
	PowerKW             *float64        `gorm:"column:power_kw" json:"powerKw,omitempty"`
	MaxCycles           *int            `gorm:"column:max_cycles" json:"maxCycles,omitempty"`
	WarrantyYears       *int            `gorm:"column:warranty_years" json:"warrantyYears,omitempty"`
	LengthM             *float64        `gorm:"column:length_m" json:"lengthM,omitempty"`
	WidthM              *float64        `gorm:"column:width_m" json:"widthM,omitempty"`
	WeightKg            *float64        `gorm:"column:weight_kg" json:"weightKg,omitempty"`
	EfficiencyPercent   *float64        `gorm:"column:efficiency_percent" json:"efficiencyPercent,omitempty"`
	OriginCountry       string          `gorm:"type:varchar(100)" json:"originCountry,omitempty"`
	Description         string          `gorm:"type:text" json:"description,omitempty"`
	ImageBase64         string          `gorm:"type:text;column:image_base64" json:"imageBase64,omitempty"`
	DatasheetPath       string          `gorm:"type:varchar(500);column:datasheet_path" json:"datasheetPath,omitempty"`
	AdditionalCostNetto float64         `gorm:"column:additional_cost_netto;default:0" json:"additionalCostNetto"`
	CreatedAt           time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP" json:"createdAt"`
	UpdatedAt           time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updatedAt"`
}

// Company is an installer firm on whose behalf offers are generated
type Company struct {
	ID            int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name          string    `gorm:"type:varchar(200);not null" json:"name"`
	Street        string    `gorm:"type:varchar(200)" json:"street"`
	ZipCode       string    `gorm:"type:varchar(20)" json:"zipCode"`
	City          string    `gorm:"type:varchar(100)" json:"city"`
	Phone         string    `gorm:"type:varchar(50)" json:"phone"`
	Email         string    `gorm:"type:varchar(255)" json:"email"`
	Website       string    `gorm:"type:varchar(255)" json:"website"`
	TaxID         string    `gorm:"type:varchar(50);column:tax_id" json:"taxId"`
	LogoBase64    string    `gorm:"type:text;column:logo_base64" json:"logoBase64,omitempty"`
	PDFFooterText string    `gorm:"type:varchar(500);column:pdf_footer_text" json:"pdfFooterText,omitempty"`
	IsActive      bool      `gorm:"not null;default:true;column:is_active" json:"isActive"`
	CreatedAt     time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"createdAt"`
	UpdatedAt     time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updatedAt"`
}

// AdminSetting is a key/value configuration row; values are JSON encoded.
// Holds the offer number counter, PDF design settings and the template
// collections (title images, offer titles, cover letters).
type AdminSetting struct {
	Key       string    `gorm:"type:varchar(100);primaryKey" json:"key"`
	Value     string    `gorm:"type:text;not null" json:"value"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updatedAt"`
}

// CompanyDocument is a PDF (terms, warranty conditions, certificates)
// registered for a company and selectable as offer appendix.
type CompanyDocument struct {
	ID           int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	CompanyID    int64     `gorm:"not null;index;column:company_id" json:"companyId"`
	DisplayName  string    `gorm:"type:varchar(200);not null;column:display_name" json:"displayName"`
	DocumentType string    `gorm:"type:varchar(50);index;column:document_type" json:"documentType"`
	RelativePath string    `gorm:"type:varchar(500);not null;column:relative_path" json:"relativePath"`
	CreatedAt    time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"createdAt"`
}

// GeneratedOffer records one successful PDF generation for history and
// retention housekeeping. The PDF itself lives in file storage.
type GeneratedOffer struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	OfferNumber  string    `gorm:"type:varchar(50);not null;index;column:offer_number" json:"offerNumber"`
	CompanyID    int64     `gorm:"not null;index;column:company_id" json:"companyId"`
	CustomerName string    `gorm:"type:varchar(200);column:customer_name" json:"customerName"`
	AnlageKWp    float64   `gorm:"column:anlage_kwp" json:"anlageKwp"`
	StoragePath  string    `gorm:"type:varchar(500);column:storage_path" json:"storagePath"`
	SizeBytes    int64     `gorm:"column:size_bytes" json:"sizeBytes"`
	Fallback     bool      `gorm:"not null;default:false" json:"fallback"`
	CreatedAt    time.Time `gorm:"not null;default:CURRENT_TIMESTAMP;index" json:"createdAt"`
}

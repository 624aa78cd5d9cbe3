package offer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/sunline-energie/offer-api/internal/domain"
)

func TestSalutationLine(t *testing.T) {
	r := NewTextResolver(nil)

	tests := []struct {
		name     string
		customer domain.CustomerData
		want     string
	}{
		{
			name:     "male with full name",
			customer: domain.CustomerData{Salutation: "Herr", FirstName: "Max", LastName: "Mustermann"},
			want:     "Sehr geehrter Herr Max Mustermann,",
		},
		{
			name:     "male with title",
			customer: domain.CustomerData{Salutation: "herr", Title: "Dr.", LastName: "Weber"},
			want:     "Sehr geehrter Herr Dr. Weber,",
		},
		{
			name:     "female",
			customer: domain.CustomerData{Salutation: "Frau", FirstName: "Erika", LastName: "Musterfrau"},
			want:     "Sehr geehrte Frau Erika Musterfrau,",
		},
		{
			name:     "family by last name",
			customer: domain.CustomerData{Salutation: "Familie", LastName: "Schmidt"},
			want:     "Sehr geehrte Familie Schmidt,",
		},
		{
			name:     "family falls back to company name",
			customer: domain.CustomerData{Salutation: "Familie", CompanyName: "Schmidt GbR"},
			want:     "Sehr geehrte Familie Schmidt GbR,",
		},
		{
			name:     "family without any name",
			customer: domain.CustomerData{Salutation: "Familie"},
			want:     "Sehr geehrte Familie Familie,",
		},
		{
			name:     "company",
			customer: domain.CustomerData{Salutation: "Firma", CompanyName: "Solar GmbH"},
			want:     "Sehr geehrte Damen und Herren der Firma Solar GmbH,",
		},
		{
			name:     "company falls back to last name",
			customer: domain.CustomerData{Salutation: "Firma", LastName: "Huber"},
			want:     "Sehr geehrte Damen und Herren der Firma Huber,",
		},
		{
			name:     "company without name is generic",
			customer: domain.CustomerData{Salutation: "Firma"},
			want:     "Sehr geehrte Damen und Herren,",
		},
		{
			name:     "unknown salutation with name",
			customer: domain.CustomerData{Salutation: "Divers", FirstName: "Kim", LastName: "Kaiser"},
			want:     "Sehr geehrte/r Kim Kaiser,",
		},
		{
			name:     "male without name is generic",
			customer: domain.CustomerData{Salutation: "Herr"},
			want:     "Sehr geehrte Damen und Herren,",
		},
		{
			name:     "empty customer is generic",
			customer: domain.CustomerData{},
			want:     "Sehr geehrte Damen und Herren,",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SalutationLine(tt.customer, r))
		})
	}
}

func TestReplacePlaceholders(t *testing.T) {
	r := NewTextResolver(nil)
	ctx := PlaceholderContext{
		Customer: domain.CustomerData{
			Salutation:  "Herr",
			FirstName:   "Max",
			LastName:    "Mustermann",
			Address:     "Sonnenallee",
			HouseNumber: "12a",
			ZipCode:     "10115",
			City:        "Berlin",
		},
		Company:     domain.CompanyInfo{Name: "Sunline Energie GmbH"},
		OfferNumber: "AN2026-1042",
		Analysis: &domain.AnalysisResults{
			KPIs: map[string]float64{
				"anlage_kwp":              9.84,
				"total_investment_brutto": 19500.0,
			},
		},
		Texts: r,
		Now:   time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC),
	}

	tests := []struct {
		template string
		want     string
	}{
		{"[VollständigeAnrede]", "Sehr geehrter Herr Max Mustermann,"},
		{"[Ihr Name/Firmenname]", "Sunline Energie GmbH"},
		{"Nr. [Angebotsnummer] vom [Datum]", "Nr. AN2026-1042 vom 14.03.2026"},
		{"[KundenStrasseNr], [KundenPLZOrt]", "Sonnenallee 12a, 10115 Berlin"},
		{"[AnlagenleistungkWp]", "9,84 kWp"},
		{"[GesamtinvestitionBrutto]", "19.500,00 €"},
		// Absent KPI renders the not-calculated marker
		{"[FinanziellerVorteilJahr1]", "k.B."},
		// Unknown tokens pass through
		{"[UnbekannterToken]", "[UnbekannterToken]"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ReplacePlaceholders(tt.template, ctx), "template %q", tt.template)
	}
}

func TestReplacePlaceholdersWithoutAnalysis(t *testing.T) {
	r := NewTextResolver(nil)
	ctx := PlaceholderContext{
		Customer: domain.CustomerData{Salutation: "Frau", LastName: "Weber"},
		Texts:    r,
	}

	// Without an analysis the KPI tokens stay verbatim in the template;
	// the not-calculated marker is reserved for an analysis that exists
	// but lacks the value.
	for _, template := range []string{
		"[AnlagenleistungkWp]",
		"[GesamtinvestitionBrutto]",
		"[FinanziellerVorteilJahr1]",
	} {
		assert.Equal(t, template, ReplacePlaceholders(template, ctx))
	}

	got := ReplacePlaceholders("[VollständigeAnrede]", ctx)
	assert.Equal(t, "Sehr geehrte Frau Weber,", got,
		"non-KPI tokens still substitute without an analysis")
}

func TestReplacePlaceholdersCompanyDefault(t *testing.T) {
	r := NewTextResolver(nil)
	got := ReplacePlaceholders("[Ihr Name/Firmenname]", PlaceholderContext{
		Texts: r,
	})
	assert.Equal(t, "Ihr Solarexperte", got)
}

func TestJoinNonEmpty(t *testing.T) {
	assert.Equal(t, "a b", joinNonEmpty(" ", "a", "", "b"))
	assert.Equal(t, "", joinNonEmpty(" ", "", "  "))
	assert.Equal(t, "x", joinNonEmpty(", ", " x "))
}

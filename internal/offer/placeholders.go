package offer

import (
	"strings"
	"time"

	"github.com/sunline-energie/offer-api/internal/domain"
)

// SalutationLine builds the full opening line of a letter, ending in a
// comma. Persons get "Sehr geehrter Herr ..."/"Sehr geehrte Frau ...",
// families and companies their own forms, and anything without a usable
// name falls back to the generic "Sehr geehrte Damen und Herren,".
func SalutationLine(c domain.CustomerData, r *TextResolver) string {
	fullName := joinNonEmpty(" ", c.Title, c.FirstName, c.LastName)

	switch strings.ToLower(strings.TrimSpace(c.Salutation)) {
	case "herr":
		if fullName != "" {
			return r.Get("salutation_male_polite", "Sehr geehrter Herr") + " " + fullName + ","
		}
	case "frau":
		if fullName != "" {
			return r.Get("salutation_female_polite", "Sehr geehrte Frau") + " " + fullName + ","
		}
	case "familie":
		famName := strings.TrimSpace(c.LastName)
		if famName == "" {
			famName = strings.TrimSpace(c.CompanyName)
		}
		if famName == "" {
			famName = r.Get("family_default_name_pdf", "Familie")
		}
		return r.Get("salutation_family_polite", "Sehr geehrte Familie") + " " + famName + ","
	case "firma":
		companyName := strings.TrimSpace(c.CompanyName)
		if companyName == "" {
			companyName = strings.TrimSpace(c.LastName)
		}
		if companyName == "" {
			return r.Get("salutation_generic_fallback", "Sehr geehrte Damen und Herren,")
		}
		return r.Get("salutation_company_polite", "Sehr geehrte Damen und Herren der Firma") + " " + companyName + ","
	default:
		if fullName != "" {
			return r.Get("salutation_polite", "Sehr geehrte/r") + " " + fullName + ","
		}
	}
	return r.Get("salutation_generic_fallback", "Sehr geehrte Damen und Herren,")
}

// PlaceholderContext carries everything token substitution can draw on
type PlaceholderContext struct {
	Customer    domain.CustomerData
	Company     domain.CompanyInfo
	OfferNumber string
	Analysis    *domain.AnalysisResults
	Texts       *TextResolver
	Now         time.Time
}

// ReplacePlaceholders substitutes the square-bracket tokens used in the
// configurable offer title and cover letter templates. Unknown tokens
// pass through untouched. KPI tokens substitute only when an analysis is
// present; values the analysis lacks render the not-calculated marker.
func ReplacePlaceholders(template string, ctx PlaceholderContext) string {
	r := ctx.Texts
	now := ctx.Now
	if now.IsZero() {
		now = time.Now()
	}

	replacements := map[string]string{
		"[VollständigeAnrede]":   SalutationLine(ctx.Customer, r),
		"[Ihr Name/Firmenname]":  companyNameOrDefault(ctx.Company, r),
		"[Angebotsnummer]":       ctx.OfferNumber,
		"[Datum]":                now.Format("02.01.2006"),
		"[KundenNachname]":       ctx.Customer.LastName,
		"[KundenVorname]":        ctx.Customer.FirstName,
		"[KundenAnredeFormell]":  ctx.Customer.Salutation,
		"[KundenTitel]":          ctx.Customer.Title,
		"[KundenStrasseNr]":      joinNonEmpty(" ", ctx.Customer.Address, ctx.Customer.HouseNumber),
		"[KundenPLZOrt]":         joinNonEmpty(" ", ctx.Customer.ZipCode, ctx.Customer.City),
		"[KundenFirmenname]":     ctx.Customer.CompanyName,
	}

	// KPI tokens only exist when an analysis was supplied at all; without
	// one they stay verbatim in the template. A present-but-incomplete
	// analysis renders the not-calculated marker instead.
	if ctx.Analysis != nil {
		replacements["[AnlagenleistungkWp]"] = analysisToken(ctx.Analysis, "anlage_kwp", "kWp", r)
		replacements["[GesamtinvestitionBrutto]"] = analysisToken(ctx.Analysis, "total_investment_brutto", "€", r)
		replacements["[FinanziellerVorteilJahr1]"] = analysisToken(ctx.Analysis, "annual_financial_benefit_year1", "€", r)
	}

	out := template
	for token, value := range replacements {
		out = strings.ReplaceAll(out, token, value)
	}
	return out
}

func analysisToken(a *domain.AnalysisResults, key, unit string, r *TextResolver) string {
	if v, ok := a.KPI(key); ok {
		return FormatValue(v, unit, 2, NAKeyNotCalculated, r)
	}
	return r.Get(NAKeyNotCalculated, "k.B.")
}

func companyNameOrDefault(c domain.CompanyInfo, r *TextResolver) string {
	if strings.TrimSpace(c.Name) != "" {
		return c.Name
	}
	return r.Get("company_name_default_placeholder_pdf", "Ihr Solarexperte")
}

// joinNonEmpty joins the non-blank parts with sep
func joinNonEmpty(sep string, parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			kept = append(kept, strings.TrimSpace(p))
		}
	}
	return strings.Join(kept, sep)
}

package offer

import (
	"context"

	"github.com/sunline-energie/offer-api/internal/domain"
)

// ProductLookup resolves catalog entries referenced by a project
// configuration. A missing product is reported as domain.ErrNotFound.
type ProductLookup interface {
	ByID(ctx context.Context, id int64) (*domain.Product, error)
	ByModelName(ctx context.Context, modelName string) (*domain.Product, error)
}

// SettingsStore reads and writes admin settings. Load unmarshals the
// JSON value into out and reports whether the key existed; Save persists
// the JSON encoding of value.
type SettingsStore interface {
	Load(ctx context.Context, key string, out any) (bool, error)
	Save(ctx context.Context, key string, value any) error
}

// DocumentLookup lists the appendix documents registered for a company.
// An empty documentType matches all types.
type DocumentLookup interface {
	ListCompanyDocuments(ctx context.Context, companyID int64, documentType string) ([]domain.CompanyDocument, error)
}

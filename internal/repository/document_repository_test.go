package repository_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sunline-energie/offer-api/internal/domain"
	"github.com/sunline-energie/offer-api/internal/repository"
)

func TestDocumentRepository(t *testing.T) {
	repo := repository.NewDocumentRepository(testDB(t))
	ctx := context.Background()

	agb := &domain.CompanyDocument{
		CompanyID: 1, DisplayName: "AGB", DocumentType: "terms", RelativePath: "company-1/agb.pdf",
	}
	warranty := &domain.CompanyDocument{
		CompanyID: 1, DisplayName: "Garantiebedingungen", DocumentType: "warranty", RelativePath: "company-1/garantie.pdf",
	}
	other := &domain.CompanyDocument{
		CompanyID: 2, DisplayName: "AGB", DocumentType: "terms", RelativePath: "company-2/agb.pdf",
	}
	for _, doc := range []*domain.CompanyDocument{agb, warranty, other} {
		require.NoError(t, repo.Create(ctx, doc))
	}

	t.Run("get by id", func(t *testing.T) {
		loaded, err := repo.GetByID(ctx, agb.ID)
		require.NoError(t, err)
		assert.Equal(t, "AGB", loaded.DisplayName)

		_, err = repo.GetByID(ctx, 4711)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("list scoped to company", func(t *testing.T) {
		docs, err := repo.ListCompanyDocuments(ctx, 1, "")
		require.NoError(t, err)
		require.Len(t, docs, 2)
		assert.Equal(t, "AGB", docs[0].DisplayName, "ordered by display name")
	})

	t.Run("list filtered by type", func(t *testing.T) {
		docs, err := repo.ListCompanyDocuments(ctx, 1, "warranty")
		require.NoError(t, err)
		require.Len(t, docs, 1)
		assert.Equal(t, warranty.ID, docs[0].ID)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, warranty.ID))
		assert.ErrorIs(t, repo.Delete(ctx, warranty.ID), domain.ErrNotFound)
	})
}

package repository_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sunline-energie/offer-api/internal/domain"
	"github.com/sunline-energie/offer-api/internal/repository"
)

func TestCompanyRepositoryCRUD(t *testing.T) {
	repo := repository.NewCompanyRepository(testDB(t))
	ctx := context.Background()

	company := &domain.Company{Name: "Sunline Energie GmbH", City: "Berlin", IsActive: true}
	require.NoError(t, repo.Create(ctx, company))
	require.NotZero(t, company.ID)

	loaded, err := repo.GetByID(ctx, company.ID)
	require.NoError(t, err)
	assert.Equal(t, "Sunline Energie GmbH", loaded.Name)
	assert.True(t, loaded.IsActive)

	loaded.City = "Potsdam"
	require.NoError(t, repo.Update(ctx, loaded))
	updated, err := repo.GetByID(ctx, company.ID)
	require.NoError(t, err)
	assert.Equal(t, "Potsdam", updated.City)

	require.NoError(t, repo.Delete(ctx, company.ID))
	_, err = repo.GetByID(ctx, company.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, company.ID), domain.ErrNotFound)
}

func TestCompanyRepositoryListAndSetActive(t *testing.T) {
	repo := repository.NewCompanyRepository(testDB(t))
	ctx := context.Background()

	active := &domain.Company{Name: "Aktiv GmbH", IsActive: true}
	dormant := &domain.Company{Name: "Ruhend AG", IsActive: true}
	require.NoError(t, repo.Create(ctx, active))
	require.NoError(t, repo.Create(ctx, dormant))
	require.NoError(t, repo.SetActive(ctx, dormant.ID, false))

	all, err := repo.List(ctx, false)
	require.NoError(t, err)
	assert.Len(t, all, 2)
	assert.Equal(t, "Aktiv GmbH", all[0].Name, "ordered by name")

	onlyActive, err := repo.List(ctx, true)
	require.NoError(t, err)
	require.Len(t, onlyActive, 1)
	assert.Equal(t, active.ID, onlyActive[0].ID)

	assert.ErrorIs(t, repo.SetActive(ctx, 4711, true), domain.ErrNotFound)
}

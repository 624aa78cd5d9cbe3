package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sunline-energie/offer-api/internal/domain"
	"github.com/sunline-energie/offer-api/internal/repository"
)

func seedOffer(t *testing.T, repo *repository.OfferRepository, companyID int64, createdAt time.Time) *domain.GeneratedOffer {
	t.Helper()
	offer := &domain.GeneratedOffer{
		OfferNumber:  "AN2026-" + uuid.NewString()[:4],
		CompanyID:    companyID,
		CustomerName: "Max Mustermann",
		StoragePath:  "offers/" + uuid.NewString() + ".pdf",
		SizeBytes:    2048,
		CreatedAt:    createdAt,
	}
	require.NoError(t, repo.Create(context.Background(), offer))
	return offer
}

func TestOfferRepositoryCreateAssignsID(t *testing.T) {
	repo := repository.NewOfferRepository(testDB(t))

	offer := seedOffer(t, repo, 1, time.Now().UTC())
	assert.NotEqual(t, uuid.Nil, offer.ID)

	loaded, err := repo.GetByID(context.Background(), offer.ID)
	require.NoError(t, err)
	assert.Equal(t, offer.OfferNumber, loaded.OfferNumber)
	assert.Equal(t, "Max Mustermann", loaded.CustomerName)
}

func TestOfferRepositoryGetByIDNotFound(t *testing.T) {
	repo := repository.NewOfferRepository(testDB(t))
	_, err := repo.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestOfferRepositoryListFiltersByCompany(t *testing.T) {
	repo := repository.NewOfferRepository(testDB(t))
	now := time.Now().UTC()

	seedOffer(t, repo, 1, now.Add(-2*time.Hour))
	newest := seedOffer(t, repo, 1, now)
	seedOffer(t, repo, 2, now.Add(-time.Hour))

	offers, total, err := repo.List(context.Background(), 1, 1, 20)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, offers, 2)
	assert.Equal(t, newest.ID, offers[0].ID, "newest offer listed first")

	offers, total, err = repo.List(context.Background(), 0, 1, 20)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Len(t, offers, 3)
}

func TestOfferRepositoryListOlderThan(t *testing.T) {
	repo := repository.NewOfferRepository(testDB(t))
	now := time.Now().UTC()

	oldest := seedOffer(t, repo, 1, now.Add(-120*24*time.Hour))
	older := seedOffer(t, repo, 1, now.Add(-100*24*time.Hour))
	seedOffer(t, repo, 1, now.Add(-10*24*time.Hour))

	cutoff := now.Add(-90 * 24 * time.Hour)

	offers, err := repo.ListOlderThan(context.Background(), cutoff, 0)
	require.NoError(t, err)
	require.Len(t, offers, 2)
	assert.Equal(t, oldest.ID, offers[0].ID, "oldest first")
	assert.Equal(t, older.ID, offers[1].ID)

	limited, err := repo.ListOlderThan(context.Background(), cutoff, 1)
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, oldest.ID, limited[0].ID)
}

func TestOfferRepositoryDelete(t *testing.T) {
	repo := repository.NewOfferRepository(testDB(t))

	offer := seedOffer(t, repo, 1, time.Now().UTC())
	require.NoError(t, repo.Delete(context.Background(), offer.ID))

	_, err := repo.GetByID(context.Background(), offer.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.ErrorIs(t, repo.Delete(context.Background(), offer.ID), domain.ErrNotFound)
}

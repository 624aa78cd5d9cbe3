package jobs

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/sunline-energie/offer-api/internal/domain"
	"github.com/sunline-energie/offer-api/internal/repository"
	"github.com/sunline-energie/offer-api/internal/storage"
)

// OfferCleanupJobName is the name of the generated-offer retention job
const OfferCleanupJobName = "offer_cleanup"

// cleanupBatchSize bounds how many offers one sweep removes
const cleanupBatchSize = 500

// OfferCleanupJob deletes generated offer documents past the retention
// window, both the stored file and the history row.
type OfferCleanupJob struct {
	offers    *repository.OfferRepository
	store     storage.Storage
	retention time.Duration
	timeout   time.Duration
	logger    *zap.Logger
}

func NewOfferCleanupJob(offers *repository.OfferRepository, store storage.Storage, retention time.Duration, logger *zap.Logger) *OfferCleanupJob {
	return &OfferCleanupJob{
		offers:    offers,
		store:     store,
		retention: retention,
		timeout:   10 * time.Minute,
		logger:    logger,
	}
}

// Name identifies the job to the scheduler.
func (j *OfferCleanupJob) Name() string { return OfferCleanupJobName }

// Run executes one retention sweep
func (j *OfferCleanupJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	cutoff := time.Now().UTC().Add(-j.retention)
	expired, err := j.offers.ListOlderThan(ctx, cutoff, cleanupBatchSize)
	if err != nil {
		j.logger.Error("offer cleanup: failed to list expired offers", zap.Error(err))
		return
	}
	if len(expired) == 0 {
		return
	}

	deleted := 0
	failed := 0
	for _, record := range expired {
		if err := j.deleteOffer(ctx, &record); err != nil {
			j.logger.Warn("offer cleanup: failed to delete offer",
				zap.String("offerNumber", record.OfferNumber),
				zap.Error(err),
			)
			failed++
			continue
		}
		deleted++
	}

	j.logger.Info("offer cleanup completed",
		zap.Time("cutoff", cutoff),
		zap.Int("deleted", deleted),
		zap.Int("failed", failed),
	)
}

func (j *OfferCleanupJob) deleteOffer(ctx context.Context, record *domain.GeneratedOffer) error {
	if record.StoragePath != "" {
		if err := j.store.Delete(ctx, record.StoragePath); err != nil {
			j.logger.Warn("offer cleanup: stored document not removed",
				zap.String("path", record.StoragePath),
				zap.Error(err),
			)
		}
	}
	return j.offers.Delete(ctx, record.ID)
}

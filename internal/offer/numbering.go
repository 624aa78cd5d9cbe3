package offer

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// offerNumberSuffixKey is the admin setting holding the running counter
const offerNumberSuffixKey = "offer_number_suffix"

// offerNumberSuffixStart seeds the counter so the first issued number
// ends in -1001.
const offerNumberSuffixStart = 1000

// OfferNumberGenerator issues sequential offer numbers in the form
// "AN{year}-{suffix}" backed by the admin settings counter. When the
// counter cannot be read or advanced, a timestamp-based number is issued
// instead so document generation never blocks on the settings store.
type OfferNumberGenerator struct {
	settings SettingsStore
	logger   *zap.Logger
	now      func() time.Time
}

// NewOfferNumberGenerator wires the generator to a settings store
func NewOfferNumberGenerator(settings SettingsStore, logger *zap.Logger) *OfferNumberGenerator {
	return &OfferNumberGenerator{settings: settings, logger: logger, now: time.Now}
}

// Next advances the counter and returns the new offer number
func (g *OfferNumberGenerator) Next(ctx context.Context) string {
	now := g.now()
	suffix := offerNumberSuffixStart
	found, err := g.settings.Load(ctx, offerNumberSuffixKey, &suffix)
	if err != nil {
		g.logger.Warn("offer number counter unreadable, issuing timestamp number", zap.Error(err))
		return g.timestampNumber(now)
	}
	if !found {
		suffix = offerNumberSuffixStart
	}
	suffix++
	if err := g.settings.Save(ctx, offerNumberSuffixKey, suffix); err != nil {
		g.logger.Warn("offer number counter not persisted, issuing timestamp number", zap.Error(err))
		return g.timestampNumber(now)
	}
	return fmt.Sprintf("AN%d-%04d", now.Year(), suffix)
}

func (g *OfferNumberGenerator) timestampNumber(now time.Time) string {
	return "AN" + now.Format("20060102-150405")
}

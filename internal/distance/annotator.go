// Package distance provides the distance annotation step applied to
// search results when a zip filter is present.
package distance

import (
	"context"

	"go.uber.org/zap"

	"contractor-directory/internal/domain"
)

// ZipAnnotator implements domain.DistanceAnnotator.
//
// No geocoding backend is wired up yet, so Annotate is an identity
// pass-through: no distance is computed and the input order is
// preserved. A haversine implementation can replace this without
// changing callers.
type ZipAnnotator struct {
	logger *zap.Logger
}

// New creates a new ZipAnnotator.
func New(logger *zap.Logger) *ZipAnnotator {
	return &ZipAnnotator{logger: logger}
}

// Annotate returns the contractors unchanged. It never errors for a
// well-formed zip; the caller filters malformed zips before this stage.
func (a *ZipAnnotator) Annotate(_ context.Context, contractors []*domain.Contractor, zip string) ([]*domain.Contractor, error) {
	a.logger.Debug("distance annotation skipped, no geocoding backend",
		zap.String("zip", zip),
		zap.Int("count", len(contractors)),
	)

	return contractors, nil
}

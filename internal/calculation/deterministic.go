package calculation

import (
	"github.com/google/uuid"
	"github.com/rpgo/portfolio-simulator/internal/domain"
)

// seedFunc returns a fresh replayable seed when the caller supplies none
// (override for deterministic tests).
var seedFunc = func() domain.Seed { return domain.Seed(uuid.NewString()) }

// SetSeedFunc overrides the seed provider (use only in tests).
func SetSeedFunc(f func() domain.Seed) { seedFunc = f }

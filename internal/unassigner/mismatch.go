package unassigner

import (
	"math"

	"github.com/Ulthran/unassigner/internal/align"
)

// Mismatcher evaluates a full-length alignment into a result row.
type Mismatcher interface {
	Evaluate(a align.Alignment) Result
}

// ConstantMismatcher models every subject position outside the observed
// region with the same per-position mismatch rate, learned from the region
// under a beta prior.
type ConstantMismatcher struct {
	// PriorAlpha and PriorBeta parameterize the beta prior on the
	// per-position mismatch rate
	PriorAlpha float64
	PriorBeta  float64

	// MinID is the full-length identity threshold separating compatible
	// from incompatible alignments, on a 0-1 scale
	MinID float64
}

// NewConstantMismatcher returns a mismatcher for the identity threshold
// with the default weak prior.
func NewConstantMismatcher(minID, priorAlpha, priorBeta float64) *ConstantMismatcher {
	return &ConstantMismatcher{
		PriorAlpha: priorAlpha,
		PriorBeta:  priorBeta,
		MinID:      minID,
	}
}

// Evaluate computes the posterior predictive probability that the subject
// positions outside the observed region carry enough additional mismatches
// to push the full-length identity below MinID.
func (cm *ConstantMismatcher) Evaluate(a align.Alignment) Result {
	region := align.WithoutEndgaps(a).TrimEnds()

	positions := region.Columns()
	matches := region.CountMatches()
	mismatches := positions - matches

	// posterior over the mismatch rate after observing the region
	alpha := float64(mismatches) + cm.PriorAlpha
	beta := float64(matches) + cm.PriorBeta

	nonregion := a.SubjectLen - region.SubjectLen()
	total := positions + nonregion

	maxTotal := int(math.Floor((1 - cm.MinID) * float64(total)))
	maxNonregion := maxTotal - mismatches

	probCompatible := betaBinomialCDF(maxNonregion, nonregion, alpha, beta)

	return Result{
		QueryID:                     a.QueryID,
		TypestrainID:                a.SubjectID,
		ProbabilityIncompatible:     1 - probCompatible,
		RegionMismatches:            mismatches,
		RegionPositions:             positions,
		RegionMatches:               matches,
		NonregionPositionsInSubject: nonregion,
		MaxNonregionMismatches:      maxNonregion,
	}
}

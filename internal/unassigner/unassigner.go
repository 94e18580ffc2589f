// Package unassigner decides, per query fragment already assigned to a type
// strain species, the probability that its full-length identity to the type
// strain falls below an identity threshold.
package unassigner

import (
	"sort"

	"github.com/Ulthran/unassigner/internal/align"
	"github.com/Ulthran/unassigner/internal/fasta"
)

// Aligner produces full-length alignments of query fragments against the
// type strain sequences.
type Aligner interface {
	SearchSpecies(queries []fasta.Record) ([]align.Alignment, error)
}

// Algorithm is the unassignment pipeline: one batch search, candidate
// filtering per query, and a mismatch evaluation per kept candidate.
type Algorithm struct {
	aligner    Aligner
	mismatcher Mismatcher

	// minPercentID is the identity filter for candidate alignments, on the
	// same 0-1 scale as Alignment.PercentID
	minPercentID float64
}

// NewAlgorithm assembles the pipeline.
func NewAlgorithm(aligner Aligner, mismatcher Mismatcher, minPercentID float64) *Algorithm {
	return &Algorithm{
		aligner:      aligner,
		mismatcher:   mismatcher,
		minPercentID: minPercentID,
	}
}

// Unassign evaluates all queries in one batch. Results come back grouped by
// query in input order; a query without a single alignment gets one NA
// sentinel row so is still accounted for downstream.
func (alg *Algorithm) Unassign(queries []fasta.Record) ([]Result, error) {
	alignments, err := alg.aligner.SearchSpecies(queries)
	if err != nil {
		return nil, err
	}

	grouped := make(map[string][]align.Alignment, len(queries))
	for _, a := range alignments {
		grouped[a.QueryID] = append(grouped[a.QueryID], a)
	}

	results := make([]Result, 0, len(queries))
	for _, query := range queries {
		candidates := filterCandidates(grouped[query.ID], alg.minPercentID)
		if len(candidates) == 0 {
			results = append(results, Result{QueryID: query.ID, TypestrainID: naMarker, NA: true})
			continue
		}

		for _, a := range candidates {
			results = append(results, alg.mismatcher.Evaluate(a))
		}
	}

	return results, nil
}

// filterCandidates orders a query's alignments by descending identity and
// keeps the ones strictly above the threshold. When none clear it, the
// single best alignment is kept so the query still gets an answer.
func filterCandidates(alignments []align.Alignment, minPercentID float64) []align.Alignment {
	if len(alignments) == 0 {
		return nil
	}

	sorted := make([]align.Alignment, len(alignments))
	copy(sorted, alignments)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].PercentID > sorted[j].PercentID
	})

	var kept []align.Alignment
	for _, a := range sorted {
		if a.PercentID > minPercentID {
			kept = append(kept, a)
		}
	}
	if len(kept) == 0 {
		kept = sorted[:1]
	}

	return kept
}

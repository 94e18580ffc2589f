package unassigner

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// naMarker fills the value columns of the sentinel row for a query with no
// alignment. Distinct from zero: nothing was measured.
const naMarker = "NA"

// resultColumns is the header of the output table.
var resultColumns = []string{
	"query_id",
	"typestrain_id",
	"probability_incompatible",
	"region_mismatches",
	"region_positions",
	"region_matches",
	"nonregion_positions_in_subject",
	"max_nonregion_mismatches",
}

// Result is the evaluation of one (query, type strain candidate) pair.
type Result struct {
	// QueryID is the id of the query fragment
	QueryID string

	// TypestrainID is the id of the candidate type strain sequence
	TypestrainID string

	// ProbabilityIncompatible is the probability that the full-length
	// identity falls below the threshold, in [0, 1]
	ProbabilityIncompatible float64

	// RegionMismatches, RegionPositions and RegionMatches describe the
	// observed aligned region
	RegionMismatches int
	RegionPositions  int
	RegionMatches    int

	// NonregionPositionsInSubject counts the subject positions outside the
	// observed region
	NonregionPositionsInSubject int

	// MaxNonregionMismatches is the largest number of unobserved mismatches
	// that would still keep the full-length identity above the threshold
	MaxNonregionMismatches int

	// NA marks the sentinel row of a query with no alignment
	NA bool
}

// row formats the result for the output table.
func (r Result) row() []string {
	if r.NA {
		return []string{
			r.QueryID,
			naMarker, naMarker, naMarker, naMarker, naMarker, naMarker, naMarker,
		}
	}

	return []string{
		r.QueryID,
		r.TypestrainID,
		strconv.FormatFloat(r.ProbabilityIncompatible, 'g', -1, 64),
		strconv.Itoa(r.RegionMismatches),
		strconv.Itoa(r.RegionPositions),
		strconv.Itoa(r.RegionMatches),
		strconv.Itoa(r.NonregionPositionsInSubject),
		strconv.Itoa(r.MaxNonregionMismatches),
	}
}

// WriteResults writes the header and one tab separated row per result.
func WriteResults(w io.Writer, results []Result) error {
	if _, err := fmt.Fprintln(w, strings.Join(resultColumns, "\t")); err != nil {
		return fmt.Errorf("failed to write results header: %v", err)
	}

	for _, r := range results {
		if _, err := fmt.Fprintln(w, strings.Join(r.row(), "\t")); err != nil {
			return fmt.Errorf("failed to write result row for %s: %v", r.QueryID, err)
		}
	}

	return nil
}

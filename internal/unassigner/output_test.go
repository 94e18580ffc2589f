package unassigner

import (
	"bytes"
	"testing"
)

func Test_WriteResults(t *testing.T) {
	results := []Result{
		{
			QueryID:                     "q1",
			TypestrainID:                "s1",
			ProbabilityIncompatible:     1,
			RegionMismatches:            1,
			RegionPositions:             10,
			RegionMatches:               9,
			NonregionPositionsInSubject: 0,
			MaxNonregionMismatches:      -1,
		},
		{
			QueryID:                     "q2",
			TypestrainID:                "s2",
			ProbabilityIncompatible:     0.25,
			RegionMismatches:            0,
			RegionPositions:             20,
			RegionMatches:               20,
			NonregionPositionsInSubject: 5,
			MaxNonregionMismatches:      2,
		},
		{
			QueryID:      "q3",
			TypestrainID: "NA",
			NA:           true,
		},
	}

	var buf bytes.Buffer
	if err := WriteResults(&buf, results); err != nil {
		t.Fatalf("WriteResults() error = %v", err)
	}

	want := "query_id\ttypestrain_id\tprobability_incompatible\tregion_mismatches\tregion_positions\tregion_matches\tnonregion_positions_in_subject\tmax_nonregion_mismatches\n" +
		"q1\ts1\t1\t1\t10\t9\t0\t-1\n" +
		"q2\ts2\t0.25\t0\t20\t20\t5\t2\n" +
		"q3\tNA\tNA\tNA\tNA\tNA\tNA\tNA\n"

	if buf.String() != want {
		t.Errorf("WriteResults() wrote:\n%s\nwant:\n%s", buf.String(), want)
	}
}

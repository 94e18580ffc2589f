// Package align models full-length pairwise alignments between query
// fragments and type strain sequences: the alignment and region types, a
// semiglobal aligner, and the extender that repairs partial search hits
// into alignments spanning both complete sequences.
package align

// gapChar marks a gap position in an aligned sequence.
const gapChar = '-'

// Alignment is a completed pairwise alignment covering both the full query
// and the full subject sequence, end to end. It is treated as read-only
// once constructed.
type Alignment struct {
	// QueryID is the id of the query fragment
	QueryID string

	// QuerySeq is the aligned query sequence, '-' gap characters included
	QuerySeq string

	// SubjectID is the id of the type strain sequence
	SubjectID string

	// SubjectSeq is the aligned subject sequence, '-' gap characters included
	SubjectSeq string

	// QueryLen is the ungapped length of the query
	QueryLen int

	// SubjectLen is the ungapped length of the subject
	SubjectLen int

	// PercentID is the identity reported by the search step, on a 0-1 scale
	PercentID float64
}

// New builds an Alignment from a pair of aligned sequences, deriving the
// ungapped lengths. The aligned sequences must be the same length and
// non-empty.
func New(queryID, querySeq, subjectID, subjectSeq string, percentID float64) (Alignment, error) {
	if len(querySeq) != len(subjectSeq) {
		return Alignment{}, newCoordError(queryID, subjectID, "aligned sequences differ in length")
	}
	if len(querySeq) == 0 {
		return Alignment{}, newCoordError(queryID, subjectID, "empty alignment")
	}

	return Alignment{
		QueryID:    queryID,
		QuerySeq:   querySeq,
		SubjectID:  subjectID,
		SubjectSeq: subjectSeq,
		QueryLen:   ungappedLen(querySeq),
		SubjectLen: ungappedLen(subjectSeq),
		PercentID:  percentID,
	}, nil
}

// Columns returns the number of columns in the alignment.
func (a Alignment) Columns() int {
	return len(a.QuerySeq)
}

// ungappedLen counts the non-gap characters of an aligned sequence.
func ungappedLen(seq string) (n int) {
	for i := 0; i < len(seq); i++ {
		if seq[i] != gapChar {
			n++
		}
	}

	return
}

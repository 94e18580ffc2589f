package align

import (
	"strings"

	"github.com/Ulthran/unassigner/internal/fasta"
)

// Hit is a single local alignment reported by the search step. Coordinates
// are 1-based and inclusive, covering only the locally aligned span of each
// sequence.
type Hit struct {
	// QueryID is the id of the query sequence
	QueryID string

	// SubjectID is the id of the matched type strain sequence
	SubjectID string

	// PercentID is the identity of the local alignment as reported by the
	// search tool, on a 0-100 scale
	PercentID float64

	// Length is the number of columns in the local alignment
	Length int

	// Mismatches is the number of mismatched columns
	Mismatches int

	// GapOpens is the number of gap openings
	GapOpens int

	// QueryStart and QueryEnd are the span of the hit on the query
	QueryStart int
	QueryEnd   int

	// SubjectStart and SubjectEnd are the span of the hit on the subject
	SubjectStart int
	SubjectEnd   int

	// QueryLen and SubjectLen are the full ungapped sequence lengths
	QueryLen   int
	SubjectLen int

	// QuerySeq and SubjectSeq are the aligned substrings of the local
	// alignment, gap characters included
	QuerySeq   string
	SubjectSeq string
}

// isGlobal reports whether the local alignment already covers both
// sequences completely.
func (h Hit) isGlobal() bool {
	return h.QueryStart == 1 &&
		h.SubjectStart == 1 &&
		h.QueryEnd == h.QueryLen &&
		h.SubjectEnd == h.SubjectLen
}

// needsRealignment reports whether both sequences carry unaligned bases on
// the same end. Those flanks hold real sequence on both sides, so no amount
// of gap padding can reconcile them.
func (h Hit) needsRealignment() bool {
	moreToTheLeft := h.QueryStart > 1 && h.SubjectStart > 1
	moreToTheRight := h.QueryEnd < h.QueryLen && h.SubjectEnd < h.SubjectLen

	return moreToTheLeft || moreToTheRight
}

// validate checks the hit's coordinates against the full sequence lengths.
func (h Hit) validate() error {
	if h.QueryStart < 1 || h.SubjectStart < 1 {
		return newCoordError(h.QueryID, h.SubjectID, "start position less than 1")
	}
	if h.QueryEnd > h.QueryLen || h.SubjectEnd > h.SubjectLen {
		return newCoordError(h.QueryID, h.SubjectID, "end position greater than sequence length")
	}
	if h.QueryStart > h.QueryEnd || h.SubjectStart > h.SubjectEnd {
		return newCoordError(h.QueryID, h.SubjectID, "start position greater than end position")
	}
	if len(h.QuerySeq) != len(h.SubjectSeq) || len(h.QuerySeq) == 0 {
		return newCoordError(h.QueryID, h.SubjectID, "aligned substrings empty or of unequal length")
	}

	return nil
}

// Extender turns local search hits into alignments that span both complete
// sequences, padding the ends with gaps where only one sequence overhangs
// and realigning from scratch where both do.
type Extender struct {
	// queries maps query ids to their full ungapped sequences
	queries map[string]string

	// subjects maps subject ids to their full ungapped sequences
	subjects map[string]string

	// Fetch, if set, retrieves a full subject sequence that is missing
	// from subjects (a database lookup)
	Fetch func(id string) (string, error)

	// Scoring is used when a hit requires full realignment
	Scoring Scoring
}

// NewExtender builds an Extender over the full query and subject sequences.
func NewExtender(queries, subjects []fasta.Record) *Extender {
	return &Extender{
		queries:  fasta.SeqMap(queries),
		subjects: fasta.SeqMap(subjects),
		Scoring:  DefaultScoring,
	}
}

// Extend reconstructs the complete pairwise alignment behind a local hit.
// Hits with inconsistent coordinates fail with a *CoordError; hits whose
// full sequences cannot be found fail with a *MissingSeqError.
func (x *Extender) Extend(h Hit) (Alignment, error) {
	if err := h.validate(); err != nil {
		return Alignment{}, err
	}
	percentID := h.PercentID / 100

	// the local alignment may already be the whole story
	if h.isGlobal() {
		return New(h.QueryID, h.QuerySeq, h.SubjectID, h.SubjectSeq, percentID)
	}

	qseq, ok := x.queries[h.QueryID]
	if !ok {
		return Alignment{}, &MissingSeqError{ID: h.QueryID}
	}
	if len(qseq) != h.QueryLen {
		return Alignment{}, newCoordError(h.QueryID, h.SubjectID, "query sequence length does not match the hit")
	}

	sseq, err := x.subjectSeq(h.SubjectID)
	if err != nil {
		return Alignment{}, err
	}
	if len(sseq) != h.SubjectLen {
		return Alignment{}, newCoordError(h.QueryID, h.SubjectID, "subject sequence length does not match the hit")
	}

	if h.needsRealignment() {
		alignedQ, alignedS := Semiglobal(qseq, sseq, x.Scoring)
		return New(h.QueryID, alignedQ, h.SubjectID, alignedS, percentID)
	}

	qLeft, sLeft, err := addEndgapsLeft(h, qseq, sseq)
	if err != nil {
		return Alignment{}, err
	}
	qRight, sRight, err := addEndgapsRight(h, qseq, sseq)
	if err != nil {
		return Alignment{}, err
	}

	return New(
		h.QueryID, qLeft+h.QuerySeq+qRight,
		h.SubjectID, sLeft+h.SubjectSeq+sRight,
		percentID,
	)
}

// subjectSeq looks the subject up in memory first and falls back to the
// Fetch callback.
func (x *Extender) subjectSeq(id string) (string, error) {
	if seq, ok := x.subjects[id]; ok {
		return seq, nil
	}
	if x.Fetch == nil {
		return "", &MissingSeqError{ID: id}
	}

	seq, err := x.Fetch(id)
	if err != nil {
		return "", &MissingSeqError{ID: id, Err: err}
	}

	return seq, nil
}

// addEndgapsLeft pads the left end of the alignment. At most one sequence
// may overhang there: its extra bases are restored and the other side is
// filled with gaps.
func addEndgapsLeft(h Hit, qseq, sseq string) (qpad, spad string, err error) {
	switch {
	case h.QueryStart == 1 && h.SubjectStart == 1:
		return "", "", nil
	case h.QueryStart > 1 && h.SubjectStart == 1:
		n := h.QueryStart - 1
		return qseq[:n], strings.Repeat("-", n), nil
	case h.QueryStart == 1 && h.SubjectStart > 1:
		n := h.SubjectStart - 1
		return strings.Repeat("-", n), sseq[:n], nil
	case h.QueryStart > 1 && h.SubjectStart > 1:
		return "", "", newCoordError(h.QueryID, h.SubjectID, "unaligned sequence on the left of both query and subject")
	}

	return "", "", newCoordError(h.QueryID, h.SubjectID, "query or subject start position less than 1")
}

// addEndgapsRight pads the right end of the alignment, symmetric to
// addEndgapsLeft.
func addEndgapsRight(h Hit, qseq, sseq string) (qpad, spad string, err error) {
	switch {
	case h.QueryEnd == h.QueryLen && h.SubjectEnd == h.SubjectLen:
		return "", "", nil
	case h.QueryEnd < h.QueryLen && h.SubjectEnd == h.SubjectLen:
		n := h.QueryLen - h.QueryEnd
		return qseq[len(qseq)-n:], strings.Repeat("-", n), nil
	case h.QueryEnd == h.QueryLen && h.SubjectEnd < h.SubjectLen:
		n := h.SubjectLen - h.SubjectEnd
		return strings.Repeat("-", n), sseq[len(sseq)-n:], nil
	case h.QueryEnd < h.QueryLen && h.SubjectEnd < h.SubjectLen:
		return "", "", newCoordError(h.QueryID, h.SubjectID, "unaligned sequence on the right of both query and subject")
	}

	return "", "", newCoordError(h.QueryID, h.SubjectID, "query or subject end position greater than length")
}

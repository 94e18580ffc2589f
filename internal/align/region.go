package align

import "strings"

// Region is a view over a contiguous column range of an alignment. It does
// not copy the aligned sequences; counts are derived on demand.
type Region struct {
	aln Alignment

	// start is the first column of the range
	start int

	// end is one past the last column of the range
	end int
}

// WithoutEndgaps returns the widest region of the alignment whose first and
// last columns have a base in both sequences, recovering the span the search
// step actually observed. An alignment with no such column yields an empty
// region.
func WithoutEndgaps(a Alignment) Region {
	start, end := shrink(a, 0, a.Columns())
	return Region{aln: a, start: start, end: end}
}

// TrimEnds removes any terminal columns that cannot be counted as a match or
// mismatch (a gap in either sequence), re-establishing the invariant that
// the region starts and ends on a base-to-base column. Trimming an already
// trimmed region returns it unchanged.
func (r Region) TrimEnds() Region {
	start, end := shrink(r.aln, r.start, r.end)
	return Region{aln: r.aln, start: start, end: end}
}

// shrink narrows [start, end) until both boundary columns are gapless in
// both sequences. A range with no such column collapses to an empty one.
func shrink(a Alignment, start, end int) (int, int) {
	for start < end && (a.QuerySeq[start] == gapChar || a.SubjectSeq[start] == gapChar) {
		start++
	}
	for end > start && (a.QuerySeq[end-1] == gapChar || a.SubjectSeq[end-1] == gapChar) {
		end--
	}
	if start == end {
		return 0, 0
	}

	return start, end
}

// Columns returns the number of alignment columns in the region.
func (r Region) Columns() int {
	return r.end - r.start
}

// SubjectLen counts the subject bases within the region, ignoring gaps.
func (r Region) SubjectLen() int {
	return ungappedLen(r.aln.SubjectSeq[r.start:r.end])
}

// CountMatches counts the columns whose query and subject bases are equal,
// case-insensitively. Columns with a gap on either side never count.
func (r Region) CountMatches() (matches int) {
	qseq := strings.ToUpper(r.aln.QuerySeq[r.start:r.end])
	sseq := strings.ToUpper(r.aln.SubjectSeq[r.start:r.end])
	for i := 0; i < len(qseq); i++ {
		if qseq[i] == sseq[i] && qseq[i] != gapChar {
			matches++
		}
	}

	return
}

package align

import "math"

// Scoring holds the substitution scores and affine gap penalties for
// semiglobal realignment. A gap of length L costs GapOpen + (L-1)*GapExtend;
// gaps at the very start or end of either sequence are free.
type Scoring struct {
	// Match is the score for a pair of identical bases
	Match float64

	// Mismatch is the score for a pair of differing bases
	Mismatch float64

	// GapOpen is the cost of the first position of a gap
	GapOpen float64

	// GapExtend is the cost of each additional gap position
	GapExtend float64
}

// DefaultScoring rewards matches heavily and makes gaps expensive to open,
// so overhanging ends are absorbed as free end gaps rather than spurious
// internal indels.
var DefaultScoring = Scoring{
	Match:     5,
	Mismatch:  -4,
	GapOpen:   -10,
	GapExtend: -0.5,
}

// traceback states: which pair ended the alignment of q[:i] and s[:j]
const (
	stateMatch   byte = iota // q[i-1] paired with s[j-1]
	stateGapSubj             // q[i-1] paired with a gap in the subject
	stateGapQry              // s[j-1] paired with a gap in the query
)

// Semiglobal aligns two complete sequences end to end, allowing unpenalized
// gaps at both ends of both sequences. The returned strings have equal
// length and contain every base of qseq and sseq in order, with '-' filling
// the gapped columns.
func Semiglobal(qseq, sseq string, sc Scoring) (alignedQ, alignedS string) {
	n, m := len(qseq), len(sseq)
	negInf := math.Inf(-1)

	// match[i][j], gapS[i][j], gapQ[i][j]: best score of an alignment of
	// q[:i] with s[:j] ending in the corresponding state
	match := newMatrix(n+1, m+1, negInf)
	gapS := newMatrix(n+1, m+1, negInf)
	gapQ := newMatrix(n+1, m+1, negInf)
	tbMatch := newByteMatrix(n+1, m+1)
	tbGapS := newByteMatrix(n+1, m+1)
	tbGapQ := newByteMatrix(n+1, m+1)

	// leading gap runs along either edge are free
	match[0][0] = 0
	for i := 1; i <= n; i++ {
		gapS[i][0] = 0
	}
	for j := 1; j <= m; j++ {
		gapQ[0][j] = 0
	}

	for i := 1; i <= n; i++ {
		for j := 1; j <= m; j++ {
			sub := sc.Mismatch
			if upperByte(qseq[i-1]) == upperByte(sseq[j-1]) {
				sub = sc.Match
			}

			match[i][j], tbMatch[i][j] = best3(
				match[i-1][j-1],
				gapS[i-1][j-1],
				gapQ[i-1][j-1],
			)
			match[i][j] += sub

			gapS[i][j], tbGapS[i][j] = best3(
				match[i-1][j]+sc.GapOpen,
				gapS[i-1][j]+sc.GapExtend,
				gapQ[i-1][j]+sc.GapOpen,
			)

			gapQ[i][j], tbGapQ[i][j] = best3(
				match[i][j-1]+sc.GapOpen,
				gapS[i][j-1]+sc.GapOpen,
				gapQ[i][j-1]+sc.GapExtend,
			)
		}
	}

	// trailing gaps are free: the alignment may end anywhere on the last
	// row or column
	bi, bj := n, m
	bestScore, bestState := best3(match[n][m], gapS[n][m], gapQ[n][m])
	for i := 0; i < n; i++ {
		if score, state := best3(match[i][m], gapS[i][m], gapQ[i][m]); score > bestScore {
			bestScore, bestState = score, state
			bi, bj = i, m
		}
	}
	for j := 0; j < m; j++ {
		if score, state := best3(match[n][j], gapS[n][j], gapQ[n][j]); score > bestScore {
			bestScore, bestState = score, state
			bi, bj = n, j
		}
	}

	// build the aligned strings back to front, starting with the free
	// trailing gaps beyond the chosen end cell
	var q, s []byte
	for k := n - 1; k >= bi; k-- {
		q = append(q, qseq[k])
		s = append(s, gapChar)
	}
	for k := m - 1; k >= bj; k-- {
		q = append(q, gapChar)
		s = append(s, sseq[k])
	}

	i, j, state := bi, bj, bestState
	for i > 0 || j > 0 {
		switch {
		case i > 0 && j > 0 && state == stateMatch:
			q = append(q, qseq[i-1])
			s = append(s, sseq[j-1])
			state = tbMatch[i][j]
			i--
			j--
		case i > 0 && j > 0 && state == stateGapSubj:
			q = append(q, qseq[i-1])
			s = append(s, gapChar)
			state = tbGapS[i][j]
			i--
		case i > 0 && j > 0:
			q = append(q, gapChar)
			s = append(s, sseq[j-1])
			state = tbGapQ[i][j]
			j--
		case i > 0:
			// free leading gap run in the subject
			q = append(q, qseq[i-1])
			s = append(s, gapChar)
			i--
		default:
			// free leading gap run in the query
			q = append(q, gapChar)
			s = append(s, sseq[j-1])
			j--
		}
	}

	reverse(q)
	reverse(s)

	return string(q), string(s)
}

// best3 returns the largest of the three state scores and which state it
// came from, preferring a base pairing over a gap on ties.
func best3(match, gapS, gapQ float64) (float64, byte) {
	best, state := match, stateMatch
	if gapS > best {
		best, state = gapS, stateGapSubj
	}
	if gapQ > best {
		best, state = gapQ, stateGapQry
	}

	return best, state
}

func newMatrix(rows, cols int, fill float64) [][]float64 {
	cells := make([]float64, rows*cols)
	for i := range cells {
		cells[i] = fill
	}

	matrix := make([][]float64, rows)
	for i := range matrix {
		matrix[i] = cells[i*cols : (i+1)*cols]
	}

	return matrix
}

func newByteMatrix(rows, cols int) [][]byte {
	cells := make([]byte, rows*cols)
	matrix := make([][]byte, rows)
	for i := range matrix {
		matrix[i] = cells[i*cols : (i+1)*cols]
	}

	return matrix
}

func upperByte(c byte) byte {
	if 'a' <= c && c <= 'z' {
		return c - 'a' + 'A'
	}

	return c
}

func reverse(b []byte) {
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
}

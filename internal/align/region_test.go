package align

import "testing"

func mustAlignment(t *testing.T, qseq, sseq string) Alignment {
	t.Helper()

	a, err := New("q1", qseq, "s1", sseq, 1.0)
	if err != nil {
		t.Fatalf("failed to build alignment: %v", err)
	}

	return a
}

func Test_WithoutEndgaps(t *testing.T) {
	type args struct {
		qseq string
		sseq string
	}
	tests := []struct {
		name      string
		args      args
		wantStart int
		wantEnd   int
	}{
		{
			"no endgaps",
			args{"ACGT", "ACGT"},
			0, 4,
		},
		{
			"query endgaps on both sides",
			args{"--ACGTT-", "TTACGTTT"},
			2, 7,
		},
		{
			"subject endgaps on the right",
			args{"ACGTACGT", "ACGTA---"},
			0, 5,
		},
		{
			"endgaps on opposite sides",
			args{"--ACGTTT", "TTACGT--"},
			2, 6,
		},
		{
			"no overlap at all",
			args{"AAAA----", "----TTTT"},
			0, 0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := WithoutEndgaps(mustAlignment(t, tt.args.qseq, tt.args.sseq))
			if r.start != tt.wantStart || r.end != tt.wantEnd {
				t.Errorf("WithoutEndgaps() range = [%d, %d), want [%d, %d)", r.start, r.end, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

func Test_Region_TrimEnds(t *testing.T) {
	a := mustAlignment(t, "AC-GTACG", "TCCGTAC-")

	// a range whose boundary columns still hold gaps
	r := Region{aln: a, start: 2, end: 8}

	trimmed := r.TrimEnds()
	if trimmed.start != 3 || trimmed.end != 7 {
		t.Errorf("TrimEnds() range = [%d, %d), want [3, 7)", trimmed.start, trimmed.end)
	}

	// trimming again changes nothing
	again := trimmed.TrimEnds()
	if again.start != trimmed.start || again.end != trimmed.end {
		t.Errorf("TrimEnds() not idempotent: [%d, %d) then [%d, %d)", trimmed.start, trimmed.end, again.start, again.end)
	}

	// a freshly created region is already trimmed
	fresh := WithoutEndgaps(a)
	if got := fresh.TrimEnds(); got.start != fresh.start || got.end != fresh.end {
		t.Errorf("TrimEnds() after WithoutEndgaps() = [%d, %d), want [%d, %d)", got.start, got.end, fresh.start, fresh.end)
	}
}

func Test_Region_counts(t *testing.T) {
	type args struct {
		qseq string
		sseq string
	}
	tests := []struct {
		name           string
		args           args
		wantColumns    int
		wantSubjectLen int
		wantMatches    int
	}{
		{
			"identical sequences",
			args{"ACGTACGT", "ACGTACGT"},
			8, 8, 8,
		},
		{
			"one mismatch",
			args{"ACGTACGTAC", "ACGTACGTAT"},
			10, 10, 9,
		},
		{
			"case insensitive matching",
			args{"acgt", "ACGT"},
			4, 4, 4,
		},
		{
			"internal gap counts as a mismatch column",
			args{"AAAA--TTTT", "AAAACGTTTT"},
			10, 10, 8,
		},
		{
			"query endgaps excluded from the region",
			args{"--ACGTT-", "TTACGTTT"},
			5, 5, 5,
		},
		{
			"empty region",
			args{"AAAA----", "----TTTT"},
			0, 0, 0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := WithoutEndgaps(mustAlignment(t, tt.args.qseq, tt.args.sseq))
			if got := r.Columns(); got != tt.wantColumns {
				t.Errorf("Columns() = %d, want %d", got, tt.wantColumns)
			}
			if got := r.SubjectLen(); got != tt.wantSubjectLen {
				t.Errorf("SubjectLen() = %d, want %d", got, tt.wantSubjectLen)
			}
			if got := r.CountMatches(); got != tt.wantMatches {
				t.Errorf("CountMatches() = %d, want %d", got, tt.wantMatches)
			}
		})
	}
}

package unassigner

import (
	"math"
	"testing"
)

func Test_betaBinomialPDF(t *testing.T) {
	type args struct {
		k int
		n int
		a float64
		b float64
	}
	tests := []struct {
		name string
		args args
		want float64
	}{
		{
			"single trial, symmetric prior",
			args{0, 1, 0.5, 0.5},
			0.5,
		},
		{
			"single trial, other outcome",
			args{1, 1, 0.5, 0.5},
			0.5,
		},
		{
			"zero trials",
			args{0, 0, 0.5, 10.5},
			1.0,
		},
		{
			"negative k",
			args{-1, 10, 0.5, 0.5},
			0.0,
		},
		{
			"k beyond n",
			args{11, 10, 0.5, 0.5},
			0.0,
		},
		{
			"negative n",
			args{0, -1, 0.5, 0.5},
			0.0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := betaBinomialPDF(tt.args.k, tt.args.n, tt.args.a, tt.args.b)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("betaBinomialPDF() = %v, want %v", got, tt.want)
			}
		})
	}
}

// the pdf over all outcomes must account for all the probability
func Test_betaBinomialPDF_sumsToOne(t *testing.T) {
	cases := []struct {
		n    int
		a, b float64
	}{
		{1, 0.5, 0.5},
		{10, 0.5, 0.5},
		{25, 3.5, 7.5},
		{1500, 0.5, 1450.5},
	}

	for _, c := range cases {
		sum := 0.0
		for k := 0; k <= c.n; k++ {
			sum += betaBinomialPDF(k, c.n, c.a, c.b)
		}

		if math.Abs(sum-1.0) > 1e-9 {
			t.Errorf("pdf over 0..%d with a=%v, b=%v sums to %v, want 1", c.n, c.a, c.b, sum)
		}
	}
}

// with a symmetric prior the distribution is symmetric in k
func Test_betaBinomialPDF_symmetry(t *testing.T) {
	n := 12
	for k := 0; k <= n; k++ {
		left := betaBinomialPDF(k, n, 1.5, 1.5)
		right := betaBinomialPDF(n-k, n, 1.5, 1.5)
		if math.Abs(left-right) > 1e-12 {
			t.Errorf("pdf(%d) = %v but pdf(%d) = %v", k, left, n-k, right)
		}
	}
}

func Test_betaBinomialCDF(t *testing.T) {
	// an empty sum is exactly 0, not a small float
	if got := betaBinomialCDF(-1, 10, 0.5, 0.5); got != 0 {
		t.Errorf("betaBinomialCDF(-1, ...) = %v, want exactly 0", got)
	}

	// the full range holds all the probability
	if got := betaBinomialCDF(10, 10, 0.5, 0.5); math.Abs(got-1.0) > 1e-9 {
		t.Errorf("betaBinomialCDF(n, n, ...) = %v, want 1", got)
	}

	// nondecreasing in kMax
	prev := 0.0
	for kMax := 0; kMax <= 10; kMax++ {
		got := betaBinomialCDF(kMax, 10, 0.5, 0.5)
		if got < prev {
			t.Errorf("betaBinomialCDF(%d, ...) = %v, less than betaBinomialCDF(%d, ...) = %v", kMax, got, kMax-1, prev)
		}
		prev = got
	}
}

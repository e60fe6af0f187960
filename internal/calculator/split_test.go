package calculator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func sum(xs []int64) int64 {
	var s int64
	for _, x := range xs {
		s += x
	}
	return s
}

func TestSplitByWeight(t *testing.T) {
	tests := []struct {
		name    string
		amount  int64
		weights []int64
		want    []int64
	}{
		{
			name:    "exact thirds",
			amount:  30000,
			weights: []int64{1, 1, 1},
			want:    []int64{10000, 10000, 10000},
		},
		{
			name:    "leftover goes to earlier positions",
			amount:  100,
			weights: []int64{1, 1, 1},
			want:    []int64{34, 33, 33},
		},
		{
			name:    "seven to three",
			amount:  1000,
			weights: []int64{70000, 30000},
			want:    []int64{700, 300},
		},
		{
			name:    "largest remainder wins the extra unit",
			amount:  10,
			weights: []int64{1, 2},
			// quotas 3.33 and 6.67
			want: []int64{3, 7},
		},
		{
			name:    "negative amount keeps sign",
			amount:  -5000,
			weights: []int64{1, 1},
			want:    []int64{-2500, -2500},
		},
		{
			name:    "negative leftover",
			amount:  -100,
			weights: []int64{1, 1, 1},
			want:    []int64{-34, -33, -33},
		},
		{
			name:    "zero and negative weights get nothing",
			amount:  900,
			weights: []int64{0, 3, -5, 6},
			want:    []int64{0, 300, 0, 600},
		},
		{
			name:    "no positive weight",
			amount:  900,
			weights: []int64{0, 0},
			want:    nil,
		},
		{
			name:    "large amounts do not overflow",
			amount:  9_000_000_000_000_000,
			weights: []int64{2_000_000_000_000, 1_000_000_000_000},
			want:    []int64{6_000_000_000_000_000, 3_000_000_000_000_000},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := splitByWeight(tt.amount, tt.weights)
			assert.Equal(t, tt.want, got)
			if got != nil {
				assert.Equal(t, tt.amount, sum(got))
			}
		})
	}
}

func TestSplitEqually(t *testing.T) {
	assert.Nil(t, splitEqually(100, 0))
	assert.Equal(t, []int64{5}, splitEqually(5, 1))

	for _, amount := range []int64{1, 7, 99999, -7, 0} {
		for n := 1; n <= 7; n++ {
			shares := splitEqually(amount, n)
			assert.Len(t, shares, n)
			assert.Equal(t, amount, sum(shares), "amount=%d n=%d", amount, n)
			for _, s := range shares {
				diff := s - shares[n-1]
				assert.True(t, diff == 0 || diff == 1 || diff == -1, "shares differ by more than one unit: %v", shares)
			}
		}
	}
}

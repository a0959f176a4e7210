package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCosineSimilarity(t *testing.T) {
	tests := map[string]struct {
		vectorA   []float64
		vectorB   []float64
		wantScore float64
		wantOK    bool
	}{
		"identical-vectors": {
			vectorA:   []float64{1.0, 2.0, 3.0},
			vectorB:   []float64{1.0, 2.0, 3.0},
			wantScore: 1.0,
			wantOK:    true,
		},
		"opposite-vectors": {
			vectorA:   []float64{1.0, 2.0, 3.0},
			vectorB:   []float64{-1.0, -2.0, -3.0},
			wantScore: -1.0,
			wantOK:    true,
		},
		"orthogonal-vectors": {
			vectorA:   []float64{1.0, 0.0},
			vectorB:   []float64{0.0, 1.0},
			wantScore: 0.0,
			wantOK:    true,
		},
		"scaled-vectors-still-align": {
			vectorA:   []float64{1.0, 2.0, 3.0},
			vectorB:   []float64{2.0, 4.0, 6.0},
			wantScore: 1.0,
			wantOK:    true,
		},
		"partial-overlap": {
			vectorA:   []float64{1.0, 1.0, 0.0},
			vectorB:   []float64{1.0, 0.0, 1.0},
			wantScore: 0.5,
			wantOK:    true,
		},
		"empty-vector": {
			vectorA: []float64{},
			vectorB: []float64{1.0, 2.0},
			wantOK:  false,
		},
		"mismatched-lengths": {
			vectorA: []float64{1.0, 2.0},
			vectorB: []float64{1.0, 2.0, 3.0},
			wantOK:  false,
		},
		"zero-magnitude": {
			vectorA: []float64{0.0, 0.0, 0.0},
			vectorB: []float64{1.0, 2.0, 3.0},
			wantOK:  false,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			score, ok := CosineSimilarity(tt.vectorA, tt.vectorB)

			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.InDelta(t, tt.wantScore, score, 0.0001)
			} else {
				assert.Zero(t, score)
			}
		})
	}
}

func TestPtr(t *testing.T) {
	n := Ptr(42)
	assert.Equal(t, 42, *n)

	s := Ptr("hello")
	assert.Equal(t, "hello", *s)
}

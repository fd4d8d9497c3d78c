package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHeuristicPredictor_Evaluate(t *testing.T) {
	predictor := NewHeuristicPredictor()

	tests := []struct {
		name        string
		income      int64
		creditScore int
		amount      int64
		termMonths  int
		want        bool
	}{
		{"comfortable repayment and good score", 6000000, 720, 1000000, 24, true},
		{"score below floor", 6000000, 639, 1000000, 24, false},
		{"score exactly at floor", 6000000, 640, 1000000, 24, true},
		{"repayment eats the whole income", 600000, 800, 5000000, 12, false},
		{"longer term makes the same loan affordable", 1500000, 700, 5000000, 120, true},
		{"zero term never approves", 6000000, 720, 1000000, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, predictor.Evaluate(tt.income, tt.creditScore, tt.amount, tt.termMonths))
		})
	}
}

package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScoreNoShowRisk(t *testing.T) {
	tests := []struct {
		name string
		in   RiskInput
		want int
	}{
		{"all clear", RiskInput{0, "Low", "clear sky", 14}, 0},
		{"one miss", RiskInput{1, "Low", "clear sky", 14}, 1},
		{"two misses", RiskInput{2, "Low", "clear sky", 14}, 2},
		{"many misses capped", RiskInput{7, "Low", "clear sky", 14}, 2},
		{"moderate category", RiskInput{0, "Moderate", "clear sky", 14}, 1},
		{"high category", RiskInput{0, "High", "clear sky", 14}, 2},
		{"rain", RiskInput{0, "Low", "light rain", 14}, 2},
		{"storm", RiskInput{0, "Low", "thunderstorm", 14}, 2},
		{"snow", RiskInput{0, "Low", "light snow", 14}, 1},
		{"early slot", RiskInput{0, "Low", "clear sky", 9}, 1},
		{"hour boundary", RiskInput{0, "Low", "clear sky", 10}, 0},
		{"worst case", RiskInput{2, "High", "heavy rain", 9}, 7},
		{"missing weather", RiskInput{1, "Moderate", "", 11}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ScoreNoShowRisk(tt.in))
		})
	}
}

func TestClassifyNoShowRisk(t *testing.T) {
	tests := []struct {
		name      string
		in        RiskInput
		wantLabel string
		wantScore int
	}{
		{"low", RiskInput{0, "Low", "clear sky", 14}, RiskLabelLow, 0},
		{"low boundary", RiskInput{2, "Low", "clear sky", 14}, RiskLabelLow, 2},
		{"moderate boundary", RiskInput{2, "Low", "clear sky", 9}, RiskLabelModerate, 3},
		{"moderate upper", RiskInput{2, "Moderate", "light snow", 14}, RiskLabelModerate, 4},
		{"high boundary", RiskInput{2, "Moderate", "light rain", 14}, RiskLabelHigh, 5},
		{"high", RiskInput{2, "High", "light rain", 9}, RiskLabelHigh, 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			label, score := ClassifyNoShowRisk(tt.in)
			assert.Equal(t, tt.wantLabel, label)
			assert.Equal(t, tt.wantScore, score)
		})
	}
}

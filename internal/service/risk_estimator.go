package service

import "strings"

// Risk classification labels shown to the patient.
const (
	RiskLabelHigh     = "High Risk of No-Show"
	RiskLabelModerate = "Moderate Risk of No-Show"
	RiskLabelLow      = "Low Risk of No-Show"
)

// RiskInput carries the four signals of the no-show heuristic.
type RiskInput struct {
	MissedAppointments int
	RiskCategory       string
	WeatherDescription string
	SlotHour           int
}

// ScoreNoShowRisk applies the additive rule table. The rules are a fixed
// heuristic, not a learned model; the weights and thresholds are part of
// the product behavior and must not drift.
func ScoreNoShowRisk(in RiskInput) int {
	score := 0

	switch {
	case in.MissedAppointments >= 2:
		score += 2
	case in.MissedAppointments == 1:
		score += 1
	}

	category := strings.ToLower(in.RiskCategory)
	switch {
	case strings.Contains(category, "high"):
		score += 2
	case strings.Contains(category, "moderate"):
		score += 1
	}

	weather := strings.ToLower(in.WeatherDescription)
	switch {
	case strings.Contains(weather, "rain") || strings.Contains(weather, "storm"):
		score += 2
	case strings.Contains(weather, "snow"):
		score += 1
	}

	if in.SlotHour < 10 {
		score += 1
	}

	return score
}

// ClassifyNoShowRisk maps the score to a three-level label:
// >= 5 High, 3-4 Moderate, < 3 Low.
func ClassifyNoShowRisk(in RiskInput) (string, int) {
	score := ScoreNoShowRisk(in)
	switch {
	case score >= 5:
		return RiskLabelHigh, score
	case score >= 3:
		return RiskLabelModerate, score
	default:
		return RiskLabelLow, score
	}
}

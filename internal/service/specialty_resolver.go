package service

import (
	"errors"
	"strings"
)

// ErrUnmappedSymptom is returned when a symptom has no specialty mapping,
// signaling the caller to re-prompt.
var ErrUnmappedSymptom = errors.New("symptom does not map to a specialty")

// symptomSpecialties is the fixed symptom-to-specialty table. Lookup is by
// exact match on the lowercased, trimmed input; there is no fuzzy or
// substring matching.
var symptomSpecialties = map[string]string{
	"fever":          "General Physician",
	"cough":          "General Physician",
	"cold":           "General Physician",
	"body ache":      "General Physician",
	"toothache":      "Dentist",
	"tooth pain":     "Dentist",
	"gum bleeding":   "Dentist",
	"back pain":      "Orthopedic",
	"joint pain":     "Orthopedic",
	"knee pain":      "Orthopedic",
	"fracture":       "Orthopedic",
	"headache":       "Neurologist",
	"migraine":       "Neurologist",
	"dizziness":      "Neurologist",
	"chest pain":     "Cardiologist",
	"palpitations":   "Cardiologist",
	"skin rash":      "Dermatologist",
	"acne":           "Dermatologist",
	"itching":        "Dermatologist",
	"stomach pain":   "Gastroenterologist",
	"acidity":        "Gastroenterologist",
	"eye pain":       "Ophthalmologist",
	"blurred vision": "Ophthalmologist",
	"ear pain":       "ENT Specialist",
	"sore throat":    "ENT Specialist",
	"anxiety":        "Psychiatrist",
	"stress":         "Psychiatrist",
}

type SpecialtyResolver struct{}

func NewSpecialtyResolver() *SpecialtyResolver {
	return &SpecialtyResolver{}
}

// Resolve maps a free-text symptom to a medical specialty.
func (r *SpecialtyResolver) Resolve(symptom string) (string, error) {
	key := strings.ToLower(strings.TrimSpace(symptom))
	specialty, ok := symptomSpecialties[key]
	if !ok {
		return "", ErrUnmappedSymptom
	}
	return specialty, nil
}

// KnownSymptoms returns the accepted symptom keywords, for prompt display.
func (r *SpecialtyResolver) KnownSymptoms() []string {
	symptoms := make([]string, 0, len(symptomSpecialties))
	for s := range symptomSpecialties {
		symptoms = append(symptoms, s)
	}
	return symptoms
}

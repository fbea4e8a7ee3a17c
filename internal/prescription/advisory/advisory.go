// Package advisory provides rule-based safety hints for extracted drafts:
// known drug-drug interactions and symptom mentions in the scanned text.
// Like the extraction engine it is pure and side-effect free — the hints are
// advisory input to a human reviewer, never a clinical decision.
package advisory

import (
	"strings"

	"github.com/medflow/rxscan-backend/internal/prescription/domain"
)

type interactionRule struct {
	drugA          string
	drugB          string
	severity       string
	description    string
	recommendation string
}

// knownInteractions is a static table of well-established drug pairs.
// Lookup is order-insensitive: (a, b) and (b, a) hit the same rule.
var knownInteractions = []interactionRule{
	{"warfarin", "aspirin", "High", "Increased bleeding risk", "Monitor INR closely, consider alternative to aspirin"},
	{"warfarin", "ibuprofen", "High", "Increased bleeding risk", "Avoid NSAIDs, use acetaminophen instead"},
	{"lisinopril", "potassium", "Moderate", "Risk of hyperkalemia", "Monitor potassium levels regularly"},
	{"enalapril", "spironolactone", "High", "Risk of hyperkalemia and hypotension", "Monitor potassium and blood pressure closely"},
	{"atorvastatin", "gemfibrozil", "High", "Increased risk of rhabdomyolysis", "Avoid combination or use lower statin dose"},
	{"simvastatin", "diltiazem", "Moderate", "Increased statin levels", "Reduce simvastatin dose"},
	{"ciprofloxacin", "calcium", "Moderate", "Reduced antibiotic absorption", "Take ciprofloxacin 2 hours before or 6 hours after calcium"},
	{"tetracycline", "iron", "Moderate", "Reduced antibiotic absorption", "Separate doses by 2-3 hours"},
	{"morphine", "alcohol", "High", "Increased sedation and respiratory depression", "Avoid alcohol completely"},
	{"codeine", "alcohol", "High", "Increased sedation and respiratory depression", "Avoid alcohol completely"},
	{"fluoxetine", "warfarin", "Moderate", "Increased bleeding risk", "Monitor INR more frequently"},
	{"sertraline", "warfarin", "Moderate", "Increased bleeding risk", "Monitor INR more frequently"},
}

// symptomKeywords are common complaints scanned for in free text
var symptomKeywords = []string{
	"fever", "cough", "headache", "nausea", "vomiting",
	"diarrhea", "constipation", "fatigue", "weakness", "dizziness",
	"shortness of breath", "chest pain", "abdominal pain", "back pain",
	"sore throat", "runny nose", "congestion", "sneezing",
	"rash", "swelling", "inflammation", "bleeding", "bruising",
	"insomnia", "anxiety", "confusion",
}

// Checker evaluates extracted drafts against the static rule tables
type Checker struct{}

// NewChecker creates a new advisory checker
func NewChecker() *Checker {
	return &Checker{}
}

// CheckInteractions compares every pair of the given drug names against the
// known-interactions table, case-insensitively and in either order. Drug
// names that match no rule simply contribute nothing.
func (c *Checker) CheckInteractions(drugs []string) []domain.DrugInteraction {
	var found []domain.DrugInteraction

	for i := 0; i < len(drugs); i++ {
		for j := i + 1; j < len(drugs); j++ {
			a := strings.ToLower(strings.TrimSpace(drugs[i]))
			b := strings.ToLower(strings.TrimSpace(drugs[j]))
			if a == "" || b == "" {
				continue
			}

			for _, rule := range knownInteractions {
				if (rule.drugA == a && rule.drugB == b) || (rule.drugA == b && rule.drugB == a) {
					found = append(found, domain.DrugInteraction{
						DrugA:          drugs[i],
						DrugB:          drugs[j],
						Severity:       rule.severity,
						Description:    rule.description,
						Recommendation: rule.recommendation,
					})
					break
				}
			}
		}
	}

	return found
}

// ExtractSymptoms returns the distinct symptom keywords mentioned in the
// text, in keyword-table order.
func (c *Checker) ExtractSymptoms(text string) []string {
	lower := strings.ToLower(text)

	var found []string
	for _, symptom := range symptomKeywords {
		if strings.Contains(lower, symptom) {
			found = append(found, symptom)
		}
	}
	return found
}

// RequiresReview reports whether a draft should be flagged for closer human
// review: more than three medications, or any known interaction.
func (c *Checker) RequiresReview(medicationCount int, interactions []domain.DrugInteraction) bool {
	return medicationCount > 3 || len(interactions) > 0
}

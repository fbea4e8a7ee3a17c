package extract

import (
	"regexp"
	"strings"

	"github.com/medflow/rxscan-backend/internal/prescription/domain"
)

// Dose-unit vocabulary shared by every medication pattern
const doseUnits = `(?:mg|ml|g|iu|mcg|units?)`

var (
	// Strategy 1: numbered list entries like "1. Paracetamol 500mg twice daily"
	numberedLineRe = regexp.MustCompile(`(?im)^\s*\d+[.)]\s+([A-Za-z][A-Za-z0-9\- ]{1,60}?)\s+(\d+(?:\.\d+)?\s*` + doseUnits + `)\b.*$`)

	// Strategy 2: inline "name 500mg" spans within a single line
	inlineMedRe = regexp.MustCompile(`(?i)\b([A-Za-z][A-Za-z\-]{2,40})\s+(\d+(?:\.\d+)?\s*` + doseUnits + `)\b`)

	// Strategy 3: an "Rx:" style section heading, ended by a blank line or a
	// trailing instructions/notes heading
	sectionHeadingRe = regexp.MustCompile(`(?i)^\s*(?:rx|prescriptions?|medicines?|medications?)\s*[:\-]?\s*$`)
	sectionEndRe     = regexp.MustCompile(`(?i)^\s*(?:instructions?|notes?)\s*[:\-]`)

	dosageRe = regexp.MustCompile(`(?i)\d+(?:\.\d+)?\s*` + doseUnits + `\b`)

	durationRe = regexp.MustCompile(`(?i)(?:for|x)\s*(\d+)\s*(days?|weeks?|months?)\b`)

	quantityUnitRe  = regexp.MustCompile(`(?i)\b(\d+)\s*(?:tablets?|tabs?|capsules?|caps?|ml|drops?)\b`)
	quantityLabelRe = regexp.MustCompile(`(?i)(?:quantity|qty|total)\s*[:\-]?\s*(\d+)`)
	quantityBuyRe   = regexp.MustCompile(`(?i)(?:buy|purchase)\s+(\d+)`)

	anyLetterRe = regexp.MustCompile(`[A-Za-z]`)
	allDigitsRe = regexp.MustCompile(`^\d+$`)
)

// nameExclusions are words that mark a candidate as prescription scaffolding
// rather than a medicine name.
var nameExclusions = []string{
	"patient", "doctor", "date", "prescription",
	"instructions", "note", "age", "weight", "height",
}

// medCandidate is one raw line span that may describe a medication, together
// with the name and dosage spans matched by the locating strategy.
type medCandidate struct {
	line   string
	name   string
	dosage string
}

// locateMedicationLines finds candidate medication descriptions using three
// fallback strategies: numbered list, inline name+dosage, then an Rx-style
// section. The first strategy that yields at least one candidate wins; later
// strategies are never run when an earlier one produced candidates.
func locateMedicationLines(text string) []medCandidate {
	if cands := locateNumbered(text); len(cands) > 0 {
		return cands
	}
	if cands := locateInline(text); len(cands) > 0 {
		return cands
	}
	return locateSection(text)
}

func locateNumbered(text string) []medCandidate {
	var cands []medCandidate
	for _, m := range numberedLineRe.FindAllStringSubmatch(text, -1) {
		cands = append(cands, medCandidate{
			line:   strings.TrimSpace(m[0]),
			name:   strings.TrimSpace(m[1]),
			dosage: m[2],
		})
	}
	return cands
}

func locateInline(text string) []medCandidate {
	var cands []medCandidate
	for _, line := range strings.Split(text, "\n") {
		for _, m := range inlineMedRe.FindAllStringSubmatch(line, -1) {
			cands = append(cands, medCandidate{
				line:   strings.TrimSpace(line),
				name:   strings.TrimSpace(m[1]),
				dosage: m[2],
			})
		}
	}
	return cands
}

func locateSection(text string) []medCandidate {
	lines := strings.Split(text, "\n")

	start := -1
	for i, line := range lines {
		if sectionHeadingRe.MatchString(line) {
			start = i + 1
			break
		}
	}
	if start < 0 {
		return nil
	}

	var cands []medCandidate
	for _, line := range lines[start:] {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || sectionEndRe.MatchString(trimmed) {
			break
		}
		cands = append(cands, sectionCandidate(trimmed))
	}
	return cands
}

// sectionCandidate reuses the numbered and inline patterns against a single
// section line; when neither matches, the leading text before the first
// digit stands in as the name and the validation gate decides its fate.
func sectionCandidate(line string) medCandidate {
	if m := numberedLineRe.FindStringSubmatch(line); m != nil {
		return medCandidate{line: line, name: strings.TrimSpace(m[1]), dosage: m[2]}
	}
	if m := inlineMedRe.FindStringSubmatch(line); m != nil {
		return medCandidate{line: line, name: strings.TrimSpace(m[1]), dosage: m[2]}
	}

	name := line
	if i := strings.IndexFunc(line, func(r rune) bool { return r >= '0' && r <= '9' }); i > 0 {
		name = line[:i]
	}
	return medCandidate{line: line, name: strings.TrimSpace(strings.Trim(name, " -,:"))}
}

// extractMedication pulls dosage, frequency, timing, duration and quantity
// out of one candidate line. Frequency and timing are looked up against the
// whole line, not just the dosage span, because qualifiers usually trail the
// dosage. The full line is retained verbatim as a fallback note.
func extractMedication(c medCandidate) domain.Medication {
	med := domain.Medication{
		Name:         c.name,
		Instructions: c.line,
	}

	if m := dosageRe.FindString(c.dosage); m != "" {
		med.Dosage = compactSpaces(m)
	}

	med.Frequency = CanonicalFrequency(c.line)
	med.Timing = CanonicalTiming(c.line)

	if m := durationRe.FindStringSubmatch(c.line); m != nil {
		med.Duration = m[1] + " " + strings.ToLower(m[2])
	}

	med.Quantity = extractQuantity(c.line)

	return med
}

func extractQuantity(line string) string {
	for _, re := range []*regexp.Regexp{quantityUnitRe, quantityLabelRe, quantityBuyRe} {
		if m := re.FindStringSubmatch(line); m != nil {
			return m[1]
		}
	}
	return ""
}

// ValidMedicineName reports whether a candidate name passes the gate applied
// before a Medication is appended to the draft: length strictly between 3
// and 50, at least one letter, not all digits, and free of scaffolding
// keywords. Candidates failing the gate are dropped silently.
func ValidMedicineName(name string) bool {
	name = strings.TrimSpace(name)
	if len(name) <= 3 || len(name) >= 50 {
		return false
	}
	if !anyLetterRe.MatchString(name) {
		return false
	}
	if allDigitsRe.MatchString(name) {
		return false
	}

	lower := strings.ToLower(name)
	for _, word := range nameExclusions {
		if strings.Contains(lower, word) {
			return false
		}
	}
	return true
}

// DuplicateMedicationKeys returns the (name, dosage) pairs that occur more
// than once, preserving first-appearance order. The engine does not merge or
// drop duplicates — the source text is presented as-is and the caller decides
// what a repeat entry means.
func DuplicateMedicationKeys(meds []domain.Medication) []string {
	counts := make(map[string]int, len(meds))
	var order []string
	for _, med := range meds {
		key := strings.ToLower(med.Name) + " " + strings.ToLower(med.Dosage)
		if counts[key] == 0 {
			order = append(order, key)
		}
		counts[key]++
	}

	var dups []string
	for _, key := range order {
		if counts[key] > 1 {
			dups = append(dups, key)
		}
	}
	return dups
}

func compactSpaces(s string) string {
	return strings.Join(strings.Fields(s), "")
}

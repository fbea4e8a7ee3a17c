package extract

import "regexp"

// phraseMapping maps a raw phrase pattern to its canonical display label.
type phraseMapping struct {
	pattern *regexp.Regexp
	label   string
}

// The canonical tables are ordered: lookup tries patterns in declaration
// order against the whole candidate line and returns the first hit. The
// ordering is part of the contract — multi-word patterns must come before
// the short ambiguous ones they contain (e.g. "at bedtime" before a bare
// "night"), otherwise extraction stops being deterministic. Do not reorder.

var frequencyTable = []phraseMapping{
	{regexp.MustCompile(`(?i)four times\s+(?:a\s+|per\s+)?day|every 6 hours|\bq6h\b|\bqid\b`), "Four times daily"},
	{regexp.MustCompile(`(?i)(?:three times|thrice)\s+(?:a\s+|per\s+)?(?:day|daily)|every 8 hours|\bq8h\b|\btds\b|\btid\b`), "Three times daily"},
	{regexp.MustCompile(`(?i)(?:twice|two times)\s+(?:a\s+|per\s+)?(?:day|daily)|every 12 hours|\bq12h\b|\bbd\b|\bbid\b|\b1-0-1\b`), "Twice daily"},
	{regexp.MustCompile(`(?i)(?:once|one time)\s+(?:a\s+|per\s+)?(?:day|daily)|once daily|every 24 hours|\bod\b|\bqd\b|\b0-0-1\b|\b1-0-0\b`), "Once daily"},
	{regexp.MustCompile(`(?i)every other day|alternate days?|\bqod\b`), "Every other day"},
	{regexp.MustCompile(`(?i)(?:once\s+(?:a\s+|per\s+)?week|weekly)`), "Once weekly"},
	{regexp.MustCompile(`(?i)as\s+(?:and when\s+)?needed|when required|if needed|\bsos\b|\bprn\b`), "As needed"},
	{regexp.MustCompile(`(?i)\bdaily\b|every ?day`), "Once daily"},
}

var timingTable = []phraseMapping{
	{regexp.MustCompile(`(?i)before\s+(?:meals?|food|eating)|on\s+(?:an\s+)?empty stomach|\bac\b`), "Before meals"},
	{regexp.MustCompile(`(?i)after\s+(?:meals?|food|eating)|\bpc\b`), "After meals"},
	{regexp.MustCompile(`(?i)with\s+(?:meals?|food|milk)`), "With food"},
	{regexp.MustCompile(`(?i)at bedtime|before\s+(?:bed|sleep(?:ing)?)|\bhs\b`), "At bedtime"},
	{regexp.MustCompile(`(?i)(?:in the\s+)?\bmornings?\b`), "Morning"},
	{regexp.MustCompile(`(?i)(?:at\s+|in the\s+)?\bnight\b`), "Night"},
}

func lookupCanonical(table []phraseMapping, line string) string {
	for _, m := range table {
		if m.pattern.MatchString(line) {
			return m.label
		}
	}
	return ""
}

// CanonicalFrequency maps a raw frequency phrase anywhere in line to its
// canonical label, or "" when nothing matches.
func CanonicalFrequency(line string) string {
	return lookupCanonical(frequencyTable, line)
}

// CanonicalTiming maps a raw timing phrase anywhere in line to its canonical
// label, or "" when nothing matches.
func CanonicalTiming(line string) string {
	return lookupCanonical(timingTable, line)
}

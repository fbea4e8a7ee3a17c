package extract

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Each scalar field is extracted by a cascade: patterns are tried in priority
// order against the full text; the first match that also passes validation
// wins and later patterns are never consulted. Only the first match of a
// pattern is considered — duplicates later in the text are ignored. A field
// whose cascade is exhausted resolves to "" rather than an error.

var (
	emailBareRe    = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)
	emailLabeledRe = regexp.MustCompile(`(?i)e-?mail\s*[:\-]\s*([A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,})`)

	mobileLabeledRe = regexp.MustCompile(`(?i)(?:phone|mobile|contact)\s*(?:no\.?|number)?\s*[:\-]\s*(\+?[\d\s\-().]{8,20})`)
	mobileIndianRe  = regexp.MustCompile(`(?:\+91[\-\s]?)?\b([6-9]\d{9})\b`)
	mobileNARe      = regexp.MustCompile(`\(?\d{3}\)?[\s\-.]\d{3}[\s\-.]\d{4}`)
	mobileGenericRe = regexp.MustCompile(`\+?\b\d{10,15}\b`)

	ageLabeledRe = regexp.MustCompile(`(?i)\bage\s*[:\-]?\s*(\d{1,3})`)
	ageSuffixRe  = regexp.MustCompile(`(?i)\b(\d{1,3})\s*(?:years?\s*(?:old)?|yrs?|y\.?o\.?|y\b)`)

	weightLabeledRe = regexp.MustCompile(`(?i)\bweight\s*[:\-]?\s*(\d+(?:\.\d+)?)`)
	weightSuffixRe  = regexp.MustCompile(`(?i)\b(\d+(?:\.\d+)?)\s*(?:kgs?|kilograms?)\b`)

	heightLabeledRe   = regexp.MustCompile(`(?i)\bheight\s*[:\-]?\s*(\d+(?:\.\d+)?)\s*(?:cms?|centimeters?)?`)
	heightSuffixRe    = regexp.MustCompile(`(?i)\b(\d+(?:\.\d+)?)\s*(?:cms?|centimeters?)\b`)
	heightFeetInchRe  = regexp.MustCompile(`(\d)\s*'\s*(\d{1,2})\s*(?:"|''|in\b)?`)

	expiryLabeledRe = regexp.MustCompile(`(?i)(?:expires?|expiry|valid\s*(?:till|until|up\s*to)?|until)\s*(?:date|on)?\s*[:\-]?\s*(\d{1,2}[-/]\d{1,2}[-/]\d{2,4})`)
	expiryVisitRe   = regexp.MustCompile(`(?i)(?:next\s+visit|follow[\s\-]?up|review)\s*(?:on|date)?\s*[:\-]?\s*(\d{1,2}[-/]\d{1,2}[-/]\d{2,4})`)

	patientNameRe = regexp.MustCompile(`(?im)^\s*(?:patient\s*(?:name)?|name)\s*[:\-]\s*(.+)$`)

	doctorLabeledRe = regexp.MustCompile(`(?im)^\s*doctor\s*(?:name)?\s*[:\-]\s*(.+)$`)
	doctorInlineRe  = regexp.MustCompile(`\bDr\.?\s+([A-Z][A-Za-z.]+(?:\s+[A-Z][A-Za-z.]+){0,2})`)
	doctorEmailRe   = regexp.MustCompile(`(?i)doctor\s*(?:'s)?\s*e-?mail\s*[:\-]\s*([A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,})`)
	doctorMobileRe  = regexp.MustCompile(`(?i)doctor\s*(?:'s)?\s*(?:phone|mobile|contact)\s*(?:no\.?|number)?\s*[:\-]\s*(\+?[\d\s\-().]{8,20})`)

	clinicNameRe    = regexp.MustCompile(`(?im)^\s*(?:clinic|hospital)\s*(?:name)?\s*[:\-]\s*(.+)$`)
	clinicAddressRe = regexp.MustCompile(`(?im)^\s*address\s*[:\-]\s*(.+)$`)

	instructionsRe = regexp.MustCompile(`(?im)^\s*(?:instructions?|notes?|advice)\s*[:\-]\s*(.+)$`)

	nonDigitRe = regexp.MustCompile(`[^\d]`)
)

// ExtractEmail returns the first email address in the text, or "".
// A labelled "Email:" line takes priority over any bare address elsewhere.
func ExtractEmail(text string) string {
	if m := emailLabeledRe.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	return emailBareRe.FindString(text)
}

// ExtractMobile returns the first plausible phone number, normalized to
// digits (with a leading + preserved). Anything under 10 digits after
// separator stripping is rejected and the cascade falls through.
func ExtractMobile(text string) string {
	patterns := []struct {
		re    *regexp.Regexp
		group int
	}{
		{mobileLabeledRe, 1},
		{mobileIndianRe, 0},
		{mobileNARe, 0},
		{mobileGenericRe, 0},
	}

	for _, p := range patterns {
		m := p.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		if cleaned := cleanMobile(m[p.group]); cleaned != "" {
			return cleaned
		}
	}
	return ""
}

func cleanMobile(raw string) string {
	raw = strings.TrimSpace(raw)
	plus := strings.HasPrefix(raw, "+")
	digits := nonDigitRe.ReplaceAllString(raw, "")
	if len(digits) < 10 {
		return ""
	}
	if plus {
		return "+" + digits
	}
	return digits
}

// ExtractAge returns the patient age as a string, or "" when no candidate
// survives the (0, 150) exclusive bounds check.
func ExtractAge(text string) string {
	for _, re := range []*regexp.Regexp{ageLabeledRe, ageSuffixRe} {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		if n, err := strconv.Atoi(m[1]); err == nil && n > 0 && n < 150 {
			return m[1]
		}
	}
	return ""
}

// ExtractWeight returns the patient weight in kg as a string, bounds (0, 500)
func ExtractWeight(text string) string {
	for _, re := range []*regexp.Regexp{weightLabeledRe, weightSuffixRe} {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		if f, err := strconv.ParseFloat(m[1], 64); err == nil && f > 0 && f < 500 {
			return m[1]
		}
	}
	return ""
}

// ExtractHeight returns the patient height in centimeters as a string.
// A feet-inches form like 5'8" is converted with round((feet*12+inches)*2.54)
// before the (50, 300) bounds check is applied.
func ExtractHeight(text string) string {
	for _, re := range []*regexp.Regexp{heightLabeledRe, heightSuffixRe} {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		if f, err := strconv.ParseFloat(m[1], 64); err == nil && f > 50 && f < 300 {
			return m[1]
		}
	}

	if m := heightFeetInchRe.FindStringSubmatch(text); m != nil {
		feet, errF := strconv.Atoi(m[1])
		inches, errI := strconv.Atoi(m[2])
		if errF == nil && errI == nil {
			cm := int(math.Round(float64(feet*12+inches) * 2.54))
			if cm > 50 && cm < 300 {
				return strconv.Itoa(cm)
			}
		}
	}
	return ""
}

// ExtractExpiryDate returns a normalized YYYY-MM-DD expiry date, or "".
// The discovered triplet is always read as Day-Month-Year; 2-digit years are
// widened with a "20" prefix. A triplet that does not split into exactly
// three numeric parts yields "" — a different ordering is never guessed.
func ExtractExpiryDate(text string) string {
	for _, re := range []*regexp.Regexp{expiryLabeledRe, expiryVisitRe} {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		if normalized := normalizeDMY(m[1]); normalized != "" {
			return normalized
		}
	}
	return ""
}

func normalizeDMY(raw string) string {
	parts := strings.FieldsFunc(raw, func(r rune) bool {
		return r == '-' || r == '/'
	})
	if len(parts) != 3 {
		return ""
	}

	day, errD := strconv.Atoi(parts[0])
	month, errM := strconv.Atoi(parts[1])
	if errD != nil || errM != nil {
		return ""
	}

	year := parts[2]
	if len(year) == 2 {
		year = "20" + year
	}
	y, err := strconv.Atoi(year)
	if err != nil {
		return ""
	}

	return fmt.Sprintf("%04d-%02d-%02d", y, month, day)
}

// ExtractPatientName returns a labelled patient name line, or ""
func ExtractPatientName(text string) string {
	if m := patientNameRe.FindStringSubmatch(text); m != nil {
		return trimNameValue(m[1])
	}
	return ""
}

// ExtractDoctorName returns the prescribing doctor's name, preferring an
// explicit "Doctor:" label over an inline "Dr. X" mention.
func ExtractDoctorName(text string) string {
	if m := doctorLabeledRe.FindStringSubmatch(text); m != nil {
		if name := trimNameValue(m[1]); name != "" {
			return name
		}
	}
	if m := doctorInlineRe.FindStringSubmatch(text); m != nil {
		return "Dr. " + strings.TrimSpace(m[1])
	}
	return ""
}

// ExtractDoctorEmail returns a "doctor email:"-labelled address, or ""
func ExtractDoctorEmail(text string) string {
	if m := doctorEmailRe.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	return ""
}

// ExtractDoctorMobile returns a "doctor phone:"-labelled number, or ""
func ExtractDoctorMobile(text string) string {
	if m := doctorMobileRe.FindStringSubmatch(text); m != nil {
		return cleanMobile(m[1])
	}
	return ""
}

// ExtractClinicName returns a labelled clinic or hospital name, or ""
func ExtractClinicName(text string) string {
	if m := clinicNameRe.FindStringSubmatch(text); m != nil {
		return trimNameValue(m[1])
	}
	return ""
}

// ExtractClinicAddress returns a labelled address line, or ""
func ExtractClinicAddress(text string) string {
	if m := clinicAddressRe.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

// ExtractInstructions returns the first labelled instructions/notes line, or ""
func ExtractInstructions(text string) string {
	if m := instructionsRe.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

func trimNameValue(raw string) string {
	name := strings.TrimSpace(raw)
	if len(name) > 60 {
		name = strings.TrimSpace(name[:60])
	}
	return name
}

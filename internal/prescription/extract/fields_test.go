package extract_test

import (
	"testing"

	"github.com/medflow/rxscan-backend/internal/prescription/extract"
)

func TestExtractEmail(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"bare address", "Reach john.doe@example.com for queries", "john.doe@example.com"},
		{"labelled address", "Email: clinic-front@rxmail.in", "clinic-front@rxmail.in"},
		{"plus tag", "contact a.b+rx@sub.example.org today", "a.b+rx@sub.example.org"},
		{"labelled beats earlier bare", "cc: front-desk@clinic.in\nEmail: ramesh@example.com", "ramesh@example.com"},
		{"no address", "no contact details here", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extract.ExtractEmail(tt.text); got != tt.want {
				t.Errorf("ExtractEmail(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestExtractMobile(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"labelled with spaces", "Phone: 98765 43210", "9876543210"},
		{"indian bare", "Call 9876543210 for appointments", "9876543210"},
		{"indian with country code", "emergency +91-9876543210", "+919876543210"},
		{"north american format", "Reach us at (555) 123-4567", "5551234567"},
		{"generic long run", "ref 123456789012", "123456789012"},
		{"too short", "ext 12345", ""},
		{"labelled too short falls through", "Phone: 123-4567 or 9876543210", "9876543210"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extract.ExtractMobile(tt.text); got != tt.want {
				t.Errorf("ExtractMobile(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestExtractAge(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"labelled", "Age: 45", "45"},
		{"suffix years", "patient is 45 years old", "45"},
		{"suffix yrs", "62 yrs, non smoker", "62"},
		{"out of range rejected", "Age: 200 years", ""},
		{"zero rejected", "Age: 0", ""},
		{"no age", "healthy adult", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extract.ExtractAge(tt.text); got != tt.want {
				t.Errorf("ExtractAge(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestExtractWeight(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"labelled", "Weight: 70.5 kg", "70.5"},
		{"suffix", "weighs 80kg now", "80"},
		{"out of range", "Weight: 800 kg", ""},
		{"no weight", "no vitals recorded", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extract.ExtractWeight(tt.text); got != tt.want {
				t.Errorf("ExtractWeight(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestExtractHeight(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"labelled cm", "Height: 172", "172"},
		{"suffix cm", "stands 168 cm tall", "168"},
		{"feet and inches", `Height 5'8"`, "173"},
		{"feet and inches with in suffix", "height 6' 1 in", "185"},
		{"labelled out of range falls to feet", `Height: 5'8"`, "173"},
		{"out of range", "Height: 400 cm", ""},
		{"no height", "no measurements", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extract.ExtractHeight(tt.text); got != tt.want {
				t.Errorf("ExtractHeight(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestExtractExpiryDate(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"expiry with two digit year", "expiry: 05/09/24", "2024-09-05"},
		{"valid until dashes", "valid until 01-12-2025", "2025-12-01"},
		{"next visit label", "next visit on 15/01/2026", "2026-01-15"},
		{"follow up label", "follow-up: 3-4-25", "2025-04-03"},
		{"malformed two parts", "expiry: 05/24", ""},
		{"no date", "take as directed", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extract.ExtractExpiryDate(tt.text); got != tt.want {
				t.Errorf("ExtractExpiryDate(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestExtractDoctorName(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"labelled", "Doctor: Anil Kumar", "Anil Kumar"},
		{"inline dr prefix", "Seen by Dr. Priya Sharma today", "Dr. Priya Sharma"},
		{"no doctor", "self medicated", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extract.ExtractDoctorName(tt.text); got != tt.want {
				t.Errorf("ExtractDoctorName(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestExtractPatientName(t *testing.T) {
	if got := extract.ExtractPatientName("Patient Name: Ramesh Gupta\nAge: 45"); got != "Ramesh Gupta" {
		t.Errorf("ExtractPatientName = %q, want %q", got, "Ramesh Gupta")
	}
	if got := extract.ExtractPatientName("no names here"); got != "" {
		t.Errorf("ExtractPatientName = %q, want empty", got)
	}
}

package profile

import (
	"testing"

	"munchmate/models"
)

func validProfile() models.StudentProfile {
	return models.StudentProfile{
		Name:          "Asha Verma",
		Department:    "Computer Science",
		Section:       "B",
		Semester:      "4th",
		RollNumber:    "CS21042",
		ContactNumber: "9876543210",
	}
}

func TestValidateAcceptsCompleteProfile(t *testing.T) {
	p := validProfile()
	if msg := validate(&p); msg != "" {
		t.Fatalf("expected valid profile, got %q", msg)
	}
}

func TestValidateRejections(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*models.StudentProfile)
	}{
		{"missing name", func(p *models.StudentProfile) { p.Name = "" }},
		{"unknown department", func(p *models.StudentProfile) { p.Department = "Alchemy" }},
		{"unknown section", func(p *models.StudentProfile) { p.Section = "Z" }},
		{"unknown semester", func(p *models.StudentProfile) { p.Semester = "9th" }},
		{"short roll number", func(p *models.StudentProfile) { p.RollNumber = "CS1" }},
		{"short contact", func(p *models.StudentProfile) { p.ContactNumber = "12345" }},
		{"non-digit contact", func(p *models.StudentProfile) { p.ContactNumber = "98765abcde" }},
	}
	for _, c := range cases {
		p := validProfile()
		c.mutate(&p)
		if msg := validate(&p); msg == "" {
			t.Errorf("%s: expected a validation error", c.name)
		}
	}
}

func TestGenerateOTP(t *testing.T) {
	otp := GenerateOTP(6)
	if len(otp) != 6 {
		t.Fatalf("expected 6 digits, got %q", otp)
	}
	for _, r := range otp {
		if r < '0' || r > '9' {
			t.Fatalf("non-digit in otp %q", otp)
		}
	}
}

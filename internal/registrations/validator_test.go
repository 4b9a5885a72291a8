package registrations

import (
	"strings"
	"testing"
)

func validInput() Input {
	return Input{
		Name:        "  Asha Rai ",
		Email:       " Asha@Example.COM ",
		Contact:     "987-654-3210",
		Program:     " BBA ",
		Semester:    " 1 ",
		ProfileLink: "https://www.instagram.com/reel/abc123/",
	}
}

func TestValidateNormalizes(t *testing.T) {
	norm, verr := Validate(validInput(), LinkModeReel)
	if verr != nil {
		t.Fatalf("Validate() error: %v", verr)
	}
	if norm.FullName != "Asha Rai" {
		t.Errorf("FullName = %q, want %q", norm.FullName, "Asha Rai")
	}
	if norm.Email != "asha@example.com" {
		t.Errorf("Email = %q, want %q", norm.Email, "asha@example.com")
	}
	if norm.Contact != "9876543210" {
		t.Errorf("Contact = %q, want %q", norm.Contact, "9876543210")
	}
	if norm.Program != "BBA" || norm.Semester != "1" {
		t.Errorf("Program/Semester = %q/%q, want trimmed", norm.Program, norm.Semester)
	}
}

func TestValidateRequiredFields(t *testing.T) {
	_, verr := Validate(Input{}, LinkModeReel)
	if verr == nil {
		t.Fatal("Validate() = nil error for empty input")
	}
	if len(verr.Violations) != 6 {
		t.Fatalf("violations = %d, want 6 (collect-all): %v", len(verr.Violations), verr)
	}
}

func TestValidateCollectsAllViolations(t *testing.T) {
	in := validInput()
	in.Email = "not-an-email"
	in.Contact = "12345"
	_, verr := Validate(in, LinkModeReel)
	if verr == nil {
		t.Fatal("Validate() = nil error")
	}
	if len(verr.Violations) != 2 {
		t.Fatalf("violations = %d, want 2: %v", len(verr.Violations), verr)
	}
}

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		email string
		ok    bool
	}{
		{"a@x.com", true},
		{"a.b+c@sub.example.co", true},
		{"missing-at.com", false},
		{"two@@x.com", false},
		{"spaces in@x.com", false},
		{"a@x", false},
	}
	for _, tt := range tests {
		in := validInput()
		in.Email = tt.email
		_, verr := Validate(in, LinkModeReel)
		if ok := verr == nil; ok != tt.ok {
			t.Errorf("Validate(email=%q) ok = %v, want %v", tt.email, ok, tt.ok)
		}
	}
}

func TestValidateContact(t *testing.T) {
	tests := []struct {
		contact string
		want    string
		ok      bool
	}{
		{"987-654-3210", "9876543210", true},
		{"(987) 654 3210", "9876543210", true},
		{"9876543210", "9876543210", true},
		{"98765", "", false},
		{"98765432101", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		in := validInput()
		in.Contact = tt.contact
		norm, verr := Validate(in, LinkModeReel)
		if ok := verr == nil; ok != tt.ok {
			t.Errorf("Validate(contact=%q) ok = %v, want %v", tt.contact, ok, tt.ok)
			continue
		}
		if tt.ok && norm.Contact != tt.want {
			t.Errorf("Validate(contact=%q) = %q, want %q", tt.contact, norm.Contact, tt.want)
		}
	}
}

func TestValidateNameLength(t *testing.T) {
	in := validInput()
	in.Name = strings.Repeat("x", 101)
	if _, verr := Validate(in, LinkModeReel); verr == nil {
		t.Error("Validate() accepted a 101-char name")
	}
	in.Name = strings.Repeat("x", 100)
	if _, verr := Validate(in, LinkModeReel); verr != nil {
		t.Errorf("Validate() rejected a 100-char name: %v", verr)
	}
}

func TestValidateProfileLink(t *testing.T) {
	tests := []struct {
		link string
		mode LinkMode
		ok   bool
	}{
		{"https://www.instagram.com/reel/abc123/", LinkModeReel, true},
		{"https://instagram.com/reels/Xy_z-1", LinkModeReel, true},
		{"http://www.instagram.com/p/abc/", LinkModeReel, true},
		{"https://www.instagram.com/someuser/", LinkModeReel, false},
		{"https://notinstagram.com/x", LinkModeReel, false},
		{"https://www.instagram.com/reel/abc/extra", LinkModeReel, false},
		{"https://www.instagram.com/some.user_1/", LinkModeProfile, true},
		{"https://instagram.com/someuser", LinkModeProfile, true},
		{"https://www.instagram.com/reel/abc123/", LinkModeProfile, false},
		{"https://notinstagram.com/someuser/", LinkModeProfile, false},
	}
	for _, tt := range tests {
		in := validInput()
		in.ProfileLink = tt.link
		_, verr := Validate(in, tt.mode)
		if ok := verr == nil; ok != tt.ok {
			t.Errorf("Validate(link=%q, mode=%s) ok = %v, want %v", tt.link, tt.mode, ok, tt.ok)
		}
	}
}

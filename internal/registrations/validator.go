package registrations

import (
	"regexp"
	"strings"
)

// LinkMode selects which Instagram URL shape profileLink must match.
type LinkMode string

const (
	// LinkModeReel accepts reel/post URLs, e.g.
	// https://www.instagram.com/reel/abc123/
	LinkModeReel LinkMode = "reel"
	// LinkModeProfile accepts profile URLs, e.g.
	// https://www.instagram.com/username/
	LinkModeProfile LinkMode = "profile"
)

const maxNameLength = 100

var (
	emailPattern   = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	nonDigits      = regexp.MustCompile(`\D`)
	reelPattern    = regexp.MustCompile(`(?i)^https?://(?:www\.)?instagram\.com/(?:reels?|p)/[A-Za-z0-9_.-]+/?$`)
	profilePattern = regexp.MustCompile(`(?i)^https?://(?:www\.)?instagram\.com/[A-Za-z0-9._]+/?$`)
)

// Input holds the raw candidate field values from the intake request.
type Input struct {
	Name        string
	Email       string
	Contact     string
	Program     string
	Semester    string
	ProfileLink string
}

// Normalized is a validated submission: strings trimmed, email
// lowercased, contact reduced to its digits.
type Normalized struct {
	FullName    string
	Email       string
	Contact     string
	Program     string
	Semester    string
	ProfileLink string
}

// Validate normalizes the input and collects every violation at once, so
// the form can show all problems in one round trip. Pure; no side effects.
func Validate(in Input, mode LinkMode) (Normalized, *ValidationError) {
	out := Normalized{
		FullName:    strings.TrimSpace(in.Name),
		Email:       strings.ToLower(strings.TrimSpace(in.Email)),
		Contact:     nonDigits.ReplaceAllString(in.Contact, ""),
		Program:     strings.TrimSpace(in.Program),
		Semester:    strings.TrimSpace(in.Semester),
		ProfileLink: strings.TrimSpace(in.ProfileLink),
	}

	verr := &ValidationError{}

	if out.FullName == "" {
		verr.add("name", "Full name is required")
	} else if len(out.FullName) > maxNameLength {
		verr.add("name", "Name cannot exceed %d characters", maxNameLength)
	}

	if out.Email == "" {
		verr.add("email", "Email is required")
	} else if !emailPattern.MatchString(out.Email) {
		verr.add("email", "%s is not a valid email address", out.Email)
	}

	if strings.TrimSpace(in.Contact) == "" {
		verr.add("contact", "Contact number is required")
	} else if len(out.Contact) != 10 {
		verr.add("contact", "Contact must be a valid 10-digit phone number")
	}

	if out.Program == "" {
		verr.add("program", "Program is required")
	}
	if out.Semester == "" {
		verr.add("semester", "Semester is required")
	}

	if out.ProfileLink == "" {
		verr.add("profileLink", "Profile link is required")
	} else if !linkPattern(mode).MatchString(out.ProfileLink) {
		verr.add("profileLink", "Invalid Instagram URL")
	}

	if len(verr.Violations) > 0 {
		return Normalized{}, verr
	}
	return out, nil
}

func linkPattern(mode LinkMode) *regexp.Regexp {
	if mode == LinkModeProfile {
		return profilePattern
	}
	return reelPattern
}

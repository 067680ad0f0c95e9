package model

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/hay-kot/criterio"
)

// Validation for user input that must be rejected before any request is
// sent. Failures are criterio.FieldErrors so callers can report every field.

var errRequired = errors.New("is required")

func required(s string) error {
	if strings.TrimSpace(s) == "" {
		return errRequired
	}
	return nil
}

// resumeLink accepts absolute http(s) URLs only.
func resumeLink(s string) error {
	if err := required(s); err != nil {
		return err
	}
	u, err := url.Parse(strings.TrimSpace(s))
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("must be an http(s) link, got %q", s)
	}
	return nil
}

// ValidateApply checks a student's application before it is submitted.
func ValidateApply(jobID, link string) error {
	return criterio.ValidateStruct(
		criterio.Run("job_id", jobID, required),
		criterio.Run("resume_link", link, resumeLink),
	)
}

// ValidateStatusUpdate checks an HR status change on an application.
func ValidateStatusUpdate(applicationID string, status ApplicationStatus) error {
	return criterio.ValidateStruct(
		criterio.Run("application_id", applicationID, required),
		criterio.Run("status", status, func(s ApplicationStatus) error {
			if !s.IsValid() {
				return fmt.Errorf("invalid value %q", s)
			}
			return nil
		}),
	)
}

// ValidateOfferResponse checks a student's answer to an offer. Only
// ACCEPTED and DECLINED are answers; the other states are set by HR.
func ValidateOfferResponse(offerID string, status OfferStatus) error {
	return criterio.ValidateStruct(
		criterio.Run("offer_id", offerID, required),
		criterio.Run("status", status, func(s OfferStatus) error {
			if s != OfferAccepted && s != OfferDeclined {
				return fmt.Errorf("must be %s or %s, got %q", OfferAccepted, OfferDeclined, s)
			}
			return nil
		}),
	)
}

// ParseApplicationStatus normalizes user input such as "shortlisted".
func ParseApplicationStatus(s string) ApplicationStatus {
	return ApplicationStatus(strings.ToUpper(strings.TrimSpace(s)))
}

// ParseOfferAnswer maps "accept"/"decline" (and the status names) to an
// OfferStatus. Unknown input is returned upper-cased so validation rejects it.
func ParseOfferAnswer(s string) OfferStatus {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "accept", "accepted", "yes":
		return OfferAccepted
	case "decline", "declined", "no":
		return OfferDeclined
	}
	return OfferStatus(strings.ToUpper(strings.TrimSpace(s)))
}

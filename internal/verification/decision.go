package verification

import (
	"fmt"
	"strings"

	dErrors "backoffice/pkg/domain-errors"
)

// MinNotesLength is the shortest reviewer note accepted with a decision.
const MinNotesLength = 10

// Decision is a bank reviewer's verdict on a client.
type Decision struct {
	Status Status `json:"verificationStatus"`
	Notes  string `json:"notes"`
}

// DecisionTargets are the outcomes offered to a reviewer.
func DecisionTargets() []Status {
	return []Status{StatusVerified, StatusRejected}
}

// Normalize trims reviewer notes.
func (d *Decision) Normalize() {
	d.Notes = strings.TrimSpace(d.Notes)
}

// Validate checks the form before anything leaves the process.
func (d *Decision) Validate() error {
	if d.Status == "" {
		return dErrors.New(dErrors.CodeValidation, "verificationStatus is required")
	}
	offered := false
	for _, s := range DecisionTargets() {
		if d.Status == s {
			offered = true
			break
		}
	}
	if !offered {
		return dErrors.New(dErrors.CodeValidation,
			fmt.Sprintf("verificationStatus must be %s or %s", StatusVerified, StatusRejected))
	}
	return ValidateNotes(d.Notes)
}

// ValidateNotes applies the reviewer note rules shared by every status change.
func ValidateNotes(notes string) error {
	if notes == "" {
		return dErrors.New(dErrors.CodeValidation, "notes are required")
	}
	if len([]rune(notes)) < MinNotesLength {
		return dErrors.New(dErrors.CodeValidation,
			fmt.Sprintf("notes must be at least %d characters", MinNotesLength))
	}
	return nil
}

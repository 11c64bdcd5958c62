package verification

import (
	"fmt"

	dErrors "backoffice/pkg/domain-errors"
)

// Status is the onboarding approval state of a corporate client.
type Status string

const (
	StatusPending   Status = "Pending"
	StatusInReview  Status = "InReview"
	StatusVerified  Status = "Verified"
	StatusRejected  Status = "Rejected"
	StatusSuspended Status = "Suspended"
)

var allStatuses = []Status{
	StatusPending,
	StatusInReview,
	StatusVerified,
	StatusRejected,
	StatusSuspended,
}

// transitions is the adjacency of legal status changes. No status lists itself.
var transitions = map[Status][]Status{
	StatusPending:   {StatusInReview, StatusVerified, StatusRejected},
	StatusInReview:  {StatusVerified, StatusRejected, StatusPending},
	StatusVerified:  {StatusSuspended, StatusInReview},
	StatusRejected:  {StatusInReview, StatusPending},
	StatusSuspended: {StatusVerified, StatusRejected},
}

// AllStatuses returns the five statuses in declaration order.
func AllStatuses() []Status {
	out := make([]Status, len(allStatuses))
	copy(out, allStatuses)
	return out
}

// ParseStatus is case-sensitive; wire values equal the constant names.
func ParseStatus(raw string) (Status, error) {
	s := Status(raw)
	if !s.IsValid() {
		return "", dErrors.New(dErrors.CodeInvalidInput, fmt.Sprintf("unknown verification status %q", raw))
	}
	return s, nil
}

func (s Status) IsValid() bool {
	_, ok := transitions[s]
	return ok
}

func (s Status) String() string {
	return string(s)
}

// CanTransitionTo reports whether target is in the allowed set of s.
func (s Status) CanTransitionTo(target Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// IsValidTransition returns true iff target is in the allowed set for current.
// Unknown statuses have no allowed targets.
func IsValidTransition(current, target Status) bool {
	return current.CanTransitionTo(target)
}

// AllowedTransitions returns a copy of the allowed targets for current.
func AllowedTransitions(current Status) []Status {
	allowed := transitions[current]
	out := make([]Status, len(allowed))
	copy(out, allowed)
	return out
}

// Transition is the single check every status mutation goes through before
// reaching the backend.
func Transition(current, target Status) error {
	if !target.IsValid() {
		return dErrors.New(dErrors.CodeInvalidInput, fmt.Sprintf("unknown verification status %q", target))
	}
	if !IsValidTransition(current, target) {
		return dErrors.New(dErrors.CodeInvalidTransition,
			fmt.Sprintf("client status cannot change from %s to %s", current, target))
	}
	return nil
}

package applicant

import (
	"errors"
	"fmt"
)

type Status string

const (
	StatusDraft       Status = "draft"
	StatusSubmitted   Status = "submitted"
	StatusUnderReview Status = "under_review"
	StatusAccepted    Status = "accepted"
	StatusRejected    Status = "rejected"
	StatusWaitlisted  Status = "waitlisted"
	StatusEnrolled    Status = "enrolled"
)

// Decision is an administrator's provisional verdict, distinct from the
// public Status until released.
type Decision string

const (
	DecisionAccepted   Decision = "accepted"
	DecisionRejected   Decision = "rejected"
	DecisionWaitlisted Decision = "waitlisted"
)

var ErrInvalidTransition = errors.New("invalid status transition")

func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusSubmitted, StatusUnderReview, StatusAccepted,
		StatusRejected, StatusWaitlisted, StatusEnrolled:
		return true
	}
	return false
}

// Decided reports whether a decision has been released to the applicant.
func (s Status) Decided() bool {
	return s == StatusAccepted || s == StatusRejected || s == StatusWaitlisted
}

func (d Decision) Valid() bool {
	switch d {
	case DecisionAccepted, DecisionRejected, DecisionWaitlisted:
		return true
	}
	return false
}

// Status maps a released decision onto the public lifecycle status.
func (d Decision) Status() Status {
	return Status(d)
}

// forward edges of the lifecycle. Reset (any -> draft) is handled
// separately in Transition because it is an administrative rewind, not
// a forward step.
var edges = map[Status][]Status{
	StatusDraft:       {StatusSubmitted, StatusUnderReview},
	StatusSubmitted:   {StatusUnderReview},
	StatusUnderReview: {StatusAccepted, StatusRejected, StatusWaitlisted},
	StatusAccepted:    {StatusEnrolled},
	StatusRejected:    {},
	StatusWaitlisted:  {},
	StatusEnrolled:    {},
}

// CanTransition reports whether from -> to is an allowed edge. The admin
// reset edge (to == draft) is permitted from every state, draft included:
// resetting a draft is a no-op rewind that still clears the submission
// timestamp. Authorization for reset is enforced at the route guard, not
// here.
func CanTransition(from, to Status) bool {
	if !from.Valid() || !to.Valid() {
		return false
	}
	if to == StatusDraft {
		return true
	}
	for _, next := range edges[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Transition validates the requested edge and returns the new status.
// Services must route every status mutation through this function.
func Transition(from, to Status) (Status, error) {
	if !CanTransition(from, to) {
		return from, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}
	return to, nil
}

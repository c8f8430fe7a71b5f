package booking

import "github.com/legwalet/le-barber/internal/httperr"

// ===============================
// Booking Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusDeclined  Status = "declined"
	StatusCompleted Status = "completed"
)

// transitions is the enforced table: pending may confirm or decline,
// only a confirmed booking completes. Nothing leaves a terminal state.
var transitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusDeclined},
	StatusConfirmed: {StatusCompleted},
}

func IsValid(s Status) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusDeclined, StatusCompleted:
		return true
	}
	return false
}

// CanTransition validates a status change against the table. Unknown
// target statuses fall through to invalid_transition like any other
// move the table does not allow.
func CanTransition(from, to Status) error {
	for _, next := range transitions[from] {
		if next == to {
			return nil
		}
	}
	return httperr.ErrBusiness(httperr.CodeInvalidTransition)
}

func InitialStatus() Status {
	return StatusPending
}

package request

import "github.com/legwalet/le-barber/internal/httperr"

// ===============================
// Booking Request Status
// ===============================

type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusDeclined Status = "declined"
	StatusExpired  Status = "expired"
)

// Terminal reports whether no further transition is allowed.
func Terminal(current Status) bool {
	return current != StatusPending
}

// CanResolve guards accept and decline: only a pending request may leave
// pending, and the first resolution wins.
func CanResolve(current Status) error {
	if Terminal(current) {
		return httperr.ErrBusiness(httperr.CodeAlreadyResolved)
	}
	return nil
}

func InitialStatus() Status {
	return StatusPending
}

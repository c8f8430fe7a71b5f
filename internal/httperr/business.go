package httperr

import "errors"

// Business error codes shared across the core. Handlers map these to HTTP
// statuses; everything else is treated as a storage fault and returned as 500.
const (
	CodeNotFound          = "not_found"
	CodeConflict          = "conflict"
	CodeDuplicateEmail    = "duplicate_email"
	CodeAlreadyResolved   = "already_resolved"
	CodeInvalidTransition = "invalid_transition"
	CodeValidation        = "validation_error"
	CodeInvalidLogin      = "invalid_credentials"
	CodeSchemaDowngrade   = "schema_downgrade"
)

type BusinessError struct {
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// BusinessCode returns the code of a business error, or "" for storage faults.
func BusinessCode(err error) string {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code
	}
	return ""
}

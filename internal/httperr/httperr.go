package httperr

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Conflict(c *gin.Context, code, message string) {
	Write(c, http.StatusConflict, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

func Forbidden(c *gin.Context, code, message string) {
	Write(c, http.StatusForbidden, code, message)
}

// FromError maps a business error onto the right status; anything without a
// business code is a storage fault and surfaces as 500.
func FromError(c *gin.Context, err error) {
	switch code := BusinessCode(err); code {
	case CodeNotFound:
		NotFound(c, code, "record not found")
	case CodeConflict, CodeDuplicateEmail:
		Conflict(c, code, "duplicate value on unique field")
	case CodeAlreadyResolved, CodeInvalidTransition:
		Conflict(c, code, "invalid lifecycle transition")
	case CodeValidation:
		BadRequest(c, code, "invalid input")
	case CodeInvalidLogin:
		Unauthorized(c, code, "invalid credentials")
	case "":
		Internal(c, "storage_fault", err.Error())
	default:
		BadRequest(c, code, code)
	}
}

package httperr

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/recruit-scheduler/internal/validation"
)

type HTTPError struct {
	Code    string            `json:"error_code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
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

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

// Validation answers 422 with one message per failed field.
func Validation(c *gin.Context, fe validation.FieldErrors) {
	c.JSON(http.StatusUnprocessableEntity, HTTPError{
		Code:    "validation_failed",
		Message: "Certains champs sont invalides.",
		Fields:  fe,
	})
}

package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// FieldError is one entry of a 422 response's detail list.
type FieldError struct {
	Loc  []string `json:"loc"`
	Msg  string   `json:"msg"`
	Type string   `json:"type"`
}

func respondError(c *gin.Context, status int, detail interface{}) {
	c.AbortWithStatusJSON(status, gin.H{"detail": detail})
}

// respondValidationError writes 422. Validator failures become a FieldError
// list; decoding failures (bad JSON, bad timestamp, non-numeric query
// values) are reported as their message.
func respondValidationError(c *gin.Context, source string, err error) {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		respondError(c, http.StatusUnprocessableEntity, err.Error())
		return
	}

	details := make([]FieldError, 0, len(ve))
	for _, fe := range ve {
		details = append(details, FieldError{
			Loc:  []string{source, fe.Field()},
			Msg:  fieldErrorMessage(fe),
			Type: fe.Tag(),
		})
	}
	respondError(c, http.StatusUnprocessableEntity, details)
}

func fieldErrorMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "Field required"
	case "min":
		return fmt.Sprintf("Input should be greater than or equal to %s", fe.Param())
	case "max":
		return fmt.Sprintf("Input should be less than or equal to %s", fe.Param())
	default:
		return fmt.Sprintf("failed on the '%s' rule", fe.Tag())
	}
}

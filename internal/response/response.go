// Package response holds the JSON error shapes shared by every handler.
package response

import (
	"errors"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

var configureOnce sync.Once

// ConfigureBinding makes gin reject unknown JSON fields, report validation
// failures by their JSON names and accept the maxbytes tag. Safe to call
// more than once, and required before binding any struct using maxbytes.
func ConfigureBinding() {
	configureOnce.Do(func() {
		binding.EnableDecoderDisallowUnknownFields = true

		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			v.RegisterTagNameFunc(func(f reflect.StructField) string {
				name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
				if name == "-" {
					return ""
				}
				if name == "" {
					return f.Name
				}
				return name
			})
			_ = v.RegisterValidation("maxbytes", maxBytes)
		}
	})
}

// maxBytes backs `maxbytes=N`: the string is at most N bytes. `max` counts runes.
func maxBytes(fl validator.FieldLevel) bool {
	n, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	return len(fl.Field().String()) <= n
}

// Error aborts with status and a plain error message.
func Error(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, ErrorResponse{Error: msg})
}

// Internal aborts with a generic 500 and attaches err for the access log.
func Internal(c *gin.Context, msg string, err error) {
	if err != nil {
		_ = c.Error(err)
	}
	Error(c, http.StatusInternalServerError, msg)
}

// Invalid aborts with 422. Validator failures are listed per field; any
// other bind error (bad JSON, unknown field, wrong type) is reported as is.
func Invalid(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fields[fe.Field()] = rule(fe)
		}
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:  "validation failed",
			Fields: fields,
		})
		return
	}

	c.AbortWithStatusJSON(http.StatusUnprocessableEntity, ErrorResponse{
		Error: "invalid request body: " + err.Error(),
	})
}

func rule(fe validator.FieldError) string {
	if fe.Param() == "" {
		return fe.Tag()
	}
	return fe.Tag() + "=" + fe.Param()
}

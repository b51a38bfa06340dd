package schema

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

type Code string

const (
	CodeRequired      Code = "required"
	CodeInvalidType   Code = "invalid_type"
	CodeInvalidFormat Code = "invalid_format"
	CodeInvalidEnum   Code = "invalid_enum"
)

// Issue es un problema puntual de un campo del payload.
type Issue struct {
	Path    string `json:"path"`
	Code    Code   `json:"code"`
	Message string `json:"message"`
}

// ValidationError enumera todos los campos que no pasan el schema.
type ValidationError struct {
	Schema string  `json:"schema"`
	Issues []Issue `json:"issues"`
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Issues))
	for _, is := range e.Issues {
		msgs = append(msgs, is.Message)
	}
	return "invalid " + e.Schema + ": " + strings.Join(msgs, "; ")
}

// Issue devuelve el primer issue de path, si existe.
func (e *ValidationError) Issue(path string) (Issue, bool) {
	for _, is := range e.Issues {
		if is.Path == path {
			return is, true
		}
	}
	return Issue{}, false
}

func issueFromFieldError(fe validator.FieldError) Issue {
	code := CodeInvalidFormat
	var msg string

	switch fe.Tag() {
	case "uuid", "uuid4":
		msg = "must be a valid UUID"
	case "email":
		msg = "must be a valid email"
	case "url", "http_url":
		msg = "must be a valid URL"
	case "oneof":
		code = CodeInvalidEnum
		msg = "must be one of: " + strings.Join(strings.Fields(fe.Param()), ", ")
	case "gte":
		msg = "must be greater than or equal to " + fe.Param()
	case "min":
		msg = "must have at least " + fe.Param() + " characters"
	case "datetime":
		msg = "must match format " + fe.Param()
	default:
		msg = "failed " + fe.Tag() + " validation"
	}

	return Issue{
		Path:    fe.Field(),
		Code:    code,
		Message: fe.Field() + " " + msg,
	}
}

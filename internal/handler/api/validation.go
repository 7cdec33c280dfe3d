package api

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

type fieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
}

// validationDetail lists failing fields so clients can highlight them.
func validationDetail(err error) any {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return nil
	}
	out := make([]fieldError, len(ve))
	for i, fe := range ve {
		out[i] = fieldError{Field: fe.Field(), Rule: fe.Tag()}
	}
	return out
}

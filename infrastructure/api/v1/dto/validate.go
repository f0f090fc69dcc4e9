// Package dto holds the request and response bodies of the v1 API.
package dto

import (
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// Validate checks v against its `validate` struct tags.
// The returned error is validator.ValidationErrors when a rule fails.
func Validate(v any) error {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate.Struct(v)
}

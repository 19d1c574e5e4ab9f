package serverutils

import (
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// ValidateRequest runs struct tag validation. Failures surface as
// validator.ValidationErrors and are mapped to 400 by the error handler.
func ValidateRequest(req interface{}) error {
	return Validator().Struct(req)
}

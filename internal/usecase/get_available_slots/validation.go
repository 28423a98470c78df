package get_available_slots

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	req.ShopID = strings.TrimSpace(req.ShopID)
	req.Date = strings.TrimSpace(req.Date)

	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		for _, fe := range validationErrs {
			if fe.Tag() == "required" {
				return fmt.Errorf("%w: %s", ErrMissingFields, fe.Field())
			}
		}
	}
	return fmt.Errorf("%w: %q", ErrInvalidFormat, req.Date)
}

package cancel_booking

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

type lookupMode int

const (
	lookupByID lookupMode = iota + 1
	lookupByPhoneAndDate
)

// validateRequest проверяет запрос и определяет режим поиска.
// Без ID записи обязательны телефон и дата
func validateRequest(req *Request) (lookupMode, error) {
	req.ShopID = strings.TrimSpace(req.ShopID)
	req.AppointmentID = strings.ToUpper(strings.TrimSpace(req.AppointmentID))
	req.CustomerPhone = strings.TrimSpace(req.CustomerPhone)
	req.Date = strings.TrimSpace(req.Date)

	if err := validate.Struct(req); err != nil {
		return 0, classify(err)
	}

	if req.AppointmentID != "" {
		return lookupByID, nil
	}
	return lookupByPhoneAndDate, nil
}

// classify незаполненные поля важнее неверного формата
func classify(err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}

	for _, fe := range validationErrs {
		if fe.Tag() == "required_without" {
			return fmt.Errorf("%w: %s", ErrMissingFields, fe.Field())
		}
	}
	return fmt.Errorf("%w: %v", ErrInvalidFormat, validationErrs)
}

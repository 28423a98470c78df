package create_booking

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/m04kA/SMC-WorkshopAppointments/internal/domain"
	"github.com/m04kA/SMC-WorkshopAppointments/pkg/types"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// validateRequest проверяет запрос. Незаполненные поля важнее неверного формата
func validateRequest(req *Request) error {
	trimRequest(req)

	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}

	missing := make([]string, 0)
	for _, fe := range validationErrs {
		if fe.Tag() == "required" {
			missing = append(missing, fe.Field())
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingFields, strings.Join(missing, ", "))
	}

	return fmt.Errorf("%w: %v", ErrInvalidFormat, validationErrs)
}

func trimRequest(req *Request) {
	req.ShopID = strings.TrimSpace(req.ShopID)
	req.Service = strings.TrimSpace(req.Service)
	req.Date = strings.TrimSpace(req.Date)
	req.Time = strings.TrimSpace(req.Time)
	req.CustomerName = strings.TrimSpace(req.CustomerName)
	req.CustomerPhone = strings.TrimSpace(req.CustomerPhone)
	req.VehiclePlate = strings.TrimSpace(req.VehiclePlate)
}

// buildReservation подставляет значения по умолчанию и нормализует время и услугу
func buildReservation(req *Request, defaultShopID string) (*domain.Reservation, error) {
	startTime, err := types.NewTimeStringFromString(req.Time)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}

	return &domain.Reservation{
		ShopID:        orDefault(req.ShopID, defaultShopID),
		Date:          req.Date,
		Time:          startTime,
		Service:       domain.NormalizeService(req.Service),
		CustomerName:  orDefault(req.CustomerName, domain.DefaultCustomerName),
		CustomerPhone: req.CustomerPhone,
		VehiclePlate:  orDefault(req.VehiclePlate, domain.DefaultVehiclePlate),
	}, nil
}

func orDefault(value, def string) string {
	if value == "" {
		return def
	}
	return value
}

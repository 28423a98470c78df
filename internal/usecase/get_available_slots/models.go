package get_available_slots

import "github.com/m04kA/SMC-WorkshopAppointments/internal/domain"

// Request модель запроса свободных слотов
type Request struct {
	ShopID string `validate:"omitempty,max=64"`             // Мастерская (по умолчанию "Main")
	Date   string `validate:"required,datetime=2006-01-02"` // Дата YYYY-MM-DD
}

// Response свободные и занятые слоты дня. Пустой Free - валидный результат (день занят)
type Response = domain.AvailabilitySnapshot

package audit_views

import (
	"context"

	"github.com/m04kA/SMC-WorkshopAppointments/internal/service/reservations/models"
)

type ReservationService interface {
	AuditViews(ctx context.Context, shopID, date string, phones ...string) (*models.AuditReport, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

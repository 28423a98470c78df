package dispatcher

// Тексты ответов клиенту
const (
	msgBookingMissingFields = "Me faltan datos (fecha, hora y teléfono)."
	msgOutOfHoursFormat     = "Nuestro horario es %s a %s."
	msgSlotTaken            = "Ese horario ya está tomado. ¿Quieres otro?"
	msgBookedFormat         = "Listo %s. Reservé %s el %s a las %s. Tu ID es %s."

	msgCancelMissingFields = "Indica el ID de la cita, o teléfono y fecha."
	msgCancelNotFound      = "No encontré la cita a cancelar."
	msgCancelled           = "Cita cancelada."

	msgAvailabilityMissingDate = "¿Para qué fecha necesitas disponibilidad?"
	msgNoSlotsFormat           = "No hay horarios disponibles el %s."
	msgAvailabilityFormat      = "Disponibilidad para %s el %s: %s."

	msgOpeningHoursFormat = "Atendemos de %s a %s."

	msgCapabilities  = "Puedo ayudarte a reservar, cancelar, ver horarios y disponibilidad."
	msgInvalidFormat = "La fecha debe tener formato AAAA-MM-DD y la hora HH:MM."
	msgInternalError = "Lo siento, tuvimos un problema técnico. Intenta de nuevo en unos minutos."
)

// Результаты обработки интента (метка метрики)
const (
	outcomeSuccess       = "success"
	outcomeMissingFields = "missing_fields"
	outcomeInvalidFormat = "invalid_format"
	outcomeOutOfHours    = "out_of_hours"
	outcomeSlotTaken     = "slot_taken"
	outcomeNotFound      = "not_found"
	outcomeNoSlots       = "no_slots"
	outcomeError         = "error"
	outcomeUnknownIntent = "unknown_intent"
)

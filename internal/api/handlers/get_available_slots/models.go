package get_available_slots

import (
	getAvailableSlots "github.com/m04kA/SMC-WorkshopAppointments/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-WorkshopAppointments/pkg/types"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	ShopID              string   `json:"shopId"`
	Date                string   `json:"date"`
	OpenTime            string   `json:"openTime"`
	CloseTime           string   `json:"closeTime"`
	SlotDurationMinutes int      `json:"slotDurationMinutes"`
	Free                []string `json:"free"`
	Taken               []string `json:"taken"`
}

// ToUseCaseRequest создает запрос use case из параметров пути и query
func ToUseCaseRequest(shopID, date string) *getAvailableSlots.Request {
	return &getAvailableSlots.Request{
		ShopID: shopID,
		Date:   date,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	return &AvailableSlotsResponse{
		ShopID:              resp.ShopID,
		Date:                resp.Date,
		OpenTime:            resp.Config.OpenTime.String(),
		CloseTime:           resp.Config.CloseTime.String(),
		SlotDurationMinutes: resp.Config.SlotDurationMinutes,
		Free:                labels(resp.Free),
		Taken:               labels(resp.Taken),
	}
}

func labels(slots []types.TimeString) []string {
	out := make([]string, 0, len(slots))
	for _, s := range slots {
		out = append(out, s.String())
	}
	return out
}

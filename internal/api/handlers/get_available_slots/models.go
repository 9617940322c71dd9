package get_available_slots

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/m04kA/RMS-AvailabilityService/internal/api/handlers"
	"github.com/m04kA/RMS-AvailabilityService/internal/domain"
	getAvailableSlots "github.com/m04kA/RMS-AvailabilityService/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date            string          `json:"date"`
	Kind            string          `json:"kind"`
	DurationMinutes int             `json:"durationMinutes"`
	Slots           []AvailableSlot `json:"slots"`
}

// AvailableSlot модель временного слота
type AvailableSlot struct {
	StartTime            string  `json:"startTime"`
	EndTime              string  `json:"endTime"`
	AvailableResourceIDs []int64 `json:"availableResourceIds"`
	AvailableSpots       int     `json:"availableSpots"`
	TotalSpots           int     `json:"totalSpots"`
	OccupancyRate        float64 `json:"occupancyRate"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]AvailableSlot, len(resp.Slots))
	for i, slot := range resp.Slots {
		ids := slot.AvailableResourceIDs
		if ids == nil {
			ids = []int64{}
		}
		slots[i] = AvailableSlot{
			StartTime:            slot.StartTime.String(),
			EndTime:              slot.EndTime.String(),
			AvailableResourceIDs: ids,
			AvailableSpots:       slot.AvailableSpots,
			TotalSpots:           slot.TotalSpots,
			OccupancyRate:        slot.OccupancyRate,
		}
	}

	return &AvailableSlotsResponse{
		Date:            resp.Date.Format(domain.DateFormat),
		Kind:            string(resp.Kind),
		DurationMinutes: resp.DurationMinutes,
		Slots:           slots,
	}
}

// ToUseCaseRequest создает запрос use case из query параметров
// kind по умолчанию table, partySize по умолчанию 1
func ToUseCaseRequest(query url.Values) (*getAvailableSlots.Request, error) {
	date, err := handlers.ParseDate(query.Get("date"))
	if err != nil {
		return nil, err
	}

	kind := domain.KindTable
	if s := query.Get("kind"); s != "" {
		kind = domain.ResourceKind(s)
		if !kind.IsValid() {
			return nil, fmt.Errorf("unknown kind %q", s)
		}
	}

	partySize := 1
	if s := query.Get("partySize"); s != "" {
		if partySize, err = strconv.Atoi(s); err != nil {
			return nil, err
		}
	}

	duration := 0
	if s := query.Get("durationMinutes"); s != "" {
		if duration, err = strconv.Atoi(s); err != nil {
			return nil, err
		}
	}

	return &getAvailableSlots.Request{
		Kind:            kind,
		Date:            date,
		PartySize:       partySize,
		DurationMinutes: duration,
	}, nil
}

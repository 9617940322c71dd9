package get_resource_allocations

import (
	"net/url"
	"strconv"

	"github.com/m04kA/RMS-AvailabilityService/internal/api/handlers"
	"github.com/m04kA/RMS-AvailabilityService/internal/service/allocations/models"
)

// ToServiceRequest формирует запрос к сервису из query параметров
// from/to: RFC3339 или YYYY-MM-DD; status: pending|confirmed|cancelled|completed; includeInactive: bool
func ToServiceRequest(resourceID int64, query url.Values) (*models.ListRequest, error) {
	req := &models.ListRequest{ResourceID: resourceID}

	if s := query.Get("from"); s != "" {
		from, err := handlers.ParseInstant(s)
		if err != nil {
			return nil, err
		}
		req.From = &from
	}

	if s := query.Get("to"); s != "" {
		to, err := handlers.ParseInstant(s)
		if err != nil {
			return nil, err
		}
		req.To = &to
	}

	if s := query.Get("status"); s != "" {
		req.Status = &s
	}

	if s := query.Get("includeInactive"); s != "" {
		includeInactive, err := strconv.ParseBool(s)
		if err != nil {
			return nil, err
		}
		req.IncludeInactive = includeInactive
	}

	return req, nil
}

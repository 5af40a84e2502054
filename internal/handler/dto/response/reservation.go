package response

import (
	"time"

	"github.com/daiya0277-lgtm/gyoza-app/internal/usecase/queries"

	"github.com/google/uuid"
)

type ReservationResponse struct {
	ID            uuid.UUID        `json:"id"`
	CustomerName  string           `json:"customerName"`
	CustomerPhone string           `json:"customerPhone"`
	Items         map[string]int32 `json:"items"`
	TotalAmount   int64            `json:"totalAmount"`
	PickupDate    string           `json:"pickupDate"`
	PickupTime    string           `json:"pickupTime"`
	CreatedAt     time.Time        `json:"createdAt"`
}

type PlaceReservationResponse struct {
	ID uuid.UUID `json:"id"`
}

func FromReservationView(v *queries.ReservationView) *ReservationResponse {
	return &ReservationResponse{
		ID:            v.ID,
		CustomerName:  v.CustomerName,
		CustomerPhone: v.CustomerPhone,
		Items:         v.Items,
		TotalAmount:   v.TotalAmount,
		PickupDate:    v.PickupDate,
		PickupTime:    v.PickupTime,
		CreatedAt:     v.CreatedAt,
	}
}

func FromReservationViews(views []*queries.ReservationView) []*ReservationResponse {
	result := make([]*ReservationResponse, len(views))
	for i, v := range views {
		result[i] = FromReservationView(v)
	}
	return result
}

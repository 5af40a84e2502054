package request

import (
	"github.com/daiya0277-lgtm/gyoza-app/internal/usecase/commands"
)

type PlaceReservationRequest struct {
	CustomerName  string           `json:"customerName" binding:"required"`
	CustomerPhone string           `json:"customerPhone" binding:"required"`
	Items         map[string]int32 `json:"items" binding:"required"`
	PickupTime    string           `json:"pickupTime" binding:"required"`
	StockSnapshot map[string]int32 `json:"stockSnapshot,omitempty"`
}

func (r PlaceReservationRequest) ToInput() commands.PlaceReservationInput {
	return commands.PlaceReservationInput{
		CustomerName:  r.CustomerName,
		CustomerPhone: r.CustomerPhone,
		Items:         r.Items,
		PickupTime:    r.PickupTime,
		StockSnapshot: r.StockSnapshot,
	}
}

package response

import (
	"github.com/daiya0277-lgtm/gyoza-app/internal/usecase/queries"
)

type ProductResponse struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	UnitPrice      int32  `json:"unitPrice"`
	TotalCapacity  int32  `json:"totalCapacity"`
	RemainingStock int32  `json:"remainingStock"`
	SortOrder      int32  `json:"sortOrder"`
}

func FromProductView(v *queries.ProductView) *ProductResponse {
	return &ProductResponse{
		ID:             v.ID,
		Name:           v.Name,
		UnitPrice:      v.UnitPrice,
		TotalCapacity:  v.TotalCapacity,
		RemainingStock: v.RemainingStock,
		SortOrder:      v.SortOrder,
	}
}

func FromProductViews(views []*queries.ProductView) []*ProductResponse {
	result := make([]*ProductResponse, len(views))
	for i, v := range views {
		result[i] = FromProductView(v)
	}
	return result
}

type PickupSlotsResponse struct {
	PickupDate string   `json:"pickupDate"`
	Slots      []string `json:"slots"`
}

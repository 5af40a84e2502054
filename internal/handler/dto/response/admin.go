package response

import (
	"time"

	"github.com/daiya0277-lgtm/gyoza-app/internal/usecase/queries"
)

type AdminLoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type ProductTotalResponse struct {
	ProductID        string `json:"productId"`
	ProductName      string `json:"productName"`
	ReservedQuantity int64  `json:"reservedQuantity"`
}

type SalesSummaryResponse struct {
	Products   []ProductTotalResponse `json:"products"`
	TotalSales int64                  `json:"totalSales"`
}

func FromSalesSummary(s *queries.SalesSummary) *SalesSummaryResponse {
	products := make([]ProductTotalResponse, len(s.Products))
	for i, p := range s.Products {
		products[i] = ProductTotalResponse{
			ProductID:        p.ProductID,
			ProductName:      p.ProductName,
			ReservedQuantity: p.ReservedQuantity,
		}
	}
	return &SalesSummaryResponse{
		Products:   products,
		TotalSales: s.TotalSales,
	}
}

package queries

import (
	"context"
	"time"

	"github.com/daiya0277-lgtm/gyoza-app/internal/infra"
	"github.com/daiya0277-lgtm/gyoza-app/internal/pkg/errs"
	"github.com/daiya0277-lgtm/gyoza-app/internal/usecase/shared"

	"github.com/google/uuid"
)

var ErrReservationNotFound = errs.New("reservation not found")

type ReservationView struct {
	ID            uuid.UUID
	CustomerName  string
	CustomerPhone string
	Items         map[string]int32
	TotalAmount   int64
	PickupDate    string
	PickupTime    string
	CreatedAt     time.Time
}

// ProductTotal is one line of the admin summary: how much of a product's
// capacity is claimed by live reservations.
type ProductTotal struct {
	ProductID        string
	ProductName      string
	ReservedQuantity int64
}

type SalesSummary struct {
	Products   []ProductTotal
	TotalSales int64
}

type ReservationReadStore interface {
	FindAll(ctx context.Context) ([]*shared.ReservationSnapshot, error)
	FindByID(ctx context.Context, id uuid.UUID) (*shared.ReservationSnapshot, error)
}

type ReservationQueries interface {
	// List returns every reservation ordered by pickup date and time.
	List(ctx context.Context) ([]*ReservationView, error)
	GetByID(ctx context.Context, id uuid.UUID) (*ReservationView, error)
	// Summary aggregates reserved quantities per product and total sales.
	// Pure read-side computation for the admin page.
	Summary(ctx context.Context) (*SalesSummary, error)
}

type reservationQueriesImpl struct {
	reservations ReservationReadStore
	products     ProductReadStore
}

func NewReservationQueries(reservations ReservationReadStore, products ProductReadStore) ReservationQueries {
	return &reservationQueriesImpl{
		reservations: reservations,
		products:     products,
	}
}

func (q *reservationQueriesImpl) List(ctx context.Context) ([]*ReservationView, error) {
	snapshots, err := q.reservations.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]*ReservationView, len(snapshots))
	for i, s := range snapshots {
		result[i] = toReservationView(s)
	}
	return result, nil
}

func (q *reservationQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*ReservationView, error) {
	snapshot, err := q.reservations.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrReservationNotFound)
		}
		return nil, err
	}
	return toReservationView(snapshot), nil
}

func (q *reservationQueriesImpl) Summary(ctx context.Context) (*SalesSummary, error) {
	products, err := q.products.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	reservations, err := q.reservations.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	reserved := make(map[string]int64, len(products))
	var totalSales int64
	for _, r := range reservations {
		for productID, qty := range r.Items {
			reserved[productID] += int64(qty)
		}
		totalSales += r.TotalAmount
	}

	summary := &SalesSummary{
		Products:   make([]ProductTotal, len(products)),
		TotalSales: totalSales,
	}
	for i, p := range products {
		summary.Products[i] = ProductTotal{
			ProductID:        p.ID,
			ProductName:      p.Name,
			ReservedQuantity: reserved[p.ID],
		}
	}

	return summary, nil
}

func toReservationView(s *shared.ReservationSnapshot) *ReservationView {
	return &ReservationView{
		ID:            s.ID,
		CustomerName:  s.CustomerName,
		CustomerPhone: s.CustomerPhone,
		Items:         s.Items,
		TotalAmount:   s.TotalAmount,
		PickupDate:    s.PickupDate,
		PickupTime:    s.PickupTime,
		CreatedAt:     s.CreatedAt,
	}
}

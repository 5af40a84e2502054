package reservation

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrUnknownProduct = errors.New("ordered product is not in the catalog")

// Reservation is a customer's committed order against the single sale day.
// Items and totalAmount are frozen at creation; there is no update operation.
type Reservation struct {
	id          uuid.UUID
	customer    Customer
	items       Items
	totalAmount int64
	pickupDate  string
	pickupTime  PickupSlot
	createdAt   time.Time
}

// NewReservation computes totalAmount from the authoritative unit prices the
// transaction re-read, so a stale catalog snapshot can never leak into the
// frozen total.
func NewReservation(
	customer Customer,
	items Items,
	unitPrices map[string]int32,
	pickupDate string,
	pickupTime PickupSlot,
	createdAt time.Time,
) (*Reservation, error) {
	var total int64
	for id, qty := range items.Quantities() {
		price, ok := unitPrices[id]
		if !ok {
			return nil, ErrUnknownProduct
		}
		total += int64(qty) * int64(price)
	}

	return &Reservation{
		id:          uuid.New(),
		customer:    customer,
		items:       items,
		totalAmount: total,
		pickupDate:  pickupDate,
		pickupTime:  pickupTime,
		createdAt:   createdAt,
	}, nil
}

func Reconstruct(
	id uuid.UUID,
	customer Customer,
	items Items,
	totalAmount int64,
	pickupDate string,
	pickupTime PickupSlot,
	createdAt time.Time,
) *Reservation {
	return &Reservation{
		id:          id,
		customer:    customer,
		items:       items,
		totalAmount: totalAmount,
		pickupDate:  pickupDate,
		pickupTime:  pickupTime,
		createdAt:   createdAt,
	}
}

func (r *Reservation) ID() uuid.UUID        { return r.id }
func (r *Reservation) Customer() Customer   { return r.customer }
func (r *Reservation) Items() Items         { return r.items }
func (r *Reservation) TotalAmount() int64   { return r.totalAmount }
func (r *Reservation) PickupDate() string   { return r.pickupDate }
func (r *Reservation) PickupTime() PickupSlot { return r.pickupTime }
func (r *Reservation) CreatedAt() time.Time { return r.createdAt }

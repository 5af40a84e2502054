package repository

import (
	"context"
	"time"

	"github.com/daiya0277-lgtm/gyoza-app/internal/domain/reservation"
	"github.com/daiya0277-lgtm/gyoza-app/internal/infra"
	"github.com/daiya0277-lgtm/gyoza-app/internal/infra/db"
	"github.com/daiya0277-lgtm/gyoza-app/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type ReservationRepository struct {
	db db.DBTX
}

func NewReservationRepository(dbtx db.DBTX) *ReservationRepository {
	return &ReservationRepository{db: dbtx}
}

func (r *ReservationRepository) Create(ctx context.Context, res *reservation.Reservation) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO reservations (id, customer_name, customer_phone, total_amount, pickup_date, pickup_time, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		res.ID(), res.Customer().Name(), res.Customer().Phone(),
		res.TotalAmount(), res.PickupDate(), res.PickupTime().String(), res.CreatedAt())
	if err != nil {
		return infra.WrapRepoErr("failed to create reservation", err)
	}

	items := res.Items()
	for _, productID := range items.ProductIDs() {
		_, err := r.db.Exec(ctx, `
			INSERT INTO reservation_items (reservation_id, product_id, quantity)
			VALUES ($1, $2, $3)`,
			res.ID(), productID, items.Quantity(productID))
		if err != nil {
			return infra.WrapRepoErr("failed to create reservation item", err)
		}
	}

	return nil
}

func (r *ReservationRepository) Find(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, customer_name, customer_phone, total_amount, pickup_date, pickup_time, created_at
		FROM reservations
		WHERE id = $1`, id)

	var rec reservationRecord
	if err := row.Scan(&rec.id, &rec.customerName, &rec.customerPhone,
		&rec.totalAmount, &rec.pickupDate, &rec.pickupTime, &rec.createdAt); err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find reservation", err)
	}

	quantities, err := r.loadItems(ctx, id)
	if err != nil {
		return nil, err
	}

	return rec.toDomain(quantities)
}

func (r *ReservationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	// reservation_items rows cascade
	ct, err := r.db.Exec(ctx, `DELETE FROM reservations WHERE id = $1`, id)
	if err != nil {
		return infra.WrapRepoErr("failed to delete reservation", err)
	}
	if ct.RowsAffected() != 1 {
		return infra.WrapRepoErr("reservation not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *ReservationRepository) loadItems(ctx context.Context, id uuid.UUID) (map[string]int32, error) {
	rows, err := r.db.Query(ctx, `
		SELECT product_id, quantity FROM reservation_items WHERE reservation_id = $1`, id)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load reservation items", err)
	}
	defer rows.Close()

	quantities := make(map[string]int32)
	for rows.Next() {
		var productID string
		var qty int32
		if err := rows.Scan(&productID, &qty); err != nil {
			return nil, infra.WrapRepoErr("failed to scan reservation item", err)
		}
		quantities[productID] = qty
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read reservation items", err)
	}

	return quantities, nil
}

type reservationRecord struct {
	id            uuid.UUID
	customerName  string
	customerPhone string
	totalAmount   int64
	pickupDate    string
	pickupTime    string
	createdAt     time.Time
}

func (rec reservationRecord) toDomain(quantities map[string]int32) (*reservation.Reservation, error) {
	customer, err := reservation.NewCustomer(rec.customerName, rec.customerPhone)
	if err != nil {
		return nil, infra.WrapRepoErr("stored reservation has invalid customer", err)
	}
	items, err := reservation.NewItems(quantities)
	if err != nil {
		return nil, infra.WrapRepoErr("stored reservation has invalid items", err)
	}
	slot, err := reservation.NewPickupSlot(rec.pickupTime)
	if err != nil {
		return nil, infra.WrapRepoErr("stored reservation has invalid pickup time", err)
	}

	return reservation.Reconstruct(rec.id, customer, items, rec.totalAmount, rec.pickupDate, slot, rec.createdAt), nil
}

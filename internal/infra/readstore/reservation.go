package readstore

import (
	"context"

	"github.com/daiya0277-lgtm/gyoza-app/internal/infra"
	"github.com/daiya0277-lgtm/gyoza-app/internal/infra/db"
	"github.com/daiya0277-lgtm/gyoza-app/internal/pkg/pgconv"
	"github.com/daiya0277-lgtm/gyoza-app/internal/usecase/shared"

	"github.com/google/uuid"
)

type ReservationReadStore struct {
	db db.DBTX
}

func NewReservationReadStore(dbtx db.DBTX) *ReservationReadStore {
	return &ReservationReadStore{db: dbtx}
}

// FindAll returns all reservations ordered by pickup date and time, with
// their item quantities attached.
func (r *ReservationReadStore) FindAll(ctx context.Context) ([]*shared.ReservationSnapshot, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, customer_name, customer_phone, total_amount, pickup_date, pickup_time, created_at
		FROM reservations
		ORDER BY pickup_date, pickup_time`)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find reservations", err)
	}
	defer rows.Close()

	var result []*shared.ReservationSnapshot
	byID := make(map[uuid.UUID]*shared.ReservationSnapshot)
	for rows.Next() {
		snapshot := &shared.ReservationSnapshot{Items: map[string]int32{}}
		if err := rows.Scan(&snapshot.ID, &snapshot.CustomerName, &snapshot.CustomerPhone,
			&snapshot.TotalAmount, &snapshot.PickupDate, &snapshot.PickupTime, &snapshot.CreatedAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan reservation", err)
		}
		result = append(result, snapshot)
		byID[snapshot.ID] = snapshot
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read reservations", err)
	}

	itemRows, err := r.db.Query(ctx, `
		SELECT reservation_id, product_id, quantity FROM reservation_items`)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find reservation items", err)
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var reservationID uuid.UUID
		var productID string
		var qty int32
		if err := itemRows.Scan(&reservationID, &productID, &qty); err != nil {
			return nil, infra.WrapRepoErr("failed to scan reservation item", err)
		}
		if snapshot, ok := byID[reservationID]; ok {
			snapshot.Items[productID] = qty
		}
	}
	if err := itemRows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read reservation items", err)
	}

	return result, nil
}

func (r *ReservationReadStore) FindByID(ctx context.Context, id uuid.UUID) (*shared.ReservationSnapshot, error) {
	snapshot := &shared.ReservationSnapshot{Items: map[string]int32{}}
	err := r.db.QueryRow(ctx, `
		SELECT id, customer_name, customer_phone, total_amount, pickup_date, pickup_time, created_at
		FROM reservations
		WHERE id = $1`, id).
		Scan(&snapshot.ID, &snapshot.CustomerName, &snapshot.CustomerPhone,
			&snapshot.TotalAmount, &snapshot.PickupDate, &snapshot.PickupTime, &snapshot.CreatedAt)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find reservation by ID", err)
	}

	itemRows, err := r.db.Query(ctx, `
		SELECT product_id, quantity FROM reservation_items WHERE reservation_id = $1`, id)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find reservation items", err)
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var productID string
		var qty int32
		if err := itemRows.Scan(&productID, &qty); err != nil {
			return nil, infra.WrapRepoErr("failed to scan reservation item", err)
		}
		snapshot.Items[productID] = qty
	}
	if err := itemRows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read reservation items", err)
	}

	return snapshot, nil
}

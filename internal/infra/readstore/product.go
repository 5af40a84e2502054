package readstore

import (
	"context"

	"github.com/daiya0277-lgtm/gyoza-app/internal/infra"
	"github.com/daiya0277-lgtm/gyoza-app/internal/infra/db"
	"github.com/daiya0277-lgtm/gyoza-app/internal/pkg/pgconv"
	"github.com/daiya0277-lgtm/gyoza-app/internal/usecase/shared"
)

type ProductReadStore struct {
	db db.DBTX
}

func NewProductReadStore(dbtx db.DBTX) *ProductReadStore {
	return &ProductReadStore{db: dbtx}
}

func (r *ProductReadStore) FindAll(ctx context.Context) ([]*shared.ProductSnapshot, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, unit_price, total_capacity, remaining_stock, sort_order
		FROM products
		ORDER BY sort_order`)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find all products", err)
	}
	defer rows.Close()

	var result []*shared.ProductSnapshot
	for rows.Next() {
		snapshot := &shared.ProductSnapshot{}
		if err := rows.Scan(&snapshot.ID, &snapshot.Name, &snapshot.UnitPrice,
			&snapshot.TotalCapacity, &snapshot.RemainingStock, &snapshot.SortOrder); err != nil {
			return nil, infra.WrapRepoErr("failed to scan product", err)
		}
		result = append(result, snapshot)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read products", err)
	}

	return result, nil
}

func (r *ProductReadStore) FindByID(ctx context.Context, id string) (*shared.ProductSnapshot, error) {
	snapshot := &shared.ProductSnapshot{}
	err := r.db.QueryRow(ctx, `
		SELECT id, name, unit_price, total_capacity, remaining_stock, sort_order
		FROM products
		WHERE id = $1`, id).
		Scan(&snapshot.ID, &snapshot.Name, &snapshot.UnitPrice,
			&snapshot.TotalCapacity, &snapshot.RemainingStock, &snapshot.SortOrder)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("product not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find product by ID", err)
	}

	return snapshot, nil
}

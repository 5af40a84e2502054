package repository

import (
	"context"

	"github.com/daiya0277-lgtm/gyoza-app/internal/domain/catalog"
	"github.com/daiya0277-lgtm/gyoza-app/internal/infra"
	"github.com/daiya0277-lgtm/gyoza-app/internal/infra/db"
	"github.com/daiya0277-lgtm/gyoza-app/internal/pkg/pgconv"
)

type ProductRepository struct {
	db db.DBTX
}

func NewProductRepository(dbtx db.DBTX) *ProductRepository {
	return &ProductRepository{db: dbtx}
}

// LockAll reads every requested product with FOR UPDATE, ordered by id so
// that concurrent transactions always acquire row locks in the same order.
func (r *ProductRepository) LockAll(ctx context.Context, ids []string) (map[string]*catalog.Product, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, unit_price, total_capacity, remaining_stock, sort_order
		FROM products
		WHERE id = ANY($1)
		ORDER BY id
		FOR UPDATE`, ids)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to lock products", err)
	}
	defer rows.Close()

	result := make(map[string]*catalog.Product, len(ids))
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		result[product.ID()] = product
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read locked products", err)
	}

	return result, nil
}

func (r *ProductRepository) Find(ctx context.Context, id string) (*catalog.Product, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, name, unit_price, total_capacity, remaining_stock, sort_order
		FROM products
		WHERE id = $1`, id)

	product, err := scanProduct(row)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, err
		}
		return nil, infra.WrapRepoErr("failed to find product", err)
	}
	return product, nil
}

func (r *ProductRepository) UpdateRemainingStock(ctx context.Context, id string, remaining int32) error {
	ct, err := r.db.Exec(ctx, `
		UPDATE products SET remaining_stock = $2 WHERE id = $1`, id, remaining)
	if err != nil {
		return infra.WrapRepoErr("failed to update remaining stock", err)
	}
	if ct.RowsAffected() != 1 {
		return infra.WrapRepoErr("product not found", nil, infra.KindNotFound)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (*catalog.Product, error) {
	var (
		id, name                                          string
		unitPrice, totalCapacity, remainingStock, sortOrder int32
	)
	if err := row.Scan(&id, &name, &unitPrice, &totalCapacity, &remainingStock, &sortOrder); err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("product not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to scan product", err)
	}

	product, err := catalog.NewProduct(id, name, unitPrice, totalCapacity, remainingStock, sortOrder)
	if err != nil {
		return nil, infra.WrapRepoErr("stored product violates catalog invariants", err)
	}
	return product, nil
}

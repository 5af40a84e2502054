package queries

import (
	"context"

	"github.com/daiya0277-lgtm/gyoza-app/internal/infra"
	"github.com/daiya0277-lgtm/gyoza-app/internal/pkg/errs"
	"github.com/daiya0277-lgtm/gyoza-app/internal/usecase/shared"
)

var ErrProductNotFound = errs.New("product not found")

type ProductView struct {
	ID             string
	Name           string
	UnitPrice      int32
	TotalCapacity  int32
	RemainingStock int32
	SortOrder      int32
}

type ProductReadStore interface {
	FindAll(ctx context.Context) ([]*shared.ProductSnapshot, error)
	FindByID(ctx context.Context, id string) (*shared.ProductSnapshot, error)
}

type ProductCache interface {
	GetProducts(ctx context.Context) ([]*shared.ProductSnapshot, bool)
	SetProducts(ctx context.Context, products []*shared.ProductSnapshot)
}

type CatalogQueries interface {
	// ListProducts returns the catalog ordered by sort order. Reads go through
	// the cache; the stock figures shown here are a snapshot, not a promise.
	ListProducts(ctx context.Context) ([]*ProductView, error)
	GetProduct(ctx context.Context, id string) (*ProductView, error)
}

type catalogQueriesImpl struct {
	store ProductReadStore
	cache ProductCache
}

func NewCatalogQueries(store ProductReadStore, cache ProductCache) CatalogQueries {
	return &catalogQueriesImpl{store: store, cache: cache}
}

func (q *catalogQueriesImpl) ListProducts(ctx context.Context) ([]*ProductView, error) {
	if snapshots, ok := q.cache.GetProducts(ctx); ok {
		return toProductViews(snapshots), nil
	}

	snapshots, err := q.store.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	q.cache.SetProducts(ctx, snapshots)
	return toProductViews(snapshots), nil
}

func (q *catalogQueriesImpl) GetProduct(ctx context.Context, id string) (*ProductView, error) {
	snapshot, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrProductNotFound)
		}
		return nil, err
	}
	return toProductView(snapshot), nil
}

func toProductViews(snapshots []*shared.ProductSnapshot) []*ProductView {
	result := make([]*ProductView, len(snapshots))
	for i, s := range snapshots {
		result[i] = toProductView(s)
	}
	return result
}

func toProductView(s *shared.ProductSnapshot) *ProductView {
	return &ProductView{
		ID:             s.ID,
		Name:           s.Name,
		UnitPrice:      s.UnitPrice,
		TotalCapacity:  s.TotalCapacity,
		RemainingStock: s.RemainingStock,
		SortOrder:      s.SortOrder,
	}
}

// NopProductCache satisfies ProductCache with a permanent miss; used where
// redis is unavailable (tests, seed tooling).
type NopProductCache struct{}

func (NopProductCache) GetProducts(context.Context) ([]*shared.ProductSnapshot, bool) {
	return nil, false
}

func (NopProductCache) SetProducts(context.Context, []*shared.ProductSnapshot) {}

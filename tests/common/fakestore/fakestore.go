// Package fakestore is an in-memory stand-in for the postgres persistence
// layer. Within serializes transaction bodies with a mutex, which mirrors
// the row-lock ordering of the real store closely enough for command tests.
package fakestore

import (
	"context"
	"sync"

	"github.com/daiya0277-lgtm/gyoza-app/internal/domain/catalog"
	"github.com/daiya0277-lgtm/gyoza-app/internal/domain/reservation"
	"github.com/daiya0277-lgtm/gyoza-app/internal/infra"
	"github.com/daiya0277-lgtm/gyoza-app/internal/infra/db"
	"github.com/daiya0277-lgtm/gyoza-app/internal/usecase/shared"

	"github.com/google/uuid"
)

type productRecord struct {
	id             string
	name           string
	unitPrice      int32
	totalCapacity  int32
	remainingStock int32
	sortOrder      int32
}

type Store struct {
	mu           sync.Mutex
	products     map[string]*productRecord
	reservations map[uuid.UUID]*reservation.Reservation
}

func New() *Store {
	return &Store{
		products:     make(map[string]*productRecord),
		reservations: make(map[uuid.UUID]*reservation.Reservation),
	}
}

// AddProduct seeds a product; remaining stock starts at full capacity.
func (s *Store) AddProduct(id, name string, unitPrice, capacity, sortOrder int32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products[id] = &productRecord{
		id:             id,
		name:           name,
		unitPrice:      unitPrice,
		totalCapacity:  capacity,
		remainingStock: capacity,
		sortOrder:      sortOrder,
	}
}

func (s *Store) RemainingStock(id string) int32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.products[id]; ok {
		return p.remainingStock
	}
	return -1
}

func (s *Store) SetRemainingStock(id string, remaining int32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.products[id]; ok {
		p.remainingStock = remaining
	}
}

func (s *Store) RemoveProduct(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.products, id)
}

func (s *Store) Reservation(id uuid.UUID) *reservation.Reservation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reservations[id]
}

func (s *Store) ReservationCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.reservations)
}

// Within runs fn under the store mutex and rolls back all changes when fn
// fails, the same all-or-nothing contract the real unit of work gives.
func (s *Store) Within(_ context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	backupProducts := make(map[string]*productRecord, len(s.products))
	for id, p := range s.products {
		cp := *p
		backupProducts[id] = &cp
	}
	backupReservations := make(map[uuid.UUID]*reservation.Reservation, len(s.reservations))
	for id, r := range s.reservations {
		backupReservations[id] = r
	}

	tx := &fakeTx{store: s}
	if err := fn(context.Background(), tx); err != nil {
		s.products = backupProducts
		s.reservations = backupReservations
		return err
	}
	return nil
}

func (s *Store) WithDB(_ context.Context, _ func(ctx context.Context, db db.DBTX) error) error {
	panic("fakestore: WithDB is not implemented")
}

type fakeTx struct {
	store *Store
}

func (t *fakeTx) Products() shared.ProductRepository         { return &fakeProducts{store: t.store} }
func (t *fakeTx) Reservations() shared.ReservationRepository { return &fakeReservations{store: t.store} }
func (t *fakeTx) DB() db.DBTX                                { return nil }

// fakeProducts is also usable standalone as the non-transactional stock
// writer; it takes the store mutex only outside a Within body.
type fakeProducts struct {
	store *Store
}

// NewStockWriter returns a product repository bound directly to the store,
// matching the pool-bound repository used by the stock overwrite command.
func NewStockWriter(s *Store) *StandaloneProducts {
	return &StandaloneProducts{inner: fakeProducts{store: s}}
}

func (r *fakeProducts) LockAll(_ context.Context, ids []string) (map[string]*catalog.Product, error) {
	result := make(map[string]*catalog.Product, len(ids))
	for _, id := range ids {
		rec, ok := r.store.products[id]
		if !ok {
			continue
		}
		product, err := toDomain(rec)
		if err != nil {
			return nil, err
		}
		result[id] = product
	}
	return result, nil
}

func (r *fakeProducts) Find(_ context.Context, id string) (*catalog.Product, error) {
	rec, ok := r.store.products[id]
	if !ok {
		return nil, infra.WrapRepoErr("product not found", nil, infra.KindNotFound)
	}
	return toDomain(rec)
}

func (r *fakeProducts) UpdateRemainingStock(_ context.Context, id string, remaining int32) error {
	rec, ok := r.store.products[id]
	if !ok {
		return infra.WrapRepoErr("product not found", nil, infra.KindNotFound)
	}
	rec.remainingStock = remaining
	return nil
}

type StandaloneProducts struct {
	inner fakeProducts
}

func (r *StandaloneProducts) Find(ctx context.Context, id string) (*catalog.Product, error) {
	r.inner.store.mu.Lock()
	defer r.inner.store.mu.Unlock()
	return r.inner.Find(ctx, id)
}

func (r *StandaloneProducts) UpdateRemainingStock(ctx context.Context, id string, remaining int32) error {
	r.inner.store.mu.Lock()
	defer r.inner.store.mu.Unlock()
	return r.inner.UpdateRemainingStock(ctx, id, remaining)
}

type fakeReservations struct {
	store *Store
}

func (r *fakeReservations) Create(_ context.Context, res *reservation.Reservation) error {
	r.store.reservations[res.ID()] = res
	return nil
}

func (r *fakeReservations) Find(_ context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	res, ok := r.store.reservations[id]
	if !ok {
		return nil, infra.WrapRepoErr("reservation not found", nil, infra.KindNotFound)
	}
	return res, nil
}

func (r *fakeReservations) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.store.reservations[id]; !ok {
		return infra.WrapRepoErr("reservation not found", nil, infra.KindNotFound)
	}
	delete(r.store.reservations, id)
	return nil
}

// Cache counts invalidations so tests can assert cache hygiene.
type Cache struct {
	mu            sync.Mutex
	Invalidations int
}

func (c *Cache) InvalidateProducts(context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Invalidations++
}

func (c *Cache) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.Invalidations
}

func toDomain(rec *productRecord) (*catalog.Product, error) {
	return catalog.NewProduct(rec.id, rec.name, rec.unitPrice, rec.totalCapacity, rec.remainingStock, rec.sortOrder)
}

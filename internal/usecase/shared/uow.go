package shared

import (
	"context"
	"time"

	"github.com/daiya0277-lgtm/gyoza-app/internal/domain/catalog"
	"github.com/daiya0277-lgtm/gyoza-app/internal/domain/reservation"
	"github.com/daiya0277-lgtm/gyoza-app/internal/infra/db"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithDB: Single query operations using implicit transactions
	WithDB(ctx context.Context, fn func(ctx context.Context, db db.DBTX) error) error
}

type Tx interface {
	Products() ProductRepository
	Reservations() ReservationRepository
	DB() db.DBTX
}

// ProductRepository is the write side of the catalog store. LockAll is the
// gather phase of every stock mutation: all affected rows are read and locked
// before any write is issued.
type ProductRepository interface {
	// LockAll reads the given products with row locks, in id order.
	LockAll(ctx context.Context, ids []string) (map[string]*catalog.Product, error)
	Find(ctx context.Context, id string) (*catalog.Product, error)
	UpdateRemainingStock(ctx context.Context, id string, remaining int32) error
}

type ReservationRepository interface {
	Create(ctx context.Context, res *reservation.Reservation) error
	Find(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ProductSnapshot is the write-side view handed to pre-transaction
// validation; the authoritative stock check happens under row locks.
type ProductSnapshot struct {
	ID             string
	Name           string
	UnitPrice      int32
	TotalCapacity  int32
	RemainingStock int32
	SortOrder      int32
}

type ReservationSnapshot struct {
	ID            uuid.UUID
	CustomerName  string
	CustomerPhone string
	Items         map[string]int32
	TotalAmount   int64
	PickupDate    string
	PickupTime    string
	CreatedAt     time.Time
}

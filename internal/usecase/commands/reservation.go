package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/daiya0277-lgtm/gyoza-app/internal/domain/catalog"
	"github.com/daiya0277-lgtm/gyoza-app/internal/domain/reservation"
	"github.com/daiya0277-lgtm/gyoza-app/internal/infra"
	"github.com/daiya0277-lgtm/gyoza-app/internal/pkg/clock"
	"github.com/daiya0277-lgtm/gyoza-app/internal/pkg/errs"
	"github.com/daiya0277-lgtm/gyoza-app/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrValidationFailed  = errs.New("validation failed")
	ErrProductNotFound   = errs.New("product not found")
	ErrStockInsufficient = errs.New("insufficient stock")
	ErrTransactionFailed = errs.New("transaction failed")
)

// CatalogCache is notified after every committed stock write so cached
// product lists do not outlive the data they describe.
type CatalogCache interface {
	InvalidateProducts(ctx context.Context)
}

type PlaceReservationInput struct {
	CustomerName  string
	CustomerPhone string
	Items         map[string]int32
	PickupTime    string
	// StockSnapshot is the caller's last-known remaining stock per product.
	// Optional. Used only to fail fast before the transaction; the locked
	// read inside the transaction remains authoritative.
	StockSnapshot map[string]int32
}

type ReservationCommands interface {
	PlaceReservation(ctx context.Context, input PlaceReservationInput) (uuid.UUID, error)
	// CancelReservation restores stock and deletes the reservation in one
	// transaction. A missing reservation is success: the desired end state
	// already holds.
	CancelReservation(ctx context.Context, id uuid.UUID) error
}

type reservationCommandsImpl struct {
	uow        shared.UnitOfWork
	cache      CatalogCache
	clock      clock.Clock
	pickupDate string
}

func NewReservationCommands(uow shared.UnitOfWork, cache CatalogCache, clk clock.Clock, pickupDate string) ReservationCommands {
	return &reservationCommandsImpl{
		uow:        uow,
		cache:      cache,
		clock:      clk,
		pickupDate: pickupDate,
	}
}

func (c *reservationCommandsImpl) PlaceReservation(ctx context.Context, input PlaceReservationInput) (uuid.UUID, error) {
	customer, items, slot, err := c.validate(input)
	if err != nil {
		return uuid.Nil, err
	}

	var reservationID uuid.UUID
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		// Gather: lock every affected product before issuing any write.
		products, err := tx.Products().LockAll(ctx, items.ProductIDs())
		if err != nil {
			return err
		}

		// Decide: pure computation over the locked snapshot.
		after := make(map[string]int32, items.Len())
		unitPrices := make(map[string]int32, items.Len())
		for _, productID := range items.ProductIDs() {
			product, ok := products[productID]
			if !ok {
				return errs.Mark(fmt.Errorf("product %s disappeared from catalog", productID), ErrProductNotFound)
			}

			remaining, err := product.PlanDecrement(items.Quantity(productID))
			if err != nil {
				if errors.Is(err, catalog.ErrStockInsufficient) {
					return errs.Mark(fmt.Errorf("insufficient stock for %s", product.Name()), ErrStockInsufficient)
				}
				return errs.Mark(err, ErrValidationFailed)
			}
			after[productID] = remaining
			unitPrices[productID] = product.UnitPrice()
		}

		// Apply: all decisions passed, write the new stock levels and the
		// reservation together.
		for _, productID := range items.ProductIDs() {
			if err := tx.Products().UpdateRemainingStock(ctx, productID, after[productID]); err != nil {
				return err
			}
		}

		res, err := reservation.NewReservation(customer, items, unitPrices, c.pickupDate, slot, c.clock.Now())
		if err != nil {
			return errs.Mark(err, ErrValidationFailed)
		}
		if err := tx.Reservations().Create(ctx, res); err != nil {
			return err
		}

		reservationID = res.ID()
		return nil
	})
	if err != nil {
		return uuid.Nil, classify(err)
	}

	c.cache.InvalidateProducts(ctx)
	return reservationID, nil
}

func (c *reservationCommandsImpl) CancelReservation(ctx context.Context, id uuid.UUID) error {
	canceled := false
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		res, err := tx.Reservations().Find(ctx, id)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				// Already canceled; idempotent no-op.
				return nil
			}
			return err
		}

		items := res.Items()
		products, err := tx.Products().LockAll(ctx, items.ProductIDs())
		if err != nil {
			return err
		}

		// Decide before any write. Restoration is clamped at total capacity:
		// a lenient reconciliation policy, inherited deliberately, so stale
		// data or a lowered capacity never yields an impossible stock count.
		restored := make(map[string]int32, items.Len())
		for _, productID := range items.ProductIDs() {
			product, ok := products[productID]
			if !ok {
				// Product removed since the reservation was made; nothing to
				// restore for it.
				continue
			}
			restored[productID] = product.PlanRestore(items.Quantity(productID))
		}

		for productID, remaining := range restored {
			if err := tx.Products().UpdateRemainingStock(ctx, productID, remaining); err != nil {
				return err
			}
		}

		if err := tx.Reservations().Delete(ctx, id); err != nil {
			return err
		}

		canceled = true
		return nil
	})
	if err != nil {
		return classify(err)
	}

	if canceled {
		c.cache.InvalidateProducts(ctx)
	} else {
		slog.Info("cancel requested for missing reservation, treating as done", "reservation_id", id)
	}
	return nil
}

func (c *reservationCommandsImpl) validate(input PlaceReservationInput) (reservation.Customer, reservation.Items, reservation.PickupSlot, error) {
	customer, err := reservation.NewCustomer(input.CustomerName, input.CustomerPhone)
	if err != nil {
		return reservation.Customer{}, reservation.Items{}, reservation.PickupSlot{}, errs.Mark(err, ErrValidationFailed)
	}

	items, err := reservation.NewItems(input.Items)
	if err != nil {
		return reservation.Customer{}, reservation.Items{}, reservation.PickupSlot{}, errs.Mark(err, ErrValidationFailed)
	}

	slot, err := reservation.NewPickupSlot(input.PickupTime)
	if err != nil {
		return reservation.Customer{}, reservation.Items{}, reservation.PickupSlot{}, errs.Mark(err, ErrValidationFailed)
	}

	if input.StockSnapshot != nil {
		for _, productID := range items.ProductIDs() {
			remaining, ok := input.StockSnapshot[productID]
			if ok && items.Quantity(productID) > remaining {
				return reservation.Customer{}, reservation.Items{}, reservation.PickupSlot{},
					errs.Mark(fmt.Errorf("requested quantity exceeds known stock for %s", productID), ErrStockInsufficient)
			}
		}
	}

	return customer, items, slot, nil
}

// classify maps infrastructure failures to the retryable sentinel while
// letting domain failures through untouched.
func classify(err error) error {
	switch {
	case errors.Is(err, ErrValidationFailed),
		errors.Is(err, ErrProductNotFound),
		errors.Is(err, ErrStockInsufficient):
		return err
	default:
		return errs.Mark(err, ErrTransactionFailed)
	}
}

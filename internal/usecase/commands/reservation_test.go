//go:build unit

package commands_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/daiya0277-lgtm/gyoza-app/internal/pkg/clock"
	"github.com/daiya0277-lgtm/gyoza-app/internal/usecase/commands"
	"github.com/daiya0277-lgtm/gyoza-app/tests/common/fakestore"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pickupDate = "2025-11-30"

var saleTime = time.Date(2025, 11, 29, 9, 0, 0, 0, time.UTC)

func newFixture(t *testing.T) (*fakestore.Store, *fakestore.Cache, commands.ReservationCommands) {
	t.Helper()

	store := fakestore.New()
	store.AddProduct("yaki", "焼き餃子", 250, 50, 1)
	store.AddProduct("craft", "クラフト餃子", 300, 50, 2)
	store.AddProduct("cheese", "チーズ餃子", 350, 50, 3)

	cache := &fakestore.Cache{}
	cmd := commands.NewReservationCommands(store, cache, clock.NewMockClock(saleTime), pickupDate)
	return store, cache, cmd
}

func validInput() commands.PlaceReservationInput {
	return commands.PlaceReservationInput{
		CustomerName:  "山田太郎",
		CustomerPhone: "090-1234-5678",
		Items:         map[string]int32{"yaki": 2},
		PickupTime:    "10:00",
	}
}

func TestPlaceReservation(t *testing.T) {
	ctx := context.Background()

	t.Run("stores reservation and decrements stock", func(t *testing.T) {
		store, cache, cmd := newFixture(t)

		id, err := cmd.PlaceReservation(ctx, validInput())
		require.NoError(t, err)
		require.NotEqual(t, uuid.Nil, id)

		assert.Equal(t, int32(48), store.RemainingStock("yaki"))

		res := store.Reservation(id)
		require.NotNil(t, res)
		assert.Equal(t, int64(500), res.TotalAmount())
		assert.Equal(t, pickupDate, res.PickupDate())
		assert.Equal(t, "10:00", res.PickupTime().String())
		assert.Equal(t, saleTime, res.CreatedAt())
		assert.Equal(t, 1, cache.Count())
	})

	t.Run("multi item order decrements each product", func(t *testing.T) {
		store, _, cmd := newFixture(t)

		input := validInput()
		input.Items = map[string]int32{"yaki": 3, "craft": 1, "cheese": 2}

		id, err := cmd.PlaceReservation(ctx, input)
		require.NoError(t, err)

		assert.Equal(t, int32(47), store.RemainingStock("yaki"))
		assert.Equal(t, int32(49), store.RemainingStock("craft"))
		assert.Equal(t, int32(48), store.RemainingStock("cheese"))
		assert.Equal(t, int64(3*250+300+2*350), store.Reservation(id).TotalAmount())
	})

	t.Run("allows taking exactly the remaining stock", func(t *testing.T) {
		store, _, cmd := newFixture(t)
		store.SetRemainingStock("yaki", 2)

		_, err := cmd.PlaceReservation(ctx, validInput())
		require.NoError(t, err)
		assert.Equal(t, int32(0), store.RemainingStock("yaki"))
	})

	t.Run("rejects one unit over remaining without side effects", func(t *testing.T) {
		store, cache, cmd := newFixture(t)
		store.SetRemainingStock("yaki", 1)

		_, err := cmd.PlaceReservation(ctx, validInput())
		assert.ErrorIs(t, err, commands.ErrStockInsufficient)
		assert.Equal(t, int32(1), store.RemainingStock("yaki"))
		assert.Equal(t, 0, store.ReservationCount())
		assert.Equal(t, 0, cache.Count())
	})

	t.Run("shortfall on one item rolls back the whole order", func(t *testing.T) {
		store, _, cmd := newFixture(t)
		store.SetRemainingStock("craft", 0)

		input := validInput()
		input.Items = map[string]int32{"yaki": 2, "craft": 1}

		_, err := cmd.PlaceReservation(ctx, input)
		assert.ErrorIs(t, err, commands.ErrStockInsufficient)
		assert.Equal(t, int32(50), store.RemainingStock("yaki"))
		assert.Equal(t, 0, store.ReservationCount())
	})

	t.Run("unknown product", func(t *testing.T) {
		_, _, cmd := newFixture(t)

		input := validInput()
		input.Items = map[string]int32{"ebi": 1}

		_, err := cmd.PlaceReservation(ctx, input)
		assert.ErrorIs(t, err, commands.ErrProductNotFound)
	})

	t.Run("validation failures never reach the store", func(t *testing.T) {
		store, _, cmd := newFixture(t)

		cases := []struct {
			name   string
			mutate func(*commands.PlaceReservationInput)
		}{
			{name: "empty name", mutate: func(in *commands.PlaceReservationInput) { in.CustomerName = "" }},
			{name: "bad phone", mutate: func(in *commands.PlaceReservationInput) { in.CustomerPhone = "not-a-phone!" }},
			{name: "no items", mutate: func(in *commands.PlaceReservationInput) { in.Items = map[string]int32{} }},
			{name: "all zero items", mutate: func(in *commands.PlaceReservationInput) { in.Items = map[string]int32{"yaki": 0} }},
			{name: "negative quantity", mutate: func(in *commands.PlaceReservationInput) { in.Items = map[string]int32{"yaki": -1} }},
			{name: "off-grid slot", mutate: func(in *commands.PlaceReservationInput) { in.PickupTime = "19:30" }},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				input := validInput()
				tc.mutate(&input)

				_, err := cmd.PlaceReservation(ctx, input)
				assert.ErrorIs(t, err, commands.ErrValidationFailed)
			})
		}

		assert.Equal(t, int32(50), store.RemainingStock("yaki"))
		assert.Equal(t, 0, store.ReservationCount())
	})

	t.Run("stale snapshot fails fast before the transaction", func(t *testing.T) {
		store, cache, cmd := newFixture(t)

		input := validInput()
		input.StockSnapshot = map[string]int32{"yaki": 1}

		_, err := cmd.PlaceReservation(ctx, input)
		assert.ErrorIs(t, err, commands.ErrStockInsufficient)
		assert.Equal(t, int32(50), store.RemainingStock("yaki"))
		assert.Equal(t, 0, store.ReservationCount())
		assert.Equal(t, 0, cache.Count())
	})

	t.Run("snapshot without the requested product is ignored", func(t *testing.T) {
		store, _, cmd := newFixture(t)

		input := validInput()
		input.StockSnapshot = map[string]int32{"craft": 0}

		_, err := cmd.PlaceReservation(ctx, input)
		require.NoError(t, err)
		assert.Equal(t, int32(48), store.RemainingStock("yaki"))
	})

	t.Run("concurrent orders never oversell", func(t *testing.T) {
		store, _, cmd := newFixture(t)
		store.SetRemainingStock("yaki", 50)

		const buyers = 60
		var wg sync.WaitGroup
		errCh := make(chan error, buyers)

		for range buyers {
			wg.Add(1)
			go func() {
				defer wg.Done()
				input := validInput()
				input.Items = map[string]int32{"yaki": 1}
				_, err := cmd.PlaceReservation(ctx, input)
				errCh <- err
			}()
		}
		wg.Wait()
		close(errCh)

		var succeeded, rejected int
		for err := range errCh {
			switch {
			case err == nil:
				succeeded++
			default:
				assert.ErrorIs(t, err, commands.ErrStockInsufficient)
				rejected++
			}
		}

		assert.Equal(t, 50, succeeded)
		assert.Equal(t, 10, rejected)
		assert.Equal(t, int32(0), store.RemainingStock("yaki"))
		assert.Equal(t, 50, store.ReservationCount())
	})
}

func TestCancelReservation(t *testing.T) {
	ctx := context.Background()

	t.Run("restores stock and deletes", func(t *testing.T) {
		store, cache, cmd := newFixture(t)

		id, err := cmd.PlaceReservation(ctx, validInput())
		require.NoError(t, err)
		require.Equal(t, int32(48), store.RemainingStock("yaki"))

		require.NoError(t, cmd.CancelReservation(ctx, id))

		assert.Equal(t, int32(50), store.RemainingStock("yaki"))
		assert.Equal(t, 0, store.ReservationCount())
		assert.Equal(t, 2, cache.Count())
	})

	t.Run("missing reservation is success", func(t *testing.T) {
		store, cache, cmd := newFixture(t)

		require.NoError(t, cmd.CancelReservation(ctx, uuid.New()))
		assert.Equal(t, int32(50), store.RemainingStock("yaki"))
		assert.Equal(t, 0, cache.Count())
	})

	t.Run("second cancel is a no-op", func(t *testing.T) {
		store, _, cmd := newFixture(t)

		id, err := cmd.PlaceReservation(ctx, validInput())
		require.NoError(t, err)

		require.NoError(t, cmd.CancelReservation(ctx, id))
		require.NoError(t, cmd.CancelReservation(ctx, id))

		assert.Equal(t, int32(50), store.RemainingStock("yaki"))
	})

	t.Run("restore clamps at total capacity", func(t *testing.T) {
		store, _, cmd := newFixture(t)

		id, err := cmd.PlaceReservation(ctx, validInput())
		require.NoError(t, err)

		// admin raised stock back to full while the reservation was live
		store.SetRemainingStock("yaki", 50)

		require.NoError(t, cmd.CancelReservation(ctx, id))
		assert.Equal(t, int32(50), store.RemainingStock("yaki"))
	})

	t.Run("skips products removed since the reservation", func(t *testing.T) {
		store, _, cmd := newFixture(t)

		input := validInput()
		input.Items = map[string]int32{"yaki": 1, "craft": 1}
		id, err := cmd.PlaceReservation(ctx, input)
		require.NoError(t, err)

		store.RemoveProduct("craft")

		require.NoError(t, cmd.CancelReservation(ctx, id))
		assert.Equal(t, int32(50), store.RemainingStock("yaki"))
		assert.Equal(t, 0, store.ReservationCount())
	})
}

//go:build unit

package commands_test

import (
	"context"
	"errors"
	"testing"

	"github.com/daiya0277-lgtm/gyoza-app/internal/usecase/commands"
	"github.com/daiya0277-lgtm/gyoza-app/tests/common/fakestore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStockFixture(t *testing.T) (*fakestore.Store, *fakestore.Cache, commands.StockCommands) {
	t.Helper()

	store := fakestore.New()
	store.AddProduct("yaki", "焼き餃子", 250, 50, 1)

	cache := &fakestore.Cache{}
	cmd := commands.NewStockCommands(fakestore.NewStockWriter(store), cache)
	return store, cache, cmd
}

func TestSetRemainingStock(t *testing.T) {
	ctx := context.Background()

	t.Run("overwrites within bounds", func(t *testing.T) {
		store, cache, cmd := newStockFixture(t)

		require.NoError(t, cmd.SetRemainingStock(ctx, "yaki", 10))
		assert.Equal(t, int32(10), store.RemainingStock("yaki"))
		assert.Equal(t, 1, cache.Count())
	})

	t.Run("accepts both bounds", func(t *testing.T) {
		store, _, cmd := newStockFixture(t)

		require.NoError(t, cmd.SetRemainingStock(ctx, "yaki", 0))
		assert.Equal(t, int32(0), store.RemainingStock("yaki"))

		require.NoError(t, cmd.SetRemainingStock(ctx, "yaki", 50))
		assert.Equal(t, int32(50), store.RemainingStock("yaki"))
	})

	t.Run("rejects out of range with bounds detail", func(t *testing.T) {
		store, cache, cmd := newStockFixture(t)

		for _, v := range []int32{-1, 51} {
			err := cmd.SetRemainingStock(ctx, "yaki", v)
			assert.ErrorIs(t, err, commands.ErrValidationFailed)

			var rangeErr *commands.StockRangeError
			require.True(t, errors.As(err, &rangeErr))
			assert.Equal(t, int32(0), rangeErr.Min)
			assert.Equal(t, int32(50), rangeErr.Max)
		}

		assert.Equal(t, int32(50), store.RemainingStock("yaki"))
		assert.Equal(t, 0, cache.Count())
	})

	t.Run("unknown product", func(t *testing.T) {
		_, cache, cmd := newStockFixture(t)

		err := cmd.SetRemainingStock(ctx, "ebi", 10)
		assert.ErrorIs(t, err, commands.ErrProductNotFound)
		assert.Equal(t, 0, cache.Count())
	})
}

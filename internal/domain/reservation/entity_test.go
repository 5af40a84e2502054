//go:build unit

package reservation_test

import (
	"testing"
	"time"

	"github.com/daiya0277-lgtm/gyoza-app/internal/domain/reservation"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustCustomer(t *testing.T) reservation.Customer {
	t.Helper()
	c, err := reservation.NewCustomer("山田太郎", "090-1234-5678")
	require.NoError(t, err)
	return c
}

func mustItems(t *testing.T, quantities map[string]int32) reservation.Items {
	t.Helper()
	items, err := reservation.NewItems(quantities)
	require.NoError(t, err)
	return items
}

func mustSlot(t *testing.T, value string) reservation.PickupSlot {
	t.Helper()
	slot, err := reservation.NewPickupSlot(value)
	require.NoError(t, err)
	return slot
}

func TestNewReservation(t *testing.T) {
	now := time.Date(2025, 11, 29, 10, 0, 0, 0, time.UTC)
	prices := map[string]int32{"yaki": 250, "craft": 300, "cheese": 350}

	t.Run("totals from authoritative prices", func(t *testing.T) {
		items := mustItems(t, map[string]int32{"yaki": 2, "cheese": 1})

		res, err := reservation.NewReservation(mustCustomer(t), items, prices, "2025-11-30", mustSlot(t, "10:00"), now)
		require.NoError(t, err)

		assert.NotEqual(t, uuid.Nil, res.ID())
		assert.Equal(t, int64(2*250+350), res.TotalAmount())
		assert.Equal(t, "2025-11-30", res.PickupDate())
		assert.Equal(t, "10:00", res.PickupTime().String())
		assert.Equal(t, now, res.CreatedAt())
	})

	t.Run("single yaki order", func(t *testing.T) {
		items := mustItems(t, map[string]int32{"yaki": 2})

		res, err := reservation.NewReservation(mustCustomer(t), items, prices, "2025-11-30", mustSlot(t, "09:00"), now)
		require.NoError(t, err)
		assert.Equal(t, int64(500), res.TotalAmount())
	})

	t.Run("rejects item missing from price table", func(t *testing.T) {
		items := mustItems(t, map[string]int32{"unknown": 1})

		_, err := reservation.NewReservation(mustCustomer(t), items, prices, "2025-11-30", mustSlot(t, "09:00"), now)
		assert.ErrorIs(t, err, reservation.ErrUnknownProduct)
	})
}

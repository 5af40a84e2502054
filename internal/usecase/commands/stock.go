package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/daiya0277-lgtm/gyoza-app/internal/domain/catalog"
	"github.com/daiya0277-lgtm/gyoza-app/internal/infra"
	"github.com/daiya0277-lgtm/gyoza-app/internal/pkg/errs"
)

// StockRangeError reports the acceptable bounds alongside the rejection so
// the admin UI can show them.
type StockRangeError struct {
	Min int32
	Max int32
}

func (e *StockRangeError) Error() string {
	return fmt.Sprintf("remaining stock must be between %d and %d", e.Min, e.Max)
}

// StockWriter reads and overwrites a single product outside any surrounding
// transaction. The overwrite is a plain last-write-wins admin correction.
type StockWriter interface {
	Find(ctx context.Context, productID string) (*catalog.Product, error)
	UpdateRemainingStock(ctx context.Context, productID string, remaining int32) error
}

type StockCommands interface {
	SetRemainingStock(ctx context.Context, productID string, newValue int32) error
}

type stockCommandsImpl struct {
	writer StockWriter
	cache  CatalogCache
}

func NewStockCommands(writer StockWriter, cache CatalogCache) StockCommands {
	return &stockCommandsImpl{writer: writer, cache: cache}
}

func (c *stockCommandsImpl) SetRemainingStock(ctx context.Context, productID string, newValue int32) error {
	product, err := c.writer.Find(ctx, productID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return errs.Mark(err, ErrProductNotFound)
		}
		return errs.Mark(err, ErrTransactionFailed)
	}

	if err := product.ValidateOverwrite(newValue); err != nil {
		if errors.Is(err, catalog.ErrStockOutOfRange) {
			return errs.Mark(&StockRangeError{Min: 0, Max: product.TotalCapacity()}, ErrValidationFailed)
		}
		return errs.Mark(err, ErrValidationFailed)
	}

	if err := c.writer.UpdateRemainingStock(ctx, productID, newValue); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return errs.Mark(err, ErrProductNotFound)
		}
		return errs.Mark(err, ErrTransactionFailed)
	}

	c.cache.InvalidateProducts(ctx)
	return nil
}

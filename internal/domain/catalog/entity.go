package catalog

import "errors"

var (
	ErrInvalidProductID    = errors.New("product id must not be empty")
	ErrInvalidUnitPrice    = errors.New("unit price must be positive")
	ErrInvalidCapacity     = errors.New("total capacity must not be negative")
	ErrStockOutOfRange     = errors.New("remaining stock out of range")
	ErrStockInsufficient   = errors.New("insufficient stock")
	ErrInvalidQuantity     = errors.New("quantity must not be negative")
)

// Product is a sellable set with a fixed total capacity and a live
// remaining-stock counter. Only the counter is ever mutated after seeding.
type Product struct {
	id             string
	name           string
	unitPrice      int32
	totalCapacity  int32
	remainingStock int32
	sortOrder      int32
}

func NewProduct(id, name string, unitPrice, totalCapacity, remainingStock, sortOrder int32) (*Product, error) {
	if id == "" {
		return nil, ErrInvalidProductID
	}
	if unitPrice <= 0 {
		return nil, ErrInvalidUnitPrice
	}
	if totalCapacity < 0 {
		return nil, ErrInvalidCapacity
	}
	if remainingStock < 0 || remainingStock > totalCapacity {
		return nil, ErrStockOutOfRange
	}

	return &Product{
		id:             id,
		name:           name,
		unitPrice:      unitPrice,
		totalCapacity:  totalCapacity,
		remainingStock: remainingStock,
		sortOrder:      sortOrder,
	}, nil
}

func (p *Product) ID() string            { return p.id }
func (p *Product) Name() string          { return p.name }
func (p *Product) UnitPrice() int32      { return p.unitPrice }
func (p *Product) TotalCapacity() int32  { return p.totalCapacity }
func (p *Product) RemainingStock() int32 { return p.remainingStock }
func (p *Product) SortOrder() int32      { return p.sortOrder }

// PlanDecrement is the pure decide step of reservation placement: it returns
// the stock level after subtracting qty, or ErrStockInsufficient without
// touching anything.
func (p *Product) PlanDecrement(qty int32) (int32, error) {
	if qty < 0 {
		return 0, ErrInvalidQuantity
	}
	after := p.remainingStock - qty
	if after < 0 {
		return 0, ErrStockInsufficient
	}
	return after, nil
}

// PlanRestore returns the stock level after adding qty back, clamped at total
// capacity. The clamp keeps double restorations and stale admin overwrites
// from pushing the counter above the product's ceiling.
func (p *Product) PlanRestore(qty int32) int32 {
	if qty < 0 {
		qty = 0
	}
	restored := p.remainingStock + qty
	if restored > p.totalCapacity {
		restored = p.totalCapacity
	}
	return restored
}

// ValidateOverwrite checks an admin-supplied stock level against
// [0, totalCapacity].
func (p *Product) ValidateOverwrite(newValue int32) error {
	if newValue < 0 || newValue > p.totalCapacity {
		return ErrStockOutOfRange
	}
	return nil
}

package reservation

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
)

var (
	ErrEmptyName        = errors.New("customer name must not be empty")
	ErrInvalidPhone     = errors.New("phone must contain digits and hyphens only")
	ErrInvalidSlot      = errors.New("pickup time is not an offered slot")
	ErrNegativeQuantity = errors.New("item quantity must not be negative")
	ErrNoItems          = errors.New("at least one item must be ordered")
)

var phonePattern = regexp.MustCompile(`^[0-9-]+$`)

// Customer holds the trimmed contact details collected by the reserve form.
type Customer struct {
	name  string
	phone string
}

func NewCustomer(name, phone string) (Customer, error) {
	name = strings.TrimSpace(name)
	phone = strings.TrimSpace(phone)

	if name == "" {
		return Customer{}, ErrEmptyName
	}
	if phone == "" || !phonePattern.MatchString(phone) {
		return Customer{}, ErrInvalidPhone
	}

	return Customer{name: name, phone: phone}, nil
}

func (c Customer) Name() string  { return c.name }
func (c Customer) Phone() string { return c.phone }

// PickupSlot is one of the half-hour pickup windows between 09:00 and 19:00.
type PickupSlot struct {
	value string
}

const (
	slotOpenHour  = 9
	slotCloseHour = 19
)

// Slots returns the offered pickup times in order: 09:00, 09:30, ... 19:00.
func Slots() []string {
	slots := make([]string, 0, (slotCloseHour-slotOpenHour)*2+1)
	for h := slotOpenHour; h <= slotCloseHour; h++ {
		for _, m := range []int{0, 30} {
			if h == slotCloseHour && m == 30 {
				continue
			}
			slots = append(slots, fmt.Sprintf("%02d:%02d", h, m))
		}
	}
	return slots
}

func NewPickupSlot(value string) (PickupSlot, error) {
	for _, s := range Slots() {
		if s == value {
			return PickupSlot{value: value}, nil
		}
	}
	return PickupSlot{}, ErrInvalidSlot
}

func (s PickupSlot) String() string { return s.value }

// Items maps product id to ordered quantity. Zero-quantity entries are
// dropped at construction so every stored entry claims stock.
type Items struct {
	quantities map[string]int32
}

func NewItems(quantities map[string]int32) (Items, error) {
	kept := make(map[string]int32, len(quantities))
	for id, qty := range quantities {
		if qty < 0 {
			return Items{}, ErrNegativeQuantity
		}
		if qty == 0 {
			continue
		}
		kept[id] = qty
	}
	if len(kept) == 0 {
		return Items{}, ErrNoItems
	}
	return Items{quantities: kept}, nil
}

func (i Items) Quantity(productID string) int32 {
	return i.quantities[productID]
}

// ProductIDs returns the ordered product ids sorted lexically. Stable ordering
// keeps multi-row locking deterministic across concurrent transactions.
func (i Items) ProductIDs() []string {
	ids := make([]string, 0, len(i.quantities))
	for id := range i.quantities {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (i Items) Quantities() map[string]int32 {
	out := make(map[string]int32, len(i.quantities))
	for id, qty := range i.quantities {
		out[id] = qty
	}
	return out
}

func (i Items) Len() int { return len(i.quantities) }

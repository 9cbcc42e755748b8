package domain

import "github.com/shopspring/decimal"

type MenuSnapshot struct {
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	ImageURL    string          `json:"url"`
}

type CartItem struct {
	ID       ID           `json:"id"`
	CartID   ID           `json:"cartId"`
	MenuID   ID           `json:"menuId,omitempty"`
	Menu     MenuSnapshot `json:"menu"`
	Quantity int          `json:"quantity"`
}

// LineTotal is price times quantity, for display only.
func (i CartItem) LineTotal() decimal.Decimal {
	return i.Menu.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// CartTotal sums the line totals of items. Checkout totals always come from the
// server; this is used for the cart preview before a checkout exists.
func CartTotal(items []CartItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.LineTotal())
	}
	return total
}

func ItemCount(items []CartItem) int {
	n := 0
	for _, it := range items {
		n += it.Quantity
	}
	return n
}

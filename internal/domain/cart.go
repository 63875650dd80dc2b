package domain

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/currency"
)

type Cart struct {
	Lines []CartLine
}

// CartLine holds a product snapshot taken when the line was last validated.
// The snapshot's Stock may be stale relative to the catalog.
type CartLine struct {
	Product  Product
	Quantity int
}

func (l CartLine) Subtotal(unit currency.Unit) Money {
	return MoneyFromMinor(l.Product.Price*int64(l.Quantity), unit)
}

// StockIssue reports a cart line that requests more units than the catalog holds.
type StockIssue struct {
	ProductID int64
	Name      string
	Requested int
	Available int
}

type CheckoutEvent struct {
	ID         uuid.UUID
	SessionKey string
	Lines      []CartLine
	Total      Money
	At         time.Time
}

package domain

import (
	"errors"
	"fmt"
)

var (
	ErrProductNotFound   = errors.New("product not found")
	ErrOutOfStock        = errors.New("out of stock")
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrSnapshotSave and ErrSnapshotLoad mark best-effort persistence failures.
	// The in-memory cart state is authoritative when either is returned.
	ErrSnapshotSave = errors.New("cart snapshot save failed")
	ErrSnapshotLoad = errors.New("cart snapshot load failed")
)

// StockError rejects a cart or catalog operation against live stock.
// Kind is ErrOutOfStock or ErrInsufficientStock.
type StockError struct {
	Kind      error
	ProductID int64
	Name      string
	Requested int
	Available int
}

func (e *StockError) Error() string {
	if errors.Is(e.Kind, ErrOutOfStock) {
		return fmt.Sprintf("%s is out of stock", e.Name)
	}
	return fmt.Sprintf("insufficient stock for %s: requested %d, only %d available",
		e.Name, e.Requested, e.Available)
}

func (e *StockError) Unwrap() error {
	return e.Kind
}

func NewOutOfStock(p Product) *StockError {
	return &StockError{
		Kind:      ErrOutOfStock,
		ProductID: p.ID,
		Name:      p.Name,
		Requested: 1,
		Available: p.Stock,
	}
}

func NewInsufficientStock(p Product, requested int) *StockError {
	return &StockError{
		Kind:      ErrInsufficientStock,
		ProductID: p.ID,
		Name:      p.Name,
		Requested: requested,
		Available: p.Stock,
	}
}

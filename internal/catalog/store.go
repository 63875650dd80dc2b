// Package catalog holds the in-memory product catalog and its live stock.
package catalog

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/nikolayk812/figurestore/internal/domain"
	"github.com/nikolayk812/figurestore/internal/port"
)

type Store struct {
	mu       sync.RWMutex
	products []domain.Product
	index    map[int64]int
}

var _ port.CatalogRepository = (*Store)(nil)

// New builds a store over products, keeping their order. Ids must be unique.
func New(products []domain.Product) (*Store, error) {
	s := &Store{
		products: slices.Clone(products),
		index:    make(map[int64]int, len(products)),
	}

	for i, p := range s.products {
		if p.ID <= 0 {
			return nil, fmt.Errorf("product id[%d] is not positive", p.ID)
		}
		if _, ok := s.index[p.ID]; ok {
			return nil, fmt.Errorf("product id[%d] is duplicated", p.ID)
		}
		if p.Stock < 0 {
			return nil, fmt.Errorf("product id[%d] has negative stock", p.ID)
		}
		s.index[p.ID] = i
	}

	return s, nil
}

// NewSeeded returns a store holding the fixed catalog.
func NewSeeded() *Store {
	s, err := New(Seed())
	if err != nil {
		panic(err)
	}
	return s
}

func (s *Store) GetAll(_ context.Context) ([]domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Clone(s.products), nil
}

func (s *Store) GetByID(_ context.Context, id int64) (domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.index[id]
	if !ok {
		return domain.Product{}, domain.ErrProductNotFound
	}

	return s.products[i], nil
}

func (s *Store) UpdateStock(_ context.Context, id int64, stock int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i, ok := s.index[id]; ok {
		s.products[i].Stock = stock
	}

	return nil
}

func (s *Store) DecrementStocks(_ context.Context, decrements []domain.StockDecrement) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// new stock per product; repeated ids accumulate
	next := make(map[int64]int, len(decrements))

	for _, d := range decrements {
		if d.Quantity < 0 {
			return fmt.Errorf("product id[%d]: quantity[%d] is negative", d.ProductID, d.Quantity)
		}

		i, ok := s.index[d.ProductID]
		if !ok {
			return fmt.Errorf("product id[%d]: %w", d.ProductID, domain.ErrProductNotFound)
		}

		current, seen := next[d.ProductID]
		if !seen {
			current = s.products[i].Stock
		}

		if d.Quantity > current {
			p := s.products[i]
			p.Stock = current
			return domain.NewInsufficientStock(p, d.Quantity)
		}

		next[d.ProductID] = current - d.Quantity
	}

	for id, stock := range next {
		s.products[s.index[id]].Stock = stock
	}

	return nil
}

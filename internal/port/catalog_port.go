package port

import (
	"context"

	"github.com/nikolayk812/figurestore/internal/domain"
)

type CatalogRepository interface {
	GetAll(ctx context.Context) ([]domain.Product, error)
	// GetByID returns domain.ErrProductNotFound for an unknown id.
	GetByID(ctx context.Context, id int64) (domain.Product, error)
	// UpdateStock stores stock as given, negative values included. It is a
	// no-op for an unknown id.
	UpdateStock(ctx context.Context, id int64, stock int) error
	// DecrementStocks applies every decrement or none of them.
	DecrementStocks(ctx context.Context, decrements []domain.StockDecrement) error
}

package repository

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/figurestore/internal/db"
	"github.com/nikolayk812/figurestore/internal/domain"
	"github.com/nikolayk812/figurestore/internal/port"
)

type catalogRepository struct {
	q    *db.Queries
	pool *pgxpool.Pool
}

func NewCatalog(pool *pgxpool.Pool) (port.CatalogRepository, error) {
	if pool == nil {
		return nil, fmt.Errorf("pool is nil")
	}

	return &catalogRepository{
		q:    db.New(pool),
		pool: pool,
	}, nil
}

func NewCatalogWithTx(tx pgx.Tx) port.CatalogRepository {
	return &catalogRepository{
		q:    db.New(tx),
		pool: nil, // use provided transaction instead
	}
}

func (r *catalogRepository) GetAll(ctx context.Context) ([]domain.Product, error) {
	rows, err := r.q.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("q.ListProducts: %w", err)
	}

	products := make([]domain.Product, 0, len(rows))
	for _, row := range rows {
		products = append(products, mapProductToDomain(row))
	}

	return products, nil
}

func (r *catalogRepository) GetByID(ctx context.Context, id int64) (domain.Product, error) {
	row, err := r.q.GetProduct(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Product{}, domain.ErrProductNotFound
	}
	if err != nil {
		return domain.Product{}, fmt.Errorf("q.GetProduct: %w", err)
	}

	return mapProductToDomain(row), nil
}

func (r *catalogRepository) UpdateStock(ctx context.Context, id int64, stock int) error {
	dbStock, err := toInt32(stock)
	if err != nil {
		return fmt.Errorf("stock: %w", err)
	}

	// zero rows affected means unknown id, which is a no-op
	_, err = r.q.UpdateProductStock(ctx, db.UpdateProductStockParams{
		ID:    id,
		Stock: dbStock,
	})
	if err != nil {
		return fmt.Errorf("q.UpdateProductStock: %w", err)
	}

	return nil
}

func (r *catalogRepository) DecrementStocks(ctx context.Context, decrements []domain.StockDecrement) error {
	if len(decrements) == 0 {
		return nil
	}

	_, err := withTx(ctx, r.pool, r.q, func(q *db.Queries) (int64, error) {
		var updated int64

		for _, d := range decrements {
			if d.Quantity < 0 {
				return 0, fmt.Errorf("product id[%d]: quantity[%d] is negative", d.ProductID, d.Quantity)
			}

			quantity, err := toInt32(d.Quantity)
			if err != nil {
				return 0, fmt.Errorf("quantity: %w", err)
			}

			rowsAffected, err := q.DecrementProductStock(ctx, db.DecrementProductStockParams{
				Quantity: quantity,
				ID:       d.ProductID,
			})
			if err != nil {
				return 0, fmt.Errorf("q.DecrementProductStock: %w", err)
			}

			if rowsAffected == 0 {
				return 0, explainFailedDecrement(ctx, q, d)
			}

			updated += rowsAffected
		}

		return updated, nil
	})

	return err
}

// explainFailedDecrement tells a missing product from one with too little stock.
func explainFailedDecrement(ctx context.Context, q *db.Queries, d domain.StockDecrement) error {
	row, err := q.GetProduct(ctx, d.ProductID)
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("product id[%d]: %w", d.ProductID, domain.ErrProductNotFound)
	}
	if err != nil {
		return fmt.Errorf("q.GetProduct: %w", err)
	}

	return domain.NewInsufficientStock(mapProductToDomain(row), d.Quantity)
}

// SeedCatalog inserts products that are not stored yet, keeping existing stock.
func SeedCatalog(ctx context.Context, pool *pgxpool.Pool, products []domain.Product) error {
	if pool == nil {
		return fmt.Errorf("pool is nil")
	}

	_, err := withTx(ctx, pool, db.New(pool), func(q *db.Queries) (int, error) {
		for _, p := range products {
			stock, err := toInt32(p.Stock)
			if err != nil {
				return 0, fmt.Errorf("product id[%d] stock: %w", p.ID, err)
			}

			err = q.InsertProduct(ctx, db.InsertProductParams{
				ID:          p.ID,
				Name:        p.Name,
				Description: p.Description,
				Price:       p.Price,
				Image:       p.Image,
				Stock:       stock,
			})
			if err != nil {
				return 0, fmt.Errorf("q.InsertProduct: %w", err)
			}
		}

		return len(products), nil
	})

	return err
}

func mapProductToDomain(row db.Product) domain.Product {
	return domain.Product{
		ID:          row.ID,
		Name:        row.Name,
		Description: row.Description,
		Price:       row.Price,
		Image:       row.Image,
		Stock:       int(row.Stock),
	}
}

func toInt32(v int) (int32, error) {
	if v > math.MaxInt32 || v < math.MinInt32 {
		return 0, fmt.Errorf("value[%d] overflows int32", v)
	}
	return int32(v), nil
}

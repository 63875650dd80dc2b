package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/figurestore/internal/db"
	"github.com/nikolayk812/figurestore/internal/port"
)

type cartSnapshotRepository struct {
	q *db.Queries
}

func NewCartSnapshot(pool *pgxpool.Pool) (port.SnapshotRepository, error) {
	if pool == nil {
		return nil, fmt.Errorf("pool is nil")
	}

	return &cartSnapshotRepository{
		q: db.New(pool),
	}, nil
}

func NewCartSnapshotWithTx(tx pgx.Tx) port.SnapshotRepository {
	return &cartSnapshotRepository{
		q: db.New(tx),
	}
}

func (r *cartSnapshotRepository) GetSnapshot(ctx context.Context, key string) ([]byte, bool, error) {
	if key == "" {
		return nil, false, fmt.Errorf("key is empty")
	}

	payload, err := r.q.GetCartSnapshot(ctx, key)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("q.GetCartSnapshot: %w", err)
	}

	return payload, true, nil
}

func (r *cartSnapshotRepository) SaveSnapshot(ctx context.Context, key string, payload []byte) error {
	if key == "" {
		return fmt.Errorf("key is empty")
	}

	err := r.q.UpsertCartSnapshot(ctx, db.UpsertCartSnapshotParams{
		Key:     key,
		Payload: payload,
	})
	if err != nil {
		return fmt.Errorf("q.UpsertCartSnapshot: %w", err)
	}

	return nil
}

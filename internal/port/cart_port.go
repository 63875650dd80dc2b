package port

import (
	"context"

	"github.com/nikolayk812/figurestore/internal/domain"
)

// SnapshotRepository is a durable key-value slot holding a serialized cart.
type SnapshotRepository interface {
	GetSnapshot(ctx context.Context, key string) ([]byte, bool, error)
	SaveSnapshot(ctx context.Context, key string, payload []byte) error
}

type CheckoutPublisher interface {
	PublishCheckout(ctx context.Context, event domain.CheckoutEvent) error
}

// Package cart implements the shopping cart of a single session.
//
// Every validation and display path resolves the live product from the
// catalog before comparing quantities with stock; the product snapshot kept in
// a line is only used when the catalog no longer knows the product.
package cart

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/nikolayk812/figurestore/internal/domain"
	"github.com/nikolayk812/figurestore/internal/port"
	"go.uber.org/zap"
	"golang.org/x/text/currency"
)

type Service struct {
	catalog   port.CatalogRepository
	snapshots port.SnapshotRepository
	publisher port.CheckoutPublisher

	logger   *zap.Logger
	key      string
	latency  time.Duration
	currency currency.Unit
	now      func() time.Time

	// mu serialises all operations, including an in-flight checkout.
	mu    sync.Mutex
	lines []domain.CartLine
}

// New returns an empty cart. Call Load to restore the saved snapshot.
func New(catalog port.CatalogRepository, snapshots port.SnapshotRepository, opts ...Option) (*Service, error) {
	if catalog == nil {
		return nil, fmt.Errorf("catalog is nil")
	}
	if snapshots == nil {
		return nil, fmt.Errorf("snapshots is nil")
	}

	s := &Service{
		catalog:   catalog,
		snapshots: snapshots,
		logger:    zap.NewNop(),
		key:       DefaultSessionKey,
		latency:   DefaultCheckoutLatency,
		currency:  currency.USD,
		now:       time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.key == "" {
		return nil, fmt.Errorf("session key is empty")
	}
	if s.latency < 0 {
		return nil, fmt.Errorf("checkout latency is negative")
	}

	s.logger = s.logger.With(zap.String("session_key", s.key))

	return s, nil
}

// Load replaces the cart with the saved snapshot. A missing snapshot yields an
// empty cart. A failed or malformed read also yields an empty cart and returns
// an error wrapping domain.ErrSnapshotLoad.
func (s *Service) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lines = nil

	payload, ok, err := s.snapshots.GetSnapshot(ctx, s.key)
	if err != nil {
		s.logger.Warn("cart snapshot load failed", zap.Error(err))
		return fmt.Errorf("%w: snapshots.GetSnapshot: %w", domain.ErrSnapshotLoad, err)
	}
	if !ok {
		return nil
	}

	lines, err := decodeLines(payload)
	if err != nil {
		s.logger.Warn("cart snapshot is malformed", zap.Error(err))
		return fmt.Errorf("%w: decodeLines: %w", domain.ErrSnapshotLoad, err)
	}

	s.lines = lines
	s.logger.Debug("cart snapshot loaded", zap.Int("lines", len(lines)))

	return nil
}

// AddToCart adds one unit of p. It fails with a *domain.StockError when the
// live stock cannot cover the new quantity; the cart is unchanged then.
func (s *Service) AddToCart(ctx context.Context, p domain.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	live, err := s.resolve(ctx, p)
	if err != nil {
		return err
	}

	if i := s.indexOf(p.ID); i >= 0 {
		line := s.lines[i]
		if line.Quantity >= live.Stock {
			stockErr := domain.NewInsufficientStock(live, line.Quantity+1)
			s.logger.Info("add to cart rejected", zap.Int64("product_id", p.ID), zap.Error(stockErr))
			return stockErr
		}

		s.lines[i] = domain.CartLine{Product: live, Quantity: line.Quantity + 1}
		return s.save(ctx)
	}

	if !live.InStock() {
		stockErr := domain.NewOutOfStock(live)
		s.logger.Info("add to cart rejected", zap.Int64("product_id", p.ID), zap.Error(stockErr))
		return stockErr
	}

	s.lines = append(s.lines, domain.CartLine{Product: live, Quantity: 1})

	return s.save(ctx)
}

// RemoveFromCart removes one unit of the product, dropping the line at zero.
func (s *Service) RemoveFromCart(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return nil
	}

	if s.lines[i].Quantity > 1 {
		s.lines[i].Quantity--
	} else {
		s.lines = slices.Delete(s.lines, i, i+1)
	}

	return s.save(ctx)
}

func (s *Service) ClearCart(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lines = nil

	return s.save(ctx)
}

func (s *Service) ItemQuantity(id int64) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(id); i >= 0 {
		return s.lines[i].Quantity
	}
	return 0
}

// TotalItems is the number of units across all lines.
func (s *Service) TotalItems() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := 0
	for _, l := range s.lines {
		total += l.Quantity
	}
	return total
}

func (s *Service) Currency() currency.Unit {
	return s.currency
}

// TotalPrice sums price times quantity over all lines, in major units.
func (s *Service) TotalPrice() domain.Money {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.total()
}

// Lines returns a copy of the cart with each product resolved against the catalog.
func (s *Service) Lines(ctx context.Context) ([]domain.CartLine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := make([]domain.CartLine, 0, len(s.lines))
	for _, l := range s.lines {
		live, err := s.resolve(ctx, l.Product)
		if err != nil {
			return nil, err
		}
		lines = append(lines, domain.CartLine{Product: live, Quantity: l.Quantity})
	}

	return lines, nil
}

func (s *Service) IsStockAvailable(ctx context.Context, p domain.Product, quantity int) (bool, error) {
	live, err := s.resolve(ctx, p)
	if err != nil {
		return false, err
	}

	return live.Stock >= quantity, nil
}

// StockIssues lists lines requesting more units than the catalog now holds.
// Products missing from the catalog are not reported.
func (s *Service) StockIssues(ctx context.Context) ([]domain.StockIssue, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var issues []domain.StockIssue

	for _, l := range s.lines {
		live, err := s.catalog.GetByID(ctx, l.Product.ID)
		if errors.Is(err, domain.ErrProductNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("catalog.GetByID: %w", err)
		}

		if l.Quantity > live.Stock {
			issues = append(issues, domain.StockIssue{
				ProductID: l.Product.ID,
				Name:      l.Product.Name,
				Requested: l.Quantity,
				Available: live.Stock,
			})
		}
	}

	return issues, nil
}

// Checkout converts the cart into stock decrements and empties it. Every line
// is validated against live stock first; if any line exceeds it a
// *domain.StockError is returned and neither the catalog nor the cart change.
// Lines whose product has left the catalog are sold without a decrement.
// The decrements are committed all-or-nothing by the catalog.
func (s *Service) Checkout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.wait(ctx); err != nil {
		return err
	}

	lines := make([]domain.CartLine, 0, len(s.lines))
	decrements := make([]domain.StockDecrement, 0, len(s.lines))
	for _, l := range s.lines {
		live, found, err := s.lookup(ctx, l.Product)
		if err != nil {
			return err
		}

		if l.Quantity > live.Stock {
			stockErr := domain.NewInsufficientStock(live, l.Quantity)
			s.logger.Info("checkout rejected", zap.Int64("product_id", live.ID), zap.Error(stockErr))
			return stockErr
		}

		lines = append(lines, domain.CartLine{Product: live, Quantity: l.Quantity})
		if found {
			decrements = append(decrements, domain.StockDecrement{ProductID: l.Product.ID, Quantity: l.Quantity})
		}
	}

	if len(decrements) > 0 {
		if err := s.catalog.DecrementStocks(ctx, decrements); err != nil {
			return fmt.Errorf("catalog.DecrementStocks: %w", err)
		}
	}

	event := domain.CheckoutEvent{
		ID:         uuid.New(),
		SessionKey: s.key,
		Lines:      lines,
		Total:      sumLines(lines, s.currency),
		At:         s.now(),
	}

	s.lines = nil
	saveErr := s.save(ctx)

	s.logger.Info("checkout completed",
		zap.Stringer("checkout_id", event.ID),
		zap.Int("lines", len(event.Lines)),
		zap.Stringer("total", event.Total))

	s.publish(ctx, event)

	return saveErr
}

// resolve returns the catalog's current product, falling back to the snapshot
// when the catalog no longer has it.
func (s *Service) resolve(ctx context.Context, snapshot domain.Product) (domain.Product, error) {
	p, _, err := s.lookup(ctx, snapshot)
	return p, err
}

// lookup is resolve that also reports whether the catalog still has the product.
func (s *Service) lookup(ctx context.Context, snapshot domain.Product) (domain.Product, bool, error) {
	live, err := s.catalog.GetByID(ctx, snapshot.ID)
	if errors.Is(err, domain.ErrProductNotFound) {
		return snapshot, false, nil
	}
	if err != nil {
		return domain.Product{}, false, fmt.Errorf("catalog.GetByID: %w", err)
	}

	return live, true, nil
}

func (s *Service) indexOf(id int64) int {
	return slices.IndexFunc(s.lines, func(l domain.CartLine) bool {
		return l.Product.ID == id
	})
}

func (s *Service) total() domain.Money {
	return sumLines(s.lines, s.currency)
}

func sumLines(lines []domain.CartLine, unit currency.Unit) domain.Money {
	total := domain.MoneyFromMinor(0, unit)
	for _, l := range lines {
		total = total.Add(l.Subtotal(unit))
	}
	return total
}

// save persists the cart. The in-memory state is kept when saving fails.
func (s *Service) save(ctx context.Context) error {
	payload, err := encodeLines(s.lines)
	if err != nil {
		s.logger.Warn("cart snapshot encode failed", zap.Error(err))
		return fmt.Errorf("%w: encodeLines: %w", domain.ErrSnapshotSave, err)
	}

	if err := s.snapshots.SaveSnapshot(ctx, s.key, payload); err != nil {
		s.logger.Warn("cart snapshot save failed", zap.Error(err))
		return fmt.Errorf("%w: snapshots.SaveSnapshot: %w", domain.ErrSnapshotSave, err)
	}

	return nil
}

func (s *Service) wait(ctx context.Context) error {
	if s.latency == 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(s.latency)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Service) publish(ctx context.Context, event domain.CheckoutEvent) {
	if s.publisher == nil {
		return
	}

	if err := s.publisher.PublishCheckout(ctx, event); err != nil {
		s.logger.Warn("checkout event publish failed", zap.Stringer("checkout_id", event.ID), zap.Error(err))
	}
}

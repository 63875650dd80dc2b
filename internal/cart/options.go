package cart

import (
	"time"

	"github.com/nikolayk812/figurestore/internal/port"
	"go.uber.org/zap"
	"golang.org/x/text/currency"
)

const (
	DefaultSessionKey      = "cart"
	DefaultCheckoutLatency = 300 * time.Millisecond
)

type Option func(*Service)

func WithLogger(logger *zap.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithSessionKey sets the key of the durable slot the cart is saved under.
func WithSessionKey(key string) Option {
	return func(s *Service) {
		s.key = key
	}
}

// WithCheckoutLatency sets the simulated delay before checkout validates stock.
func WithCheckoutLatency(d time.Duration) Option {
	return func(s *Service) {
		s.latency = d
	}
}

func WithCurrency(unit currency.Unit) Option {
	return func(s *Service) {
		s.currency = unit
	}
}

func WithPublisher(publisher port.CheckoutPublisher) Option {
	return func(s *Service) {
		s.publisher = publisher
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

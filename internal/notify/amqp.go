// Package notify publishes checkout notifications to RabbitMQ.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nikolayk812/figurestore/internal/domain"
	"github.com/nikolayk812/figurestore/internal/port"
	amqp "github.com/rabbitmq/amqp091-go"
)

// Channel is the subset of *amqp.Channel used for publishing.
type Channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

type amqpPublisher struct {
	ch         Channel
	exchange   string
	routingKey string
}

func NewAMQPPublisher(ch Channel, exchange, routingKey string) (port.CheckoutPublisher, error) {
	if ch == nil {
		return nil, fmt.Errorf("channel is nil")
	}
	if routingKey == "" {
		return nil, fmt.Errorf("routingKey is empty")
	}

	return &amqpPublisher{
		ch:         ch,
		exchange:   exchange,
		routingKey: routingKey,
	}, nil
}

type checkoutMessage struct {
	ID         string        `json:"id"`
	SessionKey string        `json:"session_key"`
	Lines      []messageLine `json:"lines"`
	Total      string        `json:"total"`
	Currency   string        `json:"currency"`
	At         time.Time     `json:"at"`
}

type messageLine struct {
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	Price     int64  `json:"price"`
}

func (p *amqpPublisher) PublishCheckout(ctx context.Context, event domain.CheckoutEvent) error {
	body, err := json.Marshal(mapEventToMessage(event))
	if err != nil {
		return fmt.Errorf("json.Marshal: %w", err)
	}

	err = p.ch.PublishWithContext(ctx, p.exchange, p.routingKey, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    event.ID.String(),
		Timestamp:    event.At,
		Type:         "checkout.completed",
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("ch.PublishWithContext: %w", err)
	}

	return nil
}

func mapEventToMessage(event domain.CheckoutEvent) checkoutMessage {
	lines := make([]messageLine, 0, len(event.Lines))
	for _, l := range event.Lines {
		lines = append(lines, messageLine{
			ProductID: l.Product.ID,
			Name:      l.Product.Name,
			Quantity:  l.Quantity,
			Price:     l.Product.Price,
		})
	}

	return checkoutMessage{
		ID:         event.ID.String(),
		SessionKey: event.SessionKey,
		Lines:      lines,
		Total:      event.Total.Amount.StringFixed(2),
		Currency:   event.Total.Currency.String(),
		At:         event.At.UTC(),
	}
}

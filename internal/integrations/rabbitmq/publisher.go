package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/m04kA/RMS-AvailabilityService/internal/domain"
	"github.com/m04kA/RMS-AvailabilityService/internal/integrations/notifier"
)

// Channel часть amqp.Channel, используемая издателем
type Channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Publisher публикует события аллокаций в topic exchange
// Routing key совпадает с типом события, например allocation.confirmed
type Publisher struct {
	conn     *amqp.Connection
	ch       Channel
	exchange string
	timeout  time.Duration
	log      Logger
}

// NewPublisher подключается к брокеру и объявляет durable topic exchange
func NewPublisher(url, exchange string, timeout time.Duration, log Logger) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("%w: dial: %v", ErrConnect, err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("%w: open channel: %v", ErrConnect, err)
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("%w: declare exchange %s: %v", ErrConnect, exchange, err)
	}

	log.Info("Connected to RabbitMQ, exchange=%s", exchange)
	p := NewPublisherWithChannel(ch, exchange, timeout, log)
	p.conn = conn
	return p, nil
}

// NewPublisherWithChannel создает издателя поверх готового канала
func NewPublisherWithChannel(ch Channel, exchange string, timeout time.Duration, log Logger) *Publisher {
	return &Publisher{
		ch:       ch,
		exchange: exchange,
		timeout:  timeout,
		log:      log,
	}
}

// Notify публикует событие как persistent JSON сообщение
func (p *Publisher) Notify(ctx context.Context, event domain.AllocationEvent) error {
	msg := notifier.NewMessage(event)

	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("%w: marshal %s: %v", ErrPublish, msg.Type, err)
	}

	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	err = p.ch.PublishWithContext(ctx, p.exchange, msg.Type, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    msg.EventID,
		Timestamp:    msg.OccurredAt,
		Type:         msg.Type,
		Body:         body,
	})
	if err != nil {
		p.log.Error("Failed to publish %s for allocation id=%d: %v", msg.Type, msg.Allocation.ID, err)
		return fmt.Errorf("%w: %s: %v", ErrPublish, msg.Type, err)
	}

	p.log.Info("Published %s for allocation id=%d, event_id=%s", msg.Type, msg.Allocation.ID, msg.EventID)
	return nil
}

func (p *Publisher) Close() error {
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}

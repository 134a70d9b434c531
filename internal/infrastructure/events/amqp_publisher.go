// Package events publica los eventos de inventario en un exchange topic de RabbitMQ.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/inventario-pos/internal/application/ports"
	"github.com/jhoicas/inventario-pos/pkg/logger"
	amqp "github.com/rabbitmq/amqp091-go"
)

const exchangeType = "topic"

// Envelope cuerpo JSON de todos los mensajes.
type Envelope struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	OccurredAt time.Time `json:"occurred_at"`
	Payload    any       `json:"payload"`
}

// channel es la parte de *amqp.Channel que usa el publicador.
type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// AMQPPublisher implementa ports.EventPublisher.
type AMQPPublisher struct {
	mu       sync.Mutex
	ch       channel
	exchange string
	now      func() time.Time
}

var _ ports.EventPublisher = (*AMQPPublisher)(nil)

// NewAMQPPublisher construye el publicador sobre un canal ya abierto.
func NewAMQPPublisher(ch channel, exchange string) *AMQPPublisher {
	return &AMQPPublisher{ch: ch, exchange: exchange, now: time.Now}
}

// Publish serializa el evento y lo publica como mensaje persistente.
func (p *AMQPPublisher) Publish(ctx context.Context, routingKey string, payload any) error {
	env := Envelope{
		ID:         uuid.NewString(),
		Type:       routingKey,
		OccurredAt: p.now().UTC(),
		Payload:    payload,
	}
	body, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("events: serializar %s: %w", routingKey, err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ch.PublishWithContext(ctx,
		p.exchange, // exchange
		routingKey, // routing key
		false,      // mandatory
		false,      // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    env.ID,
			Timestamp:    env.OccurredAt,
			Type:         routingKey,
			Body:         body,
		},
	)
}

// Connection conexión y canal abiertos contra el broker.
type Connection struct {
	conn *amqp.Connection
	Ch   *amqp.Channel
}

// Close cierra canal y conexión.
func (c *Connection) Close() error {
	_ = c.Ch.Close()
	return c.conn.Close()
}

// Dial abre la conexión (con reintentos para el arranque en contenedores) y declara el exchange.
func Dial(url, exchange string, log *logger.Logger) (*Connection, error) {
	var conn *amqp.Connection
	var err error
	for i := 0; i < 5; i++ {
		conn, err = amqp.Dial(url)
		if err == nil {
			break
		}
		log.Warn().Err(err).Int("attempt", i+1).Msg("no se pudo conectar a RabbitMQ")
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		return nil, fmt.Errorf("events: conectar: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("events: abrir canal: %w", err)
	}
	err = ch.ExchangeDeclare(
		exchange,     // name
		exchangeType, // type
		true,         // durable
		false,        // auto-deleted
		false,        // internal
		false,        // no-wait
		nil,          // arguments
	)
	if err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("events: declarar exchange: %w", err)
	}
	return &Connection{conn: conn, Ch: ch}, nil
}

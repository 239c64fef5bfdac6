// Package messaging publica eventos do painel em um broker AMQP
package messaging

//go:generate mockgen -source=publisher.go -destination=mocks/mock_publisher.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-dashboard-api/internal/config"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const publishTimeout = 5 * time.Second

type SnapshotPublisher interface {
	PublishSnapshotRefreshed(ctx context.Context, event domain.SnapshotRefreshedEvent) error
	Close() error
}

// NewPublisher devolve um publisher AMQP quando AMQP_URL está configurada,
// caso contrário um publisher que apenas registra o evento no log.
func NewPublisher(cfg config.Messaging) (SnapshotPublisher, error) {
	if cfg.URL == "" {
		logrus.Info("AMQP_URL não configurada, eventos de snapshot não serão publicados")
		return NewNoopPublisher(), nil
	}

	publisher, err := NewAMQPPublisher(cfg)
	if err != nil {
		return nil, err
	}

	return publisher, nil
}

type AMQPPublisher struct {
	conn       *amqp091.Connection
	channel    *amqp091.Channel
	exchange   string
	routingKey string
}

func NewAMQPPublisher(cfg config.Messaging) (*AMQPPublisher, error) {
	conn, err := amqp091.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("erro ao conectar no broker AMQP: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("erro ao abrir canal AMQP: %w", err)
	}

	err = channel.ExchangeDeclare(
		cfg.Exchange, // name
		"topic",      // type
		true,         // durable
		false,        // auto-deleted
		false,        // internal
		false,        // no-wait
		nil,          // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("erro ao declarar exchange %q: %w", cfg.Exchange, err)
	}

	logrus.WithFields(logrus.Fields{
		"exchange":    cfg.Exchange,
		"routing_key": cfg.RoutingKey,
	}).Info("Publisher AMQP inicializado")

	return &AMQPPublisher{
		conn:       conn,
		channel:    channel,
		exchange:   cfg.Exchange,
		routingKey: cfg.RoutingKey,
	}, nil
}

func (p *AMQPPublisher) PublishSnapshotRefreshed(ctx context.Context, event domain.SnapshotRefreshedEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("erro ao serializar evento: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	err = p.channel.PublishWithContext(
		ctx,
		p.exchange,
		p.routingKey,
		false, // mandatory
		false, // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			Timestamp:    time.Now(),
			MessageId:    event.SnapshotID,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("erro ao publicar evento: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"snapshot_id": event.SnapshotID,
		"rows":        event.Rows,
		"trigger":     event.Trigger,
	}).Info("Evento de snapshot publicado")

	return nil
}

func (p *AMQPPublisher) Close() error {
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}

type noopPublisher struct{}

// NewNoopPublisher devolve o publisher usado quando não há broker disponível
func NewNoopPublisher() SnapshotPublisher {
	return noopPublisher{}
}

func (noopPublisher) PublishSnapshotRefreshed(_ context.Context, event domain.SnapshotRefreshedEvent) error {
	logrus.WithFields(logrus.Fields{
		"snapshot_id": event.SnapshotID,
		"rows":        event.Rows,
		"trigger":     event.Trigger,
	}).Debug("Evento de snapshot não publicado (AMQP desabilitado)")
	return nil
}

func (noopPublisher) Close() error {
	return nil
}

package messaging

import (
	"context"
	"fmt"
	"time"

	"github.com/matst80/center-finder/pkg/common/jsoncompat"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

type RabbitNotifier struct {
	RabbitConfig
	conn   *amqp.Connection
	logger *zap.SugaredLogger
}

func NewRabbitNotifier(config RabbitConfig, logger *zap.SugaredLogger) *RabbitNotifier {
	if config.Prefix == "" {
		config.Prefix = "centerfinder"
	}
	return &RabbitNotifier{RabbitConfig: config, logger: logger}
}

func (r *RabbitNotifier) Connect() error {
	conn, err := amqp.DialConfig(r.Url, amqp.Config{
		Vhost:      r.VHost,
		Properties: amqp.NewConnectionProperties(),
	})
	if err != nil {
		return fmt.Errorf("connect rabbit: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return err
	}
	defer ch.Close()
	if err = DefineTopic(ch, r.Prefix, ContentChangedTopic); err != nil {
		conn.Close()
		return fmt.Errorf("define %s: %w", ContentChangedTopic, err)
	}
	r.conn = conn
	r.logger.Infof("Connected to rabbit, exchange %s", getName(r.Prefix, ContentChangedTopic))
	return nil
}

func (r *RabbitNotifier) NotifyContentChanged(ctx context.Context, event ContentChanged) error {
	if r.conn == nil {
		return fmt.Errorf("rabbit not connected")
	}
	if event.At.IsZero() {
		event.At = time.Now()
	}
	return SendChange(ctx, r.conn, r.Prefix, ContentChangedTopic, event)
}

func decodeContentChanged(body []byte) (ContentChanged, error) {
	var event ContentChanged
	err := jsoncompat.Unmarshal(body, &event)
	return event, err
}

// Listen delivers every content change published by any replica.
func (r *RabbitNotifier) Listen(handler func(ContentChanged)) error {
	if r.conn == nil {
		return fmt.Errorf("rabbit not connected")
	}
	ch, err := r.conn.Channel()
	if err != nil {
		return err
	}
	return ListenToTopic(ch, r.logger, r.Prefix, ContentChangedTopic, func(d amqp.Delivery) error {
		event, err := decodeContentChanged(d.Body)
		if err != nil {
			return err
		}
		handler(event)
		return nil
	})
}

func (r *RabbitNotifier) Close() error {
	if r.conn == nil {
		return nil
	}
	return r.conn.Close()
}

// Package rabbit consumes traffic-updated events from the toll backend
// so open dashboards can be told to refetch.
package rabbit

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jasamarga/toll-ops-gateway/internal/domain/models"
	wrap "github.com/jasamarga/toll-ops-gateway/pkg/logger/wrapper"
	"github.com/jasamarga/toll-ops-gateway/pkg/metrics"
	"github.com/jasamarga/toll-ops-gateway/pkg/rabbit"
)

const (
	// ExchangeLalin is the backend's topic exchange for traffic events
	ExchangeLalin = "lalin_topic"

	// QueueDashboardRefresh buffers the events for this gateway
	QueueDashboardRefresh = "dashboard_refresh"

	// BindingLalinUpdated matches every traffic-updated routing key
	BindingLalinUpdated = "lalin.updated.*"
)

type TrafficConsumer struct {
	client      *rabbit.RabbitMQ
	serviceName string
}

func NewTrafficConsumer(client *rabbit.RabbitMQ, serviceName string) *TrafficConsumer {
	return &TrafficConsumer{
		client:      client,
		serviceName: serviceName,
	}
}

// ConsumeTrafficUpdates binds the refresh queue and feeds every decoded
// event to the handler. Malformed messages are dropped; the stream must
// keep flowing.
func (r *TrafficConsumer) ConsumeTrafficUpdates(ctx context.Context, handler func(context.Context, models.TrafficUpdatedMessage) error) error {
	const op = "TrafficConsumer.ConsumeTrafficUpdates"

	if err := r.client.Channel.ExchangeDeclare(ExchangeLalin, "topic", true, false, false, false, nil); err != nil {
		ctx = wrap.WithAction(ctx, "declare_exchange")
		return wrap.Error(ctx, fmt.Errorf("%s: failed to declare exchange: %w", op, err))
	}

	q, err := r.client.Channel.QueueDeclare(
		QueueDashboardRefresh,
		true,  // durable
		false, // auto-delete
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		ctx = wrap.WithAction(ctx, "declare_queue")
		return wrap.Error(ctx, fmt.Errorf("%s: failed to declare queue: %w", op, err))
	}

	if err := r.client.Channel.QueueBind(
		q.Name,
		BindingLalinUpdated,
		ExchangeLalin,
		false,
		nil,
	); err != nil {
		ctx = wrap.WithAction(ctx, "bind_queue")
		return wrap.Error(ctx, fmt.Errorf("%s: failed to bind queue: %w", op, err))
	}

	msgs, err := r.client.Channel.Consume(
		q.Name,
		"",
		true,  // auto-ack
		false, // exclusive
		false,
		false,
		nil,
	)
	if err != nil {
		ctx = wrap.WithAction(ctx, "consume data")
		return wrap.Error(ctx, fmt.Errorf("%s: failed to register consumer: %w", op, err))
	}

	go func() {
		for d := range msgs {
			var message models.TrafficUpdatedMessage
			if err := json.Unmarshal(d.Body, &message); err != nil {
				metrics.RecordRabbitMQConsume(r.serviceName, q.Name, err)
				continue
			}

			err := handler(ctx, message)
			metrics.RecordRabbitMQConsume(r.serviceName, q.Name, err)
		}
	}()

	return nil
}

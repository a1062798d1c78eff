package jobs

import (
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/streadway/amqp"
)

// DispatchJob is the typed payload consumed by the notification
// dispatch workers. Delivery is at-least-once; the dispatcher is
// idempotent so duplicate execution is safe.
type DispatchJob struct {
	ActivityID     uint `json:"activity_id"`
	NotificationID uint `json:"notification_id"`
}

// Queue decouples the request that triggers a notification from the
// worker that delivers it. Two implementations: ChannelQueue (in
// process, tests and local runs) and AMQPQueue (RabbitMQ, production).
type Queue interface {
	Enqueue(job DispatchJob) error
	Consume(stop <-chan struct{}, handle func(DispatchJob))
	Close() error
}

// ChannelQueue is an in-process buffered queue.
type ChannelQueue struct {
	jobs chan DispatchJob
}

// NewChannelQueue creates an in-process queue with the given buffer.
func NewChannelQueue(buffer int) *ChannelQueue {
	if buffer <= 0 {
		buffer = 256
	}
	return &ChannelQueue{jobs: make(chan DispatchJob, buffer)}
}

func (q *ChannelQueue) Enqueue(job DispatchJob) error {
	select {
	case q.jobs <- job:
		return nil
	default:
		return fmt.Errorf("dispatch queue full, dropping job for activity %d", job.ActivityID)
	}
}

// Consume blocks until stop is closed, handling jobs as they arrive.
// Safe to call from multiple goroutines sharing the queue.
func (q *ChannelQueue) Consume(stop <-chan struct{}, handle func(DispatchJob)) {
	for {
		select {
		case <-stop:
			return
		case job := <-q.jobs:
			handle(job)
		}
	}
}

func (q *ChannelQueue) Close() error {
	return nil
}

// AMQPQueue publishes and consumes dispatch jobs through a durable
// RabbitMQ queue.
type AMQPQueue struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	name    string
}

// NewAMQPQueue connects to RabbitMQ and declares the dispatch queue.
func NewAMQPQueue(url, name string) (*AMQPQueue, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial amqp: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open amqp channel: %w", err)
	}
	if _, err := ch.QueueDeclare(name, true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("declare queue %s: %w", name, err)
	}
	return &AMQPQueue{conn: conn, channel: ch, name: name}, nil
}

func (q *AMQPQueue) Enqueue(job DispatchJob) error {
	body, err := json.Marshal(job)
	if err != nil {
		return err
	}
	return q.channel.Publish("", q.name, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         body,
	})
}

// Consume handles deliveries until stop is closed. Messages are acked
// only after the handler returns, so a worker crash leaves the job
// queued for redelivery.
func (q *AMQPQueue) Consume(stop <-chan struct{}, handle func(DispatchJob)) {
	deliveries, err := q.channel.Consume(q.name, "", false, false, false, false, nil)
	if err != nil {
		log.Error().Err(err).Str("queue", q.name).Msg("failed to start amqp consumer")
		return
	}

	for {
		select {
		case <-stop:
			return
		case d, ok := <-deliveries:
			if !ok {
				return
			}
			var job DispatchJob
			if err := json.Unmarshal(d.Body, &job); err != nil {
				log.Error().Err(err).Msg("discarding malformed dispatch job")
				_ = d.Nack(false, false)
				continue
			}
			handle(job)
			_ = d.Ack(false)
		}
	}
}

func (q *AMQPQueue) Close() error {
	if q.channel != nil {
		q.channel.Close()
	}
	if q.conn != nil {
		return q.conn.Close()
	}
	return nil
}

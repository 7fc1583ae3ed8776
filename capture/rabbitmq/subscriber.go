// Package rabbitmq consumes capture-result records published by the response
// capture side. One message body is one JSON response record.
package rabbitmq

import (
	"encoding/json"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/apex/log"
	"github.com/streadway/amqp"

	"brand-audit-pipeline/capture"
	"brand-audit-pipeline/metrics"
	"brand-audit-pipeline/models"
)

const reconnectDelay = 5 * time.Second

// Subscriber consumes capture records from a RabbitMQ queue into a collector.
type Subscriber struct {
	amqpURL string
	queue   string

	collector *capture.Collector

	// opMu serializes amqp operations since amqp.Channel is not safe for
	// concurrent use.
	opMu    sync.Mutex
	conn    *amqp.Connection
	channel *amqp.Channel

	startOnce sync.Once
	closeOnce sync.Once
	done      chan struct{}
	connected atomic.Bool
}

// NewSubscriber connects to RabbitMQ and declares the capture queue. Callers
// fail fast if the broker is unreachable.
func NewSubscriber(amqpURL, queueName string, collector *capture.Collector) (*Subscriber, error) {
	s := &Subscriber{
		amqpURL:   amqpURL,
		queue:     queueName,
		collector: collector,
		done:      make(chan struct{}),
	}

	s.opMu.Lock()
	err := s.reconnectLocked()
	s.opMu.Unlock()
	if err != nil {
		return nil, err
	}

	return s, nil
}

// reconnectLocked tears down any existing channel/connection and recreates
// them. Caller must hold s.opMu.
func (s *Subscriber) reconnectLocked() error {
	if s.channel != nil {
		_ = s.channel.Close()
		s.channel = nil
	}
	if s.conn != nil {
		_ = s.conn.Close()
		s.conn = nil
	}

	conn, err := amqp.Dial(s.amqpURL)
	if err != nil {
		s.connected.Store(false)
		metrics.RabbitMQConnected.Set(0)
		return fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		s.connected.Store(false)
		metrics.RabbitMQConnected.Set(0)
		return fmt.Errorf("failed to open channel: %w", err)
	}

	q, err := ch.QueueDeclare(
		s.queue,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,
	)
	if err != nil {
		_ = ch.Close()
		_ = conn.Close()
		s.connected.Store(false)
		metrics.RabbitMQConnected.Set(0)
		return fmt.Errorf("failed to declare queue: %w", err)
	}
	s.queue = q.Name

	s.conn = conn
	s.channel = ch
	s.connected.Store(true)
	metrics.RabbitMQConnected.Set(1)
	return nil
}

// Start begins consuming deliveries into the collector. It returns after
// spawning the consume loop; the loop reconnects on broker failure until
// Close is called.
func (s *Subscriber) Start() error {
	var startErr error
	s.startOnce.Do(func() {
		s.opMu.Lock()
		deliveries, err := s.channel.Consume(s.queue, "", false, false, false, false, nil)
		s.opMu.Unlock()
		if err != nil {
			startErr = fmt.Errorf("failed to start consuming: %w", err)
			return
		}
		go s.consumeLoop(deliveries)
	})
	return startErr
}

func (s *Subscriber) consumeLoop(deliveries <-chan amqp.Delivery) {
	for {
		select {
		case <-s.done:
			return
		case delivery, ok := <-deliveries:
			if !ok {
				// Channel closed by the broker; reconnect and resume.
				s.connected.Store(false)
				metrics.RabbitMQConnected.Set(0)
				deliveries = s.resubscribe()
				if deliveries == nil {
					return
				}
				continue
			}
			s.handleDelivery(delivery)
		}
	}
}

func (s *Subscriber) handleDelivery(delivery amqp.Delivery) {
	metrics.RabbitMQLastDeliverySeconds.Set(metrics.NowUnixSeconds())

	var record models.ResponseRecord
	if err := json.Unmarshal(delivery.Body, &record); err != nil {
		log.Warnf("Dropping malformed capture record (tag=%d): %v", delivery.DeliveryTag, err)
		s.opMu.Lock()
		_ = delivery.Nack(false, false)
		s.opMu.Unlock()
		metrics.DeliveriesTotal.WithLabelValues("malformed").Inc()
		return
	}

	s.collector.Add(record)
	s.opMu.Lock()
	err := delivery.Ack(false)
	s.opMu.Unlock()
	if err != nil {
		log.Errorf("Failed to ack capture record (tag=%d): %v", delivery.DeliveryTag, err)
		metrics.DeliveriesTotal.WithLabelValues("ack_error").Inc()
		return
	}
	metrics.DeliveriesTotal.WithLabelValues("ok").Inc()
}

// resubscribe retries the connection until it succeeds or the subscriber is
// closed. Returns nil when closed.
func (s *Subscriber) resubscribe() <-chan amqp.Delivery {
	for {
		select {
		case <-s.done:
			return nil
		case <-time.After(reconnectDelay):
		}

		s.opMu.Lock()
		err := s.reconnectLocked()
		if err == nil {
			deliveries, consumeErr := s.channel.Consume(s.queue, "", false, false, false, false, nil)
			s.opMu.Unlock()
			if consumeErr == nil {
				log.Infof("RabbitMQ subscriber reconnected to queue %s", s.queue)
				return deliveries
			}
			log.Errorf("Failed to resume consuming: %v", consumeErr)
			continue
		}
		s.opMu.Unlock()
		log.Errorf("RabbitMQ reconnect failed: %v", err)
	}
}

// Connected reports whether the subscriber currently considers itself
// connected (best-effort).
func (s *Subscriber) Connected() bool {
	return s.connected.Load()
}

// Close stops the consume loop and closes the connection. Safe to call
// more than once.
func (s *Subscriber) Close() {
	s.closeOnce.Do(func() {
		close(s.done)
		s.opMu.Lock()
		defer s.opMu.Unlock()
		if s.channel != nil {
			_ = s.channel.Close()
		}
		if s.conn != nil {
			_ = s.conn.Close()
		}
		s.connected.Store(false)
		metrics.RabbitMQConnected.Set(0)
	})
}

package outbox

import (
	"context"
	"errors"
	"net"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"
)

// Producer publishes outbox batches to Kafka. Writers are created on first
// use and held for the life of the process, one per topic.
type Producer struct {
	addr    net.Addr
	mu      sync.Mutex
	writers map[string]*kafka.Writer
}

// NewProducer builds a Producer against the given broker addresses.
func NewProducer(brokers []string) *Producer {
	return &Producer{
		addr:    kafka.TCP(brokers...),
		writers: make(map[string]*kafka.Writer),
	}
}

// WriteMessages publishes the batch to one topic, blocking until every
// message is acknowledged.
func (p *Producer) WriteMessages(ctx context.Context, topic string, msgs ...kafka.Message) error {
	return p.writerForTopic(topic).WriteMessages(ctx, msgs...)
}

func (p *Producer) writerForTopic(topic string) *kafka.Writer {
	p.mu.Lock()
	defer p.mu.Unlock()

	if writer, ok := p.writers[topic]; ok {
		return writer
	}

	// Hash balancing keeps one user's session events on one partition, so
	// consumers observe log and delete in order.
	writer := &kafka.Writer{
		Addr:         p.addr,
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		Compression:  kafka.Snappy,
		BatchTimeout: 50 * time.Millisecond,
		WriteTimeout: 10 * time.Second,
	}
	p.writers[topic] = writer
	return writer
}

// Close shuts down every writer, reporting all failures.
func (p *Producer) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var errs []error
	for topic, writer := range p.writers {
		if err := writer.Close(); err != nil {
			errs = append(errs, err)
		}
		delete(p.writers, topic)
	}
	return errors.Join(errs...)
}

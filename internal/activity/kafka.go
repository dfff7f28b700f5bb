package activity

import (
	"context"
	"time"
)

// Publisher is satisfied by kafka.Producer.
type Publisher interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

// KafkaLog publishes entries to a topic; the worker writes them to the file log.
type KafkaLog struct {
	producer Publisher
	topic    string
	now      func() time.Time
}

func NewKafkaLog(producer Publisher, topic string) *KafkaLog {
	return &KafkaLog{producer: producer, topic: topic, now: time.Now}
}

func (l *KafkaLog) Append(ctx context.Context, message, actor, level string) error {
	entry := NewEntry(message, actor, level, l.now())
	return l.producer.Publish(ctx, l.topic, entry.ID, entry)
}

var _ Log = (*KafkaLog)(nil)

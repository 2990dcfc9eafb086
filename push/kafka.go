package push

import (
	"context"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// KafkaConfig holds the connection settings for the orders topic
type KafkaConfig struct {
	Brokers []string
	Topic   string
	GroupID string
}

// KafkaChannel consumes the orders topic through a consumer group reader
type KafkaChannel struct {
	reader *kafka.Reader
	log    *zap.Logger
}

func NewKafkaChannel(cfg KafkaConfig, log *zap.Logger) *KafkaChannel {
	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        cfg.Brokers,
		GroupID:        cfg.GroupID,
		Topic:          cfg.Topic,
		MinBytes:       10e3,
		MaxBytes:       10e6,
		CommitInterval: time.Second,
		MaxWait:        3 * time.Second,
	})
	return &KafkaChannel{reader: r, log: log}
}

func (k *KafkaChannel) Subscribe(ctx context.Context) (<-chan Message, error) {
	out := make(chan Message)
	go func() {
		defer close(out)
		for {
			m, err := k.reader.ReadMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				k.log.Warn("kafka read failed", zap.Error(err))
				select {
				case <-time.After(time.Second):
					continue
				case <-ctx.Done():
					return
				}
			}
			select {
			case out <- Message{Key: m.Key, Value: m.Value, Time: m.Time}:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}

func (k *KafkaChannel) Close() error {
	return k.reader.Close()
}

// KafkaPublisher writes accepted orders onto the orders topic
type KafkaPublisher struct {
	writer *kafka.Writer
}

func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.LeastBytes{},
			RequiredAcks: kafka.RequireOne,
		},
	}
}

func (p *KafkaPublisher) Publish(ctx context.Context, key, value []byte) error {
	return p.writer.WriteMessages(ctx, kafka.Message{Key: key, Value: value})
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/IBM/sarama"
	"github.com/google/uuid"

	"hos-trip-planner/internal/logx"
	"hos-trip-planner/internal/service/compliance"
)

var newSyncProducer = sarama.NewSyncProducer

// ViolationProducer publishes HOS violations to a Kafka topic.
type ViolationProducer struct {
	producer sarama.SyncProducer
	topic    string
	logger   logx.Logger
	newID    func() string
}

// NewViolationProducer returns nil, nil when Kafka is not configured.
func NewViolationProducer(logger logx.Logger, brokers []string, topic string) (*ViolationProducer, error) {
	if len(brokers) == 0 || strings.TrimSpace(topic) == "" {
		return nil, nil
	}

	cfg := sarama.NewConfig()
	cfg.Producer.Return.Successes = true
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Retry.Max = 3

	p, err := newSyncProducer(brokers, cfg)
	if err != nil {
		return nil, err
	}
	return newViolationProducer(p, topic, logger), nil
}

func newViolationProducer(p sarama.SyncProducer, topic string, logger logx.Logger) *ViolationProducer {
	return &ViolationProducer{
		producer: p,
		topic:    topic,
		logger:   logger,
		newID:    func() string { return uuid.NewString() },
	}
}

// PublishViolation sends ev keyed by driver so one driver's events stay ordered.
func (p *ViolationProducer) PublishViolation(ctx context.Context, ev compliance.ViolationEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	body, err := json.Marshal(ViolationDTO{
		ID:         p.newID(),
		DriverID:   ev.DriverID,
		Date:       ev.Date.Format(dateLayout),
		Violations: ev.Violations,
		DetectedAt: ev.DetectedAt.UTC(),
	})
	if err != nil {
		return fmt.Errorf("marshal violation: %w", err)
	}

	partition, offset, err := p.producer.SendMessage(&sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(strconv.FormatInt(ev.DriverID, 10)),
		Value: sarama.ByteEncoder(body),
	})
	if err != nil {
		return fmt.Errorf("send violation: %w", err)
	}
	p.logger.Debug("violation published",
		logx.Int64("driver_id", ev.DriverID),
		logx.Int("partition", int(partition)),
		logx.Int64("offset", offset),
	)
	return nil
}

// Close closes the underlying producer.
func (p *ViolationProducer) Close() error {
	if p == nil {
		return nil
	}
	return p.producer.Close()
}

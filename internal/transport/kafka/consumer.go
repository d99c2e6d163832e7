package kafka

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/IBM/sarama"
	"github.com/prometheus/client_golang/prometheus"

	"hos-trip-planner/internal/domain"
	"hos-trip-planner/internal/logx"
)

// HandleFunc processes a single duty-log entry from Kafka.
// Errors wrapped with Permanent are logged and the message is skipped;
// any other error stops the claim so the message is redelivered.
type HandleFunc func(context.Context, domain.DutyLogEntry) error

var newConsumerGroup = sarama.NewConsumerGroup

// Consumer wraps a Sarama consumer group and dispatches duty-log events to a handler.
type Consumer struct {
	group      sarama.ConsumerGroup
	topic      string
	handler    HandleFunc
	logger     logx.Logger
	consumed   *prometheus.CounterVec
	retryDelay time.Duration
}

// NewConsumer creates a new Kafka consumer. It returns nil, nil when Kafka is
// not configured. consumed may be nil.
func NewConsumer(
	logger logx.Logger,
	brokers []string,
	groupID, topic string,
	h HandleFunc,
	consumed *prometheus.CounterVec,
) (*Consumer, error) {
	// не стартую если у кафки нет настроек
	if len(brokers) == 0 || strings.TrimSpace(topic) == "" || strings.TrimSpace(groupID) == "" {
		return nil, nil
	}

	cfg := sarama.NewConfig()
	cfg.Consumer.Offsets.Initial = sarama.OffsetOldest
	cfg.Consumer.Return.Errors = true

	group, err := newConsumerGroup(brokers, groupID, cfg)
	if err != nil {
		return nil, err
	}

	return &Consumer{
		group:      group,
		topic:      topic,
		handler:    h,
		logger:     logger,
		consumed:   consumed,
		retryDelay: time.Second,
	}, nil
}

// Run consumes until ctx is cancelled.
func (c *Consumer) Run(ctx context.Context) error {
	if c == nil {
		return nil
	}

	go c.drainErrors(ctx)

	h := &groupHandler{c: c}
	for {
		if err := c.group.Consume(ctx, []string{c.topic}, h); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			c.logger.Error("kafka consume error", logx.Err(err))
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(c.retryDelay):
			}
			continue
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
}

func (c *Consumer) drainErrors(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case err, ok := <-c.group.Errors():
			if !ok {
				return
			}
			c.logger.Warn("kafka group error", logx.Err(err))
		}
	}
}

// Close closes the consumer group.
func (c *Consumer) Close() error {
	if c == nil {
		return nil
	}
	return c.group.Close()
}

func (c *Consumer) count(result string) {
	if c.consumed != nil {
		c.consumed.WithLabelValues(result).Inc()
	}
}

type groupHandler struct{ c *Consumer }

func (h *groupHandler) Setup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *groupHandler) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *groupHandler) ConsumeClaim(sess sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for msg := range claim.Messages() {
		var dto DutyLogDTO
		if err := json.Unmarshal(msg.Value, &dto); err != nil {
			h.c.logger.Warn("kafka bad json",
				logx.Int64("offset", msg.Offset),
				logx.Err(err),
			)
			h.c.count("bad_message")
			sess.MarkMessage(msg, "")
			continue
		}
		if dto.DriverID <= 0 {
			h.c.logger.Warn("kafka empty driver_id", logx.Int64("offset", msg.Offset))
			h.c.count("bad_message")
			sess.MarkMessage(msg, "")
			continue
		}
		entry, err := ToDomain(dto)
		if err != nil {
			h.c.logger.Warn("kafka bad event",
				logx.Int64("driver_id", dto.DriverID),
				logx.Err(err),
			)
			h.c.count("bad_message")
			sess.MarkMessage(msg, "")
			continue
		}

		if err := h.c.handler(sess.Context(), entry); err != nil {
			if IsPermanent(err) {
				h.c.logger.Warn("kafka handle failed, skipping message",
					logx.Int64("driver_id", entry.DriverID),
					logx.Err(err),
				)
				h.c.count("rejected")
				sess.MarkMessage(msg, "")
				continue
			}
			h.c.logger.Error("kafka handle failed, retry",
				logx.Int64("driver_id", entry.DriverID),
				logx.String("status", string(entry.Status)),
				logx.Err(err),
			)
			h.c.count("retry")
			return err
		}

		h.c.count("ok")
		sess.MarkMessage(msg, "")
	}
	return nil
}

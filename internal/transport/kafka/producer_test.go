package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/stretchr/testify/require"

	"hos-trip-planner/internal/logx"
	"hos-trip-planner/internal/service/compliance"
)

func TestNewViolationProducer_SkipsWhenNoKafkaConfig(t *testing.T) {
	t.Parallel()

	p, err := NewViolationProducer(logx.Nop(), nil, "hos-violations")
	require.NoError(t, err)
	require.Nil(t, p)

	p, err = NewViolationProducer(logx.Nop(), []string{"b:9092"}, " ")
	require.NoError(t, err)
	require.Nil(t, p)

	require.NoError(t, p.Close())
}

func TestNewViolationProducer_ReturnsErrorWhenSaramaFails(t *testing.T) {
	orig := newSyncProducer
	t.Cleanup(func() { newSyncProducer = orig })

	sentinel := errors.New("no brokers")
	newSyncProducer = func([]string, *sarama.Config) (sarama.SyncProducer, error) {
		return nil, sentinel
	}

	p, err := NewViolationProducer(logx.Nop(), []string{"b:9092"}, "hos-violations")
	require.ErrorIs(t, err, sentinel)
	require.Nil(t, p)
}

func TestViolationProducer_PublishViolation(t *testing.T) {
	t.Parallel()

	mp := mocks.NewSyncProducer(t, nil)
	mp.ExpectSendMessageWithCheckerFunctionAndSucceed(func(val []byte) error {
		var dto ViolationDTO
		if err := json.Unmarshal(val, &dto); err != nil {
			return err
		}
		if dto.ID != "fixed-id" || dto.DriverID != 5 || dto.Date != "2025-03-10" {
			return errors.New("unexpected payload: " + string(val))
		}
		if len(dto.Violations) != 1 || dto.Violations[0] != "Exceeded 11-hour driving limit" {
			return errors.New("unexpected violations")
		}
		return nil
	})

	p := newViolationProducer(mp, "hos-violations", logx.Nop())
	p.newID = func() string { return "fixed-id" }

	err := p.PublishViolation(context.Background(), compliance.ViolationEvent{
		DriverID:   5,
		Date:       time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		Violations: []string{"Exceeded 11-hour driving limit"},
		DetectedAt: time.Date(2025, 3, 10, 20, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.NoError(t, p.Close())
}

func TestViolationProducer_SendFailure(t *testing.T) {
	t.Parallel()

	mp := mocks.NewSyncProducer(t, nil)
	sentinel := errors.New("leader not available")
	mp.ExpectSendMessageAndFail(sentinel)

	p := newViolationProducer(mp, "hos-violations", logx.Nop())
	err := p.PublishViolation(context.Background(), compliance.ViolationEvent{DriverID: 5})
	require.ErrorIs(t, err, sentinel)
	require.NoError(t, p.Close())
}

func TestViolationProducer_CancelledContext(t *testing.T) {
	t.Parallel()

	mp := mocks.NewSyncProducer(t, nil)
	p := newViolationProducer(mp, "hos-violations", logx.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.ErrorIs(t, p.PublishViolation(ctx, compliance.ViolationEvent{DriverID: 5}), context.Canceled)
	require.NoError(t, p.Close())
}

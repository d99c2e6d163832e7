package app

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"

	"hos-trip-planner/internal/config"
	"hos-trip-planner/internal/logx"
	"hos-trip-planner/internal/service/compliance"
	"hos-trip-planner/internal/transport/kafka"
)

// MustBuildWorkerContainer builds the container of the duty-log worker.
func MustBuildWorkerContainer(ctx context.Context) *dig.Container {
	return NewContainerBuilder().MustBuildWorker(ctx)
}

// MustBuildWorker builds the worker container or calls logFatalf.
func (b *ContainerBuilder) MustBuildWorker(ctx context.Context) *dig.Container {
	container, err := b.buildWorker(ctx)
	if err != nil {
		b.logFatalf("failed to build worker container: %v", err)
	}
	return container
}

func (b *ContainerBuilder) buildWorker(ctx context.Context) (*dig.Container, error) {
	container := dig.New()

	if err := registerCore(container, ctx, b.loadConfig); err != nil {
		return nil, fmt.Errorf("core: %w", err)
	}
	if err := registerDb(container, b.dbConnect); err != nil {
		return nil, fmt.Errorf("DB: %w", err)
	}
	if err := registerDomainServices(container); err != nil {
		return nil, fmt.Errorf("service: %w", err)
	}
	if err := provideAll(container, newDutyLogConsumer); err != nil {
		return nil, fmt.Errorf("kafka: %w", err)
	}
	return container, nil
}

type consumerIn struct {
	dig.In

	Config     *config.Config
	Logger     logx.Logger
	Compliance *compliance.Service
	Consumed   *prometheus.CounterVec `name:"duty_logs_consumed_total"`
}

func newDutyLogConsumer(in consumerIn) (*kafka.Consumer, error) {
	k := in.Config.Kafka
	return kafka.NewConsumer(in.Logger, k.Brokers, k.GroupID, k.DutyLogTopic,
		makeDutyLogHandler(in.Compliance), in.Consumed)
}

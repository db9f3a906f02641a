package app

import (
	"context"
	"errors"
	"os"

	"go.uber.org/dig"

	"service-partner/internal/logx"
	"service-partner/internal/transport/kafka"
)

// ErrWorkerNotConfigured is returned when Kafka settings are missing.
var ErrWorkerNotConfigured = errors.New("kafka consumer is not configured")

// WorkerRunner runs the partner import consumer
type WorkerRunner struct {
	runFn func(*dig.Container) error
	exit  func(int)
}

// NewWorkerRunner returns a new WorkerRunner
func NewWorkerRunner() *WorkerRunner {
	return &WorkerRunner{runFn: runWorker, exit: os.Exit}
}

// MustRun consumes until the container context is canceled.
func (r *WorkerRunner) MustRun(container *dig.Container) {
	reportExit(container, r.runFn(container), r.exit)
}

func runWorker(container *dig.Container) error {
	return container.Invoke(workerRun)
}

type workerIn struct {
	dig.In

	Ctx      context.Context
	Logger   logx.Logger
	Consumer *kafka.Consumer
	Closer   storeCloser
}

func workerRun(in workerIn) error {
	if in.Consumer == nil {
		return ErrWorkerNotConfigured
	}
	defer closeWorker(in.Logger, in.Consumer, in.Closer)

	in.Logger.Info("service-partner-worker started")
	return in.Consumer.Run(in.Ctx)
}

func closeWorker(logger logx.Logger, consumer *kafka.Consumer, closer storeCloser) {
	if err := consumer.Close(); err != nil {
		logger.Error("kafka close error", logx.Err(err))
	}
	if closer != nil {
		closer()
	}
}

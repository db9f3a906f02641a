package kafka

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/stretchr/testify/require"

	"service-partner/internal/domain"
	testlog "service-partner/internal/testutil"
)

type fakeGroup struct {
	consume func(ctx context.Context) error
	closed  atomic.Bool
}

func (g *fakeGroup) Consume(ctx context.Context, _ []string, _ sarama.ConsumerGroupHandler) error {
	return g.consume(ctx)
}

func (g *fakeGroup) Errors() <-chan error {
	ch := make(chan error)
	close(ch)
	return ch
}

func (g *fakeGroup) Close() error {
	g.closed.Store(true)
	return nil
}

func (g *fakeGroup) Pause(map[string][]int32)  {}
func (g *fakeGroup) Resume(map[string][]int32) {}
func (g *fakeGroup) PauseAll()                 {}
func (g *fakeGroup) ResumeAll()                {}

func noop(context.Context, domain.Partner) error { return nil }

func TestNewConsumer_SkipsWhenNoKafkaConfig(t *testing.T) {
	t.Parallel()

	rec := testlog.New()

	got, err := NewConsumer(rec.Logger(), nil, "gid", "topic", noop, nil)
	require.NoError(t, err)
	require.Nil(t, got)

	got, err = NewConsumer(rec.Logger(), []string{"b:9092"}, "", "topic", noop, nil)
	require.NoError(t, err)
	require.Nil(t, got)

	got, err = NewConsumer(rec.Logger(), []string{"b:9092"}, "gid", "   ", noop, nil)
	require.NoError(t, err)
	require.Nil(t, got)
}

// Not parallel: swaps the package-level group constructor.
func TestNewConsumer_GroupConstructor(t *testing.T) {
	orig := newConsumerGroup
	t.Cleanup(func() { newConsumerGroup = orig })

	sentinel := errors.New("boom")
	newConsumerGroup = func([]string, string, *sarama.Config) (sarama.ConsumerGroup, error) {
		return nil, sentinel
	}
	got, err := NewConsumer(nil, []string{"b:9092"}, "gid", "topic", noop, nil)
	require.ErrorIs(t, err, sentinel)
	require.Nil(t, got)

	var gotCfg *sarama.Config
	newConsumerGroup = func(_ []string, _ string, cfg *sarama.Config) (sarama.ConsumerGroup, error) {
		gotCfg = cfg
		return &fakeGroup{}, nil
	}
	got, err = NewConsumer(nil, []string{"b:9092"}, "gid", "topic", noop, nil)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, sarama.OffsetOldest, gotCfg.Consumer.Offsets.Initial)
	require.NoError(t, got.Close())
}

func TestConsumer_Run_RetriesUntilCanceled(t *testing.T) {
	t.Parallel()

	rec := testlog.New()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var calls atomic.Int32
	g := &fakeGroup{consume: func(ctx context.Context) error {
		if calls.Add(1) == 1 {
			return errors.New("rebalance failed")
		}
		cancel()
		return nil
	}}
	c := &Consumer{group: g, topic: "partners", handler: noop, logger: rec.Logger()}

	done := make(chan error, 1)
	go func() { done <- c.Run(ctx) }()

	select {
	case err := <-done:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return")
	}
	require.Equal(t, int32(2), calls.Load())
	_, ok := rec.Find("kafka consume error")
	require.True(t, ok)
}

func TestConsumer_NilIsNoop(t *testing.T) {
	t.Parallel()

	var c *Consumer
	require.NoError(t, c.Run(context.Background()))
	require.NoError(t, c.Close())
}

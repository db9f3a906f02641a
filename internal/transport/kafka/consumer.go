// Package kafka consumes partner records from the import topic.
package kafka

import (
	"context"
	"strings"
	"time"

	"github.com/IBM/sarama"

	"service-partner/internal/domain"
	"service-partner/internal/logx"
	"service-partner/internal/metrics"
)

// HandleFunc processes a single partner record from Kafka
type HandleFunc func(context.Context, domain.Partner) error

var newConsumerGroup = sarama.NewConsumerGroup

const retryDelay = time.Second

// Consumer wraps a Sarama consumer group and dispatches records to a handler
type Consumer struct {
	group   sarama.ConsumerGroup
	topic   string
	handler HandleFunc
	logger  logx.Logger
	imports *metrics.PartnerImports
}

// NewConsumer creates a consumer. It returns nil, nil when brokers, group or
// topic are not configured.
func NewConsumer(
	logger logx.Logger,
	brokers []string,
	groupID, topic string,
	h HandleFunc,
	imports *metrics.PartnerImports,
) (*Consumer, error) {
	if len(brokers) == 0 || strings.TrimSpace(topic) == "" || strings.TrimSpace(groupID) == "" {
		return nil, nil
	}
	if logger == nil {
		logger = logx.Nop()
	}

	cfg := sarama.NewConfig()
	cfg.Consumer.Offsets.Initial = sarama.OffsetOldest
	cfg.Consumer.Return.Errors = false

	group, err := newConsumerGroup(brokers, groupID, cfg)
	if err != nil {
		return nil, err
	}

	return &Consumer{
		group:   group,
		topic:   topic,
		handler: h,
		logger:  logger,
		imports: imports,
	}, nil
}

// Run consumes until ctx is done. Consume errors are logged and retried.
func (c *Consumer) Run(ctx context.Context) error {
	if c == nil {
		return nil
	}

	h := &groupHandler{c: c}
	for {
		if err := c.group.Consume(ctx, []string{c.topic}, h); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			c.logger.Error("kafka consume error", logx.String("topic", c.topic), logx.Err(err))
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(retryDelay):
			}
			continue
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
}

// Close leaves the consumer group.
func (c *Consumer) Close() error {
	if c == nil {
		return nil
	}
	return c.group.Close()
}

// handle returns an error only for failures worth redelivering.
func (c *Consumer) handle(ctx context.Context, msg *sarama.ConsumerMessage) error {
	p, err := decodePartner(msg.Value)
	if err != nil {
		c.imports.Inc(metrics.ImportRejected)
		c.logger.Warn("kafka bad message",
			logx.Int("partition", int(msg.Partition)),
			logx.Any("offset", msg.Offset),
			logx.Err(err),
		)
		return nil
	}

	err = c.handler(ctx, p)
	switch {
	case err == nil:
		return nil
	case IsPermanent(err):
		c.logger.Warn("kafka message skipped", logx.String("id", p.ID), logx.Err(err))
		return nil
	default:
		c.logger.Error("kafka handle failed, retry", logx.String("id", p.ID), logx.Err(err))
		return err
	}
}

type groupHandler struct{ c *Consumer }

func (h *groupHandler) Setup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *groupHandler) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

// ConsumeClaim stops on the first retryable failure without marking the
// message, so the next session starts from it again.
func (h *groupHandler) ConsumeClaim(sess sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for msg := range claim.Messages() {
		if err := h.c.handle(sess.Context(), msg); err != nil {
			return err
		}
		sess.MarkMessage(msg, "")
	}
	return nil
}

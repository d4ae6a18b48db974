package kafka

import (
	"RecipeHub/internal/api/config"
	"RecipeHub/internal/model"
	"context"
	"fmt"
	log "log/slog"
	"strconv"
	"time"

	"github.com/IBM/sarama"
	"github.com/goccy/go-json"
)

const defaultSendTimeout = 2 * time.Second

// ModerationProducer 将审核结果写入 Kafka，单次发送最多等待 sendTimeout
type ModerationProducer struct {
	producer    sarama.SyncProducer
	topic       string
	sendTimeout time.Duration
}

type sendResult struct {
	partition int32
	offset    int64
	err       error
}

func NewModerationProducer(cfg *config.Config) (*ModerationProducer, error) {
	producer, err := sarama.NewSyncProducer(cfg.Kafka.Brokers, newSaramaConfig(cfg.Kafka))
	if err != nil {
		return nil, err
	}
	p := NewModerationProducerWith(producer, cfg.KafkaModerationConsumer.Topic)
	p.SetSendTimeout(time.Duration(cfg.Kafka.SendTimeout) * time.Second)
	return p, nil
}

// NewModerationProducerWith 使用已有的 SyncProducer 构造
func NewModerationProducerWith(producer sarama.SyncProducer, topic string) *ModerationProducer {
	return &ModerationProducer{producer: producer, topic: topic, sendTimeout: defaultSendTimeout}
}

// SetSendTimeout 非正值沿用默认超时
func (p *ModerationProducer) SetSendTimeout(d time.Duration) {
	if d > 0 {
		p.sendTimeout = d
	}
}

// PublishModeration 以菜谱 ID 作为分区键，保证同一菜谱的事件有序
func (p *ModerationProducer) PublishModeration(ctx context.Context, ev *model.ModerationEvent) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(strconv.FormatUint(ev.RecipeID, 10)),
		Value: sarama.ByteEncoder(payload),
	}

	sendCtx, cancel := context.WithTimeout(ctx, p.sendTimeout)
	defer cancel()
	done := make(chan sendResult, 1)
	go func() {
		partition, offset, err := p.producer.SendMessage(msg)
		done <- sendResult{partition: partition, offset: offset, err: err}
	}()

	select {
	case res := <-done:
		if res.err != nil {
			return res.err
		}
		log.DebugContext(ctx, "moderation event published", "recipe_id", ev.RecipeID, "partition", res.partition, "offset", res.offset)
		return nil
	case <-sendCtx.Done():
		return fmt.Errorf("publish moderation event %d: %w", ev.RecipeID, sendCtx.Err())
	}
}

func (p *ModerationProducer) Close() error {
	return p.producer.Close()
}

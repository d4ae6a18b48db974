package kafka

import (
	"RecipeHub/internal/api/config"
	"context"
	log "log/slog"

	"github.com/IBM/sarama"
)

// ConsumerManager 管理所有 Kafka 消费者
type ConsumerManager struct {
	moderationConsumer sarama.ConsumerGroup
	moderationHandler  sarama.ConsumerGroupHandler
}

func NewConsumerManager(cfg *config.Config, moderationHandler *ModerationHandler) (*ConsumerManager, error) {
	saramaCfg := newSaramaConfig(cfg.Kafka)

	moderationConsumer, err := sarama.NewConsumerGroup(cfg.Kafka.Brokers, cfg.KafkaModerationConsumer.GroupID, saramaCfg)
	if err != nil {
		return nil, err
	}

	return &ConsumerManager{
		moderationConsumer: moderationConsumer,
		moderationHandler:  moderationHandler,
	}, nil
}

// Start 启动所有消费者，阻塞直到 ctx 取消
func (m *ConsumerManager) Start(ctx context.Context, cfg *config.Config) error {
	go func() {
		topic := cfg.KafkaModerationConsumer.Topic
		log.Info("Moderation consumer started", "topic", topic)
		for {
			if err := m.moderationConsumer.Consume(ctx, []string{topic}, m.moderationHandler); err != nil {
				log.Error("Error from consumer", "err", err)
			}
			if ctx.Err() != nil {
				return
			}
		}
	}()

	go func() {
		for err := range m.moderationConsumer.Errors() {
			log.Error("moderation consumer error", "err", err)
		}
	}()

	<-ctx.Done()
	log.Info("Kafka Manager shutting down...")

	if err := m.moderationConsumer.Close(); err != nil {
		log.Error("Failed to close moderation consumer", "err", err)
	}
	return nil
}

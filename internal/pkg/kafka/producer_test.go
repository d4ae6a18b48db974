package kafka

import (
	"RecipeHub/internal/model"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/goccy/go-json"
)

func TestPublishModeration(t *testing.T) {
	sp := mocks.NewSyncProducer(t, nil)
	sp.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(func(msg *sarama.ProducerMessage) error {
		if msg.Topic != "recipe-moderation" {
			return errors.New("wrong topic " + msg.Topic)
		}
		key, _ := msg.Key.Encode()
		if string(key) != "42" {
			return errors.New("wrong key " + string(key))
		}
		raw, _ := msg.Value.Encode()
		var ev model.ModerationEvent
		if err := json.Unmarshal(raw, &ev); err != nil {
			return err
		}
		if ev.Status != model.StatusApproved || ev.Slug != "cake" {
			return errors.New("unexpected payload " + string(raw))
		}
		return nil
	})

	p := NewModerationProducerWith(sp, "recipe-moderation")
	ev := &model.ModerationEvent{RecipeID: 42, Slug: "cake", Status: model.StatusApproved}
	if err := p.PublishModeration(context.Background(), ev); err != nil {
		t.Fatalf("PublishModeration: %v", err)
	}
	if err := p.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}

func TestPublishModerationFailure(t *testing.T) {
	sp := mocks.NewSyncProducer(t, nil)
	sp.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	p := NewModerationProducerWith(sp, "recipe-moderation")
	err := p.PublishModeration(context.Background(), &model.ModerationEvent{RecipeID: 1})
	if !errors.Is(err, sarama.ErrOutOfBrokers) {
		t.Fatalf("err = %v", err)
	}
	_ = p.Close()
}

// stuckProducer 模拟 broker 无响应，SendMessage 一直阻塞到测试结束
type stuckProducer struct {
	sarama.SyncProducer
	release chan struct{}
}

func (s *stuckProducer) SendMessage(*sarama.ProducerMessage) (int32, int64, error) {
	<-s.release
	return 0, 0, sarama.ErrRequestTimedOut
}

func TestPublishModerationTimesOut(t *testing.T) {
	sp := &stuckProducer{release: make(chan struct{})}
	defer close(sp.release)

	p := NewModerationProducerWith(sp, "recipe-moderation")
	p.SetSendTimeout(20 * time.Millisecond)

	start := time.Now()
	err := p.PublishModeration(context.Background(), &model.ModerationEvent{RecipeID: 7})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("err = %v", err)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Fatalf("PublishModeration blocked for %v", elapsed)
	}
}

func TestPublishModerationCanceledContext(t *testing.T) {
	sp := &stuckProducer{release: make(chan struct{})}
	defer close(sp.release)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	p := NewModerationProducerWith(sp, "recipe-moderation")
	if err := p.PublishModeration(ctx, &model.ModerationEvent{RecipeID: 7}); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v", err)
	}
}

package kafka

import (
	"RecipeHub/internal/model"
	"RecipeHub/internal/pkg/es"
	"RecipeHub/internal/pkg/mail"
	"RecipeHub/internal/pkg/metrics"
	"RecipeHub/internal/pkg/mongo"
	"RecipeHub/internal/pkg/util"
	"RecipeHub/internal/repository"
	"context"
	"fmt"
	log "log/slog"
	"time"

	"github.com/IBM/sarama"
)

// ModerationHandler 消费审核事件：同步 ES、写站内通知、发邮件
type ModerationHandler struct {
	recipeRepo       repository.RecipeRepo
	userRepo         repository.UserRepo
	recipeESRepo     es.RecipeRepo
	notificationRepo mongo.NotificationRepo
	mailer           mail.Sender
}

func NewModerationHandler(
	recipeRepo repository.RecipeRepo,
	userRepo repository.UserRepo,
	recipeESRepo es.RecipeRepo,
	notificationRepo mongo.NotificationRepo,
	mailer mail.Sender,
) *ModerationHandler {
	return &ModerationHandler{
		recipeRepo:       recipeRepo,
		userRepo:         userRepo,
		recipeESRepo:     recipeESRepo,
		notificationRepo: notificationRepo,
		mailer:           mailer,
	}
}

func (s *ModerationHandler) Setup(sarama.ConsumerGroupSession) error {
	log.Info("moderation consumer setup")
	return nil
}

func (s *ModerationHandler) Cleanup(sarama.ConsumerGroupSession) error {
	log.Info("moderation consumer cleanup")
	return nil
}

func (s *ModerationHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	err := pullMessageBatch(session, claim, s.logic)
	if err != nil {
		log.Error("moderation process batch error", "err", err)
		return err
	}
	return nil
}

func (s *ModerationHandler) logic(ctx context.Context, msg *sarama.ConsumerMessage) error {
	ev, err := decodeModerationEvent(msg)
	if err != nil {
		// 无法解析的消息重试也不会成功，直接跳过
		log.Error("drop malformed moderation event", "err", err, "offset", msg.Offset)
		metrics.ModerationEvents.WithLabelValues("decode", "dropped").Inc()
		return nil
	}

	recipe, err := s.recipeRepo.GetRecipeByID(ctx, ev.RecipeID)
	if err != nil {
		return err
	}

	if err = s.syncIndex(ctx, ev.RecipeID, recipe); err != nil {
		metrics.ModerationEvents.WithLabelValues("index", "failure").Inc()
		return err
	}
	metrics.ModerationEvents.WithLabelValues("index", "success").Inc()

	if recipe == nil {
		return nil
	}

	if err = s.notify(ctx, ev); err != nil {
		metrics.ModerationEvents.WithLabelValues("notify", "failure").Inc()
		return err
	}
	metrics.ModerationEvents.WithLabelValues("notify", "success").Inc()

	// 邮件失败不重试，避免重复写入站内通知
	s.sendMail(ctx, ev)
	return nil
}

// syncIndex 以数据库当前状态为准，过期事件不会把已驳回的菜谱写回索引
func (s *ModerationHandler) syncIndex(ctx context.Context, id uint64, recipe *model.Recipe) error {
	if recipe == nil || recipe.ModerationStatus != model.StatusApproved {
		return s.recipeESRepo.DeleteRecipe(ctx, id)
	}
	doc := es.NewRecipeES(recipe, util.IngredientNames(recipe.Ingredients))
	return s.recipeESRepo.IndexRecipe(ctx, doc)
}

func (s *ModerationHandler) notify(ctx context.Context, ev *model.ModerationEvent) error {
	msgType := mongo.NotifyRecipeRejected
	if ev.Status == model.StatusApproved {
		msgType = mongo.NotifyRecipeApproved
	}
	return s.notificationRepo.CreateNotification(ctx, &mongo.Notification{
		ReceiverID: ev.OwnerID,
		Type:       msgType,
		TargetID:   ev.RecipeID,
		Content:    moderationText(ev),
		Payload: map[string]any{
			"slug": ev.Slug,
			"name": ev.Name,
		},
		CreatedAt: time.Now(),
	})
}

func (s *ModerationHandler) sendMail(ctx context.Context, ev *model.ModerationEvent) {
	owner, err := s.userRepo.GetUserByID(ctx, ev.OwnerID)
	if err != nil || owner == nil || owner.Email == "" {
		return
	}
	if err = s.mailer.Send(owner.Email, "Recipe moderation result", moderationText(ev)); err != nil {
		log.WarnContext(ctx, "send moderation mail failed", "recipe_id", ev.RecipeID, "err", err)
		metrics.ModerationEvents.WithLabelValues("mail", "failure").Inc()
		return
	}
	metrics.ModerationEvents.WithLabelValues("mail", "success").Inc()
}

func moderationText(ev *model.ModerationEvent) string {
	if ev.Status == model.StatusApproved {
		return fmt.Sprintf("Your recipe %q has been approved.", ev.Name)
	}
	return fmt.Sprintf("Your recipe %q has been rejected.", ev.Name)
}

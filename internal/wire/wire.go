package wire

import (
	"RecipeHub/internal/api"
	"RecipeHub/internal/api/config"
	"RecipeHub/internal/api/handler"
	"RecipeHub/internal/job"
	"RecipeHub/internal/pkg/counter"
	"RecipeHub/internal/pkg/cron"
	"RecipeHub/internal/pkg/es"
	"RecipeHub/internal/pkg/kafka"
	"RecipeHub/internal/pkg/mail"
	"RecipeHub/internal/pkg/minio"
	mongoRepo "RecipeHub/internal/pkg/mongo"
	"RecipeHub/internal/pkg/redis"
	"RecipeHub/internal/repository"
	"RecipeHub/internal/service"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router       *gin.Engine
	DB           *gorm.DB
	KafkaManager *kafka.ConsumerManager
	Producer     *kafka.ModerationProducer
	CronMgr      *cron.Manager
}

// counterLayer 按驱动选择计数与缓存后端，开启熔断时在外层包装
func counterLayer(cfg config.CacheConfig) (counter.Store, counter.Cache, job.Locker) {
	var (
		store  counter.Store
		cache  counter.Cache
		locker job.Locker
	)
	if cfg.Driver == "memory" {
		store, cache, locker = counter.NewMemoryStore(), counter.NewMemoryCache(), job.NewLocalLocker()
	} else {
		store, cache, locker = redis.NewCounterStore(redis.Rdb), redis.NewCache(redis.Rdb), redis.Locker{}
	}

	if cfg.Breaker.Enable {
		cb := counter.NewBreaker(cfg.Breaker)
		store = counter.NewBreakerStore(store, cb)
		cache = counter.NewBreakerCache(cache, cb)
	}
	return store, cache, locker
}

func BuildApplication(db *gorm.DB, mongoDB *mongo.Database, cfg *config.Config) (*ApplicationContainer, error) {
	userRepo := repository.NewUserRepo(db)
	categoryRepo := repository.NewCategoryRepo(db)
	recipeRepo := repository.NewRecipeRepo(db)
	reviewRepo := repository.NewReviewRepo(db)
	favoriteRepo := repository.NewFavoriteRepo(db)
	commentRepo := repository.NewCommentRepo(db)
	recipeESRepo := es.NewRecipeRepo(es.Client)
	notificationRepo := mongoRepo.NewNotificationRepo(mongoDB)

	store, cache, locker := counterLayer(cfg.Cache)

	producer, err := kafka.NewModerationProducer(cfg)
	if err != nil {
		return nil, err
	}

	var mailer mail.Sender = mail.NopSender{}
	if cfg.Mail.Host != "" {
		mailer = mail.NewSMTPSender(cfg.Mail)
	}

	photoStore := minio.NewPhotoStore()
	projector := service.NewRecipeProjector(photoStore)
	viewTracker := service.NewViewTracker(store)
	bestSvc := service.NewBestRecipeService(store, cache, recipeRepo, projector, time.Duration(cfg.Cache.BestRecipesTTL)*time.Second)
	searchSvc := service.NewSearchService(recipeESRepo, recipeRepo, projector)
	favoriteSvc := service.NewFavoriteService(favoriteRepo, recipeRepo, projector)
	reviewSvc := service.NewReviewService(reviewRepo, recipeRepo, store)
	moderationSvc := service.NewModerationService(recipeRepo, bestSvc, producer, projector)
	recipeSvc := service.NewRecipeService(
		recipeRepo,
		categoryRepo,
		reviewRepo,
		favoriteSvc,
		viewTracker,
		bestSvc,
		searchSvc,
		store,
		photoStore,
		projector,
	)
	commentSvc := service.NewCommentService(commentRepo, recipeRepo)
	categorySvc := service.NewCategoryService(categoryRepo, cfg.Server.BaseURL)
	notificationSvc := service.NewNotificationService(notificationRepo)
	tokenSvc := service.NewTokenService(cache)

	handlers := &api.HandlersGroup{
		Tokens:              tokenSvc,
		BaseURL:             cfg.Server.BaseURL,
		RecipeHandler:       handler.NewRecipeHandler(recipeSvc, bestSvc, moderationSvc, favoriteSvc, reviewSvc, searchSvc),
		ActionHandler:       handler.NewActionHandler(favoriteSvc, reviewSvc),
		AccountHandler:      handler.NewAccountHandler(tokenSvc),
		CommentHandler:      handler.NewCommentHandler(commentSvc),
		CategoryHandler:     handler.NewCategoryHandler(categorySvc),
		NotificationHandler: handler.NewNotificationHandler(notificationSvc),
	}

	router := api.SetupRouter(handlers)

	moderationHandler := kafka.NewModerationHandler(recipeRepo, userRepo, recipeESRepo, notificationRepo, mailer)
	kafkaMgr, err := kafka.NewConsumerManager(cfg, moderationHandler)
	if err != nil {
		_ = producer.Close()
		return nil, err
	}

	leaderboardJob := job.NewLeaderboardRebuildJob(reviewSvc, bestSvc, locker)
	cronMgr := cron.NewCronManager(leaderboardJob, cfg.Cron.LeaderboardRebuild)

	return &ApplicationContainer{
		Router:       router,
		DB:           db,
		KafkaManager: kafkaMgr,
		Producer:     producer,
		CronMgr:      cronMgr,
	}, nil
}

package job

import (
	"RecipeHub/internal/pkg/consts"
	"RecipeHub/internal/pkg/logger"
	"RecipeHub/internal/service"
	"context"
	log "log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

const leaderboardLockTTL = 5 * time.Minute

// Locker 跨实例互斥，value 用于只释放自己持有的锁
type Locker interface {
	TryLock(ctx context.Context, key, value string, ttl time.Duration) (bool, error)
	Unlock(ctx context.Context, key, value string)
}

// LocalLocker 单实例部署使用的进程内锁
type LocalLocker struct {
	mu     sync.Mutex
	owners map[string]string
}

func NewLocalLocker() *LocalLocker {
	return &LocalLocker{owners: make(map[string]string)}
}

func (l *LocalLocker) TryLock(_ context.Context, key, value string, _ time.Duration) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, held := l.owners[key]; held {
		return false, nil
	}
	l.owners[key] = value
	return true, nil
}

func (l *LocalLocker) Unlock(_ context.Context, key, value string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.owners[key] == value {
		delete(l.owners, key)
	}
}

// LeaderboardRebuildJob 由评分表重建排行榜，修正计数层丢失或漂移的数据
type LeaderboardRebuildJob struct {
	reviewSvc service.ReviewService
	bestSvc   service.BestRecipeService
	locker    Locker
}

func NewLeaderboardRebuildJob(reviewSvc service.ReviewService, bestSvc service.BestRecipeService, locker Locker) *LeaderboardRebuildJob {
	return &LeaderboardRebuildJob{
		reviewSvc: reviewSvc,
		bestSvc:   bestSvc,
		locker:    locker,
	}
}

func (s *LeaderboardRebuildJob) Run() {
	traceID := "job-" + uuid.NewString()
	ctx := logger.WithTraceID(context.Background(), traceID)
	s.run(ctx)
}

func (s *LeaderboardRebuildJob) run(ctx context.Context) {
	owner := uuid.NewString()
	locked, err := s.locker.TryLock(ctx, consts.LeaderboardRebuildLock, owner, leaderboardLockTTL)
	if err != nil {
		log.ErrorContext(ctx, "leaderboard rebuild lock error", "err", err)
		return
	}
	if !locked {
		log.InfoContext(ctx, "leaderboard rebuild skipped, lock held elsewhere")
		return
	}
	defer s.locker.Unlock(ctx, consts.LeaderboardRebuildLock, owner)

	start := time.Now()
	n, err := s.reviewSvc.RebuildLeaderboard(ctx)
	if err != nil {
		log.ErrorContext(ctx, "leaderboard rebuild error", "err", err)
		return
	}
	s.bestSvc.Invalidate(ctx)
	log.InfoContext(ctx, "leaderboard rebuilt", "recipes", n, "elapsed", time.Since(start))
}

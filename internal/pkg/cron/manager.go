package cron

import (
	"RecipeHub/internal/job"
	log "log/slog"

	"github.com/robfig/cron/v3"
)

type Manager struct {
	engine         *cron.Cron
	leaderboardJob *job.LeaderboardRebuildJob
	leaderboardAt  string
}

// NewCronManager leaderboardAt 为 6 段带秒的 cron 表达式
func NewCronManager(leaderboardJob *job.LeaderboardRebuildJob, leaderboardAt string) *Manager {
	return &Manager{
		engine:         cron.New(cron.WithSeconds()),
		leaderboardJob: leaderboardJob,
		leaderboardAt:  leaderboardAt,
	}
}

// RegisterJobs 注册定时任务
func (s *Manager) RegisterJobs() error {
	if _, err := s.engine.AddJob(s.leaderboardAt, cron.NewChain(cron.SkipIfStillRunning(cron.DiscardLogger)).Then(s.leaderboardJob)); err != nil {
		return err
	}
	return nil
}

func (s *Manager) Start() {
	log.Info("cron engine started")
	s.engine.Start()
}

func (s *Manager) Stop() {
	ctx := s.engine.Stop()
	<-ctx.Done()
	log.Info("cron engine stopped")
}

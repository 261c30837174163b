package queue

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"

	"library-backend/internal/config"
	loanModel "library-backend/internal/domains/loan/model"
	"library-backend/internal/shared"
	"library-backend/pkg/logger"
)

type Scheduler struct {
	scheduler *asynq.Scheduler
	loanCfg   config.LoanConfig
}

func NewScheduler(redisOpt asynq.RedisClientOpt, loanCfg config.LoanConfig) *Scheduler {
	scheduler := asynq.NewScheduler(
		redisOpt,
		&asynq.SchedulerOpts{
			Location: time.UTC,
			LogLevel: asynq.InfoLevel,
		},
	)

	return &Scheduler{
		scheduler: scheduler,
		loanCfg:   loanCfg,
	}
}

// RegisterJobs registers every periodic task
func (s *Scheduler) RegisterJobs() error {
	return s.registerOverdueScanJob()
}

// ================================================
// Overdue scan (default daily at 06:00 UTC)
// ================================================
func (s *Scheduler) registerOverdueScanJob() error {
	payload, err := json.Marshal(loanModel.ScanOverduePayload{})
	if err != nil {
		return err
	}

	task := asynq.NewTask(shared.TypeScanOverdueLoans, payload)

	_, err = s.scheduler.Register(
		s.loanCfg.OverdueScanCron,
		task,
		asynq.Queue(shared.QueueLoan),
		asynq.MaxRetry(1),
		asynq.Timeout(5*time.Minute),
	)
	if err != nil {
		logger.Error("Failed to register OverdueScan job", err)
		return err
	}

	logger.Info("Registered OverdueScan", map[string]interface{}{
		"cron": s.loanCfg.OverdueScanCron,
	})
	return nil
}

func (s *Scheduler) Start() error {
	return s.scheduler.Start()
}

func (s *Scheduler) Shutdown() {
	s.scheduler.Shutdown()
}

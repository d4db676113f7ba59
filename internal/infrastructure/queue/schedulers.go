package queue

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"

	"bookmarket-backend/internal/config"
	"bookmarket-backend/internal/shared"
	"bookmarket-backend/pkg/logger"
)

type Scheduler struct {
	scheduler *asynq.Scheduler
	jobConfig config.JobConfig
}

func NewScheduler(opt asynq.RedisClientOpt, jobConfig config.JobConfig) *Scheduler {
	scheduler := asynq.NewScheduler(
		opt,
		&asynq.SchedulerOpts{
			Location: time.UTC,
			LogLevel: asynq.InfoLevel,
		},
	)

	return &Scheduler{
		scheduler: scheduler,
		jobConfig: jobConfig,
	}
}

func (s *Scheduler) RegisterJobs() error {
	return s.registerReconcileAverageCostJob()
}

// ================================================
// JOB: Reconcile contributor average cost (Daily at 3 AM UTC)
// ================================================
func (s *Scheduler) registerReconcileAverageCostJob() error {
	payload, err := json.Marshal(shared.ReconcileAverageCostPayload{})
	if err != nil {
		return err
	}

	task := asynq.NewTask(shared.TypeReconcileAverageCost, payload)

	_, err = s.scheduler.Register(
		s.jobConfig.ReconcileAverageCostCron,
		task,
		asynq.Queue(shared.QueueMaintenance),
		asynq.MaxRetry(1),
		asynq.Timeout(10*time.Minute),
	)
	if err != nil {
		logger.Error("Failed to register ReconcileAverageCost job", err)
		return err
	}

	logger.Info("Registered ReconcileAverageCost job", map[string]interface{}{
		"cron": s.jobConfig.ReconcileAverageCostCron,
	})
	return nil
}

// Start blocks until Shutdown is called.
func (s *Scheduler) Start() error {
	return s.scheduler.Run()
}

func (s *Scheduler) Shutdown() {
	s.scheduler.Shutdown()
}

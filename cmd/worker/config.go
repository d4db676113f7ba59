package main

import (
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"bookmarket-backend/internal/config"
	"bookmarket-backend/internal/infrastructure/queue"
)

// Config holds all configuration for the worker
type Config struct {
	Redis       asynq.RedisClientOpt
	Concurrency int
	Job         config.JobConfig
}

// loadConfig derives worker settings from the application config
func loadConfig(appCfg *config.Config) *Config {
	cfg := &Config{
		Redis:       queue.RedisOpt(appCfg.Redis.Host, appCfg.Redis.Password, appCfg.Redis.DB),
		Concurrency: 10,
		Job:         appCfg.Job,
	}

	log.Info().
		Str("redis", cfg.Redis.Addr).
		Str("reconcile_cron", cfg.Job.ReconcileAverageCostCron).
		Msg("[Config] worker configuration loaded")

	return cfg
}

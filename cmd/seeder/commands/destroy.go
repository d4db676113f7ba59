package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"bookmarket-backend/internal/config"
	contributorRepo "bookmarket-backend/internal/domains/contributor/repository"
	infraCache "bookmarket-backend/internal/infrastructure/cache"
	"bookmarket-backend/internal/infrastructure/database"
)

// destroyCmd wipes every table and the cached contributor reads
var destroyCmd = &cobra.Command{
	Use:   "destroy",
	Short: "Delete all data",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDestroy()
	},
}

func init() {
	rootCmd.AddCommand(destroyCmd)
}

func runDestroy() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return fmt.Errorf("load database config: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db := database.NewPostgresDB(dbConfig)
	if err := db.Connect(ctx); err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer db.Close()

	if err := database.Truncate(ctx, db.Pool); err != nil {
		return err
	}

	// Cache contributor cũ sẽ trả về record đã bị xóa nếu không dọn
	redisCache := infraCache.NewRedisCache(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if err := redisCache.Connect(ctx); err != nil {
		log.Warn().Err(err).Msg("redis unavailable, contributor cache not flushed")
	} else {
		defer redisCache.Close()
		if err := redisCache.DeletePattern(ctx, contributorRepo.CachePrefix+"*"); err != nil {
			log.Warn().Err(err).Msg("failed to flush contributor cache")
		}
	}

	fmt.Println("Data destroyed")
	return nil
}

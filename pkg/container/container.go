package container

import (
	"context"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"bookmarket-backend/internal/config"
	infraCache "bookmarket-backend/internal/infrastructure/cache"
	"bookmarket-backend/internal/infrastructure/database"
	"bookmarket-backend/internal/infrastructure/geocoder"
	"bookmarket-backend/internal/infrastructure/queue"
	"bookmarket-backend/internal/infrastructure/storage"
	"bookmarket-backend/pkg/cache"
	pkgdb "bookmarket-backend/pkg/database"
	"bookmarket-backend/pkg/jwt"
	"bookmarket-backend/pkg/logger"

	// User domain
	"bookmarket-backend/internal/domains/user"
	userHandler "bookmarket-backend/internal/domains/user/handler"
	userRepo "bookmarket-backend/internal/domains/user/repository"
	userService "bookmarket-backend/internal/domains/user/service"

	// Contributor domain
	contributorHandler "bookmarket-backend/internal/domains/contributor/handler"
	contributorRepo "bookmarket-backend/internal/domains/contributor/repository"
	contributorService "bookmarket-backend/internal/domains/contributor/service"

	// Book domain
	bookHandler "bookmarket-backend/internal/domains/book/handler"
	bookRepo "bookmarket-backend/internal/domains/book/repository"
	bookService "bookmarket-backend/internal/domains/book/service"

	// Review domain
	reviewHandler "bookmarket-backend/internal/domains/review/handler"
	reviewRepo "bookmarket-backend/internal/domains/review/repository"
	reviewService "bookmarket-backend/internal/domains/review/service"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container chứa TẤT CẢ dependencies của application
// Struct này là "root" của dependency graph
type Container struct {
	// ========================================
	// INFRASTRUCTURE LAYER
	// ========================================
	Config      *config.Config
	DB          *database.PostgresDB
	Cache       cache.Cache
	JWTManager  *jwt.Manager
	Transactor  *pkgdb.Transactor
	Storage     *storage.MinIOStorage
	Images      *storage.ImageProcessor
	Geocoder    geocoder.Geocoder
	AsynqClient *asynq.Client

	// ========================================
	// REPOSITORY LAYER (DATA ACCESS)
	// ========================================
	UserRepo        user.Repository
	ContributorRepo contributorRepo.ContributorRepository
	BookRepo        bookRepo.RepositoryInterface
	ReviewRepo      reviewRepo.ReviewRepository

	// ========================================
	// SERVICE LAYER (BUSINESS LOGIC)
	// ========================================
	UserService        user.Service
	ContributorService contributorService.ServiceInterface
	BookService        bookService.ServiceInterface
	ReviewService      reviewService.ServiceInterface
	AverageCost        *bookService.AverageCostRecalculator

	// ========================================
	// HANDLER LAYER (HTTP)
	// ========================================
	UserHandler        *userHandler.UserHandler
	ContributorHandler *contributorHandler.ContributorHandler
	BookHandler        *bookHandler.Handler
	ReviewHandler      *reviewHandler.ReviewHandler
}

// ========================================
// CONSTRUCTOR: BUILD CONTAINER
// ========================================

// NewContainer tạo và initialize toàn bộ dependency graph
//
// QUAN TRỌNG: Thứ tự initialization:
// 1. Config (không phụ thuộc gì)
// 2. Infrastructure (DB, Cache, MinIO, Geocoder, Queue) - phụ thuộc Config
// 3. Repositories - phụ thuộc Infrastructure
// 4. Services - phụ thuộc Repositories
// 5. Handlers - phụ thuộc Services
func NewContainer() (*Container, error) {
	c := &Container{}

	// ========================================
	// STEP 1: LOAD CONFIGURATION
	// ========================================
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	logger.Init(cfg.App.Environment, cfg.App.LogLevel)
	logger.Info("Initializing DI container", map[string]interface{}{
		"environment": cfg.App.Environment,
	})

	// ========================================
	// STEP 2: INITIALIZE DATABASE
	// ========================================
	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load database config: %w", err)
	}

	db := database.NewPostgresDB(dbConfig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.HealthCheck(ctx); err != nil {
		return nil, fmt.Errorf("database health check failed: %w", err)
	}
	if err := database.Migrate(ctx, db.Pool); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	c.DB = db
	c.Transactor = pkgdb.NewTransactor(db.Pool)

	// ========================================
	// STEP 3: INITIALIZE CACHE
	// ========================================
	redisCache := infraCache.NewRedisCache(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if err := redisCache.Connect(ctx); err != nil {
		// Redis failure không critical - cache/rate limit tự fail open
		logger.Warn("Redis connection failed (non-critical)", map[string]interface{}{
			"error": err.Error(),
		})
	}
	c.Cache = redisCache

	c.JWTManager = jwt.NewManager(cfg.JWT.Secret, time.Duration(cfg.JWT.ExpiryHours)*time.Hour)

	// ========================================
	// STEP 4: EXTERNAL SERVICES
	// ========================================
	c.Storage, err = storage.NewMinIOStorage(ctx, cfg.MinIO)
	if err != nil {
		return nil, fmt.Errorf("failed to init object storage: %w", err)
	}
	c.Images = storage.NewImageProcessor(cfg.Upload.MaxFileBytes)

	c.Geocoder = geocoder.NewCached(
		geocoder.NewMapQuest(cfg.Geocoder.APIKey, cfg.Geocoder.BaseURL, cfg.Geocoder.Timeout),
		c.Cache,
		cfg.Geocoder.CacheTTL,
	)

	c.AsynqClient = queue.NewClient(queue.RedisOpt(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB))

	// ========================================
	// STEP 5: REPOSITORIES → SERVICES → HANDLERS
	// ========================================
	c.initRepositories()
	c.initServices()
	c.initHandlers()

	logger.Info("DI container initialized", nil)
	return c, nil
}

// ========================================
// PRIVATE INITIALIZATION METHODS
// ========================================

func (c *Container) initRepositories() {
	pool := c.DB.Pool

	c.UserRepo = userRepo.NewPostgresRepository(pool)
	c.ContributorRepo = contributorRepo.NewPostgresContributorRepository(pool, c.Cache)
	c.BookRepo = bookRepo.NewPostgresRepository(pool)
	c.ReviewRepo = reviewRepo.NewPostgresReviewRepository(pool)
}

func (c *Container) initServices() {
	c.UserService = userService.NewUserService(c.UserRepo, c.JWTManager)

	// Cascade: contributor service xóa books qua BookRepo trong cùng transaction
	c.ContributorService = contributorService.NewContributorService(
		c.ContributorRepo,
		c.BookRepo,
		c.Transactor,
		c.Geocoder,
		c.Storage,
		c.Images,
		c.AsynqClient,
	)

	c.AverageCost = bookService.NewAverageCostRecalculator(c.BookRepo, c.ContributorRepo)
	c.BookService = bookService.NewService(c.BookRepo, c.ContributorRepo, c.Geocoder, c.AverageCost)

	c.ReviewService = reviewService.NewReviewService(c.ReviewRepo, c.ContributorRepo)
}

func (c *Container) initHandlers() {
	c.UserHandler = userHandler.NewUserHandler(c.UserService, c.Config.JWT.CookieName, c.Config.IsProduction())
	c.ContributorHandler = contributorHandler.NewContributorHandler(c.ContributorService, c.Config.Upload.MaxFileBytes)
	c.BookHandler = bookHandler.NewHandler(c.BookService)
	c.ReviewHandler = reviewHandler.NewReviewHandler(c.ReviewService)
}

// Cleanup dọn dẹp resources khi shutdown
func (c *Container) Cleanup() {
	if c.AsynqClient != nil {
		if err := c.AsynqClient.Close(); err != nil {
			logger.Error("Failed to close asynq client", err)
		}
	}

	if c.DB != nil {
		c.DB.Close()
	}

	if rc, ok := c.Cache.(*infraCache.RedisCache); ok {
		if err := rc.Close(); err != nil {
			logger.Error("Failed to close Redis", err)
		}
	}

	logger.Info("Container cleanup completed", nil)
}

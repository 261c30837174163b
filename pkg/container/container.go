package container

import (
	"context"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"library-backend/internal/config"
	infraCache "library-backend/internal/infrastructure/cache"
	"library-backend/internal/infrastructure/database"
	"library-backend/internal/infrastructure/queue"
	"library-backend/pkg/cache"
	pkgDatabase "library-backend/pkg/database"
	"library-backend/pkg/jwt"

	bookHandler "library-backend/internal/domains/book/handler"
	bookRepo "library-backend/internal/domains/book/repository"
	bookService "library-backend/internal/domains/book/service"
	loanHandler "library-backend/internal/domains/loan/handler"
	loanJob "library-backend/internal/domains/loan/job"
	loanModel "library-backend/internal/domains/loan/model"
	loanRepo "library-backend/internal/domains/loan/repository"
	loanService "library-backend/internal/domains/loan/service"
	memberHandler "library-backend/internal/domains/member/handler"
	memberRepo "library-backend/internal/domains/member/repository"
	memberService "library-backend/internal/domains/member/service"
)

// Container chứa TẤT CẢ dependencies của application.
// Thứ tự init: Config → Infrastructure → Repositories → Services → Handlers
type Container struct {
	// Infrastructure
	Config      *config.Config
	DB          *database.PostgresDB
	Cache       cache.Cache
	RedisCache  *infraCache.RedisCache
	JWTManager  *jwt.Manager
	AsynqClient *asynq.Client
	Transactor  pkgDatabase.Transactor

	// Repositories
	BookRepo   bookRepo.RepositoryInterface
	MemberRepo memberRepo.RepositoryInterface
	LoanRepo   loanRepo.RepositoryInterface

	// Services
	BookService   bookService.ServiceInterface
	MemberService memberService.ServiceInterface
	LoanService   *loanService.LoanService

	// Handlers
	BookHandler   *bookHandler.Handler
	MemberHandler *memberHandler.MemberHandler
	LoanHandler   *loanHandler.Handler
}

// NewContainer tạo và initialize toàn bộ dependency graph
func NewContainer() (*Container, error) {
	log.Info().Msg("Initializing DI container")

	c := &Container{}

	// STEP 1: CONFIG
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	log.Info().Str("environment", cfg.App.Environment).Msg("Config loaded")

	// STEP 2: DATABASE
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
	c.DB = db
	c.Transactor = pkgDatabase.NewPoolTransactor(db.Pool)

	// STEP 3: REDIS
	// Redis lỗi không critical: login throttle sẽ bị bỏ qua
	redisCache := infraCache.NewRedisCache(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if err := redisCache.Connect(ctx); err != nil {
		log.Warn().Err(err).Msg("Redis connection failed (non-critical)")
	}
	c.RedisCache = redisCache
	c.Cache = redisCache

	// STEP 4: JWT + ASYNQ CLIENT
	c.JWTManager = jwt.NewManager(cfg.JWT.Secret, cfg.JWT.AccessTokenTTL())
	c.AsynqClient = queue.NewClient(cfg.Redis)

	c.initRepositories()
	c.initServices()
	c.initHandlers()

	log.Info().Msg("DI container initialized")
	return c, nil
}

func (c *Container) initRepositories() {
	pool := c.DB.Pool

	c.BookRepo = bookRepo.NewPostgresRepository(pool)
	c.MemberRepo = memberRepo.NewPostgresRepository(pool)
	c.LoanRepo = loanRepo.NewPostgresRepository(pool)
}

func (c *Container) initServices() {
	cfg := c.Config

	c.BookService = bookService.NewService(c.BookRepo)

	// LoanRepo implement OverdueChecker cho policy no_open_overdue
	c.MemberService = memberService.NewService(
		c.MemberRepo,
		c.Cache,
		c.JWTManager,
		c.LoanRepo,
		memberService.Options{
			LiftPolicy:      cfg.Loan.LiftPolicy,
			MaxFailedLogins: cfg.Auth.MaxFailedLogins,
			LockoutWindow:   cfg.Auth.LockoutWindow,
			Location:        cfg.Loan.Location,
		},
	)

	c.LoanService = loanService.NewService(
		c.Transactor,
		c.LoanRepo,
		c.BookRepo,
		c.MemberRepo,
		loanJob.NewAsynqNotifier(c.AsynqClient),
		loanModel.Policy{
			PeriodDays: cfg.Loan.PeriodDays,
			FinePerDay: cfg.Loan.FinePerDay,
			Location:   cfg.Loan.Location,
		},
	)
}

func (c *Container) initHandlers() {
	c.BookHandler = bookHandler.NewHandler(c.BookService)
	c.MemberHandler = memberHandler.NewMemberHandler(c.MemberService)
	c.LoanHandler = loanHandler.NewHandler(c.LoanService)
}

// Cleanup dọn dẹp resources khi shutdown
func (c *Container) Cleanup() {
	log.Info().Msg("Cleaning up container resources")

	if c.AsynqClient != nil {
		if err := c.AsynqClient.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close asynq client")
		}
	}

	if c.RedisCache != nil {
		if err := c.RedisCache.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close Redis")
		}
	}

	if c.DB != nil {
		c.DB.Close()
	}

	log.Info().Msg("Container cleanup completed")
}

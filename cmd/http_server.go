package cmd

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	gormPostgres "gorm.io/driver/postgres"
	gormSqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/arifwid/blog-management/internal"
	"github.com/arifwid/blog-management/internal/article"
	articlePostgres "github.com/arifwid/blog-management/internal/article/postgres"
	"github.com/arifwid/blog-management/internal/auth"
	authPostgres "github.com/arifwid/blog-management/internal/auth/postgres"
	"github.com/arifwid/blog-management/internal/authority"
	"github.com/arifwid/blog-management/internal/category"
	categoryPostgres "github.com/arifwid/blog-management/internal/category/postgres"
	"github.com/arifwid/blog-management/internal/group"
	groupPostgres "github.com/arifwid/blog-management/internal/group/postgres"
	"github.com/arifwid/blog-management/internal/menu"
	"github.com/arifwid/blog-management/internal/mood"
	moodPostgres "github.com/arifwid/blog-management/internal/mood/postgres"
	"github.com/arifwid/blog-management/internal/record"
	"github.com/arifwid/blog-management/internal/tag"
	tagPostgres "github.com/arifwid/blog-management/internal/tag/postgres"
	"github.com/arifwid/blog-management/internal/transport"
	"github.com/arifwid/blog-management/internal/transport/rest"
	"github.com/arifwid/blog-management/internal/user"
	userPostgres "github.com/arifwid/blog-management/internal/user/postgres"
	"github.com/arifwid/blog-management/pkg/logger"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server that handles the back office and front APIs`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config      *internal.Config
	DB          *gorm.DB
	SQLDB       *sql.DB
	RedisClient *redis.Client
	Router      *chi.Mux
	Logger      *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:         addr,
		Handler:      deps.Router,
		ReadTimeout:  deps.Config.Server.ReadTimeout,
		WriteTimeout: deps.Config.Server.WriteTimeout,
		IdleTimeout:  deps.Config.Server.IdleTimeout,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		deps.Logger.Info("received signal, shutting down", "signal", sig.String())
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			deps.Logger.Error("server shutdown error", "error", err)
		}
		if err := deps.SQLDB.Close(); err != nil {
			deps.Logger.Error("database close error", "error", err)
		}
		if deps.RedisClient != nil {
			if err := deps.RedisClient.Close(); err != nil {
				deps.Logger.Error("redis close error", "error", err)
			}
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			deps.Logger.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}

	deps.Logger.Info("server stopped")
}

func initializeDependencies() (*Dependencies, error) {
	cfg, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(cfg.Logging.Level, cfg.Logging.Format)
	log := logger.L()

	db, sqlDB, err := initDB(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	var redisClient *redis.Client
	var visits article.VisitCounter = article.NoopVisitCounter{}
	if cfg.Redis.Enabled {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		visits = article.NewRedisVisitCounter(redisClient)
	}

	tree, err := authority.Load(cfg.Authority.File)
	if err != nil {
		return nil, fmt.Errorf("failed to load authority config: %w", err)
	}
	index := authority.BuildIndex(tree)

	records, err := record.Load(cfg.RecordsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load records file: %w", err)
	}

	codec := auth.NewTokenCodec(cfg.Security.TokenSecret, cfg.Security.TokenValidity())

	authRepo := authPostgres.NewRepository(db)
	authService := auth.NewService(authRepo, codec, log)
	gate := auth.NewGate(index, codec, authRepo, log)

	userService := user.NewService(userPostgres.NewUserRepository(db), log)
	groupService := group.NewService(groupPostgres.NewGroupRepository(db), log)
	tagService := tag.NewService(tagPostgres.NewTagRepository(db), log)
	categoryService := category.NewService(categoryPostgres.NewCategoryRepository(db), log)
	articleService := article.NewService(
		articlePostgres.NewArticleRepository(db),
		tagService, categoryService, visits, log)
	moodService := mood.NewService(moodPostgres.NewMoodRepository(db), log)

	base := transport.NewBaseHandler(log)
	handlers := rest.Handlers{
		Auth:     auth.NewHandler(base, authService),
		Menu:     menu.NewHandler(base, tree, authService),
		User:     user.NewHandler(base, userService),
		Group:    group.NewHandler(base, groupService),
		Article:  article.NewHandler(base, articleService),
		Category: category.NewHandler(base, categoryService),
		Tag:      tag.NewHandler(base, tagService),
		Mood:     mood.NewHandler(base, moodService),
		Record:   record.NewHandler(base, records),
	}

	openAPIPath := cfg.OpenAPISource
	if openAPIPath == "" {
		openAPIPath = "./api/openapi.yml"
	}

	router := chi.NewRouter()
	rest.RegisterAllRoutes(router, sqlDB, redisClient, gate, handlers, openAPIPath, log)

	return &Dependencies{
		Config:      cfg,
		DB:          db,
		SQLDB:       sqlDB,
		RedisClient: redisClient,
		Router:      router,
		Logger:      log,
	}, nil
}

// initDB opens the configured database and hands back both the gorm
// handle and the underlying *sql.DB for lifecycle management.
func initDB(cfg internal.DatabaseConfig) (*gorm.DB, *sql.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case "postgres":
		conn, err := sqlx.Connect("pgx", cfg.Source)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open db connection: %w", err)
		}
		dialector = gormPostgres.New(gormPostgres.Config{Conn: conn.DB})
	case "sqlite":
		dialector = gormSqlite.Open(cfg.Source)
	default:
		return nil, nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open gorm session: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to unwrap sql db: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, sqlDB, nil
}

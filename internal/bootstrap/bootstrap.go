package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	appControllers "github.com/pradipta/banksoal/internal/app/controllers"
	appMigrations "github.com/pradipta/banksoal/internal/app/migrations"
	appRepos "github.com/pradipta/banksoal/internal/app/repositories"
	appRoutes "github.com/pradipta/banksoal/internal/app/routes"
	appServices "github.com/pradipta/banksoal/internal/app/services"
	"github.com/pradipta/banksoal/internal/config"
	"github.com/pradipta/banksoal/internal/db"
	appMiddleware "github.com/pradipta/banksoal/internal/middleware"
	pkgAuth "github.com/pradipta/banksoal/internal/pkg/auth"
	"github.com/pradipta/banksoal/internal/pkg/docconv"
	"github.com/pradipta/banksoal/internal/pkg/filestorage"
	"github.com/pradipta/banksoal/internal/pkg/logger"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	QuestionSetService    appServices.QuestionSetService
	DocumentService       appServices.DocumentService
	BundleService         appServices.BundleService
	QuestionSetController *appControllers.QuestionSetController
	DocumentController    *appControllers.DocumentController
	AuthMiddleware        *appMiddleware.AuthMiddleware
	Repos                 *appRepos.Repositories
	JWTService            *pkgAuth.JWTService
	Logger                zerolog.Logger
	FileStorage           *filestorage.LocalStorage
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection and runs migrations.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := dbPool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		dbPool.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	lgr.Info().Msg("Database migrations successfully applied.")
	return dbPool, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	var err error
	deps.FileStorage, err = filestorage.NewLocalStorage(cfg.Server.StoragePath)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize file storage")
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: cfg.AccessTokenExp(),
		TokenIssuer:    cfg.JWT.Issuer,
	})

	converter := docconv.NewSofficeConverter(cfg.Convert.Binary, cfg.ConvertTimeout())

	normalizer := appServices.NewNormalizer(deps.FileStorage, converter, appServices.TextLayout{
		CharsPerLine: cfg.PDF.CharsPerLine,
		FontSize:     cfg.PDF.FontSize,
		MarginMM:     cfg.PDF.MarginMM,
		LineHeightMM: cfg.PDF.LineHeightMM,
	}, logger.WithComponent("normalizer"))
	merger := appServices.NewMerger(logger.WithComponent("merger"))

	deps.QuestionSetService = appServices.NewQuestionSetService(
		deps.Repos.QuestionSetRepository,
		deps.Repos.QuestionFileRepository,
		deps.FileStorage,
		logger.WithComponent("questionsets"),
	)
	deps.DocumentService = appServices.NewDocumentService(
		deps.Repos.QuestionFileRepository,
		normalizer,
		merger,
		logger.WithComponent("documents"),
	)
	deps.BundleService = appServices.NewBundleService(
		deps.Repos.QuestionFileRepository,
		deps.Repos.QuestionSetRepository,
		deps.FileStorage,
		normalizer,
		merger,
		logger.WithComponent("bundles"),
	)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.QuestionSetController = appControllers.NewQuestionSetController(deps.QuestionSetService)
	deps.DocumentController = appControllers.NewDocumentController(deps.DocumentService, deps.BundleService)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.Default()

	// Setup Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json"), ginSwagger.DefaultModelsExpandDepth(1)))

	appRoutes.SetupRouter(router,
		deps.QuestionSetController,
		deps.DocumentController,
		deps.AuthMiddleware,
	)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}

package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"

	"github.com/liveminutes-team/liveminutes/internal/adapter/handler"
	"github.com/liveminutes-team/liveminutes/internal/adapter/repository"
	"github.com/liveminutes-team/liveminutes/internal/infrastructure/cache"
	"github.com/liveminutes-team/liveminutes/internal/infrastructure/database"
	"github.com/liveminutes-team/liveminutes/internal/infrastructure/storage"
	"github.com/liveminutes-team/liveminutes/internal/usecase/live"
	pkgai "github.com/liveminutes-team/liveminutes/pkg/ai"
	"github.com/liveminutes-team/liveminutes/pkg/config"
	"github.com/liveminutes-team/liveminutes/pkg/transcode"
	pkgvalidator "github.com/liveminutes-team/liveminutes/pkg/validator"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize Echo instance
	e := echo.New()
	e.Validator = pkgvalidator.New()
	e.HideBanner = true
	e.HidePort = false

	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339} | ${status} | ${method} ${uri} | ${latency_human}\n",
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodDelete},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
	}))

	log.Println("🔧 Initializing dependencies...")

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Initialize Database
	log.Println("📦 Connecting to database...")
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.CloseDB(db)

	// Run AutoMigrate only when explicitly enabled in config.
	// Production deployments should manage schema via sql-migrate.
	if cfg.Database.AutoMigrate {
		if cfg.Server.Environment == "production" {
			log.Fatalf("AutoMigrate is enabled in production. Disable DB_AUTO_MIGRATE or manage schema with sql-migrate.")
		}
		log.Println("🔄 Running GORM AutoMigrate (development only) ...")
		if err := database.AutoMigrate(db); err != nil {
			log.Fatalf("Failed to run AutoMigrate: %v", err)
		}
	} else {
		log.Println("🔄 Skipping GORM AutoMigrate; use sql-migrate for schema migrations in CI/CD/production")
	}

	// Initialize Redis (optional): mirrors live events across instances.
	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		log.Println("📦 Connecting to Redis...")
		redisClient, err = cache.NewRedisClient(cfg)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisClient.Close()
	} else {
		log.Println("📦 Redis disabled; live events stay in-process")
	}

	// Initialize repositories
	log.Println("⚙️  Initializing repositories...")
	meetingRepo := repository.NewMeetingRepository(db)
	transcriptRepo := repository.NewTranscriptRepository(db)
	summaryRepo := repository.NewSummaryRepository(db)
	aiRepo := repository.NewAIRepository(db)

	// Initialize AI engines
	log.Println("🤖 Initializing AI engines...")
	var sttEngine live.TranscriptionEngine
	switch cfg.Live.STTProvider {
	case "assemblyai":
		sttEngine = pkgai.NewAssemblyAIEngine(&cfg.Assembly)
		log.Println("🎙️ Using AssemblyAI for transcription")
	default:
		sttEngine = pkgai.NewWhisperClient(&cfg.OpenAI)
		log.Println("🎙️ Using Whisper for transcription")
	}
	chatClient := pkgai.NewChatClient(&cfg.OpenAI)

	// Audio transcoder
	transcoder := transcode.NewFFmpeg()
	if err := transcoder.Available(); err != nil {
		log.Printf("⚠️  %v; audio segments will fail to convert", err)
	}

	// Segment archive (optional)
	var archiver live.SegmentArchiver
	if cfg.Storage.Enabled {
		log.Println("🗄️ Connecting to object storage...")
		minioClient, err := storage.NewMinIOClient(&cfg.Storage)
		if err != nil {
			log.Fatalf("Failed to connect to object storage: %v", err)
		}
		archiver = minioClient
	} else {
		log.Println("🗄️ Segment archive disabled")
	}

	// Live session infrastructure
	log.Println("📡 Initializing live session manager...")
	hub := live.NewHub(redisClient, logger)
	pipeline := live.NewPipeline(transcoder, sttEngine, cfg.Live.DefaultLanguage, cfg.Live.DenylistPhrases, logger)
	sessions := live.NewManager(live.CoordinatorDeps{
		Meetings:    meetingRepo,
		Transcripts: transcriptRepo,
		Summaries:   summaryRepo,
		AI:          aiRepo,
		Pipeline:    pipeline,
		Generator:   chatClient,
		Archiver:    archiver,
		Hub:         hub,
		Config:      cfg.Live,
		Logger:      logger,
	})
	defer sessions.Close()

	// Handlers and routes
	log.Println("🛣️  Setting up routes...")
	meetingHandler := handler.NewMeetingHandler(meetingRepo, transcriptRepo, summaryRepo, aiRepo, sessions, logger)
	liveHandler := handler.NewLiveHandler(sessions, hub, logger)
	router := handler.NewRouter(cfg, meetingHandler, liveHandler)
	router.Setup(e)

	// Start server
	go func() {
		addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
		log.Printf("🚀 Starting server on %s", addr)
		log.Printf("📝 Environment: %s", cfg.Server.Environment)
		log.Printf("🔗 Health check: http://%s/health", addr)

		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %v", err)
	}

	log.Println("✅ Server stopped gracefully")
}

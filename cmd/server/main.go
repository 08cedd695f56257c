package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"mockview/internal/analyzer"
	"mockview/internal/cache"
	"mockview/internal/config"
	"mockview/internal/genai"
	"mockview/internal/hf"
	"mockview/internal/media"
	"mockview/internal/parser"
	"mockview/internal/repository"
	"mockview/internal/scorer"
	"mockview/internal/service"
	"mockview/internal/transport/rest"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	logger, err := newLogger()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cfg := config.Load()
	aiCfg := config.DefaultAIConfig()

	logger.Info("starting server",
		zap.String("mongo_db", cfg.MongoDB),
		zap.String("port", cfg.HTTPPort),
		zap.Bool("generation_enabled", aiCfg.GenerationEnabled()),
		zap.Bool("similarity_enabled", aiCfg.SimilarityEnabled()))

	ctx := context.Background()

	// MongoDB connection
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		logger.Fatal("failed to connect to MongoDB", zap.Error(err))
	}
	defer mongoClient.Disconnect(ctx)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := mongoClient.Ping(pingCtx, nil); err != nil {
		logger.Fatal("failed to ping MongoDB", zap.Error(err))
	}
	logger.Info("connected to MongoDB")

	// Redis connection
	redisAddr := strings.TrimPrefix(cfg.RedisAddr, "redis://")
	rdb := redis.NewClient(&redis.Options{Addr: redisAddr})
	defer rdb.Close()

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		logger.Fatal("failed to ping Redis", zap.Error(err))
	}
	logger.Info("connected to Redis")

	// Repositories
	interviewRepo := repository.NewInterviewRepository(mongoClient, cfg.MongoDB)
	sessionRepo := repository.NewSessionRepository(mongoClient, cfg.MongoDB)

	// Caches
	reportCache := cache.NewReportCache(rdb)
	analysisLock := cache.NewAnalysisLock(rdb)

	// External AI clients
	generator := genai.NewClient(aiCfg, logger)
	similarity := hf.NewSimilarityClient(aiCfg, logger)
	classifier := hf.NewEmotionClassifier(aiCfg, logger)

	// Core pipeline. Recording decode is a deployment capability; without
	// a pipeline the sampler yields neutral media metrics.
	answerScorer := scorer.New(similarity, logger)
	responseParser := parser.New(logger)
	sampler := media.NewSampler(media.NoPipelineOpener{}, classifier, logger)
	sessionAnalyzer := analyzer.New(sampler, logger)

	// Services
	interviewSvc := service.NewInterviewService(interviewRepo, logger)
	questionSvc := service.NewQuestionService(generator, genai.BuildPrompt, responseParser, logger)
	sessionSvc := service.NewSessionService(sessionRepo, interviewRepo, answerScorer, logger)
	analysisSvc := service.NewAnalysisService(sessionRepo, sessionAnalyzer, reportCache, analysisLock, logger)

	router := rest.NewRouter(&rest.Container{
		InterviewService: interviewSvc,
		QuestionService:  questionSvc,
		SessionService:   sessionSvc,
		AnalysisService:  analysisSvc,
		Logger:           logger,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: router,
	}

	go func() {
		logger.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	// Graceful shutdown on SIGINT/SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(ctx, 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", zap.Error(err))
	}
	logger.Info("server stopped")
}

func newLogger() (*zap.Logger, error) {
	if os.Getenv("APP_ENV") == "development" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

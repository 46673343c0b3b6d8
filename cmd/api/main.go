package main

import (
	"context"
	"net/http"
	"os"
	"strings"
	"time"

	v1 "go-leadline/cmd/api/router/v1"
	cacheAdapter "go-leadline/internal/infrastructure/cache/adapter"
	cacheport "go-leadline/internal/infrastructure/cache/port"
	"go-leadline/internal/infrastructure/database"
	queueAdapter "go-leadline/internal/infrastructure/queue/adapter"
	qport "go-leadline/internal/infrastructure/queue/port"
	"go-leadline/internal/infrastructure/realtime"
	inbox "go-leadline/internal/pkg/inbox/application/domain"
	"go-leadline/internal/pkg/inbox/application/task"
	repoAdapter "go-leadline/internal/pkg/inbox/persistence/repository/adapter"
	repository "go-leadline/internal/pkg/inbox/persistence/repository/port"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func initLogger() {
	if lvl, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL")); err == nil {
		logrus.SetLevel(lvl)
	}
	if strings.EqualFold(os.Getenv("LOG_FORMAT"), "json") {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}
}

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		logrus.WithError(err).Warn(".env file not found or could not be loaded")
	}

	initLogger()

	linkPolicy, err := inbox.ParseLinkPolicy(os.Getenv("LEAD_LINK_POLICY"))
	if err != nil {
		logrus.WithError(err).Warn("falling back to first-wins link policy")
	}
	linker := inbox.LeadLinker{Policy: linkPolicy}

	// The live inbox is in-process; collaborators below are optional add-ons.
	store := repoAdapter.NewMemoryConversationRepository()
	hub := realtime.NewHub()
	defer hub.Close()

	// Lead archive needs Postgres; skip it when DB_URL is absent.
	var pool *pgxpool.Pool
	var archive repository.LeadArchive
	if os.Getenv("DB_URL") != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		pool, err = database.NewPoolFromEnv(ctx)
		cancel()
		if err != nil {
			logrus.Fatalf("failed to connect to database: %v", err)
		}
		defer pool.Close()
		archive = repoAdapter.NewPgLeadArchive(pool)
	} else {
		logrus.Warn("DB_URL not set; lead archival disabled")
	}

	// Queue and report cache need Redis; skip both when REDIS_URL is absent.
	var q qport.Client
	var cache cacheport.Cache
	if os.Getenv("REDIS_URL") != "" {
		client, err := queueAdapter.NewAsynqClientFromEnv()
		if err != nil {
			logrus.Fatalf("failed to create queue client: %v", err)
		}
		defer client.Close()
		q = client

		redisCache, err := cacheAdapter.NewRedisAdapter()
		if err != nil {
			logrus.Fatalf("failed to connect to redis: %v", err)
		}
		defer redisCache.Close()
		cache = redisCache

		srv, err := queueAdapter.NewAsynqServer()
		if err != nil {
			logrus.Fatalf("failed to create queue server: %v", err)
		}
		task.RegisterExportLeadsTask(srv, store, cache)
		if pool != nil {
			task.RegisterArchiveLeadTask(srv, pool)
		}

		workerCtx, stopWorkers := context.WithCancel(context.Background())
		defer stopWorkers()
		go func() {
			if err := srv.Run(workerCtx); err != nil {
				logrus.WithError(err).Error("queue server stopped")
			}
		}()
	} else {
		logrus.Warn("REDIS_URL not set; background jobs and reports disabled")
	}

	r := gin.Default()

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "OK",
		})
	})

	v1.RegisterRoutes(r, store, linker, hub, q, cache, archive)

	// Start HTTP server (blocks until shutdown)
	_ = r.Run()
}

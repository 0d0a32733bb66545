package main

import (
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/robfig/cron"

	config "github.com/creatorflow/creatorflow-api/configs"
	"github.com/creatorflow/creatorflow-api/internal/api/handlers"
	"github.com/creatorflow/creatorflow-api/internal/api/middleware"
	"github.com/creatorflow/creatorflow-api/internal/credentials"
	job "github.com/creatorflow/creatorflow-api/internal/jobs"
	"github.com/creatorflow/creatorflow-api/internal/publisher"
	"github.com/creatorflow/creatorflow-api/internal/publishing"
	"github.com/creatorflow/creatorflow-api/internal/queue"
	"github.com/creatorflow/creatorflow-api/internal/repository"
	"github.com/creatorflow/creatorflow-api/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Failed to load environment variables", err)
	}

	cfg := config.LoadConfig()

	db, err := sql.Open("postgres", cfg.PostgresURI)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer closeDB(db)

	if err := db.Ping(); err != nil {
		log.Fatalf("Database is unreachable: %v", err)
	}

	redisConn := asynq.RedisClientOpt{Addr: cfg.RedisURI}
	client := asynq.NewClient(redisConn)
	defer client.Close()

	app := fiber.New(fiber.Config{
		ReadTimeout:  10 * time.Minute,
		WriteTimeout: 10 * time.Minute,
		BodyLimit:    100 * 1024 * 1024, // 100 MB
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			log.Printf("Error: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		},
	})

	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOriginsFunc: func(origin string) bool {
			return true
		},
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           3600,
	}))

	postRepo := repository.NewPostRepository(db)
	socialAccountRepo := repository.NewSocialAccountRepository(db)
	postMediaRepo := repository.NewPostMediaRepository(db)
	mediaAssetRepo := repository.NewMediaAssetRepository(db)
	postingHistoryRepo := repository.NewPostingHistoryRepository(db)
	apiKeyRepository := repository.NewApiKeyRepository(db)

	r2Service := service.NewR2Service(cfg)
	postService := service.NewPostService(db, postRepo, mediaAssetRepo, postMediaRepo, r2Service)
	accountService := service.NewAccountService(socialAccountRepo)
	apiKeyService := service.NewApiKeyService(apiKeyRepository)

	httpClient := &http.Client{Timeout: cfg.PublishTimeout}
	resolver := credentials.NewResolver(cfg, socialAccountRepo)
	registry := publisher.NewDefaultRegistry(cfg, httpClient)

	publishingService := publishing.NewService(
		postRepo,
		socialAccountRepo,
		postMediaRepo,
		postingHistoryRepo,
		registry,
		resolver,
		cfg.PublishTimeout,
	)

	authMiddleware := middleware.NewAuthMiddleware(*cfg, apiKeyService)

	api := app.Group("/api")
	api.Use(authMiddleware.AuthMiddleware())

	apiKeys := handlers.NewApiKeyHandler(apiKeyService)
	api.Post("/api_key/new", apiKeys.CreateApiKey)
	api.Get("/api_key/list", apiKeys.ListKeys)
	api.Post("/api_key/remove", apiKeys.RemoveAPIKey)

	post := handlers.NewPostHandler(postService, publishingService, client)
	api.Post("/posts/create", post.CreatePost)
	api.Get("/posts", post.ListPosts)
	api.Post("/posts/publish", post.PublishPost)
	api.Post("/posts/schedule", post.SchedulePost)
	api.Post("/posts/cancel", post.CancelPost)
	api.Post("/posts/remove", post.RemovePost)

	account := handlers.NewAccountHandler(accountService)
	api.Get("/accounts", account.ListAccounts)
	api.Post("/accounts/remove", account.RemoveAccount)

	// cron jobs
	refreshTokenJob := job.NewTokenRefreshJob(socialAccountRepo, resolver)
	publishDueJob := job.NewPublishDueJob(postRepo, client)

	// queue
	queueW := queue.NewQueue(publishingService)

	c := cron.New()
	c.AddFunc("@every 00h10m00s", refreshTokenJob.RefreshTokens)
	c.AddFunc("@every 00h01m00s", publishDueJob.EnqueueDuePosts)
	c.Start()

	go func() {
		server := asynq.NewServer(redisConn, asynq.Config{
			Concurrency: 10,
		})

		mux := asynq.NewServeMux()
		mux.HandleFunc(queue.TaskTypePublishPost, queueW.HandlePublishPostTask)

		log.Println("Starting the Asynq server...")
		if err := server.Run(mux); err != nil {
			log.Fatalf("Could not start Asynq server: %v", err)
		}
	}()

	go func() {
		if err := app.Listen(":3000"); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()
	log.Println("Server is running on http://localhost:3000")

	gracefulShutdown(app, db)
}

func closeDB(db *sql.DB) {
	fmt.Fprint(os.Stdout, "Closing database connection... ")
	if err := db.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to close database: %v", err)
		return
	}
	fmt.Fprintln(os.Stdout, "Done")
}

func gracefulShutdown(app *fiber.App, db *sql.DB) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Fatalf("Failed to shut down server: %v", err)
	}

	closeDB(db)
	log.Println("Server shutdown complete.")
}

package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mentorlink/mentorlink-backend/database"
	"github.com/mentorlink/mentorlink-backend/internal/config"
	"github.com/mentorlink/mentorlink-backend/internal/handlers"
	"github.com/mentorlink/mentorlink-backend/internal/jobs"
	"github.com/mentorlink/mentorlink-backend/internal/routes"
	"github.com/mentorlink/mentorlink-backend/internal/services"
	"github.com/mentorlink/mentorlink-backend/internal/storage"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	// Storage
	var store storage.Store
	if cfg.UseMemoryStore {
		log.Warn().Msg("using in-memory storage (not for production)")
		store = storage.NewMemoryStore()
	} else {
		db, err := database.Connect(cfg)
		if err != nil {
			log.Fatal().Err(err).Msg("database setup failed")
		}
		store = storage.NewDatabaseStore(db)
	}

	// External gateways
	sms := services.NewSMSService(cfg.Twilio.AccountSID, cfg.Twilio.AuthToken, cfg.Twilio.FromNumber)
	notifier := services.NewGatewayNotifier(cfg.Push.URL, cfg.Push.APIKey, cfg.Email.URL, cfg.Email.APIKey, cfg.Email.FromEmail)
	feed := services.NewHTTPFeedClient(cfg.Feed.URL, cfg.Feed.APIKey)
	gateway := services.NewHTTPPaymentGateway(cfg.Gateway.URL, cfg.Gateway.APIKey)

	// Dispatch queue: RabbitMQ when configured, in-process otherwise.
	var queue jobs.Queue
	if cfg.AMQP.URL != "" {
		amqpQueue, err := jobs.NewAMQPQueue(cfg.AMQP.URL, cfg.AMQP.QueueName)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to RabbitMQ")
		}
		queue = amqpQueue
		log.Info().Str("queue", cfg.AMQP.QueueName).Msg("using RabbitMQ dispatch queue")
	} else {
		queue = jobs.NewChannelQueue(256)
		log.Info().Msg("using in-process dispatch queue")
	}

	// Services
	dispatcher := services.NewDispatcher(store, notifier)
	billing := services.NewBillingService(store, gateway)
	sessionService := services.NewSessionService(store, services.LocalCallProvider{}, queue, billing)
	contentService := services.NewContentService(store, feed)
	searchService := services.NewSearchService(store, services.SearchConfig{
		RandomMinRating:  cfg.Search.RandomMinRating,
		RandomMinRatings: cfg.Search.RandomMinRatings,
		RandomLimit:      cfg.Search.RandomLimit,
	})

	// Background workers
	worker := jobs.NewWorker(queue, cfg.QueueWorkers, func(job jobs.DispatchJob) {
		if err := dispatcher.Dispatch(job.ActivityID, job.NotificationID); err != nil {
			log.Error().Err(err).Uint("activity_id", job.ActivityID).Msg("dispatch job failed")
		}
	})
	worker.Start()

	scheduler := jobs.NewScheduler(store, sms)
	scheduler.Start()

	// HTTP server
	app := fiber.New(fiber.Config{
		AppName: cfg.AppName + " v" + cfg.Version,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"errors": fiber.Map{"code": "ERR_INTERNAL", "message": err.Error()},
			})
		},
	})

	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, PATCH, DELETE, OPTIONS",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "healthy", "version": cfg.Version})
	})

	routes.Setup(app, cfg, &routes.Handlers{
		Auth:          handlers.NewAuthHandler(store, cfg),
		Experts:       handlers.NewExpertHandler(store),
		Sessions:      handlers.NewSessionHandler(sessionService, store),
		Devices:       handlers.NewDeviceHandler(store),
		Notifications: handlers.NewNotificationHandler(store),
		Payments:      handlers.NewPaymentHandler(billing),
		Media:         handlers.NewMediaHandler(store),
		Content:       handlers.NewContentHandler(contentService),
		Search:        handlers.NewSearchHandler(searchService),
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-quit
		log.Info().Msg("shutting down")
		scheduler.Stop()
		worker.Stop()
		_ = queue.Close()
		_ = app.Shutdown()
	}()

	log.Info().Str("port", cfg.Port).Str("version", cfg.Version).Msg("mentorlink backend starting")
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

package main

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/joho/godotenv"

	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/satmoko/studio-backend/internal/config"
	"github.com/satmoko/studio-backend/internal/handler"
	"github.com/satmoko/studio-backend/internal/middleware"
	"github.com/satmoko/studio-backend/internal/repository"
	"github.com/satmoko/studio-backend/internal/service"
	"github.com/satmoko/studio-backend/pkg/database"
	"github.com/satmoko/studio-backend/pkg/email"
	"github.com/satmoko/studio-backend/pkg/jwt"
	"github.com/satmoko/studio-backend/pkg/logger"
	"github.com/satmoko/studio-backend/pkg/notify"
	"github.com/satmoko/studio-backend/pkg/payment"
	"github.com/satmoko/studio-backend/pkg/storage"
	"github.com/satmoko/studio-backend/pkg/utils"
	"go.uber.org/zap"
)

func main() {
	// .env is a development convenience; deployed environments set
	// real variables and config.Load validates them.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	zapLogger, err := logger.New(cfg.Environment)
	if err != nil {
		log.Fatal(err)
	}
	defer zapLogger.Sync()

	db, err := database.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		zapLogger.Fatal("database init failed", zap.Error(err))
	}

	// Repositories
	memberRepo := repository.NewMemberRepository(db)
	orderRepo := repository.NewPaymentOrderRepository(db)
	topupRepo := repository.NewTopupRepository(db)
	messageRepo := repository.NewMessageRepository(db)

	// Receipt storage is optional; without it topups fall back to
	// caller-provided receipt URLs.
	var receipts storage.ReceiptStorage
	s3cfg := storage.Config{
		Endpoint:        cfg.S3.Endpoint,
		Region:          cfg.S3.Region,
		AccessKeyID:     cfg.S3.AccessKeyID,
		SecretAccessKey: cfg.S3.SecretAccessKey,
		Bucket:          cfg.S3.Bucket,
		PublicURL:       cfg.S3.PublicURL,
	}
	if s3cfg.Enabled() {
		s3Storage, err := storage.NewS3Storage(s3cfg)
		if err != nil {
			zapLogger.Fatal("receipt storage init failed", zap.Error(err))
		}
		receipts = s3Storage
	}

	emailService := email.NewService(cfg.Email.ResendAPIKey, cfg.Email.FromAddress, cfg.Email.FromName, zapLogger)
	notifier := notify.New(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
	tokens := jwt.NewTokenManager(cfg.JWTSecret)
	gateway := payment.NewClient(cfg.Midtrans.ServerKey)

	// Services
	authService := service.NewAuthService(memberRepo, emailService, tokens, zapLogger)
	ledgerService := service.NewLedgerService(memberRepo, cfg.AdminEmails, zapLogger)
	paymentService := service.NewPaymentService(db, gateway, memberRepo, orderRepo, notifier, emailService, cfg.Midtrans.ServerKey, zapLogger)
	topupService := service.NewTopupService(db, topupRepo, memberRepo, receipts, notifier, emailService, zapLogger)
	presenceService := service.NewPresenceService(memberRepo, cfg.PresenceWindow, zapLogger)
	messageService := service.NewMessageService(messageRepo, memberRepo)

	validator := utils.NewValidator()

	// Handlers
	authHandler := handler.NewAuthHandler(authService, validator)
	creditHandler := handler.NewCreditHandler(ledgerService, validator)
	paymentHandler := handler.NewPaymentHandler(paymentService, validator, zapLogger)
	topupHandler := handler.NewTopupHandler(topupService, validator)
	presenceHandler := handler.NewPresenceHandler(presenceService)
	messageHandler := handler.NewMessageHandler(messageService, notifier, validator)

	// Router
	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, DELETE",
		AllowCredentials: true,
	}))
	app.Use(fiberlogger.New())
	app.Use(limiter.New(limiter.Config{
		Max:        60,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
	}))

	api := app.Group("/api")

	// Public routes
	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)

	api.Get("/plans", paymentHandler.GetPlans)

	// Payment provider webhook (public)
	api.Post("/payments/notification", paymentHandler.HandleNotification)

	// Protected routes
	api.Use(middleware.AuthMiddleware(tokens))
	{
		user := api.Group("/user")
		user.Get("/profile", authHandler.GetProfile)

		credits := api.Group("/credits")
		credits.Get("/balance", creditHandler.GetBalance)
		credits.Post("/deduct", creditHandler.Deduct)

		payments := api.Group("/payments")
		payments.Post("/checkout", paymentHandler.Checkout)
		payments.Get("/history", paymentHandler.GetHistory)

		topups := api.Group("/topups")
		topups.Post("/", topupHandler.Create)
		topups.Get("/mine", topupHandler.ListMine)

		presence := api.Group("/presence")
		presence.Post("/heartbeat", presenceHandler.Heartbeat)
		presence.Get("/:email", presenceHandler.Get)

		messages := api.Group("/messages")
		messages.Post("/", messageHandler.Send)
		messages.Get("/", messageHandler.GetPartners)
		messages.Get("/:email", messageHandler.GetConversation)

		// Admin routes
		admin := api.Group("/", middleware.AdminMiddleware(ledgerService.IsAdmin))
		admin.Get("/topups", topupHandler.ListPending)
		admin.Post("/topups/:tid/approve", topupHandler.Approve)
		admin.Post("/topups/:tid/reject", topupHandler.Reject)
		admin.Post("/notify", messageHandler.Relay)
	}

	zapLogger.Info("listening", zap.String("port", cfg.Port))
	log.Fatal(app.Listen(":" + cfg.Port))
}

package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"

	"github.com/MuhamadAgungGumelar/venue-assistant/internal/core/auth"
	"github.com/MuhamadAgungGumelar/venue-assistant/internal/core/email"
	"github.com/MuhamadAgungGumelar/venue-assistant/internal/core/export"
	"github.com/MuhamadAgungGumelar/venue-assistant/internal/core/filestore"
	"github.com/MuhamadAgungGumelar/venue-assistant/internal/core/llm"
	"github.com/MuhamadAgungGumelar/venue-assistant/internal/core/notification"
	"github.com/MuhamadAgungGumelar/venue-assistant/internal/core/scheduler"
	"github.com/MuhamadAgungGumelar/venue-assistant/internal/core/upload"
	"github.com/MuhamadAgungGumelar/venue-assistant/internal/modules/venue/handlers"
	"github.com/MuhamadAgungGumelar/venue-assistant/internal/modules/venue/repositories"
	"github.com/MuhamadAgungGumelar/venue-assistant/internal/modules/venue/services"
	"github.com/MuhamadAgungGumelar/venue-assistant/internal/shared/config"
	"github.com/MuhamadAgungGumelar/venue-assistant/internal/shared/database"
	"github.com/MuhamadAgungGumelar/venue-assistant/internal/shared/utils"

	_ "github.com/MuhamadAgungGumelar/venue-assistant/cmd/venue-api/docs"
)

// @title Venue Assistant API
// @version 1.0
// @description Chat assistant, booking form and admin panel for an entertainment venue
// @license.name MIT
// @host localhost:8080
// @BasePath /
func main() {
	// Load config
	cfg := config.LoadConfig()
	utils.InitLogger(cfg.Env)
	log.Printf("🚀 Starting venue-api on port %s", cfg.Port)

	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		log.Fatalf("Failed to create data dir: %v", err)
	}
	files, err := filestore.New(cfg.BackupsDir)
	if err != nil {
		log.Fatalf("Failed to init file store: %v", err)
	}

	// Init repositories
	knowledgeRepo, err := repositories.NewKnowledgeRepo(files, cfg.KnowledgeFile, repositories.DefaultKnowledge(cfg.VenueName))
	if err != nil {
		log.Fatalf("Failed to load knowledge base: %v", err)
	}
	suggestionRepo, err := repositories.NewSuggestionRepo(files, cfg.SuggestionsFile)
	if err != nil {
		log.Fatalf("Failed to load suggestions: %v", err)
	}
	categoryRepo, err := repositories.NewCategoryRepo(files, cfg.MenuCategoriesFile)
	if err != nil {
		log.Fatalf("Failed to load menu categories: %v", err)
	}
	menuRepo := repositories.NewMenuRepo(files, cfg.MenuFile)
	feedbackRepo := repositories.NewFeedbackRepo(files, cfg.FeedbackFile)

	var (
		bookingRepo repositories.BookingRepo
		chatLogRepo repositories.ChatLogRepo
	)
	switch cfg.StorageBackend {
	case "postgres":
		db, err := database.NewDB(cfg.DatabaseURL, !cfg.IsProduction())
		if err != nil {
			log.Fatalf("Failed to connect database: %v", err)
		}
		defer db.Close()
		bookingRepo = repositories.NewBookingRepoGorm(db.GORM)
		chatLogRepo = repositories.NewChatLogRepoGorm(db.GORM)
	default:
		bookingRepo = repositories.NewBookingRepo(files, cfg.BookingsFile)
		chatLogRepo = repositories.NewChatLogRepo(files, cfg.LogFile, cfg.LogBackupEvery)
	}
	log.Printf("🗄️  Bookings and chat log storage: %s", cfg.StorageBackend)

	// Init LLM service
	llmService, err := llm.NewStartupService(cfg)
	if err != nil {
		log.Fatalf("Failed to init LLM provider: %v", err)
	}
	log.Printf("🤖 Using LLM provider: %s", llmService.GetProviderName())

	exporter := export.NewService(cfg.PDFFontPath)
	history := services.NewHistory(cfg.HistoryMaxMessages)

	// Init services
	chatService := services.NewChatService(knowledgeRepo, suggestionRepo, menuRepo, chatLogRepo, llmService, history,
		llm.BuildVenuePrompt(cfg.VenueName))
	knowledgeService := services.NewKnowledgeService(knowledgeRepo)
	suggestionService := services.NewSuggestionService(suggestionRepo)
	menuService := services.NewMenuService(menuRepo, categoryRepo)
	bookingService := services.NewBookingService(bookingRepo, exporter)
	logService := services.NewLogService(chatLogRepo, exporter)
	feedbackService := services.NewFeedbackService(feedbackRepo)
	statsService := services.NewStatsService(chatLogRepo, bookingRepo)

	// Staff e-mail on new bookings
	mailer, err := email.NewServiceFromConfig(cfg.EmailProvider, cfg.BrevoAPIKey, cfg.ResendAPIKey, email.Sender{
		Email:   cfg.EmailFrom,
		Name:    cfg.EmailFromName,
		ReplyTo: cfg.EmailReplyTo,
	})
	if err != nil {
		log.Fatalf("Failed to init email provider: %v", err)
	}
	switch {
	case mailer == nil:
		log.Println("📭 Booking e-mails disabled")
	case cfg.AdminEmail == "":
		utils.LogWarn("⚠️ ADMIN_EMAIL is empty, booking e-mails disabled", map[string]interface{}{"provider": mailer.GetProviderName()})
	default:
		notifier := notification.NewService(mailer, cfg.AdminEmail, cfg.VenueName, 32)
		notifier.Start(context.Background())
		defer notifier.Stop()
		bookingService.WithNotifier(notifier)
	}

	// Scheduled backups and history eviction
	dataFiles := []string{
		cfg.KnowledgeFile, cfg.SuggestionsFile, cfg.MenuFile, cfg.MenuCategoriesFile,
		cfg.BookingsFile, cfg.LogFile, cfg.FeedbackFile,
	}
	offsite, err := upload.NewServiceFromConfig(cfg)
	if err != nil {
		log.Fatalf("Failed to init off-site backups: %v", err)
	}
	log.Printf("☁️  Off-site backup provider: %s", offsite.GetProviderName())
	maintenance := services.NewMaintenanceService(files, dataFiles, cfg.BackupRetention, history, cfg.HistoryIdleTTL).
		WithOffsite(offsite)
	sched := scheduler.NewScheduler()
	if err := maintenance.Register(sched, cfg.BackupSchedule); err != nil {
		log.Fatalf("Failed to schedule maintenance: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	// Admin auth
	credentials, err := auth.NewCredentials(cfg.AdminUser, cfg.AdminPass)
	if err != nil {
		log.Fatalf("Failed to init admin credentials: %v", err)
	}
	sessions := auth.NewSessions(cfg.SessionTTL, cfg.IsProduction())
	admin := credentials.Username()

	// Init handlers
	h := &handlers.Handlers{
		Health:      handlers.NewHealthHandler(knowledgeService, llmService.GetProviderName()),
		Chat:        handlers.NewChatHandler(chatService, suggestionService),
		Menu:        handlers.NewMenuHandler(menuService, admin),
		Booking:     handlers.NewBookingHandler(bookingService, exporter),
		Feedback:    handlers.NewFeedbackHandler(feedbackService),
		Admin:       handlers.NewAdminHandler(credentials, sessions),
		Knowledge:   handlers.NewKnowledgeHandler(knowledgeService, admin),
		Suggestions: handlers.NewSuggestionHandler(suggestionService, admin),
		Logs:        handlers.NewLogHandler(logService, knowledgeService, exporter, admin),
		Stats:       handlers.NewStatsHandler(statsService),
	}

	// Init Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Venue Assistant API",
		UnescapePath: true,
		BodyLimit:    16 << 20,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(cors.New())

	// Swagger
	app.Get("/swagger/*", swagger.HandlerDefault)

	handlers.RegisterRoutes(app, h, sessions)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		log.Println("🛑 Shutting down venue-api")
		if err := app.Shutdown(); err != nil {
			utils.LogError("failed to shut down server", err, nil)
		}
	}()

	log.Printf("✅ venue-api running at :%s", cfg.Port)
	log.Printf("📄 Swagger UI: http://localhost:%s/swagger/", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Printf("❌ Server stopped: %v", err)
	}
}

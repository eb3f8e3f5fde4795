package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tincadia/cache"
	"tincadia/catalog"
	"tincadia/clients/backend"
	"tincadia/clients/wompi"
	"tincadia/config"
	"tincadia/database"
	"tincadia/logger"
	"tincadia/middleware"
	adminRoutes "tincadia/routers/adminRoutes"
	courseRoutes "tincadia/routers/courseRoutes"
	paymentRoutes "tincadia/routers/paymentRoutes"
	userProfileRoutes "tincadia/routers/userRoutes"
	"tincadia/services/access"
	"tincadia/services/checkout"
	"tincadia/services/forms"
	"tincadia/services/notifications"
	"tincadia/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func main() {
	config.LoadConfig()
	cfg := config.AppConfig

	appLog, err := logger.New(cfg.AppEnv)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer appLog.Sync()

	cat, err := catalog.Default()
	if err != nil {
		appLog.Fatal("Invalid catalog", "error", err)
	}

	db := database.ConnectDb(cfg)

	backendClient := backend.New(backend.Config{
		BaseURL:      cfg.BackendApiURL,
		ServiceToken: cfg.BackendServiceToken,
		Timeout:      cfg.RequestTimeout,
	})
	wompiClient := wompi.New(cfg.WompiApiURL, cfg.WompiPublicKey, cfg.RequestTimeout)

	store := cache.NewMemory()
	if cfg.RedisAddr != "" {
		redisStore, err := cache.NewRedis(cfg.RedisAddr, "tincadia:")
		if err != nil {
			appLog.Warn("Redis unavailable, using in-memory cache", "addr", cfg.RedisAddr, "error", err)
		} else {
			store = redisStore
		}
	}
	defer store.Close()

	ledger := checkout.NewLedger(db)
	checkoutSvc := checkout.NewService(backendClient, backendClient, checkout.Options{
		Ledger:             ledger,
		Logger:             appLog.With("component", "checkout"),
		OptimisticFallback: cfg.OptimisticFallback,
	})
	acceptance := checkout.NewAcceptanceProvider(wompiClient, store, cfg.AcceptanceCacheTTL, appLog)
	resolver := access.NewResolver(backendClient, backendClient)
	formsInbox := forms.NewInbox(backendClient, cat)
	notificationsInbox := notifications.NewInbox(backendClient, cat)

	var mailer utils.Mailer = utils.LogMailer{Log: appLog}
	if cfg.SendgridApiKey != "" {
		mailer = utils.NewSendgridMailer(cfg.SendgridApiKey, cfg.EmailSender, cfg.EmailSenderName)
	}
	reconcileJob := &utils.ReconcileJob{
		Ledger:       ledger,
		Transactions: backendClient,
		Courses:      backendClient,
		Mailer:       mailer,
		Log:          appLog.With("component", "reconcile"),
		AbandonAfter: cfg.ReconcileAbandon,
		FrontendURL:  cfg.FrontendURL,
	}
	scheduler, err := utils.InitializeReconcileScheduler(reconcileJob, cfg.ReconcileCron, 2*time.Minute)
	if err != nil {
		appLog.Fatal("Invalid reconcile schedule", "schedule", cfg.ReconcileCron, "error", err)
	}

	app := fiber.New(fiber.Config{AppName: "tincadia-checkout"})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE",        // Allowed HTTP methods
		AllowHeaders: "Content-Type,Authorization", // Allowed headers
	}))
	app.Use(middleware.RequestContext(cfg.RequestTimeout))

	// Enable the built-in logger middleware to log all requests
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "[${time}] ${ip} ${locals:reqid} ${method} ${path} ${status} ${latency}\n",
	}))

	courseRoutes.SetupCourseRoutes(app, resolver, checkoutSvc, appLog)
	paymentRoutes.SetupPaymentRoutes(app, checkoutSvc, acceptance, cat, appLog)
	adminRoutes.SetupAdminRoutes(app, formsInbox, notificationsInbox, appLog)
	userProfileRoutes.SetupUserRoutes(app, backendClient, appLog)

	go func() {
		appLog.Info("Server is running", "port", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			appLog.Error("Server stopped", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLog.Info("Shutting down")
	<-scheduler.Stop().Done()
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		appLog.Error("Shutdown failed", "error", err)
	}
}

package main

import (
	"database/sql"
	"fmt"
	"log"
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

	config "github.com/SavrnaSS/replotre/configs"
	"github.com/SavrnaSS/replotre/internal/api/handlers"
	"github.com/SavrnaSS/replotre/internal/api/middleware"
	job "github.com/SavrnaSS/replotre/internal/jobs"
	"github.com/SavrnaSS/replotre/internal/live"
	"github.com/SavrnaSS/replotre/internal/queue"
	"github.com/SavrnaSS/replotre/internal/repository"
	"github.com/SavrnaSS/replotre/internal/service"
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

	userRepo := repository.NewUserRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	subscriptionRepo := repository.NewSubscriptionRepository(db)
	billingRepo := repository.NewBillingRepository(db)
	scheduledPostRepo := repository.NewScheduledPostRepository(db)
	overrideRepo := repository.NewOverrideRepository(db)
	adminActionRepo := repository.NewAdminActionRepository(db)

	hub := live.NewHub()

	var inventoryService service.InventoryService
	if cfg.AssetsDir != "" {
		inventoryService = service.NewDirInventoryService(cfg.AssetsDir)
	} else {
		inventoryService = service.NewR2InventoryService(*cfg)
	}

	queueW := queue.NewQueue(adminActionRepo, hub)

	authService := service.NewAuthService(*cfg, userRepo)
	userService := service.NewUserService(userRepo)
	profileService := service.NewProfileService(profileRepo)
	subscriptionService := service.NewSubscriptionService(*cfg, userRepo, subscriptionRepo, billingRepo)
	planService := service.NewPlanService(subscriptionRepo, billingRepo, profileRepo)
	notifierService := service.NewNotifierService(adminActionRepo, queueW, client)
	allocationService := service.NewAllocationService(scheduledPostRepo, overrideRepo, profileRepo, planService, inventoryService, notifierService)
	adminService := service.NewAdminService(overrideRepo, scheduledPostRepo, adminActionRepo, hub)

	authMiddleware := middleware.NewAuthMiddleware(*cfg)
	adminMiddleware := middleware.NewAdminMiddleware(userRepo)

	auth := handlers.NewAuthHandler(*cfg, authService)
	app.Get("/login", auth.Login)
	app.Get("/login/callback", auth.LoginCallbackHandler)

	payment := handlers.NewPaymentHandler(subscriptionService)
	app.Post("/webhook/payment", payment.PaymentWebhook)

	api := app.Group("/api")

	schedule := handlers.NewScheduleHandler(allocationService, inventoryService)
	api.Get("/schedule", authMiddleware.Optional(), schedule.GetSchedule)

	authed := api.Group("", authMiddleware.Required())

	user := handlers.NewUserHandler(userService)
	authed.Get("/user/info", user.GetUserInfo)

	profile := handlers.NewProfileHandler(profileService)
	authed.Get("/profile/info", profile.GetProfileInfo)
	authed.Post("/profile/update", profile.UpdateProfile)

	admin := handlers.NewAdminHandler(adminService, inventoryService, hub)
	adminAPI := authed.Group("/admin", adminMiddleware.AdminOnly())
	adminAPI.Post("/overrides/new", admin.CreateOverride)
	adminAPI.Get("/overrides", admin.ListOverrides)
	adminAPI.Post("/schedule/reschedule", admin.BulkReschedule)
	adminAPI.Post("/schedule/cancel", admin.BulkCancel)
	adminAPI.Get("/actions", admin.ListActions)
	adminAPI.Get("/actions/live", admin.LiveActions)
	adminAPI.Post("/assets/:influencer_id", admin.UploadAsset)

	// cron jobs
	retentionJob := job.NewRetentionJob(adminActionRepo)

	c := cron.New()
	c.AddFunc("@every 24h00m00s", retentionJob.PurgeOldActions)
	c.Start()

	go func() {
		server := asynq.NewServer(redisConn, asynq.Config{
			Concurrency: 10,
		})

		mux := asynq.NewServeMux()
		mux.HandleFunc(queue.TaskTypeExhaustedAlert, queueW.HandleExhaustedAlertTask)

		log.Println("Starting the Asynq server...")
		if err := server.Run(mux); err != nil {
			log.Fatalf("Could not start Asynq server: %v", err)
		}
	}()

	go func() {
		if err := app.Listen(cfg.ListenAddr); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()
	log.Printf("Server is running on %s", cfg.ListenAddr)

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

package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"github.com/Anoch123/exodus-instant-booking/internal/config"
	"github.com/Anoch123/exodus-instant-booking/internal/domain"
	"github.com/Anoch123/exodus-instant-booking/internal/handler"
	"github.com/Anoch123/exodus-instant-booking/internal/handler/middleware"
	"github.com/Anoch123/exodus-instant-booking/internal/reachability"
	"github.com/Anoch123/exodus-instant-booking/internal/repository/postgres"
	"github.com/Anoch123/exodus-instant-booking/internal/service"
	"github.com/Anoch123/exodus-instant-booking/internal/session"
	"github.com/Anoch123/exodus-instant-booking/pkg/email"
	"github.com/Anoch123/exodus-instant-booking/pkg/jwt"
	"github.com/Anoch123/exodus-instant-booking/pkg/kvstore"
	"github.com/Anoch123/exodus-instant-booking/pkg/validator"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize database connection
	db, err := initDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database connection: %v", err)
		}
	}()
	log.Println("✓ Database connection established")

	// Initialize Redis client
	redisClient, err := initRedis(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize Redis: %v", err)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Printf("Error closing Redis connection: %v", err)
		}
	}()
	log.Println("✓ Redis connection established")

	// Load RSA keys for JWT
	privateKey, publicKey, err := loadRSAKeys(cfg)
	if err != nil {
		log.Fatalf("Failed to load RSA keys: %v", err)
	}
	log.Println("✓ RSA keys loaded successfully")

	// Initialize validator
	validate := validator.NewValidator()

	// Initialize repositories
	userRepo := postgres.NewAgencyUserRepository(db)
	customerRepo := postgres.NewCustomerRepository(db)
	agencyRepo := postgres.NewAgencyRepository(db)
	locationRepo := postgres.NewLocationRepository(db)
	hotelRepo := postgres.NewHotelRepository(db)
	categoryRepo := postgres.NewCategoryRepository(db)
	tourRepo := postgres.NewTourRepository(db)
	bookingRepo := postgres.NewBookingRepository(db)
	auditRepo := postgres.NewAuditRepository(db)

	// Initialize JWT token service
	tokenService, err := jwt.NewTokenService(
		privateKey,
		publicKey,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
		cfg.JWT.Issuer,
	)
	if err != nil {
		log.Fatalf("Failed to initialize token service: %v", err)
	}

	// Initialize session store on top of Redis
	kv := kvstore.New(redisClient)
	sessions := session.NewStore(kv, session.Config{
		DefaultDuration:     cfg.Session.DefaultDuration,
		CheckInterval:       cfg.Session.CheckInterval,
		WarningWindow:       cfg.Session.WarningWindow,
		SubscriptionWarning: cfg.Session.SubscriptionWarning,
	})
	defer sessions.Close()

	// Initialize email service
	var mailer email.Service
	if cfg.Email.Enabled {
		mailer, err = email.NewResendService(&email.Config{
			APIKey:    cfg.Email.APIKey,
			FromEmail: cfg.Email.FromEmail,
			FromName:  "Exodus Travels",
		})
		if err != nil {
			log.Printf("Warning: Failed to initialize email service: %v", err)
			mailer = email.NewNoopService()
		} else {
			log.Println("✓ Email service initialized (Resend)")
		}
	} else {
		mailer = email.NewNoopService()
		log.Println("ℹ Email service disabled (set EMAIL_ENABLED=true to enable)")
	}

	// Initialize object storage
	images, err := service.NewImageService(context.Background(), cfg.Storage)
	if err != nil {
		log.Fatalf("Failed to initialize object storage: %v", err)
	}
	log.Println("✓ Object storage initialized")

	// Initialize services
	auditService := service.NewAuditService(auditRepo)
	authService := service.NewAuthService(userRepo, customerRepo, agencyRepo, tokenService, sessions, auditService)
	locationService := service.NewLocationService(locationRepo, auditService)
	hotelService := service.NewHotelService(hotelRepo, auditService)
	categoryService := service.NewCategoryService(categoryRepo, auditService)
	tourService := service.NewTourService(tourRepo, auditService)
	bookingService := service.NewBookingService(bookingRepo, tourRepo, customerRepo, mailer, auditService)
	subscriptionService := service.NewSubscriptionService(agencyRepo, mailer)

	// Sessions swept by the expiry poller land in the audit trail.
	sessions.OnSessionExpired(func(sess session.AgencySession) {
		log.Printf("[SESSION] Forced logout for %s (expired)", sess.User.Email)
		auditService.Record(context.Background(), service.AuditEntry{
			AgencyID:     &sess.User.AgencyID,
			AgencyUserID: &sess.User.ID,
			Role:         sess.Role,
			Action:       "Session Expired",
			ActionType:   domain.AuditActionLogout,
			TableName:    "agency_users",
			RecordID:     &sess.User.ID,
		})
	})

	// Graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	// Rehydrate sessions persisted by a previous process
	sessions.Restore(ctx)
	log.Printf("✓ Session store restored (%d active)", sessions.ActiveSessions())

	// Start the reachability monitor against the database
	monitor := reachability.NewMonitor(
		reachability.NewDBProber(db),
		cfg.Session.ProbeInterval,
		cfg.Session.ProbeTimeout,
	)
	monitor.Start(ctx)
	defer monitor.Stop()

	// Daily subscription expiry notices
	go runSubscriptionSweep(ctx, subscriptionService)

	// Initialize handlers
	handlers := handler.Handlers{
		Auth:     handler.NewAuthHandler(authService, validate),
		Session:  handler.NewSessionHandler(sessions),
		Location: handler.NewLocationHandler(locationService, validate),
		Hotel:    handler.NewHotelHandler(hotelService, validate),
		Category: handler.NewCategoryHandler(categoryService, validate),
		Tour:     handler.NewTourHandler(tourService, validate),
		Booking:  handler.NewBookingHandler(bookingService, validate),
		Audit:    handler.NewAuditHandler(auditService),
		Image:    handler.NewImageHandler(images),
		Health:   handler.NewHealthHandler(monitor, sessions),
	}

	guards := handler.Guards{
		ServerStatus:        middleware.ServerStatus(monitor),
		RequireAgency:       middleware.RequireAgency(sessions),
		RequireAdmin:        middleware.RequireAgency(sessions, domain.RoleAgencyAdmin),
		RequireCustomer:     middleware.RequireCustomer(sessions),
		RequireSubscription: middleware.RequireSubscription(sessions),
		PublicOnly:          middleware.PublicOnly(sessions),
	}

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Exodus Instant Booking v1.0",
		ErrorHandler: customErrorHandler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	})

	// Setup global middlewares
	app.Use(middleware.RecoveryMiddleware())
	app.Use(middleware.LoggerMiddleware())
	app.Use(middleware.CORSMiddleware())

	// Setup routes
	handler.SetupRoutes(app, handlers, guards)

	// Start server in goroutine
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		log.Printf("🚀 Server starting on http://localhost%s", addr)
		log.Printf("📝 Environment: %s", cfg.Server.Environment)
		if err := app.Listen(addr); err != nil {
			log.Printf("❌ Server failed to start: %v", err)
			stop()
		}
	}()

	// Wait for interrupt signal
	<-ctx.Done()
	log.Println("⏳ Shutting down server gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("❌ Server forced to shutdown: %v", err)
	}

	log.Println("✓ Server stopped")
}

// runSubscriptionSweep mails subscription expiry notices once a day.
func runSubscriptionSweep(ctx context.Context, subscriptions *service.SubscriptionService) {
	const noticeDays = 30

	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()

	for {
		if err := subscriptions.NotifyExpiring(ctx, noticeDays); err != nil {
			log.Printf("[SUBSCRIPTION] Sweep failed: %v", err)
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// initDB initializes PostgreSQL database connection with retry logic
func initDB(cfg *config.Config) (*sqlx.DB, error) {
	dsn := cfg.Database.DSN()

	var db *sqlx.DB
	var err error

	maxRetries := 5
	retryInterval := 2 * time.Second

	for i := 0; i < maxRetries; i++ {
		db, err = sqlx.Connect("postgres", dsn)
		if err == nil {
			break
		}

		log.Printf("Failed to connect to database (attempt %d/%d): %v", i+1, maxRetries, err)
		if i < maxRetries-1 {
			time.Sleep(retryInterval)
		}
	}

	if err != nil {
		return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", maxRetries, err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			log.Printf("Error closing database after ping failure: %v", closeErr)
		}
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// initRedis initializes Redis client and verifies connection
func initRedis(cfg *config.Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Redis.Addr(),
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 5,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		if closeErr := client.Close(); closeErr != nil {
			log.Printf("Error closing Redis after ping failure: %v", closeErr)
		}
		return nil, fmt.Errorf("failed to ping Redis: %w", err)
	}

	return client, nil
}

// loadRSAKeys loads RSA private and public keys from files
func loadRSAKeys(cfg *config.Config) ([]byte, []byte, error) {
	privateKey, err := os.ReadFile(cfg.JWT.PrivateKeyPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read private key file: %w", err)
	}

	publicKey, err := os.ReadFile(cfg.JWT.PublicKeyPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read public key file: %w", err)
	}

	if len(privateKey) == 0 {
		return nil, nil, fmt.Errorf("private key file is empty")
	}
	if len(publicKey) == 0 {
		return nil, nil, fmt.Errorf("public key file is empty")
	}

	return privateKey, publicKey, nil
}

// customErrorHandler handles Fiber errors
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	log.Printf("Error handling request [%s %s]: %v", c.Method(), c.Path(), err)

	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": message,
	})
}

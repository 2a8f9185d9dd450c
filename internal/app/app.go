package app

import (
	"fmt"
	"net/http"
	"time"

	"ecodispose_backend/database"
	"ecodispose_backend/internal/auth"
	"ecodispose_backend/internal/config"
	"ecodispose_backend/internal/email"
	"ecodispose_backend/internal/handlers"
	"ecodispose_backend/internal/logger"
	"ecodispose_backend/internal/middleware"
	"ecodispose_backend/internal/models"
	"ecodispose_backend/internal/repositories"
	"ecodispose_backend/internal/routes"
	"ecodispose_backend/internal/services"
	"ecodispose_backend/internal/storage"
	"ecodispose_backend/internal/validator"
	"ecodispose_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	logger.Info("Connecting to database...")
	gormDB, err := database.ConnectGorm()
	if err != nil {
		logger.Fatal("Failed to connect to GORM", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")

	if err := database.AutoMigrate(gormDB); err != nil {
		logger.Fatal("Migration failed", "error", err)
	}

	if err := seedFirstAdmin(gormDB, cfg); err != nil {
		logger.Fatal("Failed to seed first admin user", "error", err)
	}

	startSessionCleaner(gormDB)

	ginRouter := SetupRouter(cfg, gormDB)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info(fmt.Sprintf("Server starting on %s", address))
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

// SetupRouter assembles storage, services, handlers and middleware into
// a ready *gin.Engine. Tests reuse it against their own DB handle.
func SetupRouter(cfg *config.Config, gormDB *gorm.DB) *gin.Engine {
	storageInstance, err := storage.NewStorage(storage.Config{
		Type:     cfg.Storage.Type,
		BasePath: cfg.Storage.BasePath,
		BaseURL:  cfg.Storage.BaseURL,
	})
	if err != nil {
		logger.Fatal("Failed to initialize storage", "error", err)
	}
	logger.Info("Storage initialized", "type", cfg.Storage.Type, "path", cfg.Storage.BasePath)

	serviceContainer := initializeServices(cfg, storageInstance)
	appHandlers := initializeHandlers(cfg, serviceContainer, storageInstance)

	ginRouter := initializeGinRouter(cfg, gormDB)
	routes.RegisterRoutes(ginRouter, appHandlers)

	return ginRouter
}

func initializeServices(cfg *config.Config, storageInstance storage.Storage) *services.ServiceContainer {
	var emailProvider email.Provider
	if cfg.Email.Enabled {
		smtpProvider, err := email.NewSMTPProvider(email.SMTPConfig{
			Host:      cfg.Email.SMTPHost,
			Port:      cfg.Email.SMTPPort,
			Username:  cfg.Email.SMTPUsername,
			Password:  cfg.Email.SMTPPassword,
			FromEmail: cfg.Email.FromEmail,
			FromName:  cfg.Email.FromName,
		})
		if err != nil {
			logger.Fatal("Failed to initialize SMTP provider", "error", err)
		}
		emailProvider = smtpProvider
	} else {
		logger.Warn("Email sending disabled; using mock provider")
		emailProvider = &MockEmailProvider{}
	}

	userRepo := repositories.NewUserRepository()
	sessionRepo := repositories.NewSessionRepository()
	deviceRepo := repositories.NewDeviceRepository()

	sessionTTL := time.Duration(cfg.Session.TTLMinutes) * time.Minute
	authService := services.NewAuthService(userRepo, sessionRepo, storageInstance, sessionTTL)
	deviceService := services.NewDeviceService(deviceRepo, userRepo, storageInstance, emailProvider)

	return &services.ServiceContainer{
		AuthService:   authService,
		DeviceService: deviceService,
		EmailService:  emailProvider,
	}
}

func initializeHandlers(cfg *config.Config, serviceContainer *services.ServiceContainer, storageInstance storage.Storage) *handlers.AppHandlers {
	customValidator := validator.New()
	baseHandler := handlers.NewBaseHandler(customValidator)

	sessionMW := middleware.SessionMiddleware(serviceContainer.AuthService, cfg.Session.CookieName)
	cookieMaxAge := cfg.Session.TTLMinutes * 60

	return &handlers.AppHandlers{
		AuthHandler:   handlers.NewAuthHandler(baseHandler, serviceContainer.AuthService, sessionMW, cfg.Session.CookieName, cookieMaxAge),
		DeviceHandler: handlers.NewDeviceHandler(baseHandler, serviceContainer.DeviceService, sessionMW),
		FileHandler:   handlers.NewFileHandler(baseHandler, storageInstance),
	}
}

func initializeGinRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	router := gin.New()
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		c.AbortWithStatusJSON(http.StatusInternalServerError, apperrors.ErrorResponse{
			Error: apperrors.InternalError(fmt.Errorf("panic: %v", recovered)),
		})
	}))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.BodySizeLimitMiddleware(cfg.Upload.MaxSize))
	router.Use(middleware.DBMiddleware(db))
	return router
}

// startSessionCleaner drops expired session rows once an hour.
func startSessionCleaner(db *gorm.DB) {
	sessionRepo := repositories.NewSessionRepository()
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for range ticker.C {
			if err := sessionRepo.CleanExpired(db); err != nil {
				logger.Warn("Session cleanup failed", "error", err)
			}
		}
	}()
}

// seedFirstAdmin creates the staff account from config when no user with
// that email exists yet. Staff accounts get an empty address row like
// everyone else.
func seedFirstAdmin(db *gorm.DB, cfg *config.Config) error {
	adminEmail := cfg.FirstAdmin.Email
	adminPassword := cfg.FirstAdmin.Password

	if adminEmail == "" || adminPassword == "" {
		logger.Warn("first_admin email or password not set. Skipping admin seeding.")
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		exists, err := repositories.NewUserRepository().ExistsByEmail(tx, adminEmail)
		if err != nil {
			return fmt.Errorf("failed to check for admin user: %w", err)
		}
		if exists {
			logger.Info("Admin user already exists. Skipping creation.", "email", adminEmail)
			return nil
		}

		logger.Warn("No admin user found. Creating first admin...", "email", adminEmail)

		hash, err := auth.HashPassword(adminPassword)
		if err != nil {
			return fmt.Errorf("failed to hash admin password: %w", err)
		}

		address := &models.Address{}
		if err := tx.Create(address).Error; err != nil {
			return fmt.Errorf("failed to create admin address: %w", err)
		}

		newAdmin := &models.User{
			FirstName:    "Admin",
			LastName:     "Admin",
			Email:        adminEmail,
			PasswordHash: hash,
			IsAdmin:      true,
			AddressID:    address.ID,
		}
		if err := tx.Create(newAdmin).Error; err != nil {
			return fmt.Errorf("failed to create admin user: %w", err)
		}

		logger.Info("First admin created", "email", adminEmail)
		return nil
	})
}

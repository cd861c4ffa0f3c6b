package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"gorm.io/gorm"

	"reserve-backend/internal/api/handlers"
	"reserve-backend/internal/api/routes"
	"reserve-backend/internal/middleware"
	"reserve-backend/internal/utils"
	"reserve-backend/internal/utils/mailing"
	"reserve-backend/internal/utils/storage"
	"reserve-backend/pkg/distribution"
	"reserve-backend/pkg/donation"
	"reserve-backend/pkg/freshness"
	"reserve-backend/pkg/geocode"
	"reserve-backend/pkg/jwt"
	"reserve-backend/pkg/notification"
	"reserve-backend/pkg/user"
)

func NewApp(db *gorm.DB) (*fiber.App, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		AppName: "ReServe",
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate

	// setting up logging and limiter
	logFile := utils.GetConfig("LOG_FILE")
	if err := os.MkdirAll(filepath.Dir(logFile), os.ModePerm); err != nil {
		log.Fatalf("error creating logs directory: %v", err)
	}
	file, err := os.OpenFile(
		logFile,
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		log.Fatalf("error opening file: %v", err)
	}

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(logger.New(logger.Config{
		Format:     "${time} ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "Asia/Kolkata",
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        30,
		Expiration: 1 * time.Second,
	}))

	// utils
	s3 := storage.NewAwsS3()
	mailer := mailing.NewMailer(mailing.LoadMailConfig())

	// Repository
	userRepository := user.NewUserRepository(db)
	donationRepository := donation.NewDonationRepository(db)
	notificationRepository := notification.NewNotificationRepository(db)
	distributionRepository := distribution.NewDistributionRepository(db)

	// Service
	jwtService := jwt.NewJWTService()
	userService := user.NewUserService(userRepository, jwtService, s3, mailer)
	notificationService := notification.NewNotificationService(notificationRepository)
	donationService := donation.NewDonationService(
		donationRepository,
		userService,
		notificationService,
		freshness.NewFreshnessService(),
		geocode.NewGoogleGeocoder(),
		s3,
	)
	distributionService := distribution.NewDistributionService(distributionRepository)

	// Handler
	routesConfig := routes.Config{
		App:                 app,
		UserHandler:         handlers.NewUserHandler(userService, validator),
		DonationHandler:     handlers.NewDonationHandler(donationService, validator),
		NgoHandler:          handlers.NewNgoHandler(donationService, userService),
		DistributionHandler: handlers.NewDistributionHandler(distributionService, validator),
		NotificationHandler: handlers.NewNotificationHandler(notificationService),
		AdminHandler:        handlers.NewAdminHandler(userService, validator),
		Middleware:          middlewares,
		JWTService:          jwtService,
	}
	routesConfig.Setup()
	return app, nil
}

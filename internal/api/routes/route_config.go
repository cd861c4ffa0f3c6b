package routes

import (
	"github.com/gofiber/fiber/v2"

	"reserve-backend/domain"
	"reserve-backend/internal/api/handlers"
	"reserve-backend/internal/middleware"
	"reserve-backend/pkg/jwt"
)

type Config struct {
	App                 *fiber.App
	UserHandler         handlers.UserHandler
	DonationHandler     handlers.DonationHandler
	NgoHandler          handlers.NgoHandler
	DistributionHandler handlers.DistributionHandler
	NotificationHandler handlers.NotificationHandler
	AdminHandler        handlers.AdminHandler
	Middleware          middleware.Middleware
	JWTService          jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.GuestRoute()
	c.User()
	c.Donor()
	c.Ngo()
	c.Recipient()
	c.Notifications()
	c.Admin()
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
}

func (c *Config) User() {
	user := c.App.Group("/api/v1/users")
	{
		user.Post("/register", c.UserHandler.Register)
		user.Post("/login", c.UserHandler.Login)
		user.Post("/otp/send", c.UserHandler.SendOtp)
		user.Post("/otp/verify", c.UserHandler.VerifyOtp)
	}

	me := user.Group("/me", c.Middleware.AuthMiddleware(c.JWTService))
	{
		me.Get("", c.UserHandler.Me)
		me.Patch("", c.UserHandler.UpdateMe)
		me.Post("/photo", c.UserHandler.UploadPhoto)
		me.Post("/document", c.UserHandler.UploadDocument)
	}
}

func (c *Config) Donor() {
	donor := c.App.Group("/api/v1/donor",
		c.Middleware.AuthMiddleware(c.JWTService),
		c.Middleware.RoleMiddleware(domain.RoleDonor),
	)

	donor.Post("/posts", c.DonationHandler.CreatePost)
	donor.Get("/posts", c.DonationHandler.GetPosts)
	donor.Get("/posts/:id", c.DonationHandler.GetPost)
	donor.Delete("/posts/:id", c.DonationHandler.DeletePost)
	donor.Post("/posts/:id/image", c.DonationHandler.UploadPostImage)

	// lifecycle
	donor.Post("/posts/:id/confirm", c.DonationHandler.ConfirmPickup)
	donor.Post("/posts/:id/cancel", c.DonationHandler.CancelDonation)
	donor.Post("/posts/:id/rate", c.DonationHandler.RateNgo)

	donor.Get("/history", c.DistributionHandler.GetDonorHistory)
	donor.Post("/freshness", c.DonationHandler.ClassifyFood)
}

func (c *Config) Ngo() {
	ngo := c.App.Group("/api/v1/ngo",
		c.Middleware.AuthMiddleware(c.JWTService),
		c.Middleware.RoleMiddleware(domain.RoleNGO),
	)

	ngo.Get("/feed", c.NgoHandler.GetFeed)
	ngo.Post("/posts/:id/accept", c.NgoHandler.AcceptPost)
	ngo.Post("/posts/:id/reached", c.NgoHandler.MarkReached)
	ngo.Post("/posts/:id/release", c.NgoHandler.ReleasePost)
	ngo.Get("/reviews", c.NgoHandler.GetReviews)

	ngo.Get("/recipients", c.DistributionHandler.GetRecipients)
	ngo.Post("/deliveries", c.DistributionHandler.RecordDelivery)
	ngo.Get("/deliveries", c.DistributionHandler.GetDeliveries)
}

func (c *Config) Recipient() {
	recipient := c.App.Group("/api/v1/recipient",
		c.Middleware.AuthMiddleware(c.JWTService),
		c.Middleware.RoleMiddleware(domain.RoleRecipient),
	)

	recipient.Get("/deliveries", c.DistributionHandler.GetIncoming)
	recipient.Patch("/people-count", c.DistributionHandler.UpdatePeopleCount)
}

func (c *Config) Notifications() {
	notifications := c.App.Group("/api/v1/notifications", c.Middleware.AuthMiddleware(c.JWTService))

	notifications.Get("", c.NotificationHandler.GetNotifications)
	notifications.Patch("/:id/read", c.NotificationHandler.MarkRead)
}

func (c *Config) Admin() {
	admin := c.App.Group("/api/v1/admin",
		c.Middleware.AuthMiddleware(c.JWTService),
		c.Middleware.RoleMiddleware(domain.RoleAdmin),
	)

	admin.Get("/users", c.AdminHandler.GetUsers)
	admin.Patch("/users/:id/status", c.AdminHandler.UpdateStatus)
	admin.Patch("/users/:id/verify", c.AdminHandler.VerifyUser)
	admin.Get("/stats", c.AdminHandler.GetStats)
}

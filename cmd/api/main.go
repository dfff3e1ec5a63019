package main

import (
	"context"
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"public-vision-be/internal/config"
	"public-vision-be/internal/domain"
	"public-vision-be/internal/handler"
	"public-vision-be/internal/middleware"
	"public-vision-be/internal/realtime"
	"public-vision-be/internal/repository"
	"public-vision-be/internal/service"
	"public-vision-be/internal/service/auth"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	db, err := config.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	redis, err := config.NewRedisClient(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redis.Close()

	minioClient, err := config.NewMinIOClient(cfg)
	if err != nil {
		log.Printf("Warning: Failed to connect to MinIO: %v (image upload will not work)", err)
	}

	hub := realtime.NewHub()
	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, redis, minioClient, hub, cfg)
	handlers := handler.NewHandlers(services, hub)

	sweepCtx, stopSweep := context.WithCancel(context.Background())
	defer stopSweep()
	go services.Escalation.Run(sweepCtx)

	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == "/health"
		},
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, PATCH, DELETE, OPTIONS",
	}))

	setupRoutes(app, handlers, services.Auth)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func setupRoutes(app *fiber.App, h *handler.Handlers, authService auth.Service) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	v1 := app.Group("/api/v1")

	authGroup := v1.Group("/auth")
	authGroup.Post("/register", h.Auth.Register)
	authGroup.Post("/login", h.Auth.Login)

	protected := v1.Group("", middleware.AuthRequired(authService))

	protected.Get("/auth/me", h.Auth.Me)

	users := protected.Group("/users")
	users.Get("/me", h.User.GetProfile)
	users.Put("/me", h.User.UpdateProfile)
	users.Post("/me/change-password", h.User.ChangePassword)

	complaints := protected.Group("/complaints")
	complaints.Post("/", h.Complaint.Create)
	complaints.Get("/", middleware.RequireRole(domain.RoleStaff), h.Complaint.List)
	complaints.Get("/mine", h.Complaint.MyComplaints)
	complaints.Get("/map", h.Complaint.MapData)
	complaints.Get("/statistics", middleware.RequireRole(domain.RoleStaff), h.Complaint.Statistics)
	complaints.Get("/:id", h.Complaint.GetByID)
	complaints.Patch("/:id/status", middleware.RequireRole(domain.RoleStaff), h.Complaint.UpdateStatus)
	complaints.Post("/:id/assign", middleware.RequireRole(domain.RoleAdmin), h.Complaint.Assign)
	complaints.Post("/:id/comments", h.Complaint.AddComment)
	complaints.Post("/:id/feedback", h.Complaint.AddFeedback)
	complaints.Post("/:id/reopen", h.Complaint.Reopen)
	complaints.Get("/:id/images", h.Media.ListByComplaint)
	complaints.Get("/:id/duplicates", middleware.RequireRole(domain.RoleStaff), h.Duplicate.GetDuplicates)
	complaints.Post("/:id/duplicate", middleware.RequireRole(domain.RoleStaff), h.Duplicate.MarkAsDuplicate)
	complaints.Post("/:id/merge", middleware.RequireRole(domain.RoleAdmin), h.Duplicate.Merge)

	protected.Get("/images/:id", h.Media.GetImage)

	notifications := protected.Group("/notifications")
	notifications.Get("/", h.Notification.List)
	notifications.Get("/unread-count", h.Notification.UnreadCount)
	notifications.Patch("/:id/read", h.Notification.MarkAsRead)
	notifications.Post("/mark-all-read", h.Notification.MarkAllAsRead)

	protected.Use("/notifications/stream", h.Stream.Upgrade())
	protected.Get("/notifications/stream", h.Stream.Stream())
}

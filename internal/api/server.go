package api

import (
	"fmt"
	"log"
	"net/http"

	"cradle/internal/cache"
	"cradle/internal/config"
	"cradle/internal/database"
	"cradle/internal/external"
	"cradle/internal/handlers"
	"cradle/internal/messaging"
	"cradle/internal/metrics"
	"cradle/internal/middleware"
	"cradle/internal/repository"
	"cradle/internal/service"

	"github.com/gin-gonic/gin"
)

// Server is the registry HTTP API
type Server struct {
	router      *gin.Engine
	config      *config.Config
	db          *database.DB
	nats        *messaging.NATSClient
	cacheClient *cache.Client
	services    *service.Services
	repos       *repository.Repositories
}

func NewServer(cfg *config.Config) *Server {
	gin.SetMode(cfg.GinMode)

	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.RunMigrations(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	natsClient, err := messaging.NewNATSClient(cfg.NATS)
	if err != nil {
		log.Fatalf("Failed to connect to NATS: %v", err)
	}

	// The page cache is optional; the API degrades to direct reads without it
	cacheClient, err := cache.New(cfg.Cache)
	if err != nil {
		log.Printf("Page cache unavailable, serving without it: %v", err)
		cacheClient = nil
	}

	blobClient := external.NewBlobClient(cfg.Blob)

	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, cacheClient, natsClient, blobClient)

	router := gin.New()
	router.Use(middleware.Recovery())
	router.Use(middleware.CORS())
	router.Use(middleware.Logger())
	router.Use(middleware.Metrics())

	server := &Server{
		router:      router,
		config:      cfg,
		db:          db,
		nats:        natsClient,
		cacheClient: cacheClient,
		services:    services,
		repos:       repos,
	}

	server.setupRoutes(blobClient)

	return server
}

func (s *Server) setupRoutes(blobClient *external.BlobClient) {
	h := handlers.NewHandlers(s.services, s.cacheClient, blobClient)

	api := s.router.Group("/api")
	{
		// Guest endpoints
		gifts := api.Group("/gifts")
		{
			gifts.GET("", h.ListGifts)
			gifts.PATCH("/select", h.SelectGift)
		}

		api.POST("/suggestions", h.SuggestGift)
		api.POST("/confirmations", h.CreateConfirmation)

		event := api.Group("/event")
		{
			event.GET("", h.GetEvent)
			event.GET("/calendar-link", h.CalendarLink)
		}

		// Admin endpoints
		admin := api.Group("/admin")
		admin.Use(middleware.AdminAuth(s.config.AdminUser, s.config.AdminPasswordHash))
		{
			admin.POST("/gifts", h.CreateGift)
			admin.PATCH("/gifts/:id", h.UpdateGift)
			admin.DELETE("/gifts/:id", h.DeleteGift)
			admin.PATCH("/gifts/:id/revert", h.RevertGift)

			admin.PATCH("/event", h.UpdateEvent)
			admin.GET("/confirmations", h.ListConfirmations)

			admin.GET("/export/gifts.csv", h.ExportGiftsCSV)
			admin.GET("/export/confirmations.csv", h.ExportConfirmationsCSV)
			admin.POST("/images", h.UploadImage)
		}
	}

	s.router.GET("/health", s.healthCheck)
	s.router.GET("/metrics", gin.WrapH(metrics.Handler()))
}

func (s *Server) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "cradle-api",
		"version": "1.0.0",
	})
}

func (s *Server) Run() error {
	addr := fmt.Sprintf(":%s", s.config.Port)
	return s.router.Run(addr)
}

// GetRouter exposes the router for testing
func (s *Server) GetRouter() *gin.Engine {
	return s.router
}

func (s *Server) Cleanup() error {
	if s.nats != nil {
		if err := s.nats.Close(); err != nil {
			log.Printf("Error closing NATS connection: %v", err)
		}
	}

	if s.cacheClient != nil {
		if err := s.cacheClient.Close(); err != nil {
			log.Printf("Error closing cache connection: %v", err)
		}
	}

	if s.db != nil {
		if err := s.db.Close(); err != nil {
			log.Printf("Error closing database connection: %v", err)
			return err
		}
	}

	return nil
}

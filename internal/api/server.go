package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/shipscope/shipment-tracker/internal/config"
	"github.com/shipscope/shipment-tracker/internal/database"
	"github.com/shipscope/shipment-tracker/internal/repository"
	"github.com/shipscope/shipment-tracker/internal/service"
	"github.com/shipscope/shipment-tracker/pkg/kafka"
	"github.com/shipscope/shipment-tracker/pkg/logger"
)

type Server struct {
	config           *config.Config
	logger           logger.Logger
	router           *mux.Router
	httpServer       *http.Server
	db               *database.Database
	kafkaProducer    *kafka.Producer
	authService      *service.AuthService
	providerService  *service.ProviderService
	shipmentService  *service.ShipmentService
	analyticsService *service.AnalyticsService
	exportService    *service.ExportService
}

// NewServer creates a new API server with the given configuration and logger.
func NewServer(cfg *config.Config, logger logger.Logger) *Server {
	r := mux.NewRouter()
	db, err := database.New(cfg, logger)

	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		panic(err)
	}

	// Run migrations
	if err := db.RunMigrations(); err != nil {
		logger.Error("Failed to run database migrations", "error", err)
		panic(err)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db, logger)
	providerRepo := repository.NewProviderRepository(db, logger)
	shipmentRepo := repository.NewShipmentRepository(db, logger)
	analyticsRepo := repository.NewAnalyticsRepository(db, logger)

	// Initialize Kafka producer when brokers are configured
	var kafkaProducer *kafka.Producer
	var publisher service.EventPublisher

	if cfg.Kafka.Enabled() {
		kafkaProducer, err = kafka.NewProducer(cfg.Kafka.Brokers, logger)

		if err != nil {
			logger.Error("Failed to create Kafka producer", "error", err)
			// Non-fatal error, continue without event publishing
			kafkaProducer = nil
		} else {
			publisher = kafkaProducer
		}
	}

	// Initialize services
	authService := service.NewAuthService(userRepo, logger, cfg.JWT.Secret, cfg.JWT.TokenTTL)
	providerService := service.NewProviderService(providerRepo, logger)
	shipmentService := service.NewShipmentService(shipmentRepo, providerRepo, publisher, cfg.Kafka.ShipmentsTopic, logger)
	analyticsService := service.NewAnalyticsService(analyticsRepo, logger)
	exportService := service.NewExportService(shipmentRepo, logger)

	server := &Server{
		router: r,
		httpServer: &http.Server{
			Addr:         fmt.Sprintf(":%d", cfg.Port),
			Handler:      r,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		logger:           logger,
		config:           cfg,
		db:               db,
		kafkaProducer:    kafkaProducer,
		authService:      authService,
		providerService:  providerService,
		shipmentService:  shipmentService,
		analyticsService: analyticsService,
		exportService:    exportService,
	}

	server.setupRoutes()

	return server
}

// Start starts the HTTP server
func (s *Server) Start() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	// Close the Kafka producer
	if s.kafkaProducer != nil {
		if err := s.kafkaProducer.Close(); err != nil {
			s.logger.Error("Error closing Kafka producer", "error", err)
		}
	}

	// Close database connection
	if err := s.db.Close(); err != nil {
		s.logger.Error("Error closing database connection", "error", err)
	}

	return s.httpServer.Shutdown(ctx)
}

// setupRoutes configures all the routes for our API
func (s *Server) setupRoutes() {
	// Add middleware for all routes
	s.router.Use(s.loggingMiddleware)

	// API v1 routes
	api := s.router.PathPrefix("/api/v1").Subrouter()

	// Health check endpoint
	api.HandleFunc("/health", s.healthCheckHandler).Methods(http.MethodGet)

	// Auth endpoints
	api.HandleFunc("/auth/register", s.registerHandler).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", s.loginHandler).Methods(http.MethodPost)

	// Provider endpoints
	providers := api.PathPrefix("/providers").Subrouter()
	providers.Use(s.requireAuth)
	providers.HandleFunc("", s.createProviderHandler).Methods(http.MethodPost)
	providers.HandleFunc("", s.getProvidersHandler).Methods(http.MethodGet)
	providers.HandleFunc("/{providerId}", s.updateProviderHandler).Methods(http.MethodPut)
	providers.HandleFunc("/{providerId}", s.deleteProviderHandler).Methods(http.MethodDelete)

	// Shipment endpoints. Literal paths are registered before the
	// {shipmentId} routes so mux matches them first.
	shipments := api.PathPrefix("/shipments").Subrouter()
	shipments.Use(s.requireAuth)
	shipments.HandleFunc("", s.createShipmentHandler).Methods(http.MethodPost)
	shipments.HandleFunc("", s.getShipmentsHandler).Methods(http.MethodGet)
	shipments.HandleFunc("/bulk", s.createBulkShipmentsHandler).Methods(http.MethodPost)
	shipments.HandleFunc("/search", s.searchShipmentsHandler).Methods(http.MethodGet)
	shipments.HandleFunc("/by-provider/{providerId}", s.getShipmentsByProviderHandler).Methods(http.MethodGet)
	shipments.HandleFunc("/export/csv", s.exportShipmentsCSVHandler).Methods(http.MethodGet)
	shipments.HandleFunc("/export/csv/by-provider/{providerId}", s.exportShipmentsByProviderCSVHandler).Methods(http.MethodGet)
	shipments.HandleFunc("/delete-all", s.deleteAllShipmentsHandler).Methods(http.MethodDelete)
	shipments.HandleFunc("/{shipmentId}", s.getShipmentByIDHandler).Methods(http.MethodGet)
	shipments.HandleFunc("/{shipmentId}", s.updateShipmentHandler).Methods(http.MethodPatch)
	shipments.HandleFunc("/{shipmentId}", s.deleteShipmentHandler).Methods(http.MethodDelete)

	// Analytics endpoints
	analytics := api.PathPrefix("/analytics").Subrouter()
	analytics.Use(s.requireAuth)
	analytics.HandleFunc("/summary", s.getSummaryHandler).Methods(http.MethodGet)
	analytics.HandleFunc("/monthly-trends", s.getMonthlyTrendsHandler).Methods(http.MethodGet)
	analytics.HandleFunc("/average-delivery-time", s.getAverageDeliveryTimeHandler).Methods(http.MethodGet)
	analytics.HandleFunc("/provider-count", s.getProviderCountHandler).Methods(http.MethodGet)
	analytics.HandleFunc("/status-trend", s.getStatusTrendHandler).Methods(http.MethodGet)
	analytics.HandleFunc("/top-routes", s.getTopRoutesHandler).Methods(http.MethodGet)
}

// Package api provides the HTTP API surface over the money tracker schema.
// Handlers are thin persistence calls; report generation, email dispatch,
// and price fetching live in other services that consume this API.
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/money-tracker/internal/models"
	"github.com/money-tracker/internal/storage"
	"github.com/shopspring/decimal"
)

// Store interfaces for dependency injection and testing

// UserStore defines the user persistence operations the API needs.
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	SetSubscribed(ctx context.Context, id int64, subscribed bool) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, limit, offset int) ([]*models.User, error)
}

// AssetStore defines the asset persistence operations the API needs.
type AssetStore interface {
	Create(ctx context.Context, asset *models.Asset) error
	GetByID(ctx context.Context, id int64) (*models.Asset, error)
	GetBySymbol(ctx context.Context, symbol string) ([]*models.Asset, error)
	List(ctx context.Context, limit, offset int) ([]*models.Asset, error)
	Delete(ctx context.Context, id int64) error
}

// PortfolioStore defines the portfolio persistence operations the API needs.
type PortfolioStore interface {
	Create(ctx context.Context, portfolio *models.Portfolio) error
	GetByID(ctx context.Context, id int64) (*models.Portfolio, error)
	ListByUser(ctx context.Context, userID int64) ([]*models.Portfolio, error)
	Delete(ctx context.Context, id int64) error
}

// HoldingStore defines the holding persistence operations the API needs.
type HoldingStore interface {
	Create(ctx context.Context, holding *models.Holding) error
	UpdateQuantity(ctx context.Context, id int64, quantity decimal.Decimal) error
	ListByPortfolio(ctx context.Context, portfolioID int64) ([]*models.Holding, error)
	Delete(ctx context.Context, id int64) error
}

// PerformanceStore defines the report settings operations the API needs.
type PerformanceStore interface {
	Create(ctx context.Context, perf *models.Performance) error
	ListByUser(ctx context.Context, userID int64) ([]*models.Performance, error)
	UpdateLastSent(ctx context.Context, id int64, sentAt time.Time) error
	Delete(ctx context.Context, id int64) error
}

// QuoteStore defines the daily asset info operations the API needs.
type QuoteStore interface {
	Record(ctx context.Context, info *models.DailyAssetInfo) error
	LatestForAsset(ctx context.Context, assetID int64) (*models.DailyAssetInfo, error)
	ListByAsset(ctx context.Context, assetID int64, from, to time.Time) ([]*models.DailyAssetInfo, error)
}

// QuoteCache defines the latest-quote cache operations the API needs.
type QuoteCache interface {
	Put(ctx context.Context, info *models.DailyAssetInfo) error
	Latest(ctx context.Context, assetID int64) (*models.DailyAssetInfo, bool, error)
	Invalidate(ctx context.Context, assetID int64) error
}

// Server represents the HTTP API server.
type Server struct {
	router     *mux.Router
	httpServer *http.Server
	config     *ServerConfig

	users        UserStore
	assets       AssetStore
	portfolios   PortfolioStore
	holdings     HoldingStore
	performances PerformanceStore
	quotes       QuoteStore
	quoteCache   QuoteCache
}

// ServerConfig holds server configuration.
type ServerConfig struct {
	Host            string
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
	DefaultRPS      int // Requests per second for unsubscribed users
	SubscribedRPS   int // Requests per second for subscribed users
}

// Stores bundles the persistence dependencies of the server.
type Stores struct {
	Users        UserStore
	Assets       AssetStore
	Portfolios   PortfolioStore
	Holdings     HoldingStore
	Performances PerformanceStore
	Quotes       QuoteStore
	QuoteCache   QuoteCache
}

// NewStores builds the Stores bundle from concrete repositories.
func NewStores(db *storage.PostgresDB, cache *storage.QuoteCache) *Stores {
	return &Stores{
		Users:        storage.NewUserRepository(db),
		Assets:       storage.NewAssetRepository(db),
		Portfolios:   storage.NewPortfolioRepository(db),
		Holdings:     storage.NewHoldingRepository(db),
		Performances: storage.NewPerformanceRepository(db),
		Quotes:       storage.NewDailyAssetInfoRepository(db),
		QuoteCache:   cache,
	}
}

// NewServer creates a new API server instance.
func NewServer(config *ServerConfig, stores *Stores) *Server {
	s := &Server{
		router:       mux.NewRouter(),
		config:       config,
		users:        stores.Users,
		assets:       stores.Assets,
		portfolios:   stores.Portfolios,
		holdings:     stores.Holdings,
		performances: stores.Performances,
		quotes:       stores.Quotes,
		quoteCache:   stores.QuoteCache,
	}

	s.setupRouter()

	return s
}

// setupRouter configures the router with middleware and routes
func (s *Server) setupRouter() {
	rateLimiter := NewRateLimiter(s.config.DefaultRPS, s.config.SubscribedRPS)

	// Middleware order matters: request IDs first so logging sees them.
	s.router.Use(RequestIDMiddleware)
	s.router.Use(LoggingMiddleware)
	s.router.Use(RecoveryMiddleware)
	s.router.Use(CORSMiddleware)
	s.router.Use(RateLimitMiddleware(rateLimiter))

	s.setupRoutes()

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%s", s.config.Host, s.config.Port),
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  s.config.IdleTimeout,
	}
}

// setupRoutes configures all API routes.
func (s *Server) setupRoutes() {
	s.router.HandleFunc("/health", s.handleHealth).Methods("GET")

	api := s.router.PathPrefix("/api").Subrouter()

	// User endpoints
	api.HandleFunc("/users", s.handleCreateUser).Methods("POST")
	api.HandleFunc("/users", s.handleListUsers).Methods("GET")
	api.HandleFunc("/users/{id}", s.handleGetUser).Methods("GET")
	api.HandleFunc("/users/{id}/subscription", s.handleUpdateSubscription).Methods("PUT")
	api.HandleFunc("/users/{id}", s.handleDeleteUser).Methods("DELETE")
	api.HandleFunc("/users/{id}/portfolios", s.handleListUserPortfolios).Methods("GET")
	api.HandleFunc("/users/{id}/performances", s.handleListUserPerformances).Methods("GET")

	// Asset endpoints
	api.HandleFunc("/assets", s.handleCreateAsset).Methods("POST")
	api.HandleFunc("/assets", s.handleListAssets).Methods("GET")
	api.HandleFunc("/assets/{id}", s.handleGetAsset).Methods("GET")
	api.HandleFunc("/assets/{id}", s.handleDeleteAsset).Methods("DELETE")

	// Quote endpoints (price ingestion writes, readers consult the cache)
	api.HandleFunc("/assets/{id}/quotes", s.handleRecordQuote).Methods("POST")
	api.HandleFunc("/assets/{id}/quotes", s.handleListQuotes).Methods("GET")
	api.HandleFunc("/assets/{id}/quotes/latest", s.handleLatestQuote).Methods("GET")

	// Portfolio endpoints
	api.HandleFunc("/portfolios", s.handleCreatePortfolio).Methods("POST")
	api.HandleFunc("/portfolios/{id}", s.handleGetPortfolio).Methods("GET")
	api.HandleFunc("/portfolios/{id}", s.handleDeletePortfolio).Methods("DELETE")
	api.HandleFunc("/portfolios/{id}/holdings", s.handleCreateHolding).Methods("POST")
	api.HandleFunc("/portfolios/{id}/holdings", s.handleListHoldings).Methods("GET")

	// Holding endpoints
	api.HandleFunc("/holdings/{id}", s.handleUpdateHolding).Methods("PUT")
	api.HandleFunc("/holdings/{id}", s.handleDeleteHolding).Methods("DELETE")

	// Performance settings endpoints
	api.HandleFunc("/performances", s.handleCreatePerformance).Methods("POST")
	api.HandleFunc("/performances/{id}/sent", s.handleMarkPerformanceSent).Methods("PUT")
	api.HandleFunc("/performances/{id}", s.handleDeletePerformance).Methods("DELETE")
}

// handleHealth handles health check requests.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "money-tracker",
	})
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

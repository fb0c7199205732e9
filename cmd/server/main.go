package main

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"networth_tracker/internal/auth"
	"networth_tracker/internal/config"
	"networth_tracker/internal/database"
	"networth_tracker/internal/demo"
	"networth_tracker/internal/handlers"
	"networth_tracker/internal/linkfeed"
	"networth_tracker/internal/middleware"
	"networth_tracker/internal/repository"
	"networth_tracker/internal/services"
)

// App holds the application dependencies.
type App struct {
	config          *config.Config
	db              *database.DB
	router          *chi.Mux
	userRepo        *repository.UserRepository
	accountRepo     *repository.AccountRepository
	balanceRepo     *repository.BalanceRepository
	linkItemRepo    *repository.LinkItemRepository
	sessionManager  *auth.SessionManager
	authMiddleware  *middleware.AuthMiddleware
	authHandler     *handlers.AuthHandler
	accountHandler  *handlers.AccountHandler
	netWorthHandler *handlers.NetWorthHandler
}

func main() {
	// Load configuration
	cfg := config.New()

	// Initialize database
	db, err := database.New(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Run migrations
	if err := db.RunMigrations(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	// In demo mode, seed deterministic fixture data
	if cfg.DemoMode {
		seeder := demo.NewSeeder(db)
		if err := seeder.SeedIfEmpty(); err != nil {
			log.Fatalf("Failed to seed demo data: %v", err)
		}
	}

	// Create repositories
	userRepo := repository.NewUserRepository(db)
	accountRepo := repository.NewAccountRepository(db)
	balanceRepo := repository.NewBalanceRepository(db)
	linkItemRepo := repository.NewLinkItemRepository(db)

	// Choose the balance provider: Plaid when configured, deterministic
	// mock otherwise.
	provider, err := buildProvider(cfg)
	if err != nil {
		log.Fatalf("Failed to configure balance provider: %v", err)
	}
	log.Printf("Using %s balance provider", provider.Name())

	// Create services
	netWorthService := services.NewNetWorthService(accountRepo, balanceRepo)
	refreshService := services.NewRefreshService(accountRepo, balanceRepo, provider)

	// Create session manager and middleware
	sessionManager := auth.NewSessionManager(db)
	authMiddleware := middleware.NewAuthMiddleware(sessionManager, userRepo)

	// Create handlers
	authHandler := handlers.NewAuthHandler(userRepo, sessionManager)
	accountHandler := handlers.NewAccountHandler(accountRepo, balanceRepo, refreshService)
	netWorthHandler := handlers.NewNetWorthHandler(netWorthService)

	app := &App{
		config:          cfg,
		db:              db,
		userRepo:        userRepo,
		accountRepo:     accountRepo,
		balanceRepo:     balanceRepo,
		linkItemRepo:    linkItemRepo,
		sessionManager:  sessionManager,
		authMiddleware:  authMiddleware,
		authHandler:     authHandler,
		accountHandler:  accountHandler,
		netWorthHandler: netWorthHandler,
	}

	// Setup router
	app.setupRouter()

	// Create server
	server := &http.Server{
		Addr:         cfg.Address(),
		Handler:      app.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Server starting on http://%s", cfg.Address())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server stopped")
}

// buildProvider selects the linked-balance provider from configuration.
func buildProvider(cfg *config.Config) (linkfeed.Provider, error) {
	if cfg.PlaidClientID == "" {
		return linkfeed.NewMockProvider(), nil
	}
	return linkfeed.NewPlaidProvider(linkfeed.PlaidConfig{
		ClientID:    cfg.PlaidClientID,
		Secret:      cfg.PlaidSecret,
		Environment: cfg.PlaidEnvironment,
		AccessToken: cfg.PlaidAccessToken,
	})
}

func (app *App) setupRouter() {
	r := chi.NewRouter()

	// Chi middleware (aliased as chimw to avoid conflict with our middleware package)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)
	r.Use(chimw.RequestID)
	r.Use(chimw.Compress(5))

	// Security headers for all responses
	r.Use(middleware.SecurityHeaders)

	// Load user from session for all routes
	r.Use(app.authMiddleware.LoadUser)

	// Health check
	r.Get("/health", app.handleHealth)

	// Auth endpoints, rate limited to prevent brute force
	r.Group(func(r chi.Router) {
		r.Use(middleware.LimitAuth)
		r.Post("/api/v1/auth/login", app.authHandler.Login)
		r.Post("/api/v1/auth/logout", app.authHandler.Logout)
	})

	// Protected API
	r.Group(func(r chi.Router) {
		r.Use(app.authMiddleware.RequireAuth)
		r.Use(middleware.LimitAPI)

		r.Get("/api/v1/auth/me", app.authHandler.Me)

		// Accounts
		r.Get("/api/v1/accounts", app.accountHandler.List)
		r.Post("/api/v1/accounts", app.accountHandler.Create)
		r.Post("/api/v1/accounts/refresh", app.accountHandler.Refresh)
		r.Get("/api/v1/accounts/{id}", app.accountHandler.Get)
		r.Post("/api/v1/accounts/{id}/balance", app.accountHandler.UpdateBalance)
		r.Get("/api/v1/accounts/{id}/qr", app.accountHandler.QRCode)

		// Net worth
		r.Get("/api/v1/networth/summary", app.netWorthHandler.Summary)
		r.Get("/api/v1/networth/history", app.netWorthHandler.History)
		r.Get("/api/v1/networth/breakdown", app.netWorthHandler.Breakdown)
	})

	app.router = r
}

// handleHealth returns the server health status.
func (app *App) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"status": "ok",
	})
}

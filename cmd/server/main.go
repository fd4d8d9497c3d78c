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
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/spf13/viper"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/corebank/backend/docs"
	"github.com/corebank/backend/internal/database"
	"github.com/corebank/backend/internal/handlers"
	"github.com/corebank/backend/internal/metrics"
	mW "github.com/corebank/backend/internal/middleware"
	"github.com/corebank/backend/internal/services"
)

// @title Bank Core API
// @version 1.0
// @description Ledger and account-state engine: accounts, money movement, loans
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https

func main() {
	// Initialize config
	viper.SetConfigFile(".env") // explicitly point to .env file
	viper.AutomaticEnv()        // allow environment variables to override .env

	viper.BindEnv("database.host", "DATABASE_HOST")
	viper.BindEnv("database.port", "DATABASE_PORT")
	viper.BindEnv("database.user", "DATABASE_USER")
	viper.BindEnv("database.password", "DATABASE_PASSWORD")
	viper.BindEnv("database.name", "DATABASE_NAME")
	viper.BindEnv("database.ssl_mode", "DATABASE_SSL_MODE")

	viper.BindEnv("redis.host", "REDIS_HOST")
	viper.BindEnv("redis.port", "REDIS_PORT")
	viper.BindEnv("redis.password", "REDIS_PASSWORD")
	viper.BindEnv("redis.db", "REDIS_DB")

	viper.BindEnv("jwt.secret_key", "JWT_SECRET_KEY")
	viper.BindEnv("jwt.expiry_hours", "JWT_EXPIRY_HOURS")
	viper.BindEnv("argon2.time", "ARGON2_TIME")
	viper.BindEnv("argon2.memory", "ARGON2_MEMORY")
	viper.BindEnv("argon2.threads", "ARGON2_THREADS")
	viper.BindEnv("argon2.key_length", "ARGON2_KEY_LENGTH")
	viper.BindEnv("argon2.salt_length", "ARGON2_SALT_LENGTH")
	viper.BindEnv("admin.bootstrap_username", "ADMIN_BOOTSTRAP_USERNAME")
	viper.BindEnv("admin.bootstrap_password", "ADMIN_BOOTSTRAP_PASSWORD")

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Config file not found, using defaults: %v", err)
	}

	// Initialize Swagger docs
	docs.SwaggerInfo.Title = "Bank Core API"
	docs.SwaggerInfo.Description = "Ledger and account-state engine: accounts, money movement, loans"
	docs.SwaggerInfo.Version = "1.0"
	docs.SwaggerInfo.Host = "localhost:8080"
	docs.SwaggerInfo.BasePath = "/api/v1"
	docs.SwaggerInfo.Schemes = []string{"http", "https"}

	// Initialize datastore
	db := database.InitDatabase()
	defer db.Close()

	if err := database.InitSchema(db); err != nil {
		log.Fatalf("Failed to initialize schema: %v", err)
	}

	redisClient := database.InitRedis()
	if redisClient != nil {
		defer redisClient.Close()
	}

	// Initialize services
	collector := metrics.NewCollector()
	accountService := services.NewAccountService(db)
	ledgerService := services.NewLedgerService(db, collector)
	loanService := services.NewLoanService(db, collector)
	bankingService := services.NewBankingService(db, accountService, ledgerService, loanService, collector)
	twoFactorService := services.NewTwoFactorService(accountService)
	predictor := services.NewHeuristicPredictor()

	authHandler := handlers.NewAuthHandler(bankingService, twoFactorService, redisClient)
	transactionHandler := handlers.NewTransactionHandler(bankingService)
	loanHandler := handlers.NewLoanHandler(bankingService, predictor)
	adminHandler := handlers.NewAdminHandler(bankingService)

	// Initialize auth middleware with Redis
	mW.InitAuthMiddleware(redisClient)

	// Setup router
	r := chi.NewRouter()

	// Middleware
	r.Use(mW.SecurityHeaders)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(middleware.Timeout(60 * time.Second))

	// CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"status": "healthy"})
	})

	// Prometheus metrics
	r.Handle("/metrics", collector.Handler())

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("http://localhost:8080/swagger/doc.json"),
	))

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		// Public endpoints (no auth required)
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/admin/login", authHandler.AdminLogin)
		r.Post("/auth/logout", authHandler.Logout)

		// Protected endpoints (auth required)
		r.Group(func(r chi.Router) {
			r.Use(mW.AuthMiddleware)

			r.Get("/accounts/me", authHandler.Me)
			r.Get("/accounts/balance", transactionHandler.Balance)

			r.Get("/transactions", transactionHandler.History)
			r.Post("/transactions/deposit", transactionHandler.Deposit)
			r.Post("/transactions/withdraw", transactionHandler.Withdraw)
			r.Post("/transactions/transfer", transactionHandler.Transfer)

			r.Post("/loans", loanHandler.Submit)
			r.Get("/loans", loanHandler.List)

			r.Post("/auth/2fa/enable", authHandler.EnableTwoFactor)
			r.Get("/auth/2fa/qr", authHandler.TwoFactorQR)
			r.Post("/auth/2fa/verify", authHandler.VerifyTwoFactor)

			// Administrator endpoints
			r.Group(func(r chi.Router) {
				r.Use(mW.RequireAdmin)

				r.Get("/admin/accounts", adminHandler.ListAccounts)
				r.Delete("/admin/accounts/{accountNumber}", adminHandler.DeleteAccount)
				r.Get("/admin/transactions", adminHandler.AllTransactions)
				r.Get("/admin/loans", adminHandler.ListLoans)
				r.Put("/admin/loans/{applicationID}/decision", adminHandler.DecideLoan)
				r.Post("/admin/admins", adminHandler.CreateAdmin)
				r.Get("/admin/admins", adminHandler.ListAdmins)
				r.Get("/admin/stats", adminHandler.Stats)
			})
		})
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	// Start server
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Printf("Server starting on :%s", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server stopped")
}

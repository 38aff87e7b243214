package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"lempek/internal/auth"
	"lempek/internal/config"
	"lempek/internal/handler"
	"lempek/internal/middleware"
	"lempek/internal/repository/postgres"
	"lempek/internal/seed"
	"lempek/internal/service"
	"lempek/internal/storage"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET must be set")
	}

	// Setup structured logging
	logLevel := slog.LevelInfo
	if cfg.Environment == "dev" {
		logLevel = slog.LevelDebug
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"data_dir", cfg.DataDir,
	)

	// Create pgx connection pool
	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to create connection pool: %v", err)
	}
	defer pool.Close()

	logger.Info("database connected")

	// Create the on-disk content store
	store, err := storage.NewDirStore(cfg.DataDir)
	if err != nil {
		log.Fatalf("Failed to open data directory: %v", err)
	}

	// Create repositories
	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Logger: logger,
	}
	folderRepo := postgres.NewFolderRepository(repoConfig)
	fileRepo := postgres.NewFileRepository(repoConfig)
	permRepo := postgres.NewPermissionRepository(repoConfig)
	userRepo := postgres.NewUserRepository(repoConfig)
	tokenRepo := postgres.NewTokenRepository(repoConfig)
	txManager := postgres.NewTransactionManager(pool, logger)

	// Create services
	signer := auth.NewTokens(cfg.JWTSecret, cfg.AccessTTL, cfg.RefreshTTL)
	gate := service.NewPermissionGate(permRepo)
	folderService := service.NewFolderService(folderRepo, permRepo, gate, txManager, store, logger)
	fileService := service.NewFileService(fileRepo, folderRepo, gate, txManager, store, logger)
	authService := service.NewAuthService(userRepo, tokenRepo, permRepo, txManager, signer, logger)

	// Apply bootstrap state (admin account, top-level folders)
	bootstrap, err := config.LoadBootstrap(cfg.BootstrapFile)
	if err != nil {
		log.Fatalf("Failed to load bootstrap: %v", err)
	}
	seeder := seed.New(userRepo, permRepo, txManager, folderService, logger)
	if err := seeder.Apply(ctx, bootstrap); err != nil {
		log.Fatalf("Failed to apply bootstrap: %v", err)
	}

	// Create handlers
	secureCookies := cfg.Environment != "dev"
	authHandler := handler.NewAuthHandler(authService, signer, secureCookies, logger)
	folderHandler := handler.NewFolderHandler(folderService, logger)
	fileHandler := handler.NewFileHandler(fileService, logger)

	logger.Info("services initialized")

	// Create HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	// Auth routes
	mux.HandleFunc("POST /api/register", authHandler.Register)
	mux.HandleFunc("POST /api/login", authHandler.Login)
	mux.HandleFunc("POST /api/refresh", authHandler.Refresh)
	mux.HandleFunc("POST /api/logout", authHandler.Logout)
	mux.HandleFunc("GET /api/user", authHandler.CurrentUser)
	mux.HandleFunc("POST /api/user/password", authHandler.ChangePassword)
	mux.HandleFunc("GET /api/user/tokens", authHandler.ListSessions)
	mux.HandleFunc("DELETE /api/user/tokens/{id}", authHandler.RevokeSession)

	// Folder routes
	mux.HandleFunc("POST /api/folders", folderHandler.CreateFolder)
	mux.HandleFunc("GET /api/folders", folderHandler.ListFolders)
	mux.HandleFunc("GET /api/folders/all", folderHandler.ListAllFolders)
	mux.HandleFunc("GET /api/folders/{id}/path", folderHandler.GetFolderPath)
	mux.HandleFunc("PATCH /api/folders/{id}", folderHandler.RenameFolder)
	mux.HandleFunc("DELETE /api/folders/{id}", folderHandler.DeleteFolder)

	// File routes
	mux.HandleFunc("POST /api/files", fileHandler.UploadFile)
	mux.HandleFunc("GET /api/files", fileHandler.ListFiles)
	mux.HandleFunc("GET /api/files/all", fileHandler.ListAllFiles)
	mux.HandleFunc("PATCH /api/files/{id}", fileHandler.RenameFile)
	mux.HandleFunc("DELETE /api/files/{id}", fileHandler.DeleteFile)

	// Build middleware chain
	var httpHandler http.Handler = mux

	// Apply middleware in reverse order (they wrap each other)
	// Order: CORS → Recovery → Auth → Routes
	httpHandler = middleware.Auth(signer)(httpHandler)
	httpHandler = middleware.Recovery(logger)(httpHandler)

	// CORS - Must be before auth to handle OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	})
	httpHandler = corsHandler.Handler(httpHandler)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      httpHandler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server, shut down cleanly on SIGINT/SIGTERM
	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "port", cfg.Port)
		errCh <- server.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	case <-stop:
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown failed", "error", err)
		}
	}
}

package main

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/inkpost/inkpost-go/internal/auth"
	"github.com/inkpost/inkpost-go/internal/config"
	"github.com/inkpost/inkpost-go/internal/handler"
	"github.com/inkpost/inkpost-go/internal/middleware"
	"github.com/inkpost/inkpost-go/internal/repository"
	"github.com/inkpost/inkpost-go/internal/service"
	"github.com/inkpost/inkpost-go/internal/storage"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, using environment variables")
	}

	cfg := config.Load()
	setupLogging(cfg.LogDir)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	db, err := repository.NewDB(ctx, cfg.DatabaseDSN)
	cancel()
	if err != nil {
		slog.Error("database setup failed", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	uploads, err := storage.NewDiskStore(cfg.UploadDir)
	if err != nil {
		slog.Error("upload store setup failed", "error", err)
		os.Exit(1)
	}

	guard := auth.NewGuard(cfg.JWTSecret)

	userRepo := repository.NewUserRepository(db)
	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTExpiry)
	authHandler := handler.NewAuthHandler(authService)

	postRepo := repository.NewPostRepository(db)
	postService := service.NewPostService(postRepo, guard)
	postHandler := handler.NewPostHandler(postService, uploads)

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Metrics)
	r.Use(middleware.WithIdentity(guard))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Post("/user/register", authHandler.HandleRegister)
	r.Post("/user/login", authHandler.HandleLogin)
	r.Get("/user/profile", authHandler.HandleProfile)
	r.Post("/user/logout", authHandler.HandleLogout)

	r.Post("/post/newpost", postHandler.HandleCreate)
	r.Put("/post/update", postHandler.HandleUpdate)
	r.Get("/post/{id}", postHandler.HandleGet)
	r.Get("/allposts", postHandler.HandleList)

	r.Handle("/uploads/*", http.StripPrefix("/uploads/",
		http.FileServer(http.Dir(uploads.Dir()))))

	corsWrapper := cors.New(cors.Options{
		AllowedOrigins:   []string{cfg.CORSOrigin},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: corsWrapper.Handler(r),
	}

	go func() {
		slog.Info("server starting", "port", cfg.Port, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}

// setupLogging routes slog to stdout, plus a rotating file when logDir
// is configured.
func setupLogging(logDir string) {
	var out io.Writer = os.Stdout
	if logDir != "" {
		out = io.MultiWriter(os.Stdout, &lumberjack.Logger{
			Filename:   filepath.Join(logDir, "inkpost.log"),
			MaxSize:    100,
			MaxBackups: 3,
			MaxAge:     28,
			Compress:   true,
		})
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(out, nil)))
}

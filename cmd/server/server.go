package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"wikiquiz/app"
	"wikiquiz/config"
	"wikiquiz/handlers"
	"wikiquiz/logging"
	"wikiquiz/session"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	logger, err := logging.New(cfg.Env)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	if err := cfg.Validate(); err != nil {
		logger.Fatalf("Invalid configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	application, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Fatalf("Failed to initialize services: %v", err)
	}
	defer application.Close()

	sessions := session.NewStore(ctx, application.Quizzes, application.History, cfg.SessionTTL, logger)
	go sessions.Run(ctx)

	pageHandler, err := handlers.NewPageHandler(sessions, logger)
	if err != nil {
		logger.Fatalf("Failed to initialize page handler: %v", err)
	}
	quizHandler := handlers.NewQuizHandler(application.Quizzes, logger)
	historyHandler := handlers.NewHistoryHandler(application.History, logger)

	router := mux.NewRouter()
	router.Use(requestLogger(logger))

	api := router.PathPrefix("/api").Subrouter()
	api.Use(corsMiddleware)
	api.Use(jsonMiddleware)
	api.PathPrefix("/").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods("OPTIONS")

	quizHandler.RegisterRoutes(api)
	historyHandler.RegisterRoutes(api)

	router.HandleFunc("/health", healthCheckHandler).Methods("GET")
	pageHandler.RegisterRoutes(router)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Errorf("Server shutdown failed: %v", err)
		}
	}()

	logger.Infof("Server starting on port %s", cfg.Port)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatalf("Server failed to start: %v", err)
	}
	logger.Infof("Server stopped")
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "*")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func jsonMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}

func requestLogger(logger *zap.SugaredLogger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			logger.Debugw("Handled request", "method", r.Method, "path", r.URL.Path, "duration", time.Since(start))
		})
	}
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "healthy"}`))
}

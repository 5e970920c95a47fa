package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/bookshelf-web/internal/bookapi"
	"github.com/bookshelf-web/internal/config"
	"github.com/bookshelf-web/internal/logging"
	"github.com/bookshelf-web/internal/preview"
	"github.com/bookshelf-web/internal/web"
)

func main() {
	// Best-effort .env load so os.Getenv picks values from it.
	_ = godotenv.Load()

	lg, err := logging.Init(logging.ConfigFromEnv())
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer lg.Sync()
	sugar := lg.Sugar()

	cfg := config.Load()
	sugar.Infow("starting bookshelf-web", "api_base_url", cfg.API.BaseURL)

	previews, err := preview.NewStore(cfg.Preview.Dir)
	if err != nil {
		sugar.Fatalf("preview store: %v", err)
	}

	janitor := preview.NewJanitor(previews, cfg.Preview.TTL, sugar)
	if err := janitor.Start(); err != nil {
		sugar.Fatalf("preview janitor: %v", err)
	}

	api := bookapi.NewClient(cfg.API)
	handler := web.NewHandler(api, previews, cfg.Preview.TTL, sugar)
	router := web.NewRouter(handler, sugar)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		sugar.Infof("server listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			sugar.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	sugar.Info("shutting down")
	janitor.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		sugar.Warnf("server shutdown error: %v", err)
	}

	sugar.Info("server stopped")
}

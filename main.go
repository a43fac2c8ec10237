package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"codeexplainer/config"
	"codeexplainer/internal/explain"
	"codeexplainer/internal/github"
	"codeexplainer/internal/repotree"
	"codeexplainer/logging"

	"github.com/sirupsen/logrus"
)

func main() {
	if err := config.LoadConfig(os.Getenv("CODEEXPLAINER_CONFIG")); err != nil {
		logrus.Fatalf("Error loading configuration: %v", err)
	}

	logging.InitLogger()

	engine, err := explain.NewEngineFromConfig(config.AppConfig)
	if err != nil {
		logrus.Fatalf("Error initializing explanation engine: %v", err)
	}
	gh := github.NewClient(config.AppConfig.GitHub, repotree.FilterFromConfig())

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", config.AppConfig.Server.Port),
		Handler:           newServer(engine, gh).routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logrus.Warnf("Server shutdown: %v", err)
		}
	}()

	logrus.WithField("ai_enabled", engine.AIEnabled()).Infof("Starting server on port %s...", srv.Addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logrus.Fatalf("Failed to start server: %v", err)
	}
}

package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/NeuralTrust/AgeLock/pkg/config"
	"github.com/NeuralTrust/AgeLock/pkg/dependency_container"
	"github.com/NeuralTrust/AgeLock/pkg/infra/jwt"
	infraLogger "github.com/NeuralTrust/AgeLock/pkg/infra/logger"
	"github.com/NeuralTrust/AgeLock/pkg/server"
	"github.com/NeuralTrust/AgeLock/pkg/server/router"
	"github.com/NeuralTrust/AgeLock/pkg/version"
	"github.com/joho/godotenv"
)

func main() {
	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil {
		log.Println("no .env file found, using system environment variables")
	}

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config"
	}
	if err := config.Load(configPath); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	cfg := config.GetConfig()

	// "agelock token" prints an admin bearer token and exits.
	if len(os.Args) > 1 && os.Args[1] == "token" {
		token, err := jwt.NewJwtManager(&cfg.Server).CreateToken()
		if err != nil {
			log.Fatalf("failed to create admin token: %v", err)
		}
		fmt.Println(token)
		return
	}

	logger, logCloser, err := infraLogger.NewLogger(infraLogger.Config{
		Level: cfg.Logging.Level,
		Dir:   cfg.Logging.Dir,
		File:  cfg.Logging.File,
	})
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer logCloser.Close()

	logger.WithField("version", version.GetInfo().String()).Info("starting")

	container, err := dependency_container.NewContainer(cfg, logger)
	if err != nil {
		logger.Fatalf("failed to initialize dependencies: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	container.Start(ctx)

	srv := server.NewAPIServer(server.APIServerDI{
		Config: cfg,
		Logger: logger,
		Routers: []router.ServerRouter{
			router.NewAPIRouter(container.MiddlewareTransport, container.AdminAuthMiddleware, container.HandlerTransport),
		},
	})

	go func() {
		if err := srv.Run(); err != nil {
			logger.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	fmt.Println("shutting down server...")
	cancel()

	done := make(chan error, 1)
	go func() { done <- srv.Shutdown() }()
	select {
	case err := <-done:
		if err != nil {
			logger.WithError(err).Error("error shutting down server")
		}
	case <-time.After(10 * time.Second):
		logger.Error("server shutdown timed out")
	}
	if err := container.Close(); err != nil {
		logger.WithError(err).Warn("error closing redis client")
	}
	fmt.Println("server gracefully stopped")
}

package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/Nogs0/bot-api-Vercel/internal/app"
	"github.com/Nogs0/bot-api-Vercel/internal/config"
	"github.com/Nogs0/bot-api-Vercel/internal/handler"
	internalRedis "github.com/Nogs0/bot-api-Vercel/internal/redis"
	"github.com/Nogs0/bot-api-Vercel/internal/repository"
	"github.com/Nogs0/bot-api-Vercel/internal/repository/memory"
	"github.com/Nogs0/bot-api-Vercel/internal/repository/postgres"
	"github.com/Nogs0/bot-api-Vercel/internal/service"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:   "server",
	Short: "Driver availability webhook service for the chat bot",
	Long: `Serves the webhook endpoints called by the chat bot integration:
driver registration and listing, online/offline toggling from group
messages, and the away message listing the drivers currently online.`,
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "optional config file (environment variables take precedence)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("config.Load(%q): %w", cfgPath, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Initialize New Relic FIRST (before database so we can instrument DB).
	var nrApp *newrelic.Application
	if cfg.NewRelic.Enabled && cfg.NewRelic.LicenseKey != "" {
		nrApp, err = newrelic.NewApplication(
			newrelic.ConfigAppName(cfg.NewRelic.AppName),
			newrelic.ConfigLicense(cfg.NewRelic.LicenseKey),
			newrelic.ConfigDistributedTracerEnabled(true),
			newrelic.ConfigAppLogForwardingEnabled(true),
		)
		if err != nil {
			log.Printf("failed to initialize New Relic: %v", err)
		} else {
			log.Printf("New Relic enabled: app=%s", cfg.NewRelic.AppName)
			defer nrApp.Shutdown(5 * time.Second)
		}
	}

	var driverRepo repository.DriverRepository
	switch cfg.Store.Driver {
	case config.StoreMemory:
		driverRepo = memory.NewDriverRepository()
		log.Println("Using in-memory driver store")
	default:
		var db *sql.DB
		db, err = app.NewDatabase(ctx, cfg.Database, nrApp)
		if err != nil {
			return fmt.Errorf("connecting to database: %w", err)
		}
		defer db.Close()
		driverRepo = postgres.NewDriverRepository(db)
		log.Println("Connected to PostgreSQL")
	}

	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient, err = app.NewRedisClient(ctx, cfg.Redis, nrApp)
		if err != nil {
			return fmt.Errorf("connecting to redis: %w", err)
		}
		defer redisClient.Close()
		log.Println("Connected to Redis")
	}

	server := wireServer(driverRepo, redisClient, nrApp, cfg)

	serveErr := make(chan error, 1)
	go func() {
		log.Printf("HTTP Server is running on port %s", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-serveErr:
		return fmt.Errorf("server error: %w", err)
	case <-quit:
	}
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Println("Server exited")
	return nil
}

// wireServer wires all dependencies and returns the HTTP server.
func wireServer(driverRepo repository.DriverRepository, redisClient *redis.Client, nrApp *newrelic.Application, cfg *config.Config) *http.Server {
	var driverCache internalRedis.DriverCacheInterface
	if redisClient != nil {
		driverCache = internalRedis.NewCacheStore(redisClient)
	}

	driverService := service.NewDriverService(driverRepo, driverCache)

	router := app.NewRouter(app.RouterDeps{
		DriverHandler: handler.NewDriverHandler(driverService),
		ChatHandler:   handler.NewChatHandler(driverService),
		RedisClient:   redisClient,
		NewRelicApp:   nrApp,
	})

	return &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
}

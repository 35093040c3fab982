package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/LovationAdmin/finance-api/config"
	"github.com/LovationAdmin/finance-api/handlers"
	"github.com/LovationAdmin/finance-api/routes"
	"github.com/LovationAdmin/finance-api/utils"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	utils.ConfigureLogging(cfg.IsProduction(), cfg.LogLevel)
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := config.RunMigrations(cfg); err != nil {
		log.Fatal("Failed to run migrations: ", err)
	}

	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database: ", err)
	}
	utils.SafeInfo("Database connected (%s)", cfg.DBDriver)

	wsHandler := handlers.NewWSHandler()
	router := routes.SetupRouter(cfg, routes.NewServices(db, cfg), wsHandler)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		utils.LogStartup("finance-api", routes.Version, cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server: ", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	utils.SafeInfo("Shutdown signal received: %s", sig)

	// Hijacked websocket connections are not tracked by Shutdown
	if err := wsHandler.Close(); err != nil {
		utils.SafeWarn("closing websocket hub: %v", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		utils.SafeError("Server forced to shutdown: %v", err)
	}

	if err := db.Close(); err != nil {
		utils.SafeError("closing database: %v", err)
	}
	utils.SafeInfo("Server stopped")
}

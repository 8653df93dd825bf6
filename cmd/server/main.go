package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"levelup/backend/internal/config"
	"levelup/backend/internal/database"
	"levelup/backend/internal/hub"
	"levelup/backend/internal/server"

	"github.com/gin-gonic/gin"

	// Swagger imports
	_ "levelup/backend/docs" // registers the API description served at /swagger
)

func init() {
	config.LoadConfig()
}

// @title           Levelup API
// @version         1.0
// @description     This is the API for the Levelup gamer events service.
// @host            localhost:8080
// @BasePath        /
// @securityDefinitions.apiKey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.AppConfig
	gin.SetMode(cfg.GinMode)

	// Connect to the database
	database.Connect(cfg)

	router := server.NewRouter(database.DB, []byte(cfg.JWTSecret), hub.NewHub())

	// Request contexts end when shutdown starts so open event streams return.
	baseCtx, stopStreams := context.WithCancel(context.Background())

	// No WriteTimeout: event streams stay open for as long as the client listens.
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		IdleTimeout:       60 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return baseCtx },
	}
	srv.RegisterOnShutdown(stopStreams)

	go func() {
		log.Printf("Server is running on :%s", cfg.Port)
		log.Printf("Swagger UI is available at http://localhost:%s/swagger/index.html", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Block until SIGINT or SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("graceful shutdown failed: %v", err)
	}

	if sqlDB, err := database.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
	log.Println("Server stopped")
}

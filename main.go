package main

import (
	"GameHub/config"
	_ "GameHub/config/swagger"
	"GameHub/controllers"
	"GameHub/middleware"
	"GameHub/routes"
	"GameHub/services/dialogs"
	"GameHub/services/events"
	"GameHub/services/notifications"
	"GameHub/services/socket_io"
	"GameHub/services/store"
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

// @title GameHub API
// @version 1.0
// @description Gin-Gonic server for the GameHub gaming portal API
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
func main() {
	godotenv.Load()
	log.Println("Setting up server...")

	if os.Getenv("PROD") == "true" {
		gin.SetMode(gin.ReleaseMode)
	}

	kv, err := config.NewStorage()
	if err != nil {
		log.Fatalf("Error setting up storage: %v", err)
	}
	defer kv.Close()

	bus := events.NewBus(64)
	defer bus.Close()

	entityStore, err := store.New(kv, bus)
	if err != nil {
		log.Fatalf("Error loading collections: %v", err)
	}

	gamesAsset := os.Getenv("GAMES_ASSET")
	if gamesAsset == "" {
		gamesAsset = "assets/games.json"
	}
	if err := entityStore.SeedGames(gamesAsset); err != nil {
		log.Printf("Warning: games catalog not seeded: %v", err)
	}

	if err := controllers.EnsureAdmin(entityStore); err != nil {
		log.Fatalf("Error seeding admin account: %v", err)
	}

	toasts := notifications.NewCenter(kv)
	defer toasts.Close()

	dialogCoord := dialogs.NewCoordinator()

	r := gin.Default()

	middleware.SetUpMiddleware(r)

	prom := middleware.NewPrometheusMiddleware("gamehub")
	r.Use(prom.Handler())
	prom.RegisterMetricsEndpoint(r)

	sioServer := socket_io.NewSocketServer()
	sioServer.Start(r, bus)
	defer sioServer.Close()

	routes.SetupRoutes(r, entityStore, toasts, dialogCoord)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	go func() {
		log.Printf("Server started on port %s", port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Error starting server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}
	log.Println("Server stopped")
}

package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/mealbasket/gateway/internal/router"
	"github.com/mealbasket/gateway/pkg/backend"
	"github.com/mealbasket/gateway/pkg/cart"
	"github.com/mealbasket/gateway/pkg/events"
	"github.com/mealbasket/gateway/pkg/favorites"
	"github.com/mealbasket/gateway/pkg/global"
	"github.com/mealbasket/gateway/pkg/session"
	"github.com/mealbasket/gateway/pkg/storage"
)

func main() {

	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	store := storage.NewRedisStore(storage.NewRedisClient())
	ctx, cancel := global.GetDefaultTimer()
	defer cancel()
	if err := store.Ping(ctx); err != nil {
		log.Fatalf("Failed to ping Redis: %v", err)
	}
	log.Println("Connected to Redis successfully")

	client := backend.New(global.GetBackendBaseURL())
	bus := events.NewBus()

	api := router.NewAPI(
		client,
		session.NewStore(store),
		cart.NewStore(store),
		favorites.NewStore(store),
		bus,
	)
	engine := router.NewEngine(api)

	port := global.GetEnvOrDefault("PORT", "8000")
	log.Printf("Gateway is running on port %s", port)

	if err := engine.Run(":" + port); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}

package main

import (
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"cargo-route-service/internal/adapters/cache"
	"cargo-route-service/internal/adapters/repositories"
	"cargo-route-service/internal/api"
	"cargo-route-service/internal/config"
	"cargo-route-service/internal/metrics"
	"cargo-route-service/internal/platform/db"
	"cargo-route-service/internal/ports"
)

// main is the application composition root.
// It wires concrete adapters (Postgres or in-memory store, optional Redis
// matrix cache) behind ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	port := config.Get("PORT", "8080")
	seedPath := os.Getenv("SEED_PATH")

	var store ports.FleetStore

	if databaseURL := strings.TrimSpace(os.Getenv("DATABASE_URL")); databaseURL != "" {
		sqlDB, err := db.Open(databaseURL)
		if err != nil {
			log.Fatal(err)
		}
		defer sqlDB.Close()

		if err := repositories.InitSchema(sqlDB); err != nil {
			log.Fatal(err)
		}
		if seedPath != "" {
			if err := repositories.SeedFromJSON(sqlDB, seedPath); err != nil {
				log.Fatal(err)
			}
		}

		store = repositories.NewPostgresFleetStore(sqlDB)
		log.Printf("store=postgres")
	} else {
		mem := repositories.NewMemoryFleetStore()
		if seedPath != "" {
			if err := mem.LoadSeed(seedPath); err != nil {
				log.Fatal(err)
			}
		}

		store = mem
		log.Printf("store=memory (set DATABASE_URL for persistence)")
	}

	var matrixCache ports.MatrixCache
	if redisURL := strings.TrimSpace(os.Getenv("REDIS_URL")); redisURL != "" {
		c, err := cache.NewRedisMatrixCache(redisURL, time.Hour)
		if err != nil {
			log.Fatal(err)
		}
		matrixCache = c
		log.Printf("matrix_cache=redis")
	}

	metrics.RegisterDefault()
	router := api.NewRouter(store, matrixCache)

	log.Printf("Server listening addr=:%s", port)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

package main

import (
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"todolist/handlers"
	"todolist/utils"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	// Load environment variables
	if os.Getenv("APP_ENV") != "production" {
		if err := godotenv.Load(); err != nil {
			log.Println("No .env file found, continuing..")
		}
	}

	pgDSN := envOr("DATABASE_URL", "postgres://localhost:5432/todolist")

	// Initialize the database connection pool
	dbPool, err := utils.OpenDB(pgDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer dbPool.Close()

	store := utils.NewPGTaskStore(dbPool)

	// The list cache is optional: no REDIS_URL means no cache.
	cache := &utils.ListCache{}
	if redisDSN := os.Getenv("REDIS_URL"); redisDSN != "" {
		client := utils.OpenRedisPool(redisDSN)
		defer client.Close()
		cache.Client = client
	}

	// Set up the HTTP server and handlers
	mux := http.NewServeMux()

	mux.HandleFunc("/api/todos", func(w http.ResponseWriter, r *http.Request) {
		handlers.Tasks(w, r, store, cache)
	})
	mux.HandleFunc("/api/todos/", func(w http.ResponseWriter, r *http.Request) {
		handlers.TaskByID(w, r, store, cache)
	})
	mux.HandleFunc("/api/health", handlers.Health)

	// Start the server
	port := envOr("PORT", "8080")
	log.Println("Starting server on :" + port)
	log.Fatal(http.ListenAndServe(":"+port, mux))
}

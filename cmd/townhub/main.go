package main

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/townhub-dev/townhub/db"
	"github.com/townhub-dev/townhub/internal/auth"
	"github.com/townhub-dev/townhub/internal/router"
	"github.com/townhub-dev/townhub/internal/scheduler"
)

func main() {
	var err error

	err = godotenv.Load()

	if err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	if err = auth.InitJWTSecret(); err != nil {
		log.Fatalf("Failed to initialize JWT secret: %v", err)
	}

	dsn := os.Getenv("DATABASE_URL")

	if dsn == "" {
		log.Fatal("DATABASE_URL environment variable is not set")
	}

	if err = db.ConnectDatabase(dsn); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err = db.MigrateDatabase(); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// Optional background prune of stale delivery records.
	if intervalStr := os.Getenv("CLEANUP_INTERVAL_HOURS"); intervalStr != "" {
		hours, err := strconv.Atoi(intervalStr)

		if err != nil || hours <= 0 {
			log.Fatalf("Invalid CLEANUP_INTERVAL_HOURS: %q", intervalStr)
		}

		scheduler.Initialize(time.Duration(hours) * time.Hour)
		defer scheduler.Shutdown()
	}

	r := router.NewRouter()

	var port string

	if port = os.Getenv("PORT"); port == "" {
		port = "3000"
		log.Println("PORT not set, defaulting to 3000")
	}

	if err = r.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

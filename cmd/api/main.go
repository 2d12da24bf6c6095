// server/cmd/api/main.go
package main

import (
	"log"

	"phc-ops-api-server/config"
	"phc-ops-api-server/internal/api/routes"
	"phc-ops-api-server/internal/auth"
	"phc-ops-api-server/internal/database"
	"phc-ops-api-server/internal/scheduler"
	"phc-ops-api-server/internal/socket"
	"phc-ops-api-server/internal/triage"

	"github.com/joho/godotenv"
)

func main() {
	// 1. Load configuration (.env is optional, used in local development)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on config file and environment")
	}
	cfg, err := config.LoadConfig("./config")
	if err != nil {
		log.Fatalf("Could not load config: %v", err)
	}
	auth.SetSecret(cfg.JWT.Secret)

	// 2. Connect to the store and run migrations
	db, err := database.Connect(cfg.Database.DSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	database.Migrate(db)

	// 3. Make sure the LGA admin account exists
	if err := database.SeedLGAAdmin(db); err != nil {
		log.Printf("Warning: could not seed LGA admin: %v", err)
	}

	// 4. Triage collaborator; nil means the rule-based fallback handles
	// every triage call
	var classifier triage.Classifier
	if gemini := triage.NewGeminiClient(cfg.Gemini.APIKey, cfg.Gemini.Model, cfg.Gemini.BaseURL); gemini != nil {
		classifier = gemini
	} else {
		log.Println("Gemini API key not configured; triage will use the rule-based classifier")
	}

	// 5. WebSocket hub for overload and restock notifications
	wsHub := socket.NewHub()

	// 6. Daily workload-log reset
	sched := scheduler.New(db, cfg.Scheduler.Timezone)
	if err := sched.Start(); err != nil {
		log.Fatalf("Failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	// 7. Wire everything into the router and start serving
	router := routes.SetupRouter(cfg, db, classifier, wsHub)

	log.Printf("Starting API server on port %s", cfg.Server.Port)
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}

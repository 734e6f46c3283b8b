package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"time"

	"pocketledger/api"
	"pocketledger/config"
	"pocketledger/database"
)

func main() {
	// Parse command line flags
	configPath := flag.String("config", "", "Path to a config file (defaults to ./config.yaml when present)")
	migrateOnly := flag.Bool("migrate-only", false, "Exit after database setup")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}

	// Initialize database and bring the schema up to date
	err = database.InitDB(cfg.Database.Path)
	if err != nil {
		log.Fatal(err)
	}

	if *migrateOnly {
		log.Println("Database setup completed successfully. Exiting.")
		return
	}

	// Create the API server
	srv := api.NewServer(database.DB, cfg)

	httpSrv := &http.Server{
		Handler:      srv.Handler(),
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
	}

	// Start the server
	log.Printf("Starting server on port %d...", cfg.Server.Port)
	log.Fatal(httpSrv.ListenAndServe())
}

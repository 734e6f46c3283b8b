package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"pocketledger/config"
	"pocketledger/database"
)

func main() {
	configPath := flag.String("config", "", "Path to a config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// InitDB runs all pending migrations
	err = database.InitDB(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	fmt.Println("Migrations completed successfully!")
	os.Exit(0)
}

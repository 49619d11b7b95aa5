package main

import (
	"lms/config"
	"lms/database"
	"log"
)

func main() {
	// Load config and connect to database
	config.LoadConfig()
	database.ConnectDb()

	if err := database.SeedDemoData(database.Database.Db); err != nil {
		log.Fatalf("Failed to seed demo data: %v", err)
	}

	log.Println("Demo data seed finished")
}

package main

import (
	"log"

	"github.com/sahilchouksey/student-management-api/config"
	"github.com/sahilchouksey/student-management-api/database"
)

// Standalone seeder: creates the initial admin credential from ADMIN_EMAIL and
// ADMIN_PASSWORD without starting the server.
func main() {
	if err := config.LoadENV(); err != nil {
		log.Println("No .env file loaded:", err)
	}

	store, err := database.StartGORM()
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer store.Close()

	if err := store.Init(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	if err := database.RunSeeds(store.DB()); err != nil {
		log.Fatal("Seeding failed:", err)
	}

	log.Println("Seeding completed")
}

// Command main runs the database seeder for Wishwell.
package main

import (
	"flag"
	"log"

	"wishwell/internal/config"
	"wishwell/internal/database"
	"wishwell/internal/seed"

	"github.com/joho/godotenv"
)

func main() {
	numUsers := flag.Int("users", 25, "Number of users to create")
	wishesPerUser := flag.Int("wishes", 8, "Number of wishes per user")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	fixtures := flag.String("fixtures", "", "Apply a YAML fixture file instead of random data")
	flag.Parse()

	log.Println("🌱 Database Seeder")
	log.Println("==================")

	if err := godotenv.Load(); err == nil {
		log.Println("Loaded configuration from .env")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if *fixtures != "" {
		log.Printf("Applying fixture file: %s", *fixtures)
		if *shouldClean {
			if err := seed.ClearAll(db); err != nil {
				log.Fatalf("❌ Cleanup failed: %v", err)
			}
		}
		file, err := seed.LoadFixtureFile(*fixtures)
		if err != nil {
			log.Fatalf("❌ Fixture load failed: %v", err)
		}
		if err := seed.ApplyFixtures(db, file); err != nil {
			log.Fatalf("❌ Fixture seeding failed: %v", err)
		}
	} else {
		opts := seed.DefaultOptions()
		opts.NumUsers = *numUsers
		opts.WishesPerUser = *wishesPerUser
		opts.ShouldClean = *shouldClean
		if err := seed.Seed(db, opts); err != nil {
			log.Fatalf("❌ Seeding failed: %v", err)
		}
	}

	log.Println("✨ All done! Your database is now populated.")
	log.Printf("📧 All seeded users have the password: %s", seed.DefaultPassword)
}

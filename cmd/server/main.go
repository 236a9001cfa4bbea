package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"

	"cashbook/internal/config"
	"cashbook/internal/database"
	httpserver "cashbook/internal/http"
)

func main() {
	_ = godotenv.Load(".env")

	database.Connect()
	if err := database.Migrate(database.DB); err != nil {
		log.Fatal("migrate: ", err)
	}

	cfg := config.Load()
	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		log.Fatal("create upload dir: ", err)
	}

	r := httpserver.NewServer(cfg, database.DB)
	log.Printf("listening on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}

package main

import (
	"context"
	"log"
	"os"

	"go-pos-terminal/internal/config"
	"go-pos-terminal/internal/repository"
	"go-pos-terminal/internal/service"
	"go-pos-terminal/pkg/database"
	"go-pos-terminal/pkg/logger"

	"github.com/spf13/viper"
)

// usage: reset-password [username] [new-password]
// Defaults to admin / admin123.
func main() {
	username, newPassword := "admin", "admin123"
	if len(os.Args) > 1 {
		username = os.Args[1]
	}
	if len(os.Args) > 2 {
		newPassword = os.Args[2]
	}

	// 1. Load config (.env, pos.yaml, POS_* env)
	cfg, err := config.LoadConfig(viper.New(), os.Getenv("POS_CONFIG"))
	if err != nil {
		log.Fatalf("❌ Failed to load config: %v", err)
	}

	zl, err := logger.NewZapLogger(cfg.ZapConfig())
	if err != nil {
		log.Fatalf("❌ Failed to build logger: %v", err)
	}
	defer zl.Sync()

	// 2. Setup Database
	db, err := database.ConnectDB(cfg.Database(), zl)
	if err != nil {
		log.Fatalf("❌ %v", err)
	}
	defer database.Close(db)

	// 3. Reset
	auth := service.NewAuthService(repository.NewUserRepo(db), zl)
	if err := auth.ResetPassword(context.Background(), username, newPassword); err != nil {
		log.Fatalf("❌ Failed to reset password for %s: %v", username, err)
	}

	log.Printf("✅ Success! Password for %s has been reset to: %s", username, newPassword)
}

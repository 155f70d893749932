// Command seedadmin creates or resets the initial admin account.
//
//	go run ./cmd/seedadmin -username admin -password <secret>
package main

import (
	"flag"
	"os"

	"stockdash/internal/config"
	"stockdash/internal/infra"
	"stockdash/internal/model"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm/clause"
)

func main() {
	username := flag.String("username", "admin", "admin username")
	password := flag.String("password", "", "admin password (required)")
	name := flag.String("name", "Administrator", "display name")
	flag.Parse()

	if *password == "" {
		log.Error().Msg("-password is required")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}
	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), 12)
	if err != nil {
		log.Fatal().Err(err).Msg("password hash failed")
	}

	user := &model.User{
		Username:     *username,
		Name:         *name,
		PasswordHash: string(hash),
		Role:         "admin",
		Active:       true,
	}
	err = db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "username"}},
		DoUpdates: clause.AssignmentColumns([]string{"password_hash", "role", "active"}),
	}).Create(user).Error
	if err != nil {
		log.Fatal().Err(err).Msg("admin seed failed")
	}

	log.Info().Str("username", *username).Msg("admin account ready")
}

package database

import (
	"errors"
	"log"

	"github.com/sahilchouksey/student-management-api/config"
	"github.com/sahilchouksey/student-management-api/model"
	"github.com/sahilchouksey/student-management-api/utils/auth"
	"gorm.io/gorm"
)

// RunSeeds creates the initial admin credential from ADMIN_EMAIL / ADMIN_PASSWORD.
// Skipped when the variables are unset or the admin already exists.
func RunSeeds(db *gorm.DB) error {
	getEnv, err := config.Get()
	if err != nil {
		return err
	}

	if getEnv.ADMIN_EMAIL == "" || getEnv.ADMIN_PASSWORD == "" {
		log.Println("ADMIN_EMAIL / ADMIN_PASSWORD not set, skipping admin seed")
		return nil
	}

	var existing model.User
	err = db.Where("email = ?", getEnv.ADMIN_EMAIL).First(&existing).Error
	if err == nil {
		log.Println("Admin user already exists, skipping")
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := auth.HashPassword(getEnv.ADMIN_PASSWORD)
	if err != nil {
		return err
	}

	admin := model.User{
		Email:        getEnv.ADMIN_EMAIL,
		PasswordHash: hash,
		Role:         model.RoleAdmin,
		IsActive:     true,
	}

	if err := db.Create(&admin).Error; err != nil {
		return err
	}

	log.Println("Admin user created:", getEnv.ADMIN_EMAIL)
	return nil
}

package models

import (
	"github.com/rogtrack/rog-api/internal/constants"
	"github.com/rogtrack/rog-api/internal/logger"

	"golang.org/x/crypto/bcrypt"
)

// InitDefaultUser creates the bootstrap API account when no users exist.
func InitDefaultUser(username, password string) error {
	var count int64
	DB.Model(&User{}).Count(&count)
	if count > 0 {
		return nil
	}

	if username == "" {
		username = "rog"
	}
	if password == "" {
		password = "rog12345"
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user := User{
		Username:     username,
		PasswordHash: string(hash),
		IsActive:     true,
	}
	if err := DB.Create(&user).Error; err != nil {
		return err
	}

	if password == "rog12345" {
		logger.Warnw("default_user_created_with_default_password", "username", username)
		logger.Warnw("default_user_password_change_required", "username", username)
	} else {
		logger.Warnw("default_user_created", "username", username, "password_hidden", true)
	}
	return nil
}

// InitDicCatalog seeds the DIC reference table with workflow codes.
func InitDicCatalog() error {
	entries := []Dic{
		{Code: constants.DicAS2, Description: "Shipment receipt acknowledgment"},
		{Code: constants.DicAE1, Description: "Supply status"},
		{Code: constants.DicD6T, Description: "Quantity receipt confirmation"},
		{Code: constants.DicCOR, Description: "Correction / closeout"},
	}
	for _, entry := range entries {
		var count int64
		if err := DB.Model(&Dic{}).Where("code = ?", entry.Code).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}
		if err := DB.Create(&entry).Error; err != nil {
			return err
		}
	}
	return nil
}

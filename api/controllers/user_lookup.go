package controllers

import (
	"errors"
	"strconv"
	"strings"

	"github.com/caiocardoso28/flask-project/api/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// resolveUserByIdentifier accepts a numeric ID, a public UUID, or a
// username, in that order of preference.
func resolveUserByIdentifier(db *gorm.DB, identifier string) (*models.User, error) {
	trimmed := strings.TrimSpace(identifier)
	if trimmed == "" {
		return nil, gorm.ErrRecordNotFound
	}

	var user models.User
	if id, err := strconv.ParseUint(trimmed, 10, 32); err == nil {
		if err := db.First(&user, uint(id)).Error; err == nil {
			return &user, nil
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	if _, err := uuid.Parse(trimmed); err == nil {
		if err := db.Where("public_id = ?", trimmed).First(&user).Error; err == nil {
			return &user, nil
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	username := strings.ToLower(trimmed)
	if err := db.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

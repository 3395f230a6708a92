package services

import (
	"errors"

	"nutrisnap/config"
	"nutrisnap/models"
)

func GetUserProfile(userID uint) (map[string]interface{}, error) {
	var user models.User
	result := config.DB.Where("id = ? AND disabled = ?", userID, false).First(&user)
	if result.Error != nil {
		return nil, errors.New("user not found or disabled")
	}

	return map[string]interface{}{
		"id":        user.ID,
		"email":     user.Email,
		"full_name": user.FullName,
		"verified":  user.Verified,
	}, nil
}

func UpdateUserProfile(userID uint, fullName string) error {
	var user models.User
	result := config.DB.Where("id = ? AND disabled = ?", userID, false).First(&user)
	if result.Error != nil {
		return errors.New("user not found or disabled")
	}

	if fullName != "" {
		user.FullName = fullName
	}

	return config.DB.Save(&user).Error
}

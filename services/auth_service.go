package services

import (
	"errors"
	"log"

	"nutrisnap/config"
	"nutrisnap/models"
	"nutrisnap/utils"
)

func RegisterUser(email, password, fullName string) error {
	hashedPassword, err := utils.HashPassword(password)
	if err != nil {
		return err
	}

	user := models.User{
		Email:       email,
		Password:    hashedPassword,
		FullName:    fullName,
		VerifyToken: utils.GenerateRandomToken(16),
	}

	if err := config.DB.Create(&user).Error; err != nil {
		return err
	}

	// best effort: a failed mail never fails the registration
	if err := utils.SendVerificationEmail(user.Email, user.VerifyToken); err != nil {
		log.Printf("verification email to %s failed: %v", user.Email, err)
	}
	return nil
}

func VerifyUser(token string) error {
	if token == "" {
		return errors.New("missing verification token")
	}
	var user models.User
	if err := config.DB.Where("verify_token = ? AND verify_token <> ''", token).First(&user).Error; err != nil {
		return errors.New("invalid verification token")
	}
	user.Verified = true
	user.VerifyToken = ""
	return config.DB.Save(&user).Error
}

func AuthenticateUser(email, password string) (string, error) {
	var user models.User
	result := config.DB.Where("email = ? AND disabled = ?", email, false).First(&user)
	if result.Error != nil {
		return "", errors.New("user not found or disabled")
	}

	if !utils.CheckPasswordHash(password, user.Password) {
		return "", errors.New("incorrect password")
	}
	if !user.Verified {
		return "", errors.New("account not verified")
	}

	return utils.GenerateJWT(user.ID, user.Email)
}

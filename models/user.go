package models

import (
	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Email       string `gorm:"uniqueIndex;not null"`
	Password    string `gorm:"not null"`
	FullName    string
	Verified    bool
	VerifyToken string `gorm:"size:64"`
	Disabled    bool
}

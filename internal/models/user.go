// internal/models/user.go
package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

type User struct {
	BaseModel
	Name         string     `json:"name" gorm:"size:100;not null"`
	Email        string     `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string     `json:"-" gorm:"size:255;not null"`
	ProfilePic   string     `json:"profile_pic,omitempty" gorm:"size:512"`
	Role         UserRole   `json:"role" gorm:"type:varchar(20);default:'user'"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty"`

	// Relationships
	Books           []Book  `json:"books,omitempty" gorm:"foreignKey:OwnerID"`
	TradesInitiated []Trade `json:"trades_initiated,omitempty" gorm:"foreignKey:RequesterID"`
	TradesReceived  []Trade `json:"trades_received,omitempty" gorm:"foreignKey:OwnerID"`
}

func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hashedPassword)
	return nil
}

func (u *User) CheckPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
}

package models

import (
	"time"

	"github.com/angelmondragon/storefront-backend/pkg/enums"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User represents an account. Email is unique and compared case-sensitively.
type User struct {
	ID                     uuid.UUID  `gorm:"column:id;type:uuid;primaryKey"`
	Email                  string     `gorm:"column:email;type:text;not null;uniqueIndex"`
	PasswordHash           string     `gorm:"column:password_hash;not null"`
	FirstName              string     `gorm:"column:first_name;not null"`
	LastName               string     `gorm:"column:last_name;not null"`
	Avatar                 string     `gorm:"column:avatar;not null;default:''"`
	Role                   enums.Role `gorm:"column:role;type:text;not null;default:'USER'"`
	IsActive               bool       `gorm:"column:is_active;not null;default:true"`
	PasswordResetCode      *string    `gorm:"column:password_reset_code;index"`
	PasswordResetExpiresAt *time.Time `gorm:"column:password_reset_expires_at"`
	CreatedAt              time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt              time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

func (u *User) BeforeCreate(*gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

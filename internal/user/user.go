package user

import (
	"time"

	"github.com/mwicaksana/construction-management/internal/permissions"
)

// User is the persisted account row. PasswordHash never leaves the
// package through JSON.
type User struct {
	ID            int64                     `json:"id" gorm:"primaryKey"`
	Email         string                    `json:"email" gorm:"uniqueIndex;not null"`
	Name          string                    `json:"name" gorm:"not null"`
	PasswordHash  string                    `json:"-" gorm:"column:password_hash;not null"`
	IsActive      bool                      `json:"is_active" gorm:"column:is_active;default:true"`
	CapabilitySet permissions.CapabilitySet `json:"capability_set" gorm:"column:capability_set;default:0"`
	CreatedAt     time.Time                 `json:"created_at" gorm:"column:created_at;default:now()"`
	UpdatedAt     time.Time                 `json:"updated_at" gorm:"column:updated_at;default:now()"`
}

func (User) TableName() string {
	return "users"
}

// RoleLabel is the display name for the user's capability set.
func (u *User) RoleLabel() string {
	return permissions.EstimateRoleLabel(u.CapabilitySet)
}

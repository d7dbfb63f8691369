package models

import (
	"time"

	"github.com/google/uuid"
)

// Brand is a seller identity owned by a user account, optionally restricted
// to a subset of categories it may list into.
type Brand struct {
	ID          uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	UserID      uuid.UUID       `gorm:"column:user_id;type:uuid;not null;index"`
	Name        string          `gorm:"column:name;not null"`
	Slug        string          `gorm:"column:slug;not null;uniqueIndex"`
	Description *string         `gorm:"column:description"`
	Logo        *string         `gorm:"column:logo"`
	IsActive    bool            `gorm:"column:is_active;not null;default:true"`
	User        *User           `gorm:"foreignKey:UserID"`
	Categories  []BrandCategory `gorm:"foreignKey:BrandID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/smuvr/spraby/pkg/enums"
)

// User is the account record the identity collaborator resolves callers to.
// Login, tokens, and sessions live outside this service; only the id and the
// assigned role are consumed here.
type User struct {
	ID        uuid.UUID  `gorm:"column:id;type:uuid;primaryKey"`
	Name      string     `gorm:"column:name;not null"`
	Email     string     `gorm:"column:email;not null;uniqueIndex"`
	Role      enums.Role `gorm:"column:role;not null;default:'customer'"`
	IsActive  bool       `gorm:"column:is_active;not null;default:true"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

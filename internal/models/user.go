package models

import (
	"time"
)

// UserConfig is a free-form preferences blob stored as JSON.
type UserConfig struct {
	Tags   []string `json:"tags,omitempty"`
	Status string   `json:"status,omitempty"`
	Theme  string   `json:"theme,omitempty"`
}

type User struct {
	ID        uint64      `gorm:"primarykey" json:"id"`
	Name      string      `gorm:"type:varchar(255);not null" json:"name"`
	Email     string      `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Config    *UserConfig `gorm:"serializer:json" json:"config,omitempty"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`

	// Relations
	Todos []Todo `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"todos,omitempty"`
}

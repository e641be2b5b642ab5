package models

import (
	"time"
)

type Todo struct {
	ID          uint64     `gorm:"primarykey" json:"id"`
	Title       string     `gorm:"type:varchar(500);not null" json:"title"`
	Completed   bool       `gorm:"not null;default:false" json:"completed"`
	UserID      *uint64    `gorm:"index" json:"userId"`
	StartedTime *time.Time `json:"startedTime"`
	// Duration is the allotted window in minutes, counted from StartedTime.
	Duration  *int      `json:"duration"`
	Tags      []string  `gorm:"serializer:json" json:"tags"`
	IsExpired bool      `gorm:"not null;default:false" json:"isExpired"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Relations
	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
}

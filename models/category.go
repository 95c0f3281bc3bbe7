package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Category groups products. Name and Description are required; Image is an optional
// filename under the uploads directory.
type Category struct {
	ID          string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Name        string    `gorm:"not null;index" json:"name"`
	Description string    `gorm:"not null" json:"description"`
	Image       string    `json:"image"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// URL is the detail page of the category.
func (c Category) URL() string {
	return "/category/" + c.ID
}

// AssignID gives the category a fresh id unless it already has one.
func (c *Category) AssignID() {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	c.AssignID()
	return nil
}

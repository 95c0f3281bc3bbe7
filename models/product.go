package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product is a sellable item that belongs to exactly one Category.
type Product struct {
	ID            string          `gorm:"primaryKey;type:varchar(36)" json:"id"`
	CategoryID    string          `gorm:"type:varchar(36);not null;index" json:"category_id"` // Foreign key to Category
	Category      Category        `gorm:"foreignKey:CategoryID" json:"category"`
	Name          string          `gorm:"not null" json:"name"`
	Description   string          `gorm:"not null" json:"description"`
	Price         decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	NumberInStock int             `gorm:"not null" json:"number_in_stock"`
	Image         string          `json:"image"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

// URL is the detail page of the product.
func (p Product) URL() string {
	return "/product/" + p.ID
}

// PriceLabel formats the price with two decimals for display.
func (p Product) PriceLabel() string {
	return p.Price.StringFixed(2)
}

func (p *Product) AssignID() {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	p.AssignID()
	return nil
}

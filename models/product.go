package models

import (
	"time"

	"gorm.io/datatypes"
)

// Product is the flat storefront row mirrored from journey catalog entries.
// ID is the journey product id.
type Product struct {
	ID          string                      `gorm:"primaryKey;size:120" json:"id"`
	Name        string                      `gorm:"not null;size:200" json:"name"`
	Description string                      `gorm:"type:text" json:"description"`
	Price       float64                     `gorm:"not null;default:0" json:"price"`
	Images      datatypes.JSONSlice[string] `json:"images"`
	CategoryID  *uint                       `gorm:"index" json:"categoryId,omitempty"`
	Category    *Category                   `gorm:"foreignKey:CategoryID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`
	CreatedAt   time.Time                   `json:"createdAt"`
	UpdatedAt   time.Time                   `json:"updatedAt"`
}

type Category struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	Name     string    `gorm:"not null;size:100" json:"name"`
	Slug     string    `gorm:"not null;size:100;uniqueIndex" json:"slug"`
	Products []Product `gorm:"foreignKey:CategoryID" json:"-"`
}

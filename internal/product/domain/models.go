// Package domain contains persistence models for the product catalog.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// DefaultUOM is the fallback unit of measure.
const DefaultUOM = "pieces"

// Product is a catalog entry. Invoices copy its values at creation time;
// later edits never touch past invoices.
type Product struct {
	ID          snowflake.ID `json:"id" gorm:"primaryKey"`
	Name        string       `json:"name" gorm:"type:text;not null;index"`
	Category    string       `json:"category,omitempty" gorm:"type:text"`
	Description string       `json:"description,omitempty" gorm:"type:text"`
	HSN         string       `json:"hsn,omitempty" gorm:"type:text"`

	DefaultTaxRate *float64 `json:"default_tax_rate,omitempty"`
	DefaultRate    *float64 `json:"default_rate,omitempty"`
	UOM            string   `json:"uom" gorm:"type:text;not null;default:'pieces'"`

	CreatedAt time.Time `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (Product) TableName() string { return "products" }

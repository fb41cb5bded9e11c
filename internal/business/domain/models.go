// Package domain contains persistence models for GST-registered businesses.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Business represents a GST-registered entity. One row doubles as the
// operating business when referenced by the Settings singleton; the rest
// are businesses linked from customers.
type Business struct {
	ID        snowflake.ID `json:"id" gorm:"primaryKey"`
	LegalName string       `json:"legal_name" gorm:"type:text;not null"`
	TradeName string       `json:"trade_name,omitempty" gorm:"type:text"`

	// GSTIN is the natural key for lookup-or-create: the unique index makes
	// concurrent creates resolve to a single row.
	GSTIN     *string `json:"gstin,omitempty" gorm:"type:text;uniqueIndex:ux_businesses_gstin"`
	PAN       string  `json:"pan,omitempty" gorm:"type:text"`
	StateCode string  `json:"state_code,omitempty" gorm:"type:text"`

	Phone1   string `json:"phone_1,omitempty" gorm:"column:phone_1;type:text"`
	Phone2   string `json:"phone_2,omitempty" gorm:"column:phone_2;type:text"`
	Email1   string `json:"email_1,omitempty" gorm:"column:email_1;type:text"`
	Email2   string `json:"email_2,omitempty" gorm:"column:email_2;type:text"`
	Address1 string `json:"address_1,omitempty" gorm:"column:address_1;type:text"`
	Address2 string `json:"address_2,omitempty" gorm:"column:address_2;type:text"`
	City     string `json:"city,omitempty" gorm:"type:text"`
	State    string `json:"state,omitempty" gorm:"type:text"`
	Pincode  string `json:"pincode,omitempty" gorm:"type:text"`

	// Logo is a base64 data URI, small enough to inline in responses.
	Logo    string `json:"logo,omitempty" gorm:"type:text"`
	Website string `json:"website,omitempty" gorm:"type:text"`
	Notes   string `json:"notes,omitempty" gorm:"type:text"`

	CreatedAt time.Time `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (Business) TableName() string { return "businesses" }

// Settings is the single-row record pointing at the operating business.
// The fixed primary key replaces the old "first document in the collection"
// convention and gives concurrent upserts a key to conflict on.
type Settings struct {
	ID         int16        `json:"-" gorm:"primaryKey"`
	BusinessID snowflake.ID `json:"business_id" gorm:"not null"`
	CreatedAt  time.Time    `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt  time.Time    `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (Settings) TableName() string { return "settings" }

// SettingsRowID is the only valid Settings primary key.
const SettingsRowID int16 = 1

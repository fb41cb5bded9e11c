// Package domain contains persistence models for customers.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// UnlinkedBusinessName is stored when a customer has no GST-registered
// business behind it.
const UnlinkedBusinessName = "NA"

// Customer is a billed party. The business reference is denormalized: the
// id points at a Business row, the name is copied so listings never join.
type Customer struct {
	ID       snowflake.ID `json:"id" gorm:"primaryKey"`
	Name     string       `json:"name" gorm:"type:text;not null"`
	Nickname string       `json:"nickname,omitempty" gorm:"type:text"`
	GSTIN    string       `json:"gstin,omitempty" gorm:"type:text"`

	Phone1 string `json:"phone_1,omitempty" gorm:"column:phone_1;type:text"`
	Phone2 string `json:"phone_2,omitempty" gorm:"column:phone_2;type:text"`
	Email1 string `json:"email_1,omitempty" gorm:"column:email_1;type:text"`
	Email2 string `json:"email_2,omitempty" gorm:"column:email_2;type:text"`

	Address1 string `json:"address_1,omitempty" gorm:"column:address_1;type:text"`
	City     string `json:"city,omitempty" gorm:"type:text"`
	State    string `json:"state,omitempty" gorm:"type:text"`
	Pincode  string `json:"pincode,omitempty" gorm:"type:text"`

	Address2 string `json:"address_2,omitempty" gorm:"column:address_2;type:text"`
	City2    string `json:"city_2,omitempty" gorm:"column:city_2;type:text"`
	State2   string `json:"state_2,omitempty" gorm:"column:state_2;type:text"`
	Pincode2 string `json:"pincode_2,omitempty" gorm:"column:pincode_2;type:text"`

	HasBusinessWithGST bool          `json:"has_business_with_gst" gorm:"not null;default:false"`
	BusinessID         *snowflake.ID `json:"business_id" gorm:"index"`
	BusinessName       string        `json:"business_name" gorm:"type:text;not null;default:'NA'"`

	CreatedAt time.Time `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (Customer) TableName() string { return "customers" }

package models

import "time"

// Order is the reference set for attributing payment attempts. Rows are loaded
// by the order store migration jobs and are read-only here.
type Order struct {
	ID            int       `gorm:"primary_key" json:"id"`
	OrderId       string    `gorm:"size:64;uniqueIndex;not null" json:"order_id"`
	CustomerEmail string    `gorm:"size:255;default:null" json:"customer_email"`
	IsTest        bool      `gorm:"not null;default:false" json:"is_test"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

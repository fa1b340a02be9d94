package models

import "time"

// StoreSettings is the single row of store-wide discount policy. InitDB seeds
// it with the defaults the storefront expects.
type StoreSettings struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	ApplyRule     string    `gorm:"default:'lowest'" json:"apply_rule"` // "lowest" or "highest"
	ShowTo        string    `gorm:"default:'all'" json:"show_to"`       // "all" or "logged_in"
	ExclusiveRule string    `json:"exclusive_rule"`                     // rule title, empty disables exclusivity
	FromText      string    `gorm:"default:'From'" json:"from_text"`
	UpdatedAt     time.Time `json:"updated_at"`
}

package models

import (
	"time"

	"gorm.io/gorm"
)

// Filter list kinds for rule scope entries
const (
	FilterInclude = "include"
	FilterExclude = "exclude"
)

// DiscountRule is one configured discount definition. Amount and MinOrder are
// stored as strings, exactly as the admin UI submits them; the discount
// package normalizes them (defaulting to zero on bad input) when the rule
// snapshot is built. Position fixes the evaluation order, which matters for
// tie-breaks.
type DiscountRule struct {
	gorm.Model
	Title        string `gorm:"uniqueIndex;not null" json:"title"`
	DiscountOn   string `json:"discount_on"`   // "product" or "total"
	DiscountType string `json:"discount_type"` // "percent" or "flat"
	Amount       string `json:"amount"`
	MinOrder     string `json:"min_order"`
	IsActive     string `gorm:"default:'yes'" json:"is_active"` // "yes" or "no"
	Position     int    `gorm:"index" json:"position"`

	// Storefront notice banner styling, served as-is via /v1/notice.
	ShowNotice string `gorm:"default:'no'" json:"show_notice"`
	NoticeText string `json:"notice_text"`
	TextColor  string `json:"text_color"`
	BgColor    string `json:"bg_color"`

	ProductFilters  []RuleProductFilter  `gorm:"foreignKey:RuleID" json:"product_filters,omitempty"`
	CategoryFilters []RuleCategoryFilter `gorm:"foreignKey:RuleID" json:"category_filters,omitempty"`
}

// RuleProductFilter is one include/exclude product entry of a rule. ParentID
// and Label are picker metadata kept for the admin UI.
type RuleProductFilter struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	RuleID    uint      `gorm:"index;not null" json:"rule_id"`
	Kind      string    `gorm:"not null" json:"kind"` // FilterInclude or FilterExclude
	ProductID uint      `gorm:"not null" json:"product_id"`
	ParentID  uint      `gorm:"default:0" json:"parent_id"`
	Label     string    `json:"label"`
	CreatedAt time.Time `json:"created_at"`
}

// RuleCategoryFilter is one include/exclude category entry of a rule
type RuleCategoryFilter struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	RuleID     uint      `gorm:"index;not null" json:"rule_id"`
	Kind       string    `gorm:"not null" json:"kind"`
	CategoryID uint      `gorm:"not null" json:"category_id"`
	Label      string    `json:"label"`
	CreatedAt  time.Time `json:"created_at"`
}

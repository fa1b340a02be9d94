package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents a storefront customer
type User struct {
	gorm.Model
	Username    string    `gorm:"uniqueIndex;not null" json:"username"`
	Email       string    `gorm:"uniqueIndex;not null" json:"email"`
	Password    string    `json:"-"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	IsBlocked   bool      `json:"is_blocked"`
	LastLoginAt time.Time `json:"last_login_at"`
}

// Admin represents an administrator who manages rules and the catalog
type Admin struct {
	gorm.Model
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Password  string    `json:"-"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	LastLogin time.Time `json:"last_login"`
	IsActive  bool      `json:"is_active" gorm:"default:true"`
}

// BlacklistedToken stores JWTs invalidated by logout until they expire
type BlacklistedToken struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Token     string    `gorm:"uniqueIndex;not null" json:"token"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// Category represents a product category
type Category struct {
	gorm.Model
	Name        string    `gorm:"uniqueIndex" json:"name"`
	Description string    `json:"description"`
	Products    []Product `gorm:"many2many:product_categories;" json:"-"`
}

// Product represents a catalog item. A variation carries the parent product's
// id in ParentID; standalone products and parents have ParentID = 0.
type Product struct {
	gorm.Model
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Price       float64    `json:"price"`
	ParentID    uint       `gorm:"index;default:0" json:"parent_id"`
	Active      bool       `gorm:"default:true" json:"active"`
	Categories  []Category `gorm:"many2many:product_categories;" json:"categories,omitempty"`
}

// CartItem is a logged-in user's cart line. CustomPrice and OriginalPrice are
// set when a product-level discount applied at add-to-cart time; both stay
// nil for undiscounted lines.
type CartItem struct {
	gorm.Model
	UserID        uint     `gorm:"index" json:"user_id"`
	ProductID     uint     `json:"product_id"`
	Product       Product  `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Quantity      int      `json:"quantity"`
	CustomPrice   *float64 `json:"custom_price,omitempty"`
	OriginalPrice *float64 `json:"original_price,omitempty"`
}

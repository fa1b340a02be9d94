package utils

// Application constants
const (
	// Application name
	AppName = "PriceRules"

	// API version
	APIVersion = "v1"

	// Default port
	DefaultPort = "8080"

	// JWT token expiration (24 hours)
	JWTExpiration = "24h"

	// Default pagination limit
	DefaultPaginationLimit = 10

	// Maximum pagination limit
	MaxPaginationLimit = 100

	// Minimum password length
	MinPasswordLength = 8

	// Maximum password length
	MaxPasswordLength = 32
)

// Error messages
const (
	// Authentication errors
	ErrInvalidCredentials = "Invalid email or password"
	ErrUserBlocked        = "Your account has been blocked"
	ErrInvalidToken       = "Invalid or expired token"
	ErrUnauthorized       = "Unauthorized access"

	// Validation errors
	ErrInvalidEmail      = "Invalid email format"
	ErrInvalidPassword   = "Password must be at least 8 characters long and contain at least one uppercase letter, one lowercase letter, one number, and one special character"
	ErrInvalidPrice      = "Price must be greater than 0"
	ErrInvalidPagination = "Invalid pagination parameters"

	// Database errors
	ErrRecordNotFound = "Record not found"
	ErrDuplicateEntry = "Duplicate entry"

	// Server errors
	ErrInternalServer = "Internal server error"
)

// Success messages
const (
	MsgLoginSuccess    = "Login successful"
	MsgLogoutSuccess   = "Logout successful"
	MsgRegisterSuccess = "Registration successful"
	MsgCreateSuccess   = "Created successfully"
	MsgUpdateSuccess   = "Updated successfully"
	MsgDeleteSuccess   = "Deleted successfully"
)

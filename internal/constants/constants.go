package constants

// Pagination bounds
const (
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Field length limits
const (
	MaxTitleLength = 500
	MaxTagLength   = 50
	MaxNameLength  = 255
)

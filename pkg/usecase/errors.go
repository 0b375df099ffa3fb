package usecase

import "errors"

// Sentinel errors for use case layer
var (
	// Not found errors
	ErrAssessmentNotFound = errors.New("assessment not found")

	// Authentication errors
	ErrUnauthenticated = errors.New("authentication required")
	ErrInvalidToken    = errors.New("invalid or expired access token")
	ErrNoUserInfo      = errors.New("could not extract user information from token")
)

// Context keys for error values
const (
	AssessmentIDKey = "assessment_id"
	UserIDKey       = "user_id"
)

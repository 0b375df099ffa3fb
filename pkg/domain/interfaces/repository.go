package interfaces

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/airisk/pkg/domain/model"
	"github.com/secmon-lab/airisk/pkg/domain/types"
)

var (
	// ErrNotFound is returned when a record does not exist or belongs to another user
	ErrNotFound = goerr.New("not found")
)

// Repository defines the interface for data persistence
type Repository interface {
	Assessment() AssessmentRepository

	// Ping checks that the backend is reachable
	Ping(ctx context.Context) error
	Close() error
}

// AssessmentRepository stores assessments keyed by the submitting user.
// Records of other users are invisible: Get and Delete return ErrNotFound.
type AssessmentRepository interface {
	// Create assigns ID and CreatedAt and stores the record
	Create(ctx context.Context, assessment *model.Assessment) (*model.Assessment, error)
	Get(ctx context.Context, userID string, id types.AssessmentID) (*model.Assessment, error)
	// List returns the user's assessments, newest first
	List(ctx context.Context, userID string) ([]*model.Assessment, error)
	Delete(ctx context.Context, userID string, id types.AssessmentID) error
}

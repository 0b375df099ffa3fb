package types

import (
	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
)

// AssessmentID is the opaque identifier of a stored assessment
type AssessmentID string

// NewAssessmentID generates a random UUIDv4 identifier
func NewAssessmentID() AssessmentID {
	return AssessmentID(uuid.NewString())
}

// Validate checks that the ID is a UUID
func (id AssessmentID) Validate() error {
	if id == "" {
		return goerr.New("assessment ID cannot be empty")
	}
	if _, err := uuid.Parse(string(id)); err != nil {
		return goerr.Wrap(err, "assessment ID must be a UUID", goerr.V("id", string(id)))
	}
	return nil
}

func (id AssessmentID) String() string {
	return string(id)
}

package usecase

import "time"

// SetAssessmentClock replaces the clock used for export file names
func SetAssessmentClock(uc *AssessmentUseCase, now func() time.Time) {
	uc.now = now
}

// TokenDigest is exported for testing
var TokenDigest = tokenDigest

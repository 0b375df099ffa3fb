package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/airisk/pkg/domain/interfaces"
	"github.com/secmon-lab/airisk/pkg/domain/model"
	"github.com/secmon-lab/airisk/pkg/domain/types"
)

type assessmentRepository struct {
	mu sync.RWMutex
	// userID -> id -> record
	records map[string]map[types.AssessmentID]*model.Assessment
}

func newAssessmentRepository() *assessmentRepository {
	return &assessmentRepository{
		records: make(map[string]map[types.AssessmentID]*model.Assessment),
	}
}

func (r *assessmentRepository) Create(ctx context.Context, a *model.Assessment) (*model.Assessment, error) {
	if a.UserID == "" {
		return nil, goerr.New("user ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	created := a.Copy()
	created.ID = types.NewAssessmentID()
	created.CreatedAt = time.Now().UTC()

	if _, exists := r.records[created.UserID]; !exists {
		r.records[created.UserID] = make(map[types.AssessmentID]*model.Assessment)
	}
	r.records[created.UserID][created.ID] = created

	return created.Copy(), nil
}

func (r *assessmentRepository) Get(ctx context.Context, userID string, id types.AssessmentID) (*model.Assessment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, exists := r.records[userID][id]
	if !exists {
		return nil, goerr.Wrap(interfaces.ErrNotFound, "assessment not found", goerr.V("id", id))
	}

	return a.Copy(), nil
}

func (r *assessmentRepository) List(ctx context.Context, userID string) ([]*model.Assessment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user := r.records[userID]
	assessments := make([]*model.Assessment, 0, len(user))
	for _, a := range user {
		assessments = append(assessments, a.Copy())
	}

	sort.Slice(assessments, func(i, j int) bool {
		if assessments[i].CreatedAt.Equal(assessments[j].CreatedAt) {
			return assessments[i].ID > assessments[j].ID
		}
		return assessments[i].CreatedAt.After(assessments[j].CreatedAt)
	})

	return assessments, nil
}

func (r *assessmentRepository) Delete(ctx context.Context, userID string, id types.AssessmentID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.records[userID][id]; !exists {
		return goerr.Wrap(interfaces.ErrNotFound, "assessment not found", goerr.V("id", id))
	}
	delete(r.records[userID], id)

	return nil
}

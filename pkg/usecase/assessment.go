package usecase

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/airisk/pkg/domain/catalog"
	"github.com/secmon-lab/airisk/pkg/domain/interfaces"
	"github.com/secmon-lab/airisk/pkg/domain/model"
	"github.com/secmon-lab/airisk/pkg/domain/model/auth"
	"github.com/secmon-lab/airisk/pkg/domain/scoring"
	"github.com/secmon-lab/airisk/pkg/domain/types"
	"github.com/secmon-lab/airisk/pkg/utils/logging"
	"github.com/secmon-lab/airisk/pkg/utils/metrics"
)

type AssessmentUseCase struct {
	repo    interfaces.Repository
	catalog *catalog.Catalog
	metrics *metrics.Recorder
	now     func() time.Time
}

func NewAssessmentUseCase(repo interfaces.Repository, cat *catalog.Catalog, m *metrics.Recorder) *AssessmentUseCase {
	if cat == nil {
		cat = catalog.Default()
	}
	return &AssessmentUseCase{
		repo:    repo,
		catalog: cat,
		metrics: m,
		now:     time.Now,
	}
}

// Score evaluates a questionnaire without storing it
func (uc *AssessmentUseCase) Score(ctx context.Context, q *model.Questionnaire) (*scoring.Result, error) {
	result, err := scoring.Evaluate(q.Input())
	if err != nil {
		uc.metrics.Rejected()
		return nil, goerr.Wrap(err, "failed to score questionnaire")
	}

	uc.metrics.Scored(result.Tier.String())
	logging.From(ctx).Debug("questionnaire scored",
		"tool", q.Tool,
		"score", result.Score,
		"tier", result.Tier)

	return result, nil
}

// Create scores the questionnaire on the server side and stores the result for the user
func (uc *AssessmentUseCase) Create(ctx context.Context, user *auth.User, q *model.Questionnaire) (*model.Assessment, error) {
	if user == nil {
		return nil, goerr.Wrap(ErrUnauthenticated, "user is required to store an assessment")
	}

	result, err := uc.Score(ctx, q)
	if err != nil {
		return nil, err
	}

	created, err := uc.repo.Assessment().Create(ctx, model.NewAssessment(user, q, result))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to store assessment", goerr.V(UserIDKey, user.ID))
	}
	uc.metrics.Stored()

	logging.From(ctx).Info("assessment stored",
		"id", created.ID,
		"user_id", created.UserID,
		"tier", created.Tier)

	return created, nil
}

func (uc *AssessmentUseCase) List(ctx context.Context, user *auth.User) ([]*model.Assessment, error) {
	if user == nil {
		return nil, goerr.Wrap(ErrUnauthenticated, "user is required to list assessments")
	}

	assessments, err := uc.repo.Assessment().List(ctx, user.ID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list assessments", goerr.V(UserIDKey, user.ID))
	}
	return assessments, nil
}

func (uc *AssessmentUseCase) Get(ctx context.Context, user *auth.User, id types.AssessmentID) (*model.Assessment, error) {
	if user == nil {
		return nil, goerr.Wrap(ErrUnauthenticated, "user is required to get an assessment")
	}

	a, err := uc.repo.Assessment().Get(ctx, user.ID, id)
	if errors.Is(err, interfaces.ErrNotFound) {
		return nil, goerr.Wrap(ErrAssessmentNotFound, "assessment not found", goerr.V(AssessmentIDKey, id))
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get assessment", goerr.V(AssessmentIDKey, id))
	}
	return a, nil
}

func (uc *AssessmentUseCase) Delete(ctx context.Context, user *auth.User, id types.AssessmentID) error {
	if user == nil {
		return goerr.Wrap(ErrUnauthenticated, "user is required to delete an assessment")
	}

	err := uc.repo.Assessment().Delete(ctx, user.ID, id)
	if errors.Is(err, interfaces.ErrNotFound) {
		return goerr.Wrap(ErrAssessmentNotFound, "assessment not found", goerr.V(AssessmentIDKey, id))
	}
	if err != nil {
		return goerr.Wrap(err, "failed to delete assessment", goerr.V(AssessmentIDKey, id))
	}

	logging.From(ctx).Info("assessment deleted", "id", id, "user_id", user.ID)
	return nil
}

// Export writes the user's assessment as CSV and returns the attachment file name
func (uc *AssessmentUseCase) Export(ctx context.Context, w io.Writer, user *auth.User, id types.AssessmentID, lang types.Language) (string, error) {
	a, err := uc.Get(ctx, user, id)
	if err != nil {
		return "", err
	}

	if err := WriteCSV(w, uc.catalog, lang, a); err != nil {
		return "", goerr.Wrap(err, "failed to export assessment", goerr.V(AssessmentIDKey, id))
	}
	return ExportFilename(uc.now()), nil
}

// Report localizes a stored assessment
func (uc *AssessmentUseCase) Report(a *model.Assessment, lang types.Language) *Report {
	return BuildStoredReport(uc.catalog, lang, a)
}

// ScoreReport localizes a freshly scored questionnaire
func (uc *AssessmentUseCase) ScoreReport(q *model.Questionnaire, result *scoring.Result, lang types.Language) *Report {
	return BuildReport(uc.catalog, lang, q, result)
}

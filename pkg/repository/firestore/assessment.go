package firestore

import (
	"context"
	"errors"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/airisk/pkg/domain/interfaces"
	"github.com/secmon-lab/airisk/pkg/domain/model"
	"github.com/secmon-lab/airisk/pkg/domain/types"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// CollectionAssessments is the base collection name of stored assessments
const CollectionAssessments = "assessments"

type assessmentRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

// assessmentDoc is the stored form of model.Assessment
type assessmentDoc struct {
	ID           string    `firestore:"id"`
	UserID       string    `firestore:"user_id"`
	UserEmail    string    `firestore:"user_email"`
	UserName     string    `firestore:"user_name"`
	ProjectType  string    `firestore:"project_type"`
	ToolID       string    `firestore:"ai_tool"`
	Autonomy     string    `firestore:"autonomy"`
	DataTags     []string  `firestore:"data_types"`
	Impact       string    `firestore:"impact"`
	Transparency string    `firestore:"transparency"`
	UseCaseTags  []string  `firestore:"ai_use_cases"`
	TotalScore   int       `firestore:"risk_score"`
	Tier         string    `firestore:"risk_level"`
	MeasureTags  []string  `firestore:"measures"`
	CreatedAt    time.Time `firestore:"created_at"`
}

func newAssessmentRepository(client *firestore.Client) *assessmentRepository {
	return &assessmentRepository{
		client:           client,
		collectionPrefix: "",
	}
}

// CollectionName returns the collection name with an optional prefix
func CollectionName(prefix string) string {
	if prefix != "" {
		return prefix + "_" + CollectionAssessments
	}
	return CollectionAssessments
}

func (r *assessmentRepository) collection() string {
	return CollectionName(r.collectionPrefix)
}

func isDone(err error) bool {
	return errors.Is(err, iterator.Done)
}

func toStrings[T ~string](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}

func fromStrings[T ~string](values []string) []T {
	out := make([]T, len(values))
	for i, v := range values {
		out[i] = T(v)
	}
	return out
}

func toDoc(a *model.Assessment) *assessmentDoc {
	return &assessmentDoc{
		ID:           a.ID.String(),
		UserID:       a.UserID,
		UserEmail:    a.UserEmail,
		UserName:     a.UserName,
		ProjectType:  a.ProjectType.String(),
		ToolID:       a.ToolID.String(),
		Autonomy:     a.Autonomy.String(),
		DataTags:     toStrings(a.DataTags),
		Impact:       a.Impact.String(),
		Transparency: a.Transparency.String(),
		UseCaseTags:  toStrings(a.UseCaseTags),
		TotalScore:   a.TotalScore,
		Tier:         a.Tier.String(),
		MeasureTags:  toStrings(a.MeasureTags),
		CreatedAt:    a.CreatedAt,
	}
}

func (d *assessmentDoc) toModel() *model.Assessment {
	return &model.Assessment{
		ID:           types.AssessmentID(d.ID),
		UserID:       d.UserID,
		UserEmail:    d.UserEmail,
		UserName:     d.UserName,
		ProjectType:  types.ProjectType(d.ProjectType),
		ToolID:       types.ToolID(d.ToolID),
		Autonomy:     types.Autonomy(d.Autonomy),
		DataTags:     fromStrings[types.DataSensitivity](d.DataTags),
		Impact:       types.Impact(d.Impact),
		Transparency: types.Transparency(d.Transparency),
		UseCaseTags:  fromStrings[types.UseCase](d.UseCaseTags),
		TotalScore:   d.TotalScore,
		Tier:         types.Tier(d.Tier),
		MeasureTags:  fromStrings[types.MeasureTag](d.MeasureTags),
		CreatedAt:    d.CreatedAt.UTC(),
	}
}

func (r *assessmentRepository) Create(ctx context.Context, a *model.Assessment) (*model.Assessment, error) {
	if a.UserID == "" {
		return nil, goerr.New("user ID is required")
	}

	created := a.Copy()
	created.ID = types.NewAssessmentID()
	// Firestore keeps microseconds
	created.CreatedAt = time.Now().UTC().Truncate(time.Microsecond)

	docRef := r.client.Collection(r.collection()).Doc(created.ID.String())
	if _, err := docRef.Create(ctx, toDoc(created)); err != nil {
		return nil, goerr.Wrap(err, "failed to create assessment", goerr.V("id", created.ID))
	}

	return created, nil
}

// getDoc loads a document and hides records owned by other users
func (r *assessmentRepository) getDoc(ctx context.Context, userID string, id types.AssessmentID) (*firestore.DocumentRef, *assessmentDoc, error) {
	if id == "" {
		return nil, nil, goerr.Wrap(interfaces.ErrNotFound, "assessment not found", goerr.V("id", id))
	}

	docRef := r.client.Collection(r.collection()).Doc(id.String())
	docSnap, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil, goerr.Wrap(interfaces.ErrNotFound, "assessment not found", goerr.V("id", id))
		}
		return nil, nil, goerr.Wrap(err, "failed to get assessment", goerr.V("id", id))
	}

	var doc assessmentDoc
	if err := docSnap.DataTo(&doc); err != nil {
		return nil, nil, goerr.Wrap(err, "failed to decode assessment", goerr.V("id", id))
	}
	if doc.UserID != userID {
		return nil, nil, goerr.Wrap(interfaces.ErrNotFound, "assessment not found", goerr.V("id", id))
	}

	return docRef, &doc, nil
}

func (r *assessmentRepository) Get(ctx context.Context, userID string, id types.AssessmentID) (*model.Assessment, error) {
	_, doc, err := r.getDoc(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	return doc.toModel(), nil
}

func (r *assessmentRepository) List(ctx context.Context, userID string) ([]*model.Assessment, error) {
	iter := r.client.Collection(r.collection()).
		Where("user_id", "==", userID).
		OrderBy("created_at", firestore.Desc).
		Documents(ctx)
	defer iter.Stop()

	assessments := []*model.Assessment{}
	for {
		docSnap, err := iter.Next()
		if isDone(err) {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate assessments", goerr.V("user_id", userID))
		}

		var doc assessmentDoc
		if err := docSnap.DataTo(&doc); err != nil {
			return nil, goerr.Wrap(err, "failed to decode assessment", goerr.V("doc_id", docSnap.Ref.ID))
		}
		assessments = append(assessments, doc.toModel())
	}

	return assessments, nil
}

func (r *assessmentRepository) Delete(ctx context.Context, userID string, id types.AssessmentID) error {
	docRef, _, err := r.getDoc(ctx, userID, id)
	if err != nil {
		return err
	}

	if _, err := docRef.Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete assessment", goerr.V("id", id))
	}
	return nil
}

package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/airisk/pkg/domain/interfaces"
	"github.com/secmon-lab/airisk/pkg/domain/model"
	"github.com/secmon-lab/airisk/pkg/domain/types"
)

const assessmentColumns = `
	id, user_id, user_email, user_name, project_type, ai_tool, autonomy,
	data_types, impact, transparency, ai_use_cases,
	risk_score, risk_level, measures, created_at`

type assessmentRepository struct {
	pool *pgxpool.Pool
}

func newAssessmentRepository(pool *pgxpool.Pool) *assessmentRepository {
	return &assessmentRepository{pool: pool}
}

func (r *assessmentRepository) Create(ctx context.Context, a *model.Assessment) (*model.Assessment, error) {
	if a.UserID == "" {
		return nil, goerr.New("user ID is required")
	}

	created := a.Copy()
	created.ID = types.NewAssessmentID()
	// Postgres keeps microseconds
	created.CreatedAt = time.Now().UTC().Truncate(time.Microsecond)

	dataTypes, err := json.Marshal(nonNil(created.DataTags))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to encode data types")
	}
	useCases, err := json.Marshal(nonNil(created.UseCaseTags))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to encode use cases")
	}
	measures, err := json.Marshal(nonNil(created.MeasureTags))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to encode measures")
	}

	query := `INSERT INTO assessments (` + assessmentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`

	_, err = r.pool.Exec(ctx, query,
		created.ID.String(),
		created.UserID,
		created.UserEmail,
		created.UserName,
		created.ProjectType.String(),
		created.ToolID.String(),
		created.Autonomy.String(),
		dataTypes,
		created.Impact.String(),
		created.Transparency.String(),
		useCases,
		created.TotalScore,
		created.Tier.String(),
		measures,
		created.CreatedAt,
	)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to insert assessment", goerr.V("id", created.ID))
	}

	return created, nil
}

func (r *assessmentRepository) Get(ctx context.Context, userID string, id types.AssessmentID) (*model.Assessment, error) {
	if err := id.Validate(); err != nil {
		// Not a UUID, so it cannot match any row
		return nil, goerr.Wrap(interfaces.ErrNotFound, "assessment not found", goerr.V("id", id))
	}

	query := `SELECT ` + assessmentColumns + ` FROM assessments WHERE id = $1 AND user_id = $2`

	a, err := scanAssessment(r.pool.QueryRow(ctx, query, id.String(), userID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, goerr.Wrap(interfaces.ErrNotFound, "assessment not found", goerr.V("id", id))
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get assessment", goerr.V("id", id))
	}

	return a, nil
}

func (r *assessmentRepository) List(ctx context.Context, userID string) ([]*model.Assessment, error) {
	query := `SELECT ` + assessmentColumns + ` FROM assessments
		WHERE user_id = $1 ORDER BY created_at DESC, id DESC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list assessments", goerr.V("user_id", userID))
	}
	defer rows.Close()

	assessments := []*model.Assessment{}
	for rows.Next() {
		a, err := scanAssessment(rows)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to scan assessment")
		}
		assessments = append(assessments, a)
	}
	if err := rows.Err(); err != nil {
		return nil, goerr.Wrap(err, "failed to iterate assessments")
	}

	return assessments, nil
}

func (r *assessmentRepository) Delete(ctx context.Context, userID string, id types.AssessmentID) error {
	if err := id.Validate(); err != nil {
		return goerr.Wrap(interfaces.ErrNotFound, "assessment not found", goerr.V("id", id))
	}

	tag, err := r.pool.Exec(ctx, `DELETE FROM assessments WHERE id = $1 AND user_id = $2`, id.String(), userID)
	if err != nil {
		return goerr.Wrap(err, "failed to delete assessment", goerr.V("id", id))
	}
	if tag.RowsAffected() == 0 {
		return goerr.Wrap(interfaces.ErrNotFound, "assessment not found", goerr.V("id", id))
	}

	return nil
}

func scanAssessment(row pgx.Row) (*model.Assessment, error) {
	var (
		a                             model.Assessment
		id                            string
		projectType, tool, autonomy   string
		impact, transparency, tier    string
		dataTypes, useCases, measures []byte
	)

	err := row.Scan(
		&id,
		&a.UserID,
		&a.UserEmail,
		&a.UserName,
		&projectType,
		&tool,
		&autonomy,
		&dataTypes,
		&impact,
		&transparency,
		&useCases,
		&a.TotalScore,
		&tier,
		&measures,
		&a.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	a.ID = types.AssessmentID(id)
	a.ProjectType = types.ProjectType(projectType)
	a.ToolID = types.ToolID(tool)
	a.Autonomy = types.Autonomy(autonomy)
	a.Impact = types.Impact(impact)
	a.Transparency = types.Transparency(transparency)
	a.Tier = types.Tier(tier)
	a.CreatedAt = a.CreatedAt.UTC()

	if err := json.Unmarshal(dataTypes, &a.DataTags); err != nil {
		return nil, goerr.Wrap(err, "failed to decode data types", goerr.V("id", id))
	}
	if err := json.Unmarshal(useCases, &a.UseCaseTags); err != nil {
		return nil, goerr.Wrap(err, "failed to decode use cases", goerr.V("id", id))
	}
	if err := json.Unmarshal(measures, &a.MeasureTags); err != nil {
		return nil, goerr.Wrap(err, "failed to decode measures", goerr.V("id", id))
	}

	return &a, nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

package http

import (
	"bytes"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/secmon-lab/airisk/pkg/domain/model"
	"github.com/secmon-lab/airisk/pkg/domain/model/auth"
	"github.com/secmon-lab/airisk/pkg/domain/scoring"
	"github.com/secmon-lab/airisk/pkg/domain/types"
	"github.com/secmon-lab/airisk/pkg/usecase"
	"github.com/secmon-lab/airisk/pkg/utils/errutil"
	"github.com/secmon-lab/airisk/pkg/utils/safe"
)

// assessmentResponse is a stored assessment as returned to clients
type assessmentResponse struct {
	ID           types.AssessmentID `json:"id"`
	UserID       string             `json:"user_id"`
	UserEmail    string             `json:"user_email"`
	UserName     string             `json:"user_name"`
	RiskLevel    types.Tier         `json:"risk_level"`
	RiskScore    int                `json:"risk_score"`
	ProjectType  string             `json:"project_type"`
	AITool       string             `json:"ai_tool"`
	AIUseCases   []string           `json:"ai_use_cases"`
	DataTypes    []string           `json:"data_types"`
	Autonomy     string             `json:"autonomy"`
	Impact       string             `json:"impact"`
	Transparency string             `json:"transparency"`
	Measures     []string           `json:"measures"`
	CreatedAt    time.Time          `json:"created_at"`
	Report       *usecase.Report    `json:"report,omitempty"`
}

func toAssessmentResponse(a *model.Assessment) *assessmentResponse {
	return &assessmentResponse{
		ID:           a.ID,
		UserID:       a.UserID,
		UserEmail:    a.UserEmail,
		UserName:     a.UserName,
		RiskLevel:    a.Tier,
		RiskScore:    a.TotalScore,
		ProjectType:  string(a.ProjectType),
		AITool:       string(a.ToolID),
		AIUseCases:   toStrings(a.UseCaseTags),
		DataTypes:    toStrings(a.DataTags),
		Autonomy:     string(a.Autonomy),
		Impact:       string(a.Impact),
		Transparency: string(a.Transparency),
		Measures:     toStrings(a.MeasureTags),
		CreatedAt:    a.CreatedAt,
	}
}

func toStrings[T ~string](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}

type scoreResponse struct {
	Result *usecase.Report `json:"result"`
}

type createResponse struct {
	Message    string              `json:"message"`
	Assessment *assessmentResponse `json:"assessment"`
}

type listResponse struct {
	Assessments []*assessmentResponse `json:"assessments"`
}

type getResponse struct {
	Assessment *assessmentResponse `json:"assessment"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// requestLanguage picks the catalog language from ?lang, then Accept-Language
func requestLanguage(r *http.Request) types.Language {
	if lang := r.URL.Query().Get("lang"); lang != "" {
		return types.ParseLanguage(lang)
	}
	return types.ParseLanguage(r.Header.Get("Accept-Language"))
}

// handleError maps use case errors to HTTP status codes
func handleError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, usecase.ErrAssessmentNotFound):
		errutil.WriteError(r.Context(), w, http.StatusNotFound, "Assessment not found")
	case errors.Is(err, usecase.ErrUnauthenticated):
		errutil.WriteError(r.Context(), w, http.StatusUnauthorized, msgNoUserInfo)
	case errors.Is(err, errPayloadTooLarge):
		errutil.HandleHTTP(r.Context(), w, err, http.StatusRequestEntityTooLarge)
	case errors.Is(err, errBadRequest), errors.Is(err, scoring.ErrIncompleteInput):
		errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
	default:
		errutil.HandleHTTP(r.Context(), w, err, http.StatusInternalServerError)
	}
}

func pathAssessmentID(r *http.Request) types.AssessmentID {
	return types.AssessmentID(chi.URLParam(r, "id"))
}

func scoreHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q, err := decodeQuestionnaire(r)
		if err != nil {
			handleError(w, r, err)
			return
		}

		result, err := uc.Assessment.Score(r.Context(), q)
		if err != nil {
			handleError(w, r, err)
			return
		}

		writeJSON(r.Context(), w, http.StatusOK, scoreResponse{
			Result: uc.Assessment.ScoreReport(q, result, requestLanguage(r)),
		})
	}
}

func createAssessmentHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q, err := decodeQuestionnaire(r)
		if err != nil {
			handleError(w, r, err)
			return
		}

		created, err := uc.Assessment.Create(r.Context(), auth.UserFromContext(r.Context()), q)
		if err != nil {
			handleError(w, r, err)
			return
		}

		resp := toAssessmentResponse(created)
		resp.Report = uc.Assessment.Report(created, requestLanguage(r))
		writeJSON(r.Context(), w, http.StatusCreated, createResponse{
			Message:    "Assessment created successfully",
			Assessment: resp,
		})
	}
}

func listAssessmentsHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		assessments, err := uc.Assessment.List(r.Context(), auth.UserFromContext(r.Context()))
		if err != nil {
			handleError(w, r, err)
			return
		}

		resp := listResponse{Assessments: make([]*assessmentResponse, len(assessments))}
		for i, a := range assessments {
			resp.Assessments[i] = toAssessmentResponse(a)
		}
		writeJSON(r.Context(), w, http.StatusOK, resp)
	}
}

func getAssessmentHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, err := uc.Assessment.Get(r.Context(), auth.UserFromContext(r.Context()), pathAssessmentID(r))
		if err != nil {
			handleError(w, r, err)
			return
		}

		resp := toAssessmentResponse(a)
		resp.Report = uc.Assessment.Report(a, requestLanguage(r))
		writeJSON(r.Context(), w, http.StatusOK, getResponse{Assessment: resp})
	}
}

func deleteAssessmentHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := uc.Assessment.Delete(r.Context(), auth.UserFromContext(r.Context()), pathAssessmentID(r)); err != nil {
			handleError(w, r, err)
			return
		}
		writeJSON(r.Context(), w, http.StatusOK, messageResponse{Message: "Assessment deleted successfully"})
	}
}

func exportAssessmentHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Buffer so that a failure can still produce a JSON error
		var buf bytes.Buffer
		filename, err := uc.Assessment.Export(r.Context(), &buf, auth.UserFromContext(r.Context()), pathAssessmentID(r), requestLanguage(r))
		if err != nil {
			handleError(w, r, err)
			return
		}

		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
		w.WriteHeader(http.StatusOK)
		safe.Write(r.Context(), w, buf.Bytes())
	}
}

package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/airisk/pkg/domain/model"
	"github.com/secmon-lab/airisk/pkg/domain/types"
)

var (
	errBadRequest      = errors.New("bad request")
	errPayloadTooLarge = errors.New("request body too large")
)

// requestValidate checks questionnaire payloads. Enumerated answers must be
// known values so that the scorer never sees an unknown category.
var requestValidate = newRequestValidator()

func newRequestValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	enum := func(valid func(string) bool) validator.Func {
		return func(fl validator.FieldLevel) bool {
			return valid(fl.Field().String())
		}
	}
	_ = v.RegisterValidation("autonomy", enum(func(s string) bool { return types.Autonomy(s).IsValid() }))
	_ = v.RegisterValidation("data_sensitivity", enum(func(s string) bool { return types.DataSensitivity(s).IsValid() }))
	_ = v.RegisterValidation("impact", enum(func(s string) bool { return types.Impact(s).IsValid() }))
	_ = v.RegisterValidation("transparency", enum(func(s string) bool { return types.Transparency(s).IsValid() }))
	_ = v.RegisterValidation("identifier", enum(isIdentifier))

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		return name
	})
	return v
}

// isIdentifier accepts lower case snake case tokens
func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if !(c >= 'a' && c <= 'z' || c >= '0' && c <= '9' || c == '_' || c == '-') {
			return false
		}
	}
	return true
}

// questionnaireRequest is the body of POST /api/score and POST /api/assessments.
// Client supplied riskScore, riskLevel and measures are ignored.
type questionnaireRequest struct {
	ProjectType  string   `json:"projectType" validate:"required,max=64,identifier"`
	AITool       string   `json:"aiTool" validate:"required,max=64"`
	AIUseCases   []string `json:"aiUseCases" validate:"max=32,dive,required,max=64,identifier"`
	DataTypes    []string `json:"dataTypes" validate:"required,min=1,max=16,dive,data_sensitivity"`
	Autonomy     string   `json:"autonomy" validate:"required,autonomy"`
	Impact       string   `json:"impact" validate:"required,impact"`
	Transparency string   `json:"transparency" validate:"required,transparency"`
}

func (x *questionnaireRequest) Questionnaire() *model.Questionnaire {
	q := &model.Questionnaire{
		ProjectType:  types.ProjectType(x.ProjectType),
		Tool:         types.ToolID(x.AITool),
		Autonomy:     types.Autonomy(x.Autonomy),
		Impact:       types.Impact(x.Impact),
		Transparency: types.Transparency(x.Transparency),
		DataTags:     make([]types.DataSensitivity, len(x.DataTypes)),
		UseCases:     make([]types.UseCase, len(x.AIUseCases)),
	}
	for i, d := range x.DataTypes {
		q.DataTags[i] = types.DataSensitivity(d)
	}
	for i, u := range x.AIUseCases {
		q.UseCases[i] = types.UseCase(u)
	}
	return q
}

// decodeQuestionnaire reads and validates the request body
func decodeQuestionnaire(r *http.Request) (*model.Questionnaire, error) {
	var req questionnaireRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, goerr.Wrap(errPayloadTooLarge, "request body exceeds limit", goerr.V("limit", tooLarge.Limit))
		}
		return nil, goerr.Wrap(errBadRequest, "invalid JSON body", goerr.V("error", err.Error()))
	}

	if err := requestValidate.Struct(&req); err != nil {
		return nil, goerr.Wrap(errBadRequest, validationMessage(err))
	}

	return req.Questionnaire(), nil
}

// validationMessage lists the offending fields in a client readable form
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return "Invalid request"
	}

	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Namespace()[strings.Index(fe.Namespace(), ".")+1:]+" ("+fe.Tag()+")")
	}
	return "Invalid or missing fields: " + strings.Join(fields, ", ")
}

package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/airisk/pkg/cli/config"
	"github.com/secmon-lab/airisk/pkg/domain/catalog"
	"github.com/secmon-lab/airisk/pkg/domain/model"
	"github.com/secmon-lab/airisk/pkg/domain/types"
	"github.com/secmon-lab/airisk/pkg/usecase"
	"github.com/secmon-lab/airisk/pkg/utils/logging"
	"github.com/secmon-lab/airisk/pkg/utils/safe"
	"github.com/urfave/cli/v3"
)

const (
	formatText = "text"
	formatJSON = "json"
)

type assessOptions struct {
	projectType  string
	tool         string
	autonomy     string
	data         []string
	impact       string
	transparency string
	useCases     []string
	lang         string
	format       string
	csvPath      string
}

// questionnaire parses the answer flags. Unknown enum values are rejected.
func (x *assessOptions) questionnaire() (*model.Questionnaire, error) {
	autonomy, err := types.ParseAutonomy(x.autonomy)
	if err != nil {
		return nil, err
	}
	impact, err := types.ParseImpact(x.impact)
	if err != nil {
		return nil, err
	}
	transparency, err := types.ParseTransparency(x.transparency)
	if err != nil {
		return nil, err
	}

	tool := types.ToolID(x.tool)
	if err := tool.Validate(); err != nil {
		return nil, err
	}

	dataTags := make([]types.DataSensitivity, 0, len(x.data))
	for _, v := range x.data {
		tag, err := types.ParseDataSensitivity(v)
		if err != nil {
			return nil, err
		}
		dataTags = append(dataTags, tag)
	}

	useCases := make([]types.UseCase, 0, len(x.useCases))
	for _, v := range x.useCases {
		if v = strings.TrimSpace(v); v != "" {
			useCases = append(useCases, types.UseCase(v))
		}
	}

	return &model.Questionnaire{
		ProjectType:  types.ProjectType(x.projectType),
		Tool:         tool,
		Autonomy:     autonomy,
		DataTags:     dataTags,
		Impact:       impact,
		Transparency: transparency,
		UseCases:     useCases,
	}, nil
}

func cmdAssess() *cli.Command {
	var opts assessOptions
	var catalogCfg config.Catalog

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "project-type",
			Usage:       "Project type (e.g. software_development)",
			Destination: &opts.projectType,
		},
		&cli.StringFlag{
			Name:        "tool",
			Usage:       "AI tool identifier (e.g. m365_copilot, chatgpt)",
			Required:    true,
			Destination: &opts.tool,
		},
		&cli.StringFlag{
			Name:        "autonomy",
			Usage:       "Autonomy level (support_only, interactive, semi_automated, automated, critical_automated)",
			Required:    true,
			Destination: &opts.autonomy,
		},
		&cli.StringSliceFlag{
			Name:        "data",
			Usage:       "Data sensitivity tag, repeatable (public_only, company_general, client_confidential, strategic_sensitive, personal_data, special_categories)",
			Required:    true,
			Destination: &opts.data,
		},
		&cli.StringFlag{
			Name:        "impact",
			Usage:       "Business impact (internal_efficiency, project_support, client_deliverable, strategic_decision, critical_operations)",
			Required:    true,
			Destination: &opts.impact,
		},
		&cli.StringFlag{
			Name:        "transparency",
			Usage:       "Transparency level (high, medium, low)",
			Required:    true,
			Destination: &opts.transparency,
		},
		&cli.StringSliceFlag{
			Name:        "use-case",
			Usage:       "Use case tag, repeatable",
			Destination: &opts.useCases,
		},
		&cli.StringFlag{
			Name:        "lang",
			Usage:       "Report language (en, de)",
			Value:       types.DefaultLanguage.String(),
			Destination: &opts.lang,
		},
		&cli.StringFlag{
			Name:        "format",
			Aliases:     []string{"f"},
			Usage:       "Output format (text, json)",
			Value:       formatText,
			Destination: &opts.format,
		},
		&cli.StringFlag{
			Name:        "csv",
			Usage:       "Also write the report as CSV to this path",
			Destination: &opts.csvPath,
		},
	}
	flags = append(flags, catalogCfg.Flags()...)

	return &cli.Command{
		Name:    "assess",
		Aliases: []string{"a"},
		Usage:   "Score a questionnaire offline and print the report",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			if opts.format != formatText && opts.format != formatJSON {
				return goerr.New("unsupported output format", goerr.V("format", opts.format))
			}

			q, err := opts.questionnaire()
			if err != nil {
				return goerr.Wrap(err, "invalid answers")
			}

			cat, err := catalogCfg.Configure()
			if err != nil {
				return err
			}

			lang := types.ParseLanguage(opts.lang)
			uc := usecase.NewAssessmentUseCase(nil, cat, nil)
			result, err := uc.Score(ctx, q)
			if err != nil {
				return err
			}
			report := uc.ScoreReport(q, result, lang)

			if opts.csvPath != "" {
				if err := writeCSVFile(ctx, opts.csvPath, cat, report); err != nil {
					return err
				}
			}

			w := c.Root().Writer
			if opts.format == formatJSON {
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				if err := enc.Encode(report); err != nil {
					return goerr.Wrap(err, "failed to encode report")
				}
				return nil
			}

			printReport(w, cat, report)
			return nil
		},
	}
}

func writeCSVFile(ctx context.Context, path string, cat *catalog.Catalog, report *usecase.Report) error {
	if err := writeFile(ctx, path, func(w io.Writer) error {
		return usecase.WriteReportCSV(w, cat, report)
	}); err != nil {
		return err
	}
	logging.From(ctx).Info("Wrote CSV report", "path", path)
	return nil
}

// writeFile creates path and fills it with write. On any failure, including
// the final close, the partial file is removed.
func writeFile(ctx context.Context, path string, write func(w io.Writer) error) error {
	// #nosec G304 - path is expected to be provided by CLI argument
	f, err := os.Create(path)
	if err != nil {
		return goerr.Wrap(err, "failed to create file", goerr.V("path", path))
	}

	if err := write(f); err != nil {
		safe.Close(ctx, f)
		removePartial(ctx, path)
		return goerr.Wrap(err, "failed to write file", goerr.V("path", path))
	}
	if err := f.Close(); err != nil {
		removePartial(ctx, path)
		return goerr.Wrap(err, "failed to close file", goerr.V("path", path))
	}
	return nil
}

func removePartial(ctx context.Context, path string) {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		logging.From(ctx).Warn("failed to remove partial file", "path", path, "error", err.Error())
	}
}

func tierColor(tier types.Tier) *color.Color {
	switch tier {
	case types.TierCritical:
		return color.New(color.FgRed, color.Bold)
	case types.TierHigh:
		return color.New(color.FgRed)
	case types.TierMedium:
		return color.New(color.FgYellow)
	case types.TierLow:
		return color.New(color.FgCyan)
	default:
		return color.New(color.FgGreen)
	}
}

func printReport(w io.Writer, cat *catalog.Catalog, r *usecase.Report) {
	lang := r.Language
	bold := color.New(color.Bold)
	label := func(key catalog.TextKey) string {
		return cat.Text(lang, key)
	}

	_, _ = tierColor(r.Tier).Fprintf(w, "%s: %s\n", label(catalog.TextRiskLevel), r.TierLabel)
	_, _ = fmt.Fprintf(w, "%s: %d/%d\n", label(catalog.TextRiskScore), r.Score, r.MaxScore)
	_, _ = fmt.Fprintf(w, "%s\n\n", r.TierExplanation)

	rows := [][2]string{
		{label(catalog.TextProjectType), r.Answers.ProjectType},
		{label(catalog.TextTool), r.Answers.Tool},
		{label(catalog.TextUseCase), strings.Join(r.Answers.UseCases, ", ")},
		{label(catalog.TextDataType), strings.Join(r.Answers.DataTypes, ", ")},
		{label(catalog.TextAutonomy), r.Answers.Autonomy},
		{label(catalog.TextImpact), r.Answers.Impact},
		{label(catalog.TextTransparency), r.Answers.Transparency},
	}
	for _, row := range rows {
		_, _ = fmt.Fprintf(w, "  %-24s %s\n", row[0]+":", row[1])
	}

	if !r.ToolApproved {
		_, _ = color.New(color.FgRed).Fprintf(w, "\n! %s: %s\n", label(catalog.TextTool), r.Answers.Tool)
	}

	_, _ = bold.Fprintf(w, "\n%s\n", label(catalog.TextMeasuresTitle))
	for i, m := range r.Measures {
		_, _ = fmt.Fprintf(w, "  %d. %s\n     %s\n", i+1, m.Title, m.Description)
	}

	if len(r.Compliance) > 0 {
		_, _ = bold.Fprintf(w, "\n%s\n", label(catalog.TextCompliance))
		for _, c := range r.Compliance {
			_, _ = fmt.Fprintf(w, "  - %s\n", c.Title)
		}
	}
}

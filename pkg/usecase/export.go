package usecase

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/airisk/pkg/domain/catalog"
	"github.com/secmon-lab/airisk/pkg/domain/model"
	"github.com/secmon-lab/airisk/pkg/domain/scoring"
	"github.com/secmon-lab/airisk/pkg/domain/types"
)

const (
	utf8BOM        = "\ufeff"
	listSeparator  = " | "
	exportFileName = "AI_Risk_Assessment_%s.csv"
)

// ExportFilename returns the attachment name for an export made at t
func ExportFilename(t time.Time) string {
	return fmt.Sprintf(exportFileName, t.Format(time.DateOnly))
}

// WriteCSV writes a stored assessment as semicolon separated CSV with a UTF-8 BOM
func WriteCSV(w io.Writer, cat *catalog.Catalog, lang types.Language, a *model.Assessment) error {
	return writeReportCSV(w, cat, lang, BuildStoredReport(cat, lang, a))
}

// WriteReportCSV writes an already built report, used for offline scoring
func WriteReportCSV(w io.Writer, cat *catalog.Catalog, report *Report) error {
	return writeReportCSV(w, cat, report.Language, report)
}

func writeReportCSV(w io.Writer, cat *catalog.Catalog, lang types.Language, report *Report) error {
	if _, err := io.WriteString(w, utf8BOM); err != nil {
		return goerr.Wrap(err, "failed to write BOM")
	}

	text := func(key catalog.TextKey) string { return cat.Text(lang, key) }
	records := [][]string{
		{text(catalog.TextCategory), text(catalog.TextValue)},
		{text(catalog.TextRiskLevel), report.TierLabel},
		{text(catalog.TextRiskScore), fmt.Sprintf("%d/%d", report.Score, scoring.MaxScore)},
		{text(catalog.TextProjectType), report.Answers.ProjectType},
		{text(catalog.TextTool), report.Answers.Tool},
		{text(catalog.TextUseCase), strings.Join(report.Answers.UseCases, listSeparator)},
		{text(catalog.TextDataType), strings.Join(report.Answers.DataTypes, listSeparator)},
		{text(catalog.TextAutonomy), report.Answers.Autonomy},
		{text(catalog.TextImpact), report.Answers.Impact},
		{text(catalog.TextTransparency), report.Answers.Transparency},
		{""},
		{text(catalog.TextMeasuresTitle)},
	}
	for i, m := range report.Measures {
		records = append(records, []string{fmt.Sprintf("%d. %s", i+1, m.Title), m.Description})
	}

	cw := csv.NewWriter(w)
	cw.Comma = ';'
	if err := cw.WriteAll(records); err != nil {
		return goerr.Wrap(err, "failed to write CSV")
	}
	return nil
}

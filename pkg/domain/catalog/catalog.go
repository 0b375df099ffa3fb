// Package catalog holds the localized text for tiers, measures, compliance
// requirements and questionnaire options.
package catalog

import (
	_ "embed"
	"os"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/secmon-lab/airisk/pkg/domain/types"
)

//go:embed catalog.toml
var defaultCatalogData []byte

// LabelKind is the questionnaire category an option label belongs to
type LabelKind string

const (
	LabelTool         LabelKind = "tool"
	LabelAutonomy     LabelKind = "autonomy"
	LabelData         LabelKind = "data"
	LabelImpact       LabelKind = "impact"
	LabelTransparency LabelKind = "transparency"
	LabelUseCase      LabelKind = "use_case"
	LabelProjectType  LabelKind = "project_type"
)

// TextKey names a fixed piece of report text
type TextKey string

const (
	TextCategory      TextKey = "category"
	TextValue         TextKey = "value"
	TextRiskLevel     TextKey = "risk_level"
	TextRiskScore     TextKey = "risk_score"
	TextProjectType   TextKey = "project_type"
	TextTool          TextKey = "tool"
	TextUseCase       TextKey = "use_case"
	TextDataType      TextKey = "data_type"
	TextAutonomy      TextKey = "autonomy"
	TextImpact        TextKey = "impact"
	TextTransparency  TextKey = "transparency"
	TextMeasuresTitle TextKey = "measures_title"
	TextCompliance    TextKey = "compliance"
)

func allTextKeys() []TextKey {
	return []TextKey{
		TextCategory,
		TextValue,
		TextRiskLevel,
		TextRiskScore,
		TextProjectType,
		TextTool,
		TextUseCase,
		TextDataType,
		TextAutonomy,
		TextImpact,
		TextTransparency,
		TextMeasuresTitle,
		TextCompliance,
	}
}

// Measure is the localized text of a recommended measure
type Measure struct {
	ID          string `toml:"id" json:"id"`
	Title       string `toml:"title" json:"title"`
	Description string `toml:"description" json:"description"`
}

// Tier is the localized text of a risk tier
type Tier struct {
	ID          string `toml:"id"`
	Label       string `toml:"label"`
	Explanation string `toml:"explanation"`
}

// Compliance is the localized text of a compliance requirement
type Compliance struct {
	ID    string `toml:"id"`
	Title string `toml:"title"`
}

// Language is every text of one language
type Language struct {
	ID         string                          `toml:"id"`
	Text       map[TextKey]string              `toml:"text"`
	Tiers      []Tier                          `toml:"tier"`
	Measures   []Measure                       `toml:"measure"`
	Compliance []Compliance                    `toml:"compliance"`
	Labels     map[LabelKind]map[string]string `toml:"labels"`
}

type catalogFile struct {
	Languages []Language `toml:"language"`
}

// Catalog resolves identifiers to localized text. Lookups fall back to
// English and then to the raw identifier.
type Catalog struct {
	languages map[types.Language]*index
}

type index struct {
	text       map[TextKey]string
	tiers      map[types.Tier]Tier
	measures   map[types.MeasureTag]Measure
	compliance map[types.ComplianceTag]string
	labels     map[LabelKind]map[string]string
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns the catalog built into the binary
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := Parse(defaultCatalogData)
		if err != nil {
			panic("embedded catalog is invalid: " + err.Error())
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

// Load reads and validates a catalog TOML file
func Load(path string) (*Catalog, error) {
	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read catalog file", goerr.V("path", path))
	}

	c, err := Parse(data)
	if err != nil {
		return nil, goerr.Wrap(err, "invalid catalog file", goerr.V("path", path))
	}
	return c, nil
}

// Parse decodes and validates catalog TOML
func Parse(data []byte) (*Catalog, error) {
	var file catalogFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, goerr.Wrap(err, "failed to parse catalog TOML")
	}
	if err := file.Validate(); err != nil {
		return nil, goerr.Wrap(err, "catalog validation failed")
	}

	c := &Catalog{languages: make(map[types.Language]*index, len(file.Languages))}
	for _, lang := range file.Languages {
		idx := &index{
			text:       lang.Text,
			tiers:      make(map[types.Tier]Tier, len(lang.Tiers)),
			measures:   make(map[types.MeasureTag]Measure, len(lang.Measures)),
			compliance: make(map[types.ComplianceTag]string, len(lang.Compliance)),
			labels:     lang.Labels,
		}
		for _, t := range lang.Tiers {
			idx.tiers[types.Tier(t.ID)] = t
		}
		for _, m := range lang.Measures {
			idx.measures[types.MeasureTag(m.ID)] = m
		}
		for _, cp := range lang.Compliance {
			idx.compliance[types.ComplianceTag(cp.ID)] = cp.Title
		}
		c.languages[types.Language(lang.ID)] = idx
	}

	return c, nil
}

// lookup tries the requested language, then English
func lookup[T any](c *Catalog, lang types.Language, get func(*index) (T, bool)) (T, bool) {
	for _, l := range []types.Language{lang, types.DefaultLanguage} {
		if idx, ok := c.languages[l]; ok {
			if v, ok := get(idx); ok {
				return v, true
			}
		}
	}
	var zero T
	return zero, false
}

// Measure returns the title and description of a measure
func (c *Catalog) Measure(lang types.Language, tag types.MeasureTag) Measure {
	m, ok := lookup(c, lang, func(idx *index) (Measure, bool) {
		m, ok := idx.measures[tag]
		return m, ok
	})
	if !ok {
		return Measure{ID: tag.String(), Title: tag.String()}
	}
	return m
}

// Measures resolves a list of measure tags, keeping the order
func (c *Catalog) Measures(lang types.Language, tags []types.MeasureTag) []Measure {
	measures := make([]Measure, len(tags))
	for i, tag := range tags {
		measures[i] = c.Measure(lang, tag)
	}
	return measures
}

func (c *Catalog) TierLabel(lang types.Language, tier types.Tier) string {
	t, ok := lookup(c, lang, func(idx *index) (Tier, bool) {
		t, ok := idx.tiers[tier]
		return t, ok
	})
	if !ok {
		return tier.String()
	}
	return t.Label
}

func (c *Catalog) TierExplanation(lang types.Language, tier types.Tier) string {
	t, ok := lookup(c, lang, func(idx *index) (Tier, bool) {
		t, ok := idx.tiers[tier]
		return t, ok
	})
	if !ok {
		return ""
	}
	return t.Explanation
}

func (c *Catalog) Compliance(lang types.Language, tag types.ComplianceTag) string {
	title, ok := lookup(c, lang, func(idx *index) (string, bool) {
		s, ok := idx.compliance[tag]
		return s, ok
	})
	if !ok {
		return tag.String()
	}
	return title
}

// Label returns the display name of a questionnaire option
func (c *Catalog) Label(lang types.Language, kind LabelKind, value string) string {
	label, ok := lookup(c, lang, func(idx *index) (string, bool) {
		s, ok := idx.labels[kind][value]
		return s, ok
	})
	if !ok {
		return value
	}
	return label
}

// Labels resolves several option values of one kind
func (c *Catalog) Labels(lang types.Language, kind LabelKind, values []string) []string {
	labels := make([]string, len(values))
	for i, v := range values {
		labels[i] = c.Label(lang, kind, v)
	}
	return labels
}

// Text returns a fixed report string
func (c *Catalog) Text(lang types.Language, key TextKey) string {
	text, ok := lookup(c, lang, func(idx *index) (string, bool) {
		s, ok := idx.text[key]
		return s, ok
	})
	if !ok {
		return string(key)
	}
	return text
}

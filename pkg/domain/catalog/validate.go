package catalog

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/airisk/pkg/domain/types"
)

// Validate checks that every supported language is present and complete
func (f *catalogFile) Validate() error {
	seen := make(map[string]bool)
	for i := range f.Languages {
		lang := &f.Languages[i]
		if !types.Language(lang.ID).IsValid() {
			return goerr.New("unsupported language", goerr.V("id", lang.ID))
		}
		if seen[lang.ID] {
			return goerr.New("duplicate language", goerr.V("id", lang.ID))
		}
		seen[lang.ID] = true

		if err := lang.Validate(); err != nil {
			return goerr.Wrap(err, "invalid language", goerr.V("id", lang.ID))
		}
	}

	for _, lang := range types.AllLanguages() {
		if !seen[lang.String()] {
			return goerr.New("missing language", goerr.V("id", lang))
		}
	}

	return nil
}

// Validate checks one language for unknown, duplicate and missing entries
func (l *Language) Validate() error {
	for _, key := range allTextKeys() {
		if l.Text[key] == "" {
			return goerr.New("missing text", goerr.V("key", key))
		}
	}

	tierIDs := make(map[types.Tier]bool)
	for _, t := range l.Tiers {
		id := types.Tier(t.ID)
		if !id.IsValid() {
			return goerr.New("unknown tier", goerr.V("id", t.ID))
		}
		if tierIDs[id] {
			return goerr.New("duplicate tier", goerr.V("id", t.ID))
		}
		if t.Label == "" || t.Explanation == "" {
			return goerr.New("tier label and explanation are required", goerr.V("id", t.ID))
		}
		tierIDs[id] = true
	}
	for _, tier := range types.AllTiers() {
		if !tierIDs[tier] {
			return goerr.New("missing tier", goerr.V("id", tier))
		}
	}

	known := make(map[types.MeasureTag]bool)
	for _, tag := range types.AllMeasureTags() {
		known[tag] = true
	}
	measureIDs := make(map[types.MeasureTag]bool)
	for _, m := range l.Measures {
		id := types.MeasureTag(m.ID)
		if !known[id] {
			return goerr.New("unknown measure", goerr.V("id", m.ID))
		}
		if measureIDs[id] {
			return goerr.New("duplicate measure", goerr.V("id", m.ID))
		}
		if m.Title == "" || m.Description == "" {
			return goerr.New("measure title and description are required", goerr.V("id", m.ID))
		}
		measureIDs[id] = true
	}
	for _, tag := range types.AllMeasureTags() {
		if !measureIDs[tag] {
			return goerr.New("missing measure", goerr.V("id", tag))
		}
	}

	complianceIDs := make(map[types.ComplianceTag]bool)
	for _, c := range l.Compliance {
		id := types.ComplianceTag(c.ID)
		if complianceIDs[id] {
			return goerr.New("duplicate compliance requirement", goerr.V("id", c.ID))
		}
		if c.Title == "" {
			return goerr.New("compliance title is required", goerr.V("id", c.ID))
		}
		complianceIDs[id] = true
	}
	for _, tag := range types.AllComplianceTags() {
		if !complianceIDs[tag] {
			return goerr.New("missing compliance requirement", goerr.V("id", tag))
		}
	}

	for kind := range l.Labels {
		switch kind {
		case LabelTool, LabelAutonomy, LabelData, LabelImpact, LabelTransparency, LabelUseCase, LabelProjectType:
		default:
			return goerr.New("unknown label kind", goerr.V("kind", kind))
		}
	}

	return nil
}

package insight

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"text/template"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/matside/pkg/model"
)

// AnalysisLimit is the number of latest records an analysis prompt covers
const AnalysisLimit = 10

//go:embed prompt/analysis.md
var analysisPromptRaw string

var analysisPromptTmpl = template.Must(template.New("analysis").Parse(analysisPromptRaw))

// requested report items per category; the last two are shared
var analysisSections = map[model.Category][]string{
	model.CategoryStrength: {
		"Progress analysis (improvements or plateaus)",
		"Form and technique recommendations",
		"Volume and intensity suggestions",
		"Recovery recommendations",
		"Specific exercise recommendations",
	},
	model.CategoryCardio: {
		"Endurance progress analysis",
		"Heart rate zone optimization",
		"Training intensity distribution",
		"Recovery recommendations",
		"Specific workout suggestions",
	},
	model.CategoryNutrition: {
		"Macro nutrient balance analysis",
		"Caloric needs assessment",
		"Meal timing recommendations",
		"Pre/post workout nutrition suggestions",
		"Hydration recommendations",
	},
	model.CategoryRecovery: {
		"Sleep quality analysis",
		"HRV trends and implications",
		"Soreness patterns",
		"Recovery optimization suggestions",
		"Rest day recommendations",
	},
	model.CategoryWrestling: {
		"Technique effectiveness analysis",
		"Takedown success rate trends",
		"Sparring intensity assessment",
		"Specific technique recommendations",
		"Training volume suggestions",
	},
	model.CategoryInjury: {
		"Injury risk assessment",
		"Pain pattern analysis",
		"Prevention recommendations",
		"Rehabilitation suggestions",
		"Training modifications",
	},
}

var commonSections = []string{
	"Warning signs or potential issues",
	"Action items for improvement",
}

// RecordPrompt builds the prompt summarizing one submitted record
func RecordPrompt(category model.Category, data map[string]any) (string, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return "", goerr.Wrap(err, "failed to marshal record data", goerr.V("category", category))
	}
	return fmt.Sprintf("Analyze this %s data and provide insights: %s", category.Title(), raw), nil
}

// AnalysisPrompt builds the structured report prompt over the latest records
func AnalysisPrompt(category model.Category, records []*model.Record) (string, error) {
	items, ok := analysisSections[category]
	if !ok {
		return "", goerr.Wrap(model.ErrInvalidCategory, "no analysis prompt for category", goerr.V("category", category))
	}

	if records == nil {
		records = []*model.Record{}
	}
	raw, err := json.Marshal(records)
	if err != nil {
		return "", goerr.Wrap(err, "failed to marshal records", goerr.V("category", category))
	}

	numbered := make([]string, 0, len(items)+len(commonSections))
	for i, item := range append(append([]string{}, items...), commonSections...) {
		numbered = append(numbered, fmt.Sprintf("%d. %s", i+1, item))
	}

	var buf bytes.Buffer
	if err := analysisPromptTmpl.Execute(&buf, map[string]any{
		"Title":    category.Title(),
		"Data":     string(raw),
		"Sections": numbered,
	}); err != nil {
		return "", goerr.Wrap(err, "failed to render analysis prompt", goerr.V("category", category))
	}

	return buf.String(), nil
}

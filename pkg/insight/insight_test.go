package insight_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/matside/pkg/insight"
	"github.com/m-mizutani/matside/pkg/model"
)

func TestRecordPrompt(t *testing.T) {
	prompt, err := insight.RecordPrompt(model.CategoryStrength, map[string]any{"weight": 100, "reps": 5})
	gt.NoError(t, err)
	gt.Equal(t, prompt, `Analyze this strength training data and provide insights: {"reps":5,"weight":100}`)

	prompt, err = insight.RecordPrompt(model.CategoryRecovery, map[string]any{})
	gt.NoError(t, err)
	gt.Equal(t, prompt, `Analyze this recovery data and provide insights: {}`)
}

func TestAnalysisPrompt(t *testing.T) {
	records := []*model.Record{
		model.NewRecord(model.CategoryWrestling, map[string]any{"takedownPercentage": 55}),
	}

	prompt, err := insight.AnalysisPrompt(model.CategoryWrestling, records)
	gt.NoError(t, err)

	gt.True(t, strings.HasPrefix(prompt, "Analyze this wrestling training data and provide detailed insights and recommendations:\n"))
	gt.S(t, prompt).Contains(`"takedownPercentage":55`)
	gt.S(t, prompt).Contains("Please include:\n1. Technique effectiveness analysis\n2. Takedown success rate trends\n")
	gt.S(t, prompt).Contains("6. Warning signs or potential issues\n7. Action items for improvement")
}

func TestAnalysisPromptEveryCategory(t *testing.T) {
	for _, c := range model.AllCategories() {
		t.Run(string(c), func(t *testing.T) {
			prompt, err := insight.AnalysisPrompt(c, nil)
			gt.NoError(t, err)
			gt.S(t, prompt).Contains("[]")
			for i := 1; i <= 7; i++ {
				gt.S(t, prompt).Contains("\n" + string(rune('0'+i)) + ". ")
			}
		})
	}

	_, err := insight.AnalysisPrompt(model.Category("finance"), nil)
	gt.True(t, errors.Is(err, model.ErrInvalidCategory))
}

func TestParseSections(t *testing.T) {
	text := "Here is your report.\n1. Progress analysis\nYou improved your squat.\nKeep going.\n2. Recovery\n3. Action items\n- Sleep more"

	sections := insight.ParseSections(text)
	gt.Equal(t, sections, []model.Section{
		{Title: "Here is your report.", Content: "Here is your report."},
		{Title: "Progress analysis", Content: "You improved your squat.\nKeep going."},
		{Title: "Recovery", Content: "Recovery"},
		{Title: "Action items", Content: "- Sleep more"},
	})
}

func TestParseSectionsSkipsEmptyPreamble(t *testing.T) {
	sections := insight.ParseSections("1. First\nbody\n2. Second")
	gt.A(t, sections).Length(2)
	gt.Equal(t, sections[0].Title, "First")
	gt.Equal(t, sections[0].Content, "body")
}

func TestParseSectionsWithoutMarkers(t *testing.T) {
	sections := insight.ParseSections("Plain text without a list")
	gt.True(t, sections != nil)
	gt.A(t, sections).Length(0)
}

func TestExtractActionItems(t *testing.T) {
	testCases := []struct {
		name     string
		category model.Category
		text     string
		expected []string
	}{
		{
			name:     "action items with bullets",
			category: model.CategoryStrength,
			text:     "Summary of the week.\n\nAction items:\n- Deload next week\n• Add mobility work\n* Track sleep\n\nGood luck!",
			expected: []string{"Deload next week", "Add mobility work", "Track sleep"},
		},
		{
			name:     "capture stops at a line starting with a letter",
			category: model.CategoryCardio,
			text:     "Action item: 1. Run easy\n2. Hydrate\nOverall you did well.",
			expected: []string{"1. Run easy", "2. Hydrate"},
		},
		{
			name:     "recommendations header",
			category: model.CategoryRecovery,
			text:     "Your HRV is trending down.\nRECOMMENDATIONS: take a rest day",
			expected: []string{"take a rest day"},
		},
		{
			name:     "you should header",
			category: model.CategoryNutrition,
			text:     "Based on your intake you should eat more protein",
			expected: []string{"eat more protein"},
		},
		{
			name:     "action items win over recommendations",
			category: model.CategoryWrestling,
			text:     "Recommendations: drill single legs\n\nAction items: film your matches",
			expected: []string{"film your matches"},
		},
		{
			name:     "no header uses category fallback",
			category: model.CategoryInjury,
			text:     "Nothing structured here.",
			expected: []string{
				"Follow proper rehabilitation protocols",
				"Don't rush back to training before fully recovered",
				"Address biomechanical issues that may have caused the injury",
			},
		},
		{
			name:     "empty capture uses category fallback",
			category: model.CategoryStrength,
			text:     "Action items: ---\n\nRecommendations: rest",
			expected: []string{
				"Focus on proper form to prevent injuries and maximize gains",
				"Ensure adequate rest between training sessions",
				"Progressive overload by gradually increasing weight or reps",
			},
		},
		{
			name:     "unknown category uses generic fallback",
			category: model.Category("career"),
			text:     "",
			expected: []string{
				"Continue monitoring your performance trends",
				"Focus on recovery between training sessions",
				"Maintain consistent data logging for better insights",
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			gt.Equal(t, insight.ExtractActionItems(tc.category, tc.text), tc.expected)
		})
	}
}

func TestFallbackActionItemsIsACopy(t *testing.T) {
	items := insight.FallbackActionItems(model.CategoryCardio)
	items[0] = "changed"
	gt.NotEqual(t, insight.FallbackActionItems(model.CategoryCardio)[0], "changed")
}

func TestBuild(t *testing.T) {
	got := insight.Build(model.CategoryRecovery, "1. Sleep\nYou slept well.\n\nAction items: nap daily")
	gt.Equal(t, got.Category, model.CategoryRecovery)
	gt.A(t, got.Sections).Length(1)
	gt.Equal(t, got.ActionItems, []string{"nap daily"})
	gt.True(t, !got.CreatedAt.IsZero())
}

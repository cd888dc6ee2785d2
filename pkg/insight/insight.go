// Package insight turns categories and records into provider prompts and
// structures the generated text.
package insight

import (
	"time"

	"github.com/m-mizutani/matside/pkg/model"
)

// Build structures generated text into sections and action items
func Build(category model.Category, text string) *model.Insight {
	return &model.Insight{
		Category:    category,
		Text:        text,
		Sections:    ParseSections(text),
		ActionItems: ExtractActionItems(category, text),
		CreatedAt:   time.Now(),
	}
}

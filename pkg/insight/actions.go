package insight

import (
	"regexp"
	"strings"

	"github.com/m-mizutani/matside/pkg/model"
)

type actionRule struct {
	name string
	// group 1 is the separator run after the header
	header *regexp.Regexp
}

// tried in order; the first header with a capture wins
var actionRules = []actionRule{
	{name: "action items", header: regexp.MustCompile(`(?i)action items?([:\s]+)`)},
	{name: "recommendations", header: regexp.MustCompile(`(?i)recommendations?([:\s]+)`)},
	{name: "you should", header: regexp.MustCompile(`(?i)you should([:\s]+)`)},
}

var (
	// a blank line or a new line starting with a letter closes the capture
	captureEnd    = regexp.MustCompile(`\n\n|\n[A-Za-z]`)
	itemSeparator = regexp.MustCompile(`\n|•|\*|-`)
)

var fallbackActionItems = map[model.Category][]string{
	model.CategoryStrength: {
		"Focus on proper form to prevent injuries and maximize gains",
		"Ensure adequate rest between training sessions",
		"Progressive overload by gradually increasing weight or reps",
	},
	model.CategoryCardio: {
		"Maintain heart rate in the optimal zone for your goals",
		"Vary intensity with interval training for better results",
		"Stay hydrated during cardio sessions",
	},
	model.CategoryNutrition: {
		"Ensure adequate protein intake for muscle recovery",
		"Time carbohydrate intake around workout sessions",
		"Stay hydrated throughout the day",
	},
	model.CategoryRecovery: {
		"Prioritize sleep quality and duration",
		"Use active recovery techniques on rest days",
		"Monitor HRV to detect overtraining early",
	},
	model.CategoryWrestling: {
		"Practice key techniques with high repetition",
		"Use video analysis to identify areas for improvement",
		"Focus on conditioning specific to wrestling demands",
	},
	model.CategoryInjury: {
		"Follow proper rehabilitation protocols",
		"Don't rush back to training before fully recovered",
		"Address biomechanical issues that may have caused the injury",
	},
}

var genericActionItems = []string{
	"Continue monitoring your performance trends",
	"Focus on recovery between training sessions",
	"Maintain consistent data logging for better insights",
}

// ExtractActionItems pulls a list of action items out of generated text.
// When no rule captures anything the fallback list of the category is
// returned, so the result is never empty.
func ExtractActionItems(category model.Category, text string) []string {
	for _, rule := range actionRules {
		captured, ok := captureAfter(rule.header, text)
		if !ok {
			continue
		}

		if items := splitItems(captured); len(items) > 0 {
			return items
		}
		break
	}

	return FallbackActionItems(category)
}

// FallbackActionItems returns a copy of the default action items of category
func FallbackActionItems(category model.Category) []string {
	items, ok := fallbackActionItems[category]
	if !ok {
		items = genericActionItems
	}
	return append([]string{}, items...)
}

func captureAfter(header *regexp.Regexp, text string) (string, bool) {
	for _, loc := range header.FindAllStringSubmatchIndex(text, -1) {
		sepStart, end := loc[2], loc[3]
		rest := text[end:]

		if rest == "" {
			// the separator run has to give one character back to the capture
			if end-sepStart > 1 {
				return text[end-1:], true
			}
			continue
		}

		stop := len(rest)
		if idx := captureEnd.FindStringIndex(rest[1:]); idx != nil {
			stop = idx[0] + 1
		}
		return rest[:stop], true
	}

	return "", false
}

func splitItems(captured string) []string {
	var items []string
	for _, item := range itemSeparator.Split(strings.TrimSpace(captured), -1) {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

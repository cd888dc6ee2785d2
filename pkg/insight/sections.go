package insight

import (
	"regexp"
	"strings"

	"github.com/m-mizutani/matside/pkg/model"
)

var sectionMarker = regexp.MustCompile(`\d+\.\s+`)

// ParseSections splits generated text at numbered list markers. A non-empty
// preamble before the first marker becomes a section of its own. Text without
// any marker yields no sections.
func ParseSections(text string) []model.Section {
	sections := []model.Section{}

	parts := sectionMarker.Split(text, -1)
	if len(parts) <= 1 {
		return sections
	}

	start := 0
	if strings.TrimSpace(parts[0]) == "" {
		start = 1
	}

	for _, part := range parts[start:] {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		lines := strings.Split(part, "\n")
		title := strings.TrimSpace(lines[0])
		content := strings.TrimSpace(strings.Join(lines[1:], "\n"))
		if content == "" {
			content = title
		}

		sections = append(sections, model.Section{Title: title, Content: content})
	}

	return sections
}

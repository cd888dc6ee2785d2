package model

import "time"

// Section is one numbered part of a generated insight text
type Section struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Insight is generated text about a category with its structured views
type Insight struct {
	Category    Category  `json:"category"`
	Text        string    `json:"insights"`
	Sections    []Section `json:"sections"`
	ActionItems []string  `json:"actionItems"`
	CreatedAt   time.Time `json:"createdAt"`
}

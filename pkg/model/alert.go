package model

type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
)

// Alert is a derived signal about the latest tracked values. Alerts are never
// stored; they are recomputed from history on every evaluation.
type Alert struct {
	Category Category `json:"category"`
	Severity Severity `json:"type"`
	// Priority 1 is the most urgent
	Priority int    `json:"priority"`
	Message  string `json:"message"`
}

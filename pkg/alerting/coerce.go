package alerting

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/m-mizutani/matside/pkg/model"
)

var (
	intPrefix   = regexp.MustCompile(`^[+-]?\d+`)
	floatPrefix = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)
)

// intField reads key as an integer the way a lenient form parser does: the
// leading integer part of numbers and numeric strings, NaN for anything else.
func intField(r *model.Record, key string) float64 {
	v := numericField(r, key, intPrefix)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return math.NaN()
	}
	return math.Trunc(v)
}

// floatField reads key as a float, NaN when missing or not numeric.
func floatField(r *model.Record, key string) float64 {
	return numericField(r, key, floatPrefix)
}

func numericField(r *model.Record, key string, prefix *regexp.Regexp) float64 {
	if r == nil {
		return math.NaN()
	}

	switch v := r.Data[key].(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int32:
		return float64(v)
	case int64:
		return float64(v)
	case uint64:
		return float64(v)
	case json.Number:
		return parsePrefix(v.String(), prefix)
	case string:
		return parsePrefix(v, prefix)
	default:
		return math.NaN()
	}
}

func parsePrefix(s string, prefix *regexp.Regexp) float64 {
	m := prefix.FindString(strings.TrimSpace(s))
	if m == "" {
		return math.NaN()
	}
	f, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return math.NaN()
	}
	return f
}

// stringField returns key when it holds a string
func stringField(r *model.Record, key string) (string, bool) {
	if r == nil {
		return "", false
	}
	s, ok := r.Data[key].(string)
	return s, ok
}

func zeroIfNaN(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return v
}

func formatNumber(v float64) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// round halves up, matching how percentages are displayed in messages
func round(v float64) string {
	return formatNumber(math.Floor(v + 0.5))
}

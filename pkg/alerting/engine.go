// Package alerting derives prioritized alerts from the latest tracked records.
//
// Every history slice handed to Analyze must be ordered latest first: index 0
// is the newest record of its category. All repositories return records in
// that order.
package alerting

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/m-mizutani/matside/pkg/model"
)

type ruleSet struct {
	category model.Category
	eval     func(records []*model.Record, out *emitter)
}

// evaluation order; ties in priority keep this order
var ruleSets = []ruleSet{
	{model.CategoryStrength, evalStrength},
	{model.CategoryRecovery, evalRecovery},
	{model.CategoryNutrition, evalNutrition},
	{model.CategoryWrestling, evalWrestling},
	{model.CategoryInjury, evalInjury},
	{model.CategoryCardio, evalCardio},
}

// Analyze evaluates the rule set of every non-empty category and returns the
// fired alerts sorted by ascending priority. It has no side effects and never
// fails; missing or non-numeric fields only make rules not fire.
func Analyze(history map[model.Category][]*model.Record) []*model.Alert {
	alerts := []*model.Alert{}

	for _, rs := range ruleSets {
		records := history[rs.category]
		if len(records) == 0 {
			continue
		}

		out := &emitter{category: rs.category}
		rs.eval(records, out)
		alerts = append(alerts, out.alerts...)
	}

	slices.SortStableFunc(alerts, func(a, b *model.Alert) int {
		return cmp.Compare(a.Priority, b.Priority)
	})

	return alerts
}

type emitter struct {
	category model.Category
	alerts   []*model.Alert
}

func (e *emitter) add(severity model.Severity, priority int, format string, args ...any) {
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	e.alerts = append(e.alerts, &model.Alert{
		Category: e.category,
		Severity: severity,
		Priority: priority,
		Message:  msg,
	})
}

package alerting

import "github.com/m-mizutani/matside/pkg/model"

func evalInjury(records []*model.Record, out *emitter) {
	latest := records[0]
	pain := intField(latest, "painLevel")
	area, hasArea := stringField(latest, "area")
	areaName := area
	if !hasArea {
		areaName = "unknown area"
	}

	if pain > 7 {
		out.add(model.SeverityError, 1,
			"High pain level (%s/10) detected in %s. Seek medical evaluation.", formatNumber(pain), areaName)
	} else if pain > 4 {
		out.add(model.SeverityWarning, 1,
			"Moderate pain (%s/10) detected in %s. Consider modifying training.", formatNumber(pain), areaName)
	}

	if !hasArea {
		return
	}

	// the latest record counts itself
	same := 0
	for _, r := range records {
		if a, ok := stringField(r, "area"); ok && a == area {
			same++
		}
	}
	if same > 1 {
		out.add(model.SeverityError, 1,
			"Recurring injury detected in %s. This may indicate a chronic issue that needs addressing.", areaName)
	}
}

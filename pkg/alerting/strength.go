package alerting

import "github.com/m-mizutani/matside/pkg/model"

const (
	strengthHighWeight = 90
	strengthHighVolume = 3000
)

func strengthVolume(r *model.Record) float64 {
	return intField(r, "weight") * intField(r, "reps") * intField(r, "sets")
}

func evalStrength(records []*model.Record, out *emitter) {
	latest := records[0]
	weight := intField(latest, "weight")
	volume := strengthVolume(latest)

	if weight > strengthHighWeight {
		out.add(model.SeverityWarning, 2, "High weight detected. Ensure proper form and technique to prevent injury.")
	}

	if volume > strengthHighVolume {
		out.add(model.SeverityWarning, 1, "High training volume detected. Ensure adequate recovery time.")
	}

	if len(records) > 1 {
		previous := strengthVolume(records[1])
		if volume < previous*0.8 {
			out.add(model.SeverityInfo, 2, "Significant decrease in training volume detected. Check for fatigue or technique issues.")
		} else if volume > previous*1.2 {
			out.add(model.SeveritySuccess, 3, "Significant increase in training volume! Great progress.")
		}
	}
}

package alerting

import "github.com/m-mizutani/matside/pkg/model"

const (
	cardioPaceWindow = 3
	// minutes per distance unit
	cardioSlowPace = 10
)

func evalCardio(records []*model.Record, out *emitter) {
	latest := records[0]
	heartRate := intField(latest, "heartRate")
	duration := intField(latest, "duration")

	if heartRate > 180 {
		out.add(model.SeverityWarning, 2,
			"Very high heart rate detected (%s bpm). Ensure this is appropriate for your training.", formatNumber(heartRate))
	}

	if duration > 90 {
		out.add(model.SeverityInfo, 3,
			"Long cardio session (%s min). Ensure this aligns with your training goals.", formatNumber(duration))
	}

	// the pace window needs a record beyond the window itself
	if len(records) <= cardioPaceWindow {
		return
	}

	var totalDistance, totalDuration float64
	for _, r := range records[:cardioPaceWindow] {
		totalDistance += zeroIfNaN(floatField(r, "distance"))
		totalDuration += zeroIfNaN(floatField(r, "duration"))
	}

	if pace := totalDuration / totalDistance; pace > cardioSlowPace {
		out.add(model.SeverityInfo, 3, "Your recent cardio pace is slower than optimal. Consider adding some speed work.")
	}
}

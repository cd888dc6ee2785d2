package alerting

import "github.com/m-mizutani/matside/pkg/model"

const (
	recoveryLowHRV       = 50
	recoveryMinSleep     = 7
	recoveryHighSoreness = 7
	recoveryTrendWindow  = 3
)

func evalRecovery(records []*model.Record, out *emitter) {
	latest := records[0]
	hrv := intField(latest, "hrv")
	sleep := intField(latest, "sleepHours")
	soreness := intField(latest, "soreness")

	if hrv < recoveryLowHRV {
		out.add(model.SeverityError, 1, "Low HRV detected. Consider taking a rest day or reducing training intensity.")
	}

	if sleep < recoveryMinSleep {
		out.add(model.SeverityWarning, 1, "Insufficient sleep detected. Aim for 7-9 hours of sleep for optimal recovery.")
	}

	if soreness > recoveryHighSoreness {
		out.add(model.SeverityWarning, 2, "High soreness level detected. Consider active recovery techniques.")
	}

	if len(records) < recoveryTrendWindow {
		return
	}

	lowHRV, poorSleep := true, true
	for _, r := range records[:recoveryTrendWindow] {
		if !(intField(r, "hrv") < recoveryLowHRV) {
			lowHRV = false
		}
		if !(intField(r, "sleepHours") < recoveryMinSleep) {
			poorSleep = false
		}
	}

	if lowHRV {
		out.add(model.SeverityError, 1, "Consistently low HRV detected across multiple days. High risk of overtraining.")
	}
	if poorSleep {
		out.add(model.SeverityError, 1, "Consistently poor sleep detected. This severely impacts recovery and performance.")
	}
}

package alerting

import "github.com/m-mizutani/matside/pkg/model"

func evalWrestling(records []*model.Record, out *emitter) {
	latest := records[0]
	takedown := intField(latest, "takedownPercentage")
	rounds := intField(latest, "sparringRounds")

	if takedown < 40 {
		out.add(model.SeverityWarning, 2,
			"Low takedown percentage detected (%s%%). Focus on technique improvement.", formatNumber(takedown))
	} else if takedown > 70 {
		out.add(model.SeveritySuccess, 3,
			"Excellent takedown percentage (%s%%)! Your technique is working well.", formatNumber(takedown))
	}

	if rounds > 10 {
		out.add(model.SeverityWarning, 2,
			"High number of sparring rounds (%s). Ensure adequate recovery.", formatNumber(rounds))
	}

	if len(records) > 1 {
		previous := intField(records[1], "takedownPercentage")
		if takedown < previous*0.8 {
			out.add(model.SeverityInfo, 2, "Significant decrease in takedown percentage. Review technique and strategy.")
		} else if takedown > previous*1.2 {
			out.add(model.SeveritySuccess, 3, "Significant improvement in takedown percentage! Your practice is paying off.")
		}
	}
}

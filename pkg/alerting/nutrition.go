package alerting

import "github.com/m-mizutani/matside/pkg/model"

const (
	estimatedCalorieNeed = 2500
	estimatedProteinNeed = 150
	nutritionMinCarbs    = 200
	minProteinPercentage = 20
	minFatPercentage     = 15
)

func evalNutrition(records []*model.Record, out *emitter) {
	latest := records[0]
	calories := intField(latest, "calories")
	protein := intField(latest, "protein")
	carbs := intField(latest, "carbs")
	fats := intField(latest, "fats")

	if protein < estimatedProteinNeed {
		out.add(model.SeverityWarning, 2,
			"Low protein intake detected (%sg). Increase protein intake for better recovery and muscle growth.",
			formatNumber(protein))
	}

	if carbs < nutritionMinCarbs {
		out.add(model.SeverityWarning, 3,
			"Low carbohydrate intake detected (%sg). Increase carbs for better energy levels and performance.",
			formatNumber(carbs))
	}

	if calories < estimatedCalorieNeed*0.8 {
		out.add(model.SeverityError, 1,
			"Calorie intake is significantly below needs (%s). This may impact recovery and performance.",
			formatNumber(calories))
	} else if calories > estimatedCalorieNeed*1.2 {
		out.add(model.SeverityInfo, 3,
			"Calorie intake is above estimated needs (%s). Ensure this aligns with your current training phase.",
			formatNumber(calories))
	}

	// 4 kcal per gram of protein, 9 per gram of fat
	proteinPct := protein * 4 / calories * 100
	fatPct := fats * 9 / calories * 100

	if proteinPct < minProteinPercentage {
		out.add(model.SeverityWarning, 2,
			"Protein is only %s%% of your diet. Consider increasing relative protein intake.",
			round(proteinPct))
	}

	if fatPct < minFatPercentage {
		out.add(model.SeverityWarning, 3,
			"Fat intake is only %s%% of your diet. Healthy fats are essential for hormone production.",
			round(fatPct))
	}
}

package forecast

import "math"

// ScoreAccuracy оценивает достоверность прогноза в диапазоне 0..100.
func ScoreAccuracy(observedDays int, incomeStdDev, avgMonthlyIncome float64, hasBills bool) int {
	base := clampInt(int(math.Round(float64(observedDays)*0.3+40)), 50, 95)

	score := base
	if incomeStdDev < avgMonthlyIncome*0.3 {
		score += 5
	}
	if hasBills {
		score += 5
	}

	return clampInt(score, 0, 100)
}

func clampInt(value, low, high int) int {
	if value < low {
		return low
	}
	if value > high {
		return high
	}
	return value
}

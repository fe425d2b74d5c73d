package forecast

import (
	"math"
	"time"
)

type BaselineInput struct {
	CurrentBalance float64
	Stats          Stats
	Cycle          IncomeCycle
	Bills          BillOverlay
	ForecastDays   int
	Now            time.Time
}

// ProjectBaseline рассчитывает остаток на конец каждого дня прогноза без внешних данных.
// Element d is the balance at the end of calendar day now+d+1.
func ProjectBaseline(input BaselineInput) []float64 {
	if input.ForecastDays <= 0 {
		return []float64{}
	}

	monthlyIncome := input.Stats.MonthlyIncome()
	today := civilDay(input.Now)

	baseline := make([]float64, input.ForecastDays)
	balance := input.CurrentBalance
	for d := 0; d < input.ForecastDays; d++ {
		var dayIncome float64
		switch input.Cycle {
		case IncomeCycleEndOfMonth, IncomeCycleMidMonth:
			if input.Cycle.paysOn(today.AddDate(0, 0, d+1).Day()) {
				dayIncome = monthlyIncome
			}
		default:
			dayIncome = input.Stats.AvgDailyIncome
		}

		dayExpense := math.Max(0, input.Stats.AvgDailyExpense+input.Stats.ExpenseTrendPerDay*float64(d))

		balance = balance + dayIncome - dayExpense - input.Bills[d]
		baseline[d] = balance
	}

	return baseline
}

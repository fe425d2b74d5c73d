package forecast

import "example.com/balance-forecast/internal/models"

type IncomeCycle string

const (
	IncomeCycleEndOfMonth IncomeCycle = "end_of_month"
	IncomeCycleMidMonth   IncomeCycle = "mid_month"
	IncomeCycleIrregular  IncomeCycle = "irregular"
)

// DetectIncomeCycle определяет цикл поступления дохода по среднему дню месяца.
// Операции расходов игнорируются.
func DetectIncomeCycle(transactions []models.Transaction) IncomeCycle {
	var sum, count int
	for _, tx := range transactions {
		if tx.Type != models.TransactionTypeIncome {
			continue
		}
		sum += tx.Date.Day()
		count++
	}

	if count < 2 {
		return IncomeCycleIrregular
	}

	mean := float64(sum) / float64(count)
	switch {
	case mean >= 25 || mean <= 5:
		return IncomeCycleEndOfMonth
	case mean >= 10 && mean <= 15:
		return IncomeCycleMidMonth
	default:
		return IncomeCycleIrregular
	}
}

// paysOn reports whether the cycle injects income on the given day of month.
func (c IncomeCycle) paysOn(dayOfMonth int) bool {
	switch c {
	case IncomeCycleEndOfMonth:
		return dayOfMonth >= 25 || dayOfMonth <= 5
	case IncomeCycleMidMonth:
		return dayOfMonth >= 10 && dayOfMonth <= 15
	default:
		return false
	}
}

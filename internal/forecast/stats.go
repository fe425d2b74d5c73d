package forecast

import (
	"math"
	"sort"
	"strings"
	"time"

	"example.com/balance-forecast/internal/models"
)

// OtherCategory collects expenses that carry no category.
const OtherCategory = "Other"

type CategoryTotal struct {
	Total float64 `json:"total"`
	Count int     `json:"count"`
	Avg   float64 `json:"avg"`
}

type Stats struct {
	AvgDailyIncome     float64                  `json:"avg_daily_income"`
	AvgDailyExpense    float64                  `json:"avg_daily_expense"`
	IncomeStdDev       float64                  `json:"income_std_dev"`
	ExpenseStdDev      float64                  `json:"expense_std_dev"`
	IncomeTrendPerDay  float64                  `json:"income_trend_per_day"`
	ExpenseTrendPerDay float64                  `json:"expense_trend_per_day"`
	CategoryTotals     map[string]CategoryTotal `json:"category_totals"`
	TotalObservedDays  int                      `json:"total_observed_days"`
}

// MonthlyIncome is the canonical monthly income used by the projector and the insights.
func (s Stats) MonthlyIncome() float64 {
	return s.AvgDailyIncome * 30
}

func (s Stats) MonthlyExpense() float64 {
	return s.AvgDailyExpense * 30
}

type daySums struct {
	income  float64
	expense float64
}

// ComputeStats собирает дневную статистику по истории операций.
// Учитываются только дни, в которых была хотя бы одна операция.
func ComputeStats(transactions []models.Transaction) Stats {
	stats := Stats{CategoryTotals: make(map[string]CategoryTotal)}

	byDay := make(map[time.Time]*daySums)
	for _, tx := range transactions {
		amount := tx.Amount.InexactFloat64()
		if amount < 0 || math.IsNaN(amount) || math.IsInf(amount, 0) {
			continue
		}

		switch tx.Type {
		case models.TransactionTypeIncome, models.TransactionTypeExpense:
		default:
			continue
		}

		day := civilDay(tx.Date)
		sums, ok := byDay[day]
		if !ok {
			sums = &daySums{}
			byDay[day] = sums
		}

		if tx.Type == models.TransactionTypeIncome {
			sums.income += amount
			continue
		}

		sums.expense += amount
		category := OtherCategory
		if tx.Category != nil && strings.TrimSpace(*tx.Category) != "" {
			category = strings.TrimSpace(*tx.Category)
		}
		total := stats.CategoryTotals[category]
		total.Total += amount
		total.Count++
		total.Avg = total.Total / float64(total.Count)
		stats.CategoryTotals[category] = total
	}

	if len(byDay) == 0 {
		return stats
	}

	days := make([]time.Time, 0, len(byDay))
	for day := range byDay {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	incomes := make([]float64, len(days))
	expenses := make([]float64, len(days))
	for i, day := range days {
		incomes[i] = byDay[day].income
		expenses[i] = byDay[day].expense
	}

	stats.TotalObservedDays = len(days)
	stats.AvgDailyIncome, stats.IncomeStdDev = meanStdDev(incomes)
	stats.AvgDailyExpense, stats.ExpenseStdDev = meanStdDev(expenses)
	stats.IncomeTrendPerDay = linearTrend(incomes)
	stats.ExpenseTrendPerDay = linearTrend(expenses)

	return stats
}

// meanStdDev returns the mean and the population standard deviation.
func meanStdDev(values []float64) (float64, float64) {
	if len(values) == 0 {
		return 0, 0
	}

	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))

	var variance float64
	for _, v := range values {
		diff := v - mean
		variance += diff * diff
	}

	return mean, math.Sqrt(variance / float64(len(values)))
}

// linearTrend is the least-squares slope of values against x = 0, 1, 2, ...
func linearTrend(values []float64) float64 {
	n := float64(len(values))
	if n <= 1 {
		return 0
	}

	var sumX, sumY, sumXY, sumX2 float64
	for i, y := range values {
		x := float64(i)
		sumX += x
		sumY += y
		sumXY += x * y
		sumX2 += x * x
	}

	denom := n*sumX2 - sumX*sumX
	if denom == 0 {
		return 0
	}

	return (n*sumXY - sumX*sumY) / denom
}

// civilDay drops the clock part and pins the date to UTC so day arithmetic is exact.
func civilDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func daysBetween(from, to time.Time) int {
	return int(civilDay(to).Sub(civilDay(from)).Hours() / 24)
}

package forecast

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"example.com/balance-forecast/internal/models"
)

const (
	minAdvice = 3
	maxAdvice = 5

	emergencyFundShare   = 0.20
	categoryCutShare     = 0.15
	trendMateriality     = 1000
	balanceMateriality   = 10000
	trendHorizonMonths   = 3
	fallbackReserveShare = 0.10
)

type InsightInput struct {
	Stats Stats
	// RawForecast is the blended series before clamping.
	RawForecast    []float64
	PublicForecast []float64
	Bills          []models.Bill
	CurrentBalance float64
	DraftAdvice    []string
	Now            time.Time
	Currency       string
}

// GenerateInsights формирует от 3 до 5 советов, каждый с количественным фактом.
// Rule-based advice comes first in priority order; oracle drafts only backfill.
func GenerateInsights(input InsightInput) []string {
	advice := make([]string, 0, maxAdvice)
	add := func(text string) {
		if text != "" && len(advice) < maxAdvice {
			advice = append(advice, text)
		}
	}

	add(deficitAdvice(input))
	add(savingsAdvice(input))
	add(billsAdvice(input))
	add(categoryAdvice(input))
	add(trendAdvice(input))
	add(balanceAdvice(input))

	if len(advice) >= minAdvice {
		return advice
	}

	seen := make(map[string]struct{}, len(advice))
	for _, item := range advice {
		seen[strings.ToLower(item)] = struct{}{}
	}

	drafts := make([]string, 0, len(input.DraftAdvice))
	for _, draft := range input.DraftAdvice {
		trimmed := strings.TrimSpace(draft)
		key := strings.ToLower(trimmed)
		if trimmed == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		drafts = append(drafts, trimmed)
	}

	used := make([]bool, len(drafts))
	for i, draft := range drafts {
		if len(advice) >= minAdvice {
			break
		}
		if isQuantified(draft) {
			add(draft)
			used[i] = true
		}
	}

	for i, draft := range drafts {
		if len(advice) >= minAdvice {
			break
		}
		if !used[i] && hasDigit(draft) {
			add(draft)
		}
	}

	for _, text := range fallbackAdvice(input) {
		if len(advice) >= minAdvice {
			break
		}
		add(text)
	}

	return advice
}

func deficitAdvice(input InsightInput) string {
	firstNegative := -1
	minimum := 0.0
	for i, v := range input.RawForecast {
		if v < 0 && firstNegative == -1 {
			firstNegative = i
		}
		if v < minimum {
			minimum = v
		}
	}

	if firstNegative == -1 {
		return ""
	}

	date := civilDay(input.Now).AddDate(0, 0, firstNegative+1)
	return fmt.Sprintf(
		"Balance is projected to drop below zero on %s, with a deficit of up to %s. Postpone non-essential spending before that date.",
		formatDate(date), formatAmount(minimum, input.Currency),
	)
}

func savingsAdvice(input InsightInput) string {
	income := input.Stats.MonthlyIncome()
	expense := input.Stats.MonthlyExpense()
	if income <= expense {
		return ""
	}

	surplus := income - expense
	return fmt.Sprintf(
		"Monthly income exceeds expenses by %s (%s of income). Move %s (20%% of the surplus) into an emergency fund each month.",
		formatAmount(surplus, input.Currency), formatPercent(surplus/income*100), formatAmount(surplus*emergencyFundShare, input.Currency),
	)
}

func billsAdvice(input InsightInput) string {
	if len(input.Bills) == 0 {
		return ""
	}

	largest := input.Bills[0]
	soonest := input.Bills[0]
	for _, bill := range input.Bills[1:] {
		if bill.Amount.GreaterThan(largest.Amount) {
			largest = bill
		}
		if civilDay(bill.DueDate).Before(civilDay(soonest.DueDate)) {
			soonest = bill
		}
	}

	return fmt.Sprintf(
		"%d unpaid bills total %s. The largest is %s at %s; the nearest is %s (%s) %s.",
		len(input.Bills), formatAmount(billsTotal(input.Bills), input.Currency),
		largest.Name, formatAmount(largest.Amount.InexactFloat64(), input.Currency),
		soonest.Name, formatAmount(soonest.Amount.InexactFloat64(), input.Currency),
		dueIn(daysBetween(input.Now, soonest.DueDate)),
	)
}

func dueIn(days int) string {
	switch {
	case days > 0:
		return "due in " + pluralDays(days)
	case days == 0:
		return "due today (0 days left)"
	default:
		return "overdue by " + pluralDays(-days)
	}
}

func categoryAdvice(input InsightInput) string {
	if len(input.Stats.CategoryTotals) == 0 {
		return ""
	}

	names := make([]string, 0, len(input.Stats.CategoryTotals))
	var total float64
	for name, category := range input.Stats.CategoryTotals {
		names = append(names, name)
		total += category.Total
	}
	if total <= 0 {
		return ""
	}

	sort.Slice(names, func(i, j int) bool {
		a, b := input.Stats.CategoryTotals[names[i]], input.Stats.CategoryTotals[names[j]]
		if a.Total != b.Total {
			return a.Total > b.Total
		}
		return names[i] < names[j]
	})

	top := input.Stats.CategoryTotals[names[0]]
	return fmt.Sprintf(
		"%s is the largest expense category: %s (%s of all expenses, %s per transaction). Cutting it by 15%% would save %s.",
		names[0], formatAmount(top.Total, input.Currency), formatPercent(top.Total/total*100),
		formatAmount(top.Avg, input.Currency), formatAmount(top.Total*categoryCutShare, input.Currency),
	)
}

func trendAdvice(input InsightInput) string {
	monthly := input.Stats.ExpenseTrendPerDay * 30
	if math.Abs(monthly) <= trendMateriality {
		return ""
	}

	direction := "rising"
	change := "increase"
	if monthly < 0 {
		direction = "falling"
		change = "decrease"
	}

	return fmt.Sprintf(
		"Spending is %s by about %s per month. At this pace expenses %s by %s over the next %d months.",
		direction, formatAmount(monthly, input.Currency), change,
		formatAmount(monthly*trendHorizonMonths, input.Currency), trendHorizonMonths,
	)
}

func balanceAdvice(input InsightInput) string {
	if len(input.PublicForecast) == 0 {
		return ""
	}

	final := input.PublicForecast[len(input.PublicForecast)-1]
	change := final - input.CurrentBalance
	if math.Abs(change) <= balanceMateriality {
		return ""
	}

	verb := "grow"
	if change < 0 {
		verb = "shrink"
	}

	endDate := civilDay(input.Now).AddDate(0, 0, len(input.PublicForecast))
	if input.CurrentBalance == 0 {
		return fmt.Sprintf("Balance is expected to %s by %s to %s by %s.",
			verb, formatAmount(change, input.Currency), formatAmount(final, input.Currency), formatDate(endDate))
	}

	return fmt.Sprintf("Balance is expected to %s by %s (%s) to %s by %s.",
		verb, formatAmount(change, input.Currency), formatPercent(math.Abs(change/input.CurrentBalance)*100),
		formatAmount(final, input.Currency), formatDate(endDate))
}

func fallbackAdvice(input InsightInput) []string {
	reserve := math.Max(0, input.CurrentBalance) * fallbackReserveShare
	return []string{
		fmt.Sprintf("Keep at least 10%% of the current balance (%s) as a reserve for unplanned expenses.",
			formatAmount(reserve, input.Currency)),
		fmt.Sprintf("This %d-day forecast is based on %d days of transaction history; record every transaction to make it more precise.",
			len(input.PublicForecast), input.Stats.TotalObservedDays),
		fmt.Sprintf("Average daily spending is %s; compare it with your plan once every 7 days.",
			formatAmount(input.Stats.AvgDailyExpense, input.Currency)),
	}
}

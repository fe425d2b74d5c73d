package forecast

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"example.com/balance-forecast/internal/models"
)

func assertAdviceInvariants(t *testing.T, advice []string) {
	t.Helper()

	require.GreaterOrEqual(t, len(advice), 3)
	require.LessOrEqual(t, len(advice), 5)
	for _, item := range advice {
		assert.True(t, hasDigit(item), "advice without digits: %q", item)
	}
}

// TestGenerateInsightsFallback проверяет встроенные советы при пустых данных.
func TestGenerateInsightsFallback(t *testing.T) {
	advice := GenerateInsights(InsightInput{
		Stats:          ComputeStats(nil),
		RawForecast:    repeat(1000000, 7),
		PublicForecast: repeat(1000000, 7),
		CurrentBalance: 1000000,
		Now:            testNow,
		Currency:       "RUB",
	})

	assertAdviceInvariants(t, advice)
	assert.Contains(t, advice[0], "100,000 RUB")
	assert.Contains(t, advice[1], "7-day forecast")
}

// TestGenerateInsightsDraftBackfill проверяет приоритет черновиков с количественными фактами.
func TestGenerateInsightsDraftBackfill(t *testing.T) {
	drafts := []string{
		"Spend less on coffee",
		"  ",
		"Cut 2 streaming subscriptions",
		"Save 5,000 RUB for holidays",
		"Save 5,000 RUB for holidays",
	}

	advice := GenerateInsights(InsightInput{
		Stats:          ComputeStats(nil),
		RawForecast:    repeat(500, 7),
		PublicForecast: repeat(500, 7),
		CurrentBalance: 500,
		DraftAdvice:    drafts,
		Now:            testNow,
		Currency:       "RUB",
	})

	assertAdviceInvariants(t, advice)
	assert.Equal(t, "Save 5,000 RUB for holidays", advice[0])
	assert.Equal(t, "Cut 2 streaming subscriptions", advice[1])
	assert.NotContains(t, advice, "Spend less on coffee")
}

// TestGenerateInsightsRules проверяет срабатывание правил и ограничение в пять советов.
func TestGenerateInsightsRules(t *testing.T) {
	transactions := []models.Transaction{
		income(300000, day(2026, time.September, 1)),
		expense(20000, day(2026, time.September, 2), "Food"),
		expense(90000, day(2026, time.September, 3), "Food"),
		expense(5000, day(2026, time.September, 4), "Transport"),
	}
	stats := ComputeStats(transactions)

	bills := []models.Bill{
		bill("Rent", 700000, day(2026, time.October, 25)),
		bill("Internet", 50000, day(2026, time.October, 20)),
	}

	advice := GenerateInsights(InsightInput{
		Stats:          stats,
		RawForecast:    []float64{50000, -20000, -120000},
		PublicForecast: []float64{50000, 0, 0},
		Bills:          bills,
		CurrentBalance: 100000,
		DraftAdvice:    []string{"Save 1,000 RUB"},
		Now:            testNow,
		Currency:       "RUB",
	})

	require.Len(t, advice, 5)
	assertAdviceInvariants(t, advice)

	assert.Contains(t, advice[0], "2026-10-20")
	assert.Contains(t, advice[0], "120,000 RUB")
	assert.Contains(t, advice[1], "emergency fund")
	assert.Contains(t, advice[2], "2 unpaid bills total 750,000 RUB")
	assert.Contains(t, advice[2], "Rent at 700,000 RUB")
	assert.Contains(t, advice[2], "Internet (50,000 RUB) due in 2 days")
	assert.True(t, strings.HasPrefix(advice[3], "Food is the largest expense category"))
	assert.Contains(t, advice[3], "110,000 RUB")
	assert.NotContains(t, advice, "Save 1,000 RUB")
}

// TestBalanceAdvice проверяет совет об изменении баланса выше порога существенности.
func TestBalanceAdvice(t *testing.T) {
	input := InsightInput{
		PublicForecast: []float64{1000000, 1100000, 1250000},
		CurrentBalance: 1000000,
		Now:            testNow,
		Currency:       "RUB",
	}

	text := balanceAdvice(input)
	assert.Contains(t, text, "grow by 250,000 RUB (25.0%)")
	assert.Contains(t, text, "2026-10-21")

	input.PublicForecast = []float64{1000000, 1005000}
	assert.Empty(t, balanceAdvice(input))
}

// TestTrendAdvice проверяет порог существенности тренда расходов.
func TestTrendAdvice(t *testing.T) {
	assert.Empty(t, trendAdvice(InsightInput{Stats: Stats{ExpenseTrendPerDay: 30}, Currency: "RUB"}))

	text := trendAdvice(InsightInput{Stats: Stats{ExpenseTrendPerDay: -50}, Currency: "RUB"})
	assert.Contains(t, text, "falling by about 1,500 RUB per month")
	assert.Contains(t, text, "4,500 RUB over the next 3 months")
}

// TestDueIn проверяет формулировку срока оплаты.
func TestDueIn(t *testing.T) {
	assert.Equal(t, "due in 1 day", dueIn(1))
	assert.Equal(t, "due in 5 days", dueIn(5))
	assert.Equal(t, "due today (0 days left)", dueIn(0))
	assert.Equal(t, "overdue by 3 days", dueIn(-3))
}

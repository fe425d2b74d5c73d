package forecast

import (
	"time"

	"github.com/shopspring/decimal"

	"example.com/balance-forecast/internal/models"
)

var testNow = time.Date(2026, time.October, 18, 12, 0, 0, 0, time.UTC)

func income(amount int64, date time.Time) models.Transaction {
	return models.Transaction{Type: models.TransactionTypeIncome, Amount: decimal.NewFromInt(amount), Date: date}
}

func expense(amount int64, date time.Time, category string) models.Transaction {
	tx := models.Transaction{Type: models.TransactionTypeExpense, Amount: decimal.NewFromInt(amount), Date: date}
	if category != "" {
		tx.Category = &category
	}
	return tx
}

func bill(name string, amount int64, due time.Time) models.Bill {
	return models.Bill{Name: name, Amount: decimal.NewFromInt(amount), DueDate: due}
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 9, 30, 0, 0, time.UTC)
}

func repeat(value float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = value
	}
	return out
}

package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TransactionType string

type Period string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"

	PeriodWeekly  Period = "weekly"
	PeriodMonthly Period = "monthly"
)

type Transaction struct {
	ID       uuid.UUID       `json:"id"`
	UserID   uuid.UUID       `json:"user_id"`
	Type     TransactionType `json:"type"`
	Amount   decimal.Decimal `json:"amount"`
	Date     time.Time       `json:"date"`
	Category *string         `json:"category,omitempty"`
}

type Bill struct {
	ID        uuid.UUID       `json:"id"`
	UserID    uuid.UUID       `json:"user_id"`
	Name      string          `json:"name"`
	Amount    decimal.Decimal `json:"amount"`
	DueDate   time.Time       `json:"due_date"`
	Completed bool            `json:"completed"`
}

// Days возвращает длину горизонта прогноза в днях; ok=false для неизвестного периода.
func (p Period) Days() (int, bool) {
	switch p {
	case PeriodWeekly:
		return 7, true
	case PeriodMonthly:
		return 30, true
	default:
		return 0, false
	}
}

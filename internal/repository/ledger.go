package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"example.com/balance-forecast/internal/models"
)

type LedgerRepository struct {
	db *pgxpool.Pool
}

// NewLedgerRepository создает репозиторий операций, баланса и счетов.
func NewLedgerRepository(db *pgxpool.Pool) *LedgerRepository {
	return &LedgerRepository{db: db}
}

// ListTransactions возвращает операции пользователя начиная с даты since.
func (r *LedgerRepository) ListTransactions(ctx context.Context, userID uuid.UUID, since time.Time) ([]models.Transaction, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, type, amount::text, occurred_at, category
		 FROM transactions
		 WHERE user_id = $1 AND occurred_at >= $2
		 ORDER BY occurred_at, id`,
		userID, since,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	transactions := make([]models.Transaction, 0)
	for rows.Next() {
		var tx models.Transaction
		var txType, amount string
		if err := rows.Scan(&tx.ID, &tx.UserID, &txType, &amount, &tx.Date, &tx.Category); err != nil {
			return nil, err
		}

		tx.Type = models.TransactionType(txType)
		if tx.Type != models.TransactionTypeIncome && tx.Type != models.TransactionTypeExpense {
			return nil, fmt.Errorf("%w: transaction %s has type %q", ErrMalformed, tx.ID, txType)
		}

		tx.Amount, err = parseAmount(amount)
		if err != nil {
			return nil, fmt.Errorf("transaction %s: %w", tx.ID, err)
		}
		transactions = append(transactions, tx)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return transactions, nil
}

// GetCurrentBalance возвращает текущий баланс счета пользователя.
func (r *LedgerRepository) GetCurrentBalance(ctx context.Context, userID uuid.UUID) (decimal.Decimal, error) {
	var balance string
	err := r.db.QueryRow(ctx,
		`SELECT balance::text FROM accounts WHERE user_id = $1`,
		userID,
	).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, ErrNotFound
		}
		return decimal.Zero, err
	}

	value, err := decimal.NewFromString(balance)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: balance %q", ErrMalformed, balance)
	}

	return value, nil
}

// ListUpcomingBills возвращает неоплаченные счета пользователя по возрастанию срока.
func (r *LedgerRepository) ListUpcomingBills(ctx context.Context, userID uuid.UUID) ([]models.Bill, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, name, amount::text, due_date, completed
		 FROM bills
		 WHERE user_id = $1 AND completed = FALSE
		 ORDER BY due_date, name`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bills := make([]models.Bill, 0)
	for rows.Next() {
		var bill models.Bill
		var amount string
		if err := rows.Scan(&bill.ID, &bill.UserID, &bill.Name, &amount, &bill.DueDate, &bill.Completed); err != nil {
			return nil, err
		}

		bill.Amount, err = parseAmount(amount)
		if err != nil {
			return nil, fmt.Errorf("bill %s: %w", bill.ID, err)
		}
		bill.DueDate = calendarDate(bill.DueDate)
		bills = append(bills, bill)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return bills, nil
}

// calendarDate pins a DATE column value to UTC midnight of the same calendar day.
func calendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// parseAmount parses a NUMERIC rendered as text; negative amounts are malformed.
func parseAmount(value string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: amount %q", ErrMalformed, value)
	}
	if amount.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: negative amount %s", ErrMalformed, value)
	}

	return amount, nil
}

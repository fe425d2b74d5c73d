package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"example.com/balance-forecast/internal/oracle"
)

type OracleLogRepository struct {
	db *pgxpool.Pool
}

// NewOracleLogRepository создает репозиторий журнала запросов к прогнозному оракулу.
func NewOracleLogRepository(db *pgxpool.Pool) *OracleLogRepository {
	return &OracleLogRepository{db: db}
}

// Record сохраняет обмен с оракулом: промпт, входные данные и ответ модели.
func (r *OracleLogRepository) Record(ctx context.Context, exchange oracle.Exchange) error {
	var errorMessage *string
	if exchange.Err != nil {
		message := exchange.Err.Error()
		errorMessage = &message
	}

	_, err := r.db.Exec(ctx,
		`INSERT INTO oracle_requests
		 (user_id, provider, model, prompt, request_payload, response_payload, raw_response, success, error_message)
		 VALUES ($1, $2, $3, $4, NULLIF($5, '')::jsonb, NULLIF($6, '')::jsonb, $7, $8, $9)`,
		exchange.UserID,
		exchange.Provider,
		exchange.Model,
		exchange.Prompt,
		string(exchange.RequestPayload),
		string(exchange.ResponsePayload),
		string(exchange.RawResponse),
		exchange.Err == nil,
		errorMessage,
	)
	return err
}

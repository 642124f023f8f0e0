package dao

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/swasthya/migrant-access-api/internal/database"
	"github.com/swasthya/migrant-access-api/internal/models"
)

// OneTimeCodeDAO handles database operations for one-time codes
type OneTimeCodeDAO struct {
	db *database.DB
}

// NewOneTimeCodeDAO creates a new OneTimeCodeDAO instance
func NewOneTimeCodeDAO(db *database.DB) *OneTimeCodeDAO {
	return &OneTimeCodeDAO{db: db}
}

// CreateWithTx inserts a new one-time code using a transaction. The code is
// created atomically with its access request.
func (dao *OneTimeCodeDAO) CreateWithTx(ctx context.Context, tx *database.Transaction, code *models.OneTimeCode) error {
	query := `
		INSERT INTO ONE_TIME_CODE (
			REQUEST_ID, CODE_VALUE, ATTEMPTS, MAX_ATTEMPTS, CONSUMED, CREATED_TIME
		) VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := tx.ExecContext(
		ctx,
		query,
		code.RequestID,
		code.CodeValue,
		code.Attempts,
		code.MaxAttempts,
		code.Consumed,
		code.CreatedTime,
	)
	if err != nil {
		return fmt.Errorf("failed to create one-time code: %w", err)
	}

	return nil
}

// GetByRequestID retrieves the code bound to an access request. Returns nil
// when not found.
func (dao *OneTimeCodeDAO) GetByRequestID(ctx context.Context, requestID string) (*models.OneTimeCode, error) {
	query := `
		SELECT REQUEST_ID, CODE_VALUE, ATTEMPTS, MAX_ATTEMPTS, CONSUMED, CREATED_TIME
		FROM ONE_TIME_CODE
		WHERE REQUEST_ID = ?
	`

	var code models.OneTimeCode
	err := dao.db.GetContext(ctx, &code, query, requestID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get one-time code: %w", err)
	}

	return &code, nil
}

// IncrementAttempts bumps the attempt counter on an unconsumed code and
// returns the new counter value. The increment happens in the database so
// concurrent mismatches cannot lose updates.
func (dao *OneTimeCodeDAO) IncrementAttempts(ctx context.Context, requestID string) (int, error) {
	updateQuery := `
		UPDATE ONE_TIME_CODE
		SET ATTEMPTS = ATTEMPTS + 1
		WHERE REQUEST_ID = ? AND CONSUMED = FALSE
	`

	if _, err := dao.db.ExecContext(ctx, updateQuery, requestID); err != nil {
		return 0, fmt.Errorf("failed to increment attempts: %w", err)
	}

	var attempts int
	selectQuery := `SELECT ATTEMPTS FROM ONE_TIME_CODE WHERE REQUEST_ID = ?`
	if err := dao.db.GetContext(ctx, &attempts, selectQuery, requestID); err != nil {
		return 0, fmt.Errorf("failed to read attempts: %w", err)
	}

	return attempts, nil
}

// ConsumeWithTx marks a code as consumed (single-use). Returns false when
// the code was already consumed, so a racing verify cannot reuse it.
func (dao *OneTimeCodeDAO) ConsumeWithTx(ctx context.Context, tx *database.Transaction, requestID string) (bool, error) {
	query := `
		UPDATE ONE_TIME_CODE
		SET CONSUMED = TRUE
		WHERE REQUEST_ID = ? AND CONSUMED = FALSE
	`

	result, err := tx.ExecContext(ctx, query, requestID)
	if err != nil {
		return false, fmt.Errorf("failed to consume one-time code: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}

	return rows > 0, nil
}

package dao

import (
	"context"
	"fmt"

	"github.com/swasthya/migrant-access-api/internal/database"
	"github.com/swasthya/migrant-access-api/internal/models"
)

// StatusAuditDAO handles database operations for access status audits
type StatusAuditDAO struct {
	db *database.DB
}

// NewStatusAuditDAO creates a new StatusAuditDAO instance
func NewStatusAuditDAO(db *database.DB) *StatusAuditDAO {
	return &StatusAuditDAO{db: db}
}

// CreateWithTx inserts a new status audit entry using a transaction
func (dao *StatusAuditDAO) CreateWithTx(ctx context.Context, tx *database.Transaction, audit *models.AccessStatusAudit) error {
	query := `
		INSERT INTO ACCESS_STATUS_AUDIT (
			AUDIT_ID, REQUEST_ID, CURRENT_STATUS, PREVIOUS_STATUS,
			ACTION_TIME, ACTION_BY, REASON
		) VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := tx.ExecContext(
		ctx,
		query,
		audit.AuditID,
		audit.RequestID,
		audit.CurrentStatus,
		audit.PreviousStatus,
		audit.ActionTime,
		audit.ActionBy,
		audit.Reason,
	)
	if err != nil {
		return fmt.Errorf("failed to create status audit: %w", err)
	}

	return nil
}

// Create inserts a new status audit entry outside a transaction
func (dao *StatusAuditDAO) Create(ctx context.Context, audit *models.AccessStatusAudit) error {
	query := `
		INSERT INTO ACCESS_STATUS_AUDIT (
			AUDIT_ID, REQUEST_ID, CURRENT_STATUS, PREVIOUS_STATUS,
			ACTION_TIME, ACTION_BY, REASON
		) VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := dao.db.ExecContext(
		ctx,
		query,
		audit.AuditID,
		audit.RequestID,
		audit.CurrentStatus,
		audit.PreviousStatus,
		audit.ActionTime,
		audit.ActionBy,
		audit.Reason,
	)
	if err != nil {
		return fmt.Errorf("failed to create status audit: %w", err)
	}

	return nil
}

// GetByRequestID retrieves the audit history for a request, newest first
func (dao *StatusAuditDAO) GetByRequestID(ctx context.Context, requestID string) ([]models.AccessStatusAudit, error) {
	query := `
		SELECT AUDIT_ID, REQUEST_ID, CURRENT_STATUS, PREVIOUS_STATUS,
		       ACTION_TIME, ACTION_BY, REASON
		FROM ACCESS_STATUS_AUDIT
		WHERE REQUEST_ID = ?
		ORDER BY ACTION_TIME DESC
	`

	audits := make([]models.AccessStatusAudit, 0)
	if err := dao.db.SelectContext(ctx, &audits, query, requestID); err != nil {
		return nil, fmt.Errorf("failed to get status audits: %w", err)
	}

	return audits, nil
}

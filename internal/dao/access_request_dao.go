package dao

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/swasthya/migrant-access-api/internal/database"
	"github.com/swasthya/migrant-access-api/internal/models"
)

// AccessRequestDAO handles database operations for access requests
type AccessRequestDAO struct {
	db *database.DB
}

// NewAccessRequestDAO creates a new AccessRequestDAO instance
func NewAccessRequestDAO(db *database.DB) *AccessRequestDAO {
	return &AccessRequestDAO{db: db}
}

// CreateWithTx inserts a new access request using a transaction, guarded by
// the single-pending invariant: the insert only happens when no PENDING
// request exists for the (subject, requester) pair. Returns false when the
// guard rejected the insert.
func (dao *AccessRequestDAO) CreateWithTx(ctx context.Context, tx *database.Transaction, request *models.AccessRequest) (bool, error) {
	query := `
		INSERT INTO ACCESS_REQUEST (
			REQUEST_ID, SUBJECT_ID, REQUESTER_ID, CURRENT_STATUS,
			CREATED_TIME, EXPIRY_TIME
		)
		SELECT ?, ?, ?, ?, ?, ?
		FROM DUAL
		WHERE NOT EXISTS (
			SELECT 1 FROM ACCESS_REQUEST
			WHERE SUBJECT_ID = ? AND REQUESTER_ID = ? AND CURRENT_STATUS = ?
		)
	`

	result, err := tx.ExecContext(
		ctx,
		query,
		request.RequestID,
		request.SubjectID,
		request.RequesterID,
		request.CurrentStatus,
		request.CreatedTime,
		request.ExpiryTime,
		request.SubjectID,
		request.RequesterID,
		models.RequestStatusPending,
	)
	if err != nil {
		return false, fmt.Errorf("failed to create access request: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}

	return rows > 0, nil
}

// GetByID retrieves an access request by ID. Returns nil when not found.
func (dao *AccessRequestDAO) GetByID(ctx context.Context, requestID string) (*models.AccessRequest, error) {
	query := `
		SELECT REQUEST_ID, SUBJECT_ID, REQUESTER_ID, CURRENT_STATUS,
		       CREATED_TIME, EXPIRY_TIME
		FROM ACCESS_REQUEST
		WHERE REQUEST_ID = ?
	`

	var request models.AccessRequest
	err := dao.db.GetContext(ctx, &request, query, requestID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get access request: %w", err)
	}

	return &request, nil
}

// GetPendingByPair retrieves the PENDING request for a (subject, requester)
// pair. Returns nil when none exists.
func (dao *AccessRequestDAO) GetPendingByPair(ctx context.Context, subjectID, requesterID string) (*models.AccessRequest, error) {
	query := `
		SELECT REQUEST_ID, SUBJECT_ID, REQUESTER_ID, CURRENT_STATUS,
		       CREATED_TIME, EXPIRY_TIME
		FROM ACCESS_REQUEST
		WHERE SUBJECT_ID = ? AND REQUESTER_ID = ? AND CURRENT_STATUS = ?
	`

	var request models.AccessRequest
	err := dao.db.GetContext(ctx, &request, query, subjectID, requesterID, models.RequestStatusPending)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get pending access request: %w", err)
	}

	return &request, nil
}

// UpdateStatusIfCurrent performs a compare-and-swap status transition:
// the row is updated only when its status still equals fromStatus. Returns
// false when the row was not in fromStatus (lost race or already moved).
func (dao *AccessRequestDAO) UpdateStatusIfCurrent(ctx context.Context, requestID, fromStatus, toStatus string) (bool, error) {
	query := `
		UPDATE ACCESS_REQUEST
		SET CURRENT_STATUS = ?
		WHERE REQUEST_ID = ? AND CURRENT_STATUS = ?
	`

	result, err := dao.db.ExecContext(ctx, query, toStatus, requestID, fromStatus)
	if err != nil {
		return false, fmt.Errorf("failed to update access request status: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}

	return rows > 0, nil
}

// UpdateStatusIfCurrentWithTx is the transactional variant of UpdateStatusIfCurrent.
func (dao *AccessRequestDAO) UpdateStatusIfCurrentWithTx(ctx context.Context, tx *database.Transaction, requestID, fromStatus, toStatus string) (bool, error) {
	query := `
		UPDATE ACCESS_REQUEST
		SET CURRENT_STATUS = ?
		WHERE REQUEST_ID = ? AND CURRENT_STATUS = ?
	`

	result, err := tx.ExecContext(ctx, query, toStatus, requestID, fromStatus)
	if err != nil {
		return false, fmt.Errorf("failed to update access request status: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}

	return rows > 0, nil
}

// ExpireStaleWithTx transitions every PENDING request past its expiry to
// EXPIRED and consumes the bound one-time codes. Returns the IDs of the
// requests that were expired.
func (dao *AccessRequestDAO) ExpireStaleWithTx(ctx context.Context, tx *database.Transaction, nowMillis int64) ([]string, error) {
	selectQuery := `
		SELECT REQUEST_ID
		FROM ACCESS_REQUEST
		WHERE CURRENT_STATUS = ? AND EXPIRY_TIME <= ?
	`

	var requestIDs []string
	if err := tx.SelectContext(ctx, &requestIDs, selectQuery, models.RequestStatusPending, nowMillis); err != nil {
		return nil, fmt.Errorf("failed to list stale access requests: %w", err)
	}

	if len(requestIDs) == 0 {
		return nil, nil
	}

	updateQuery := `
		UPDATE ACCESS_REQUEST
		SET CURRENT_STATUS = ?
		WHERE CURRENT_STATUS = ? AND EXPIRY_TIME <= ?
	`

	if _, err := tx.ExecContext(ctx, updateQuery, models.RequestStatusExpired, models.RequestStatusPending, nowMillis); err != nil {
		return nil, fmt.Errorf("failed to expire stale access requests: %w", err)
	}

	consumeQuery := `
		UPDATE ONE_TIME_CODE
		SET CONSUMED = TRUE
		WHERE CONSUMED = FALSE AND REQUEST_ID IN (
			SELECT REQUEST_ID FROM ACCESS_REQUEST WHERE CURRENT_STATUS = ?
		)
	`

	if _, err := tx.ExecContext(ctx, consumeQuery, models.RequestStatusExpired); err != nil {
		return nil, fmt.Errorf("failed to invalidate codes for expired requests: %w", err)
	}

	return requestIDs, nil
}

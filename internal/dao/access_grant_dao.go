package dao

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/swasthya/migrant-access-api/internal/database"
	"github.com/swasthya/migrant-access-api/internal/models"
)

// AccessGrantDAO handles database operations for access grants
type AccessGrantDAO struct {
	db *database.DB
}

// NewAccessGrantDAO creates a new AccessGrantDAO instance
func NewAccessGrantDAO(db *database.DB) *AccessGrantDAO {
	return &AccessGrantDAO{db: db}
}

// CreateWithTx inserts a new access grant using a transaction. Grants are
// immutable after this insert.
func (dao *AccessGrantDAO) CreateWithTx(ctx context.Context, tx *database.Transaction, grant *models.AccessGrant) error {
	query := `
		INSERT INTO ACCESS_GRANT (
			GRANT_ID, REQUEST_ID, SUBJECT_ID, REQUESTER_ID, SCOPE,
			ISSUED_TIME, EXPIRY_TIME
		) VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := tx.ExecContext(
		ctx,
		query,
		grant.GrantID,
		grant.RequestID,
		grant.SubjectID,
		grant.RequesterID,
		grant.Scope,
		grant.IssuedTime,
		grant.ExpiryTime,
	)
	if err != nil {
		return fmt.Errorf("failed to create access grant: %w", err)
	}

	return nil
}

// GetByID retrieves an access grant by ID. Returns nil when not found.
func (dao *AccessGrantDAO) GetByID(ctx context.Context, grantID string) (*models.AccessGrant, error) {
	query := `
		SELECT GRANT_ID, REQUEST_ID, SUBJECT_ID, REQUESTER_ID, SCOPE,
		       ISSUED_TIME, EXPIRY_TIME
		FROM ACCESS_GRANT
		WHERE GRANT_ID = ?
	`

	var grant models.AccessGrant
	err := dao.db.GetContext(ctx, &grant, query, grantID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get access grant: %w", err)
	}

	return &grant, nil
}

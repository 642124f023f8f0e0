package dao

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/swasthya/migrant-access-api/internal/database"
	"github.com/swasthya/migrant-access-api/internal/models"
)

// MigrantDAO handles database reads against the subject directory
type MigrantDAO struct {
	db *database.DB
}

// NewMigrantDAO creates a new MigrantDAO instance
func NewMigrantDAO(db *database.DB) *MigrantDAO {
	return &MigrantDAO{db: db}
}

// GetByID retrieves a migrant profile by ID. Returns nil when not found.
func (dao *MigrantDAO) GetByID(ctx context.Context, migrantID string) (*models.Migrant, error) {
	query := `
		SELECT MIGRANT_ID, NAME, PHONE, DOB, BLOOD_GROUP, ALLERGIES, EMERGENCY_CONTACT
		FROM MIGRANT
		WHERE MIGRANT_ID = ?
	`

	var migrant models.Migrant
	err := dao.db.GetContext(ctx, &migrant, query, migrantID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get migrant: %w", err)
	}

	return &migrant, nil
}

// Exists reports whether a migrant with the given ID is registered
func (dao *MigrantDAO) Exists(ctx context.Context, migrantID string) (bool, error) {
	query := `SELECT COUNT(*) FROM MIGRANT WHERE MIGRANT_ID = ?`

	var count int
	if err := dao.db.GetContext(ctx, &count, query, migrantID); err != nil {
		return false, fmt.Errorf("failed to check migrant existence: %w", err)
	}

	return count > 0, nil
}

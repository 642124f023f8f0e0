package dao

import (
	"context"
	"fmt"

	"github.com/swasthya/migrant-access-api/internal/database"
	"github.com/swasthya/migrant-access-api/internal/models"
)

// HealthRecordDAO handles database operations for health records
type HealthRecordDAO struct {
	db *database.DB
}

// NewHealthRecordDAO creates a new HealthRecordDAO instance
func NewHealthRecordDAO(db *database.DB) *HealthRecordDAO {
	return &HealthRecordDAO{db: db}
}

// Create inserts a new health record
func (dao *HealthRecordDAO) Create(ctx context.Context, record *models.HealthRecord) error {
	query := `
		INSERT INTO HEALTH_RECORD (
			RECORD_ID, SUBJECT_ID, AUTHOR_ID, TITLE, CONTENT, CREATED_TIME
		) VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := dao.db.ExecContext(
		ctx,
		query,
		record.RecordID,
		record.SubjectID,
		record.AuthorID,
		record.Title,
		record.Content,
		record.CreatedTime,
	)
	if err != nil {
		return fmt.Errorf("failed to create health record: %w", err)
	}

	return nil
}

// ListBySubject retrieves all health records for a subject, newest first
func (dao *HealthRecordDAO) ListBySubject(ctx context.Context, subjectID string) ([]models.HealthRecord, error) {
	query := `
		SELECT RECORD_ID, SUBJECT_ID, AUTHOR_ID, TITLE, CONTENT, CREATED_TIME
		FROM HEALTH_RECORD
		WHERE SUBJECT_ID = ?
		ORDER BY CREATED_TIME DESC
	`

	records := make([]models.HealthRecord, 0)
	if err := dao.db.SelectContext(ctx, &records, query, subjectID); err != nil {
		return nil, fmt.Errorf("failed to list health records: %w", err)
	}

	return records, nil
}

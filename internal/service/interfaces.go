package service

import (
	"context"

	"github.com/swasthya/migrant-access-api/internal/database"
	"github.com/swasthya/migrant-access-api/internal/models"
)

// AccessRequestStore defines the data operations the services need for
// access requests. Satisfied by dao.AccessRequestDAO.
type AccessRequestStore interface {
	CreateWithTx(ctx context.Context, tx *database.Transaction, request *models.AccessRequest) (bool, error)
	GetByID(ctx context.Context, requestID string) (*models.AccessRequest, error)
	GetPendingByPair(ctx context.Context, subjectID, requesterID string) (*models.AccessRequest, error)
	UpdateStatusIfCurrent(ctx context.Context, requestID, fromStatus, toStatus string) (bool, error)
	UpdateStatusIfCurrentWithTx(ctx context.Context, tx *database.Transaction, requestID, fromStatus, toStatus string) (bool, error)
	ExpireStaleWithTx(ctx context.Context, tx *database.Transaction, nowMillis int64) ([]string, error)
}

// OneTimeCodeStore defines the data operations for one-time codes.
// Satisfied by dao.OneTimeCodeDAO.
type OneTimeCodeStore interface {
	CreateWithTx(ctx context.Context, tx *database.Transaction, code *models.OneTimeCode) error
	GetByRequestID(ctx context.Context, requestID string) (*models.OneTimeCode, error)
	IncrementAttempts(ctx context.Context, requestID string) (int, error)
	ConsumeWithTx(ctx context.Context, tx *database.Transaction, requestID string) (bool, error)
}

// AccessGrantStore defines the data operations for access grants.
// Satisfied by dao.AccessGrantDAO.
type AccessGrantStore interface {
	CreateWithTx(ctx context.Context, tx *database.Transaction, grant *models.AccessGrant) error
	GetByID(ctx context.Context, grantID string) (*models.AccessGrant, error)
}

// HealthRecordStore defines the data operations for health records.
// Satisfied by dao.HealthRecordDAO.
type HealthRecordStore interface {
	Create(ctx context.Context, record *models.HealthRecord) error
	ListBySubject(ctx context.Context, subjectID string) ([]models.HealthRecord, error)
}

// MigrantStore defines the reads against the subject directory.
// Satisfied by dao.MigrantDAO.
type MigrantStore interface {
	GetByID(ctx context.Context, migrantID string) (*models.Migrant, error)
	Exists(ctx context.Context, migrantID string) (bool, error)
}

// StatusAuditStore defines the data operations for status audits.
// Satisfied by dao.StatusAuditDAO.
type StatusAuditStore interface {
	CreateWithTx(ctx context.Context, tx *database.Transaction, audit *models.AccessStatusAudit) error
	Create(ctx context.Context, audit *models.AccessStatusAudit) error
	GetByRequestID(ctx context.Context, requestID string) ([]models.AccessStatusAudit, error)
}

// TxRunner runs a function inside a database transaction.
// Satisfied by database.DB.
type TxRunner interface {
	WithTransaction(ctx context.Context, fn func(*database.Transaction) error) error
}

// CodeDeliverer pushes one-time codes over the out-of-band channel.
// Satisfied by client.DeliveryClient.
type CodeDeliverer interface {
	Deliver(ctx context.Context, destination, code, requestID string) error
}

// Summarizer generates a free-form summary of record text.
// Satisfied by client.SummarizerClient.
type Summarizer interface {
	IsEnabled() bool
	Summarize(ctx context.Context, recordText string) (string, error)
}

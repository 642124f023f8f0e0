package service

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/swasthya/migrant-access-api/internal/apperrors"
	"github.com/swasthya/migrant-access-api/internal/models"
	"github.com/swasthya/migrant-access-api/pkg/utils"
)

// RecordService is the grant-gated gateway in front of migrant data. No
// profile or record operation goes through without an active grant whose
// subject and capability set cover the call.
type RecordService struct {
	grantDAO   AccessGrantStore
	requestDAO AccessRequestStore
	migrantDAO MigrantStore
	recordDAO  HealthRecordStore
	logger     *logrus.Logger
}

// NewRecordService creates a new RecordService
func NewRecordService(
	grantDAO AccessGrantStore,
	requestDAO AccessRequestStore,
	migrantDAO MigrantStore,
	recordDAO HealthRecordStore,
	logger *logrus.Logger,
) *RecordService {
	return &RecordService{
		grantDAO:   grantDAO,
		requestDAO: requestDAO,
		migrantDAO: migrantDAO,
		recordDAO:  recordDAO,
		logger:     logger,
	}
}

// validateGrant loads the grant and checks, in order: existence, expiry,
// the originating request still being VERIFIED, the subject binding, and
// the required capability. The subject check runs before the capability
// check so a grant for the wrong migrant always reads as a scope violation.
func (s *RecordService) validateGrant(ctx context.Context, grantID, subjectID, capability string) (*models.AccessGrant, *apperrors.ServiceError) {
	if err := utils.ValidateGrantID(grantID); err != nil {
		return nil, apperrors.New(apperrors.ValidationError, err.Error())
	}
	if err := utils.ValidateSubjectID(subjectID); err != nil {
		return nil, apperrors.New(apperrors.ValidationError, err.Error())
	}

	grant, err := s.grantDAO.GetByID(ctx, grantID)
	if err != nil {
		s.logger.WithError(err).Error("Failed to get access grant")
		return nil, apperrors.New(apperrors.DatabaseError, "failed to get access grant")
	}
	if grant == nil {
		return nil, apperrors.New(apperrors.NotFoundError, "access grant not found: "+grantID)
	}

	if grant.IsExpired(utils.GetCurrentTimeMillis()) {
		return nil, apperrors.New(apperrors.GrantExpiredError, "access grant has expired")
	}

	request, err := s.requestDAO.GetByID(ctx, grant.RequestID)
	if err != nil {
		s.logger.WithError(err).Error("Failed to get originating access request")
		return nil, apperrors.New(apperrors.DatabaseError, "failed to get originating access request")
	}
	if request == nil || request.CurrentStatus != models.RequestStatusVerified {
		// The originating request was revoked out of band.
		return nil, apperrors.New(apperrors.GrantExpiredError, "access grant is no longer active")
	}

	if grant.SubjectID != subjectID {
		s.logger.WithFields(logrus.Fields{
			"grant_id":   grantID,
			"subject_id": subjectID,
		}).Warn("Grant used against a different subject")
		return nil, apperrors.New(apperrors.ScopeViolationError,
			"access grant is scoped to a different subject")
	}

	if !grant.HasScope(capability) {
		return nil, apperrors.New(apperrors.GrantInsufficientScopeError,
			"access grant does not carry capability "+capability)
	}

	return grant, nil
}

// ReadProfile returns the migrant's profile under a ReadProfile grant.
func (s *RecordService) ReadProfile(ctx context.Context, grantID, subjectID string) (*models.Migrant, *apperrors.ServiceError) {
	if _, svcErr := s.validateGrant(ctx, grantID, subjectID, models.ScopeReadProfile); svcErr != nil {
		return nil, svcErr
	}

	migrant, err := s.migrantDAO.GetByID(ctx, subjectID)
	if err != nil {
		s.logger.WithError(err).Error("Failed to get migrant profile")
		return nil, apperrors.New(apperrors.DatabaseError, "failed to get migrant profile")
	}
	if migrant == nil {
		return nil, apperrors.New(apperrors.NotFoundError, "migrant not found: "+subjectID)
	}
	return migrant, nil
}

// ReadRecords returns the migrant's health records, newest first, under a
// ReadRecords grant. An empty history is a valid result, not an error.
func (s *RecordService) ReadRecords(ctx context.Context, grantID, subjectID string) ([]models.HealthRecord, *apperrors.ServiceError) {
	if _, svcErr := s.validateGrant(ctx, grantID, subjectID, models.ScopeReadRecords); svcErr != nil {
		return nil, svcErr
	}

	records, err := s.recordDAO.ListBySubject(ctx, subjectID)
	if err != nil {
		s.logger.WithError(err).Error("Failed to list health records")
		return nil, apperrors.New(apperrors.DatabaseError, "failed to list health records")
	}
	return records, nil
}

// CreateRecord appends a health record for the migrant under a CreateRecord
// grant. The record is attributed to the grant's requester.
func (s *RecordService) CreateRecord(ctx context.Context, grantID, subjectID, title, content string) (*models.HealthRecord, *apperrors.ServiceError) {
	grant, svcErr := s.validateGrant(ctx, grantID, subjectID, models.ScopeCreateRecord)
	if svcErr != nil {
		return nil, svcErr
	}

	title = strings.TrimSpace(title)
	content = strings.TrimSpace(content)
	if title == "" {
		return nil, apperrors.New(apperrors.ValidationError, "record title must not be empty")
	}
	if content == "" {
		return nil, apperrors.New(apperrors.ValidationError, "record content must not be empty")
	}

	record := &models.HealthRecord{
		RecordID:    utils.GenerateRecordID(),
		SubjectID:   subjectID,
		AuthorID:    grant.RequesterID,
		Title:       title,
		Content:     content,
		CreatedTime: utils.GetCurrentTimeMillis(),
	}
	if err := s.recordDAO.Create(ctx, record); err != nil {
		s.logger.WithError(err).Error("Failed to create health record")
		return nil, apperrors.New(apperrors.DatabaseError, "failed to create health record")
	}

	s.logger.WithFields(logrus.Fields{
		"record_id":  record.RecordID,
		"subject_id": subjectID,
		"author_id":  record.AuthorID,
	}).Info("Health record created")

	return record, nil
}

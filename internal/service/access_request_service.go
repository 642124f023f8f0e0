package service

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/swasthya/migrant-access-api/internal/apperrors"
	"github.com/swasthya/migrant-access-api/internal/config"
	"github.com/swasthya/migrant-access-api/internal/database"
	"github.com/swasthya/migrant-access-api/internal/models"
	"github.com/swasthya/migrant-access-api/pkg/utils"
)

// errAbortTx rolls back a transaction whose outcome is already captured in
// a ServiceError, so the caller does not log it as a database failure.
var errAbortTx = errors.New("transaction aborted")

// AccessRequestService handles the opening move of the access protocol:
// a practitioner asks for access to a migrant's data, a one-time code is
// generated server side and pushed to the migrant over the out-of-band
// channel. The code is never returned to the requester.
type AccessRequestService struct {
	db         TxRunner
	requestDAO AccessRequestStore
	codeDAO    OneTimeCodeStore
	auditDAO   StatusAuditStore
	migrantDAO MigrantStore
	delivery   CodeDeliverer
	accessCfg  *config.AccessConfig
	logger     *logrus.Logger
}

// NewAccessRequestService creates a new AccessRequestService
func NewAccessRequestService(
	db TxRunner,
	requestDAO AccessRequestStore,
	codeDAO OneTimeCodeStore,
	auditDAO StatusAuditStore,
	migrantDAO MigrantStore,
	delivery CodeDeliverer,
	accessCfg *config.AccessConfig,
	logger *logrus.Logger,
) *AccessRequestService {
	return &AccessRequestService{
		db:         db,
		requestDAO: requestDAO,
		codeDAO:    codeDAO,
		auditDAO:   auditDAO,
		migrantDAO: migrantDAO,
		delivery:   delivery,
		accessCfg:  accessCfg,
		logger:     logger,
	}
}

// CreateRequest opens a new access request for the (subject, requester)
// pair. At most one PENDING request may exist per pair at a time; stale
// PENDING requests are expired first, so a requester whose previous code
// timed out can simply ask again.
func (s *AccessRequestService) CreateRequest(ctx context.Context, subjectID, requesterID string) (*models.AccessRequest, *apperrors.ServiceError) {
	if err := utils.ValidateSubjectID(subjectID); err != nil {
		return nil, apperrors.New(apperrors.ValidationError, err.Error())
	}
	if err := utils.ValidateRequesterID(requesterID); err != nil {
		return nil, apperrors.New(apperrors.ValidationError, err.Error())
	}

	migrant, err := s.migrantDAO.GetByID(ctx, subjectID)
	if err != nil {
		s.logger.WithError(err).Error("Failed to look up migrant")
		return nil, apperrors.New(apperrors.DatabaseError, "failed to look up subject")
	}
	if migrant == nil {
		return nil, apperrors.New(apperrors.NotFoundError, "migrant not found: "+subjectID)
	}

	code, err := generateNumericCode(s.accessCfg.OTPLength)
	if err != nil {
		s.logger.WithError(err).Error("Failed to generate one-time code")
		return nil, apperrors.New(apperrors.InternalServerError, "failed to generate one-time code")
	}

	now := utils.GetCurrentTimeMillis()
	request := &models.AccessRequest{
		RequestID:     utils.GenerateRequestID(),
		SubjectID:     subjectID,
		RequesterID:   requesterID,
		CurrentStatus: models.RequestStatusPending,
		CreatedTime:   now,
		ExpiryTime:    now + s.accessCfg.RequestTTL.Milliseconds(),
	}

	var svcErr *apperrors.ServiceError
	txErr := s.db.WithTransaction(ctx, func(tx *database.Transaction) error {
		expired, err := s.requestDAO.ExpireStaleWithTx(ctx, tx, now)
		if err != nil {
			return err
		}
		for _, requestID := range expired {
			if err := s.auditExpiryWithTx(ctx, tx, requestID, now, "Request TTL elapsed"); err != nil {
				return err
			}
		}

		inserted, err := s.requestDAO.CreateWithTx(ctx, tx, request)
		if err != nil {
			return err
		}
		if !inserted {
			svcErr = apperrors.New(apperrors.ConflictError,
				"a pending access request already exists for this subject and requester")
			return errAbortTx
		}

		if err := s.codeDAO.CreateWithTx(ctx, tx, &models.OneTimeCode{
			RequestID:   request.RequestID,
			CodeValue:   code,
			Attempts:    0,
			MaxAttempts: s.accessCfg.OTPMaxAttempts,
			Consumed:    false,
			CreatedTime: now,
		}); err != nil {
			return err
		}

		actionBy := requesterID
		reason := "Access request created"
		return s.auditDAO.CreateWithTx(ctx, tx, &models.AccessStatusAudit{
			AuditID:       utils.GenerateAuditID(),
			RequestID:     request.RequestID,
			CurrentStatus: models.RequestStatusPending,
			ActionTime:    now,
			ActionBy:      &actionBy,
			Reason:        &reason,
		})
	})
	if txErr != nil {
		if svcErr != nil {
			return nil, svcErr
		}
		s.logger.WithError(txErr).Error("Failed to create access request")
		return nil, apperrors.New(apperrors.DatabaseError, "failed to create access request")
	}

	// Delivery is best effort. A push failure must not roll back the
	// request; the migrant can be reached again via a fresh request.
	s.deliverCode(ctx, migrant.Phone, code, request.RequestID)

	s.logger.WithFields(logrus.Fields{
		"request_id":   request.RequestID,
		"subject_id":   subjectID,
		"requester_id": requesterID,
	}).Info("Access request created")

	return request, nil
}

// GetRequest returns a single access request, applying lazy expiry so a
// stale PENDING row is reported (and persisted) as EXPIRED.
func (s *AccessRequestService) GetRequest(ctx context.Context, requestID string) (*models.AccessRequest, *apperrors.ServiceError) {
	if err := utils.ValidateRequestID(requestID); err != nil {
		return nil, apperrors.New(apperrors.ValidationError, err.Error())
	}

	request, err := s.requestDAO.GetByID(ctx, requestID)
	if err != nil {
		s.logger.WithError(err).Error("Failed to get access request")
		return nil, apperrors.New(apperrors.DatabaseError, "failed to get access request")
	}
	if request == nil {
		return nil, apperrors.New(apperrors.NotFoundError, "access request not found: "+requestID)
	}

	now := utils.GetCurrentTimeMillis()
	if request.CurrentStatus == models.RequestStatusPending && request.IsExpired(now) {
		if svcErr := s.expireRequest(ctx, request, now, "Request TTL elapsed"); svcErr != nil {
			return nil, svcErr
		}
		request.CurrentStatus = models.RequestStatusExpired
	}
	return request, nil
}

// ExpireStaleRequests sweeps all PENDING requests past their expiry time.
// Correctness does not depend on the sweep; expiry is also enforced lazily
// at every point of use.
func (s *AccessRequestService) ExpireStaleRequests(ctx context.Context) (int, *apperrors.ServiceError) {
	now := utils.GetCurrentTimeMillis()

	var count int
	txErr := s.db.WithTransaction(ctx, func(tx *database.Transaction) error {
		expired, err := s.requestDAO.ExpireStaleWithTx(ctx, tx, now)
		if err != nil {
			return err
		}
		count = len(expired)
		for _, requestID := range expired {
			if err := s.auditExpiryWithTx(ctx, tx, requestID, now, "Request TTL elapsed"); err != nil {
				return err
			}
		}
		return nil
	})
	if txErr != nil {
		s.logger.WithError(txErr).Error("Failed to expire stale access requests")
		return 0, apperrors.New(apperrors.DatabaseError, "failed to expire stale access requests")
	}

	if count > 0 {
		s.logger.WithField("count", count).Info("Expired stale access requests")
	}
	return count, nil
}

// expireRequest transitions a single request PENDING -> EXPIRED with an
// audit row. A lost race (another caller already moved the status) is fine;
// the caller only needs the terminal state.
func (s *AccessRequestService) expireRequest(ctx context.Context, request *models.AccessRequest, nowMillis int64, reason string) *apperrors.ServiceError {
	txErr := s.db.WithTransaction(ctx, func(tx *database.Transaction) error {
		changed, err := s.requestDAO.UpdateStatusIfCurrentWithTx(ctx, tx, request.RequestID,
			models.RequestStatusPending, models.RequestStatusExpired)
		if err != nil {
			return err
		}
		if !changed {
			return nil
		}
		if _, err := s.codeDAO.ConsumeWithTx(ctx, tx, request.RequestID); err != nil {
			return err
		}
		return s.auditExpiryWithTx(ctx, tx, request.RequestID, nowMillis, reason)
	})
	if txErr != nil {
		s.logger.WithError(txErr).Error("Failed to expire access request")
		return apperrors.New(apperrors.DatabaseError, "failed to expire access request")
	}
	return nil
}

func (s *AccessRequestService) auditExpiryWithTx(ctx context.Context, tx *database.Transaction, requestID string, nowMillis int64, reason string) error {
	previous := models.RequestStatusPending
	return s.auditDAO.CreateWithTx(ctx, tx, &models.AccessStatusAudit{
		AuditID:        utils.GenerateAuditID(),
		RequestID:      requestID,
		CurrentStatus:  models.RequestStatusExpired,
		PreviousStatus: &previous,
		ActionTime:     nowMillis,
		Reason:         &reason,
	})
}

func (s *AccessRequestService) deliverCode(ctx context.Context, phone, code, requestID string) {
	deliveryCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 15*time.Second)
	defer cancel()

	if err := s.delivery.Deliver(deliveryCtx, phone, code, requestID); err != nil {
		s.logger.WithError(err).WithField("request_id", requestID).
			Warn("Failed to deliver one-time code")
	}
}

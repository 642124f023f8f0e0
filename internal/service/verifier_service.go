package service

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/swasthya/migrant-access-api/internal/apperrors"
	"github.com/swasthya/migrant-access-api/internal/config"
	"github.com/swasthya/migrant-access-api/internal/database"
	"github.com/swasthya/migrant-access-api/internal/models"
	"github.com/swasthya/migrant-access-api/pkg/utils"
)

// VerifierService checks a submitted one-time code against its access
// request and, on a match, mints the time-boxed access grant. Verification
// for a single request is linearized behind a per-request lock so that
// concurrent submissions of the correct code produce exactly one grant.
type VerifierService struct {
	db         TxRunner
	requestDAO AccessRequestStore
	codeDAO    OneTimeCodeStore
	grantDAO   AccessGrantStore
	auditDAO   StatusAuditStore
	accessCfg  *config.AccessConfig
	logger     *logrus.Logger
	locks      *keyedMutex
}

// NewVerifierService creates a new VerifierService
func NewVerifierService(
	db TxRunner,
	requestDAO AccessRequestStore,
	codeDAO OneTimeCodeStore,
	grantDAO AccessGrantStore,
	auditDAO StatusAuditStore,
	accessCfg *config.AccessConfig,
	logger *logrus.Logger,
) *VerifierService {
	return &VerifierService{
		db:         db,
		requestDAO: requestDAO,
		codeDAO:    codeDAO,
		grantDAO:   grantDAO,
		auditDAO:   auditDAO,
		accessCfg:  accessCfg,
		logger:     logger,
		locks:      newKeyedMutex(),
	}
}

// Verify validates the submitted code for the given request. On success the
// request moves PENDING -> VERIFIED, the code is consumed, and a grant with
// the default capability set is minted, all in one transaction. Every
// failure path leaves the request in a state consistent with the attempt
// bound and the single-use code rule.
func (s *VerifierService) Verify(ctx context.Context, requestID, submittedCode string) (*models.AccessGrant, *apperrors.ServiceError) {
	if err := utils.ValidateRequestID(requestID); err != nil {
		return nil, apperrors.New(apperrors.ValidationError, err.Error())
	}
	if err := utils.ValidateOTPFormat(submittedCode, s.accessCfg.OTPLength); err != nil {
		return nil, apperrors.New(apperrors.ValidationError, err.Error())
	}

	s.locks.Lock(requestID)
	defer s.locks.Unlock(requestID)

	request, err := s.requestDAO.GetByID(ctx, requestID)
	if err != nil {
		s.logger.WithError(err).Error("Failed to get access request")
		return nil, apperrors.New(apperrors.DatabaseError, "failed to get access request")
	}
	if request == nil {
		return nil, apperrors.New(apperrors.NotFoundError, "access request not found: "+requestID)
	}

	switch request.CurrentStatus {
	case models.RequestStatusPending:
		// fall through to code checks
	case models.RequestStatusVerified:
		// The code was consumed by a prior successful verification.
		return nil, apperrors.New(apperrors.NotFoundError, "access request has already been verified")
	default:
		return nil, apperrors.New(apperrors.ExpiredError, "access request is no longer active")
	}

	now := utils.GetCurrentTimeMillis()
	if request.IsExpired(now) {
		if svcErr := s.expirePending(ctx, requestID, now, "Request TTL elapsed"); svcErr != nil {
			return nil, svcErr
		}
		return nil, apperrors.New(apperrors.ExpiredError, "access request has expired")
	}

	code, err := s.codeDAO.GetByRequestID(ctx, requestID)
	if err != nil {
		s.logger.WithError(err).Error("Failed to get one-time code")
		return nil, apperrors.New(apperrors.DatabaseError, "failed to get one-time code")
	}
	if code == nil || code.Consumed {
		return nil, apperrors.New(apperrors.NotFoundError, "no usable code exists for this request")
	}
	if code.AttemptsExhausted() {
		if svcErr := s.expirePending(ctx, requestID, now, "Verification attempts exhausted"); svcErr != nil {
			return nil, svcErr
		}
		return nil, apperrors.New(apperrors.AttemptsExhaustedError, "verification attempts exhausted")
	}

	if submittedCode != code.CodeValue {
		return s.recordMismatch(ctx, requestID, now)
	}

	grant := &models.AccessGrant{
		GrantID:     utils.GenerateGrantID(),
		RequestID:   requestID,
		SubjectID:   request.SubjectID,
		RequesterID: request.RequesterID,
		Scope:       models.JoinScope(models.DefaultGrantScope),
		IssuedTime:  now,
		ExpiryTime:  now + s.accessCfg.GrantTTL.Milliseconds(),
	}

	var svcErr *apperrors.ServiceError
	txErr := s.db.WithTransaction(ctx, func(tx *database.Transaction) error {
		consumed, err := s.codeDAO.ConsumeWithTx(ctx, tx, requestID)
		if err != nil {
			return err
		}
		changed, err := s.requestDAO.UpdateStatusIfCurrentWithTx(ctx, tx, requestID,
			models.RequestStatusPending, models.RequestStatusVerified)
		if err != nil {
			return err
		}
		if !consumed || !changed {
			// Another caller won the verification race.
			svcErr = apperrors.New(apperrors.NotFoundError, "access request has already been verified")
			return errAbortTx
		}

		if err := s.grantDAO.CreateWithTx(ctx, tx, grant); err != nil {
			return err
		}

		previous := models.RequestStatusPending
		actionBy := request.RequesterID
		reason := "One-time code verified, grant " + grant.GrantID + " issued"
		return s.auditDAO.CreateWithTx(ctx, tx, &models.AccessStatusAudit{
			AuditID:        utils.GenerateAuditID(),
			RequestID:      requestID,
			CurrentStatus:  models.RequestStatusVerified,
			PreviousStatus: &previous,
			ActionTime:     now,
			ActionBy:       &actionBy,
			Reason:         &reason,
		})
	})
	if txErr != nil {
		if svcErr != nil {
			return nil, svcErr
		}
		s.logger.WithError(txErr).Error("Failed to verify one-time code")
		return nil, apperrors.New(apperrors.DatabaseError, "failed to verify one-time code")
	}

	s.logger.WithFields(logrus.Fields{
		"request_id": requestID,
		"grant_id":   grant.GrantID,
		"subject_id": grant.SubjectID,
	}).Info("One-time code verified, access grant issued")

	return grant, nil
}

// recordMismatch burns one attempt for a wrong code and expires the request
// when the bound is reached. The increment happens in the database so
// concurrent wrong submissions cannot under-count.
func (s *VerifierService) recordMismatch(ctx context.Context, requestID string, nowMillis int64) (*models.AccessGrant, *apperrors.ServiceError) {
	attempts, err := s.codeDAO.IncrementAttempts(ctx, requestID)
	if err != nil {
		s.logger.WithError(err).Error("Failed to increment code attempts")
		return nil, apperrors.New(apperrors.DatabaseError, "failed to record verification attempt")
	}

	if attempts >= s.accessCfg.OTPMaxAttempts {
		if svcErr := s.expirePending(ctx, requestID, nowMillis, "Verification attempts exhausted"); svcErr != nil {
			return nil, svcErr
		}
		return nil, apperrors.New(apperrors.AttemptsExhaustedError, "verification attempts exhausted")
	}

	remaining := s.accessCfg.OTPMaxAttempts - attempts
	return nil, apperrors.New(apperrors.MismatchError,
		fmt.Sprintf("code mismatch, %d attempt(s) remaining", remaining))
}

// expirePending moves the request PENDING -> EXPIRED and consumes its code.
// Losing the status race to another caller is not an error.
func (s *VerifierService) expirePending(ctx context.Context, requestID string, nowMillis int64, reason string) *apperrors.ServiceError {
	txErr := s.db.WithTransaction(ctx, func(tx *database.Transaction) error {
		changed, err := s.requestDAO.UpdateStatusIfCurrentWithTx(ctx, tx, requestID,
			models.RequestStatusPending, models.RequestStatusExpired)
		if err != nil {
			return err
		}
		if !changed {
			return nil
		}
		if _, err := s.codeDAO.ConsumeWithTx(ctx, tx, requestID); err != nil {
			return err
		}
		previous := models.RequestStatusPending
		return s.auditDAO.CreateWithTx(ctx, tx, &models.AccessStatusAudit{
			AuditID:        utils.GenerateAuditID(),
			RequestID:      requestID,
			CurrentStatus:  models.RequestStatusExpired,
			PreviousStatus: &previous,
			ActionTime:     nowMillis,
			Reason:         &reason,
		})
	})
	if txErr != nil {
		s.logger.WithError(txErr).Error("Failed to expire access request")
		return apperrors.New(apperrors.DatabaseError, "failed to expire access request")
	}
	return nil
}

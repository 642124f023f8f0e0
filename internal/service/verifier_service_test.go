package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/swasthya/migrant-access-api/internal/apperrors"
	"github.com/swasthya/migrant-access-api/internal/models"
	"github.com/swasthya/migrant-access-api/internal/service/mocks"
	"github.com/swasthya/migrant-access-api/pkg/utils"
)

type verifierServiceMocks struct {
	db         *mocks.MockTxRunner
	requestDAO *mocks.MockAccessRequestDAO
	codeDAO    *mocks.MockOneTimeCodeDAO
	grantDAO   *mocks.MockAccessGrantDAO
	auditDAO   *mocks.MockStatusAuditDAO
}

func newVerifierService() (*VerifierService, *verifierServiceMocks) {
	m := &verifierServiceMocks{
		db:         new(mocks.MockTxRunner),
		requestDAO: new(mocks.MockAccessRequestDAO),
		codeDAO:    new(mocks.MockOneTimeCodeDAO),
		grantDAO:   new(mocks.MockAccessGrantDAO),
		auditDAO:   new(mocks.MockStatusAuditDAO),
	}
	svc := NewVerifierService(
		m.db, m.requestDAO, m.codeDAO, m.grantDAO, m.auditDAO,
		testAccessConfig(), newTestLogger(),
	)
	return svc, m
}

func pendingRequest(requestID string) *models.AccessRequest {
	now := utils.GetCurrentTimeMillis()
	return &models.AccessRequest{
		RequestID:     requestID,
		SubjectID:     "MIG-001",
		RequesterID:   "DOC-001",
		CurrentStatus: models.RequestStatusPending,
		CreatedTime:   now,
		ExpiryTime:    now + (5 * time.Minute).Milliseconds(),
	}
}

func activeCode(requestID, value string, attempts int) *models.OneTimeCode {
	return &models.OneTimeCode{
		RequestID:   requestID,
		CodeValue:   value,
		Attempts:    attempts,
		MaxAttempts: 3,
		Consumed:    false,
		CreatedTime: utils.GetCurrentTimeMillis(),
	}
}

func TestVerify_Success(t *testing.T) {
	svc, m := newVerifierService()

	m.requestDAO.On("GetByID", mock.Anything, "REQ-1").Return(pendingRequest("REQ-1"), nil)
	m.codeDAO.On("GetByRequestID", mock.Anything, "REQ-1").Return(activeCode("REQ-1", "123456", 0), nil)
	m.db.On("WithTransaction", mock.Anything, mock.Anything).Return(nil)
	m.codeDAO.On("ConsumeWithTx", mock.Anything, mock.Anything, "REQ-1").Return(true, nil)
	m.requestDAO.On("UpdateStatusIfCurrentWithTx", mock.Anything, mock.Anything, "REQ-1",
		models.RequestStatusPending, models.RequestStatusVerified).Return(true, nil)

	var minted *models.AccessGrant
	m.grantDAO.On("CreateWithTx", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			minted = args.Get(2).(*models.AccessGrant)
		}).Return(nil)
	m.auditDAO.On("CreateWithTx", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	grant, svcErr := svc.Verify(context.Background(), "REQ-1", "123456")

	assert.Nil(t, svcErr)
	assert.NotNil(t, grant)
	assert.Contains(t, grant.GrantID, "GRANT-")
	assert.Equal(t, "MIG-001", grant.SubjectID)
	assert.Equal(t, "DOC-001", grant.RequesterID)
	assert.Equal(t, grant.IssuedTime+(20*time.Minute).Milliseconds(), grant.ExpiryTime)
	assert.True(t, grant.HasScope(models.ScopeReadProfile))
	assert.True(t, grant.HasScope(models.ScopeReadRecords))
	assert.True(t, grant.HasScope(models.ScopeCreateRecord))
	assert.Equal(t, minted, grant)
}

func TestVerify_RequestNotFound(t *testing.T) {
	svc, m := newVerifierService()

	m.requestDAO.On("GetByID", mock.Anything, "REQ-missing").Return(nil, nil)

	grant, svcErr := svc.Verify(context.Background(), "REQ-missing", "123456")

	assert.Nil(t, grant)
	assert.True(t, apperrors.Is(svcErr, apperrors.NotFoundError))
}

func TestVerify_AlreadyVerified(t *testing.T) {
	svc, m := newVerifierService()

	request := pendingRequest("REQ-1")
	request.CurrentStatus = models.RequestStatusVerified
	m.requestDAO.On("GetByID", mock.Anything, "REQ-1").Return(request, nil)

	grant, svcErr := svc.Verify(context.Background(), "REQ-1", "123456")

	assert.Nil(t, grant)
	assert.True(t, apperrors.Is(svcErr, apperrors.NotFoundError))
	m.grantDAO.AssertNotCalled(t, "CreateWithTx", mock.Anything, mock.Anything, mock.Anything)
}

func TestVerify_ExpiredRequest(t *testing.T) {
	svc, m := newVerifierService()

	request := pendingRequest("REQ-1")
	request.ExpiryTime = utils.GetCurrentTimeMillis() - 1000
	m.requestDAO.On("GetByID", mock.Anything, "REQ-1").Return(request, nil)
	m.db.On("WithTransaction", mock.Anything, mock.Anything).Return(nil)
	m.requestDAO.On("UpdateStatusIfCurrentWithTx", mock.Anything, mock.Anything, "REQ-1",
		models.RequestStatusPending, models.RequestStatusExpired).Return(true, nil)
	m.codeDAO.On("ConsumeWithTx", mock.Anything, mock.Anything, "REQ-1").Return(true, nil)
	m.auditDAO.On("CreateWithTx", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	grant, svcErr := svc.Verify(context.Background(), "REQ-1", "123456")

	assert.Nil(t, grant)
	assert.True(t, apperrors.Is(svcErr, apperrors.ExpiredError))
	// A correct code after expiry still fails and the request is terminal
	m.requestDAO.AssertCalled(t, "UpdateStatusIfCurrentWithTx", mock.Anything, mock.Anything, "REQ-1",
		models.RequestStatusPending, models.RequestStatusExpired)
}

func TestVerify_Mismatch(t *testing.T) {
	svc, m := newVerifierService()

	m.requestDAO.On("GetByID", mock.Anything, "REQ-1").Return(pendingRequest("REQ-1"), nil)
	m.codeDAO.On("GetByRequestID", mock.Anything, "REQ-1").Return(activeCode("REQ-1", "123456", 0), nil)
	m.codeDAO.On("IncrementAttempts", mock.Anything, "REQ-1").Return(1, nil)

	grant, svcErr := svc.Verify(context.Background(), "REQ-1", "654321")

	assert.Nil(t, grant)
	assert.True(t, apperrors.Is(svcErr, apperrors.MismatchError))
	assert.Contains(t, svcErr.ErrorDescription, "2 attempt(s) remaining")
}

func TestVerify_AttemptsExhausted(t *testing.T) {
	svc, m := newVerifierService()

	m.requestDAO.On("GetByID", mock.Anything, "REQ-1").Return(pendingRequest("REQ-1"), nil)
	m.codeDAO.On("GetByRequestID", mock.Anything, "REQ-1").Return(activeCode("REQ-1", "123456", 2), nil)
	m.codeDAO.On("IncrementAttempts", mock.Anything, "REQ-1").Return(3, nil)
	m.db.On("WithTransaction", mock.Anything, mock.Anything).Return(nil)
	m.requestDAO.On("UpdateStatusIfCurrentWithTx", mock.Anything, mock.Anything, "REQ-1",
		models.RequestStatusPending, models.RequestStatusExpired).Return(true, nil)
	m.codeDAO.On("ConsumeWithTx", mock.Anything, mock.Anything, "REQ-1").Return(true, nil)
	m.auditDAO.On("CreateWithTx", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	grant, svcErr := svc.Verify(context.Background(), "REQ-1", "654321")

	assert.Nil(t, grant)
	assert.True(t, apperrors.Is(svcErr, apperrors.AttemptsExhaustedError))
}

func TestVerify_CorrectCodeAfterExhaustionStillFails(t *testing.T) {
	svc, m := newVerifierService()

	m.requestDAO.On("GetByID", mock.Anything, "REQ-1").Return(pendingRequest("REQ-1"), nil)
	m.codeDAO.On("GetByRequestID", mock.Anything, "REQ-1").Return(activeCode("REQ-1", "123456", 3), nil)
	m.db.On("WithTransaction", mock.Anything, mock.Anything).Return(nil)
	m.requestDAO.On("UpdateStatusIfCurrentWithTx", mock.Anything, mock.Anything, "REQ-1",
		models.RequestStatusPending, models.RequestStatusExpired).Return(true, nil)
	m.codeDAO.On("ConsumeWithTx", mock.Anything, mock.Anything, "REQ-1").Return(true, nil)
	m.auditDAO.On("CreateWithTx", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	grant, svcErr := svc.Verify(context.Background(), "REQ-1", "123456")

	assert.Nil(t, grant)
	assert.True(t, apperrors.Is(svcErr, apperrors.AttemptsExhaustedError))
	m.grantDAO.AssertNotCalled(t, "CreateWithTx", mock.Anything, mock.Anything, mock.Anything)
}

func TestVerify_ConsumedCodeIsSingleUse(t *testing.T) {
	svc, m := newVerifierService()

	code := activeCode("REQ-1", "123456", 1)
	code.Consumed = true
	m.requestDAO.On("GetByID", mock.Anything, "REQ-1").Return(pendingRequest("REQ-1"), nil)
	m.codeDAO.On("GetByRequestID", mock.Anything, "REQ-1").Return(code, nil)

	grant, svcErr := svc.Verify(context.Background(), "REQ-1", "123456")

	assert.Nil(t, grant)
	assert.True(t, apperrors.Is(svcErr, apperrors.NotFoundError))
}

func TestVerify_LostConsumeRaceMintsNoGrant(t *testing.T) {
	svc, m := newVerifierService()

	m.requestDAO.On("GetByID", mock.Anything, "REQ-1").Return(pendingRequest("REQ-1"), nil)
	m.codeDAO.On("GetByRequestID", mock.Anything, "REQ-1").Return(activeCode("REQ-1", "123456", 0), nil)
	m.db.On("WithTransaction", mock.Anything, mock.Anything).Return(nil)
	m.codeDAO.On("ConsumeWithTx", mock.Anything, mock.Anything, "REQ-1").Return(false, nil)
	m.requestDAO.On("UpdateStatusIfCurrentWithTx", mock.Anything, mock.Anything, "REQ-1",
		models.RequestStatusPending, models.RequestStatusVerified).Return(false, nil)

	grant, svcErr := svc.Verify(context.Background(), "REQ-1", "123456")

	assert.Nil(t, grant)
	assert.True(t, apperrors.Is(svcErr, apperrors.NotFoundError))
	m.grantDAO.AssertNotCalled(t, "CreateWithTx", mock.Anything, mock.Anything, mock.Anything)
}

func TestVerify_RejectsMalformedCode(t *testing.T) {
	svc, _ := newVerifierService()

	grant, svcErr := svc.Verify(context.Background(), "REQ-1", "12ab56")

	assert.Nil(t, grant)
	assert.True(t, apperrors.Is(svcErr, apperrors.ValidationError))
}

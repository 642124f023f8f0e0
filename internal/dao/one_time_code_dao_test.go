package dao

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestConsumeWithTx_SecondConsumeReturnsFalse(t *testing.T) {
	db, mock := newMockDB(t)
	dao := NewOneTimeCodeDAO(db)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE ONE_TIME_CODE").
		WithArgs("REQ-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE ONE_TIME_CODE").
		WithArgs("REQ-1").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	ctx := context.Background()
	tx, err := db.BeginTx(ctx)
	assert.NoError(t, err)

	consumed, err := dao.ConsumeWithTx(ctx, tx, "REQ-1")
	assert.NoError(t, err)
	assert.True(t, consumed)

	consumed, err = dao.ConsumeWithTx(ctx, tx, "REQ-1")
	assert.NoError(t, err)
	assert.False(t, consumed)

	assert.NoError(t, tx.Commit())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIncrementAttempts_ReturnsNewCount(t *testing.T) {
	db, mock := newMockDB(t)
	dao := NewOneTimeCodeDAO(db)

	mock.ExpectExec("UPDATE ONE_TIME_CODE").
		WithArgs("REQ-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT ATTEMPTS FROM ONE_TIME_CODE").
		WithArgs("REQ-1").
		WillReturnRows(sqlmock.NewRows([]string{"ATTEMPTS"}).AddRow(2))

	attempts, err := dao.IncrementAttempts(context.Background(), "REQ-1")

	assert.NoError(t, err)
	assert.Equal(t, 2, attempts)
	assert.NoError(t, mock.ExpectationsWereMet())
}

package services

import (
	"testing"

	"openrole-api/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockStore(t *testing.T) (ApplicationStore, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gormDB, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return NewApplicationStore(gormDB), mock
}

func TestStoreCreate_DuplicatePairDetectedBeforeInsert(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery("SELECT count").
		WithArgs(7, 1).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	err := store.Create(&models.Application{JobID: 7, CandidateID: 1})
	assert.ErrorIs(t, err, ErrDuplicateApplication)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreCreate_InsertsWithGeneratedID(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery("SELECT count").
		WithArgs(7, 1).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `applications`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	app := &models.Application{JobID: 7, CandidateID: 1}
	err := store.Create(app)
	require.NoError(t, err)

	assert.NotEmpty(t, app.ApplicationID)
	assert.Equal(t, models.StatusSubmitted, app.Status)
	assert.False(t, app.AppliedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreCreate_RaceLostAtTheUniqueIndex(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery("SELECT count").
		WithArgs(7, 1).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `applications`").
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	err := store.Create(&models.Application{JobID: 7, CandidateID: 1})
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrDuplicateApplication)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreGetByID_MapsMissingRowsToNotFound(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery("SELECT (.+) FROM `applications`").
		WillReturnRows(sqlmock.NewRows([]string{"application_id"}))

	_, err := store.GetByID("ghost")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreTransitionStatus_IllegalMoveRollsBack(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FOR UPDATE").
		WillReturnRows(sqlmock.NewRows([]string{"application_id", "job_id", "candidate_id", "status"}).
			AddRow("a-1", 7, 1, string(models.StatusHired)))
	mock.ExpectRollback()

	_, _, err := store.TransitionStatus("a-1", models.StatusScreening, 20, nil, nil)
	var invalid *InvalidTransitionError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, models.StatusHired, invalid.From)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreWithdraw_OwnershipMismatchRollsBack(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FOR UPDATE").
		WillReturnRows(sqlmock.NewRows([]string{"application_id", "job_id", "candidate_id", "status"}).
			AddRow("a-1", 7, 42, string(models.StatusScreening)))
	mock.ExpectRollback()

	_, _, err := store.Withdraw("a-1", 1)
	assert.ErrorIs(t, err, ErrOwnershipMismatch)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreWithdraw_AlreadyWithdrawnCommitsWithoutWriting(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FOR UPDATE").
		WillReturnRows(sqlmock.NewRows([]string{"application_id", "job_id", "candidate_id", "status"}).
			AddRow("a-1", 7, 1, string(models.StatusWithdrawn)))
	mock.ExpectCommit()

	app, changed, err := store.Withdraw("a-1", 1)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, models.StatusWithdrawn, app.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreIncrementJobApplications(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `jobs` SET `applications_count`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := store.IncrementJobApplications(7)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

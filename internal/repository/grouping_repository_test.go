package repository

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	return db, mock
}

func TestGroupingRepositoryDeleteDetachesItems(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewGroupingRepository(db)

	// Deleting a module must clear module_id on its items and soft
	// delete the module row inside one transaction.
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `items` SET").
		WithArgs(nil, sqlmock.AnyArg(), "module-1").
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec("UPDATE `modules` SET `deleted_at`").
		WithArgs(sqlmock.AnyArg(), "module-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.Delete(KindModule, "module-1")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGroupingRepositoryDeleteRollsBackOnFailure(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewGroupingRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `items` SET").
		WithArgs(nil, sqlmock.AnyArg(), "objective-1").
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	err := repo.Delete(KindObjective, "objective-1")
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGroupingRepositoryDeleteTargetsKindColumn(t *testing.T) {
	assert.Equal(t, "objective_id", itemColumn(KindObjective))
	assert.Equal(t, "module_id", itemColumn(KindModule))
	assert.Equal(t, "team_id", itemColumn(KindTeam))
}

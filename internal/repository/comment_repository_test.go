package repository_test

import (
	"context"
	"testing"

	"fizzybot/internal/model"
	"fizzybot/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestCommentRepository_Create_BumpsCardActivity(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewCommentRepository(gormDB)

	accountID := model.NewID()
	cardID := model.NewID()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `comments`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("UPDATE cards SET last_active_at").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	comment, err := repo.Create(context.Background(), accountID, cardID, model.NewID(), "looks good")

	assert.NoError(t, err)
	assert.Equal(t, "looks good", comment.Body)
	assert.False(t, comment.ID.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCommentRepository_Create_CardGone(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewCommentRepository(gormDB)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `comments`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("UPDATE cards SET last_active_at").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	_, err := repo.Create(context.Background(), model.NewID(), model.NewID(), model.NewID(), "orphan")

	assert.ErrorIs(t, err, repository.ErrCardNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	apperrors "github.com/ecomai/backend-go/internal/errors"
	"github.com/ecomai/backend-go/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newMockRepo(t *testing.T) (ChatRepository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	return NewChatRepository(gormDB), mock
}

func TestGetUser(t *testing.T) {
	repo, mock := newMockRepo(t)

	now := time.Now().UTC()
	mock.ExpectQuery(`SELECT \* FROM "users" WHERE user_id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "first_name", "last_name", "created_at"}).
			AddRow(7, "Ada", "Lovelace", now))

	user, err := repo.GetUser(context.Background(), 7)

	assert.NoError(t, err)
	assert.Equal(t, uint(7), user.ID)
	assert.Equal(t, "Ada", user.FirstName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetUserNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE user_id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "first_name"}))

	user, err := repo.GetUser(context.Background(), 404)

	assert.Nil(t, user)
	assert.True(t, apperrors.IsNotFound(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListMessagesOrdering(t *testing.T) {
	repo, mock := newMockRepo(t)

	now := time.Now().UTC()
	// 按created_at升序、时间相同按id升序
	mock.ExpectQuery(`SELECT \* FROM "messages" WHERE conversation_id = \$1 ORDER BY created_at ASC, id ASC`).
		WithArgs(42).
		WillReturnRows(sqlmock.NewRows([]string{"id", "conversation_id", "role", "content", "created_at"}).
			AddRow(1, 42, models.RoleUser, "hello", now).
			AddRow(2, 42, models.RoleAssistant, "Hi there!", now))

	messages, err := repo.ListMessages(context.Background(), 42)

	assert.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, models.RoleUser, messages[0].Role)
	assert.Equal(t, models.RoleAssistant, messages[1].Role)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListMessagesEmpty(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT \* FROM "messages" WHERE conversation_id = \$1`).
		WithArgs(42).
		WillReturnRows(sqlmock.NewRows([]string{"id", "conversation_id", "role", "content", "created_at"}))

	messages, err := repo.ListMessages(context.Background(), 42)

	// 空对话返回空序列而非错误
	assert.NoError(t, err)
	assert.Empty(t, messages)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAppendMessage(t *testing.T) {
	repo, mock := newMockRepo(t)

	now := time.Now().UTC()
	mock.ExpectQuery(`SELECT \* FROM "conversations" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "created_at"}).AddRow(42, 7, now))
	mock.ExpectQuery(`INSERT INTO "messages"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(5))

	message, err := repo.AppendMessage(context.Background(), 42, models.RoleUser, "hello")

	assert.NoError(t, err)
	assert.Equal(t, uint(5), message.ID)
	assert.Equal(t, uint(42), message.ConversationID)
	assert.Equal(t, models.RoleUser, message.Role)
	assert.False(t, message.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAppendMessageMissingConversation(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT \* FROM "conversations" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "created_at"}))

	message, err := repo.AppendMessage(context.Background(), 999, models.RoleUser, "hello")

	assert.Nil(t, message)
	assert.True(t, apperrors.IsNotFound(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateConversationUnknownUser(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE user_id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "first_name"}))

	conversation, err := repo.CreateConversation(context.Background(), 404)

	assert.Nil(t, conversation)
	assert.True(t, apperrors.IsNotFound(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionRollbackOnError(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "users" WHERE user_id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "first_name"}))
	mock.ExpectRollback()

	err := repo.Transaction(context.Background(), func(tx ChatRepository) error {
		_, err := tx.GetUser(context.Background(), 404)
		return err
	})

	assert.True(t, apperrors.IsNotFound(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionCommit(t *testing.T) {
	repo, mock := newMockRepo(t)

	now := time.Now().UTC()
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "users" WHERE user_id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "first_name", "created_at"}).
			AddRow(7, "Ada", now))
	mock.ExpectQuery(`INSERT INTO "conversations"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(42))
	mock.ExpectCommit()

	err := repo.Transaction(context.Background(), func(tx ChatRepository) error {
		conversation, err := tx.CreateConversation(context.Background(), 7)
		if err != nil {
			return err
		}
		assert.Equal(t, uint(42), conversation.ID)
		return nil
	})

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

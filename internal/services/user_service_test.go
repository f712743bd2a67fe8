package services

import (
	"context"
	"testing"

	apperrors "github.com/ecomai/backend-go/internal/errors"
	"github.com/ecomai/backend-go/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestCreateUser(t *testing.T) {
	repo := new(MockChatRepository)
	service := NewUserServiceWith(repo, nil, 0)

	repo.On("CreateUser", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
		return u.FirstName == "Ada" && u.Email == "ada@example.com" && u.Age == 36
	})).Return(nil)

	user, err := service.CreateUser(context.Background(), &CreateUserRequest{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		Age:       36,
	})

	assert.NoError(t, err)
	assert.Equal(t, "Ada", user.FirstName)
	assert.Equal(t, "Lovelace", user.LastName)
	repo.AssertExpectations(t)
}

func TestCreateUserValidation(t *testing.T) {
	repo := new(MockChatRepository)
	service := NewUserServiceWith(repo, nil, 0)

	cases := []struct {
		name string
		req  *CreateUserRequest
	}{
		{"missing first name", &CreateUserRequest{Email: "a@b.com"}},
		{"invalid email", &CreateUserRequest{FirstName: "Ada", Email: "not-an-email"}},
		{"negative age", &CreateUserRequest{FirstName: "Ada", Age: -1}},
		{"age too large", &CreateUserRequest{FirstName: "Ada", Age: 200}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			user, err := service.CreateUser(context.Background(), tc.req)
			assert.Nil(t, user)
			appErr := apperrors.GetAppError(err)
			assert.Equal(t, apperrors.ErrCodeValidationFailed, appErr.Code)
		})
	}
	repo.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything)
}

func TestGetUserWithoutCache(t *testing.T) {
	repo := new(MockChatRepository)
	service := NewUserServiceWith(repo, nil, 0)

	want := &models.User{ID: 7, FirstName: "Ada"}
	repo.On("GetUser", mock.Anything, uint(7)).Return(want, nil)

	user, err := service.GetUser(context.Background(), 7)

	assert.NoError(t, err)
	assert.Equal(t, want, user)
}

func TestGetUserNotFound(t *testing.T) {
	repo := new(MockChatRepository)
	service := NewUserServiceWith(repo, nil, 0)

	repo.On("GetUser", mock.Anything, uint(404)).Return(nil, apperrors.NewNotFoundError("user"))

	user, err := service.GetUser(context.Background(), 404)

	assert.Nil(t, user)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestListUserConversations(t *testing.T) {
	repo := new(MockChatRepository)
	service := NewConversationServiceWith(repo)

	user := &models.User{ID: 7, FirstName: "Ada"}
	conversations := []models.Conversation{{ID: 1, UserID: 7}, {ID: 2, UserID: 7}}

	repo.On("GetUser", mock.Anything, uint(7)).Return(user, nil)
	repo.On("ListConversations", mock.Anything, uint(7)).Return(conversations, nil)
	repo.On("ListMessages", mock.Anything, uint(1)).Return([]models.Message{
		*newMessage(1, 1, models.RoleUser, "hello"),
		*newMessage(2, 1, models.RoleAssistant, "Hi there!"),
	}, nil)
	repo.On("ListMessages", mock.Anything, uint(2)).Return([]models.Message{}, nil)

	history, err := service.ListUserConversations(context.Background(), 7)

	assert.NoError(t, err)
	assert.Len(t, history, 2)
	assert.Len(t, history[1], 2)
	assert.Equal(t, "hello", history[1][0].Content)
	assert.Equal(t, models.RoleAssistant, history[1][1].Role)
	assert.Empty(t, history[2])
}

func TestListUserConversationsUnknownUser(t *testing.T) {
	repo := new(MockChatRepository)
	service := NewConversationServiceWith(repo)

	repo.On("GetUser", mock.Anything, uint(404)).Return(nil, apperrors.NewNotFoundError("user"))

	history, err := service.ListUserConversations(context.Background(), 404)

	assert.Nil(t, history)
	assert.True(t, apperrors.IsNotFound(err))
	repo.AssertNotCalled(t, "ListConversations", mock.Anything, mock.Anything)
}

package services_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/internal/services"
)

func TestAuthService_RegisterUser(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, "test_jwt_secret")

	user := &models.User{
		Username: "testuser",
		Email:    "test@example.com",
		Password: "password123",
	}

	// Test successful registration
	mockRepo.On("GetByUsername", user.Username).Return(nil, nil).Once()
	mockRepo.On("GetByEmail", user.Email).Return(nil, nil).Once()
	mockRepo.On("Create", mock.AnythingOfType("*models.User")).Return(nil).Once()

	err := authService.RegisterUser(user)
	assert.NoError(t, err)
	// The stored password must be the bcrypt hash, not the plaintext.
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("password123")))
	mockRepo.AssertExpectations(t)

	// Test username already taken
	mockRepo.On("GetByUsername", user.Username).Return(&models.User{ID: "1"}, nil).Once()
	err = authService.RegisterUser(user)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "username 'testuser' already taken")
	mockRepo.AssertExpectations(t)

	// Test email already registered
	mockRepo.On("GetByUsername", user.Username).Return(nil, nil).Once()
	mockRepo.On("GetByEmail", user.Email).Return(&models.User{ID: "1"}, nil).Once()
	err = authService.RegisterUser(user)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "email 'test@example.com' already registered")
	mockRepo.AssertExpectations(t)
}

func TestAuthService_RegisterUser_LookupErrors(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, "test_jwt_secret")

	user := &models.User{
		Username: "newuser",
		Email:    "new@example.com",
		Password: "password123",
	}

	// A not-found lookup means the name is free: registration proceeds.
	mockRepo.On("GetByUsername", user.Username).
		Return(nil, fmt.Errorf("%w: username %s", repositories.ErrUserNotFound, user.Username)).Once()
	mockRepo.On("GetByEmail", user.Email).
		Return(nil, fmt.Errorf("%w: email %s", repositories.ErrUserNotFound, user.Email)).Once()
	mockRepo.On("Create", mock.AnythingOfType("*models.User")).Return(nil).Once()

	err := authService.RegisterUser(user)
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)

	// A real storage failure during the lookup surfaces as an error
	// instead of being mistaken for an available username.
	failingRepo := new(MockUserRepository)
	failingService := services.NewAuthService(failingRepo, "test_jwt_secret")
	failingRepo.On("GetByUsername", user.Username).Return(nil, fmt.Errorf("connection refused")).Once()

	err = failingService.RegisterUser(user)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to check username")
	failingRepo.AssertNotCalled(t, "GetByEmail", user.Email)
	failingRepo.AssertNotCalled(t, "Create", mock.Anything)
	failingRepo.AssertExpectations(t)
}

func TestAuthService_LoginUser(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, "test_jwt_secret")

	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	user := &models.User{
		ID:       "user-123",
		Username: "testuser",
		Email:    "test@example.com",
		Password: string(hashedPassword),
	}

	// Test successful login
	mockRepo.On("GetByUsername", user.Username).Return(user, nil).Once()
	token, err := authService.LoginUser("testuser", "password123")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	mockRepo.AssertExpectations(t)

	// Test wrong password
	mockRepo.On("GetByUsername", user.Username).Return(user, nil).Once()
	token, err = authService.LoginUser("testuser", "wrongpassword")
	assert.ErrorIs(t, err, services.ErrUnauthorized)
	assert.Empty(t, token)
	mockRepo.AssertExpectations(t)

	// Test unknown username
	mockRepo.On("GetByUsername", "nobody").Return(nil, assert.AnError).Once()
	token, err = authService.LoginUser("nobody", "password123")
	assert.ErrorIs(t, err, services.ErrUnauthorized)
	assert.Empty(t, token)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_ValidateToken(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, "test_jwt_secret")

	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	user := &models.User{
		ID:       "user-123",
		Username: "testuser",
		Password: string(hashedPassword),
	}

	mockRepo.On("GetByUsername", user.Username).Return(user, nil).Once()
	token, err := authService.LoginUser("testuser", "password123")
	assert.NoError(t, err)

	// Round trip: the issued token validates and carries the user id.
	claims, err := authService.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "user-123", claims["user_id"])
	assert.Equal(t, "testuser", claims["username"])

	// Garbage tokens are rejected.
	claims, err = authService.ValidateToken("not.a.token")
	assert.ErrorIs(t, err, services.ErrUnauthorized)
	assert.Nil(t, claims)

	// Tokens signed with a different secret are rejected.
	forged := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": "user-123",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	forgedString, _ := forged.SignedString([]byte("other_secret"))
	claims, err = authService.ValidateToken(forgedString)
	assert.ErrorIs(t, err, services.ErrUnauthorized)
	assert.Nil(t, claims)
}

package services_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"sweetshop/internal/models"
	"sweetshop/internal/repositories"
	"sweetshop/internal/services"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testJWTSecret = "test_jwt_secret"

func notFound(key string) error {
	return fmt.Errorf("user %s: %w", key, repositories.ErrNotFound)
}

func TestAuthService_RegisterUser(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, testJWTSecret, services.WithAdminEmails([]string{"owner@bakery.test"}))
	ctx := context.Background()

	user := &models.User{Username: "testuser", Email: "test@example.com", Password: "password123"}

	mockRepo.On("GetByUsername", mock.Anything, user.Username).Return(nil, notFound(user.Username)).Once()
	mockRepo.On("GetByEmail", mock.Anything, user.Email).Return(nil, notFound(user.Email)).Once()
	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.User")).Return(nil).Once()

	require.NoError(t, authService.RegisterUser(ctx, user))
	assert.Equal(t, models.RoleUser, user.Role)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("password123")))
	mockRepo.AssertExpectations(t)

	// Username already taken
	mockRepo.On("GetByUsername", mock.Anything, "testuser").Return(&models.User{ID: "1"}, nil).Once()
	err := authService.RegisterUser(ctx, &models.User{Username: "testuser", Email: "x@example.com", Password: "password123"})
	assert.ErrorIs(t, err, services.ErrAlreadyExists)
	assert.Contains(t, err.Error(), "username 'testuser'")

	// Email already registered
	mockRepo.On("GetByUsername", mock.Anything, "other").Return(nil, notFound("other")).Once()
	mockRepo.On("GetByEmail", mock.Anything, "test@example.com").Return(&models.User{ID: "1"}, nil).Once()
	err = authService.RegisterUser(ctx, &models.User{Username: "other", Email: "test@example.com", Password: "password123"})
	assert.ErrorIs(t, err, services.ErrAlreadyExists)
	assert.Contains(t, err.Error(), "email 'test@example.com'")
	mockRepo.AssertExpectations(t)
}

func TestAuthService_RegisterUser_AdminEmail(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, testJWTSecret, services.WithAdminEmails([]string{"Owner@Bakery.test"}))

	owner := &models.User{Username: "owner", Email: "owner@bakery.test", Password: "password123"}
	mockRepo.On("GetByUsername", mock.Anything, "owner").Return(nil, notFound("owner")).Once()
	mockRepo.On("GetByEmail", mock.Anything, "owner@bakery.test").Return(nil, notFound("owner@bakery.test")).Once()
	mockRepo.On("Create", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
		return u.Role == models.RoleAdmin
	})).Return(nil).Once()

	require.NoError(t, authService.RegisterUser(context.Background(), owner))
	mockRepo.AssertExpectations(t)
}

func TestAuthService_RegisterUser_Closed(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, testJWTSecret, services.WithRegistration(false))

	err := authService.RegisterUser(context.Background(), &models.User{Username: "late", Email: "late@example.com", Password: "password123"})
	assert.ErrorIs(t, err, services.ErrRegistrationClosed)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAuthService_LoginUser(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, testJWTSecret)
	ctx := context.Background()

	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	user := &models.User{
		ID:       "user-123",
		Username: "testuser",
		Email:    "test@example.com",
		Password: string(hashedPassword),
		Role:     models.RoleAdmin,
	}

	mockRepo.On("GetByUsername", mock.Anything, user.Username).Return(user, nil).Once()
	token, err := authService.LoginUser(ctx, "testuser", "password123")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	parsedToken, err := jwt.Parse(token, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(testJWTSecret), nil
	})
	require.NoError(t, err)
	claims, ok := parsedToken.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, user.ID, claims["user_id"])
	assert.Equal(t, user.Username, claims["username"])
	assert.Equal(t, models.RoleAdmin, claims["role"])

	// Login by email
	mockRepo.On("GetByEmail", mock.Anything, user.Email).Return(user, nil).Once()
	_, err = authService.LoginUser(ctx, user.Email, "password123")
	assert.NoError(t, err)

	// Wrong password
	mockRepo.On("GetByUsername", mock.Anything, user.Username).Return(user, nil).Once()
	_, err = authService.LoginUser(ctx, "testuser", "wrongpassword")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)

	// Unknown user gets the same error
	mockRepo.On("GetByUsername", mock.Anything, "nonexistentuser").Return(nil, notFound("nonexistentuser")).Once()
	_, err = authService.LoginUser(ctx, "nonexistentuser", "password123")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_ValidateToken(t *testing.T) {
	authService := services.NewAuthService(new(MockUserRepository), testJWTSecret)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  "user-123",
		"username": "testuser",
		"role":     "admin",
		"exp":      jwt.TimeFunc().Add(time.Hour).Unix(),
	})
	validTokenString, _ := token.SignedString([]byte(testJWTSecret))

	claims, err := authService.ValidateToken(validTokenString)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims["user_id"])
	assert.Equal(t, "admin", claims["role"])

	_, err = authService.ValidateToken("invalid.token.string")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid token")

	otherSecret, _ := token.SignedString([]byte("someone_else"))
	_, err = authService.ValidateToken(otherSecret)
	assert.Error(t, err)

	expiredToken := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": "user-123",
		"exp":     jwt.TimeFunc().Add(-time.Hour).Unix(),
	})
	expiredTokenString, _ := expiredToken.SignedString([]byte(testJWTSecret))
	_, err = authService.ValidateToken(expiredTokenString)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid token")
}

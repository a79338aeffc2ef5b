package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"sweetshop/internal/models"
	"sweetshop/internal/repositories"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles business logic for authentication and authorization.
type AuthService struct {
	userRepo          repositories.UserRepository
	jwtSecret         []byte
	tokenDurat        time.Duration // Duration for which JWT is valid
	adminEmails       []string
	allowRegistration bool
}

// AuthOption customises an AuthService.
type AuthOption func(*AuthService)

// WithAdminEmails makes accounts registered with one of emails admins.
func WithAdminEmails(emails []string) AuthOption {
	return func(s *AuthService) {
		s.adminEmails = emails
	}
}

// WithRegistration enables or disables self registration.
func WithRegistration(allowed bool) AuthOption {
	return func(s *AuthService) {
		s.allowRegistration = allowed
	}
}

// NewAuthService creates a new AuthService. Registration is open by default.
func NewAuthService(userRepo repositories.UserRepository, jwtSecret string, opts ...AuthOption) *AuthService {
	s := &AuthService{
		userRepo:          userRepo,
		jwtSecret:         []byte(jwtSecret),
		tokenDurat:        24 * time.Hour, // Token valid for 24 hours
		allowRegistration: true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *AuthService) roleFor(email string) string {
	for _, e := range s.adminEmails {
		if strings.EqualFold(strings.TrimSpace(e), strings.TrimSpace(email)) {
			return models.RoleAdmin
		}
	}
	return models.RoleUser
}

// RegisterUser registers a new user, hashes their password, and saves them to the database.
func (s *AuthService) RegisterUser(ctx context.Context, user *models.User) error {
	if !s.allowRegistration {
		return ErrRegistrationClosed
	}
	if existingUser, err := s.userRepo.GetByUsername(ctx, user.Username); err == nil && existingUser != nil {
		return fmt.Errorf("username '%s': %w", user.Username, ErrAlreadyExists)
	}
	if existingUser, err := s.userRepo.GetByEmail(ctx, user.Email); err == nil && existingUser != nil {
		return fmt.Errorf("email '%s': %w", user.Email, ErrAlreadyExists)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.Password = string(hashedPassword)
	user.Role = s.roleFor(user.Email)

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return fmt.Errorf("user '%s': %w", user.Username, ErrAlreadyExists)
		}
		return fmt.Errorf("failed to register user: %w", err)
	}
	return nil
}

// LoginUser authenticates a user by username or email and returns a JWT token.
func (s *AuthService) LoginUser(ctx context.Context, login, password string) (string, error) {
	var user *models.User
	var err error
	if strings.Contains(login, "@") {
		user, err = s.userRepo.GetByEmail(ctx, strings.ToLower(login))
	} else {
		user, err = s.userRepo.GetByUsername(ctx, login)
	}
	if err != nil {
		// Do not reveal whether the account exists.
		return "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"role":     user.Role,
		"exp":      now.Add(s.tokenDurat).Unix(),
		"iat":      now.Unix(),
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return tokenString, nil
}

// ValidateToken parses and validates a JWT token, returning the claims if valid.
func (s *AuthService) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		log.Printf("Token validation error: %v", err)
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, fmt.Errorf("invalid token")
}

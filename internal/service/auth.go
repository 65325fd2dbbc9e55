package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/Dan9191/post-service/internal/models"
	"github.com/Dan9191/post-service/internal/repository"
)

// UserStore persists users
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	FindUserByPhone(ctx context.Context, phone string) (*models.User, error)
	FindUserByID(ctx context.Context, id int64) (*models.User, error)
	ListUsers(ctx context.Context, limit, offset int) ([]models.User, error)
}

// AuthService handles registration, login and token verification
type AuthService struct {
	users  UserStore
	log    *logrus.Logger
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewAuthService initializes a new auth service. Tokens are signed with
// secret and expire ttl after issuance.
func NewAuthService(users UserStore, log *logrus.Logger, secret string, ttl time.Duration) *AuthService {
	return &AuthService{
		users:  users,
		log:    log,
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// RegisterInput is the payload of a registration request
type RegisterInput struct {
	Name           string
	PhoneNumber    string
	Password       string
	RepeatPassword string
}

// Register creates a new user with hashed password
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	name := strings.TrimSpace(in.Name)
	phone := strings.TrimSpace(in.PhoneNumber)
	switch {
	case name == "":
		return nil, validationError("Name is required")
	case phone == "":
		return nil, validationError("Phone number is required")
	case in.Password == "":
		return nil, validationError("Password is required")
	case in.Password != in.RepeatPassword:
		return nil, validationError("Passwords do not match")
	}

	if _, err := s.users.FindUserByPhone(ctx, phone); err == nil {
		return nil, &Error{Kind: KindConflict, Message: "Phone number already registered"}
	} else if !errors.Is(err, repository.ErrNoRecord) {
		return nil, storeError(err, "")
	}

	// Hash password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return nil, validationError("Password must be at most 72 bytes")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:         name,
		PhoneNumber:  phone,
		PasswordHash: string(hashedPassword),
	}

	if err := s.users.CreateUser(ctx, user); err != nil {
		// Lost a race with a concurrent registration of the same phone.
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, &Error{Kind: KindConflict, Message: "Phone number already registered", Err: err}
		}
		return nil, storeError(err, "")
	}

	s.log.Infof("User registered: %d", user.ID)
	return user, nil
}

// Login authenticates a user and returns a signed token
func (s *AuthService) Login(ctx context.Context, phone, password string) (*models.User, string, error) {
	user, err := s.users.FindUserByPhone(ctx, strings.TrimSpace(phone))
	if err != nil {
		return nil, "", storeError(err, "User not found")
	}

	// Verify password
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", &Error{Kind: KindInvalidCredentials, Message: "Wrong password"}
	}

	token, err := s.issueToken(user.ID)
	if err != nil {
		return nil, "", err
	}

	s.log.Infof("User logged in: %d", user.ID)
	return user, token, nil
}

func (s *AuthService) issueToken(userID int64) (string, error) {
	now := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(userID, 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	})
	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return tokenString, nil
}

// VerifyToken checks signature and expiry and returns the embedded user id
func (s *AuthService) VerifyToken(tokenString string) (int64, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return 0, &Error{Kind: KindInvalidToken, Message: "Token invalid", Err: err}
	}

	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || id <= 0 {
		return 0, &Error{Kind: KindInvalidToken, Message: "Token invalid", Err: fmt.Errorf("bad subject %q", claims.Subject)}
	}
	return id, nil
}

// UserByID resolves the user a verified token was issued for
func (s *AuthService) UserByID(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.users.FindUserByID(ctx, id)
	if errors.Is(err, repository.ErrNoRecord) {
		return nil, &Error{Kind: KindInvalidToken, Message: "Token invalid", Err: err}
	}
	if err != nil {
		return nil, storeError(err, "")
	}
	return user, nil
}

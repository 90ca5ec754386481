package service

import (
	"context"
	"errors"

	"foolivery/internal/models"
	"foolivery/internal/store"
	"foolivery/internal/util"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles registration, credential checks and profiles
type AuthService struct {
	store     store.Repository
	passwords *PasswordVerifier
	logger    *zap.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(store store.Repository, passwords *PasswordVerifier) *AuthService {
	return &AuthService{
		store:     store,
		passwords: passwords,
		logger:    util.GetLogger(),
	}
}

// Credentials is the register/login request body
type Credentials struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"required,min=6,max=72,bytemax=72"`
}

// Register creates a user. Usernames are unique ignoring case.
func (s *AuthService) Register(ctx context.Context, creds *Credentials) (*models.PublicUser, error) {
	ctx, span := util.StartSpan(ctx, "AuthService.Register")
	defer span.End()

	if err := validateStruct("Invalid input data", creds); err != nil {
		util.AuthAttemptsTotal.WithLabelValues("register", "invalid").Inc()
		return nil, err
	}

	existing, err := s.store.GetUserByUsername(ctx, creds.Username)
	if err != nil {
		s.logger.Error("Failed to look up username", zap.Error(err))
		return nil, internal("Error registering new user", err)
	}
	if existing != nil {
		util.AuthAttemptsTotal.WithLabelValues("register", "duplicate").Inc()
		return nil, ErrDuplicateUsername
	}

	hash, err := s.passwords.Hash(creds.Password)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return nil, validationError("Invalid input data", map[string]string{"password": "must be at most 72 bytes"})
	}
	if err != nil {
		s.logger.Error("Failed to hash password", zap.Error(err))
		return nil, internal("Error registering new user", err)
	}

	user := &models.User{Username: creds.Username, PasswordHash: hash}
	if err := s.store.CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrUsernameTaken) {
			util.AuthAttemptsTotal.WithLabelValues("register", "duplicate").Inc()
			return nil, ErrDuplicateUsername
		}
		s.logger.Error("Failed to create user", zap.Error(err))
		return nil, internal("Error registering new user", err)
	}

	util.AuthAttemptsTotal.WithLabelValues("register", "success").Inc()
	s.logger.Info("User registered", zap.Int64("user_id", user.ID))

	public := user.Public()
	return &public, nil
}

// Login checks credentials and returns the matching user
func (s *AuthService) Login(ctx context.Context, creds *Credentials) (*models.PublicUser, error) {
	ctx, span := util.StartSpan(ctx, "AuthService.Login")
	defer span.End()

	if creds.Username == "" || creds.Password == "" {
		util.AuthAttemptsTotal.WithLabelValues("login", "invalid").Inc()
		return nil, ErrInvalidCredentials
	}

	user, err := s.store.GetUserByUsername(ctx, creds.Username)
	if err != nil {
		s.logger.Error("Failed to look up user", zap.Error(err))
		return nil, internal("Authentication error", err)
	}
	if user == nil {
		s.passwords.burn(creds.Password)
		util.AuthAttemptsTotal.WithLabelValues("login", "failure").Inc()
		return nil, ErrInvalidCredentials
	}

	if !s.passwords.Verify(creds.Password, user.PasswordHash) {
		util.AuthAttemptsTotal.WithLabelValues("login", "failure").Inc()
		return nil, ErrInvalidCredentials
	}

	util.AuthAttemptsTotal.WithLabelValues("login", "success").Inc()
	public := user.Public()
	return &public, nil
}

// Profile returns the public view of the acting user
func (s *AuthService) Profile(ctx context.Context, userID int64) (*models.PublicUser, error) {
	ctx, span := util.StartSpan(ctx, "AuthService.Profile")
	defer span.End()

	if userID <= 0 {
		return nil, ErrUnauthenticated
	}

	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		s.logger.Error("Failed to get user", zap.Int64("user_id", userID), zap.Error(err))
		return nil, internal("Error retrieving user profile", err)
	}
	if user == nil {
		return nil, notFound("User not found")
	}

	public := user.Public()
	return &public, nil
}

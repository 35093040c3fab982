package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/LovationAdmin/finance-api/models"
	"github.com/LovationAdmin/finance-api/utils"
)

// AuthService issues session tokens and manages the optional TOTP second factor.
type AuthService struct {
	users         *UserService
	jwtSecret     string
	tokenTTL      time.Duration
	encryptionKey string
}

// NewAuthService wires the auth flows. TOTP secrets are sealed with encryptionKey when one is set.
func NewAuthService(users *UserService, jwtSecret string, tokenTTL time.Duration, encryptionKey string) *AuthService {
	return &AuthService{
		users:         users,
		jwtSecret:     jwtSecret,
		tokenTTL:      tokenTTL,
		encryptionKey: encryptionKey,
	}
}

func (s *AuthService) issue(user *models.User) (*models.AuthResponse, error) {
	token, _, err := utils.GenerateAccessToken(s.jwtSecret, user.ID, user.Email, s.tokenTTL)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}
	return &models.AuthResponse{Token: token, User: *user}, nil
}

func (s *AuthService) Signup(ctx context.Context, req models.SignupRequest) (*models.AuthResponse, error) {
	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user, err := s.users.Create(ctx, req.Email, req.Name, hash)
	if err != nil {
		return nil, err
	}
	return s.issue(user)
}

func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if errors.Is(err, ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !utils.CheckPassword(req.Password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	if user.TOTPEnabled {
		if req.TOTPCode == "" {
			return nil, ErrTOTPRequired
		}
		secret, err := s.openSecret(user.TOTPSecret)
		if err != nil {
			return nil, err
		}
		if !utils.VerifyTOTP(secret, req.TOTPCode) {
			return nil, ErrInvalidTOTP
		}
	}
	return s.issue(user)
}

// Session resolves the identity behind a verified token.
func (s *AuthService) Session(ctx context.Context, userID string, expiresAt time.Time) (*models.Session, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &models.Session{User: *user, ExpiresAt: expiresAt}, nil
}

// SetupTOTP stores a fresh pending secret. An account with 2FA already on must disable it first.
func (s *AuthService) SetupTOTP(ctx context.Context, userID string) (*models.TOTPSetupResponse, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.TOTPEnabled {
		return nil, ErrTOTPEnabled
	}
	secret, url, err := utils.GenerateTOTPSecret(user.Email)
	if err != nil {
		return nil, fmt.Errorf("generate totp: %w", err)
	}
	sealed, err := s.sealSecret(secret)
	if err != nil {
		return nil, err
	}
	err = s.users.SetTOTPSecret(ctx, userID, sealed)
	if errors.Is(err, ErrNotFound) {
		// enabled concurrently since the read above
		return nil, ErrTOTPEnabled
	}
	if err != nil {
		return nil, err
	}
	return &models.TOTPSetupResponse{Secret: secret, URL: url}, nil
}

func (s *AuthService) VerifyTOTP(ctx context.Context, userID, code string) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user.TOTPSecret == "" {
		return ErrTOTPNotSetup
	}
	secret, err := s.openSecret(user.TOTPSecret)
	if err != nil {
		return err
	}
	if !utils.VerifyTOTP(secret, code) {
		return ErrInvalidTOTP
	}
	return s.users.EnableTOTP(ctx, userID)
}

// DisableTOTP needs the password and, when a secret is stored, a current code.
func (s *AuthService) DisableTOTP(ctx context.Context, userID, password, code string) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if !utils.CheckPassword(password, user.PasswordHash) {
		return ErrInvalidCredentials
	}
	if user.TOTPSecret != "" {
		secret, err := s.openSecret(user.TOTPSecret)
		if err != nil {
			return err
		}
		if !utils.VerifyTOTP(secret, code) {
			return ErrInvalidTOTP
		}
	}
	return s.users.DisableTOTP(ctx, userID)
}

func (s *AuthService) sealSecret(secret string) (string, error) {
	if s.encryptionKey == "" {
		return secret, nil
	}
	sealed, err := utils.Encrypt(s.encryptionKey, []byte(secret))
	if err != nil {
		return "", fmt.Errorf("seal totp secret: %w", err)
	}
	return sealed, nil
}

func (s *AuthService) openSecret(stored string) (string, error) {
	if s.encryptionKey == "" {
		return stored, nil
	}
	plain, err := utils.Decrypt(s.encryptionKey, stored)
	if err != nil {
		return "", fmt.Errorf("open totp secret: %w", err)
	}
	return string(plain), nil
}

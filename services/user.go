package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/LovationAdmin/finance-api/models"

	"github.com/google/uuid"
)

const userColumns = `id, email, name, password_hash, COALESCE(totp_secret, ''), totp_enabled, created_at, updated_at`

type UserService struct {
	db *sql.DB
}

func NewUserService(db *sql.DB) *UserService {
	return &UserService{db: db}
}

func (s *UserService) scanOne(ctx context.Context, where string, arg any) (*models.User, error) {
	var u models.User
	err := s.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE `+where, arg).Scan(
		&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.TOTPSecret, &u.TOTPEnabled, &u.CreatedAt, &u.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("user: %w", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}

func (s *UserService) GetByID(ctx context.Context, id string) (*models.User, error) {
	return s.scanOne(ctx, `id = $1`, id)
}

func (s *UserService) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.scanOne(ctx, `email = $1`, normalizeEmail(email))
}

// Create inserts a user with an already hashed password.
func (s *UserService) Create(ctx context.Context, email, name, passwordHash string) (*models.User, error) {
	email = normalizeEmail(email)

	var exists bool
	err := s.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, email).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if exists {
		return nil, ErrEmailTaken
	}

	now := time.Now().UTC()
	user := &models.User{
		ID:           uuid.New().String(),
		Email:        email,
		Name:         strings.TrimSpace(name),
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	query := `
		INSERT INTO users (id, email, name, password_hash, totp_enabled, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err = s.db.ExecContext(ctx, query, user.ID, user.Email, user.Name, user.PasswordHash, false, now, now)
	if isUniqueViolation(err) {
		return nil, ErrEmailTaken
	}
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// SetTOTPSecret replaces the pending secret of an account whose 2FA is off; 2FA stays
// disabled until EnableTOTP. Accounts with 2FA on are left untouched.
func (s *UserService) SetTOTPSecret(ctx context.Context, id, secret string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE users SET totp_secret = $1, updated_at = $2 WHERE id = $3 AND totp_enabled = $4`,
		secret, time.Now().UTC(), id, false)
	if err != nil {
		return fmt.Errorf("store totp secret: %w", err)
	}
	return expectRow(res, "user", id)
}

func (s *UserService) EnableTOTP(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE users SET totp_enabled = $1, updated_at = $2 WHERE id = $3`,
		true, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("enable totp: %w", err)
	}
	return expectRow(res, "user", id)
}

func (s *UserService) DisableTOTP(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE users SET totp_enabled = $1, totp_secret = NULL, updated_at = $2 WHERE id = $3`,
		false, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("disable totp: %w", err)
	}
	return expectRow(res, "user", id)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

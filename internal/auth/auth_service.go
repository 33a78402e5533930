package auth

import (
	"context"
	"net/mail"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/DhavalSuthar-24/leaguehub/internal/user"
	"github.com/DhavalSuthar-24/leaguehub/pkg/apperror"
	"github.com/DhavalSuthar-24/leaguehub/pkg/token"
	"github.com/DhavalSuthar-24/leaguehub/utils"
)

const (
	DefaultUserRole   = user.RolePlayer
	minPasswordLength = 8
	maxPasswordLength = 72 // bcrypt ignores the rest
)

type Service struct {
	users         user.UserRepository
	secret        string
	expiryMinutes int
}

func NewService(users user.UserRepository, secret string, expiryMinutes int) *Service {
	return &Service{users: users, secret: secret, expiryMinutes: expiryMinutes}
}

func validatePassword(p string) error {
	if len(p) < minPasswordLength {
		return apperror.Validationf("password must be at least %d characters", minPasswordLength)
	}
	if len(p) > maxPasswordLength {
		return apperror.Validationf("password must be at most %d characters", maxPasswordLength)
	}
	return nil
}

// Register creates a user account. Admin accounts cannot be self-registered.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*user.User, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperror.Validation("name is required")
	}
	email := user.NormalizeEmail(req.Email)
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, apperror.Validation("email is invalid")
	}
	if err := validatePassword(req.Password); err != nil {
		return nil, err
	}
	role := req.Role
	if role == "" {
		role = DefaultUserRole
	}
	if !role.Valid() {
		return nil, apperror.Validationf("unknown role %q", role)
	}
	if role == user.RoleAdmin {
		return nil, apperror.Validation("admin accounts cannot be registered")
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, apperror.Wrap(apperror.KindStorage, "failed to hash password", err)
	}
	u := &user.User{Name: name, Email: email, PasswordHash: hash, Role: role}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Login checks the credentials and issues an access token.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	u, err := s.users.GetByEmail(ctx, req.Email)
	if apperror.Is(err, apperror.KindNotFound) {
		return nil, apperror.Unauthorized("invalid email or password")
	}
	if err != nil {
		return nil, err
	}
	if !utils.CheckPassword(u.PasswordHash, req.Password) {
		return nil, apperror.Unauthorized("invalid email or password")
	}
	return s.issue(u)
}

func (s *Service) issue(u *user.User) (*AuthResponse, error) {
	signed, err := token.GenerateJWT(u.ID, string(u.Role), s.secret, s.expiryMinutes)
	if err != nil {
		return nil, apperror.Wrap(apperror.KindStorage, "access token generation failed", err)
	}
	return &AuthResponse{
		AccessToken: signed,
		TokenType:   "Bearer",
		ExpiresIn:   s.expiryMinutes * 60,
		User:        u,
	}, nil
}

func (s *Service) Me(ctx context.Context, userID string) (*user.User, error) {
	return s.users.Get(ctx, userID)
}

func (s *Service) ChangePassword(ctx context.Context, userID string, req ChangePasswordRequest) error {
	u, err := s.users.Get(ctx, userID)
	if err != nil {
		return err
	}
	if !utils.CheckPassword(u.PasswordHash, req.CurrentPassword) {
		return apperror.Unauthorized("current password is incorrect")
	}
	if err := validatePassword(req.NewPassword); err != nil {
		return err
	}
	hash, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return apperror.Wrap(apperror.KindStorage, "failed to hash password", err)
	}
	u.PasswordHash = hash
	return s.users.Save(ctx, u)
}

// EnsureAdmin creates the bootstrap admin account unless the email is
// already registered.
func (s *Service) EnsureAdmin(ctx context.Context, email, password string) error {
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil
	} else if !apperror.Is(err, apperror.KindNotFound) {
		return err
	}
	if err := validatePassword(password); err != nil {
		return err
	}
	hash, err := utils.HashPassword(password)
	if err != nil {
		return apperror.Wrap(apperror.KindStorage, "failed to hash password", err)
	}
	u := &user.User{Name: "Administrator", Email: email, PasswordHash: hash, Role: user.RoleAdmin}
	if err := s.users.Create(ctx, u); err != nil {
		return err
	}
	log.Info().Str("email", u.Email).Msg("Bootstrap admin account created")
	return nil
}

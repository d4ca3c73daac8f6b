package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"softveda-site/internal/auth"
	"softveda-site/internal/domain"
	"softveda-site/internal/metrics"
	"softveda-site/internal/repository"
)

// RegisterInput carries the fields of a registration form. Which fields are
// read depends on Role.
type RegisterInput struct {
	Role        string
	Name        string
	Email       string
	Username    string
	Password    string
	AdminSecret string
}

// RegisterResult describes a completed registration. No session is created.
type RegisterResult struct {
	Role    domain.Role
	UserID  int64
	AdminID int64
	// ByAdmin is set when an already authenticated admin created the account.
	ByAdmin bool
}

// LoginInput carries the login form. Identifier is an email for users and a
// username for admins.
type LoginInput struct {
	Role       string
	Identifier string
	Password   string
}

// AuthService registers accounts and checks credentials.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput, current domain.Identity) (*RegisterResult, error)
	Login(ctx context.Context, in LoginInput) (domain.Identity, error)
}

type authService struct {
	users       repository.UserRepository
	admins      repository.AdminRepository
	hasher      auth.Hasher
	adminSecret string
	logger      *logrus.Logger
}

// NewAuthService builds the auth service. An empty adminSecret disables admin
// bootstrap by secret; existing admins can still create admins.
func NewAuthService(users repository.UserRepository, admins repository.AdminRepository, hasher auth.Hasher, adminSecret string, logger *logrus.Logger) AuthService {
	if logger == nil {
		logger = logrus.New()
	}
	return &authService{
		users:       users,
		admins:      admins,
		hasher:      hasher,
		adminSecret: strings.TrimSpace(adminSecret),
		logger:      logger,
	}
}

func (s *authService) Register(ctx context.Context, in RegisterInput, current domain.Identity) (*RegisterResult, error) {
	role := strings.TrimSpace(in.Role)

	var (
		res *RegisterResult
		err error
	)
	switch domain.Role(role) {
	case domain.RoleUser:
		res, err = s.registerUser(ctx, in)
	case domain.RoleAdmin:
		res, err = s.registerAdmin(ctx, in, current)
	default:
		err = ErrInvalidRole
	}

	outcome := outcomeFor(err)
	metrics.RecordAuthAttempt("register", roleLabel(role), outcome)
	entry := s.logger.WithFields(logrus.Fields{"op": "register", "role": roleLabel(role), "outcome": outcome})
	if err != nil {
		if outcome == metrics.OutcomeError {
			entry.WithError(err).Error("registration failed")
		} else {
			entry.Warn("registration rejected")
		}
		return nil, err
	}
	entry.Info("registration complete")
	return res, nil
}

func (s *authService) registerUser(ctx context.Context, in RegisterInput) (*RegisterResult, error) {
	name := strings.TrimSpace(in.Name)
	email := normalizeEmail(in.Email)
	password := strings.TrimSpace(in.Password)
	if name == "" || email == "" || password == "" {
		return nil, fmt.Errorf("%w: name, email and password are required", ErrValidation)
	}

	hash, err := s.hashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
	}
	if _, err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailExists
		}
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	return &RegisterResult{Role: domain.RoleUser, UserID: user.ID}, nil
}

func (s *authService) registerAdmin(ctx context.Context, in RegisterInput, current domain.Identity) (*RegisterResult, error) {
	byAdmin := current.IsAdmin()
	if !byAdmin && !s.secretMatches(in.AdminSecret) {
		return nil, ErrForbidden
	}

	username := strings.TrimSpace(in.Username)
	password := strings.TrimSpace(in.Password)
	if username == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password are required", ErrValidation)
	}

	hash, err := s.hashPassword(password)
	if err != nil {
		return nil, err
	}

	admin := &domain.Admin{
		Username:     username,
		PasswordHash: hash,
	}
	if _, err := s.admins.Create(ctx, admin); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrAdminExists
		}
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	return &RegisterResult{Role: domain.RoleAdmin, AdminID: admin.ID, ByAdmin: byAdmin}, nil
}

func (s *authService) hashPassword(password string) (string, error) {
	hash, err := s.hasher.Hash(password)
	if errors.Is(err, auth.ErrPasswordTooLong) {
		return "", ErrPasswordTooLong
	}
	return hash, err
}

func (s *authService) secretMatches(provided string) bool {
	provided = strings.TrimSpace(provided)
	if s.adminSecret == "" || provided == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(provided), []byte(s.adminSecret)) == 1
}

func (s *authService) Login(ctx context.Context, in LoginInput) (domain.Identity, error) {
	role := strings.TrimSpace(in.Role)

	var (
		identity domain.Identity
		err      error
	)
	switch domain.Role(role) {
	case domain.RoleUser:
		identity, err = s.loginUser(ctx, in)
	case domain.RoleAdmin:
		identity, err = s.loginAdmin(ctx, in)
	default:
		err = ErrInvalidRole
	}

	outcome := outcomeFor(err)
	metrics.RecordAuthAttempt("login", roleLabel(role), outcome)
	entry := s.logger.WithFields(logrus.Fields{"op": "login", "role": roleLabel(role), "outcome": outcome})
	if err != nil {
		switch {
		case outcome == metrics.OutcomeError:
			entry.WithError(err).Error("login failed")
		case errors.Is(err, ErrInvalidCredentials):
			entry.WithField("reason", err.Error()).Warn("login rejected")
		default:
			entry.Warn("login rejected")
		}
		return domain.Anonymous(), err
	}
	entry.Info("login succeeded")
	return identity, nil
}

// loginUser matches the email case-insensitively.
func (s *authService) loginUser(ctx context.Context, in LoginInput) (domain.Identity, error) {
	email := normalizeEmail(in.Identifier)
	password := strings.TrimSpace(in.Password)
	if email == "" || password == "" {
		return domain.Identity{}, fmt.Errorf("%w: empty email or password", ErrInvalidCredentials)
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.Identity{}, fmt.Errorf("%w: unknown email", ErrInvalidCredentials)
		}
		return domain.Identity{}, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return domain.Identity{}, fmt.Errorf("%w: wrong password", ErrInvalidCredentials)
	}
	return domain.UserIdentity(user.ID, user.Name), nil
}

// loginAdmin matches the username exactly; admin usernames are case sensitive.
func (s *authService) loginAdmin(ctx context.Context, in LoginInput) (domain.Identity, error) {
	username := strings.TrimSpace(in.Identifier)
	password := strings.TrimSpace(in.Password)
	if username == "" || password == "" {
		return domain.Identity{}, fmt.Errorf("%w: empty username or password", ErrInvalidCredentials)
	}

	admin, err := s.admins.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.Identity{}, fmt.Errorf("%w: unknown admin username", ErrInvalidCredentials)
		}
		return domain.Identity{}, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	if !s.hasher.Verify(password, admin.PasswordHash) {
		return domain.Identity{}, fmt.Errorf("%w: wrong password", ErrInvalidCredentials)
	}
	return domain.AdminIdentity(admin.ID), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// roleLabel keeps arbitrary client input out of metric labels and logs.
func roleLabel(role string) string {
	switch domain.Role(role) {
	case domain.RoleUser, domain.RoleAdmin:
		return role
	default:
		return "other"
	}
}

func outcomeFor(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeSuccess
	case errors.Is(err, ErrValidation):
		return metrics.OutcomeValidation
	case errors.Is(err, ErrEmailExists), errors.Is(err, ErrAdminExists):
		return metrics.OutcomeDuplicate
	case errors.Is(err, ErrForbidden):
		return metrics.OutcomeForbidden
	case errors.Is(err, ErrInvalidCredentials):
		return metrics.OutcomeInvalidCredentials
	case errors.Is(err, ErrInvalidRole):
		return metrics.OutcomeInvalidRole
	default:
		return metrics.OutcomeError
	}
}

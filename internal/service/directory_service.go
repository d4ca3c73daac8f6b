package service

import (
	"context"
	"fmt"

	"softveda-site/internal/domain"
	"softveda-site/internal/repository"
)

// DirectoryService lists accounts for the admin dashboard. Callers are
// expected to sit behind the admin guard.
type DirectoryService interface {
	ListUsers(ctx context.Context) ([]domain.User, error)
	ListAdmins(ctx context.Context) ([]domain.Admin, error)
}

type directoryService struct {
	users  repository.UserRepository
	admins repository.AdminRepository
}

func NewDirectoryService(users repository.UserRepository, admins repository.AdminRepository) DirectoryService {
	return &directoryService{users: users, admins: admins}
}

func (s *directoryService) ListUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	out := make([]domain.User, len(users))
	for i := range users {
		out[i] = sanitizeUser(users[i])
	}
	return out, nil
}

func (s *directoryService) ListAdmins(ctx context.Context) ([]domain.Admin, error) {
	admins, err := s.admins.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	out := make([]domain.Admin, len(admins))
	for i := range admins {
		out[i] = sanitizeAdmin(admins[i])
	}
	return out, nil
}

func sanitizeUser(user domain.User) domain.User {
	return domain.User{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}
}

func sanitizeAdmin(admin domain.Admin) domain.Admin {
	return domain.Admin{
		ID:        admin.ID,
		Username:  admin.Username,
		CreatedAt: admin.CreatedAt,
	}
}

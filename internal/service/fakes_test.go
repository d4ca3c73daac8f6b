package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"softveda-site/internal/domain"
	"softveda-site/internal/repository"
)

var errDBDown = errors.New("db down")

type fakeUsersRepo struct {
	mu     sync.Mutex
	nextID int64
	users  []domain.User
	err    error
}

func (f *fakeUsersRepo) Create(_ context.Context, user *domain.User) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return 0, f.err
	}
	for _, u := range f.users {
		if strings.EqualFold(u.Email, user.Email) {
			return 0, repository.ErrDuplicate
		}
	}
	f.nextID++
	user.ID = f.nextID
	user.CreatedAt = time.Now()
	f.users = append(f.users, *user)
	return user.ID, nil
}

func (f *fakeUsersRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	for _, u := range f.users {
		if strings.ToLower(u.Email) == email {
			user := u
			return &user, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUsersRepo) List(context.Context) ([]domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return append([]domain.User{}, f.users...), nil
}

type fakeAdminsRepo struct {
	mu     sync.Mutex
	nextID int64
	admins []domain.Admin
	err    error
}

func (f *fakeAdminsRepo) Create(_ context.Context, admin *domain.Admin) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return 0, f.err
	}
	for _, a := range f.admins {
		if a.Username == admin.Username {
			return 0, repository.ErrDuplicate
		}
	}
	f.nextID++
	admin.ID = f.nextID
	admin.CreatedAt = time.Now()
	f.admins = append(f.admins, *admin)
	return admin.ID, nil
}

func (f *fakeAdminsRepo) GetByUsername(_ context.Context, username string) (*domain.Admin, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	for _, a := range f.admins {
		if a.Username == username {
			admin := a
			return &admin, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeAdminsRepo) List(context.Context) ([]domain.Admin, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return append([]domain.Admin{}, f.admins...), nil
}

type fakeContactsRepo struct {
	mu       sync.Mutex
	nextID   int64
	contacts []domain.Contact
	err      error
}

func (f *fakeContactsRepo) Create(_ context.Context, contact *domain.Contact) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return 0, f.err
	}
	f.nextID++
	contact.ID = f.nextID
	contact.CreatedAt = time.Now()
	f.contacts = append(f.contacts, *contact)
	return contact.ID, nil
}

func (f *fakeContactsRepo) Get(_ context.Context, id int64) (*domain.Contact, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.contacts {
		if c.ID == id {
			contact := c
			return &contact, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeContactsRepo) List(context.Context) ([]domain.Contact, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return append([]domain.Contact{}, f.contacts...), nil
}

func (f *fakeContactsRepo) ListUnarchived(context.Context) ([]domain.Contact, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []domain.Contact{}
	for _, c := range f.contacts {
		if c.ArchivedAt == nil {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeContactsRepo) MarkArchived(_ context.Context, id int64, location string, archivedAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.contacts {
		if f.contacts[i].ID == id {
			f.contacts[i].ArchiveLocation = location
			f.contacts[i].ArchivedAt = &archivedAt
			return nil
		}
	}
	return repository.ErrNotFound
}

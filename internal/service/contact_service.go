package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"softveda-site/internal/domain"
	"softveda-site/internal/metrics"
	"softveda-site/internal/repository"
)

// ContactInput is the public contact form.
type ContactInput struct {
	Name    string
	Email   string
	Subject string
	Message string
}

// ContactService stores contact form submissions and tracks their archive state.
type ContactService interface {
	Submit(ctx context.Context, in ContactInput) (*domain.Contact, error)
	Get(ctx context.Context, id int64) (*domain.Contact, error)
	List(ctx context.Context) ([]domain.Contact, error)
	ListUnarchived(ctx context.Context) ([]domain.Contact, error)
	MarkArchived(ctx context.Context, id int64, location string) error
}

type contactService struct {
	contacts repository.ContactRepository
}

func NewContactService(contacts repository.ContactRepository) ContactService {
	return &contactService{contacts: contacts}
}

func (s *contactService) Submit(ctx context.Context, in ContactInput) (*domain.Contact, error) {
	contact := &domain.Contact{
		Name:    strings.TrimSpace(in.Name),
		Email:   normalizeEmail(in.Email),
		Subject: strings.TrimSpace(in.Subject),
		Message: strings.TrimSpace(in.Message),
	}
	if contact.Email == "" || contact.Message == "" {
		metrics.RecordContactSubmission(metrics.OutcomeValidation)
		return nil, fmt.Errorf("%w: email and message are required", ErrValidation)
	}

	if _, err := s.contacts.Create(ctx, contact); err != nil {
		metrics.RecordContactSubmission(metrics.OutcomeError)
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	metrics.RecordContactSubmission(metrics.OutcomeSuccess)
	return contact, nil
}

func (s *contactService) Get(ctx context.Context, id int64) (*domain.Contact, error) {
	return s.contacts.Get(ctx, id)
}

func (s *contactService) List(ctx context.Context) ([]domain.Contact, error) {
	contacts, err := s.contacts.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return contacts, nil
}

func (s *contactService) ListUnarchived(ctx context.Context) ([]domain.Contact, error) {
	return s.contacts.ListUnarchived(ctx)
}

func (s *contactService) MarkArchived(ctx context.Context, id int64, location string) error {
	return s.contacts.MarkArchived(ctx, id, location, time.Now())
}

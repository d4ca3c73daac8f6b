// Package archive copies contact submissions to object storage in the background.
package archive

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"softveda-site/internal/domain"
	"softveda-site/internal/metrics"
	"softveda-site/internal/service"
	"softveda-site/internal/storage"
)

// ErrNotStarted is returned by Enqueue and Resume before Start.
var ErrNotStarted = errors.New("archive manager not started")

// Manager schedules archive uploads for contact submissions.
type Manager interface {
	Start(ctx context.Context) error
	Shutdown()
	Enqueue(ctx context.Context, contactID int64) error
	// Resume schedules every submission that has not been archived yet.
	Resume(ctx context.Context) error
}

type Config struct {
	Bucket        string
	KeyPrefix     string
	MaxConcurrent int
	UploadTimeout time.Duration
	Logger        *logrus.Logger
}

type manager struct {
	cfg      Config
	contacts service.ContactService
	storage  storage.Service

	sem    chan struct{}
	wg     sync.WaitGroup
	ctx    context.Context
	cancel context.CancelFunc
	mu     sync.Mutex
	active map[int64]struct{}
}

func NewManager(cfg Config, contacts service.ContactService, store storage.Service) Manager {
	if cfg.MaxConcurrent <= 0 {
		cfg.MaxConcurrent = 2
	}
	if cfg.UploadTimeout <= 0 {
		cfg.UploadTimeout = 30 * time.Second
	}
	if cfg.Logger == nil {
		cfg.Logger = logrus.New()
	}
	cfg.KeyPrefix = strings.Trim(cfg.KeyPrefix, "/")
	return &manager{
		cfg:      cfg,
		contacts: contacts,
		storage:  store,
		sem:      make(chan struct{}, cfg.MaxConcurrent),
		active:   make(map[int64]struct{}),
	}
}

func (m *manager) Start(ctx context.Context) error {
	if m.cfg.Bucket == "" {
		return fmt.Errorf("archive bucket is required")
	}
	if m.storage == nil {
		return fmt.Errorf("archive storage is required")
	}

	m.mu.Lock()
	m.ctx, m.cancel = context.WithCancel(ctx)
	m.mu.Unlock()
	m.cfg.Logger.Infof("contact archiver started, bucket: %s", m.cfg.Bucket)
	return nil
}

func (m *manager) Shutdown() {
	// cancel under the lock so spawn never adds to the WaitGroup after Wait
	m.mu.Lock()
	if m.cancel != nil {
		m.cancel()
	}
	m.mu.Unlock()
	m.wg.Wait()
	m.cfg.Logger.Info("contact archiver stopped")
}

func (m *manager) Enqueue(ctx context.Context, contactID int64) error {
	if m.runContext() == nil {
		return ErrNotStarted
	}
	contact, err := m.contacts.Get(ctx, contactID)
	if err != nil {
		return err
	}
	m.spawn(*contact)
	return nil
}

func (m *manager) Resume(ctx context.Context) error {
	if m.runContext() == nil {
		return ErrNotStarted
	}
	contacts, err := m.contacts.ListUnarchived(ctx)
	if err != nil {
		return err
	}
	for i := range contacts {
		m.spawn(contacts[i])
	}
	if len(contacts) > 0 {
		m.cfg.Logger.Infof("resumed %d pending contact archive jobs", len(contacts))
	}
	return nil
}

func (m *manager) runContext() context.Context {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ctx
}

// spawn starts a job unless one is already running for the same submission.
func (m *manager) spawn(contact domain.Contact) {
	if contact.ArchivedAt != nil {
		return
	}

	m.mu.Lock()
	if _, busy := m.active[contact.ID]; busy || m.ctx == nil || m.ctx.Err() != nil {
		m.mu.Unlock()
		return
	}
	m.active[contact.ID] = struct{}{}
	runCtx := m.ctx
	m.wg.Add(1)
	m.mu.Unlock()

	go func() {
		defer m.wg.Done()
		defer m.unregister(contact.ID)
		select {
		case <-runCtx.Done():
			return
		case m.sem <- struct{}{}:
			defer func() { <-m.sem }()
			m.archive(runCtx, contact)
		}
	}()
}

func (m *manager) unregister(id int64) {
	m.mu.Lock()
	delete(m.active, id)
	m.mu.Unlock()
}

func (m *manager) archive(ctx context.Context, contact domain.Contact) {
	log := m.cfg.Logger.WithField("contact_id", contact.ID)

	uploadCtx, cancel := context.WithTimeout(ctx, m.cfg.UploadTimeout)
	defer cancel()

	body, err := json.Marshal(newRecord(contact))
	if err != nil {
		metrics.RecordArchiveJob(metrics.OutcomeError)
		log.WithError(err).Error("encode contact archive")
		return
	}

	location, err := m.storage.PutObject(uploadCtx, bytes.NewReader(body), storage.PutOptions{
		Bucket:      m.cfg.Bucket,
		Key:         m.objectKey(contact),
		ContentType: "application/json",
	})
	if err != nil {
		metrics.RecordArchiveJob(metrics.OutcomeError)
		log.WithError(err).Warn("upload contact archive")
		return
	}

	if err := m.contacts.MarkArchived(ctx, contact.ID, location); err != nil {
		metrics.RecordArchiveJob(metrics.OutcomeError)
		log.WithError(err).Warn("mark contact archived")
		return
	}

	metrics.RecordArchiveJob(metrics.OutcomeSuccess)
	log.WithField("location", location).Info("contact archived")
}

func (m *manager) objectKey(contact domain.Contact) string {
	created := contact.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}
	return path.Join(m.cfg.KeyPrefix, created.UTC().Format("2006/01"), uuid.NewString()+".json")
}

type record struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

func newRecord(contact domain.Contact) record {
	return record{
		ID:        contact.ID,
		Name:      contact.Name,
		Email:     contact.Email,
		Subject:   contact.Subject,
		Message:   contact.Message,
		CreatedAt: contact.CreatedAt,
	}
}

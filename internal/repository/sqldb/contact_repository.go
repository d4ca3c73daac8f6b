package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"softveda-site/internal/domain"
	"softveda-site/internal/repository"
)

const contactColumns = `id, name, email, subject, message, created_at, archive_location, archived_at`

type ContactRepository struct {
	db *DB
}

func NewContactRepository(db *DB) repository.ContactRepository {
	return &ContactRepository{db: db}
}

func (r *ContactRepository) Create(ctx context.Context, contact *domain.Contact) (int64, error) {
	contact.CreatedAt = time.Now().UTC()

	var id int64
	err := r.db.queryRowContext(ctx, `
INSERT INTO contacts (name, email, subject, message, created_at)
VALUES (?, ?, ?, ?, ?)
RETURNING id`,
		contact.Name,
		contact.Email,
		contact.Subject,
		contact.Message,
		contact.CreatedAt,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert contact: %w", err)
	}

	contact.ID = id
	return id, nil
}

func (r *ContactRepository) Get(ctx context.Context, id int64) (*domain.Contact, error) {
	row := r.db.queryRowContext(ctx, `
SELECT `+contactColumns+`
FROM contacts
WHERE id = ?`,
		id,
	)
	return scanContact(row)
}

func (r *ContactRepository) List(ctx context.Context) ([]domain.Contact, error) {
	return r.list(ctx, `
SELECT `+contactColumns+`
FROM contacts
ORDER BY id DESC`)
}

func (r *ContactRepository) ListUnarchived(ctx context.Context) ([]domain.Contact, error) {
	return r.list(ctx, `
SELECT `+contactColumns+`
FROM contacts
WHERE archived_at IS NULL
ORDER BY id ASC`)
}

func (r *ContactRepository) MarkArchived(ctx context.Context, id int64, location string, archivedAt time.Time) error {
	res, err := r.db.execContext(ctx, `
UPDATE contacts
SET archive_location = ?, archived_at = ?
WHERE id = ?`,
		location,
		archivedAt.UTC(),
		id,
	)
	if err != nil {
		return fmt.Errorf("mark contact archived: %w", err)
	}
	aff, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("contact archive rows affected: %w", err)
	}
	if aff == 0 {
		return fmt.Errorf("contact %w", repository.ErrNotFound)
	}
	return nil
}

func (r *ContactRepository) list(ctx context.Context, query string) ([]domain.Contact, error) {
	rows, err := r.db.queryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query contacts: %w", err)
	}
	defer rows.Close()

	contacts := []domain.Contact{}
	for rows.Next() {
		contact, err := scanContact(rows)
		if err != nil {
			return nil, err
		}
		contacts = append(contacts, *contact)
	}

	return contacts, rows.Err()
}

func scanContact(scanner interface {
	Scan(dest ...any) error
}) (*domain.Contact, error) {
	var (
		contact    domain.Contact
		archivedAt sql.NullTime
	)
	if err := scanner.Scan(
		&contact.ID,
		&contact.Name,
		&contact.Email,
		&contact.Subject,
		&contact.Message,
		&contact.CreatedAt,
		&contact.ArchiveLocation,
		&archivedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("contact %w", repository.ErrNotFound)
		}
		return nil, fmt.Errorf("scan contact: %w", err)
	}

	if archivedAt.Valid {
		t := archivedAt.Time
		contact.ArchivedAt = &t
	}
	return &contact, nil
}

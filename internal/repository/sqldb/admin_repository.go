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

type AdminRepository struct {
	db *DB
}

func NewAdminRepository(db *DB) repository.AdminRepository {
	return &AdminRepository{db: db}
}

func (r *AdminRepository) Create(ctx context.Context, admin *domain.Admin) (int64, error) {
	admin.CreatedAt = time.Now().UTC()

	var id int64
	err := r.db.queryRowContext(ctx, `
INSERT INTO admins (username, password_hash, created_at)
VALUES (?, ?, ?)
RETURNING id`,
		admin.Username,
		admin.PasswordHash,
		admin.CreatedAt,
	).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("admin username %w", repository.ErrDuplicate)
		}
		return 0, fmt.Errorf("insert admin: %w", err)
	}

	admin.ID = id
	return id, nil
}

// GetByUsername matches the username exactly, case included.
func (r *AdminRepository) GetByUsername(ctx context.Context, username string) (*domain.Admin, error) {
	row := r.db.queryRowContext(ctx, `
SELECT id, username, password_hash, created_at
FROM admins
WHERE username = ?
LIMIT 1`,
		username,
	)

	var admin domain.Admin
	if err := row.Scan(&admin.ID, &admin.Username, &admin.PasswordHash, &admin.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("admin %w", repository.ErrNotFound)
		}
		return nil, fmt.Errorf("scan admin: %w", err)
	}
	return &admin, nil
}

func (r *AdminRepository) List(ctx context.Context) ([]domain.Admin, error) {
	rows, err := r.db.queryContext(ctx, `
SELECT id, username, created_at
FROM admins
ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("query admins: %w", err)
	}
	defer rows.Close()

	admins := []domain.Admin{}
	for rows.Next() {
		var admin domain.Admin
		if err := rows.Scan(&admin.ID, &admin.Username, &admin.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan admin: %w", err)
		}
		admins = append(admins, admin)
	}

	return admins, rows.Err()
}

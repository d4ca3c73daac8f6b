package domain

import "time"

// Admin represents an account allowed into the admin dashboard.
type Admin struct {
	ID           int64
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}

package domain

import "time"

// Contact captures a submission of the public contact form.
type Contact struct {
	ID              int64
	Name            string
	Email           string
	Subject         string
	Message         string
	CreatedAt       time.Time
	ArchiveLocation string
	ArchivedAt      *time.Time
}

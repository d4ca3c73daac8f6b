package http

import (
	"errors"
	"net/http"
	"time"

	"softveda-site/internal/domain"
	"softveda-site/internal/service"
)

type UserResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	CreatedAt string `json:"created_at"`
}

type AdminResponse struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	CreatedAt string `json:"created_at"`
}

type ContactResponse struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	Email           string  `json:"email"`
	Subject         string  `json:"subject"`
	Message         string  `json:"message"`
	CreatedAt       string  `json:"created_at"`
	ArchiveLocation string  `json:"archive_location,omitempty"`
	ArchivedAt      *string `json:"archived_at,omitempty"`
}

type MeResponse struct {
	Role string `json:"role"`
	ID   int64  `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
}

func userToResponse(user domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		CreatedAt: user.CreatedAt.Format(time.RFC3339),
	}
}

func adminToResponse(admin domain.Admin) AdminResponse {
	return AdminResponse{
		ID:        admin.ID,
		Username:  admin.Username,
		CreatedAt: admin.CreatedAt.Format(time.RFC3339),
	}
}

func contactToResponse(contact domain.Contact) ContactResponse {
	resp := ContactResponse{
		ID:              contact.ID,
		Name:            contact.Name,
		Email:           contact.Email,
		Subject:         contact.Subject,
		Message:         contact.Message,
		CreatedAt:       contact.CreatedAt.Format(time.RFC3339),
		ArchiveLocation: contact.ArchiveLocation,
	}
	if contact.ArchivedAt != nil {
		v := contact.ArchivedAt.Format(time.RFC3339)
		resp.ArchivedAt = &v
	}
	return resp
}

// statusFor maps service errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrValidation),
		errors.Is(err, service.ErrEmailExists),
		errors.Is(err, service.ErrAdminExists),
		errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrInvalidRole):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// messageFor returns the text shown to the client. Diagnostic detail stays in the logs.
func messageFor(err error) string {
	switch {
	case errors.Is(err, service.ErrPasswordTooLong):
		return "Password too long"
	case errors.Is(err, service.ErrValidation):
		return "Missing fields"
	case errors.Is(err, service.ErrEmailExists):
		return "Email already exists"
	case errors.Is(err, service.ErrAdminExists):
		return "Admin exists"
	case errors.Is(err, service.ErrForbidden):
		return "Admin request denied"
	case errors.Is(err, service.ErrInvalidCredentials):
		return "Invalid credentials"
	case errors.Is(err, service.ErrInvalidRole):
		return "Invalid role"
	default:
		return "Internal server error"
	}
}

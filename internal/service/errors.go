package service

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation indicates a required field is missing.
	ErrValidation = errors.New("missing required fields")
	// ErrEmailExists is returned when registering an email that is already taken.
	ErrEmailExists = errors.New("email already exists")
	// ErrAdminExists is returned when registering an admin username that is already taken.
	ErrAdminExists = errors.New("admin already exists")
	// ErrForbidden indicates admin registration without a valid secret or admin session.
	ErrForbidden = errors.New("admin request denied")
	// ErrInvalidCredentials indicates that provided login credentials are incorrect.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidRole is returned for a role discriminator other than user or admin.
	ErrInvalidRole = errors.New("invalid role")
	// ErrPasswordTooLong is a validation failure for passwords bcrypt cannot hash.
	ErrPasswordTooLong = fmt.Errorf("%w: password longer than 72 bytes", ErrValidation)
	// ErrStoreUnavailable wraps failures of the underlying storage.
	ErrStoreUnavailable = errors.New("store unavailable")
)

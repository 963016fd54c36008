package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"hireup/internal/errors"
)

// Store is the persistence boundary of the API. Implementations return
// *errors.AppError values for conditions the caller reports to users.
type Store interface {
	CreateUser(ctx context.Context, user *User) error
	GetUser(ctx context.Context, id uuid.UUID) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	UpdateUser(ctx context.Context, user *User) error
	ConnectGitHub(ctx context.Context, userID uuid.UUID, link GitHubLink) error

	AddScan(ctx context.Context, entry *ScanEntry) error
	// ListScans returns the user's history in insertion order.
	ListScans(ctx context.Context, userID uuid.UUID) ([]ScanEntry, error)
	DeleteScan(ctx context.Context, userID, scanID uuid.UUID) error

	SaveJob(ctx context.Context, job *SavedJob) error
	UpdateJobStatus(ctx context.Context, userID, jobID uuid.UUID, status string) (*SavedJob, error)

	Ping(ctx context.Context) error
	Close()
}

// Open returns the store selected by driver.
func Open(ctx context.Context, driver, url string, maxConns int32) (Store, error) {
	switch driver {
	case "", "memory":
		return NewMemoryStore(), nil
	case "postgres":
		return NewPostgresStore(ctx, url, maxConns)
	default:
		return nil, errors.NewConfigError(errors.ErrCodeInvalidConfig,
			fmt.Sprintf("unknown database driver %q", driver), nil)
	}
}

func errUserExists() error {
	return errors.NewValidationError(errors.ErrCodeUserExists, "User already exists", nil)
}

func errEmailInUse() error {
	return errors.NewValidationError(errors.ErrCodeEmailInUse, "Email already in use", nil)
}

func errUserNotFound() error {
	return errors.NewNotFoundError(errors.ErrCodeNotFound, "User not found", nil)
}

func errJobNotFound() error {
	return errors.NewNotFoundError(errors.ErrCodeNotFound, "Job not found", nil)
}

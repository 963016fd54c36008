package store

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore keeps everything in process memory. It is the default backend
// and the one tests use.
type MemoryStore struct {
	mu      sync.RWMutex
	users   map[uuid.UUID]*User
	byEmail map[string]uuid.UUID
	scans   map[uuid.UUID][]ScanEntry
	jobs    map[uuid.UUID][]SavedJob
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:   make(map[uuid.UUID]*User),
		byEmail: make(map[string]uuid.UUID),
		scans:   make(map[uuid.UUID][]ScanEntry),
		jobs:    make(map[uuid.UUID][]SavedJob),
	}
}

func emailKey(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (m *MemoryStore) CreateUser(_ context.Context, user *User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := emailKey(user.Email)
	if _, exists := m.byEmail[key]; exists {
		return errUserExists()
	}

	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	stored := *user
	m.users[user.ID] = &stored
	m.byEmail[key] = user.ID
	return nil
}

func (m *MemoryStore) GetUser(_ context.Context, id uuid.UUID) (*User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	user, ok := m.users[id]
	if !ok {
		return nil, errUserNotFound()
	}
	copied := *user
	return &copied, nil
}

func (m *MemoryStore) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	m.mu.RLock()
	id, ok := m.byEmail[emailKey(email)]
	m.mu.RUnlock()
	if !ok {
		return nil, errUserNotFound()
	}
	return m.GetUser(ctx, id)
}

func (m *MemoryStore) UpdateUser(_ context.Context, user *User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	current, ok := m.users[user.ID]
	if !ok {
		return errUserNotFound()
	}

	newKey := emailKey(user.Email)
	oldKey := emailKey(current.Email)
	if newKey != oldKey {
		if owner, taken := m.byEmail[newKey]; taken && owner != user.ID {
			return errEmailInUse()
		}
		delete(m.byEmail, oldKey)
		m.byEmail[newKey] = user.ID
	}

	current.Name = user.Name
	current.Email = user.Email
	if user.PasswordHash != "" {
		current.PasswordHash = user.PasswordHash
	}
	return nil
}

func (m *MemoryStore) ConnectGitHub(_ context.Context, userID uuid.UUID, link GitHubLink) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	user, ok := m.users[userID]
	if !ok {
		return errUserNotFound()
	}
	user.GitHub = &link
	return nil
}

func (m *MemoryStore) AddScan(_ context.Context, entry *ScanEntry) error {
	entry.Normalize()

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.users[entry.UserID]; !ok {
		return errUserNotFound()
	}
	m.scans[entry.UserID] = append(m.scans[entry.UserID], *entry)
	return nil
}

func (m *MemoryStore) ListScans(_ context.Context, userID uuid.UUID) ([]ScanEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return slices.Clone(m.scans[userID]), nil
}

func (m *MemoryStore) DeleteScan(_ context.Context, userID, scanID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.scans[userID] = slices.DeleteFunc(m.scans[userID], func(e ScanEntry) bool {
		return e.ID == scanID
	})
	return nil
}

func (m *MemoryStore) SaveJob(_ context.Context, job *SavedJob) error {
	prepareJob(job)

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.users[job.UserID]; !ok {
		return errUserNotFound()
	}
	m.jobs[job.UserID] = append(m.jobs[job.UserID], *job)
	return nil
}

func (m *MemoryStore) UpdateJobStatus(_ context.Context, userID, jobID uuid.UUID, status string) (*SavedJob, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	jobs := m.jobs[userID]
	for i := range jobs {
		if jobs[i].ID == jobID {
			jobs[i].Status = status
			updated := jobs[i]
			return &updated, nil
		}
	}
	return nil, errJobNotFound()
}

func (m *MemoryStore) Ping(context.Context) error { return nil }

func (m *MemoryStore) Close() {}

func prepareJob(job *SavedJob) {
	if job.ID == uuid.Nil {
		job.ID = uuid.New()
	}
	if job.Status == "" {
		job.Status = DefaultJobStatus
	}
	if job.SavedAt.IsZero() {
		job.SavedAt = time.Now().UTC()
	}
}

package store

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"hireup/internal/errors"
)

const uniqueViolation = "23505"

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id                  UUID PRIMARY KEY,
	name                TEXT NOT NULL,
	email               TEXT NOT NULL UNIQUE,
	password_hash       TEXT NOT NULL,
	github_username     TEXT,
	github_connected_at TIMESTAMPTZ,
	created_at          TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS scans (
	seq            BIGSERIAL,
	id             UUID PRIMARY KEY,
	user_id        UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	file_name      TEXT NOT NULL,
	scanned_at     TIMESTAMPTZ NOT NULL,
	score          INTEGER NOT NULL,
	checks_passed  INTEGER NOT NULL,
	word_count     INTEGER NOT NULL,
	match_score    INTEGER NOT NULL,
	skills         TEXT[] NOT NULL DEFAULT '{}',
	missing_skills TEXT[] NOT NULL DEFAULT '{}'
);

CREATE INDEX IF NOT EXISTS scans_user_seq_idx ON scans (user_id, seq);

CREATE TABLE IF NOT EXISTS saved_jobs (
	id       UUID PRIMARY KEY,
	user_id  UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	title    TEXT NOT NULL DEFAULT '',
	company  TEXT NOT NULL DEFAULT '',
	url      TEXT NOT NULL DEFAULT '',
	status   TEXT NOT NULL,
	saved_at TIMESTAMPTZ NOT NULL
);
`

// PostgresStore persists data in PostgreSQL through a pgx connection pool.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore connects, verifies the connection and creates the schema
// if it does not exist yet.
func NewPostgresStore(ctx context.Context, databaseURL string, maxConns int32) (*PostgresStore, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, errors.NewConfigError(errors.ErrCodeInvalidConfig, "invalid database URL", err)
	}
	if maxConns > 0 {
		cfg.MaxConns = maxConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := &PostgresStore{pool: pool}
	if err := s.EnsureSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return s, nil
}

// EnsureSchema creates the tables the store needs.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

func (s *PostgresStore) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func (s *PostgresStore) CreateUser(ctx context.Context, user *User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	_, err := s.pool.Exec(ctx,
		`INSERT INTO users (id, name, email, password_hash, created_at)
		 VALUES ($1, $2, lower($3), $4, $5)`,
		user.ID, user.Name, user.Email, user.PasswordHash, user.CreatedAt,
	)
	if isUniqueViolation(err) {
		return errUserExists()
	}
	if err != nil {
		return storageError("failed to create user", err)
	}
	return nil
}

const selectUser = `SELECT id, name, email, password_hash, github_username, github_connected_at, created_at FROM users`

func (s *PostgresStore) GetUser(ctx context.Context, id uuid.UUID) (*User, error) {
	return s.scanUser(s.pool.QueryRow(ctx, selectUser+` WHERE id = $1`, id))
}

func (s *PostgresStore) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	return s.scanUser(s.pool.QueryRow(ctx, selectUser+` WHERE email = lower($1)`, email))
}

func (s *PostgresStore) scanUser(row pgx.Row) (*User, error) {
	var (
		user        User
		ghUsername  *string
		ghConnected *time.Time
	)
	err := row.Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &ghUsername, &ghConnected, &user.CreatedAt)
	if stderrors.Is(err, pgx.ErrNoRows) {
		return nil, errUserNotFound()
	}
	if err != nil {
		return nil, storageError("failed to get user", err)
	}
	if ghUsername != nil {
		link := GitHubLink{Username: *ghUsername}
		if ghConnected != nil {
			link.ConnectedAt = *ghConnected
		}
		user.GitHub = &link
	}
	return &user, nil
}

func (s *PostgresStore) UpdateUser(ctx context.Context, user *User) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE users SET name = $2, email = lower($3),
		        password_hash = COALESCE(NULLIF($4, ''), password_hash)
		  WHERE id = $1`,
		user.ID, user.Name, user.Email, user.PasswordHash,
	)
	if isUniqueViolation(err) {
		return errEmailInUse()
	}
	if err != nil {
		return storageError("failed to update user", err)
	}
	if tag.RowsAffected() == 0 {
		return errUserNotFound()
	}
	return nil
}

func (s *PostgresStore) ConnectGitHub(ctx context.Context, userID uuid.UUID, link GitHubLink) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE users SET github_username = $2, github_connected_at = $3 WHERE id = $1`,
		userID, link.Username, link.ConnectedAt,
	)
	if err != nil {
		return storageError("failed to connect github account", err)
	}
	if tag.RowsAffected() == 0 {
		return errUserNotFound()
	}
	return nil
}

func (s *PostgresStore) AddScan(ctx context.Context, entry *ScanEntry) error {
	entry.Normalize()

	_, err := s.pool.Exec(ctx,
		`INSERT INTO scans (id, user_id, file_name, scanned_at, score, checks_passed,
		                    word_count, match_score, skills, missing_skills)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		entry.ID, entry.UserID, entry.FileName, entry.Date, entry.Score, entry.TotalChecksPassed,
		entry.WordCount, entry.MatchScore, entry.Skills, entry.MissingSkills,
	)
	if err != nil {
		return storageError("failed to save scan", err)
	}
	return nil
}

func (s *PostgresStore) ListScans(ctx context.Context, userID uuid.UUID) ([]ScanEntry, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, user_id, file_name, scanned_at, score, checks_passed, word_count,
		        match_score, skills, missing_skills
		   FROM scans WHERE user_id = $1 ORDER BY seq`,
		userID,
	)
	if err != nil {
		return nil, storageError("failed to list scans", err)
	}

	entries, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (ScanEntry, error) {
		var e ScanEntry
		err := row.Scan(&e.ID, &e.UserID, &e.FileName, &e.Date, &e.Score, &e.TotalChecksPassed,
			&e.WordCount, &e.MatchScore, &e.Skills, &e.MissingSkills)
		return e, err
	})
	if err != nil {
		return nil, storageError("failed to read scans", err)
	}
	return entries, nil
}

func (s *PostgresStore) DeleteScan(ctx context.Context, userID, scanID uuid.UUID) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM scans WHERE id = $1 AND user_id = $2`, scanID, userID)
	if err != nil {
		return storageError("failed to delete scan", err)
	}
	return nil
}

func (s *PostgresStore) SaveJob(ctx context.Context, job *SavedJob) error {
	prepareJob(job)

	_, err := s.pool.Exec(ctx,
		`INSERT INTO saved_jobs (id, user_id, title, company, url, status, saved_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		job.ID, job.UserID, job.Title, job.Company, job.URL, job.Status, job.SavedAt,
	)
	if err != nil {
		return storageError("failed to save job", err)
	}
	return nil
}

func (s *PostgresStore) UpdateJobStatus(ctx context.Context, userID, jobID uuid.UUID, status string) (*SavedJob, error) {
	var job SavedJob
	err := s.pool.QueryRow(ctx,
		`UPDATE saved_jobs SET status = $3 WHERE id = $1 AND user_id = $2
		 RETURNING id, user_id, title, company, url, status, saved_at`,
		jobID, userID, status,
	).Scan(&job.ID, &job.UserID, &job.Title, &job.Company, &job.URL, &job.Status, &job.SavedAt)
	if stderrors.Is(err, pgx.ErrNoRows) {
		return nil, errJobNotFound()
	}
	if err != nil {
		return nil, storageError("failed to update job", err)
	}
	return &job, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return stderrors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

func storageError(message string, err error) error {
	return errors.NewStorageError(errors.ErrCodeStorageFailed, message, err)
}

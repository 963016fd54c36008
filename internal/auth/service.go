package auth

import (
	"context"
	stderrors "errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"hireup/internal/errors"
	"hireup/internal/store"
)

// RegisterRequest is the body of a registration call.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"min=6"`
}

// LoginRequest is the body of a login call.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ProfileUpdate changes the name and/or email of the current user. Empty
// fields are left unchanged.
type ProfileUpdate struct {
	Name  string `json:"name"`
	Email string `json:"email" validate:"omitempty,email"`
}

// PublicUser is the user shape returned to clients.
type PublicUser struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

// Session is a signed token and the user it belongs to.
type Session struct {
	Token string     `json:"token"`
	User  PublicUser `json:"user"`
}

var validationMessages = map[string]string{
	"Name.required":     "Name is required",
	"Email.required":    "Please enter a valid email",
	"Email.email":       "Please enter a valid email",
	"Password.min":      "Password must be at least 6 characters",
	"Password.required": "Password is required",
}

// Accounts implements registration, login and profile management.
type Accounts struct {
	store    store.Store
	hasher   *PasswordHasher
	tokens   *TokenService
	validate *validator.Validate
	now      func() time.Time
}

// NewAccounts wires the account service.
func NewAccounts(st store.Store, hasher *PasswordHasher, tokens *TokenService) *Accounts {
	return &Accounts{
		store:    st,
		hasher:   hasher,
		tokens:   tokens,
		validate: validator.New(),
		now:      time.Now,
	}
}

// Tokens returns the token service used for sessions.
func (a *Accounts) Tokens() *TokenService {
	return a.tokens
}

// Register creates a user and opens a session for it.
func (a *Accounts) Register(ctx context.Context, req RegisterRequest) (*Session, error) {
	req.Email = strings.TrimSpace(req.Email)
	if err := a.check(req); err != nil {
		return nil, err
	}

	hash, err := a.hasher.Hash(req.Password)
	if err != nil {
		return nil, errors.NewInternalError("PASSWORD_HASH_FAILED", "Failed to create user", err)
	}

	user := &store.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        strings.ToLower(req.Email),
		PasswordHash: hash,
		CreatedAt:    a.now().UTC(),
	}
	if err := a.store.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	return a.session(user)
}

// Login verifies credentials and opens a session. Unknown users and wrong
// passwords produce the same error.
func (a *Accounts) Login(ctx context.Context, req LoginRequest) (*Session, error) {
	if err := a.check(req); err != nil {
		return nil, err
	}

	user, err := a.store.GetUserByEmail(ctx, strings.TrimSpace(req.Email))
	if err != nil {
		if errors.HasCode(err, errors.ErrCodeNotFound) {
			return nil, invalidCredentials()
		}
		return nil, err
	}
	if !a.hasher.Verify(req.Password, user.PasswordHash) {
		return nil, invalidCredentials()
	}
	return a.session(user)
}

// Me returns the current user.
func (a *Accounts) Me(ctx context.Context, userID uuid.UUID) (*PublicUser, error) {
	user, err := a.store.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	public := toPublic(user)
	return &public, nil
}

// UpdateProfile applies a profile change for the current user.
func (a *Accounts) UpdateProfile(ctx context.Context, userID uuid.UUID, update ProfileUpdate) (*PublicUser, error) {
	if err := a.check(update); err != nil {
		return nil, err
	}

	user, err := a.store.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if name := strings.TrimSpace(update.Name); name != "" {
		user.Name = name
	}
	if email := strings.TrimSpace(update.Email); email != "" {
		user.Email = strings.ToLower(email)
	}
	user.PasswordHash = ""

	if err := a.store.UpdateUser(ctx, user); err != nil {
		return nil, err
	}
	public := toPublic(user)
	return &public, nil
}

// ConnectGitHub links a GitHub username to the current user.
func (a *Accounts) ConnectGitHub(ctx context.Context, userID uuid.UUID, username string) (*store.GitHubLink, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, errors.NewValidationError(errors.ErrCodeInvalidRequest, "GitHub username is required", nil)
	}
	link := store.GitHubLink{Username: username, ConnectedAt: a.now().UTC()}
	if err := a.store.ConnectGitHub(ctx, userID, link); err != nil {
		return nil, err
	}
	return &link, nil
}

func (a *Accounts) session(user *store.User) (*Session, error) {
	token, err := a.tokens.Generate(user.ID)
	if err != nil {
		return nil, errors.NewInternalError("TOKEN_FAILED", "Failed to generate token", err)
	}
	return &Session{Token: token, User: toPublic(user)}, nil
}

func (a *Accounts) check(req any) error {
	err := a.validate.Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if stderrors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		message, ok := validationMessages[fe.Field()+"."+fe.Tag()]
		if !ok {
			message = "Invalid " + strings.ToLower(fe.Field())
		}
		return errors.NewValidationError(errors.ErrCodeInvalidRequest, message, err).
			WithContext("field", fe.Field())
	}
	return errors.NewValidationError(errors.ErrCodeInvalidRequest, "Invalid request", err)
}

func invalidCredentials() error {
	return errors.NewAuthError(errors.ErrCodeInvalidCredentials, "Invalid email or password", nil)
}

func toPublic(user *store.User) PublicUser {
	return PublicUser{ID: user.ID, Name: user.Name, Email: user.Email}
}

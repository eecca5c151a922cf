// Package accounts keeps the registered user list and the current session.
package accounts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"stockboard/internal/observability"
	"stockboard/internal/storage"
)

// MinPasswordLength is the shortest accepted password.
const MinPasswordLength = 6

var (
	ErrMissingField     = errors.New("accounts: all fields are required")
	ErrPasswordMismatch = errors.New("accounts: passwords do not match")
	ErrPasswordTooShort = errors.New("accounts: password must be at least 6 characters")
	ErrDuplicateUser    = errors.New("accounts: username or email already registered")
	ErrUserNotFound     = errors.New("accounts: user not found")

	// ErrMalformedUsers means the stored list does not decode. Nothing is
	// written over it until it is repaired.
	ErrMalformedUsers = errors.New("accounts: stored user list is malformed")
)

// User is the persisted record. It never carries the password.
type User struct {
	Nombre        string `json:"nombre"`
	Apellidos     string `json:"apellidos"`
	Email         string `json:"email"`
	Telefono      string `json:"telefono"`
	Username      string `json:"username"`
	Rol           string `json:"rol"`
	FechaRegistro string `json:"fechaRegistro"`
}

// Registration is the sign-up form.
type Registration struct {
	Nombre          string `json:"nombre"`
	Apellidos       string `json:"apellidos"`
	Email           string `json:"email"`
	Telefono        string `json:"telefono"`
	Username        string `json:"username"`
	Rol             string `json:"rol"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// Session identifies the logged-in user for the life of the process.
type Session struct {
	Username  string    `json:"username"`
	LoginTime time.Time `json:"loginTime"`
}

// Directory registers and looks up users over a storage.Store.
type Directory struct {
	mu      sync.Mutex
	persist storage.Store
	key     string
	session *Session
	logger  observability.Logger
	now     func() time.Time
}

// Option configures a Directory.
type Option func(*Directory)

// WithUsersKey overrides the persistence key (default usuarios).
func WithUsersKey(key string) Option {
	return func(d *Directory) {
		if key != "" {
			d.key = key
		}
	}
}

func WithLogger(l observability.Logger) Option {
	return func(d *Directory) {
		if l != nil {
			d.logger = l
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(d *Directory) {
		if now != nil {
			d.now = now
		}
	}
}

// NewDirectory returns a directory over persist.
func NewDirectory(persist storage.Store, opts ...Option) *Directory {
	d := &Directory{
		persist: persist,
		key:     storage.DefaultUsersKey,
		logger:  observability.NopLogger(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// UsersKey reports the persistence key.
func (d *Directory) UsersKey() string { return d.key }

// load reads the user list. A missing list is empty; a failing backend or a
// list that does not decode is an error.
func (d *Directory) load(ctx context.Context) ([]User, error) {
	data, err := d.persist.Read(ctx, d.key)
	if errors.Is(err, storage.ErrNotFound) {
		return []User{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", d.key, err)
	}
	var users []User
	if err := json.Unmarshal(data, &users); err != nil {
		d.logger.Error("user list malformed", "key", d.key, "error", err)
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformedUsers, d.key, err)
	}
	if users == nil {
		users = []User{}
	}
	return users, nil
}

func validate(r Registration) (Registration, error) {
	r.Nombre = strings.TrimSpace(r.Nombre)
	r.Apellidos = strings.TrimSpace(r.Apellidos)
	r.Email = strings.TrimSpace(r.Email)
	r.Telefono = strings.TrimSpace(r.Telefono)
	r.Username = strings.TrimSpace(r.Username)
	fields := []struct {
		name, value string
	}{
		{"nombre", r.Nombre},
		{"apellidos", r.Apellidos},
		{"email", r.Email},
		{"telefono", r.Telefono},
		{"username", r.Username},
		{"rol", r.Rol},
		{"password", r.Password},
		{"confirmPassword", r.ConfirmPassword},
	}
	for _, f := range fields {
		if f.value == "" {
			return r, fmt.Errorf("%w: %s", ErrMissingField, f.name)
		}
	}
	if r.Password != r.ConfirmPassword {
		return r, ErrPasswordMismatch
	}
	if len([]rune(r.Password)) < MinPasswordLength {
		return r, ErrPasswordTooShort
	}
	return r, nil
}

// Register validates r, appends the new user and opens a session for it.
func (d *Directory) Register(ctx context.Context, r Registration) (User, error) {
	r, err := validate(r)
	if err != nil {
		return User{}, err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	users, err := d.load(ctx)
	if err != nil {
		return User{}, err
	}
	for _, u := range users {
		if u.Username == r.Username || u.Email == r.Email {
			return User{}, fmt.Errorf("%w: %s", ErrDuplicateUser, r.Username)
		}
	}
	now := d.now().UTC()
	user := User{
		Nombre:        r.Nombre,
		Apellidos:     r.Apellidos,
		Email:         r.Email,
		Telefono:      r.Telefono,
		Username:      r.Username,
		Rol:           r.Rol,
		FechaRegistro: now.Format(time.RFC3339Nano),
	}
	data, err := json.Marshal(append(users, user))
	if err != nil {
		return User{}, err
	}
	if err := d.persist.Write(ctx, d.key, data); err != nil {
		d.logger.Error("user registration not saved", "username", user.Username, "error", err)
		return User{}, fmt.Errorf("write %s: %w", d.key, err)
	}
	d.session = &Session{Username: user.Username, LoginTime: now}
	d.logger.Info("user registered", "username", user.Username, "rol", user.Rol)
	return user, nil
}

// Login finds the user by username or email and opens a session. Passwords
// are not stored, so only presence is checked.
func (d *Directory) Login(ctx context.Context, usernameOrEmail, password string) (Session, error) {
	usernameOrEmail = strings.TrimSpace(usernameOrEmail)
	if usernameOrEmail == "" || password == "" {
		return Session{}, ErrMissingField
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	users, err := d.load(ctx)
	if err != nil {
		return Session{}, err
	}
	for _, u := range users {
		if u.Username == usernameOrEmail || u.Email == usernameOrEmail {
			s := Session{Username: u.Username, LoginTime: d.now().UTC()}
			d.session = &s
			d.logger.Info("user logged in", "username", u.Username)
			return s, nil
		}
	}
	return Session{}, fmt.Errorf("%w: %s", ErrUserNotFound, usernameOrEmail)
}

// Current returns the open session, if any.
func (d *Directory) Current() (Session, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.session == nil {
		return Session{}, false
	}
	return *d.session, true
}

// Logout closes the open session.
func (d *Directory) Logout() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.session = nil
}

// Users returns the registered users.
func (d *Directory) Users(ctx context.Context) ([]User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.load(ctx)
}

// Lookup finds a user by username or email.
func (d *Directory) Lookup(ctx context.Context, usernameOrEmail string) (User, error) {
	users, err := d.Users(ctx)
	if err != nil {
		return User{}, err
	}
	for _, u := range users {
		if u.Username == usernameOrEmail || u.Email == usernameOrEmail {
			return u, nil
		}
	}
	return User{}, fmt.Errorf("%w: %s", ErrUserNotFound, usernameOrEmail)
}

// IsValidation reports whether err is a rejected form rather than a storage
// failure.
func IsValidation(err error) bool {
	return errors.Is(err, ErrMissingField) ||
		errors.Is(err, ErrPasswordMismatch) ||
		errors.Is(err, ErrPasswordTooShort) ||
		errors.Is(err, ErrDuplicateUser)
}

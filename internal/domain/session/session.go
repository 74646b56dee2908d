package session

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sync"

	"ems/internal/domain/auth"
)

// Storage keys for the persisted session pair. Written and cleared together,
// never one without the other.
const (
	keyIdentity = "user"
	keyToken    = "token"
)

var ErrInvalidCredentials = errors.New("invalid username or password")

// Identity is the authenticated user for the lifetime of a session.
type Identity struct {
	ID             string    `json:"id"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	Role           auth.Role `json:"role"`
	EmployeeID     string    `json:"employeeId"`
	Name           string    `json:"name"`
	Department     string    `json:"department"`
	Designation    string    `json:"designation"`
	ProfilePicture string    `json:"profilePicture,omitempty"`
	TeamMembers    []string  `json:"teamMembers,omitempty"`
}

// Profile is the raw, possibly partial identity data returned by the
// authentication collaborator.
type Profile struct {
	ID          string
	Email       string
	FirstName   string
	LastName    string
	Role        auth.Role
	Department  string
	Designation string
}

// LoginResult is what the authentication collaborator returns on success.
type LoginResult struct {
	Token   string
	Profile Profile
}

// Authenticator verifies credentials against the backend.
type Authenticator interface {
	Login(ctx context.Context, username, password string) (LoginResult, error)
	Logout(ctx context.Context) error
}

// Storage is the durable client storage the session pair is persisted to.
type Storage interface {
	Get(key string, out any) (bool, error)
	PutAll(pairs map[string]any) error
	DeleteAll(keys ...string) error
}

// Store holds the authenticated identity for the process lifetime and keeps
// the durable copy in step with it.
type Store struct {
	mu      sync.Mutex
	authn   Authenticator
	storage Storage
	current *Identity
	token   string
}

func NewStore(authn Authenticator, storage Storage) *Store {
	return &Store{authn: authn, storage: storage}
}

// Rehydrate restores a persisted session, if any. A half-written pair (one
// key without the other) is discarded rather than restored.
func (s *Store) Rehydrate() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var identity Identity
	haveIdentity, err := s.storage.Get(keyIdentity, &identity)
	if err != nil {
		return fmt.Errorf("session rehydrate: %w", err)
	}
	var token string
	haveToken, err := s.storage.Get(keyToken, &token)
	if err != nil {
		return fmt.Errorf("session rehydrate: %w", err)
	}

	if !haveIdentity || !haveToken {
		if haveIdentity || haveToken {
			_ = s.storage.DeleteAll(keyIdentity, keyToken)
		}
		return nil
	}

	s.current = &identity
	s.token = token
	return nil
}

// Login verifies credentials through the collaborator, synthesizes any
// missing profile fields, and persists the session pair. On any failure no
// partial identity is kept, in memory or on disk.
func (s *Store) Login(ctx context.Context, username, password string) (Identity, error) {
	result, err := s.authn.Login(ctx, username, password)
	if err != nil {
		return Identity{}, err
	}
	if result.Token == "" {
		return Identity{}, ErrInvalidCredentials
	}

	identity := mapIdentity(username, result.Profile)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.storage.PutAll(map[string]any{keyIdentity: identity, keyToken: result.Token}); err != nil {
		return Identity{}, fmt.Errorf("persist session: %w", err)
	}
	s.current = &identity
	s.token = result.Token
	return identity, nil
}

// Logout signs out of the collaborator (best effort) and clears both the
// in-memory and durable session atomically.
func (s *Store) Logout(ctx context.Context) {
	_ = s.authn.Logout(ctx)
	s.Invalidate()
}

// Invalidate clears the session without a collaborator round trip. Used when
// the backend has already rejected the token (401).
func (s *Store) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = nil
	s.token = ""
	_ = s.storage.DeleteAll(keyIdentity, keyToken)
}

// Current returns the authenticated identity, if any.
func (s *Store) Current() (Identity, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return Identity{}, false
	}
	return *s.current, true
}

// Token returns the bearer token for the current session, or "".
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// Known privileged accounts get fixed identity defaults when the backend
// returns no profile for them.
var privilegedDefaults = map[string]Identity{
	"admin": {
		ID:          "1",
		Username:    "admin",
		Email:       "admin@company.com",
		Role:        auth.RoleAdmin,
		EmployeeID:  "admin",
		Name:        "System Administrator",
		Department:  "IT",
		Designation: "System Admin",
	},
	"hr001": {
		ID:          "32",
		Username:    "hr001",
		Email:       "hr.manager@company.com",
		Role:        auth.RoleHRManager,
		EmployeeID:  "hr001",
		Name:        "Sarah Johnson",
		Department:  "HR",
		Designation: "HR Manager",
	},
	"tl001": {
		ID:          "33",
		Username:    "tl001",
		Email:       "team.lead@company.com",
		Role:        auth.RoleTeamLead,
		EmployeeID:  "tl001",
		Name:        "Michael Chen",
		Department:  "Engineering",
		Designation: "Engineering Team Lead",
	},
}

var employeePattern = regexp.MustCompile(`^emp\d+$`)

// mapIdentity builds a full Identity from whatever the collaborator returned,
// applying role-specific defaults when profile data is incomplete.
func mapIdentity(username string, profile Profile) Identity {
	if fixed, ok := privilegedDefaults[username]; ok {
		if profile.Role.Valid() {
			fixed.Role = profile.Role
		}
		if profile.ID != "" {
			fixed.ID = profile.ID
		}
		if profile.Email != "" {
			fixed.Email = profile.Email
		}
		return fixed
	}

	identity := Identity{
		ID:          profile.ID,
		Username:    username,
		Email:       profile.Email,
		Role:        auth.RoleEmployee,
		EmployeeID:  username,
		Name:        username,
		Department:  "General",
		Designation: "Employee",
	}
	if identity.ID == "" {
		identity.ID = username
	}
	if identity.Email == "" {
		identity.Email = username + "@company.com"
	}
	if profile.FirstName != "" && profile.LastName != "" {
		identity.Name = profile.FirstName + " " + profile.LastName
	}
	if profile.Department != "" {
		identity.Department = profile.Department
	}
	if profile.Designation != "" {
		identity.Designation = profile.Designation
	}
	if profile.Role.Valid() && !employeePattern.MatchString(username) {
		identity.Role = profile.Role
	}
	return identity
}

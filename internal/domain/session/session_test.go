package session

import (
	"context"
	"errors"
	"testing"

	"ems/internal/domain/auth"
)

type fakeAuthn struct {
	result      LoginResult
	err         error
	logoutCalls int
}

func (f *fakeAuthn) Login(ctx context.Context, username, password string) (LoginResult, error) {
	return f.result, f.err
}

func (f *fakeAuthn) Logout(ctx context.Context) error {
	f.logoutCalls++
	return nil
}

type memStorage struct {
	values map[string]any
	// putErr forces the next PutAll to fail
	putErr error
}

func newMemStorage() *memStorage {
	return &memStorage{values: map[string]any{}}
}

func (m *memStorage) Get(key string, out any) (bool, error) {
	v, ok := m.values[key]
	if !ok {
		return false, nil
	}
	switch dst := out.(type) {
	case *Identity:
		*dst = v.(Identity)
	case *string:
		*dst = v.(string)
	}
	return true, nil
}

func (m *memStorage) PutAll(pairs map[string]any) error {
	if m.putErr != nil {
		return m.putErr
	}
	for k, v := range pairs {
		m.values[k] = v
	}
	return nil
}

func (m *memStorage) DeleteAll(keys ...string) error {
	for _, k := range keys {
		delete(m.values, k)
	}
	return nil
}

func TestLoginKnownPrivilegedAccount(t *testing.T) {
	authn := &fakeAuthn{result: LoginResult{Token: "tok-1"}}
	storage := newMemStorage()
	store := NewStore(authn, storage)

	identity, err := store.Login(context.Background(), "hr001", "pw")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if identity.Role != auth.RoleHRManager || identity.Name != "Sarah Johnson" {
		t.Fatalf("hr001 defaults not applied: %+v", identity)
	}

	if _, ok := storage.values["user"]; !ok {
		t.Fatal("identity not persisted")
	}
	if storage.values["token"] != "tok-1" {
		t.Fatal("token not persisted")
	}
}

func TestLoginEmployeeConventionDefaults(t *testing.T) {
	authn := &fakeAuthn{result: LoginResult{Token: "tok-2"}}
	store := NewStore(authn, newMemStorage())

	identity, err := store.Login(context.Background(), "emp002", "pw")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if identity.Role != auth.RoleEmployee {
		t.Fatalf("emp accounts are employees, got %s", identity.Role)
	}
	if identity.Department != "General" || identity.Designation != "Employee" {
		t.Fatalf("employee defaults not applied: %+v", identity)
	}
	if identity.EmployeeID != "emp002" || identity.Email != "emp002@company.com" {
		t.Fatalf("derived fields wrong: %+v", identity)
	}
}

func TestLoginUsesBackendProfileWhenPresent(t *testing.T) {
	authn := &fakeAuthn{result: LoginResult{
		Token: "tok-3",
		Profile: Profile{
			ID:         "41",
			FirstName:  "Priya",
			LastName:   "Patel",
			Department: "Finance",
		},
	}}
	store := NewStore(authn, newMemStorage())

	identity, err := store.Login(context.Background(), "emp041", "pw")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if identity.Name != "Priya Patel" || identity.Department != "Finance" || identity.ID != "41" {
		t.Fatalf("backend profile not used: %+v", identity)
	}
}

func TestLoginFailureLeavesNoState(t *testing.T) {
	authn := &fakeAuthn{err: ErrInvalidCredentials}
	storage := newMemStorage()
	store := NewStore(authn, storage)

	if _, err := store.Login(context.Background(), "emp002", "wrong"); err == nil {
		t.Fatal("expected login error")
	}
	if _, ok := store.Current(); ok {
		t.Fatal("identity set after failed login")
	}
	if len(storage.values) != 0 {
		t.Fatalf("storage written after failed login: %v", storage.values)
	}
}

func TestLoginPersistFailureLeavesNoIdentity(t *testing.T) {
	authn := &fakeAuthn{result: LoginResult{Token: "tok"}}
	storage := newMemStorage()
	storage.putErr = errors.New("disk full")
	store := NewStore(authn, storage)

	if _, err := store.Login(context.Background(), "emp002", "pw"); err == nil {
		t.Fatal("expected persist error")
	}
	if _, ok := store.Current(); ok {
		t.Fatal("identity set despite persist failure")
	}
}

func TestLogoutClearsBothKeys(t *testing.T) {
	authn := &fakeAuthn{result: LoginResult{Token: "tok"}}
	storage := newMemStorage()
	store := NewStore(authn, storage)

	if _, err := store.Login(context.Background(), "emp002", "pw"); err != nil {
		t.Fatalf("login: %v", err)
	}
	store.Logout(context.Background())

	if authn.logoutCalls != 1 {
		t.Fatal("collaborator logout not called")
	}
	if _, ok := store.Current(); ok {
		t.Fatal("identity survived logout")
	}
	if store.Token() != "" {
		t.Fatal("token survived logout")
	}
	if len(storage.values) != 0 {
		t.Fatalf("storage not cleared: %v", storage.values)
	}
}

func TestRehydrate(t *testing.T) {
	storage := newMemStorage()
	storage.values["user"] = Identity{Username: "emp002", Role: auth.RoleEmployee, EmployeeID: "emp002"}
	storage.values["token"] = "tok"

	store := NewStore(&fakeAuthn{}, storage)
	if err := store.Rehydrate(); err != nil {
		t.Fatalf("rehydrate: %v", err)
	}
	identity, ok := store.Current()
	if !ok || identity.Username != "emp002" {
		t.Fatalf("session not restored: ok=%v %+v", ok, identity)
	}
	if store.Token() != "tok" {
		t.Fatal("token not restored")
	}
}

func TestRehydrateDiscardsHalfPair(t *testing.T) {
	storage := newMemStorage()
	storage.values["token"] = "orphan"

	store := NewStore(&fakeAuthn{}, storage)
	if err := store.Rehydrate(); err != nil {
		t.Fatalf("rehydrate: %v", err)
	}
	if _, ok := store.Current(); ok {
		t.Fatal("half-written session restored")
	}
	if len(storage.values) != 0 {
		t.Fatalf("orphan key not cleared: %v", storage.values)
	}
}

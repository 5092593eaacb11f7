package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"jobboard/internal/common"
	"jobboard/internal/domain/session"
	"jobboard/internal/domain/user"
	"jobboard/internal/security"
	appsession "jobboard/internal/session"
)

type fakeAccounts struct {
	mu       sync.Mutex
	accounts map[common.UUID]user.User
}

func newFakeAccounts() *fakeAccounts {
	return &fakeAccounts{accounts: make(map[common.UUID]user.User)}
}

func (f *fakeAccounts) GetByID(ctx context.Context, id common.UUID) (*user.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	account, ok := f.accounts[id]
	if !ok {
		return nil, common.NewError(common.CodeNotFound, "user not found", nil)
	}
	return &account, nil
}

func (f *fakeAccounts) setStatus(id common.UUID, status user.AccountStatus) {
	f.mu.Lock()
	defer f.mu.Unlock()
	account := f.accounts[id]
	account.AccountStatus = status
	f.accounts[id] = account
}

func openTestSession(t *testing.T, jwt *security.JWTProvider, store *appsession.MemoryStore, accounts *fakeAccounts, role user.Role) (common.UUID, string) {
	t.Helper()
	id := common.NewUUID()
	accounts.mu.Lock()
	accounts.accounts[id] = user.User{ID: id, Role: role, AccountStatus: user.StatusActive}
	accounts.mu.Unlock()

	token, tokenID, _, err := jwt.Generate(id, string(role), time.Hour)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	if err := store.Set(context.Background(), session.Record{TokenID: tokenID, UserID: id, Role: role}, time.Hour); err != nil {
		t.Fatalf("open session: %v", err)
	}
	return id, token
}

func TestAuthenticateCutsOffBannedAccount(t *testing.T) {
	jwt := security.NewJWTProvider("test-secret")
	store := appsession.NewMemoryStore()
	accounts := newFakeAccounts()
	mw := NewAuthMiddleware(jwt, store, accounts)

	id, token := openTestSession(t, jwt, store, accounts, user.RoleCandidate)

	var called bool
	handler := mw.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/applications/mine", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK || !called {
		t.Fatalf("active account should pass, got %d called=%v", rec.Code, called)
	}

	// Banning must invalidate the live token, not just future logins.
	accounts.setStatus(id, user.StatusBanned)
	called = false
	req = httptest.NewRequest(http.MethodGet, "/applications/mine", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("banned account should get 401, got %d", rec.Code)
	}
	if called {
		t.Fatal("handler reached with a banned account")
	}
}

func TestAuthenticateRejectsDeletedAccount(t *testing.T) {
	jwt := security.NewJWTProvider("test-secret")
	store := appsession.NewMemoryStore()
	accounts := newFakeAccounts()
	mw := NewAuthMiddleware(jwt, store, accounts)

	id, token := openTestSession(t, jwt, store, accounts, user.RoleEmployer)
	accounts.mu.Lock()
	delete(accounts.accounts, id)
	accounts.mu.Unlock()

	handler := mw.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler reached with a deleted account")
	}))
	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestOptionalAuthenticateTreatsBannedAsAnonymous(t *testing.T) {
	jwt := security.NewJWTProvider("test-secret")
	store := appsession.NewMemoryStore()
	accounts := newFakeAccounts()
	mw := NewAuthMiddleware(jwt, store, accounts)

	id, token := openTestSession(t, jwt, store, accounts, user.RoleCandidate)
	accounts.setStatus(id, user.StatusBanned)

	handler := mw.OptionalAuthenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ActorFromContext(r.Context()) != nil {
			t.Fatal("banned account should not carry an actor")
		}
		w.WriteHeader(http.StatusOK)
	}))
	req := httptest.NewRequest(http.MethodGet, "/jobs/"+common.NewUUID().String(), nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("optional auth should pass through anonymously, got %d", rec.Code)
	}
}

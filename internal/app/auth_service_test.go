package app

import (
	"context"
	"testing"
	"time"

	"jobboard/internal/common"
	"jobboard/internal/domain/user"
	"jobboard/internal/security"
)

func newAuthService(users *fakeUserRepo, sessions *fakeSessionStore) *AuthService {
	return NewAuthService(users, sessions, noopAnalyticsRepo{}, security.NewJWTProvider("secret"), nil, time.Hour, time.Hour)
}

func registerInput(role user.Role) RegisterInput {
	return RegisterInput{
		Email:    "jane@example.com",
		Password: "correct horse",
		FullName: "Jane Doe",
		Role:     role,
	}
}

func TestRegisterOpensSession(t *testing.T) {
	users := newFakeUserRepo()
	sessions := newFakeSessionStore()
	service := newAuthService(users, sessions)

	result, err := service.Register(context.Background(), registerInput(user.RoleCandidate))
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if result.Token == "" {
		t.Fatal("expected a token")
	}
	if result.User.PasswordHash == "correct horse" {
		t.Fatal("password must be stored hashed")
	}
	if len(sessions.records) != 1 {
		t.Fatalf("expected one session record, got %d", len(sessions.records))
	}

	claims, err := security.NewJWTProvider("secret").Parse(result.Token)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims.UserID != result.User.ID.String() {
		t.Fatalf("token user_id = %s, want %s", claims.UserID, result.User.ID)
	}
	if _, err := sessions.Get(context.Background(), claims.ID); err != nil {
		t.Fatalf("expected session keyed by jti, got %v", err)
	}
}

func TestRegisterRejectsAdminRole(t *testing.T) {
	service := newAuthService(newFakeUserRepo(), newFakeSessionStore())

	_, err := service.Register(context.Background(), registerInput(user.RoleAdmin))
	if !common.Is(err, common.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestRegisterDuplicateEmailConflicts(t *testing.T) {
	service := newAuthService(newFakeUserRepo(), newFakeSessionStore())

	if _, err := service.Register(context.Background(), registerInput(user.RoleCandidate)); err != nil {
		t.Fatalf("register: %v", err)
	}
	_, err := service.Register(context.Background(), registerInput(user.RoleEmployer))
	if !common.Is(err, common.CodeConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	service := newAuthService(newFakeUserRepo(), newFakeSessionStore())
	if _, err := service.Register(context.Background(), registerInput(user.RoleCandidate)); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, err := service.Login(context.Background(), "jane@example.com", "wrong")
	if !common.Is(err, common.CodeUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestLoginUnknownEmailIsOpaque(t *testing.T) {
	service := newAuthService(newFakeUserRepo(), newFakeSessionStore())

	_, err := service.Login(context.Background(), "nobody@example.com", "whatever")
	if !common.Is(err, common.CodeUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestLoginBannedAccountForbidden(t *testing.T) {
	users := newFakeUserRepo()
	service := newAuthService(users, newFakeSessionStore())
	result, err := service.Register(context.Background(), registerInput(user.RoleCandidate))
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := users.SetAccountStatus(context.Background(), result.User.ID, user.StatusBanned); err != nil {
		t.Fatalf("ban: %v", err)
	}

	_, err = service.Login(context.Background(), "jane@example.com", "correct horse")
	if !common.Is(err, common.CodeForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestLogoutRevokesSession(t *testing.T) {
	sessions := newFakeSessionStore()
	service := newAuthService(newFakeUserRepo(), sessions)
	result, err := service.Register(context.Background(), registerInput(user.RoleCandidate))
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	claims, err := security.NewJWTProvider("secret").Parse(result.Token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if err := service.Logout(context.Background(), claims.ID); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, err := sessions.Get(context.Background(), claims.ID); !common.Is(err, common.CodeNotFound) {
		t.Fatalf("expected session gone, got %v", err)
	}
}

func TestChangePasswordVerifiesCurrent(t *testing.T) {
	service := newAuthService(newFakeUserRepo(), newFakeSessionStore())
	result, err := service.Register(context.Background(), registerInput(user.RoleCandidate))
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if err := service.ChangePassword(context.Background(), result.User.ID, "wrong", "new password!"); !common.Is(err, common.CodeUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
	if err := service.ChangePassword(context.Background(), result.User.ID, "correct horse", "short"); !common.Is(err, common.CodeValidation) {
		t.Fatalf("expected validation, got %v", err)
	}
	if err := service.ChangePassword(context.Background(), result.User.ID, "correct horse", "new password!"); err != nil {
		t.Fatalf("change password: %v", err)
	}
	if _, err := service.Login(context.Background(), "jane@example.com", "new password!"); err != nil {
		t.Fatalf("login with new password: %v", err)
	}
}

func TestMeRejectsDeactivatedAccount(t *testing.T) {
	users := newFakeUserRepo()
	service := newAuthService(users, newFakeSessionStore())
	result, err := service.Register(context.Background(), registerInput(user.RoleCandidate))
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := users.SetAccountStatus(context.Background(), result.User.ID, user.StatusInactive); err != nil {
		t.Fatalf("deactivate: %v", err)
	}

	if _, err := service.Me(context.Background(), result.User.ID); !common.Is(err, common.CodeUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestUpdateProfile(t *testing.T) {
	service := newAuthService(newFakeUserRepo(), newFakeSessionStore())
	result, err := service.Register(context.Background(), registerInput(user.RoleCandidate))
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	updated, err := service.UpdateProfile(context.Background(), result.User.ID, ProfileInput{FullName: "Jane D.", Phone: "555-0101"})
	if err != nil {
		t.Fatalf("update profile: %v", err)
	}
	if updated.FullName != "Jane D." || updated.Phone != "555-0101" {
		t.Fatalf("got %q/%q", updated.FullName, updated.Phone)
	}

	if _, err := service.UpdateProfile(context.Background(), result.User.ID, ProfileInput{}); !common.Is(err, common.CodeValidation) {
		t.Fatalf("expected validation, got %v", err)
	}
}

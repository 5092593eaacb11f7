package app

import (
	"context"
	"testing"

	"jobboard/internal/authz"
	"jobboard/internal/common"
	"jobboard/internal/discovery"
	"jobboard/internal/domain/user"
)

func seedUser(t *testing.T, repo *fakeUserRepo, email string, role user.Role) *user.User {
	t.Helper()
	created, err := repo.Create(context.Background(), user.User{
		Email:         email,
		FullName:      "Test User",
		Role:          role,
		AccountStatus: user.StatusActive,
	})
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return created
}

func TestUserListAdminOnly(t *testing.T) {
	repo := newFakeUserRepo()
	service := NewUserService(repo, noopAnalyticsRepo{}, PageConfig{DefaultLimit: 20, MaxLimit: 100})
	seedUser(t, repo, "a@example.com", user.RoleCandidate)

	employer := authz.Actor{ID: common.NewUUID(), Role: user.RoleEmployer}
	if _, err := service.List(context.Background(), employer, discovery.UserQuery{}); !common.Is(err, common.CodeForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}

	admin := authz.Actor{ID: common.NewUUID(), Role: user.RoleAdmin}
	result, err := service.List(context.Background(), admin, discovery.UserQuery{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if result.Total != 1 {
		t.Fatalf("total = %d, want 1", result.Total)
	}
}

func TestUserListRoleFilter(t *testing.T) {
	repo := newFakeUserRepo()
	service := NewUserService(repo, noopAnalyticsRepo{}, PageConfig{DefaultLimit: 20, MaxLimit: 100})
	seedUser(t, repo, "a@example.com", user.RoleCandidate)
	seedUser(t, repo, "b@example.com", user.RoleEmployer)

	admin := authz.Actor{ID: common.NewUUID(), Role: user.RoleAdmin}
	result, err := service.List(context.Background(), admin, discovery.UserQuery{Role: user.RoleEmployer})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if result.Total != 1 || result.Items[0].Role != user.RoleEmployer {
		t.Fatalf("expected one employer, got %+v", result.Items)
	}
}

func TestSetAccountStatusBans(t *testing.T) {
	repo := newFakeUserRepo()
	service := NewUserService(repo, noopAnalyticsRepo{}, PageConfig{DefaultLimit: 20, MaxLimit: 100})
	target := seedUser(t, repo, "a@example.com", user.RoleCandidate)
	admin := authz.Actor{ID: common.NewUUID(), Role: user.RoleAdmin}

	updated, err := service.SetAccountStatus(context.Background(), admin, target.ID, user.StatusBanned)
	if err != nil {
		t.Fatalf("ban: %v", err)
	}
	if updated.AccountStatus != user.StatusBanned {
		t.Fatalf("status = %s, want banned", updated.AccountStatus)
	}

	if _, err := service.SetAccountStatus(context.Background(), admin, target.ID, "frozen"); !common.Is(err, common.CodeValidation) {
		t.Fatalf("expected validation for unknown status, got %v", err)
	}
}

func TestAdminCannotDeleteOwnAccount(t *testing.T) {
	repo := newFakeUserRepo()
	service := NewUserService(repo, noopAnalyticsRepo{}, PageConfig{DefaultLimit: 20, MaxLimit: 100})
	self := seedUser(t, repo, "admin@example.com", user.RoleAdmin)
	admin := authz.Actor{ID: self.ID, Role: user.RoleAdmin}

	if err := service.Delete(context.Background(), admin, self.ID); !common.Is(err, common.CodeValidation) {
		t.Fatalf("expected self-delete blocked, got %v", err)
	}

	other := seedUser(t, repo, "other@example.com", user.RoleCandidate)
	if err := service.Delete(context.Background(), admin, other.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
}

package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"jobboard/internal/common"
	"jobboard/internal/domain/analytics"
	"jobboard/internal/domain/session"
	"jobboard/internal/domain/user"
	"jobboard/internal/security"
)

// AuthService handles registration, login, and the session lifecycle.
type AuthService struct {
	users       user.Repository
	sessions    session.Store
	analytics   analytics.Repository
	jwtProvider *security.JWTProvider
	logger      Logger
	tokenTTL    time.Duration
	sessionTTL  time.Duration
}

type Logger interface {
	Info(msg string)
	Error(msg string)
}

func NewAuthService(users user.Repository, sessions session.Store, analytics analytics.Repository, jwtProvider *security.JWTProvider, logger Logger, tokenTTL, sessionTTL time.Duration) *AuthService {
	return &AuthService{
		users:       users,
		sessions:    sessions,
		analytics:   analytics,
		jwtProvider: jwtProvider,
		logger:      logger,
		tokenTTL:    tokenTTL,
		sessionTTL:  sessionTTL,
	}
}

type RegisterInput struct {
	Email    string
	Password string
	FullName string
	Phone    string
	Role     user.Role
}

type AuthResult struct {
	User      *user.User `json:"user"`
	Token     string     `json:"token"`
	ExpiresAt time.Time  `json:"expires_at"`
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	fields := map[string]string{}
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || !strings.Contains(email, "@") {
		fields["email"] = "a valid email is required"
	}
	if len(input.Password) < 8 {
		fields["password"] = "password must be at least 8 characters"
	}
	if strings.TrimSpace(input.FullName) == "" {
		fields["full_name"] = "full name is required"
	}
	role := user.Role(strings.ToLower(strings.TrimSpace(string(input.Role))))
	// Admin accounts are provisioned out of band, never self-registered.
	if role != user.RoleCandidate && role != user.RoleEmployer {
		fields["role"] = "role must be candidate or employer"
	}
	if len(fields) > 0 {
		return nil, common.NewValidationError("invalid registration", fields)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to hash password", err)
	}
	account, err := s.users.Create(ctx, user.User{
		Email:         email,
		PasswordHash:  string(hash),
		FullName:      strings.TrimSpace(input.FullName),
		Phone:         strings.TrimSpace(input.Phone),
		Role:          role,
		AccountStatus: user.StatusActive,
	})
	if err != nil {
		return nil, err
	}
	_ = s.analytics.Create(ctx, analytics.Event{Name: "auth.registered", UserID: &account.ID, Payload: map[string]string{"role": string(role)}})
	s.logInfo(fmt.Sprintf("user registered user_id=%s role=%s", account.ID, role))
	return s.openSession(ctx, account)
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	account, err := s.users.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if common.Is(err, common.CodeNotFound) {
			return nil, common.NewError(common.CodeUnauthorized, "invalid email or password", nil)
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		_ = s.analytics.Create(ctx, analytics.Event{Name: "auth.login_failed", UserID: &account.ID})
		return nil, common.NewError(common.CodeUnauthorized, "invalid email or password", nil)
	}
	if account.AccountStatus != user.StatusActive {
		return nil, common.NewError(common.CodeForbidden, "account is not active", nil)
	}
	_ = s.analytics.Create(ctx, analytics.Event{Name: "auth.logged_in", UserID: &account.ID})
	s.logInfo(fmt.Sprintf("user logged in user_id=%s", account.ID))
	return s.openSession(ctx, account)
}

// Me resolves the live session back to the current account. A banned or
// deactivated account invalidates the session on read.
func (s *AuthService) Me(ctx context.Context, userID common.UUID) (*user.User, error) {
	account, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if account.AccountStatus != user.StatusActive {
		return nil, common.NewError(common.CodeUnauthorized, "account is not active", nil)
	}
	return account, nil
}

type ProfileInput struct {
	FullName  string
	Phone     string
	AvatarURL string
}

func (s *AuthService) UpdateProfile(ctx context.Context, userID common.UUID, input ProfileInput) (*user.User, error) {
	if strings.TrimSpace(input.FullName) == "" {
		return nil, common.NewValidationError("invalid profile", map[string]string{"full_name": "full name is required"})
	}
	account, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	account.FullName = strings.TrimSpace(input.FullName)
	account.Phone = strings.TrimSpace(input.Phone)
	account.AvatarURL = strings.TrimSpace(input.AvatarURL)
	updated, err := s.users.Update(ctx, *account)
	if err != nil {
		return nil, err
	}
	_ = s.analytics.Create(ctx, analytics.Event{Name: "user.profile_updated", UserID: &userID})
	return updated, nil
}

func (s *AuthService) ChangePassword(ctx context.Context, userID common.UUID, current, next string) error {
	if len(next) < 8 {
		return common.NewValidationError("invalid password", map[string]string{"new_password": "password must be at least 8 characters"})
	}
	account, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(current)); err != nil {
		return common.NewError(common.CodeUnauthorized, "current password is incorrect", nil)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to hash password", err)
	}
	account.PasswordHash = string(hash)
	if _, err := s.users.Update(ctx, *account); err != nil {
		return err
	}
	_ = s.analytics.Create(ctx, analytics.Event{Name: "user.password_changed", UserID: &userID})
	return nil
}

// Logout clears the session record; the token fails validation afterwards
// even though it has not expired.
func (s *AuthService) Logout(ctx context.Context, tokenID string) error {
	if err := s.sessions.Clear(ctx, tokenID); err != nil {
		return err
	}
	s.logInfo("user logged out")
	_ = s.analytics.Create(ctx, analytics.Event{Name: "auth.logged_out"})
	return nil
}

func (s *AuthService) openSession(ctx context.Context, account *user.User) (*AuthResult, error) {
	token, tokenID, expiresAt, err := s.jwtProvider.Generate(account.ID, string(account.Role), s.tokenTTL)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to generate token", err)
	}
	rec := session.Record{
		TokenID:  tokenID,
		UserID:   account.ID,
		Role:     account.Role,
		FullName: account.FullName,
	}
	if err := s.sessions.Set(ctx, rec, s.sessionTTL); err != nil {
		return nil, err
	}
	return &AuthResult{User: account, Token: token, ExpiresAt: expiresAt}, nil
}

func (s *AuthService) logInfo(msg string) {
	if s.logger == nil {
		return
	}
	s.logger.Info(msg)
}

package auth

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pitchpartner/pitchpartner-backend/internal/memberships"
	pkgAuth "github.com/pitchpartner/pitchpartner-backend/pkg/auth"
	"github.com/pitchpartner/pitchpartner-backend/pkg/config"
	"github.com/pitchpartner/pitchpartner-backend/pkg/db/models"
	"github.com/pitchpartner/pitchpartner-backend/pkg/enums"
	pkgerrors "github.com/pitchpartner/pitchpartner-backend/pkg/errors"
	"github.com/pitchpartner/pitchpartner-backend/pkg/security"
)

type stubUserRepo struct {
	user      *models.User
	lastLogin *time.Time
}

func (s *stubUserRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	if s.user == nil || s.user.Email != email {
		return nil, gorm.ErrRecordNotFound
	}
	return s.user, nil
}

func (s *stubUserRepo) UpdateLastLogin(_ context.Context, _ uuid.UUID, at time.Time) error {
	s.lastLogin = &at
	return nil
}

type stubMembershipsRepo struct {
	clubs []memberships.MembershipWithClub
}

func (s *stubMembershipsRepo) ListUserClubs(_ context.Context, _ uuid.UUID) ([]memberships.MembershipWithClub, error) {
	return s.clubs, nil
}

type stubSessionManager struct {
	generated string
	revoked   string
	rotateErr error
}

func (s *stubSessionManager) Generate(_ context.Context, accessID string) (string, error) {
	s.generated = accessID
	return "refresh-" + accessID, nil
}

func (s *stubSessionManager) Rotate(_ context.Context, oldAccessID, _ string) (string, string, error) {
	if s.rotateErr != nil {
		return "", "", s.rotateErr
	}
	newID := uuid.NewString()
	return newID, "refresh-" + newID, nil
}

func (s *stubSessionManager) Revoke(_ context.Context, accessID string) error {
	s.revoked = accessID
	return nil
}

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "test-secret",
		Issuer:            "pitchpartner-test",
		ExpirationMinutes: 15,
	}
}

func testPasswordConfig() config.PasswordConfig {
	return config.PasswordConfig{
		ArgonMemoryKB:    8 * 1024,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     16,
		ArgonKeyLen:      32,
	}
}

func activeUser(t *testing.T, email, password string) *models.User {
	t.Helper()
	hash, err := security.HashPassword(password, testPasswordConfig())
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return &models.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: hash,
		FirstName:    "Giulia",
		LastName:     "Ferrari",
		IsActive:     true,
	}
}

func singleClub(userID uuid.UUID) []memberships.MembershipWithClub {
	return []memberships.MembershipWithClub{{
		MembershipID: uuid.New(),
		ClubID:       uuid.New(),
		UserID:       userID,
		ClubName:     "ASD Borgo Calcio",
		Role:         enums.MemberRoleOwner,
		Status:       enums.MembershipStatusActive,
	}}
}

func TestLoginSuccess(t *testing.T) {
	user := activeUser(t, "giulia@borgocalcio.it", "correct-horse")
	sessions := &stubSessionManager{}
	usersRepo := &stubUserRepo{user: user}
	svc, err := NewService(ServiceParams{
		UserRepo:        usersRepo,
		MembershipsRepo: &stubMembershipsRepo{clubs: singleClub(user.ID)},
		SessionManager:  sessions,
		JWTConfig:       testJWTConfig(),
	})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	res, err := svc.Login(context.Background(), LoginRequest{
		Email:    "Giulia@BorgoCalcio.it",
		Password: "correct-horse",
	})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if res.AccessToken == "" || res.RefreshToken == "" {
		t.Fatal("expected token pair")
	}
	if len(res.Clubs) != 1 || res.Clubs[0].Name != "ASD Borgo Calcio" {
		t.Fatalf("unexpected clubs %+v", res.Clubs)
	}
	if usersRepo.lastLogin == nil {
		t.Error("expected last login stamp")
	}

	claims, err := pkgAuth.ParseAccessToken(testJWTConfig(), res.AccessToken)
	if err != nil {
		t.Fatalf("parse minted token: %v", err)
	}
	if claims.UserID != user.ID {
		t.Errorf("claims carry wrong user")
	}
	if claims.ActiveClubID == nil {
		t.Error("expected active club claim")
	}
	if claims.ID != sessions.generated {
		t.Error("refresh session not keyed by jti")
	}
}

func TestLoginRejections(t *testing.T) {
	user := activeUser(t, "giulia@borgocalcio.it", "correct-horse")

	cases := []struct {
		name  string
		email string
		pass  string
		clubs []memberships.MembershipWithClub
	}{
		{"wrong password", user.Email, "wrong", singleClub(user.ID)},
		{"unknown email", "nessuno@example.com", "correct-horse", singleClub(user.ID)},
		{"no memberships", user.Email, "correct-horse", nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, _ := NewService(ServiceParams{
				UserRepo:        &stubUserRepo{user: user},
				MembershipsRepo: &stubMembershipsRepo{clubs: tc.clubs},
				SessionManager:  &stubSessionManager{},
				JWTConfig:       testJWTConfig(),
			})
			_, err := svc.Login(context.Background(), LoginRequest{Email: tc.email, Password: tc.pass})
			typed := pkgerrors.As(err)
			if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
				t.Fatalf("expected unauthorized, got %v", err)
			}
			if typed.Error() != invalidCredentialsMessage && !strings.Contains(typed.Error(), invalidCredentialsMessage) {
				t.Fatalf("expected opaque credentials message, got %q", typed.Error())
			}
		})
	}
}

func TestLoginInactiveUser(t *testing.T) {
	user := activeUser(t, "giulia@borgocalcio.it", "correct-horse")
	user.IsActive = false
	svc, _ := NewService(ServiceParams{
		UserRepo:        &stubUserRepo{user: user},
		MembershipsRepo: &stubMembershipsRepo{clubs: singleClub(user.ID)},
		SessionManager:  &stubSessionManager{},
		JWTConfig:       testJWTConfig(),
	})

	_, err := svc.Login(context.Background(), LoginRequest{Email: user.Email, Password: "correct-horse"})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized for inactive user, got %v", err)
	}
}

func TestRefreshRotatesSession(t *testing.T) {
	user := activeUser(t, "giulia@borgocalcio.it", "correct-horse")
	sessions := &stubSessionManager{}
	svc, _ := NewService(ServiceParams{
		UserRepo:        &stubUserRepo{user: user},
		MembershipsRepo: &stubMembershipsRepo{clubs: singleClub(user.ID)},
		SessionManager:  sessions,
		JWTConfig:       testJWTConfig(),
	})

	login, err := svc.Login(context.Background(), LoginRequest{Email: user.Email, Password: "correct-horse"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	refreshed, err := svc.Refresh(context.Background(), RefreshRequest{
		AccessToken:  login.AccessToken,
		RefreshToken: login.RefreshToken,
	})
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if refreshed.AccessToken == login.AccessToken {
		t.Error("expected a new access token")
	}

	claims, err := pkgAuth.ParseAccessToken(testJWTConfig(), refreshed.AccessToken)
	if err != nil {
		t.Fatalf("parse refreshed token: %v", err)
	}
	if claims.UserID != user.ID {
		t.Error("refreshed claims carry wrong user")
	}
}

func TestRefreshRejectsGarbageToken(t *testing.T) {
	svc, _ := NewService(ServiceParams{
		UserRepo:        &stubUserRepo{},
		MembershipsRepo: &stubMembershipsRepo{},
		SessionManager:  &stubSessionManager{},
		JWTConfig:       testJWTConfig(),
	})

	_, err := svc.Refresh(context.Background(), RefreshRequest{
		AccessToken:  "not-a-jwt",
		RefreshToken: "whatever",
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestLogoutRevokesSession(t *testing.T) {
	sessions := &stubSessionManager{}
	svc, _ := NewService(ServiceParams{
		UserRepo:        &stubUserRepo{},
		MembershipsRepo: &stubMembershipsRepo{},
		SessionManager:  sessions,
		JWTConfig:       testJWTConfig(),
	})

	if err := svc.Logout(context.Background(), "jti-123"); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if sessions.revoked != "jti-123" {
		t.Errorf("expected session revocation, got %q", sessions.revoked)
	}

	err := svc.Logout(context.Background(), "  ")
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized for empty jti, got %v", err)
	}
}

package auth

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pitchpartner/pitchpartner-backend/internal/memberships"
	pkgAuth "github.com/pitchpartner/pitchpartner-backend/pkg/auth"
	"github.com/pitchpartner/pitchpartner-backend/pkg/auth/session"
	"github.com/pitchpartner/pitchpartner-backend/pkg/enums"
	pkgerrors "github.com/pitchpartner/pitchpartner-backend/pkg/errors"
)

type stubSwitchMemberships struct {
	membership *memberships.MembershipWithClub
}

func (s *stubSwitchMemberships) GetMembershipWithClub(_ context.Context, _, _ uuid.UUID) (*memberships.MembershipWithClub, error) {
	if s.membership == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return s.membership, nil
}

type stubSwitchRotator struct {
	err error
}

func (s *stubSwitchRotator) Rotate(_ context.Context, _, _ string) (string, string, error) {
	if s.err != nil {
		return "", "", s.err
	}
	id := uuid.NewString()
	return id, "refresh-" + id, nil
}

type stubClubActivity struct {
	stamped *uuid.UUID
}

func (s *stubClubActivity) UpdateLastActiveAt(_ context.Context, clubID uuid.UUID) error {
	s.stamped = &clubID
	return nil
}

func activeMembership(userID, clubID uuid.UUID) *memberships.MembershipWithClub {
	return &memberships.MembershipWithClub{
		MembershipID: uuid.New(),
		ClubID:       clubID,
		UserID:       userID,
		ClubName:     "ASD Secondo Club",
		Role:         enums.MemberRoleAdmin,
		Status:       enums.MembershipStatusActive,
	}
}

func TestSwitchClub(t *testing.T) {
	userID := uuid.New()
	clubID := uuid.New()
	activity := &stubClubActivity{}
	svc, err := NewSwitchClubService(SwitchClubServiceParams{
		MembershipsRepo: &stubSwitchMemberships{membership: activeMembership(userID, clubID)},
		SessionManager:  &stubSwitchRotator{},
		JWTConfig:       testJWTConfig(),
		ClubRepo:        activity,
	})
	if err != nil {
		t.Fatalf("new switch service: %v", err)
	}

	res, err := svc.Switch(context.Background(), SwitchClubInput{
		UserID:        userID,
		ClubID:        clubID,
		AccessTokenID: "old-jti",
		RefreshToken:  "refresh-old",
	})
	if err != nil {
		t.Fatalf("switch club: %v", err)
	}
	if res.Club.ID != clubID || res.Club.Role != enums.MemberRoleAdmin {
		t.Fatalf("unexpected club summary %+v", res.Club)
	}
	if activity.stamped == nil || *activity.stamped != clubID {
		t.Error("expected club activity stamp")
	}

	claims, err := pkgAuth.ParseAccessToken(testJWTConfig(), res.AccessToken)
	if err != nil {
		t.Fatalf("parse minted token: %v", err)
	}
	if claims.ActiveClubID == nil || *claims.ActiveClubID != clubID {
		t.Error("token not scoped to the switched club")
	}
	if claims.Role != enums.MemberRoleAdmin {
		t.Errorf("expected admin role in claims, got %s", claims.Role)
	}
}

func TestSwitchClub_NoMembership(t *testing.T) {
	svc, _ := NewSwitchClubService(SwitchClubServiceParams{
		MembershipsRepo: &stubSwitchMemberships{},
		SessionManager:  &stubSwitchRotator{},
		JWTConfig:       testJWTConfig(),
		ClubRepo:        &stubClubActivity{},
	})

	_, err := svc.Switch(context.Background(), SwitchClubInput{
		UserID: uuid.New(),
		ClubID: uuid.New(),
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeForbidden {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestSwitchClub_InactiveMembership(t *testing.T) {
	userID := uuid.New()
	clubID := uuid.New()
	membership := activeMembership(userID, clubID)
	membership.Status = enums.MembershipStatusSuspended
	svc, _ := NewSwitchClubService(SwitchClubServiceParams{
		MembershipsRepo: &stubSwitchMemberships{membership: membership},
		SessionManager:  &stubSwitchRotator{},
		JWTConfig:       testJWTConfig(),
		ClubRepo:        &stubClubActivity{},
	})

	_, err := svc.Switch(context.Background(), SwitchClubInput{UserID: userID, ClubID: clubID})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeForbidden {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestSwitchClub_InvalidRefresh(t *testing.T) {
	userID := uuid.New()
	clubID := uuid.New()
	svc, _ := NewSwitchClubService(SwitchClubServiceParams{
		MembershipsRepo: &stubSwitchMemberships{membership: activeMembership(userID, clubID)},
		SessionManager:  &stubSwitchRotator{err: session.ErrInvalidRefreshToken},
		JWTConfig:       testJWTConfig(),
		ClubRepo:        &stubClubActivity{},
	})

	_, err := svc.Switch(context.Background(), SwitchClubInput{UserID: userID, ClubID: clubID})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

package auth

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pitchpartner/pitchpartner-backend/internal/memberships"
	pkgAuth "github.com/pitchpartner/pitchpartner-backend/pkg/auth"
	"github.com/pitchpartner/pitchpartner-backend/pkg/auth/session"
	"github.com/pitchpartner/pitchpartner-backend/pkg/config"
	"github.com/pitchpartner/pitchpartner-backend/pkg/enums"
	pkgerrors "github.com/pitchpartner/pitchpartner-backend/pkg/errors"
)

// SwitchClubInput captures the data required to switch the active club.
type SwitchClubInput struct {
	UserID        uuid.UUID
	ClubID        uuid.UUID
	AccessTokenID string
	RefreshToken  string
}

type clubActivityUpdater interface {
	UpdateLastActiveAt(ctx context.Context, clubID uuid.UUID) error
}

type switchMembershipsRepository interface {
	GetMembershipWithClub(ctx context.Context, userID, clubID uuid.UUID) (*memberships.MembershipWithClub, error)
}

type switchSessionRotator interface {
	Rotate(ctx context.Context, oldAccessID, provided string) (string, string, error)
}

type switchClubService struct {
	memberships switchMembershipsRepository
	session     switchSessionRotator
	jwtCfg      config.JWTConfig
	clubs       clubActivityUpdater
}

// SwitchClubServiceParams bundles dependencies for the switch flow.
type SwitchClubServiceParams struct {
	MembershipsRepo switchMembershipsRepository
	SessionManager  switchSessionRotator
	JWTConfig       config.JWTConfig
	ClubRepo        clubActivityUpdater
}

// NewSwitchClubService constructs the service.
func NewSwitchClubService(params SwitchClubServiceParams) (SwitchClubService, error) {
	if params.MembershipsRepo == nil {
		return nil, errors.New("memberships repository required")
	}
	if params.SessionManager == nil {
		return nil, errors.New("session manager required")
	}
	if params.ClubRepo == nil {
		return nil, errors.New("club repository required")
	}
	return &switchClubService{
		memberships: params.MembershipsRepo,
		session:     params.SessionManager,
		jwtCfg:      params.JWTConfig,
		clubs:       params.ClubRepo,
	}, nil
}

// SwitchClubService is the interface exposed to the controller.
type SwitchClubService interface {
	Switch(ctx context.Context, input SwitchClubInput) (*SwitchClubResponse, error)
}

func (s *switchClubService) Switch(ctx context.Context, input SwitchClubInput) (*SwitchClubResponse, error) {
	membership, err := s.memberships.GetMembershipWithClub(ctx, input.UserID, input.ClubID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeForbidden, "club membership required")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup membership")
	}
	if membership.Status != enums.MembershipStatusActive {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "club membership inactive")
	}

	if err := s.clubs.UpdateLastActiveAt(ctx, input.ClubID); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update club activity")
	}

	newAccessID, newRefreshToken, err := s.session.Rotate(ctx, input.AccessTokenID, input.RefreshToken)
	if err != nil {
		if errors.Is(err, session.ErrInvalidRefreshToken) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid refresh token")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "rotate session")
	}

	payload := pkgAuth.AccessTokenPayload{
		UserID:       input.UserID,
		ActiveClubID: &input.ClubID,
		Role:         membership.Role,
		JTI:          newAccessID,
	}
	accessToken, err := pkgAuth.MintAccessToken(s.jwtCfg, time.Now().UTC(), payload)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint jwt")
	}

	return &SwitchClubResponse{
		AccessToken:  accessToken,
		RefreshToken: newRefreshToken,
		Club: ClubSummary{
			ID:   membership.ClubID,
			Name: membership.ClubName,
			Role: membership.Role,
		},
	}, nil
}

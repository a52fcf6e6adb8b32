package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pitchpartner/pitchpartner-backend/internal/clubs"
	"github.com/pitchpartner/pitchpartner-backend/internal/memberships"
	"github.com/pitchpartner/pitchpartner-backend/internal/users"
	"github.com/pitchpartner/pitchpartner-backend/pkg/config"
	"github.com/pitchpartner/pitchpartner-backend/pkg/db"
	"github.com/pitchpartner/pitchpartner-backend/pkg/db/models"
	"github.com/pitchpartner/pitchpartner-backend/pkg/enums"
	pkgerrors "github.com/pitchpartner/pitchpartner-backend/pkg/errors"
	"github.com/pitchpartner/pitchpartner-backend/pkg/security"
	"github.com/pitchpartner/pitchpartner-backend/pkg/types"
)

// RegisterRequest contains the payload required for onboarding a new club.
type RegisterRequest struct {
	FirstName string         `json:"first_name" validate:"required"`
	LastName  string         `json:"last_name" validate:"required"`
	Email     string         `json:"email" validate:"required,email"`
	Password  string         `json:"password" validate:"required,min=8"`
	Phone     *string        `json:"phone,omitempty"`
	ClubName  string         `json:"club_name" validate:"required"`
	Sport     *string        `json:"sport,omitempty"`
	League    *string        `json:"league,omitempty"`
	Address   *types.Address `json:"address,omitempty"`
	AcceptTOS bool           `json:"accept_tos"`
}

// RegisterService handles the onboarding transaction.
type RegisterService interface {
	Register(ctx context.Context, req RegisterRequest) error
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type registerUserRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, dto users.CreateUserDTO) (*models.User, error)
	UpdateClubIDs(ctx context.Context, id uuid.UUID, clubIDs []uuid.UUID) error
}

type registerClubRepository interface {
	Create(ctx context.Context, dto clubs.CreateClubDTO) (*models.Club, error)
}

type registerMembershipRepository interface {
	CreateMembership(ctx context.Context, clubID, userID uuid.UUID, role enums.MemberRole, invitedBy *uuid.UUID, status enums.MembershipStatus) (*models.ClubMembership, error)
}

// RegisterServiceParams packages the dependencies for the registration flow.
// Repos are built per transaction so the whole flow commits or rolls back
// as one unit.
type RegisterServiceParams struct {
	TxRunner              txRunner
	UserRepoFactory       func(tx *gorm.DB) registerUserRepository
	ClubRepoFactory       func(tx *gorm.DB) registerClubRepository
	MembershipRepoFactory func(tx *gorm.DB) registerMembershipRepository
	PasswordConfig        config.PasswordConfig
}

// DefaultRegisterParams wires the params against the real database client.
func DefaultRegisterParams(client *db.Client, passwordCfg config.PasswordConfig) RegisterServiceParams {
	return RegisterServiceParams{
		TxRunner: client,
		UserRepoFactory: func(tx *gorm.DB) registerUserRepository {
			return users.NewRepository(tx)
		},
		ClubRepoFactory: func(tx *gorm.DB) registerClubRepository {
			return clubs.NewRepository(tx)
		},
		MembershipRepoFactory: func(tx *gorm.DB) registerMembershipRepository {
			return memberships.NewRepository(tx)
		},
		PasswordConfig: passwordCfg,
	}
}

type registerService struct {
	params RegisterServiceParams
}

// NewRegisterService builds a registration service with the provided dependencies.
func NewRegisterService(params RegisterServiceParams) (RegisterService, error) {
	if params.TxRunner == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "transaction runner required")
	}
	if params.UserRepoFactory == nil || params.ClubRepoFactory == nil || params.MembershipRepoFactory == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "repository factories required")
	}
	return &registerService{params: params}, nil
}

func (s *registerService) Register(ctx context.Context, req RegisterRequest) error {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}
	if strings.TrimSpace(req.ClubName) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "club_name is required")
	}
	if len(req.Password) < 8 {
		return pkgerrors.New(pkgerrors.CodeValidation, "password must be at least 8 characters")
	}
	if !req.AcceptTOS {
		return pkgerrors.New(pkgerrors.CodeValidation, "accept_tos must be true")
	}

	passwordHash, err := security.HashPassword(req.Password, s.params.PasswordConfig)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	return s.params.TxRunner.WithTx(ctx, func(tx *gorm.DB) error {
		userRepo := s.params.UserRepoFactory(tx)
		clubRepo := s.params.ClubRepoFactory(tx)
		membershipRepo := s.params.MembershipRepoFactory(tx)

		if _, err := userRepo.FindByEmail(ctx, email); err == nil {
			return pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
		} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check user email")
		}

		user, err := userRepo.Create(ctx, users.CreateUserDTO{
			Email:        email,
			PasswordHash: passwordHash,
			FirstName:    req.FirstName,
			LastName:     req.LastName,
			Phone:        req.Phone,
		})
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create user")
		}

		club, err := clubRepo.Create(ctx, clubs.CreateClubDTO{
			Name:    strings.TrimSpace(req.ClubName),
			Sport:   req.Sport,
			League:  req.League,
			Address: req.Address,
			OwnerID: user.ID,
		})
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create club")
		}

		if _, err := membershipRepo.CreateMembership(
			ctx,
			club.ID,
			user.ID,
			enums.MemberRoleOwner,
			nil,
			enums.MembershipStatusActive,
		); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create membership")
		}

		if err := userRepo.UpdateClubIDs(ctx, user.ID, []uuid.UUID{club.ID}); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "associate club with user")
		}

		return nil
	})
}

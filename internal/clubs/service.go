package clubs

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/pitchpartner/pitchpartner-backend/internal/memberships"
	"github.com/pitchpartner/pitchpartner-backend/internal/users"
	"github.com/pitchpartner/pitchpartner-backend/pkg/config"
	"github.com/pitchpartner/pitchpartner-backend/pkg/db/models"
	"github.com/pitchpartner/pitchpartner-backend/pkg/enums"
	pkgerrors "github.com/pitchpartner/pitchpartner-backend/pkg/errors"
	"github.com/pitchpartner/pitchpartner-backend/pkg/security"
	"github.com/pitchpartner/pitchpartner-backend/pkg/types"
)

type clubRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Club, error)
	Update(ctx context.Context, club *models.Club) error
}

type membershipsRepository interface {
	UserHasRole(ctx context.Context, userID, clubID uuid.UUID, roles ...enums.MemberRole) (bool, error)
	ListClubUsers(ctx context.Context, clubID uuid.UUID) ([]memberships.ClubUserDTO, error)
	GetMembership(ctx context.Context, userID, clubID uuid.UUID) (*models.ClubMembership, error)
	CreateMembership(ctx context.Context, clubID, userID uuid.UUID, role enums.MemberRole, invitedBy *uuid.UUID, status enums.MembershipStatus) (*models.ClubMembership, error)
	DeleteMembership(ctx context.Context, clubID, userID uuid.UUID) error
	CountMembersWithRoles(ctx context.Context, clubID uuid.UUID, roles ...enums.MemberRole) (int64, error)
}

type usersRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, dto users.CreateUserDTO) (*models.User, error)
	UpdatePasswordHash(ctx context.Context, id uuid.UUID, hash string) error
}

// Service exposes club operations.
type Service interface {
	GetByID(ctx context.Context, id uuid.UUID) (*ClubDTO, error)
	Update(ctx context.Context, userID, clubID uuid.UUID, input UpdateClubInput) (*ClubDTO, error)
	ListUsers(ctx context.Context, userID, clubID uuid.UUID) ([]memberships.ClubUserDTO, error)
	InviteUser(ctx context.Context, inviterID, clubID uuid.UUID, input InviteUserInput) (*memberships.ClubUserDTO, string, error)
	RemoveUser(ctx context.Context, actorID, clubID, targetUserID uuid.UUID) error
}

type service struct {
	repo        clubRepository
	memberships membershipsRepository
	users       usersRepository
	passwordCfg config.PasswordConfig
}

// NewService builds a club service with the provided repositories.
func NewService(repo clubRepository, memberships membershipsRepository, usersRepo usersRepository, passwordCfg config.PasswordConfig) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("club repository required")
	}
	if memberships == nil {
		return nil, fmt.Errorf("memberships repository required")
	}
	if usersRepo == nil {
		return nil, fmt.Errorf("users repository required")
	}
	return &service{
		repo:        repo,
		memberships: memberships,
		users:       usersRepo,
		passwordCfg: passwordCfg,
	}, nil
}

// UpdateClubInput captures the allowed club fields for mutation.
type UpdateClubInput struct {
	Name           *string
	LegalName      *string
	Description    *string
	Sport          *string
	League         *string
	FoundedYear    *int
	Phone          *string
	Email          *string
	Website        *string
	Address        *types.Address
	Social         *types.Social
	LogoURL        *string
	BannerURL      *string
	PrimaryColor   *string
	SecondaryColor *string
	Tags           *[]string
}

// InviteUserInput captures the data required to invite a club user.
type InviteUserInput struct {
	Email     string
	FirstName string
	LastName  string
	Role      enums.MemberRole
}

func (s *service) createNewUser(ctx context.Context, email, firstName, lastName string, clubID uuid.UUID) (*models.User, string, error) {
	if !strings.Contains(email, "@") {
		return nil, "", pkgerrors.New(pkgerrors.CodeValidation, "invalid email")
	}

	tempPassword, err := security.GenerateTempPassword(16)
	if err != nil {
		return nil, "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generate temp password")
	}
	hash, err := security.HashPassword(tempPassword, s.passwordCfg)
	if err != nil {
		return nil, "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	user, err := s.users.Create(ctx, users.CreateUserDTO{
		Email:        email,
		FirstName:    firstName,
		LastName:     lastName,
		PasswordHash: hash,
		ClubIDs:      []uuid.UUID{clubID},
	})
	if err != nil {
		return nil, "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create user")
	}
	return user, tempPassword, nil
}

func (s *service) resetUserPassword(ctx context.Context, userID uuid.UUID) (string, error) {
	tempPassword, err := security.GenerateTempPassword(16)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generate temp password")
	}
	hash, err := security.HashPassword(tempPassword, s.passwordCfg)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}
	if err := s.users.UpdatePasswordHash(ctx, userID, hash); err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update user password")
	}
	return tempPassword, nil
}

func (s *service) fetchClubUser(ctx context.Context, clubID, userID uuid.UUID) (*memberships.ClubUserDTO, error) {
	users, err := s.memberships.ListClubUsers(ctx, clubID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list club users")
	}
	for _, u := range users {
		if u.UserID == userID {
			return &u, nil
		}
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "membership not found")
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*ClubDTO, error) {
	club, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "club not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load club")
	}
	return FromModel(club), nil
}

func (s *service) Update(ctx context.Context, userID, clubID uuid.UUID, input UpdateClubInput) (*ClubDTO, error) {
	allowedRoles := []enums.MemberRole{enums.MemberRoleOwner, enums.MemberRoleAdmin}
	ok, err := s.memberships.UserHasRole(ctx, userID, clubID, allowedRoles...)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check membership")
	}
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "insufficient club role")
	}

	club, err := s.repo.FindByID(ctx, clubID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "club not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load club")
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "name cannot be empty")
		}
		club.Name = name
	}
	if input.LegalName != nil {
		club.LegalName = cloneStringPtr(input.LegalName)
	}
	if input.Description != nil {
		club.Description = cloneStringPtr(input.Description)
	}
	if input.Sport != nil {
		club.Sport = cloneStringPtr(input.Sport)
	}
	if input.League != nil {
		club.League = cloneStringPtr(input.League)
	}
	if input.FoundedYear != nil {
		year := *input.FoundedYear
		club.FoundedYear = &year
	}
	if input.Phone != nil {
		club.Phone = cloneStringPtr(input.Phone)
	}
	if input.Email != nil {
		club.Email = cloneStringPtr(input.Email)
	}
	if input.Website != nil {
		club.Website = cloneStringPtr(input.Website)
	}
	if input.Address != nil {
		club.Address = cloneAddress(input.Address)
	}
	if input.Social != nil {
		club.Social = cloneSocial(input.Social)
	}
	if input.LogoURL != nil {
		club.LogoURL = cloneStringPtr(input.LogoURL)
	}
	if input.BannerURL != nil {
		club.BannerURL = cloneStringPtr(input.BannerURL)
	}
	if input.PrimaryColor != nil {
		club.PrimaryColor = cloneStringPtr(input.PrimaryColor)
	}
	if input.SecondaryColor != nil {
		club.SecondaryColor = cloneStringPtr(input.SecondaryColor)
	}
	if input.Tags != nil {
		club.Tags = cloneTags(*input.Tags)
	}

	if err := s.repo.Update(ctx, club); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update club")
	}
	return FromModel(club), nil
}

func (s *service) ListUsers(ctx context.Context, userID, clubID uuid.UUID) ([]memberships.ClubUserDTO, error) {
	allowedRoles := []enums.MemberRole{enums.MemberRoleOwner, enums.MemberRoleAdmin}
	ok, err := s.memberships.UserHasRole(ctx, userID, clubID, allowedRoles...)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check membership")
	}
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "insufficient club role")
	}

	users, err := s.memberships.ListClubUsers(ctx, clubID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list club users")
	}
	return users, nil
}

func (s *service) InviteUser(ctx context.Context, inviterID, clubID uuid.UUID, input InviteUserInput) (*memberships.ClubUserDTO, string, error) {
	allowedRoles := []enums.MemberRole{enums.MemberRoleOwner, enums.MemberRoleAdmin}
	ok, err := s.memberships.UserHasRole(ctx, inviterID, clubID, allowedRoles...)
	if err != nil {
		return nil, "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check membership")
	}
	if !ok {
		return nil, "", pkgerrors.New(pkgerrors.CodeForbidden, "insufficient club role")
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" {
		return nil, "", pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}
	if !input.Role.IsValid() {
		return nil, "", pkgerrors.New(pkgerrors.CodeValidation, "invalid role")
	}

	var usr *models.User
	var tempPassword string
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			usr, tempPassword, err = s.createNewUser(ctx, email, input.FirstName, input.LastName, clubID)
			if err != nil {
				return nil, "", err
			}
		} else {
			return nil, "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup user")
		}
	} else {
		usr = user
	}

	membership, err := s.memberships.GetMembership(ctx, usr.ID, clubID)
	if err == nil && membership != nil {
		dto, fetchErr := s.fetchClubUser(ctx, clubID, usr.ID)
		if fetchErr != nil {
			return nil, "", fetchErr
		}
		return dto, "", nil
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check membership")
	}

	if tempPassword == "" {
		tempPassword, err = s.resetUserPassword(ctx, usr.ID)
		if err != nil {
			return nil, "", err
		}
	}

	if _, err := s.memberships.CreateMembership(ctx, clubID, usr.ID, input.Role, &inviterID, enums.MembershipStatusInvited); err != nil {
		return nil, "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create membership")
	}

	dto, fetchErr := s.fetchClubUser(ctx, clubID, usr.ID)
	if fetchErr != nil {
		return nil, "", fetchErr
	}
	return dto, tempPassword, nil
}

func (s *service) RemoveUser(ctx context.Context, actorID, clubID, targetUserID uuid.UUID) error {
	allowedRoles := []enums.MemberRole{enums.MemberRoleOwner, enums.MemberRoleAdmin}
	ok, err := s.memberships.UserHasRole(ctx, actorID, clubID, allowedRoles...)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check membership")
	}
	if !ok {
		return pkgerrors.New(pkgerrors.CodeForbidden, "insufficient club role")
	}

	membership, err := s.memberships.GetMembership(ctx, targetUserID, clubID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "membership not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load membership")
	}

	if membership.Role == enums.MemberRoleOwner {
		count, err := s.memberships.CountMembersWithRoles(ctx, clubID, enums.MemberRoleOwner)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count owners")
		}
		if count <= 1 {
			return pkgerrors.New(pkgerrors.CodeConflict, "cannot remove last owner")
		}
	}

	if err := s.memberships.DeleteMembership(ctx, clubID, targetUserID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete membership")
	}

	return nil
}

func cloneStringPtr(value *string) *string {
	if value == nil {
		return nil
	}
	cpy := *value
	return &cpy
}

func cloneSocial(value *types.Social) *types.Social {
	if value == nil {
		return nil
	}
	cpy := *value
	return &cpy
}

func cloneAddress(value *types.Address) *types.Address {
	if value == nil {
		return nil
	}
	cpy := *value
	return &cpy
}

func cloneTags(value []string) pq.StringArray {
	if value == nil {
		return nil
	}
	res := make(pq.StringArray, len(value))
	copy(res, value)
	return res
}

package memberships

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pitchpartner/pitchpartner-backend/pkg/db/models"
	"github.com/pitchpartner/pitchpartner-backend/pkg/enums"
)

// Repository exposes membership persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds the repo to the provided GORM connection.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListUserClubs returns the clubs a user belongs to along with membership metadata.
func (r *Repository) ListUserClubs(ctx context.Context, userID uuid.UUID) ([]MembershipWithClub, error) {
	var rows []membershipWithClubRow

	err := r.db.WithContext(ctx).
		Model(&models.ClubMembership{}).
		Select("club_memberships.*, clubs.name AS club_name").
		Joins("JOIN clubs ON clubs.id = club_memberships.club_id").
		Where("club_memberships.user_id = ?", userID).
		Order("clubs.name").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	return membershipRowsToDTO(rows), nil
}

// GetMembership retrieves a membership by user and club.
func (r *Repository) GetMembership(ctx context.Context, userID, clubID uuid.UUID) (*models.ClubMembership, error) {
	var membership models.ClubMembership
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND club_id = ?", userID, clubID).
		First(&membership).Error
	if err != nil {
		return nil, err
	}
	return &membership, nil
}

// CreateMembership persists a new membership record.
func (r *Repository) CreateMembership(ctx context.Context, clubID, userID uuid.UUID, role enums.MemberRole, invitedBy *uuid.UUID, status enums.MembershipStatus) (*models.ClubMembership, error) {
	if !role.IsValid() {
		return nil, fmt.Errorf("invalid member role %q", role)
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid membership status %q", status)
	}

	membership := &models.ClubMembership{
		ClubID:          clubID,
		UserID:          userID,
		Role:            role,
		Status:          status,
		InvitedByUserID: invitedBy,
	}

	if err := r.db.WithContext(ctx).Create(membership).Error; err != nil {
		return nil, err
	}
	return membership, nil
}

// DeleteMembership removes the membership linking a user to a club.
func (r *Repository) DeleteMembership(ctx context.Context, clubID, userID uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Where("club_id = ? AND user_id = ?", clubID, userID).
		Delete(&models.ClubMembership{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// UserHasRole reports whether the user holds one of the provided roles for the club.
func (r *Repository) UserHasRole(ctx context.Context, userID, clubID uuid.UUID, roles ...enums.MemberRole) (bool, error) {
	if len(roles) == 0 {
		return false, nil
	}

	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.ClubMembership{}).
		Where("user_id = ? AND club_id = ? AND role IN ?", userID, clubID, roles).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// CountMembersWithRoles counts club members holding any of the given roles.
func (r *Repository) CountMembersWithRoles(ctx context.Context, clubID uuid.UUID, roles ...enums.MemberRole) (int64, error) {
	if len(roles) == 0 {
		return 0, nil
	}

	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.ClubMembership{}).
		Where("club_id = ? AND role IN ?", clubID, roles).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

// GetMembershipWithClub returns membership details joined with club metadata.
func (r *Repository) GetMembershipWithClub(ctx context.Context, userID, clubID uuid.UUID) (*MembershipWithClub, error) {
	var row membershipWithClubRow
	err := r.db.WithContext(ctx).
		Model(&models.ClubMembership{}).
		Select("club_memberships.*, clubs.name AS club_name").
		Joins("JOIN clubs ON clubs.id = club_memberships.club_id").
		Where("club_memberships.user_id = ? AND club_memberships.club_id = ?", userID, clubID).
		Scan(&row).Error
	if err != nil {
		return nil, err
	}
	dto := membershipWithClubFromRow(row)
	return &dto, nil
}

// ListClubUsers returns memberships for the club along with user metadata.
func (r *Repository) ListClubUsers(ctx context.Context, clubID uuid.UUID) ([]ClubUserDTO, error) {
	var rows []clubUserRow
	err := r.db.WithContext(ctx).
		Model(&models.ClubMembership{}).
		Select("club_memberships.*, users.email, users.first_name, users.last_name, users.last_login_at").
		Joins("JOIN users ON users.id = club_memberships.user_id").
		Where("club_memberships.club_id = ?", clubID).
		Order("club_memberships.created_at").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return clubUsersFromRows(rows), nil
}

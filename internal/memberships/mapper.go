package memberships

import (
	"time"

	"github.com/pitchpartner/pitchpartner-backend/pkg/db/models"
)

type membershipWithClubRow struct {
	models.ClubMembership
	ClubName string `gorm:"column:club_name"`
}

func membershipWithClubFromRow(row membershipWithClubRow) MembershipWithClub {
	return MembershipWithClub{
		MembershipID:    row.ID,
		ClubID:          row.ClubID,
		UserID:          row.UserID,
		ClubName:        row.ClubName,
		Role:            row.Role,
		Status:          row.Status,
		InvitedByUserID: copyUUIDPointer(row.InvitedByUserID),
		CreatedAt:       row.CreatedAt,
		UpdatedAt:       row.UpdatedAt,
	}
}

func membershipRowsToDTO(rows []membershipWithClubRow) []MembershipWithClub {
	out := make([]MembershipWithClub, 0, len(rows))
	for _, row := range rows {
		out = append(out, membershipWithClubFromRow(row))
	}
	return out
}

type clubUserRow struct {
	models.ClubMembership
	Email       string     `gorm:"column:email"`
	FirstName   string     `gorm:"column:first_name"`
	LastName    string     `gorm:"column:last_name"`
	LastLoginAt *time.Time `gorm:"column:last_login_at"`
}

func clubUsersFromRows(rows []clubUserRow) []ClubUserDTO {
	out := make([]ClubUserDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, ClubUserDTO{
			MembershipID: row.ID,
			ClubID:       row.ClubID,
			UserID:       row.UserID,
			Email:        row.Email,
			FirstName:    row.FirstName,
			LastName:     row.LastName,
			Role:         row.Role,
			Status:       row.Status,
			CreatedAt:    row.CreatedAt,
			LastLoginAt:  row.LastLoginAt,
		})
	}
	return out
}

package leads

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/pitchpartner/pitchpartner-backend/pkg/db/models"
	"github.com/pitchpartner/pitchpartner-backend/pkg/enums"
	pkgpagination "github.com/pitchpartner/pitchpartner-backend/pkg/pagination"
)

func setupLeadsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	schema := `
CREATE TABLE IF NOT EXISTS leads (
  id TEXT PRIMARY KEY,
  club_id TEXT NOT NULL,
  company_name TEXT NOT NULL,
  contact_name TEXT,
  contact_email TEXT,
  contact_phone TEXT,
  industry TEXT,
  status TEXT NOT NULL DEFAULT 'new',
  source TEXT,
  notes TEXT,
  tags TEXT,
  last_contact_at DATETIME,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(schema).Error)
	return db
}

func createLead(t *testing.T, db *gorm.DB, clubID uuid.UUID, company string, status enums.LeadStatus, created time.Time) *models.Lead {
	t.Helper()

	lead := &models.Lead{
		ID:          uuid.New(),
		ClubID:      clubID,
		CompanyName: company,
		Status:      status,
		CreatedAt:   created,
		UpdatedAt:   created,
	}
	require.NoError(t, db.Create(lead).Error)
	return lead
}

func TestRepositoryList_pagination(t *testing.T) {
	db := setupLeadsTestDB(t)
	repo := NewRepository(db)

	clubID := uuid.New()
	now := time.Now().UTC().Truncate(time.Second)
	createLead(t, db, clubID, "Forno Antico", enums.LeadStatusNew, now.Add(-time.Hour))
	newest := createLead(t, db, clubID, "Bar Centrale", enums.LeadStatusContacted, now)

	rows, err := repo.List(context.Background(), listQuery{clubID: clubID, limit: 1})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Bar Centrale", rows[0].CompanyName)

	cursor := &pkgpagination.Cursor{CreatedAt: newest.CreatedAt, ID: newest.ID}
	second, err := repo.List(context.Background(), listQuery{clubID: clubID, limit: 1, cursor: cursor})
	require.NoError(t, err)
	require.Len(t, second, 1)
	assert.Equal(t, "Forno Antico", second[0].CompanyName)
}

func TestRepositoryList_statusFilterAndClubScope(t *testing.T) {
	db := setupLeadsTestDB(t)
	repo := NewRepository(db)

	clubID := uuid.New()
	otherClub := uuid.New()
	now := time.Now().UTC().Truncate(time.Second)
	createLead(t, db, clubID, "Pizzeria Da Gino", enums.LeadStatusNew, now.Add(-time.Minute))
	won := createLead(t, db, clubID, "Banca Locale", enums.LeadStatusWon, now)
	createLead(t, db, otherClub, "Altra Squadra SRL", enums.LeadStatusWon, now)

	status := enums.LeadStatusWon
	rows, err := repo.List(context.Background(), listQuery{clubID: clubID, status: &status, limit: 10})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, won.ID, rows[0].ID)
}

func TestRepositoryDelete_scopedToClub(t *testing.T) {
	db := setupLeadsTestDB(t)
	repo := NewRepository(db)

	clubID := uuid.New()
	lead := createLead(t, db, clubID, "Gelateria Nord", enums.LeadStatusNew, time.Now().UTC())

	err := repo.Delete(context.Background(), uuid.New(), lead.ID)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	require.NoError(t, repo.Delete(context.Background(), clubID, lead.ID))

	_, err = repo.FindByID(context.Background(), clubID, lead.ID)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

package store

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Saran-k-ece/Forensync/models"
)

func newTestStore(t *testing.T) *EvidenceStore {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Evidence{}))
	return New(db)
}

func newEvidence() models.Evidence {
	return models.Evidence{
		TagID:        "TAG-1",
		Location:     "Lab A",
		EvidenceName: "Knife",
		EvidenceType: models.TypePhysical,
	}
}

func strPtr(s string) *string { return &s }

func TestCreate(t *testing.T) {
	t.Run("applies defaults and generates id", func(t *testing.T) {
		s := newTestStore(t)
		e := newEvidence()
		require.NoError(t, s.Create(&e))

		assert.True(t, strings.HasPrefix(e.EvidenceID, "EV-"))
		assert.Equal(t, models.StatusCollected, e.Status)
		assert.True(t, e.IsNew)
		assert.False(t, e.Timestamp.IsZero())
		assert.Equal(t, "N/A", e.SubmittedBy)
		assert.Equal(t, "N/A", e.OfficerName)
		assert.Equal(t, "N/A", e.ComplainantName)
		assert.Equal(t, "N/A", e.Contact)
		assert.Equal(t, "N/A", e.ChainOfCustody)
		assert.Empty(t, e.ImageList())

		got, err := s.Get(e.EvidenceID)
		require.NoError(t, err)
		assert.Equal(t, e.EvidenceID, got.EvidenceID)
	})

	t.Run("keeps a provided status", func(t *testing.T) {
		s := newTestStore(t)
		e := newEvidence()
		e.Status = models.StatusInTransit
		require.NoError(t, s.Create(&e))
		assert.Equal(t, models.StatusInTransit, e.Status)
	})

	t.Run("invalid input persists nothing", func(t *testing.T) {
		s := newTestStore(t)
		for _, e := range []models.Evidence{
			{Location: "Lab A", EvidenceName: "Knife", EvidenceType: models.TypePhysical},
			{TagID: "TAG-1", EvidenceName: "Knife", EvidenceType: models.TypePhysical},
			{TagID: "TAG-1", Location: "Lab A", EvidenceType: models.TypePhysical},
			{TagID: "TAG-1", Location: "Lab A", EvidenceName: "Knife"},
			{TagID: "TAG-1", Location: "Lab A", EvidenceName: "Knife", EvidenceType: "Unknown"},
		} {
			err := s.Create(&e)
			assert.True(t, IsValidation(err), "want validation error, got %v", err)
		}

		records, err := s.List(ListFilter{})
		require.NoError(t, err)
		assert.Empty(t, records)
	})

	t.Run("id collision is a conflict", func(t *testing.T) {
		s := newTestStore(t)
		first := newEvidence()
		first.EvidenceID = "EV-1-FIXED"
		require.NoError(t, s.Create(&first))

		second := newEvidence()
		second.EvidenceID = "EV-1-FIXED"
		assert.ErrorIs(t, s.Create(&second), ErrConflict)
	})
}

func TestList(t *testing.T) {
	s := newTestStore(t)

	var ids []string
	for i, loc := range []string{"Lab A", "Van 2", "Lab A"} {
		e := newEvidence()
		e.Location = loc
		if i == 1 {
			e.Status = models.StatusInTransit
		}
		require.NoError(t, s.Create(&e))
		ids = append(ids, e.EvidenceID)
		time.Sleep(5 * time.Millisecond)
	}

	t.Run("newest first", func(t *testing.T) {
		records, err := s.List(ListFilter{})
		require.NoError(t, err)
		require.Len(t, records, 3)
		assert.Equal(t, ids[2], records[0].EvidenceID)
		assert.Equal(t, ids[1], records[1].EvidenceID)
		assert.Equal(t, ids[0], records[2].EvidenceID)
	})

	t.Run("status filter", func(t *testing.T) {
		records, err := s.List(ListFilter{Status: models.StatusInTransit})
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, ids[1], records[0].EvidenceID)
	})

	t.Run("location filter", func(t *testing.T) {
		records, err := s.List(ListFilter{Location: "Lab A"})
		require.NoError(t, err)
		assert.Len(t, records, 2)
	})
}

func TestUpdate(t *testing.T) {
	t.Run("partial update clears isNew", func(t *testing.T) {
		s := newTestStore(t)
		e := newEvidence()
		require.NoError(t, s.Create(&e))

		got, err := s.Update(e.EvidenceID, EvidenceUpdate{Status: strPtr(models.StatusStored)})
		require.NoError(t, err)
		assert.Equal(t, models.StatusStored, got.Status)
		assert.False(t, got.IsNew)
		// untouched fields survive
		assert.Equal(t, "Knife", got.EvidenceName)
		assert.Equal(t, "Lab A", got.Location)
	})

	t.Run("every enumerated status is accepted", func(t *testing.T) {
		s := newTestStore(t)
		e := newEvidence()
		require.NoError(t, s.Create(&e))

		for _, status := range []string{
			models.StatusInTransit, models.StatusStored, models.StatusUnderAnalysis,
			models.StatusReleased, models.StatusCollected,
		} {
			got, err := s.Update(e.EvidenceID, EvidenceUpdate{Status: strPtr(status)})
			require.NoError(t, err)
			assert.Equal(t, status, got.Status)

			fetched, err := s.Get(e.EvidenceID)
			require.NoError(t, err)
			assert.Equal(t, status, fetched.Status)
		}
	})

	t.Run("invalid enum values rejected", func(t *testing.T) {
		s := newTestStore(t)
		e := newEvidence()
		require.NoError(t, s.Create(&e))

		_, err := s.Update(e.EvidenceID, EvidenceUpdate{Status: strPtr("Misplaced")})
		assert.True(t, IsValidation(err))
		_, err = s.Update(e.EvidenceID, EvidenceUpdate{EvidenceType: strPtr("Unknown")})
		assert.True(t, IsValidation(err))

		got, err := s.Get(e.EvidenceID)
		require.NoError(t, err)
		assert.Equal(t, models.StatusCollected, got.Status)
		assert.True(t, got.IsNew, "rejected update must not clear isNew")
	})

	t.Run("unknown id", func(t *testing.T) {
		s := newTestStore(t)
		_, err := s.Update("EV-0-MISSING", EvidenceUpdate{Status: strPtr(models.StatusStored)})
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestMarkViewed(t *testing.T) {
	s := newTestStore(t)
	e := newEvidence()
	e.Description = "bagged and sealed"
	require.NoError(t, s.Create(&e))

	before, err := s.Get(e.EvidenceID)
	require.NoError(t, err)
	require.True(t, before.IsNew)

	after, err := s.MarkViewed(e.EvidenceID)
	require.NoError(t, err)
	assert.False(t, after.IsNew)

	// nothing else moved
	assert.Equal(t, before.TagID, after.TagID)
	assert.Equal(t, before.EvidenceName, after.EvidenceName)
	assert.Equal(t, before.EvidenceType, after.EvidenceType)
	assert.Equal(t, before.Location, after.Location)
	assert.Equal(t, before.Status, after.Status)
	assert.Equal(t, before.Description, after.Description)
	assert.True(t, before.Timestamp.Equal(after.Timestamp))

	_, err = s.MarkViewed("EV-0-MISSING")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDelete(t *testing.T) {
	s := newTestStore(t)
	e := newEvidence()
	require.NoError(t, s.Create(&e))

	assert.ErrorIs(t, s.Delete("EV-0-MISSING"), ErrNotFound)

	require.NoError(t, s.Delete(e.EvidenceID))
	_, err := s.Get(e.EvidenceID)
	assert.ErrorIs(t, err, ErrNotFound)

	records, err := s.List(ListFilter{})
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestAppendImages(t *testing.T) {
	s := newTestStore(t)
	e := newEvidence()
	require.NoError(t, s.Create(&e))

	got, err := s.AppendImages(e.EvidenceID, []string{"/uploads/a.jpg"})
	require.NoError(t, err)
	assert.Equal(t, []string{"/uploads/a.jpg"}, got.ImageList())

	got, err = s.AppendImages(e.EvidenceID, []string{"/uploads/b.jpg", "/uploads/c.jpg"})
	require.NoError(t, err)
	assert.Equal(t, []string{"/uploads/a.jpg", "/uploads/b.jpg", "/uploads/c.jpg"}, got.ImageList())

	_, err = s.AppendImages(e.EvidenceID, nil)
	assert.True(t, IsValidation(err))

	_, err = s.AppendImages("EV-0-MISSING", []string{"/uploads/x.jpg"})
	assert.ErrorIs(t, err, ErrNotFound)
}

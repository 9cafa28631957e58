package models

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func validEvidence() Evidence {
	return Evidence{
		TagID:        "TAG-1",
		Location:     "Lab A",
		EvidenceName: "Knife",
		EvidenceType: TypePhysical,
	}
}

func TestValidate(t *testing.T) {
	t.Run("valid input passes", func(t *testing.T) {
		e := validEvidence()
		require.NoError(t, e.Validate())
	})

	t.Run("missing required fields fail", func(t *testing.T) {
		for name, mutate := range map[string]func(*Evidence){
			"tagId":        func(e *Evidence) { e.TagID = "" },
			"location":     func(e *Evidence) { e.Location = "  " },
			"evidenceName": func(e *Evidence) { e.EvidenceName = "" },
			"evidenceType": func(e *Evidence) { e.EvidenceType = "" },
		} {
			t.Run(name, func(t *testing.T) {
				e := validEvidence()
				mutate(&e)
				assert.Error(t, e.Validate())
			})
		}
	})

	t.Run("unknown evidenceType fails", func(t *testing.T) {
		e := validEvidence()
		e.EvidenceType = "Ectoplasmic"
		assert.Error(t, e.Validate())
	})

	t.Run("unknown status fails", func(t *testing.T) {
		e := validEvidence()
		e.Status = "Lost"
		assert.Error(t, e.Validate())
	})

	t.Run("empty status is allowed and defaulted later", func(t *testing.T) {
		e := validEvidence()
		e.Status = ""
		assert.NoError(t, e.Validate())
	})
}

func TestEnumGates(t *testing.T) {
	for _, typ := range []string{TypePhysical, TypeDigital, TypeDocumentary, TypeBiological, TypeChemical, TypeTrace, TypeAudioVisual} {
		assert.True(t, ValidEvidenceType(typ), typ)
	}
	assert.False(t, ValidEvidenceType("physical")) // case matters

	for _, s := range []string{StatusCollected, StatusInTransit, StatusStored, StatusUnderAnalysis, StatusReleased} {
		assert.True(t, ValidStatus(s), s)
	}
	assert.False(t, ValidStatus("Archived"))
}

func TestNewEvidenceID(t *testing.T) {
	t.Run("format", func(t *testing.T) {
		id := NewEvidenceID()
		require.True(t, strings.HasPrefix(id, "EV-"), id)
		parts := strings.Split(id, "-")
		require.Len(t, parts, 3)
		assert.Len(t, parts[2], 9)
		assert.Equal(t, strings.ToUpper(parts[2]), parts[2])
	})

	t.Run("unique across 10000 calls", func(t *testing.T) {
		seen := make(map[string]bool, 10000)
		for i := 0; i < 10000; i++ {
			id := NewEvidenceID()
			require.False(t, seen[id], "collision on %s", id)
			seen[id] = true
		}
	})
}

func TestImageList(t *testing.T) {
	e := validEvidence()
	assert.Empty(t, e.ImageList())

	e.Images = datatypes.JSON(`["/uploads/a.jpg","/uploads/b.jpg"]`)
	assert.Equal(t, []string{"/uploads/a.jpg", "/uploads/b.jpg"}, e.ImageList())

	e.Images = datatypes.JSON(`not-json`)
	assert.Empty(t, e.ImageList())
}

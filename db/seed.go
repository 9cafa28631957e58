package db

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Saran-k-ece/Forensync/models"
)

// SeedDemoEvidence inserts a small fixed evidence set for local dashboard
// work. Re-running is a no-op thanks to the conflict clause.
func SeedDemoEvidence(db *gorm.DB) error {
	now := time.Now().UTC()
	records := []models.Evidence{
		{
			EvidenceID:      "EV-DEMO-0000001",
			TagID:           "TAG-7731",
			EvidenceName:    "Kitchen knife",
			EvidenceType:    models.TypePhysical,
			Location:        "Evidence Locker B-12",
			Status:          models.StatusStored,
			Description:     "Recovered from scene, bagged and sealed",
			Images:          mustImages([]string{"/uploads/demo-knife.jpg"}),
			IsNew:           false,
			SubmittedBy:     "Scanner 03",
			OfficerName:     "Insp. Rao",
			ComplainantName: "N/A",
			Contact:         "N/A",
			ChainOfCustody:  "Scene -> Transport -> Locker B-12",
			Timestamp:       now.Add(-48 * time.Hour),
		},
		{
			EvidenceID:      "EV-DEMO-0000002",
			TagID:           "TAG-5518",
			EvidenceName:    "USB flash drive",
			EvidenceType:    models.TypeDigital,
			Location:        "Forensics Lab A",
			Status:          models.StatusUnderAnalysis,
			Description:     "64GB drive, imaging in progress",
			IsNew:           false,
			SubmittedBy:     "Scanner 01",
			OfficerName:     "SI Kumar",
			ComplainantName: "N/A",
			Contact:         "N/A",
			ChainOfCustody:  "Scene -> Lab A",
			Timestamp:       now.Add(-20 * time.Hour),
		},
		{
			EvidenceID:      "EV-DEMO-0000003",
			TagID:           "TAG-9902",
			EvidenceName:    "Blood swab",
			EvidenceType:    models.TypeBiological,
			Location:        "Transport Van 2",
			Status:          models.StatusInTransit,
			Description:     "En route to the lab",
			IsNew:           true,
			SubmittedBy:     "Scanner 02",
			OfficerName:     "N/A",
			ComplainantName: "N/A",
			Contact:         "N/A",
			ChainOfCustody:  "Scene -> Transport Van 2",
			Timestamp:       now.Add(-1 * time.Hour),
		},
	}

	for _, rec := range records {
		if err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "evidence_id"}},
			DoNothing: true,
		}).Create(&rec).Error; err != nil {
			return err
		}
	}
	return nil
}

func mustImages(uris []string) datatypes.JSON {
	raw, err := json.Marshal(uris)
	if err != nil {
		return nil
	}
	return datatypes.JSON(raw)
}

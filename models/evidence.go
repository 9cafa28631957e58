package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Evidence type labels reported by the intake form and the hardware payload.
const (
	TypePhysical    = "Physical"
	TypeDigital     = "Digital"
	TypeDocumentary = "Documentary"
	TypeBiological  = "Biological"
	TypeChemical    = "Chemical"
	TypeTrace       = "Trace"
	TypeAudioVisual = "Audio/Visual"
)

// Workflow statuses. Any status may replace any other; there is no
// enforced transition graph.
const (
	StatusCollected     = "Collected"
	StatusInTransit     = "In Transit"
	StatusStored        = "Stored"
	StatusUnderAnalysis = "Under Analysis"
	StatusReleased      = "Released"
)

var evidenceTypes = map[string]bool{
	TypePhysical:    true,
	TypeDigital:     true,
	TypeDocumentary: true,
	TypeBiological:  true,
	TypeChemical:    true,
	TypeTrace:       true,
	TypeAudioVisual: true,
}

var statuses = map[string]bool{
	StatusCollected:     true,
	StatusInTransit:     true,
	StatusStored:        true,
	StatusUnderAnalysis: true,
	StatusReleased:      true,
}

func ValidEvidenceType(t string) bool { return evidenceTypes[t] }

func ValidStatus(s string) bool { return statuses[s] }

type Evidence struct {
	// EvidenceID is generated server-side, never client-supplied.
	EvidenceID   string `json:"evidenceId" gorm:"primaryKey;size:64"`
	TagID        string `json:"tagId" gorm:"index"`
	EvidenceName string `json:"evidenceName"`
	EvidenceType string `json:"evidenceType" gorm:"index"`
	Location     string `json:"location" gorm:"index"`
	Status       string `json:"status" gorm:"index"`
	Description  string `json:"description"`

	// Images holds an ordered JSON array of URIs, append-only via the API.
	Images datatypes.JSON `json:"images" gorm:"type:jsonb"`

	// IsNew marks records no operator has acknowledged yet.
	IsNew bool `json:"isNew"`

	SubmittedBy     string `json:"submittedBy"`
	OfficerName     string `json:"officerName"`
	ComplainantName string `json:"complainantName"`
	Contact         string `json:"contact"`
	ChainOfCustody  string `json:"chainOfCustody"`

	// Timestamp is the creation time and is immutable.
	Timestamp time.Time `json:"timestamp" gorm:"index"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewEvidenceID builds an id in the EV-<unix-ms>-<suffix> format the tag
// scanners and the dashboard already expect.
func NewEvidenceID() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:9])
	return fmt.Sprintf("EV-%d-%s", time.Now().UnixMilli(), suffix)
}

// Validate checks the creation invariants: required fields present and
// enum fields inside their sets. Status may be empty (defaulted later).
func (e *Evidence) Validate() error {
	if strings.TrimSpace(e.TagID) == "" {
		return fmt.Errorf("tagId is required")
	}
	if strings.TrimSpace(e.Location) == "" {
		return fmt.Errorf("location is required")
	}
	if strings.TrimSpace(e.EvidenceName) == "" {
		return fmt.Errorf("evidenceName is required")
	}
	if strings.TrimSpace(e.EvidenceType) == "" {
		return fmt.Errorf("evidenceType is required")
	}
	if !ValidEvidenceType(e.EvidenceType) {
		return fmt.Errorf("unknown evidenceType %q", e.EvidenceType)
	}
	if e.Status != "" && !ValidStatus(e.Status) {
		return fmt.Errorf("unknown status %q", e.Status)
	}
	return nil
}

// ImageList decodes the stored JSON image array. A missing column value
// decodes as an empty list.
func (e *Evidence) ImageList() []string {
	if len(e.Images) == 0 {
		return []string{}
	}
	var uris []string
	if err := json.Unmarshal(e.Images, &uris); err != nil {
		return []string{}
	}
	return uris
}

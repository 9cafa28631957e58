package store

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/Saran-k-ece/Forensync/models"
)

var (
	// ErrNotFound reports an unknown evidence id.
	ErrNotFound = errors.New("evidence not found")
	// ErrConflict reports an evidence id collision on create.
	ErrConflict = errors.New("evidence id already exists")
)

// ValidationError reports a missing or invalid field on input.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// IsValidation reports whether err is a field validation failure.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// EvidenceUpdate carries the mutable fields of a record. Nil means
// "leave unchanged"; updates apply only the provided subset.
type EvidenceUpdate struct {
	EvidenceName *string `json:"evidenceName"`
	EvidenceType *string `json:"evidenceType"`
	Location     *string `json:"location"`
	Status       *string `json:"status"`
	Description  *string `json:"description"`
}

// ListFilter narrows List results. Zero values match everything.
type ListFilter struct {
	Status   string
	Location string
}

// EvidenceStore mediates all evidence CRUD against the document store.
// Every operation is atomic at single-record granularity.
type EvidenceStore struct {
	db *gorm.DB
}

func New(db *gorm.DB) *EvidenceStore {
	return &EvidenceStore{db: db}
}

// Create validates the record, generates its id, applies defaults and
// persists it. The generated id is unique by construction; the unique key
// on evidence_id is the backstop and surfaces as ErrConflict.
func (s *EvidenceStore) Create(e *models.Evidence) error {
	if err := e.Validate(); err != nil {
		return &ValidationError{Msg: err.Error()}
	}

	if e.EvidenceID == "" {
		e.EvidenceID = models.NewEvidenceID()
	}
	if e.Status == "" {
		e.Status = models.StatusCollected
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now().UTC()
	}
	if len(e.Images) == 0 {
		e.Images = datatypes.JSON([]byte("[]"))
	}
	e.IsNew = true
	defaultProvenance(e)

	if err := s.db.Create(e).Error; err != nil {
		if isDuplicateKey(err) {
			return ErrConflict
		}
		return err
	}
	return nil
}

// Get returns the record with the given evidence id.
func (s *EvidenceStore) Get(id string) (*models.Evidence, error) {
	var e models.Evidence
	if err := s.db.First(&e, "evidence_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &e, nil
}

// List returns records newest first. The timestamp-descending order is a
// contract the dashboard depends on.
func (s *EvidenceStore) List(filter ListFilter) ([]models.Evidence, error) {
	query := s.db.Order("timestamp DESC")
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Location != "" {
		query = query.Where("location = ?", filter.Location)
	}

	records := make([]models.Evidence, 0)
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// Update applies the provided subset of mutable fields. Any operator
// update clears the isNew flag.
func (s *EvidenceStore) Update(id string, upd EvidenceUpdate) (*models.Evidence, error) {
	if upd.EvidenceType != nil && !models.ValidEvidenceType(*upd.EvidenceType) {
		return nil, &ValidationError{Msg: "unknown evidenceType " + *upd.EvidenceType}
	}
	if upd.Status != nil && !models.ValidStatus(*upd.Status) {
		return nil, &ValidationError{Msg: "unknown status " + *upd.Status}
	}
	if upd.EvidenceName != nil && strings.TrimSpace(*upd.EvidenceName) == "" {
		return nil, &ValidationError{Msg: "evidenceName cannot be empty"}
	}
	if upd.Location != nil && strings.TrimSpace(*upd.Location) == "" {
		return nil, &ValidationError{Msg: "location cannot be empty"}
	}

	e, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	changes := map[string]any{"is_new": false}
	if upd.EvidenceName != nil {
		changes["evidence_name"] = *upd.EvidenceName
	}
	if upd.EvidenceType != nil {
		changes["evidence_type"] = *upd.EvidenceType
	}
	if upd.Location != nil {
		changes["location"] = *upd.Location
	}
	if upd.Status != nil {
		changes["status"] = *upd.Status
	}
	if upd.Description != nil {
		changes["description"] = *upd.Description
	}

	if err := s.db.Model(e).Updates(changes).Error; err != nil {
		return nil, err
	}
	return s.Get(id)
}

// MarkViewed clears the isNew flag and touches nothing else.
func (s *EvidenceStore) MarkViewed(id string) (*models.Evidence, error) {
	e, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if err := s.db.Model(e).Update("is_new", false).Error; err != nil {
		return nil, err
	}
	return s.Get(id)
}

// Delete removes the record permanently. There is no soft delete.
func (s *EvidenceStore) Delete(id string) error {
	res := s.db.Delete(&models.Evidence{}, "evidence_id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// AppendImages adds uris to the record's image list, all or nothing,
// and returns the updated record.
func (s *EvidenceStore) AppendImages(id string, uris []string) (*models.Evidence, error) {
	if len(uris) == 0 {
		return nil, &ValidationError{Msg: "no images provided"}
	}

	e, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	images := append(e.ImageList(), uris...)
	raw, err := json.Marshal(images)
	if err != nil {
		return nil, err
	}
	if err := s.db.Model(e).Update("images", datatypes.JSON(raw)).Error; err != nil {
		return nil, err
	}
	return s.Get(id)
}

func defaultProvenance(e *models.Evidence) {
	for _, f := range []*string{&e.SubmittedBy, &e.OfficerName, &e.ComplainantName, &e.Contact, &e.ChainOfCustody} {
		if strings.TrimSpace(*f) == "" {
			*f = "N/A"
		}
	}
}

func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	// Driver-specific fallback when error translation is off.
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "UNIQUE constraint failed")
}

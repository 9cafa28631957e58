package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Saran-k-ece/Forensync/models"
	"github.com/Saran-k-ece/Forensync/store"
)

const (
	maxUploadFiles = 10
	maxUploadBytes = 10 << 20 // per file
)

type EvidenceController struct {
	Store     *store.EvidenceStore
	UploadDir string
}

func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type hardwarePayload struct {
	TagID           string `json:"tagId"`
	Location        string `json:"location"`
	EvidenceName    string `json:"evidenceName"`
	EvidenceType    string `json:"evidenceType"`
	Status          string `json:"status"`
	Description     string `json:"description"`
	SubmittedBy     string `json:"submittedBy"`
	OfficerName     string `json:"officerName"`
	ComplainantName string `json:"complainantName"`
	Contact         string `json:"contact"`
	ChainOfCustody  string `json:"chainOfCustody"`
}

// POST /api/v1/evidence/hardware
// Intentionally unauthenticated: scanners sit on the closed network.
func (ec *EvidenceController) IngestFromHardware(c *gin.Context) {
	var payload hardwarePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	evidence := models.Evidence{
		TagID:           payload.TagID,
		Location:        payload.Location,
		EvidenceName:    payload.EvidenceName,
		EvidenceType:    payload.EvidenceType,
		Status:          payload.Status,
		Description:     payload.Description,
		SubmittedBy:     payload.SubmittedBy,
		OfficerName:     payload.OfficerName,
		ComplainantName: payload.ComplainantName,
		Contact:         payload.Contact,
		ChainOfCustody:  payload.ChainOfCustody,
	}

	if err := ec.Store.Create(&evidence); err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "Evidence data received successfully",
		"data":    evidence,
	})
}

// GET /api/v1/evidence
// optional: ?status=In+Transit&location=Lab+A
func (ec *EvidenceController) ListEvidence(c *gin.Context) {
	filter := store.ListFilter{
		Status:   c.Query("status"),
		Location: c.Query("location"),
	}
	records, err := ec.Store.List(filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, records)
}

// GET /api/v1/evidence/:id
func (ec *EvidenceController) GetEvidence(c *gin.Context) {
	evidence, err := ec.Store.Get(c.Param("id"))
	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, evidence)
}

// PUT /api/v1/evidence/:id
func (ec *EvidenceController) UpdateEvidence(c *gin.Context) {
	var upd store.EvidenceUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	evidence, err := ec.Store.Update(c.Param("id"), upd)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, evidence)
}

// DELETE /api/v1/evidence/:id
func (ec *EvidenceController) DeleteEvidence(c *gin.Context) {
	if err := ec.Store.Delete(c.Param("id")); err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Evidence deleted successfully"})
}

// PATCH /api/v1/evidence/:id/mark-viewed
func (ec *EvidenceController) MarkViewed(c *gin.Context) {
	evidence, err := ec.Store.MarkViewed(c.Param("id"))
	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, evidence)
}

// POST /api/v1/evidence/:id/images
// multipart field "images"; the whole batch succeeds or fails together.
func (ec *EvidenceController) UploadImages(c *gin.Context) {
	id := c.Param("id")
	if _, err := ec.Store.Get(id); err != nil {
		respondStoreError(c, err)
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	files := form.File["images"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no images provided"})
		return
	}
	if len(files) > maxUploadFiles {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("at most %d images per upload", maxUploadFiles)})
		return
	}
	for _, file := range files {
		if file.Size > maxUploadBytes {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("%s exceeds the %dMB limit", file.Filename, maxUploadBytes>>20)})
			return
		}
	}

	uris := make([]string, 0, len(files))
	for _, file := range files {
		name := fmt.Sprintf("%s%s", uuid.NewString(), sanitizeExt(file.Filename))
		if err := c.SaveUploadedFile(file, filepath.Join(ec.UploadDir, name)); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save file"})
			return
		}
		uris = append(uris, "/uploads/"+name)
	}

	evidence, err := ec.Store.AppendImages(id, uris)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"images": evidence.ImageList(), "data": evidence})
}

func sanitizeExt(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if len(ext) > 10 || strings.ContainsAny(ext, `/\`) {
		return ""
	}
	return ext
}

func respondStoreError(c *gin.Context, err error) {
	switch {
	case store.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Evidence not found"})
	case errors.Is(err, store.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

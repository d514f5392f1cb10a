package handler

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sukhbir4393/SignSecure-E-Signature-Platform/middleware"
	"github.com/sukhbir4393/SignSecure-E-Signature-Platform/model"
	"github.com/sukhbir4393/SignSecure-E-Signature-Platform/pkg/logger"
	"github.com/sukhbir4393/SignSecure-E-Signature-Platform/service"
)

type DocumentHandler struct {
	store   *service.DocumentStore
	engine  *service.WorkflowEngine
	storage *service.MinioService
}

func NewDocumentHandler(store *service.DocumentStore, engine *service.WorkflowEngine, storage *service.MinioService) *DocumentHandler {
	return &DocumentHandler{
		store:   store,
		engine:  engine,
		storage: storage,
	}
}

type CreateDocumentRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	FileURL     string `json:"file_url"`
	FileName    string `json:"file_name"`
	FileType    string `json:"file_type"`
}

// Create creates a draft document from an already-stored file reference.
func (h *DocumentHandler) Create(c *gin.Context) {
	var req CreateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	doc, err := h.store.Create(middleware.GetCaller(c), service.CreateDocumentInput{
		Title:       req.Title,
		Description: req.Description,
		FileURL:     req.FileURL,
		FileName:    req.FileName,
		FileType:    req.FileType,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, doc)
}

// Upload handles document file upload: the file goes to object storage and
// a draft document is created around the returned reference.
func (h *DocumentHandler) Upload(c *gin.Context) {
	caller := middleware.GetCaller(c)

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file provided"})
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if ext != ".pdf" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Only PDF files are allowed"})
		return
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = "application/pdf"
	}

	// Create first so the object key can carry the document id; roll the
	// document back if the upload itself fails.
	doc, err := h.store.Create(caller, service.CreateDocumentInput{
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		FileURL:     "pending-upload",
		FileName:    header.Filename,
		FileType:    contentType,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	objectName := h.storage.ObjectName(caller.UserID, doc.ID, header.Filename)
	fileURL, err := h.storage.UploadDocument(c.Request.Context(), objectName, file, header.Size, contentType)
	if err != nil {
		_ = h.store.Delete(doc.ID, caller.UserID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload file: " + err.Error()})
		return
	}

	doc, err = h.store.Update(doc.ID, func(d *model.Document) error {
		d.FileURL = fileURL
		return nil
	})
	if err != nil {
		writeError(c, err)
		return
	}

	if err := h.store.AppendAudit(doc.ID, caller, model.ActionDocumentUploaded,
		"Uploaded "+header.Filename); err != nil {
		logger.Warn(c.Request.Context(), "failed to record upload audit event",
			"document_id", doc.ID, "error", err)
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":        doc.ID,
		"title":     doc.Title,
		"file_url":  fileURL,
		"file_name": header.Filename,
		"status":    doc.Status,
	})
}

// List returns all documents owned by the current user
func (h *DocumentHandler) List(c *gin.Context) {
	docs := h.store.List(middleware.GetUsername(c))

	// Return summaries without fields and audit trail for list view
	result := make([]gin.H, len(docs))
	for i, doc := range docs {
		result[i] = gin.H{
			"id":         doc.ID,
			"title":      doc.Title,
			"status":     doc.Status,
			"file_name":  doc.FileName,
			"signers":    len(doc.Signers),
			"created_at": doc.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
			"updated_at": doc.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
		}
	}

	c.JSON(http.StatusOK, gin.H{"documents": result})
}

// Get returns a single document with signers, fields and audit trail
func (h *DocumentHandler) Get(c *gin.Context) {
	doc, err := h.store.GetForOwner(c.Param("id"), middleware.GetUsername(c))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, doc)
}

// GetStatus returns the workflow status of a document
func (h *DocumentHandler) GetStatus(c *gin.Context) {
	doc, err := h.store.GetForOwner(c.Param("id"), middleware.GetUsername(c))
	if err != nil {
		writeError(c, err)
		return
	}

	signed := 0
	for _, s := range doc.Signers {
		if s.Status == model.SignerSigned {
			signed++
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"id":      doc.ID,
		"status":  doc.Status,
		"signers": len(doc.Signers),
		"signed":  signed,
	})
}

// Audit returns the document's audit trail
func (h *DocumentHandler) Audit(c *gin.Context) {
	doc, err := h.store.GetForOwner(c.Param("id"), middleware.GetUsername(c))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"audit_trail": doc.AuditTrail})
}

// Delete deletes a document and its stored file
func (h *DocumentHandler) Delete(c *gin.Context) {
	caller := middleware.GetCaller(c)
	id := c.Param("id")

	doc, err := h.store.GetForOwner(id, caller.UserID)
	if err != nil {
		writeError(c, err)
		return
	}

	if err := h.store.Delete(id, caller.UserID); err != nil {
		writeError(c, err)
		return
	}

	if h.storage != nil && doc.FileName != "" {
		objectName := h.storage.ObjectName(caller.UserID, doc.ID, doc.FileName)
		if err := h.storage.DeleteDocument(c.Request.Context(), objectName); err != nil {
			logger.Warn(c.Request.Context(), "failed to delete stored file",
				"document_id", doc.ID, "error", err)
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "Document deleted"})
}

type AddSignerRequest struct {
	Email string `json:"email" binding:"required"`
	Name  string `json:"name"`
	Role  string `json:"role"`
	Order int    `json:"order"`
}

// AddSigner adds a signer to a draft document
func (h *DocumentHandler) AddSigner(c *gin.Context) {
	caller := middleware.GetCaller(c)
	id := c.Param("id")

	if _, err := h.store.GetForOwner(id, caller.UserID); err != nil {
		writeError(c, err)
		return
	}

	var req AddSignerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	doc, err := h.engine.AddSigner(c.Request.Context(), caller, id, service.AddSignerInput{
		Email: req.Email,
		Name:  req.Name,
		Role:  req.Role,
		Order: req.Order,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, doc)
}

// RemoveSigner removes a signer from a draft document
func (h *DocumentHandler) RemoveSigner(c *gin.Context) {
	caller := middleware.GetCaller(c)
	id := c.Param("id")

	if _, err := h.store.GetForOwner(id, caller.UserID); err != nil {
		writeError(c, err)
		return
	}

	doc, err := h.engine.RemoveSigner(c.Request.Context(), caller, id, c.Param("signerId"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, doc)
}

type AddFieldRequest struct {
	SignerID string `json:"signer_id" binding:"required"`
	Type     string `json:"type" binding:"required"`
	X        int    `json:"x"`
	Y        int    `json:"y"`
	Page     int    `json:"page"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Required *bool  `json:"required"`
	Label    string `json:"label"`
}

// AddField places a form field on a draft document
func (h *DocumentHandler) AddField(c *gin.Context) {
	caller := middleware.GetCaller(c)
	id := c.Param("id")

	if _, err := h.store.GetForOwner(id, caller.UserID); err != nil {
		writeError(c, err)
		return
	}

	var req AddFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	doc, err := h.engine.PlaceField(c.Request.Context(), caller, id, service.PlaceFieldInput{
		SignerID: req.SignerID,
		Type:     req.Type,
		X:        req.X,
		Y:        req.Y,
		Page:     req.Page,
		Width:    req.Width,
		Height:   req.Height,
		Required: req.Required,
		Label:    req.Label,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, doc)
}

// Send transitions a draft document to sent and returns the signing links
func (h *DocumentHandler) Send(c *gin.Context) {
	caller := middleware.GetCaller(c)
	id := c.Param("id")

	if _, err := h.store.GetForOwner(id, caller.UserID); err != nil {
		writeError(c, err)
		return
	}

	doc, links, err := h.engine.Send(c.Request.Context(), caller, id)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"document":      doc,
		"signing_links": links,
	})
}

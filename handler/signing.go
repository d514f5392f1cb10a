package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sukhbir4393/SignSecure-E-Signature-Platform/middleware"
	"github.com/sukhbir4393/SignSecure-E-Signature-Platform/model"
	"github.com/sukhbir4393/SignSecure-E-Signature-Platform/service"
)

// SigningHandler serves the public, token-gated signing flow. Every route
// resolves the (document id, token) pair to exactly one signer before
// touching any state; a mismatch is answered with a generic 404 so the
// endpoint never confirms what exists.
type SigningHandler struct {
	store  *service.DocumentStore
	engine *service.WorkflowEngine
	links  *service.SigningLinkService
}

func NewSigningHandler(store *service.DocumentStore, engine *service.WorkflowEngine, links *service.SigningLinkService) *SigningHandler {
	return &SigningHandler{
		store:  store,
		engine: engine,
		links:  links,
	}
}

// resolveSigner validates the signing link and returns the signer it is
// bound to, fail closed.
func (h *SigningHandler) resolveSigner(c *gin.Context) (doc *model.Document, signer *model.Signer, ok bool) {
	documentID := c.Param("id")

	signerID, err := h.links.Resolve(documentID, c.Param("token"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Signing link is invalid or has expired"})
		return nil, nil, false
	}

	doc, err = h.store.Get(documentID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Signing link is invalid or has expired"})
		return nil, nil, false
	}

	signer = doc.SignerByID(signerID)
	if signer == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Signing link is invalid or has expired"})
		return nil, nil, false
	}

	return doc, signer, true
}

// View returns the document scoped to the link's signer: their own fields
// with values, other signers' fields stripped to geometry.
func (h *SigningHandler) View(c *gin.Context) {
	doc, signer, ok := h.resolveSigner(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"document": doc.ViewForSigner(signer.ID),
		"signer": gin.H{
			"id":     signer.ID,
			"name":   signer.Name,
			"email":  signer.Email,
			"status": signer.Status,
		},
	})
}

// MarkViewed records that the signer opened the document
func (h *SigningHandler) MarkViewed(c *gin.Context) {
	doc, signer, ok := h.resolveSigner(c)
	if !ok {
		return
	}

	if _, err := h.engine.MarkViewed(c.Request.Context(), middleware.GetCaller(c), doc.ID, signer.ID); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Document marked as viewed"})
}

type SignRequest struct {
	Fields map[string]string `json:"fields" binding:"required"`
}

// Sign completes the signer's fields and marks them signed
func (h *SigningHandler) Sign(c *gin.Context) {
	doc, signer, ok := h.resolveSigner(c)
	if !ok {
		return
	}

	var req SignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	updated, err := h.engine.Sign(c.Request.Context(), middleware.GetCaller(c), doc.ID, signer.ID, req.Fields)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Document signed successfully",
		"status":  updated.Status,
	})
}

type DeclineRequest struct {
	Reason string `json:"reason"`
}

// Decline records the signer's refusal and closes the document
func (h *SigningHandler) Decline(c *gin.Context) {
	doc, signer, ok := h.resolveSigner(c)
	if !ok {
		return
	}

	// The body is optional; a missing reason is still a valid decline.
	var req DeclineRequest
	_ = c.ShouldBindJSON(&req)

	updated, err := h.engine.Decline(c.Request.Context(), middleware.GetCaller(c), doc.ID, signer.ID, req.Reason)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Document declined",
		"status":  updated.Status,
	})
}

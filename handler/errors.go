package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sukhbir4393/SignSecure-E-Signature-Platform/model"
)

// writeError maps domain errors onto HTTP statuses. Unknown signers come
// back as 404 so probing a document never confirms what exists on it.
func writeError(c *gin.Context, err error) {
	var incompleteAssignment *model.IncompleteAssignmentError
	var incompleteFields *model.IncompleteFieldsError

	switch {
	case errors.Is(err, model.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Document not found"})
	case errors.Is(err, model.ErrUnknownSigner):
		c.JSON(http.StatusNotFound, gin.H{"error": "Signer not found"})
	case errors.Is(err, model.ErrValidation), errors.Is(err, model.ErrInvalidTool):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, model.ErrInvalidState), errors.Is(err, model.ErrAlreadySigned):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, model.ErrNoSigners):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.As(err, &incompleteAssignment):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":      err.Error(),
			"signer_ids": incompleteAssignment.SignerIDs,
		})
	case errors.As(err, &incompleteFields):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":     err.Error(),
			"field_ids": incompleteFields.FieldIDs,
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

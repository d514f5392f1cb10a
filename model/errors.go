package model

import (
	"errors"
	"fmt"
	"strings"
)

// Domain error sentinels. Callers match with errors.Is and map to their own
// error surface (the HTTP layer maps these to status codes). A failed
// operation always leaves the document in its prior valid state.
var (
	// ErrNotFound reports an absent document, signer, or field.
	ErrNotFound = errors.New("not found")
	// ErrValidation reports malformed or missing input.
	ErrValidation = errors.New("validation failed")
	// ErrInvalidState reports an operation attempted from the wrong
	// document status.
	ErrInvalidState = errors.New("invalid document state")
	// ErrNoSigners reports a send attempt on a document without signers.
	ErrNoSigners = errors.New("document has no signers")
	// ErrAlreadySigned reports a sign attempt by a signer who can no
	// longer sign.
	ErrAlreadySigned = errors.New("signer has already signed")
	// ErrUnknownSigner reports a signer id that matches no signer on the
	// document.
	ErrUnknownSigner = errors.New("unknown signer")
	// ErrInvalidTool reports an unsupported field type.
	ErrInvalidTool = errors.New("invalid field type")
)

// IncompleteAssignmentError reports signers who have no field assigned to
// them, which would leave them unable to act on a sent document.
type IncompleteAssignmentError struct {
	SignerIDs []string
}

func (e *IncompleteAssignmentError) Error() string {
	return fmt.Sprintf("signers without assigned fields: %s", strings.Join(e.SignerIDs, ", "))
}

// IncompleteFieldsError lists the required fields a signer must still
// complete before signing.
type IncompleteFieldsError struct {
	SignerID string
	FieldIDs []string
}

func (e *IncompleteFieldsError) Error() string {
	return fmt.Sprintf("signer %s has incomplete required fields: %s", e.SignerID, strings.Join(e.FieldIDs, ", "))
}

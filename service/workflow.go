package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sukhbir4393/SignSecure-E-Signature-Platform/model"
	"github.com/sukhbir4393/SignSecure-E-Signature-Platform/pkg/logger"
)

// WorkflowEngine owns the document status state machine. Every transition
// runs inside DocumentStore.Update, so preconditions are checked against
// the current snapshot and either the whole transition commits, with its
// audit event, or nothing does.
type WorkflowEngine struct {
	store    *DocumentStore
	links    *SigningLinkService
	notifier Notifier
}

// NewWorkflowEngine wires the engine to its store and collaborators.
func NewWorkflowEngine(store *DocumentStore, links *SigningLinkService, notifier Notifier) *WorkflowEngine {
	if notifier == nil {
		notifier = &LogNotifier{}
	}
	return &WorkflowEngine{store: store, links: links, notifier: notifier}
}

// AddSignerInput describes a signer to invite onto a draft document.
type AddSignerInput struct {
	Email string
	Name  string
	Role  string
	Order int
}

// AddSigner appends a signer to a draft document. Signer order defaults to
// insertion position.
func (e *WorkflowEngine) AddSigner(ctx context.Context, caller model.Caller, documentID string, in AddSignerInput) (*model.Document, error) {
	if in.Email == "" {
		return nil, fmt.Errorf("%w: signer email is required", model.ErrValidation)
	}

	return e.store.Update(documentID, func(doc *model.Document) error {
		if doc.Status != model.StatusDraft {
			return fmt.Errorf("cannot add signer to %s document: %w", doc.Status, model.ErrInvalidState)
		}

		signer := &model.Signer{
			ID:     uuid.New().String(),
			Email:  in.Email,
			Name:   in.Name,
			Role:   in.Role,
			Order:  in.Order,
			Status: model.SignerPending,
		}
		if signer.Role == "" {
			signer.Role = "signer"
		}
		if signer.Order == 0 {
			signer.Order = len(doc.Signers) + 1
		}

		doc.Signers = append(doc.Signers, signer)
		doc.AuditTrail = append(doc.AuditTrail, newAuditEvent(documentID, caller,
			model.ActionSignerAdded, fmt.Sprintf("Added signer: %s", signer.Email)))
		return nil
	})
}

// RemoveSigner removes a signer and their fields from a draft document.
func (e *WorkflowEngine) RemoveSigner(ctx context.Context, caller model.Caller, documentID, signerID string) (*model.Document, error) {
	return e.store.Update(documentID, func(doc *model.Document) error {
		if doc.Status != model.StatusDraft {
			return fmt.Errorf("cannot remove signer from %s document: %w", doc.Status, model.ErrInvalidState)
		}

		signer := doc.SignerByID(signerID)
		if signer == nil {
			return fmt.Errorf("%w: %s", model.ErrUnknownSigner, signerID)
		}

		signers := doc.Signers[:0]
		for _, s := range doc.Signers {
			if s.ID != signerID {
				signers = append(signers, s)
			}
		}
		doc.Signers = signers

		fields := doc.Fields[:0]
		for _, f := range doc.Fields {
			if f.SignerID != signerID {
				fields = append(fields, f)
			}
		}
		doc.Fields = fields

		doc.AuditTrail = append(doc.AuditTrail, newAuditEvent(documentID, caller,
			model.ActionSignerRemoved, fmt.Sprintf("Removed signer: %s", signer.Email)))
		return nil
	})
}

// PlaceField validates and adds a new field to a draft document.
func (e *WorkflowEngine) PlaceField(ctx context.Context, caller model.Caller, documentID string, in PlaceFieldInput) (*model.Document, error) {
	return e.store.Update(documentID, func(doc *model.Document) error {
		if doc.Status != model.StatusDraft {
			return fmt.Errorf("cannot place field on %s document: %w", doc.Status, model.ErrInvalidState)
		}

		field, err := buildField(doc, in)
		if err != nil {
			return err
		}

		doc.Fields = append(doc.Fields, field)
		doc.AuditTrail = append(doc.AuditTrail, newAuditEvent(documentID, caller,
			model.ActionFieldAdded, fmt.Sprintf("Added %s field on page %d", field.Type, field.Page)))
		return nil
	})
}

// SigningLink is one signer's entry point into a sent document.
type SigningLink struct {
	SignerID string `json:"signer_id"`
	Email    string `json:"email"`
	URL      string `json:"url"`
}

// Send transitions a draft document to sent. Every signer must have at
// least one assigned field; a signer with nothing to act on must never
// receive a signing request. Returns per-signer signing links.
func (e *WorkflowEngine) Send(ctx context.Context, caller model.Caller, documentID string) (*model.Document, []SigningLink, error) {
	doc, err := e.store.Update(documentID, func(doc *model.Document) error {
		if doc.Status != model.StatusDraft {
			return fmt.Errorf("cannot send %s document: %w", doc.Status, model.ErrInvalidState)
		}
		if len(doc.Signers) == 0 {
			return model.ErrNoSigners
		}

		var unassigned []string
		for _, s := range doc.Signers {
			if len(doc.FieldsForSigner(s.ID)) == 0 {
				unassigned = append(unassigned, s.ID)
			}
		}
		if len(unassigned) > 0 {
			return &model.IncompleteAssignmentError{SignerIDs: unassigned}
		}

		doc.Status = model.StatusSent
		doc.AuditTrail = append(doc.AuditTrail, newAuditEvent(documentID, caller,
			model.ActionDocumentSent, fmt.Sprintf("Document sent to %d signers", len(doc.Signers))))
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	links := make([]SigningLink, 0, len(doc.Signers))
	for _, s := range doc.Signers {
		token, err := e.links.Issue(doc.ID, s.ID)
		if err != nil {
			return nil, nil, fmt.Errorf("issue signing link for %s: %w", s.ID, err)
		}
		links = append(links, SigningLink{
			SignerID: s.ID,
			Email:    s.Email,
			URL:      e.links.URL(doc.ID, token),
		})
	}

	e.notifier.DocumentSent(ctx, doc, links)
	logger.Info(ctx, "document sent for signature", "document_id", doc.ID, "signers", len(doc.Signers))

	return doc, links, nil
}

// MarkViewed records that a signer opened the document. The first view
// moves the signer from pending to viewed and appends a document_viewed
// event; later views are no-ops.
func (e *WorkflowEngine) MarkViewed(ctx context.Context, caller model.Caller, documentID, signerID string) (*model.Document, error) {
	return e.store.Update(documentID, func(doc *model.Document) error {
		if doc.Status != model.StatusSent {
			return fmt.Errorf("cannot view %s document: %w", doc.Status, model.ErrInvalidState)
		}

		signer := doc.SignerByID(signerID)
		if signer == nil {
			return fmt.Errorf("%w: %s", model.ErrUnknownSigner, signerID)
		}
		if signer.Status != model.SignerPending {
			return nil
		}

		now := time.Now()
		signer.Status = model.SignerViewed
		signer.ViewedAt = &now

		viewer := caller
		viewer.Email = signer.Email
		doc.AuditTrail = append(doc.AuditTrail, newAuditEvent(documentID, viewer,
			model.ActionDocumentViewed, fmt.Sprintf("Document viewed by %s", signer.Email)))
		return nil
	})
}

// Sign applies a signer's field values and marks them signed. Updates are
// restricted to fields owned by the signer; values for another signer's
// fields are ignored so one signer can never overwrite another's work.
// When the last signer signs, the document transitions to completed in the
// same atomic unit.
func (e *WorkflowEngine) Sign(ctx context.Context, caller model.Caller, documentID, signerID string, values map[string]string) (*model.Document, error) {
	doc, err := e.store.Update(documentID, func(doc *model.Document) error {
		if doc.Status != model.StatusSent {
			return fmt.Errorf("cannot sign %s document: %w", doc.Status, model.ErrInvalidState)
		}

		signer := doc.SignerByID(signerID)
		if signer == nil {
			return fmt.Errorf("%w: %s", model.ErrUnknownSigner, signerID)
		}
		if signer.Status != model.SignerPending && signer.Status != model.SignerViewed {
			return fmt.Errorf("signer %s: %w", signerID, model.ErrAlreadySigned)
		}

		for _, f := range doc.Fields {
			if f.SignerID != signerID {
				continue
			}
			if v, ok := values[f.ID]; ok {
				f.Value = v
			}
		}

		if missing := doc.MissingRequiredFields(signerID); len(missing) > 0 {
			return &model.IncompleteFieldsError{SignerID: signerID, FieldIDs: missing}
		}

		now := time.Now()
		signer.Status = model.SignerSigned
		signer.SignedAt = &now

		actor := caller
		actor.Email = signer.Email
		doc.AuditTrail = append(doc.AuditTrail, newAuditEvent(documentID, actor,
			model.ActionDocumentSigned, fmt.Sprintf("Document signed by %s (%s)", signer.Name, signer.Email)))

		// Completion is a pure fold over signers, recomputed on every
		// sign; there is no separate flag to drift out of sync.
		if doc.AllSigned() {
			doc.Status = model.StatusCompleted
			doc.AuditTrail = append(doc.AuditTrail, newAuditEvent(documentID, actor,
				model.ActionDocumentCompleted, "All signers have signed"))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if doc.Status == model.StatusCompleted {
		e.notifier.DocumentCompleted(ctx, doc)
		logger.Info(ctx, "document completed", "document_id", doc.ID)
	}

	return doc, nil
}

// Decline records a signer's refusal. Declining is terminal for the whole
// document; the other signers keep their statuses for the audit record.
func (e *WorkflowEngine) Decline(ctx context.Context, caller model.Caller, documentID, signerID, reason string) (*model.Document, error) {
	var declined *model.Signer
	doc, err := e.store.Update(documentID, func(doc *model.Document) error {
		if doc.Status != model.StatusSent {
			return fmt.Errorf("cannot decline %s document: %w", doc.Status, model.ErrInvalidState)
		}

		signer := doc.SignerByID(signerID)
		if signer == nil {
			return fmt.Errorf("%w: %s", model.ErrUnknownSigner, signerID)
		}
		if signer.Status != model.SignerPending && signer.Status != model.SignerViewed {
			return fmt.Errorf("signer %s: %w", signerID, model.ErrAlreadySigned)
		}

		signer.Status = model.SignerDeclined
		doc.Status = model.StatusDeclined

		details := fmt.Sprintf("Declined by %s (%s)", signer.Name, signer.Email)
		if reason != "" {
			details += ": " + reason
		}
		actor := caller
		actor.Email = signer.Email
		doc.AuditTrail = append(doc.AuditTrail, newAuditEvent(documentID, actor,
			model.ActionDocumentDeclined, details))
		declined = signer
		return nil
	})
	if err != nil {
		return nil, err
	}

	e.notifier.DocumentDeclined(ctx, doc, declined)
	return doc, nil
}

// Expire transitions a sent document to expired. The trigger is external;
// the engine runs no timers of its own.
func (e *WorkflowEngine) Expire(ctx context.Context, documentID string) (*model.Document, error) {
	return e.store.Update(documentID, func(doc *model.Document) error {
		if doc.Status != model.StatusSent {
			return fmt.Errorf("cannot expire %s document: %w", doc.Status, model.ErrInvalidState)
		}
		doc.Status = model.StatusExpired
		doc.AuditTrail = append(doc.AuditTrail, newAuditEvent(documentID, model.Caller{},
			model.ActionDocumentExpired, "Signing window elapsed"))
		return nil
	})
}

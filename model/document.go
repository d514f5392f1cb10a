package model

import (
	"time"
)

// Document status constants. Transitions only move forward: draft -> sent ->
// completed; declined and expired are absorbing states reachable from sent.
const (
	StatusDraft     = "draft"
	StatusSent      = "sent"
	StatusCompleted = "completed"
	StatusDeclined  = "declined"
	StatusExpired   = "expired"
)

// Signer status constants
const (
	SignerPending  = "pending"
	SignerViewed   = "viewed"
	SignerSigned   = "signed"
	SignerDeclined = "declined"
)

// Form field type constants
const (
	FieldSignature = "signature"
	FieldInitial   = "initial"
	FieldDate      = "date"
	FieldCheckbox  = "checkbox"
	FieldText      = "text"
)

// Audit action constants. These are stable wire strings consumed by
// external systems; never rename them.
const (
	ActionDocumentCreated   = "document_created"
	ActionDocumentUploaded  = "document_uploaded"
	ActionDocumentSent      = "document_sent"
	ActionDocumentViewed    = "document_viewed"
	ActionDocumentSigned    = "document_signed"
	ActionDocumentCompleted = "document_completed"
	ActionDocumentDeclined  = "document_declined"
	ActionDocumentExpired   = "document_expired"
	ActionSignerAdded       = "signer_added"
	ActionSignerRemoved     = "signer_removed"
	ActionFieldAdded        = "field_added"
)

// Document is the signable unit: a file reference plus signers, placed
// fields, an append-only audit trail, and a workflow status.
type Document struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description,omitempty"`
	OwnerID     string        `json:"owner_id"`
	Status      string        `json:"status"`
	FileURL     string        `json:"file_url"`
	FileName    string        `json:"file_name,omitempty"`
	FileType    string        `json:"file_type,omitempty"`
	Signers     []*Signer     `json:"signers"`
	Fields      []*FormField  `json:"fields"`
	AuditTrail  []*AuditEvent `json:"audit_trail"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
	ExpiresAt   *time.Time    `json:"expires_at,omitempty"`
}

// Signer is a party invited to complete fields on a document. Signers are
// owned by their document and never move between documents.
type Signer struct {
	ID       string     `json:"id"`
	Email    string     `json:"email"`
	Name     string     `json:"name"`
	Role     string     `json:"role"`
	Order    int        `json:"order"`
	Status   string     `json:"status"`
	SignedAt *time.Time `json:"signed_at,omitempty"`
	ViewedAt *time.Time `json:"viewed_at,omitempty"`
}

// FormField is a positioned, typed slot requiring a value from exactly one
// signer. Geometry is in pixels relative to the rendered page.
type FormField struct {
	ID       string `json:"id"`
	Type     string `json:"type"`
	X        int    `json:"x"`
	Y        int    `json:"y"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Page     int    `json:"page"`
	Required bool   `json:"required"`
	SignerID string `json:"signer_id"`
	Value    string `json:"value,omitempty"`
	Label    string `json:"label,omitempty"`
}

// AuditEvent is an immutable record of a state-changing action against a
// document. Events are append-only and never mutated once created.
type AuditEvent struct {
	ID         string    `json:"id"`
	DocumentID string    `json:"document_id"`
	UserID     string    `json:"user_id,omitempty"`
	Email      string    `json:"email,omitempty"`
	Action     string    `json:"action"`
	Timestamp  time.Time `json:"timestamp"`
	IPAddress  string    `json:"ip_address,omitempty"`
	UserAgent  string    `json:"user_agent,omitempty"`
	Details    string    `json:"details,omitempty"`
}

// Caller identifies who is performing an operation, plus the request
// metadata recorded on audit events.
type Caller struct {
	UserID    string
	Email     string
	IPAddress string
	UserAgent string
}

// ValidFieldType reports whether t is one of the supported field types.
func ValidFieldType(t string) bool {
	switch t {
	case FieldSignature, FieldInitial, FieldDate, FieldCheckbox, FieldText:
		return true
	}
	return false
}

// TerminalStatus reports whether a document status permits no further
// transitions.
func TerminalStatus(status string) bool {
	switch status {
	case StatusCompleted, StatusDeclined, StatusExpired:
		return true
	}
	return false
}

// SignerByID returns the signer with the given id, or nil.
func (d *Document) SignerByID(id string) *Signer {
	for _, s := range d.Signers {
		if s.ID == id {
			return s
		}
	}
	return nil
}

// FieldsForSigner returns the fields assigned to the given signer.
func (d *Document) FieldsForSigner(signerID string) []*FormField {
	var fields []*FormField
	for _, f := range d.Fields {
		if f.SignerID == signerID {
			fields = append(fields, f)
		}
	}
	return fields
}

// MissingRequiredFields returns the ids of required fields assigned to the
// signer that still have no value.
func (d *Document) MissingRequiredFields(signerID string) []string {
	var missing []string
	for _, f := range d.Fields {
		if f.SignerID == signerID && f.Required && f.Value == "" {
			missing = append(missing, f.ID)
		}
	}
	return missing
}

// AllSigned reports whether every signer has signed. A document with no
// signers is never considered fully signed.
func (d *Document) AllSigned() bool {
	if len(d.Signers) == 0 {
		return false
	}
	for _, s := range d.Signers {
		if s.Status != SignerSigned {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of the document. The store hands out clones so
// callers can never mutate shared state through a snapshot.
func (d *Document) Clone() *Document {
	out := *d

	out.Signers = make([]*Signer, len(d.Signers))
	for i, s := range d.Signers {
		cp := *s
		if s.SignedAt != nil {
			t := *s.SignedAt
			cp.SignedAt = &t
		}
		if s.ViewedAt != nil {
			t := *s.ViewedAt
			cp.ViewedAt = &t
		}
		out.Signers[i] = &cp
	}

	out.Fields = make([]*FormField, len(d.Fields))
	for i, f := range d.Fields {
		cp := *f
		out.Fields[i] = &cp
	}

	out.AuditTrail = make([]*AuditEvent, len(d.AuditTrail))
	for i, e := range d.AuditTrail {
		cp := *e
		out.AuditTrail[i] = &cp
	}

	if d.ExpiresAt != nil {
		t := *d.ExpiresAt
		out.ExpiresAt = &t
	}

	return &out
}

// ViewForSigner returns a copy of the document scoped to one signer's view:
// the signer keeps their own field values, other signers' values are
// stripped (geometry and labels remain so the page can still be rendered),
// and the audit trail is withheld.
func (d *Document) ViewForSigner(signerID string) *Document {
	view := d.Clone()
	for _, f := range view.Fields {
		if f.SignerID != signerID {
			f.Value = ""
		}
	}
	view.AuditTrail = nil
	return view
}

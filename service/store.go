package service

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sukhbir4393/SignSecure-E-Signature-Platform/config"
	"github.com/sukhbir4393/SignSecure-E-Signature-Platform/model"
)

// DocumentStore is an in-memory repository for document aggregates.
// All reads hand out deep copies, and all writes run through Update, which
// commits a mutated clone only when the mutation succeeds. That gives each
// document single-writer semantics: no reader ever observes a partial
// transition, and a failed operation leaves the stored state untouched.
type DocumentStore struct {
	documents    map[string]*model.Document
	mu           sync.RWMutex
	maxDocuments int // Maximum documents to keep, 0 = unlimited
}

var (
	globalStore *DocumentStore
	storeOnce   sync.Once
)

// InitDocumentStore initializes the global document store with configuration
func InitDocumentStore(cfg *config.StoreConfig) {
	storeOnce.Do(func() {
		maxDocuments := cfg.MaxDocuments
		if maxDocuments < 0 {
			maxDocuments = 0
		}
		globalStore = NewDocumentStore(maxDocuments)
		slog.Info("document store initialized", "max_documents", maxDocuments)
	})
}

// GetDocumentStore returns the global document store
func GetDocumentStore() *DocumentStore {
	if globalStore == nil {
		// Fallback initialization with default settings
		globalStore = NewDocumentStore(100)
	}
	return globalStore
}

// NewDocumentStore creates a store bounded to maxDocuments (0 = unlimited).
func NewDocumentStore(maxDocuments int) *DocumentStore {
	return &DocumentStore{
		documents:    make(map[string]*model.Document),
		maxDocuments: maxDocuments,
	}
}

// CreateDocumentInput carries the fields needed to create a draft document.
type CreateDocumentInput struct {
	Title       string
	Description string
	FileURL     string
	FileName    string
	FileType    string
}

// Create produces a new draft document owned by the caller and records a
// document_created audit event. The file reference is mandatory.
func (s *DocumentStore) Create(caller model.Caller, in CreateDocumentInput) (*model.Document, error) {
	if in.FileURL == "" {
		return nil, fmt.Errorf("%w: file reference is required", model.ErrValidation)
	}

	title := in.Title
	if title == "" {
		title = "Untitled Document"
	}

	now := time.Now()
	doc := &model.Document{
		ID:          uuid.New().String(),
		Title:       title,
		Description: in.Description,
		OwnerID:     caller.UserID,
		Status:      model.StatusDraft,
		FileURL:     in.FileURL,
		FileName:    in.FileName,
		FileType:    in.FileType,
		Signers:     []*model.Signer{},
		Fields:      []*model.FormField{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	doc.AuditTrail = append(doc.AuditTrail, newAuditEvent(doc.ID, caller, model.ActionDocumentCreated, ""))

	s.mu.Lock()
	defer s.mu.Unlock()

	s.documents[doc.ID] = doc
	s.cleanupIfNeeded()

	return doc.Clone(), nil
}

// Get returns a snapshot of the document with the given id.
func (s *DocumentStore) Get(id string) (*model.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.documents[id]
	if !ok {
		return nil, fmt.Errorf("document %s: %w", id, model.ErrNotFound)
	}
	return doc.Clone(), nil
}

// GetForOwner returns a snapshot only when ownerID owns the document.
// A foreign owner gets the same not-found as a missing document.
func (s *DocumentStore) GetForOwner(id, ownerID string) (*model.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.documents[id]
	if !ok || doc.OwnerID != ownerID {
		return nil, fmt.Errorf("document %s: %w", id, model.ErrNotFound)
	}
	return doc.Clone(), nil
}

// List returns snapshots of the owner's documents, newest first.
func (s *DocumentStore) List(ownerID string) []*model.Document {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*model.Document
	for _, doc := range s.documents {
		if doc.OwnerID == ownerID {
			result = append(result, doc.Clone())
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result
}

// Update applies fn to the document as one atomic unit. fn receives a
// scratch clone; the clone is committed and updated_at refreshed only if fn
// returns nil, so validation failures never leave partial state behind.
// The returned document is a snapshot of the committed state.
func (s *DocumentStore) Update(id string, fn func(*model.Document) error) (*model.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.documents[id]
	if !ok {
		return nil, fmt.Errorf("document %s: %w", id, model.ErrNotFound)
	}

	scratch := doc.Clone()
	if err := fn(scratch); err != nil {
		return nil, err
	}

	scratch.UpdatedAt = time.Now()
	s.documents[id] = scratch

	return scratch.Clone(), nil
}

// AppendAudit records a standalone audit event that has no accompanying
// state change, such as a file upload confirmation.
func (s *DocumentStore) AppendAudit(id string, caller model.Caller, action, details string) error {
	_, err := s.Update(id, func(doc *model.Document) error {
		doc.AuditTrail = append(doc.AuditTrail, newAuditEvent(id, caller, action, details))
		return nil
	})
	return err
}

// Delete removes the owner's document from the store.
func (s *DocumentStore) Delete(id, ownerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.documents[id]
	if !ok || doc.OwnerID != ownerID {
		return fmt.Errorf("document %s: %w", id, model.ErrNotFound)
	}
	delete(s.documents, id)
	return nil
}

// Count returns the number of documents in the store
func (s *DocumentStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.documents)
}

// cleanupIfNeeded removes oldest documents if store exceeds maxDocuments
// Must be called with lock held
func (s *DocumentStore) cleanupIfNeeded() {
	if s.maxDocuments <= 0 {
		return // Unlimited
	}

	if len(s.documents) <= s.maxDocuments {
		return
	}

	// Sort documents by creation time
	docs := make([]*model.Document, 0, len(s.documents))
	for _, d := range s.documents {
		docs = append(docs, d)
	}
	sort.Slice(docs, func(i, j int) bool {
		return docs[i].CreatedAt.Before(docs[j].CreatedAt)
	})

	// Remove oldest documents
	removeCount := len(docs) - s.maxDocuments
	for i := 0; i < removeCount; i++ {
		slog.Info("auto-cleaning old document",
			"document_id", docs[i].ID,
			"created_at", docs[i].CreatedAt,
		)
		delete(s.documents, docs[i].ID)
	}
}

// newAuditEvent builds an immutable audit record for the given action.
func newAuditEvent(documentID string, caller model.Caller, action, details string) *model.AuditEvent {
	return &model.AuditEvent{
		ID:         uuid.New().String(),
		DocumentID: documentID,
		UserID:     caller.UserID,
		Email:      caller.Email,
		Action:     action,
		Timestamp:  time.Now(),
		IPAddress:  caller.IPAddress,
		UserAgent:  caller.UserAgent,
		Details:    details,
	}
}

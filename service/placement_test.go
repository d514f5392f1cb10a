package service

import (
	"context"
	"errors"
	"testing"

	"github.com/sukhbir4393/SignSecure-E-Signature-Platform/model"
)

func TestPlaceFieldDefaultGeometry(t *testing.T) {
	tests := []struct {
		fieldType  string
		wantWidth  int
		wantHeight int
	}{
		{model.FieldSignature, 200, 50},
		{model.FieldInitial, 100, 50},
		{model.FieldDate, 150, 50},
		{model.FieldCheckbox, 150, 40},
		{model.FieldText, 150, 50},
	}

	for _, tt := range tests {
		t.Run(tt.fieldType, func(t *testing.T) {
			engine, store := newTestEngine(t)
			doc := createTestDocument(t, store)

			updated, err := engine.AddSigner(context.Background(), testCaller(), doc.ID,
				AddSignerInput{Email: "s1@example.com"})
			if err != nil {
				t.Fatalf("AddSigner failed: %v", err)
			}
			signerID := updated.Signers[0].ID

			updated, err = engine.PlaceField(context.Background(), testCaller(), doc.ID, PlaceFieldInput{
				SignerID: signerID,
				Type:     tt.fieldType,
				X:        10,
				Y:        20,
				Page:     2,
			})
			if err != nil {
				t.Fatalf("PlaceField failed: %v", err)
			}

			field := updated.Fields[0]
			if field.Width != tt.wantWidth || field.Height != tt.wantHeight {
				t.Errorf("Expected %dx%d, got %dx%d", tt.wantWidth, tt.wantHeight, field.Width, field.Height)
			}
			if !field.Required {
				t.Error("Expected required to default to true")
			}
			if field.X != 10 || field.Y != 20 || field.Page != 2 {
				t.Errorf("Position not preserved: x=%d y=%d page=%d", field.X, field.Y, field.Page)
			}
			if field.SignerID != signerID {
				t.Errorf("Expected signer %s, got %s", signerID, field.SignerID)
			}
		})
	}
}

func TestPlaceFieldTextLabelDefault(t *testing.T) {
	engine, store := newTestEngine(t)
	ctx := context.Background()
	doc := createTestDocument(t, store)

	updated, err := engine.AddSigner(ctx, testCaller(), doc.ID, AddSignerInput{Email: "s1@example.com"})
	if err != nil {
		t.Fatalf("AddSigner failed: %v", err)
	}
	signerID := updated.Signers[0].ID

	updated, err = engine.PlaceField(ctx, testCaller(), doc.ID, PlaceFieldInput{
		SignerID: signerID,
		Type:     model.FieldText,
	})
	if err != nil {
		t.Fatalf("PlaceField failed: %v", err)
	}
	if updated.Fields[0].Label != "Text Field" {
		t.Errorf("Expected default label 'Text Field', got '%s'", updated.Fields[0].Label)
	}

	// An explicit label wins
	updated, err = engine.PlaceField(ctx, testCaller(), doc.ID, PlaceFieldInput{
		SignerID: signerID,
		Type:     model.FieldText,
		Label:    "Company",
	})
	if err != nil {
		t.Fatalf("PlaceField failed: %v", err)
	}
	if updated.Fields[1].Label != "Company" {
		t.Errorf("Expected label 'Company', got '%s'", updated.Fields[1].Label)
	}
}

func TestPlaceFieldOverrides(t *testing.T) {
	engine, store := newTestEngine(t)
	ctx := context.Background()
	doc := createTestDocument(t, store)

	updated, err := engine.AddSigner(ctx, testCaller(), doc.ID, AddSignerInput{Email: "s1@example.com"})
	if err != nil {
		t.Fatalf("AddSigner failed: %v", err)
	}
	signerID := updated.Signers[0].ID

	optional := false
	updated, err = engine.PlaceField(ctx, testCaller(), doc.ID, PlaceFieldInput{
		SignerID: signerID,
		Type:     model.FieldCheckbox,
		Width:    80,
		Height:   30,
		Required: &optional,
	})
	if err != nil {
		t.Fatalf("PlaceField failed: %v", err)
	}

	field := updated.Fields[0]
	if field.Width != 80 || field.Height != 30 {
		t.Errorf("Expected 80x30 override, got %dx%d", field.Width, field.Height)
	}
	if field.Required {
		t.Error("Expected required override to stick")
	}
	if field.Page != 1 {
		t.Errorf("Expected page to default to 1, got %d", field.Page)
	}
}

func TestPlaceFieldInvalidType(t *testing.T) {
	engine, store := newTestEngine(t)
	ctx := context.Background()
	doc := createTestDocument(t, store)

	updated, err := engine.AddSigner(ctx, testCaller(), doc.ID, AddSignerInput{Email: "s1@example.com"})
	if err != nil {
		t.Fatalf("AddSigner failed: %v", err)
	}

	_, err = engine.PlaceField(ctx, testCaller(), doc.ID, PlaceFieldInput{
		SignerID: updated.Signers[0].ID,
		Type:     "stamp",
	})
	if !errors.Is(err, model.ErrInvalidTool) {
		t.Errorf("Expected ErrInvalidTool, got %v", err)
	}
}

func TestPlaceFieldUnknownSigner(t *testing.T) {
	engine, store := newTestEngine(t)
	doc := createTestDocument(t, store)

	_, err := engine.PlaceField(context.Background(), testCaller(), doc.ID, PlaceFieldInput{
		SignerID: "no-such-signer",
		Type:     model.FieldSignature,
	})
	if !errors.Is(err, model.ErrUnknownSigner) {
		t.Errorf("Expected ErrUnknownSigner, got %v", err)
	}

	current, _ := store.Get(doc.ID)
	if len(current.Fields) != 0 {
		t.Error("Failed placement must not add a field")
	}
}

func TestPlaceFieldAfterSend(t *testing.T) {
	engine, store := newTestEngine(t)
	ctx := context.Background()
	doc := createTestDocument(t, store)
	s1, _ := addSignerWithField(t, engine, doc.ID, "s1@example.com")

	if _, _, err := engine.Send(ctx, testCaller(), doc.ID); err != nil {
		t.Fatalf("Send failed: %v", err)
	}

	_, err := engine.PlaceField(ctx, testCaller(), doc.ID, PlaceFieldInput{
		SignerID: s1,
		Type:     model.FieldDate,
	})
	if !errors.Is(err, model.ErrInvalidState) {
		t.Errorf("Expected ErrInvalidState placing field after send, got %v", err)
	}
}

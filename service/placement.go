package service

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/sukhbir4393/SignSecure-E-Signature-Platform/model"
)

// Default field geometry by type, in pixels at display scale 1. These match
// the sizes the editor uses so placed fields line up across clients.
var defaultGeometry = map[string]struct{ Width, Height int }{
	model.FieldSignature: {Width: 200, Height: 50},
	model.FieldInitial:   {Width: 100, Height: 50},
	model.FieldDate:      {Width: 150, Height: 50},
	model.FieldCheckbox:  {Width: 150, Height: 40},
	model.FieldText:      {Width: 150, Height: 50},
}

// PlaceFieldInput describes a field to place on a document page. Width,
// Height, Required and Label are optional; zero values take the per-type
// defaults.
type PlaceFieldInput struct {
	SignerID string
	Type     string
	X        int
	Y        int
	Page     int
	Width    int
	Height   int
	Required *bool
	Label    string
}

// buildField validates the placement against the document and constructs
// the new field. Overlapping fields are allowed; there is no collision
// detection.
func buildField(doc *model.Document, in PlaceFieldInput) (*model.FormField, error) {
	geom, ok := defaultGeometry[in.Type]
	if !ok {
		return nil, fmt.Errorf("%w: %q", model.ErrInvalidTool, in.Type)
	}
	if doc.SignerByID(in.SignerID) == nil {
		return nil, fmt.Errorf("%w: %s", model.ErrUnknownSigner, in.SignerID)
	}

	field := &model.FormField{
		ID:       uuid.New().String(),
		Type:     in.Type,
		X:        in.X,
		Y:        in.Y,
		Width:    geom.Width,
		Height:   geom.Height,
		Page:     in.Page,
		Required: true,
		SignerID: in.SignerID,
		Label:    in.Label,
	}

	if in.Width > 0 {
		field.Width = in.Width
	}
	if in.Height > 0 {
		field.Height = in.Height
	}
	if in.Page <= 0 {
		field.Page = 1
	}
	if in.Required != nil {
		field.Required = *in.Required
	}
	if field.Type == model.FieldText && field.Label == "" {
		field.Label = "Text Field"
	}

	return field, nil
}

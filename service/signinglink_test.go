package service

import (
	"errors"
	"strings"
	"testing"

	"github.com/sukhbir4393/SignSecure-E-Signature-Platform/config"
	"github.com/sukhbir4393/SignSecure-E-Signature-Platform/model"
)

func newTestLinkService(secret string, expireHours int) *SigningLinkService {
	return NewSigningLinkService(&config.SigningConfig{
		LinkSecret:      secret,
		LinkExpireHours: expireHours,
		BaseURL:         "https://sign.example.com",
	})
}

func TestSigningLinkRoundTrip(t *testing.T) {
	svc := newTestLinkService("link-secret", 72)

	token, err := svc.Issue("doc-1", "signer-1")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	if token == "" {
		t.Fatal("Expected non-empty token")
	}

	signerID, err := svc.Resolve("doc-1", token)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if signerID != "signer-1" {
		t.Errorf("Expected signer-1, got %s", signerID)
	}
}

func TestSigningLinkWrongDocument(t *testing.T) {
	svc := newTestLinkService("link-secret", 72)

	token, err := svc.Issue("doc-1", "signer-1")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	// A valid token must not open a different document
	_, err = svc.Resolve("doc-2", token)
	if !errors.Is(err, model.ErrNotFound) {
		t.Errorf("Expected ErrNotFound for wrong document, got %v", err)
	}
}

func TestSigningLinkExpired(t *testing.T) {
	svc := newTestLinkService("link-secret", -1) // already expired at issue

	token, err := svc.Issue("doc-1", "signer-1")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	_, err = svc.Resolve("doc-1", token)
	if !errors.Is(err, model.ErrNotFound) {
		t.Errorf("Expected ErrNotFound for expired token, got %v", err)
	}
}

func TestSigningLinkGarbage(t *testing.T) {
	svc := newTestLinkService("link-secret", 72)

	tests := []string{
		"",
		"not-a-token",
		"aaaa.bbbb.cccc",
	}
	for _, token := range tests {
		if _, err := svc.Resolve("doc-1", token); !errors.Is(err, model.ErrNotFound) {
			t.Errorf("Token %q: expected ErrNotFound, got %v", token, err)
		}
	}
}

func TestSigningLinkWrongSecret(t *testing.T) {
	issuer := newTestLinkService("secret-a", 72)
	verifier := newTestLinkService("secret-b", 72)

	token, err := issuer.Issue("doc-1", "signer-1")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	if _, err := verifier.Resolve("doc-1", token); !errors.Is(err, model.ErrNotFound) {
		t.Errorf("Expected ErrNotFound for foreign secret, got %v", err)
	}
}

func TestSigningLinkURL(t *testing.T) {
	svc := newTestLinkService("link-secret", 72)

	url := svc.URL("doc-1", "tok")
	if url != "https://sign.example.com/sign/doc-1/tok" {
		t.Errorf("Unexpected URL: %s", url)
	}
	if !strings.HasPrefix(url, "https://") {
		t.Errorf("Expected https URL, got %s", url)
	}
}

package service

import (
	"testing"

	"github.com/sukhbir4393/SignSecure-E-Signature-Platform/config"
)

func TestNewMinioService(t *testing.T) {
	// Test with invalid endpoint (should fail)
	cfg := &config.MinioConfig{
		Endpoint:  "invalid-endpoint:9000",
		AccessKey: "test",
		SecretKey: "test",
		Bucket:    "test",
		UseSSL:    false,
	}

	svc, err := NewMinioService(cfg)
	// NewMinioService typically succeeds as it just creates the client
	// The actual connection is tested on first operation
	if err != nil {
		// This is acceptable - some minio client versions may validate early
		t.Logf("NewMinioService returned error as expected: %v", err)
	} else if svc == nil {
		t.Error("Expected non-nil service")
	}
}

func TestMinioServiceObjectName(t *testing.T) {
	svc := &MinioService{
		bucket: "documents",
		config: &config.MinioConfig{Endpoint: "localhost:9000"},
	}

	tests := []struct {
		name       string
		ownerID    string
		documentID string
		filename   string
		expected   string
	}{
		{
			name:       "plain filename",
			ownerID:    "alice",
			documentID: "doc-1",
			filename:   "lease.pdf",
			expected:   "alice/doc-1/lease.pdf",
		},
		{
			name:       "filename with spaces",
			ownerID:    "bob",
			documentID: "doc-2",
			filename:   "sales agreement.pdf",
			expected:   "bob/doc-2/sales agreement.pdf",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := svc.ObjectName(tt.ownerID, tt.documentID, tt.filename); got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestMinioServiceGetPublicURL(t *testing.T) {
	tests := []struct {
		name       string
		useSSL     bool
		endpoint   string
		bucket     string
		objectName string
		expected   string
	}{
		{
			name:       "http url",
			useSSL:     false,
			endpoint:   "localhost:9000",
			bucket:     "documents",
			objectName: "alice/doc-1/lease.pdf",
			expected:   "http://localhost:9000/documents/alice/doc-1/lease.pdf",
		},
		{
			name:       "https url",
			useSSL:     true,
			endpoint:   "minio.example.com",
			bucket:     "documents",
			objectName: "bob/doc-2/nda.pdf",
			expected:   "https://minio.example.com/documents/bob/doc-2/nda.pdf",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &MinioService{
				bucket: tt.bucket,
				config: &config.MinioConfig{
					Endpoint: tt.endpoint,
					UseSSL:   tt.useSSL,
				},
			}

			if got := svc.GetPublicURL(tt.objectName); got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, got)
			}
		})
	}
}

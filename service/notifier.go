package service

import (
	"context"
	"log/slog"

	"github.com/sukhbir4393/SignSecure-E-Signature-Platform/model"
)

// Notifier receives workflow events that would fan out as email in a real
// deployment. Delivery guarantees are out of scope here; implementations
// must tolerate being called after the state change has already committed.
type Notifier interface {
	DocumentSent(ctx context.Context, doc *model.Document, links []SigningLink)
	DocumentCompleted(ctx context.Context, doc *model.Document)
	DocumentDeclined(ctx context.Context, doc *model.Document, signer *model.Signer)
}

// LogNotifier is the default Notifier: it only logs. Swap in a real mailer
// behind the same interface.
type LogNotifier struct{}

func (n *LogNotifier) DocumentSent(ctx context.Context, doc *model.Document, links []SigningLink) {
	for _, link := range links {
		slog.Info("signing request notification",
			"document_id", doc.ID,
			"title", doc.Title,
			"recipient", link.Email,
			"url", link.URL,
		)
	}
}

func (n *LogNotifier) DocumentCompleted(ctx context.Context, doc *model.Document) {
	slog.Info("document completed notification",
		"document_id", doc.ID,
		"title", doc.Title,
		"signers", len(doc.Signers),
	)
}

func (n *LogNotifier) DocumentDeclined(ctx context.Context, doc *model.Document, signer *model.Signer) {
	slog.Info("document declined notification",
		"document_id", doc.ID,
		"title", doc.Title,
		"declined_by", signer.Email,
	)
}

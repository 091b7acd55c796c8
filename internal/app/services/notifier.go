package services

import (
	"context"
	"log/slog"
	"time"

	cloudevents "github.com/cloudevents/sdk-go/v2"

	"github.com/vitrine-cms/vitrine/internal/app/ports"
)

// InquiryEventType is the CloudEvents type emitted for new submissions.
const InquiryEventType = "site.inquiry.received"

// WebhookNotifier delivers inquiry notifications as CloudEvents to a
// configured HTTP endpoint.
type WebhookNotifier struct {
	client   cloudevents.Client
	endpoint string
	source   string
	log      *slog.Logger
}

// NewWebhookNotifier builds a notifier for the given endpoint. Returns nil
// when no endpoint is configured, which disables notification entirely.
func NewWebhookNotifier(endpoint, source string, log *slog.Logger) (*WebhookNotifier, error) {
	if endpoint == "" {
		return nil, nil
	}
	client, err := cloudevents.NewClientHTTP()
	if err != nil {
		return nil, err
	}
	if source == "" {
		source = "vitrine/inquiries"
	}
	if log == nil {
		log = slog.Default()
	}
	return &WebhookNotifier{client: client, endpoint: endpoint, source: source, log: log}, nil
}

// NotifyInquiry sends one event. Failures are logged and swallowed; the
// submitter never sees them.
func (n *WebhookNotifier) NotifyInquiry(ctx context.Context, inquiry ports.Inquiry) {
	event := cloudevents.NewEvent()
	event.SetID(inquiry.ID)
	event.SetSource(n.source)
	event.SetType(InquiryEventType)
	event.SetTime(inquiry.CreatedAt)
	if err := event.SetData(cloudevents.ApplicationJSON, inquiry); err != nil {
		n.log.Error("Failed to encode inquiry event", "error", err, "inquiry_id", inquiry.ID)
		return
	}

	sendCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	sendCtx = cloudevents.ContextWithTarget(sendCtx, n.endpoint)

	if result := n.client.Send(sendCtx, event); cloudevents.IsUndelivered(result) {
		n.log.Error("Failed to deliver inquiry event", "error", result, "inquiry_id", inquiry.ID)
	}
}

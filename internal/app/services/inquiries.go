package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/vitrine-cms/vitrine/internal/app/ports"
)

// InquiryNotifier is told about every recorded inquiry. Delivery is
// fire-and-forget: a failed notification never fails the submission.
type InquiryNotifier interface {
	NotifyInquiry(ctx context.Context, inquiry ports.Inquiry)
}

// InquiryService validates and records public contact submissions.
type InquiryService struct {
	store    ports.InquiryStore
	notifier InquiryNotifier
	log      *slog.Logger
}

// NewInquiryService constructs the inquiry service. notifier may be nil.
func NewInquiryService(store ports.InquiryStore, notifier InquiryNotifier, log *slog.Logger) *InquiryService {
	if log == nil {
		log = slog.Default()
	}
	return &InquiryService{store: store, notifier: notifier, log: log}
}

// Submit records one inquiry. Email and message are required; everything
// else is optional.
func (s *InquiryService) Submit(ctx context.Context, fields ports.InquiryFields) (ports.Inquiry, error) {
	fields.FirstName = strings.TrimSpace(fields.FirstName)
	fields.LastName = strings.TrimSpace(fields.LastName)
	fields.Email = strings.TrimSpace(fields.Email)
	fields.Phone = strings.TrimSpace(fields.Phone)
	fields.Message = strings.TrimSpace(fields.Message)

	if fields.Email == "" {
		return ports.Inquiry{}, fmt.Errorf("%w: email is required", ports.ErrValidation)
	}
	if fields.Message == "" {
		return ports.Inquiry{}, fmt.Errorf("%w: message is required", ports.ErrValidation)
	}

	inquiry, err := s.store.AppendInquiry(ctx, fields)
	if err != nil {
		return ports.Inquiry{}, err
	}

	if s.notifier != nil {
		s.notifier.NotifyInquiry(ctx, inquiry)
	}
	return inquiry, nil
}

// List returns all submissions newest first.
func (s *InquiryService) List(ctx context.Context) ([]ports.Inquiry, error) {
	return s.store.ListInquiries(ctx)
}

// Delete removes one submission.
func (s *InquiryService) Delete(ctx context.Context, id string) error {
	return s.store.DeleteInquiry(ctx, id)
}

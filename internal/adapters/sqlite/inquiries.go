package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vitrine-cms/vitrine/internal/app/ports"
	"github.com/vitrine-cms/vitrine/internal/db"
)

// InquiryStore persists contact submissions.
type InquiryStore struct {
	db *sql.DB
}

// NewInquiryStore returns the sqlite-backed inquiry store.
func NewInquiryStore(database *db.Database) *InquiryStore {
	return &InquiryStore{db: database.SQL()}
}

var _ ports.InquiryStore = (*InquiryStore)(nil)

// AppendInquiry records one submission with a store-assigned id and
// timestamp. Field validation happens in the service layer.
func (s *InquiryStore) AppendInquiry(ctx context.Context, fields ports.InquiryFields) (ports.Inquiry, error) {
	inquiry := ports.Inquiry{
		ID:        uuid.NewString(),
		FirstName: fields.FirstName,
		LastName:  fields.LastName,
		Email:     fields.Email,
		Phone:     fields.Phone,
		Message:   fields.Message,
		CreatedAt: time.Now().UTC(),
	}
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO inquiries (id, first_name, last_name, email, phone, message, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
		inquiry.ID, inquiry.FirstName, inquiry.LastName, inquiry.Email,
		inquiry.Phone, inquiry.Message, formatTime(inquiry.CreatedAt),
	)
	if err != nil {
		return ports.Inquiry{}, fmt.Errorf("append inquiry: %w", err)
	}
	return inquiry, nil
}

// ListInquiries returns submissions newest first.
func (s *InquiryStore) ListInquiries(ctx context.Context) ([]ports.Inquiry, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, first_name, last_name, email, phone, message, created_at FROM inquiries ORDER BY created_at DESC",
	)
	if err != nil {
		return nil, fmt.Errorf("list inquiries: %w", err)
	}
	defer rows.Close()

	inquiries := []ports.Inquiry{}
	for rows.Next() {
		var inquiry ports.Inquiry
		var createdAt string
		err := rows.Scan(
			&inquiry.ID, &inquiry.FirstName, &inquiry.LastName, &inquiry.Email,
			&inquiry.Phone, &inquiry.Message, &createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan inquiry: %w", err)
		}
		inquiry.CreatedAt = parseTime(createdAt)
		inquiries = append(inquiries, inquiry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate inquiries: %w", err)
	}
	return inquiries, nil
}

// DeleteInquiry removes one submission.
func (s *InquiryStore) DeleteInquiry(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM inquiries WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete inquiry: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete inquiry: %w", err)
	}
	if affected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

package ports

import (
	"context"
	"encoding/json"
	"time"
)

// AdminIdentity is the singleton administrator credential. It is created
// once at startup and mutated only by password changes.
type AdminIdentity struct {
	Email        string
	PasswordHash string
	UpdatedAt    time.Time
}

// IdentityStore holds the single admin credential.
type IdentityStore interface {
	GetIdentity(ctx context.Context) (AdminIdentity, error)
	SeedIdentity(ctx context.Context, email, passwordHash string) error
	ReplacePasswordHash(ctx context.Context, passwordHash string) error
}

// Section is a named single-document content record (hero, about, contact,
// footer, seo, video). The document is stored and returned opaquely.
type Section struct {
	Name      string
	Document  json.RawMessage
	UpdatedAt time.Time
}

// SectionStore is plain get/replace storage for section records.
type SectionStore interface {
	GetSection(ctx context.Context, name string) (Section, error)
	ReplaceSection(ctx context.Context, name string, document json.RawMessage) (Section, error)
}

// OrderedItem is one entry of a display-ordered collection. Position values
// across the live items of a collection form the dense sequence 1..N after
// any successful reorder or compact; a delete leaves a gap until then.
type OrderedItem struct {
	ID        string    `json:"id"`
	Position  int64     `json:"position"`
	Title     string    `json:"title"`
	Caption   string    `json:"caption,omitempty"`
	Category  string    `json:"category,omitempty"`
	ImagePath string    `json:"image_path,omitempty"`
	LinkURL   string    `json:"link_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// OrderedItemPatch carries a partial update. Nil fields are left untouched.
// ID and Position are deliberately absent: identity is immutable and
// position only moves through Reorder/Compact.
type OrderedItemPatch struct {
	Title     *string `json:"title"`
	Caption   *string `json:"caption"`
	Category  *string `json:"category"`
	ImagePath *string `json:"image_path"`
	LinkURL   *string `json:"link_url"`
}

// OrderedItemFields holds the content fields for a new item.
type OrderedItemFields struct {
	Title     string `json:"title"`
	Caption   string `json:"caption"`
	Category  string `json:"category"`
	ImagePath string `json:"image_path"`
	LinkURL   string `json:"link_url"`
}

// OrderedCollectionStore is the persistence contract for one ordered
// collection (gallery images, portfolio items).
//
// Delete and Reorder form an explicit two-step protocol: Delete leaves the
// remaining positions untouched (a gap), and the caller restores dense
// ordering with the next Reorder or Compact.
type OrderedCollectionStore interface {
	List(ctx context.Context) ([]OrderedItem, error)
	Append(ctx context.Context, fields OrderedItemFields) (OrderedItem, error)
	Update(ctx context.Context, id string, patch OrderedItemPatch) (OrderedItem, error)
	Delete(ctx context.Context, id string) error
	// Reorder assigns position index+1 to each id in sequence, in one
	// transaction. The sequence must be a permutation of all live ids.
	Reorder(ctx context.Context, ids []string) ([]OrderedItem, error)
	// Compact renumbers surviving items densely, preserving their current
	// relative order.
	Compact(ctx context.Context) ([]OrderedItem, error)
}

// Inquiry is one public contact submission. Inquiries are append-only and
// individually deletable, never updated.
type Inquiry struct {
	ID        string    `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// InquiryFields holds the caller-supplied part of a new inquiry.
type InquiryFields struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Message   string `json:"message"`
}

// InquiryStore is the append/delete-only log of contact submissions.
type InquiryStore interface {
	AppendInquiry(ctx context.Context, fields InquiryFields) (Inquiry, error)
	ListInquiries(ctx context.Context) ([]Inquiry, error)
	DeleteInquiry(ctx context.Context, id string) error
}

package httpdto

import (
	"context"
	"mime/multipart"
	"time"

	"contact-form/internal/domain/contact"
)

// ContactForm is the multipart body of create and update requests.
type ContactForm struct {
	Name       string                `form:"name"`
	Email      string                `form:"email"`
	Message    string                `form:"message"`
	Attachment *multipart.FileHeader `form:"attachment"`
}

// ListQuery holds the raw pagination parameters of the index route.
type ListQuery struct {
	PerPage  string
	Page     string
	PageName string
}

type ContactResponse struct {
	ID         uint64   `json:"id"`
	Name       string   `json:"name"`
	Email      string   `json:"email"`
	Message    string   `json:"message"`
	CreatedAt  string   `json:"created_at"`
	UpdatedAt  string   `json:"updated_at"`
	Attachment []string `json:"attachment"`
}

// AttachmentURLResolver looks up public URLs of contact attachments.
type AttachmentURLResolver interface {
	URLs(ctx context.Context, contactID uint64) ([]string, error)
	URLsFor(ctx context.Context, contactIDs []uint64) (map[uint64][]string, error)
}

func PresentContact(ctx context.Context, c contact.Contact, resolver AttachmentURLResolver) (ContactResponse, error) {
	urls, err := resolver.URLs(ctx, c.ID)
	if err != nil {
		return ContactResponse{}, err
	}
	return toContactResponse(c, urls), nil
}

// PresentContacts resolves attachment URLs for the whole page in one query.
func PresentContacts(ctx context.Context, items []contact.Contact, resolver AttachmentURLResolver) ([]ContactResponse, error) {
	ids := make([]uint64, 0, len(items))
	for _, c := range items {
		ids = append(ids, c.ID)
	}
	grouped, err := resolver.URLsFor(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]ContactResponse, 0, len(items))
	for _, c := range items {
		out = append(out, toContactResponse(c, grouped[c.ID]))
	}
	return out, nil
}

func toContactResponse(c contact.Contact, urls []string) ContactResponse {
	if urls == nil {
		urls = []string{}
	}
	return ContactResponse{
		ID:         c.ID,
		Name:       c.Name,
		Email:      c.Email,
		Message:    c.Message,
		CreatedAt:  formatTime(c.CreatedAt),
		UpdatedAt:  formatTime(c.UpdatedAt),
		Attachment: urls,
	}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

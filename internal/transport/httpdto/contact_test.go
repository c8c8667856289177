package httpdto

import (
	"context"
	"errors"
	"testing"
	"time"

	"contact-form/internal/domain/contact"
)

type stubResolver struct {
	urls map[uint64][]string
	err  error
}

func (s stubResolver) URLs(_ context.Context, id uint64) ([]string, error) {
	return s.urls[id], s.err
}

func (s stubResolver) URLsFor(_ context.Context, ids []uint64) (map[uint64][]string, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := make(map[uint64][]string)
	for _, id := range ids {
		if u, ok := s.urls[id]; ok {
			out[id] = u
		}
	}
	return out, nil
}

func TestPresentContact(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	c := contact.Contact{
		ID:        7,
		Name:      "John Doe",
		Email:     "john@example.com",
		Message:   "Hi",
		CreatedAt: time.Date(2024, 3, 1, 12, 0, 0, 0, loc),
		UpdatedAt: time.Date(2024, 3, 1, 12, 0, 0, 0, loc),
	}
	resolver := stubResolver{urls: map[uint64][]string{7: {"http://files.test/a.png"}}}

	got, err := PresentContact(context.Background(), c, resolver)
	if err != nil {
		t.Fatalf("PresentContact() error: %v", err)
	}
	if got.CreatedAt != "2024-03-01T10:00:00Z" {
		t.Errorf("CreatedAt = %q, want UTC RFC 3339", got.CreatedAt)
	}
	if len(got.Attachment) != 1 || got.Attachment[0] != "http://files.test/a.png" {
		t.Errorf("Attachment = %v", got.Attachment)
	}
}

func TestPresentContacts_EmptyAttachmentIsArray(t *testing.T) {
	items := []contact.Contact{{ID: 1}, {ID: 2}}
	resolver := stubResolver{urls: map[uint64][]string{2: {"http://files.test/b.csv"}}}

	got, err := PresentContacts(context.Background(), items, resolver)
	if err != nil {
		t.Fatalf("PresentContacts() error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 items, got %d", len(got))
	}
	if got[0].Attachment == nil || len(got[0].Attachment) != 0 {
		t.Errorf("expected empty non-nil attachment list, got %#v", got[0].Attachment)
	}
	if len(got[1].Attachment) != 1 {
		t.Errorf("expected one attachment for id 2, got %v", got[1].Attachment)
	}
}

func TestPresentContacts_ResolverError(t *testing.T) {
	_, err := PresentContacts(context.Background(), []contact.Contact{{ID: 1}}, stubResolver{err: errors.New("boom")})
	if err == nil {
		t.Fatal("expected error")
	}
}

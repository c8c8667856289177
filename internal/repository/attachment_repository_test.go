package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"contact-form/internal/domain/contact"
	"contact-form/internal/testutil"
	contact_errors "contact-form/pkg/errors"

	"github.com/google/uuid"
)

func seedAttachment(t *testing.T, repo AttachmentRepository, contactID uint64, key string) contact.Attachment {
	t.Helper()
	a := contact.Attachment{
		ID:         uuid.New(),
		ContactID:  contactID,
		Collection: contact.AttachmentCollection,
		ObjectKey:  key,
		FileName:   "avatar.png",
		MimeType:   contact.MimePNG,
		SizeBytes:  100,
		CreatedAt:  time.Now().UTC(),
	}
	if err := repo.Create(context.Background(), &a); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	return a
}

func TestAttachmentRepository_ListAndDelete(t *testing.T) {
	db := testutil.TestDB(t)
	if err := InitSchema(db); err != nil {
		t.Fatalf("InitSchema() error = %v", err)
	}
	contacts := NewContactRepository(db)
	repo := NewAttachmentRepository(db)
	ctx := context.Background()

	owner := &contact.Contact{Name: "A", Email: "a@example.com", Message: "m"}
	other := &contact.Contact{Name: "B", Email: "b@example.com", Message: "m"}
	for _, c := range []*contact.Contact{owner, other} {
		if err := contacts.Create(ctx, c); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	seedAttachment(t, repo, owner.ID, "k1")
	seedAttachment(t, repo, owner.ID, "k2")
	seedAttachment(t, repo, other.ID, "k3")

	items, err := repo.ListByContact(ctx, owner.ID, contact.AttachmentCollection)
	if err != nil {
		t.Fatalf("ListByContact() error = %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 attachments, got %d", len(items))
	}

	grouped, err := repo.ListByContacts(ctx, []uint64{owner.ID, other.ID}, contact.AttachmentCollection)
	if err != nil {
		t.Fatalf("ListByContacts() error = %v", err)
	}
	if len(grouped[owner.ID]) != 2 || len(grouped[other.ID]) != 1 {
		t.Errorf("unexpected grouping: %v", grouped)
	}

	removed, err := repo.DeleteByContact(ctx, owner.ID, contact.AttachmentCollection)
	if err != nil {
		t.Fatalf("DeleteByContact() error = %v", err)
	}
	if len(removed) != 2 {
		t.Errorf("expected 2 removed rows, got %d", len(removed))
	}
	left, _ := repo.ListByContact(ctx, owner.ID, contact.AttachmentCollection)
	if len(left) != 0 {
		t.Errorf("expected empty collection, got %d", len(left))
	}
	untouched, _ := repo.ListByContact(ctx, other.ID, contact.AttachmentCollection)
	if len(untouched) != 1 {
		t.Errorf("expected other contact's attachment to remain, got %d", len(untouched))
	}
}

func TestAttachmentRepository_ListByContacts_Empty(t *testing.T) {
	db := testutil.TestDB(t)
	if err := InitSchema(db); err != nil {
		t.Fatalf("InitSchema() error = %v", err)
	}
	repo := NewAttachmentRepository(db)

	got, err := repo.ListByContacts(context.Background(), nil, contact.AttachmentCollection)
	if err != nil {
		t.Fatalf("ListByContacts() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected empty map, got %v", got)
	}
}

func TestStore_WithTx_RollsBack(t *testing.T) {
	db := testutil.TestDB(t)
	if err := InitSchema(db); err != nil {
		t.Fatalf("InitSchema() error = %v", err)
	}
	store := NewStore(db)
	ctx := context.Background()
	boom := errors.New("boom")

	err := store.WithTx(ctx, func(tx Store) error {
		if err := tx.Contacts().Create(ctx, &contact.Contact{Name: "A", Email: "a@example.com", Message: "m"}); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}

	total, err := store.Contacts().Count(ctx)
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if total != 0 {
		t.Errorf("expected rollback to leave no rows, got %d", total)
	}

	_, err = store.Contacts().FindDuplicate(ctx, "A", "a@example.com", "m")
	if !errors.Is(err, contact_errors.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestTruncate(t *testing.T) {
	db := testutil.TestDB(t)
	if err := InitSchema(db); err != nil {
		t.Fatalf("InitSchema() error = %v", err)
	}
	store := NewStore(db)
	ctx := context.Background()

	c := contact.Contact{Name: "A", Email: "a@example.com", Message: "m"}
	if err := store.Contacts().Create(ctx, &c); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	seedAttachment(t, store.Attachments(), c.ID, "contacts/1/attachment/a.png")

	if err := Truncate(db); err != nil {
		t.Fatalf("Truncate() error = %v", err)
	}

	n, err := store.Contacts().Count(ctx)
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if n != 0 {
		t.Errorf("expected empty contacts table, got %d rows", n)
	}
	rows, err := store.Attachments().ListByContact(ctx, c.ID, contact.AttachmentCollection)
	if err != nil {
		t.Fatalf("ListByContact() error = %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("expected no attachments, got %d", len(rows))
	}
}

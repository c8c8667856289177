package repository

import (
	"context"

	"contact-form/internal/domain/contact"
)

type ContactRepository interface {
	Create(ctx context.Context, c *contact.Contact) error
	GetByID(ctx context.Context, id uint64) (contact.Contact, error)
	Update(ctx context.Context, c *contact.Contact) error
	Delete(ctx context.Context, id uint64) error

	List(ctx context.Context, page, perPage int) ([]contact.Contact, error)
	FindDuplicate(ctx context.Context, name, email, message string) (contact.Contact, error)
	Count(ctx context.Context) (int64, error)
}

type AttachmentRepository interface {
	Create(ctx context.Context, a *contact.Attachment) error
	ListByContact(ctx context.Context, contactID uint64, collection string) ([]contact.Attachment, error)
	ListByContacts(ctx context.Context, contactIDs []uint64, collection string) (map[uint64][]contact.Attachment, error)
	DeleteByContact(ctx context.Context, contactID uint64, collection string) ([]contact.Attachment, error)
}

// Store groups the repositories that take part in one unit of work.
type Store interface {
	Contacts() ContactRepository
	Attachments() AttachmentRepository

	// WithTx runs fn inside a transaction. The Store passed to fn is bound to
	// that transaction; returning an error rolls it back.
	WithTx(ctx context.Context, fn func(Store) error) error
}

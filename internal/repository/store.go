package repository

import (
	"context"

	"gorm.io/gorm"
)

type gormStore struct {
	db          *gorm.DB
	contacts    ContactRepository
	attachments AttachmentRepository
}

func NewStore(db *gorm.DB) Store {
	return &gormStore{
		db:          db,
		contacts:    NewContactRepository(db),
		attachments: NewAttachmentRepository(db),
	}
}

func (s *gormStore) Contacts() ContactRepository {
	return s.contacts
}

func (s *gormStore) Attachments() AttachmentRepository {
	return s.attachments
}

func (s *gormStore) WithTx(ctx context.Context, fn func(Store) error) error {
	return WithTx(ctx, s.db, func(tx *gorm.DB) error {
		return fn(NewStore(tx))
	})
}

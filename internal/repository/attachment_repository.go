package repository

import (
	"context"

	"contact-form/internal/domain/contact"

	"gorm.io/gorm"
)

type PostgresAttachmentRepository struct {
	db *gorm.DB
}

func NewAttachmentRepository(db *gorm.DB) AttachmentRepository {
	return &PostgresAttachmentRepository{db: db}
}

func (r *PostgresAttachmentRepository) Create(ctx context.Context, a *contact.Attachment) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *PostgresAttachmentRepository) ListByContact(ctx context.Context, contactID uint64, collection string) ([]contact.Attachment, error) {
	var items []contact.Attachment
	err := r.db.WithContext(ctx).
		Where("contact_id = ? AND collection = ?", contactID, collection).
		Order("created_at ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *PostgresAttachmentRepository) ListByContacts(ctx context.Context, contactIDs []uint64, collection string) (map[uint64][]contact.Attachment, error) {
	out := make(map[uint64][]contact.Attachment, len(contactIDs))
	if len(contactIDs) == 0 {
		return out, nil
	}

	var items []contact.Attachment
	err := r.db.WithContext(ctx).
		Where("contact_id IN ? AND collection = ?", contactIDs, collection).
		Order("created_at ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		out[item.ContactID] = append(out[item.ContactID], item)
	}
	return out, nil
}

// DeleteByContact removes the collection's rows and returns what was removed
// so the caller can purge the stored files.
func (r *PostgresAttachmentRepository) DeleteByContact(ctx context.Context, contactID uint64, collection string) ([]contact.Attachment, error) {
	var removed []contact.Attachment
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("contact_id = ? AND collection = ?", contactID, collection).
			Find(&removed).Error; err != nil {
			return err
		}
		if len(removed) == 0 {
			return nil
		}
		return tx.Where("contact_id = ? AND collection = ?", contactID, collection).
			Delete(&contact.Attachment{}).Error
	})
	if err != nil {
		return nil, err
	}
	return removed, nil
}

package repository

import (
	"context"
	"errors"
	"time"

	"contact-form/internal/domain/contact"
	contact_errors "contact-form/pkg/errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PostgresContactRepository struct {
	db *gorm.DB
}

func NewContactRepository(db *gorm.DB) ContactRepository {
	return &PostgresContactRepository{db: db}
}

func (r *PostgresContactRepository) Create(ctx context.Context, c *contact.Contact) error {
	res := r.db.WithContext(ctx).Omit(clause.Associations).Create(c)
	if res.Error != nil {
		if isUniqueViolation(res.Error) {
			return contact_errors.ErrConflict
		}
		return res.Error
	}
	return nil
}

func (r *PostgresContactRepository) GetByID(ctx context.Context, id uint64) (contact.Contact, error) {
	var c contact.Contact
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&c).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return contact.Contact{}, contact_errors.ErrNotFound
		}
		return contact.Contact{}, err
	}
	return c, nil
}

// Update replaces name, email and message. Save is avoided on purpose: it
// inserts when the row is missing.
func (r *PostgresContactRepository) Update(ctx context.Context, c *contact.Contact) error {
	now := time.Now().UTC()
	fingerprint := contact.Fingerprint(c.Name, c.Email, c.Message)

	res := r.db.WithContext(ctx).
		Session(&gorm.Session{SkipHooks: true}).
		Model(&contact.Contact{}).
		Where("id = ?", c.ID).
		Updates(map[string]interface{}{
			"name":        c.Name,
			"email":       c.Email,
			"message":     c.Message,
			"fingerprint": fingerprint,
			"updated_at":  now,
		})
	if res.Error != nil {
		if isUniqueViolation(res.Error) {
			return contact_errors.ErrConflict
		}
		return res.Error
	}
	if res.RowsAffected == 0 {
		return contact_errors.ErrNotFound
	}
	c.Fingerprint = fingerprint
	c.UpdatedAt = now
	return nil
}

func (r *PostgresContactRepository) Delete(ctx context.Context, id uint64) error {
	res := r.db.WithContext(ctx).Delete(&contact.Contact{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return contact_errors.ErrNotFound
	}
	return nil
}

func (r *PostgresContactRepository) List(ctx context.Context, page, perPage int) ([]contact.Contact, error) {
	if page < 1 || perPage < 1 {
		return nil, contact_errors.ErrInvalidPagination
	}

	offset, ok := offsetFor(page, perPage)
	if !ok {
		return []contact.Contact{}, nil
	}

	var contacts []contact.Contact
	err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Order("id ASC").
		Offset(offset).
		Limit(perPage).
		Find(&contacts).Error
	if err != nil {
		return nil, err
	}
	return contacts, nil
}

func (r *PostgresContactRepository) FindDuplicate(ctx context.Context, name, email, message string) (contact.Contact, error) {
	var c contact.Contact
	err := r.db.WithContext(ctx).
		Where("name = ? AND email = ? AND message = ?", name, email, message).
		Order("id ASC").
		First(&c).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return contact.Contact{}, contact_errors.ErrNotFound
		}
		return contact.Contact{}, err
	}
	return c, nil
}

func (r *PostgresContactRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&contact.Contact{}).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

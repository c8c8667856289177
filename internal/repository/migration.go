package repository

import (
	"fmt"

	"contact-form/internal/domain/contact"

	"gorm.io/gorm"
)

// InitSchema creates or updates the contacts and attachments tables, their
// indexes and the cascading foreign key between them.
func InitSchema(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&contact.Contact{},
		&contact.Attachment{},
	); err != nil {
		return fmt.Errorf("auto-migration failed: %w", err)
	}
	return nil
}

// Truncate removes every row from the managed tables. Attachments go first so
// the foreign key never blocks the delete.
func Truncate(db *gorm.DB) error {
	for _, model := range []interface{}{&contact.Attachment{}, &contact.Contact{}} {
		if err := db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
			return fmt.Errorf("failed to truncate %T: %w", model, err)
		}
	}
	return nil
}

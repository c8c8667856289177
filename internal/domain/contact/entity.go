package contact

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"gorm.io/gorm"
)

// Contact represents the contacts table
type Contact struct {
	ID          uint64    `gorm:"primaryKey;autoIncrement"`
	Name        string    `gorm:"type:varchar(255);not null"`
	Email       string    `gorm:"type:varchar(255);not null"`
	Message     string    `gorm:"type:text;not null"`
	Fingerprint string    `gorm:"type:char(64);not null;uniqueIndex:idx_contacts_fingerprint"`
	CreatedAt   time.Time `gorm:"not null;index:idx_contacts_created_at"`
	UpdatedAt   time.Time `gorm:"not null"`

	Attachments []Attachment `gorm:"foreignKey:ContactID;constraint:OnDelete:CASCADE"`
}

func (Contact) TableName() string {
	return "contacts"
}

// BeforeSave keeps the natural-key fingerprint in sync with the scalar fields.
func (c *Contact) BeforeSave(_ *gorm.DB) error {
	c.Fingerprint = Fingerprint(c.Name, c.Email, c.Message)
	return nil
}

// Fingerprint hashes the (name, email, message) triple. Two contacts with the
// same fingerprint are duplicates.
func Fingerprint(name, email, message string) string {
	h := sha256.New()
	h.Write([]byte(name))
	h.Write([]byte{0})
	h.Write([]byte(email))
	h.Write([]byte{0})
	h.Write([]byte(message))
	return hex.EncodeToString(h.Sum(nil))
}

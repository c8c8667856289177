package contact

import (
	"time"

	"github.com/google/uuid"
)

// AttachmentCollection is the only collection a contact stores files in.
const AttachmentCollection = "attachment"

// Allowed attachment MIME types.
const (
	MimePNG  = "image/png"
	MimeSVG  = "image/svg+xml"
	MimeSVG2 = "application/svg+xml"
	MimeCSV  = "text/csv"
)

var AllowedMimeTypes = []string{MimePNG, MimeSVG, MimeSVG2, MimeCSV}

// Attachment represents the attachments table. The file itself lives in the
// storage backend under ObjectKey.
type Attachment struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	ContactID  uint64    `gorm:"not null;index:idx_attachments_contact_collection"`
	Collection string    `gorm:"type:varchar(64);not null;index:idx_attachments_contact_collection"`
	ObjectKey  string    `gorm:"type:text;not null"`
	FileName   string    `gorm:"type:text;not null"`
	MimeType   string    `gorm:"type:varchar(128);not null"`
	SizeBytes  int64     `gorm:"not null"`
	CreatedAt  time.Time `gorm:"not null"`
}

func (Attachment) TableName() string {
	return "attachments"
}

package services

import (
	"context"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strings"
	"time"

	"contact-form/internal/domain/contact"
	"contact-form/internal/repository"
	"contact-form/internal/storage"
	contact_errors "contact-form/pkg/errors"
	"contact-form/pkg/logger"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const attachmentTypeMessage = "The attachment must be a file of type: csv, png, svg."

// Upload is a file received with a request. Body must be rewindable because
// the content is sniffed before it is stored.
type Upload struct {
	FileName    string
	ContentType string
	Size        int64
	Body        io.ReadSeeker
}

// AttachmentService manages the attachment collection of contacts: rows in
// the attachments table plus the files in the storage backend.
type AttachmentService struct {
	repo     repository.AttachmentRepository
	backend  storage.Backend
	maxBytes int64
	logger   *logger.Logger
	newID    func() uuid.UUID
	clock    func() time.Time
}

func NewAttachmentService(repo repository.AttachmentRepository, backend storage.Backend, maxBytes int64, l *logger.Logger) *AttachmentService {
	return &AttachmentService{
		repo:     repo,
		backend:  backend,
		maxBytes: maxBytes,
		logger:   l,
		newID:    uuid.New,
		clock:    time.Now,
	}
}

// Inspect sniffs the upload and returns the accepted MIME type.
func (s *AttachmentService) Inspect(u *Upload) (string, error) {
	if u == nil || u.Body == nil {
		return "", contact_errors.ErrNotUploaded
	}
	detected, err := mimetype.DetectReader(u.Body)
	if _, seekErr := u.Body.Seek(0, io.SeekStart); seekErr != nil {
		return "", fmt.Errorf("rewind upload: %w", seekErr)
	}
	if err != nil {
		return "", fmt.Errorf("detect attachment type: %w", err)
	}

	declared := declaredMimeType(u.ContentType)
	for _, allowed := range contact.AllowedMimeTypes {
		if !detected.Is(allowed) {
			continue
		}
		// A declared type from the list must agree with the content.
		if isAllowedMimeType(declared) && mimeFamily(declared) != mimeFamily(allowed) {
			return "", contact_errors.NewValidationError(attachmentTypeMessage)
		}
		return allowed, nil
	}

	// CSV and some SVG files sniff as plain text; trust the declared type or
	// the .csv extension then.
	if detected.Is("text/plain") {
		switch declared {
		case contact.MimeCSV, contact.MimeSVG, contact.MimeSVG2:
			return declared, nil
		}
		if !isAllowedMimeType(declared) && strings.EqualFold(filepath.Ext(u.FileName), ".csv") {
			return contact.MimeCSV, nil
		}
	}
	return "", contact_errors.NewValidationError(attachmentTypeMessage)
}

// Store writes the upload to the backend and records it in repo, which is
// expected to be bound to the caller's transaction.
func (s *AttachmentService) Store(ctx context.Context, repo repository.AttachmentRepository, contactID uint64, u *Upload, mimeType string) (contact.Attachment, error) {
	if s.maxBytes > 0 && u.Size > s.maxBytes {
		return contact.Attachment{}, contact_errors.NewStorageError("put", fmt.Errorf("%w: %d bytes exceeds %d", contact_errors.ErrTooLarge, u.Size, s.maxBytes))
	}
	if !isAllowedMimeType(mimeType) {
		return contact.Attachment{}, contact_errors.NewStorageError("put", contact_errors.ErrUnacceptableFile)
	}
	if _, err := u.Body.Seek(0, io.SeekStart); err != nil {
		return contact.Attachment{}, contact_errors.NewStorageError("put", err)
	}

	a := contact.Attachment{
		ID:         s.newID(),
		ContactID:  contactID,
		Collection: contact.AttachmentCollection,
		FileName:   sanitizeFileName(u.FileName),
		MimeType:   mimeType,
		SizeBytes:  u.Size,
		CreatedAt:  s.clock().UTC(),
	}
	a.ObjectKey = buildObjectKey(a)

	if err := s.backend.Put(ctx, a.ObjectKey, u.Body, mimeType, u.Size); err != nil {
		return contact.Attachment{}, contact_errors.NewStorageError("put", err)
	}
	if err := repo.Create(ctx, &a); err != nil {
		s.Purge(ctx, []string{a.ObjectKey})
		return contact.Attachment{}, contact_errors.NewStorageError("record", err)
	}
	return a, nil
}

// Clear removes the collection's rows through repo and returns the object
// keys. The files stay in place until Purge so a rollback loses nothing.
func (s *AttachmentService) Clear(ctx context.Context, repo repository.AttachmentRepository, contactID uint64) ([]string, error) {
	removed, err := repo.DeleteByContact(ctx, contactID, contact.AttachmentCollection)
	if err != nil {
		return nil, contact_errors.NewStorageError("clear", err)
	}
	keys := make([]string, 0, len(removed))
	for _, a := range removed {
		keys = append(keys, a.ObjectKey)
	}
	return keys, nil
}

// Purge deletes files from the backend. Failures leave orphaned files behind
// and are only logged.
func (s *AttachmentService) Purge(ctx context.Context, keys []string) {
	for _, key := range keys {
		if err := s.backend.Delete(ctx, key); err != nil && s.logger != nil {
			s.logger.Warn(ctx, "failed to purge attachment", zap.String("key", key), zap.Error(err))
		}
	}
}

func (s *AttachmentService) URLs(ctx context.Context, contactID uint64) ([]string, error) {
	items, err := s.repo.ListByContact(ctx, contactID, contact.AttachmentCollection)
	if err != nil {
		return nil, err
	}
	return s.resolve(ctx, items)
}

func (s *AttachmentService) URLsFor(ctx context.Context, contactIDs []uint64) (map[uint64][]string, error) {
	grouped, err := s.repo.ListByContacts(ctx, contactIDs, contact.AttachmentCollection)
	if err != nil {
		return nil, err
	}
	out := make(map[uint64][]string, len(grouped))
	for id, items := range grouped {
		urls, err := s.resolve(ctx, items)
		if err != nil {
			return nil, err
		}
		out[id] = urls
	}
	return out, nil
}

func (s *AttachmentService) resolve(ctx context.Context, items []contact.Attachment) ([]string, error) {
	urls := make([]string, 0, len(items))
	for _, a := range items {
		u, err := s.backend.URL(ctx, a.ObjectKey)
		if err != nil {
			return nil, contact_errors.NewStorageError("url", err)
		}
		urls = append(urls, u)
	}
	return urls, nil
}

func buildObjectKey(a contact.Attachment) string {
	return fmt.Sprintf("contacts/%d/%s/%s%s", a.ContactID, a.Collection, a.ID.String(), extensionFor(a.MimeType))
}

func extensionFor(mimeType string) string {
	switch mimeType {
	case contact.MimePNG:
		return ".png"
	case contact.MimeSVG, contact.MimeSVG2:
		return ".svg"
	case contact.MimeCSV:
		return ".csv"
	}
	return ""
}

func declaredMimeType(contentType string) string {
	if contentType == "" {
		return ""
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return ""
	}
	return strings.ToLower(mediaType)
}

// mimeFamily folds the SVG aliases together.
func mimeFamily(mimeType string) string {
	if mimeType == contact.MimeSVG2 {
		return contact.MimeSVG
	}
	return mimeType
}

func isAllowedMimeType(mimeType string) bool {
	for _, allowed := range contact.AllowedMimeTypes {
		if mimeType == allowed {
			return true
		}
	}
	return false
}

func sanitizeFileName(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	if name == "." || name == "/" || name == "" {
		return "attachment"
	}
	return name
}

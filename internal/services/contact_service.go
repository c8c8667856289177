package services

import (
	"context"
	"errors"
	"time"

	"contact-form/internal/domain/contact"
	"contact-form/internal/notify"
	"contact-form/internal/repository"
	contact_errors "contact-form/pkg/errors"
	"contact-form/pkg/logger"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

type ContactService struct {
	store         repository.Store
	attachments   *AttachmentService
	notifier      notify.Notifier
	recipient     string
	notifyTimeout time.Duration
	logger        *logger.Logger
	validate      *validator.Validate
}

type ContactServiceConfig struct {
	Recipient     string
	NotifyTimeout time.Duration
}

func NewContactService(store repository.Store, attachments *AttachmentService, notifier notify.Notifier, cfg ContactServiceConfig, l *logger.Logger) *ContactService {
	if cfg.NotifyTimeout <= 0 {
		cfg.NotifyTimeout = 3 * time.Second
	}
	if l == nil {
		l = logger.NewNop()
	}
	return &ContactService{
		store:         store,
		attachments:   attachments,
		notifier:      notifier,
		recipient:     cfg.Recipient,
		notifyTimeout: cfg.NotifyTimeout,
		logger:        l,
		validate:      newValidator(),
	}
}

// SubmitInput is a new contact form submission.
type SubmitInput struct {
	Name       string
	Email      string
	Message    string
	Attachment *Upload
}

// AmendInput replaces a contact's fields. A nil Attachment keeps the
// existing one.
type AmendInput struct {
	Name       string
	Email      string
	Message    string
	Attachment *Upload
}

// Submit validates and persists a new contact with its attachment, then
// notifies the configured recipient.
func (s *ContactService) Submit(ctx context.Context, in SubmitInput) (contact.Contact, error) {
	created, err := s.submit(ctx, in)
	observe("submit", err)
	return created, err
}

func (s *ContactService) submit(ctx context.Context, in SubmitInput) (contact.Contact, error) {
	fields := contactFields{Name: in.Name, Email: in.Email, Message: in.Message}
	mimeType, err := s.validateInput(&fields, in.Attachment, true)
	if err != nil {
		return contact.Contact{}, err
	}

	var created contact.Contact
	var stored []string
	err = s.store.WithTx(ctx, func(tx repository.Store) error {
		_, err := tx.Contacts().FindDuplicate(ctx, fields.Name, fields.Email, fields.Message)
		if err == nil {
			return contact_errors.ErrConflict
		}
		if !errors.Is(err, contact_errors.ErrNotFound) {
			return err
		}

		c := contact.Contact{Name: fields.Name, Email: fields.Email, Message: fields.Message}
		if err := tx.Contacts().Create(ctx, &c); err != nil {
			return err
		}

		if in.Attachment != nil {
			a, err := s.attachments.Store(ctx, tx.Attachments(), c.ID, in.Attachment, mimeType)
			if err != nil {
				return err
			}
			stored = append(stored, a.ObjectKey)
		}
		created = c
		return nil
	})
	if err != nil {
		s.attachments.Purge(ctx, stored)
		return contact.Contact{}, err
	}

	s.notifyCreated(ctx, created)
	return created, nil
}

// Amend replaces name, email and message of an existing contact. A supplied
// attachment replaces the whole collection.
func (s *ContactService) Amend(ctx context.Context, id uint64, in AmendInput) (contact.Contact, error) {
	updated, err := s.amend(ctx, id, in)
	observe("amend", err)
	return updated, err
}

func (s *ContactService) amend(ctx context.Context, id uint64, in AmendInput) (contact.Contact, error) {
	fields := contactFields{Name: in.Name, Email: in.Email, Message: in.Message}
	mimeType, err := s.validateInput(&fields, in.Attachment, false)
	if err != nil {
		return contact.Contact{}, err
	}

	var updated contact.Contact
	var stored, obsolete []string
	err = s.store.WithTx(ctx, func(tx repository.Store) error {
		c, err := tx.Contacts().GetByID(ctx, id)
		if err != nil {
			return err
		}

		c.Name, c.Email, c.Message = fields.Name, fields.Email, fields.Message
		if err := tx.Contacts().Update(ctx, &c); err != nil {
			return err
		}

		if in.Attachment != nil {
			keys, err := s.attachments.Clear(ctx, tx.Attachments(), c.ID)
			if err != nil {
				return err
			}
			a, err := s.attachments.Store(ctx, tx.Attachments(), c.ID, in.Attachment, mimeType)
			if err != nil {
				return err
			}
			obsolete = keys
			stored = append(stored, a.ObjectKey)
		}
		updated = c
		return nil
	})
	if err != nil {
		s.attachments.Purge(ctx, stored)
		return contact.Contact{}, err
	}

	s.attachments.Purge(ctx, obsolete)
	return updated, nil
}

// Remove deletes a contact together with its attachment files.
func (s *ContactService) Remove(ctx context.Context, id uint64) error {
	err := s.remove(ctx, id)
	observe("remove", err)
	return err
}

func (s *ContactService) remove(ctx context.Context, id uint64) error {
	var obsolete []string
	err := s.store.WithTx(ctx, func(tx repository.Store) error {
		if _, err := tx.Contacts().GetByID(ctx, id); err != nil {
			return err
		}
		keys, err := s.attachments.Clear(ctx, tx.Attachments(), id)
		if err != nil {
			return err
		}
		if err := tx.Contacts().Delete(ctx, id); err != nil {
			return err
		}
		obsolete = keys
		return nil
	})
	if err != nil {
		return err
	}

	s.attachments.Purge(ctx, obsolete)
	return nil
}

func (s *ContactService) Fetch(ctx context.Context, id uint64) (contact.Contact, error) {
	return s.store.Contacts().GetByID(ctx, id)
}

func (s *ContactService) FetchPage(ctx context.Context, page, perPage int) ([]contact.Contact, error) {
	return s.store.Contacts().List(ctx, page, perPage)
}

func (s *ContactService) validateInput(fields *contactFields, upload *Upload, attachmentRequired bool) (string, error) {
	fields.normalize()
	if err := s.validate.Struct(fields); err != nil {
		return "", firstValidationError(err)
	}
	if upload == nil {
		if attachmentRequired {
			return "", contact_errors.NewValidationError("The attachment field is required.")
		}
		return "", nil
	}
	return s.attachments.Inspect(upload)
}

// notifyCreated runs after commit. Delivery problems never fail the
// submission.
func (s *ContactService) notifyCreated(ctx context.Context, c contact.Contact) {
	if s.notifier == nil || s.recipient == "" {
		return
	}
	nctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.notifyTimeout)
	defer cancel()

	err := s.notifier.Notify(nctx, notify.Notification{
		Recipient: s.recipient,
		Text:      notify.NewContactText,
		ContactID: c.ID,
	})
	if err != nil {
		notificationFailuresTotal.Inc()
		s.logger.Warn(ctx, "contact notification failed",
			zap.Uint64("contact_id", c.ID),
			zap.String("recipient", s.recipient),
			zap.Error(err),
		)
	}
}

func outcomeOf(err error) string {
	var verr *contact_errors.ValidationError
	switch {
	case err == nil:
		return "success"
	case errors.As(err, &verr):
		return "invalid"
	case errors.Is(err, contact_errors.ErrConflict):
		return "conflict"
	case errors.Is(err, contact_errors.ErrNotFound):
		return "not_found"
	default:
		return "error"
	}
}

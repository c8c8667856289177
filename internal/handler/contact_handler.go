package handler

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"

	"contact-form/internal/services"
	"contact-form/internal/transport/httpdto"
	contact_errors "contact-form/pkg/errors"

	"github.com/gin-gonic/gin"
)

const (
	defaultPerPage  = 15
	defaultPageName = "pageName"

	msgListed   = "Contacts retrieved successfully"
	msgCreated  = "Contact created successfully"
	msgShown    = "Contact retrieved successfully"
	msgUpdated  = "Contact updated successfully"
	msgDeleted  = "Contact deleted successfully"
	msgNotFound = "Contact not found"
	msgMissing  = "The contact does not exist"
)

type ContactHandler struct {
	service     *services.ContactService
	attachments httpdto.AttachmentURLResolver
}

func NewContactHandler(service *services.ContactService, attachments httpdto.AttachmentURLResolver) *ContactHandler {
	return &ContactHandler{service: service, attachments: attachments}
}

func (h *ContactHandler) Index(c *gin.Context) {
	q := httpdto.ListQuery{
		PerPage:  c.Query("perPage"),
		Page:     c.Query("page"),
		PageName: c.Query("pageName"),
	}

	page, perPage, err := parsePagination(c, q)
	if err != nil {
		writeError(c, err, msgNotFound)
		return
	}

	items, err := h.service.FetchPage(c.Request.Context(), page, perPage)
	if err != nil {
		writeError(c, err, msgNotFound)
		return
	}
	out, err := httpdto.PresentContacts(c.Request.Context(), items, h.attachments)
	if err != nil {
		writeError(c, err, msgNotFound)
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(msgListed, "contacts", out))
}

func (h *ContactHandler) Store(c *gin.Context) {
	var form httpdto.ContactForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusUnprocessableEntity, httpdto.NewErrorResponse(err.Error()))
		return
	}

	upload, closeFn, err := openUpload(form.Attachment)
	if err != nil {
		writeError(c, err, msgNotFound)
		return
	}
	defer closeFn()

	created, err := h.service.Submit(c.Request.Context(), services.SubmitInput{
		Name:       form.Name,
		Email:      form.Email,
		Message:    form.Message,
		Attachment: upload,
	})
	if err != nil {
		writeError(c, err, msgNotFound)
		return
	}
	h.respondContact(c, msgCreated, created.ID)
}

func (h *ContactHandler) Show(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		c.JSON(http.StatusNotFound, httpdto.NewErrorResponse(msgNotFound))
		return
	}
	h.respondContact(c, msgShown, id)
}

func (h *ContactHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		c.JSON(http.StatusNotFound, httpdto.NewErrorResponse(msgMissing))
		return
	}

	var form httpdto.ContactForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusUnprocessableEntity, httpdto.NewErrorResponse(err.Error()))
		return
	}

	upload, closeFn, err := openUpload(form.Attachment)
	if err != nil {
		writeError(c, err, msgMissing)
		return
	}
	defer closeFn()

	updated, err := h.service.Amend(c.Request.Context(), id, services.AmendInput{
		Name:       form.Name,
		Email:      form.Email,
		Message:    form.Message,
		Attachment: upload,
	})
	if err != nil {
		writeError(c, err, msgMissing)
		return
	}
	h.respondContact(c, msgUpdated, updated.ID)
}

func (h *ContactHandler) Destroy(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		c.JSON(http.StatusNotFound, httpdto.NewErrorResponse(msgNotFound))
		return
	}
	if err := h.service.Remove(c.Request.Context(), id); err != nil {
		writeError(c, err, msgNotFound)
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(msgDeleted, "", nil))
}

// respondContact reloads the contact so timestamps match what was stored.
func (h *ContactHandler) respondContact(c *gin.Context, message string, id uint64) {
	item, err := h.service.Fetch(c.Request.Context(), id)
	if err != nil {
		writeError(c, err, msgNotFound)
		return
	}
	out, err := httpdto.PresentContact(c.Request.Context(), item, h.attachments)
	if err != nil {
		writeError(c, err, msgNotFound)
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(message, "contact", out))
}

// writeError maps service errors to status codes. notFound is the message
// used for a missing contact, which differs between routes.
func writeError(c *gin.Context, err error, notFound string) {
	var verr *contact_errors.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusUnprocessableEntity, httpdto.NewErrorResponse(verr.Message))
	case errors.Is(err, contact_errors.ErrInvalidPagination):
		c.JSON(http.StatusUnprocessableEntity, httpdto.NewErrorResponse(contact_errors.ErrInvalidPagination.Error()))
	case errors.Is(err, contact_errors.ErrConflict):
		c.JSON(http.StatusConflict, httpdto.NewErrorResponse(contact_errors.DuplicateMessage))
	case errors.Is(err, contact_errors.ErrNotFound):
		c.JSON(http.StatusNotFound, httpdto.NewErrorResponse(notFound))
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, httpdto.NewErrorResponse(err.Error()))
	}
}

// parseID accepts ids that fit a signed bigint column. Anything else cannot
// name a stored contact.
func parseID(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 63)
	if err != nil {
		return 0, false
	}
	return id, true
}

// parsePagination reads perPage and the page number. The page comes from
// "page", or else from the parameter named by pageName.
func parsePagination(c *gin.Context, q httpdto.ListQuery) (int, int, error) {
	perPage, err := positiveInt(q.PerPage, defaultPerPage)
	if err != nil {
		return 0, 0, err
	}

	raw := q.Page
	if raw == "" {
		name := q.PageName
		if name == "" {
			name = defaultPageName
		}
		raw = c.Query(name)
	}
	page, err := positiveInt(raw, 1)
	if err != nil {
		return 0, 0, err
	}
	return page, perPage, nil
}

func positiveInt(raw string, fallback int) (int, error) {
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, contact_errors.ErrInvalidPagination
	}
	return n, nil
}

func openUpload(fh *multipart.FileHeader) (*services.Upload, func(), error) {
	if fh == nil {
		return nil, func() {}, nil
	}
	f, err := fh.Open()
	if err != nil {
		return nil, func() {}, contact_errors.NewStorageError("open", err)
	}
	return &services.Upload{
		FileName:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Body:        f,
	}, func() { _ = f.Close() }, nil
}

package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sort"
	"sync"
	"testing"

	"contact-form/internal/notify"
	"contact-form/internal/repository"
	"contact-form/internal/testutil"
	"contact-form/pkg/logger"
)

// pngHeader is enough for content sniffing to report image/png.
var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}

type memoryBackend struct {
	mu      sync.Mutex
	objects map[string][]byte
	putErr  error
}

func newMemoryBackend() *memoryBackend {
	return &memoryBackend{objects: make(map[string][]byte)}
}

func (b *memoryBackend) Put(_ context.Context, key string, body io.Reader, _ string, _ int64) error {
	if b.putErr != nil {
		return b.putErr
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.objects[key] = data
	return nil
}

func (b *memoryBackend) Delete(_ context.Context, key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.objects, key)
	return nil
}

func (b *memoryBackend) URL(_ context.Context, key string) (string, error) {
	return "http://files.test/" + key, nil
}

func (b *memoryBackend) keys() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]string, 0, len(b.objects))
	for k := range b.objects {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

type recordingNotifier struct {
	mu    sync.Mutex
	sent  []notify.Notification
	err   error
	calls int
}

func (n *recordingNotifier) Notify(_ context.Context, note notify.Notification) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls++
	if n.err != nil {
		return n.err
	}
	n.sent = append(n.sent, note)
	return nil
}

type fixture struct {
	store       repository.Store
	backend     *memoryBackend
	notifier    *recordingNotifier
	attachments *AttachmentService
	contacts    *ContactService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := testutil.TestDB(t)
	if err := repository.InitSchema(db); err != nil {
		t.Fatalf("init schema: %v", err)
	}

	store := repository.NewStore(db)
	backend := newMemoryBackend()
	notifier := &recordingNotifier{}
	attachments := NewAttachmentService(store.Attachments(), backend, 1024, logger.NewNop())
	contacts := NewContactService(store, attachments, notifier, ContactServiceConfig{Recipient: "admin@example.com"}, logger.NewNop())

	return &fixture{
		store:       store,
		backend:     backend,
		notifier:    notifier,
		attachments: attachments,
		contacts:    contacts,
	}
}

func pngUpload(name string) *Upload {
	body := append([]byte{}, pngHeader...)
	return &Upload{FileName: name, ContentType: "image/png", Size: int64(len(body)), Body: bytes.NewReader(body)}
}

func textUpload(name, contentType, content string) *Upload {
	return &Upload{FileName: name, ContentType: contentType, Size: int64(len(content)), Body: bytes.NewReader([]byte(content))}
}

func johnDoe(i int) SubmitInput {
	return SubmitInput{
		Name:       "John Doe",
		Email:      "john@example.com",
		Message:    fmt.Sprintf("Hello there #%d", i),
		Attachment: pngUpload("photo.png"),
	}
}

package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLocalStorage_PutURLDelete(t *testing.T) {
	dir := t.TempDir()
	s := NewLocalStorage(dir, "http://localhost:8080/media/")
	ctx := context.Background()
	key := "contacts/1/attachment/abc.png"

	if err := s.Put(ctx, key, strings.NewReader("png-bytes"), "image/png", 9); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, key))
	if err != nil {
		t.Fatalf("reading stored file: %v", err)
	}
	if string(data) != "png-bytes" {
		t.Errorf("unexpected content %q", data)
	}

	url, err := s.URL(ctx, key)
	if err != nil {
		t.Fatalf("URL() error = %v", err)
	}
	if url != "http://localhost:8080/media/contacts/1/attachment/abc.png" {
		t.Errorf("unexpected url %q", url)
	}

	if err := s.Delete(ctx, key); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, key)); !os.IsNotExist(err) {
		t.Errorf("expected file to be gone, stat err = %v", err)
	}
	// Second delete is a no-op.
	if err := s.Delete(ctx, key); err != nil {
		t.Errorf("Delete() on missing key error = %v", err)
	}
}

func TestLocalStorage_KeyCannotEscapeBaseDir(t *testing.T) {
	dir := t.TempDir()
	s := NewLocalStorage(filepath.Join(dir, "media"), "/media")

	if err := s.Put(context.Background(), "../../escape.txt", strings.NewReader("x"), "text/plain", 1); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "media", "escape.txt")); err != nil {
		t.Errorf("expected file inside base dir: %v", err)
	}
}

func TestLocalStorage_EmptyKey(t *testing.T) {
	s := NewLocalStorage(t.TempDir(), "/media")
	if err := s.Put(context.Background(), "", strings.NewReader("x"), "", 1); err == nil {
		t.Error("expected error for empty key")
	}
	if _, err := s.URL(context.Background(), ""); err == nil {
		t.Error("expected error for empty key")
	}
}

package storage

import (
	"context"
	"strings"
	"testing"
)

func TestMemoryStoreSaveAndOpen(t *testing.T) {
	s := NewMemoryStore("http://localhost:4000")

	stored, err := s.Save(context.Background(), "resume.pdf", "application/pdf", []byte("%PDF"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if stored.Filename != "resume.pdf" || stored.ContentType != "application/pdf" {
		t.Fatalf("metadata not echoed: %+v", stored)
	}
	if !strings.HasPrefix(stored.URL, "http://localhost:4000/uploads/") {
		t.Fatalf("unexpected url: %s", stored.URL)
	}

	key := stored.URL[strings.LastIndex(stored.URL, "/")+1:]
	data, contentType, ok := s.Open(key)
	if !ok {
		t.Fatalf("expected stored object for key %s", key)
	}
	if string(data) != "%PDF" || contentType != "application/pdf" {
		t.Fatalf("unexpected object: %q %q", data, contentType)
	}
}

func TestMemoryStoreRejectsEmptyFile(t *testing.T) {
	s := NewMemoryStore("http://localhost:4000")
	if _, err := s.Save(context.Background(), "empty.txt", "text/plain", nil); err == nil {
		t.Fatal("expected error for empty file")
	}
}

func TestMemoryStoreUnknownKey(t *testing.T) {
	s := NewMemoryStore("http://localhost:4000")
	if _, _, ok := s.Open("missing"); ok {
		t.Fatal("expected miss for unknown key")
	}
}

func TestMemoryStoreCopiesData(t *testing.T) {
	s := NewMemoryStore("http://localhost:4000")
	buf := []byte("original")

	stored, err := s.Save(context.Background(), "f.txt", "text/plain", buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	buf[0] = 'X'

	key := stored.URL[strings.LastIndex(stored.URL, "/")+1:]
	data, _, _ := s.Open(key)
	if string(data) != "original" {
		t.Fatalf("stored data aliased caller buffer: %q", data)
	}
}

package service

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"smartexam_backend/internal/config"
)

func TestLocalStorageProviderUpload(t *testing.T) {
	dir := t.TempDir()
	p := &LocalStorageProvider{Config: &config.StorageConfig{LocalPath: dir}}

	content := "[HEADER]\n    SUBJECT: \"Maths\"\n[/HEADER]\n"
	url, err := p.Upload(context.Background(), "jobs/abc/input.qp",
		strings.NewReader(content), int64(len(content)), "text/plain")
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if url != "/artifacts/jobs/abc/input.qp" {
		t.Errorf("url = %q, want /artifacts/jobs/abc/input.qp", url)
	}

	got, err := os.ReadFile(filepath.Join(dir, "jobs", "abc", "input.qp"))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(got) != content {
		t.Errorf("stored content = %q, want %q", got, content)
	}
}

func TestLocalStorageProviderDelete(t *testing.T) {
	dir := t.TempDir()
	p := &LocalStorageProvider{Config: &config.StorageConfig{LocalPath: dir}}

	if _, err := p.Upload(context.Background(), "jobs/x/source.txt",
		strings.NewReader("text"), 4, "text/plain"); err != nil {
		t.Fatalf("Upload: %v", err)
	}

	if err := p.Delete(context.Background(), "jobs/x/source.txt"); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, "jobs", "x", "source.txt")); !os.IsNotExist(err) {
		t.Error("artifact still present after Delete")
	}
}

func TestNewStorageServiceFallsBackToLocal(t *testing.T) {
	cfg := &config.Config{}
	cfg.Storage.Type = "local"
	cfg.Storage.LocalPath = t.TempDir()

	s := NewStorageService(cfg)
	if _, ok := s.Provider.(*LocalStorageProvider); !ok {
		t.Errorf("provider = %T, want *LocalStorageProvider", s.Provider)
	}
}

package service

import (
	"context"
	"linguacert_backend/internal/config"
	"linguacert_backend/internal/model"
	"os"
	"path/filepath"
	"testing"
)

func localCertService(t *testing.T) (*CertificateService, string) {
	t.Helper()
	dir := t.TempDir()
	storage := &StorageService{Provider: &LocalStorageProvider{
		Config: &config.StorageConfig{Type: "local", LocalPath: dir},
	}}
	return NewCertificateService(storage), dir
}

func TestHasCertificate(t *testing.T) {
	cases := []struct {
		certification string
		want          bool
	}{
		{"Fail", false},
		{"No certification", false},
		{"Remain at A2", false},
		{"Remain at B2", false},
		{"A1 certified", true},
		{"A2 certified", true},
		{"B1 certified", true},
		{"B2 certified", true},
		{"C1 certified", true},
		{"C2 certified", true},
	}
	for _, tc := range cases {
		if got := HasCertificate(tc.certification); got != tc.want {
			t.Errorf("HasCertificate(%q) = %v, want %v", tc.certification, got, tc.want)
		}
	}
}

func TestCertificateFilename(t *testing.T) {
	if got := CertificateFilename("abc-123"); got != "certificate_abc-123.pdf" {
		t.Errorf("CertificateFilename = %q", got)
	}
}

func TestRenderWritesPDF(t *testing.T) {
	svc, dir := localCertService(t)

	result := &model.Result{
		UUIDBase:      model.UUIDBase{ID: "res-1"},
		Name:          "Ada Lovelace",
		Step:          1,
		Level:         "A2",
		Score:         40,
		Total:         44,
		Percentage:    90.9,
		Certification: "A2 certified",
	}

	url, err := svc.Render(context.Background(), result)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if url != "/certs/certificate_res-1.pdf" {
		t.Errorf("url = %q", url)
	}

	data, err := os.ReadFile(filepath.Join(dir, "certificate_res-1.pdf"))
	if err != nil {
		t.Fatalf("certificate file missing: %v", err)
	}
	if len(data) < 4 || string(data[:4]) != "%PDF" {
		t.Error("stored file is not a PDF")
	}
}

func TestRenderSkipsTerminalCertifications(t *testing.T) {
	svc, dir := localCertService(t)

	for _, certification := range []string{"Fail", "Remain at A2", "Remain at B2", "No certification"} {
		result := &model.Result{
			UUIDBase:      model.UUIDBase{ID: "res-skip"},
			Name:          "Ada",
			Certification: certification,
		}
		url, err := svc.Render(context.Background(), result)
		if err != nil {
			t.Fatalf("Render(%q): %v", certification, err)
		}
		if url != "" {
			t.Errorf("Render(%q) = %q, want no document", certification, url)
		}
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("%d files written for terminal certifications, want 0", len(entries))
	}
}

func TestURLIfExists(t *testing.T) {
	svc, _ := localCertService(t)

	if got := svc.URLIfExists(context.Background(), "missing"); got != "" {
		t.Errorf("URLIfExists for missing file = %q, want empty", got)
	}

	result := &model.Result{
		UUIDBase:      model.UUIDBase{ID: "res-2"},
		Name:          "Ada",
		Step:          2,
		Certification: "B2 certified",
	}
	if _, err := svc.Render(context.Background(), result); err != nil {
		t.Fatalf("Render: %v", err)
	}

	if got := svc.URLIfExists(context.Background(), "res-2"); got != "/certs/certificate_res-2.pdf" {
		t.Errorf("URLIfExists = %q", got)
	}
}

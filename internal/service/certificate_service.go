package service

import (
	"bytes"
	"context"
	"fmt"
	"linguacert_backend/internal/model"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// CertificateService renders PDF certificates for qualifying results and
// stores them under a name derived from the result id, so re-rendering the
// same result overwrites the same document.
type CertificateService struct {
	Storage *StorageService
}

func NewCertificateService(storage *StorageService) *CertificateService {
	return &CertificateService{Storage: storage}
}

// CertificateFilename is the deterministic storage key for a result's
// certificate.
func CertificateFilename(resultID string) string {
	return fmt.Sprintf("certificate_%s.pdf", resultID)
}

// HasCertificate reports whether a certification label earns a document.
// "Fail", every "Remain ..." label and "No certification" do not.
func HasCertificate(certification string) bool {
	if certification == CertFail || certification == CertNone {
		return false
	}
	return !strings.HasPrefix(certification, "Remain")
}

// Render produces the certificate for the given result and returns its
// retrieval URL. Results whose certification earns no document return ""
// with a nil error; storage failures are returned to the caller and fail
// the enclosing submission.
func (s *CertificateService) Render(ctx context.Context, result *model.Result) (string, error) {
	if !HasCertificate(result.Certification) {
		return "", nil
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 25, 20)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 22)
	pdf.CellFormat(0, 12, "Certificate of Achievement", "", 1, "C", false, 0, "")
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "", 16)
	pdf.CellFormat(0, 8, "This certifies that", "", 1, "C", false, 0, "")
	pdf.Ln(3)

	pdf.SetFont("Helvetica", "BU", 20)
	pdf.CellFormat(0, 10, result.Name, "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 14)
	pdf.CellFormat(0, 8, fmt.Sprintf("has achieved: %s", result.Certification), "", 1, "C", false, 0, "")
	pdf.Ln(3)

	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(0, 7, fmt.Sprintf("Step: %d | Level recorded: %s", result.Step, result.Level), "", 1, "C", false, 0, "")
	pdf.Ln(2)
	pdf.CellFormat(0, 7, fmt.Sprintf("Score: %d / %d (%.2f%%)", result.Score, result.Total, result.Percentage), "", 1, "C", false, 0, "")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, fmt.Sprintf("Issued: %s", time.Now().Format("2006-01-02 15:04:05")), "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return "", fmt.Errorf("render certificate: %w", err)
	}

	url, err := s.Storage.Save(ctx, CertificateFilename(result.ID), buf.Bytes(), "application/pdf")
	if err != nil {
		return "", fmt.Errorf("store certificate: %w", err)
	}
	return url, nil
}

// URLIfExists returns the certificate URL when the document is already in
// storage, "" otherwise. Listing paths use this instead of re-rendering.
func (s *CertificateService) URLIfExists(ctx context.Context, resultID string) string {
	filename := CertificateFilename(resultID)
	ok, err := s.Storage.Exists(ctx, filename)
	if err != nil || !ok {
		return ""
	}
	return s.Storage.URL(filename)
}

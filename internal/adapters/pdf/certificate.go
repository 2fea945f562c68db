package pdf

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"

	"aidconnect/internal/core/domain"
	"aidconnect/internal/core/ports"
)

// certificateRenderer produces the fixed-layout approval certificate.
// Render is pure: snapshots in, byte buffer out.
type certificateRenderer struct{}

var _ ports.CertificateRenderer = (*certificateRenderer)(nil)

// NewCertificateRenderer creates the approval-certificate renderer.
func NewCertificateRenderer() ports.CertificateRenderer {
	return &certificateRenderer{}
}

// Render lays out the certificate on one A4 page: header, application
// details, the applicant's personal information, and the scheme block.
func (c *certificateRenderer) Render(app *domain.Application, user *domain.User, scheme domain.SchemeDisplay) ([]byte, error) {
	doc := fpdf.New("P", "mm", "A4", "")
	doc.AddPage()

	doc.SetFont("Arial", "B", 20)
	doc.CellFormat(0, 30, "APPLICATION APPROVAL CERTIFICATE", "", 1, "C", false, 0, "")

	doc.SetFont("Arial", "", 12)
	doc.Text(20, 60, fmt.Sprintf("Applicant: %s", user.Name))
	doc.Text(20, 70, fmt.Sprintf("Email: %s", user.Email))
	doc.Text(20, 80, fmt.Sprintf("Application ID: %s", app.ID))
	doc.Text(20, 90, fmt.Sprintf("Applied Date: %s", app.ApplicationDate.Format("02/01/2006")))
	doc.Text(20, 100, fmt.Sprintf("Status: %s", strings.ToUpper(string(app.Status))))

	doc.SetFont("Arial", "B", 12)
	doc.Text(20, 120, "Personal Information")
	doc.SetFont("Arial", "", 12)
	doc.Text(20, 135, fmt.Sprintf("Father's Name: %s", orNA(user.FatherName)))
	doc.Text(20, 145, fmt.Sprintf("Mother's Name: %s", orNA(user.MotherName)))
	doc.Text(20, 155, fmt.Sprintf("Mobile: %s", orNA(user.Mobile)))
	doc.Text(20, 165, fmt.Sprintf("National ID: %s", orNA(user.NationalID)))
	doc.Text(20, 175, fmt.Sprintf("Tax ID: %s", orNA(user.TaxID)))
	doc.Text(20, 185, fmt.Sprintf("Annual Income: %s", incomeOrNA(user.Income)))
	doc.Text(20, 195, fmt.Sprintf("Routing Code: %s", orNA(user.RoutingCode)))
	doc.Text(20, 205, fmt.Sprintf("Bank: %s", orNA(user.BankName)))

	doc.SetFont("Arial", "B", 12)
	doc.Text(20, 225, "Scheme Details")
	doc.SetFont("Arial", "", 12)
	doc.Text(20, 240, fmt.Sprintf("Scheme: %s", scheme.Title))
	doc.Text(20, 250, fmt.Sprintf("Description: %s", scheme.Description))

	doc.SetFont("Arial", "", 10)
	doc.Text(62, 280, "This is a system generated document.")

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("could not render certificate: %w", err)
	}
	return buf.Bytes(), nil
}

func orNA(s *string) string {
	if s == nil || *s == "" {
		return "N/A"
	}
	return *s
}

func incomeOrNA(income *int64) string {
	if income == nil {
		return "N/A"
	}
	return fmt.Sprintf("Rs. %d", *income)
}

package pdf

import (
	"bytes"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/advisio/crm-console/internal/listing"
)

type Generator struct {
	fontName string
}

func NewGenerator() (*Generator, error) {
	return &Generator{fontName: "Helvetica"}, nil
}

// Generate renders a one-page contract sheet.
func (g *Generator) Generate(row listing.ContractRow) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont(g.fontName, "B", 16)
	pdf.CellFormat(0, 10, tr("Contract "+row.RegistrationNumber), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont(g.fontName, "B", 12)
	pdf.CellFormat(0, 8, "Parties", "", 1, "L", false, 0, "")
	pdf.SetFont(g.fontName, "", 11)
	addLabelRow(pdf, tr, "Institution", string(row.Institution))
	addLabelRow(pdf, tr, "Client", row.ClientName)
	addLabelRow(pdf, tr, "Administrator", row.AdministratorName)
	pdf.Ln(4)

	pdf.SetFont(g.fontName, "B", 12)
	pdf.CellFormat(0, 8, "Term", "", 1, "L", false, 0, "")
	pdf.SetFont(g.fontName, "", 11)
	addLabelRow(pdf, tr, "Concluded", formatDate(row.ConclusionDate))
	addLabelRow(pdf, tr, "Valid from", formatDate(row.ValidityDate))
	addLabelRow(pdf, tr, "Ends", formatDate(row.EndingDate))
	pdf.Ln(4)

	pdf.SetFont(g.fontName, "B", 12)
	pdf.CellFormat(0, 8, "Assigned advisors", "", 1, "L", false, 0, "")
	pdf.SetFont(g.fontName, "", 11)
	if len(row.AssignedAdvisors) == 0 {
		pdf.CellFormat(0, 6, "None", "", 1, "L", false, 0, "")
	}
	for _, ref := range row.AssignedAdvisors {
		pdf.CellFormat(0, 6, tr("- "+ref.Name), "", 1, "L", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func addLabelRow(pdf *gofpdf.Fpdf, tr func(string) string, label, value string) {
	pdf.CellFormat(45, 6, tr(label), "", 0, "L", false, 0, "")
	pdf.CellFormat(0, 6, tr(strings.TrimSpace(value)), "", 1, "L", false, 0, "")
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}

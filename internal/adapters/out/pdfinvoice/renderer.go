// Package pdfinvoice renders billing-period invoices as PDF documents.
package pdfinvoice

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/ledger"

	"github.com/phpdave11/gofpdf"
)

// PDFRenderer implements the InvoiceRenderer port with gofpdf. The document
// lists each ledger entry of the period and the resulting total.
type PDFRenderer struct {
	platformName string
}

// NewPDFRenderer creates a renderer stamping documents with the given
// platform name.
func NewPDFRenderer(platformName string) *PDFRenderer {
	if platformName == "" {
		platformName = "Dispatch"
	}
	return &PDFRenderer{platformName: platformName}
}

// Render builds the invoice PDF for a closed billing period.
func (r *PDFRenderer) Render(
	_ context.Context,
	period *ledger.BillingPeriod,
	entries []*ledger.Entry,
	invoiceRef string,
) ([]byte, error) {
	if err := period.Validate(); err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Invoice "+invoiceRef, false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, r.platformName+" Invoice")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, "Invoice ref : "+invoiceRef)
	pdf.Ln(6)
	pdf.Cell(0, 6, "Party       : "+period.PartyID().String())
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Period      : %s to %s",
		period.Start().Format("2006-01-02"),
		period.End().Format("2006-01-02")))
	pdf.Ln(6)
	pdf.Cell(0, 6, "Issued      : "+time.Now().UTC().Format("2006-01-02 15:04"))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(35, 7, "Date", "1", 0, "", false, 0, "")
	pdf.CellFormat(35, 7, "Kind", "1", 0, "", false, 0, "")
	pdf.CellFormat(80, 7, "Delivery", "1", 0, "", false, 0, "")
	pdf.CellFormat(40, 7, "Amount", "1", 0, "R", false, 0, "")
	pdf.Ln(7)

	pdf.SetFont("Helvetica", "", 10)
	var totalCents int64
	currency := ""
	for _, entry := range entries {
		totalCents += entry.Amount().Cents()
		currency = entry.Amount().Currency()

		pdf.CellFormat(35, 6, entry.CreatedAt().Format("2006-01-02"), "1", 0, "", false, 0, "")
		pdf.CellFormat(35, 6, entry.Kind().String(), "1", 0, "", false, 0, "")
		pdf.CellFormat(80, 6, entry.DeliveryID().String(), "1", 0, "", false, 0, "")
		pdf.CellFormat(40, 6, formatAmount(entry.Amount().Cents(), currency), "1", 0, "R", false, 0, "")
		pdf.Ln(6)
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(150, 8, "Total", "", 0, "R", false, 0, "")
	pdf.CellFormat(40, 8, formatAmount(totalCents, currency), "", 0, "R", false, 0, "")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "I", 9)
	pdf.MultiCell(0, 5,
		"Amounts are net of platform commission. Adjustments recorded during "+
			"the period are included at their booked value.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func formatAmount(cents int64, currency string) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d %s", sign, cents/100, cents%100, currency)
}

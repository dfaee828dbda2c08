package invoice

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"munchmate/cart"
	"munchmate/db"
	"munchmate/models"
	"munchmate/utils"

	"github.com/julienschmidt/httprouter"
	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"
	"go.mongodb.org/mongo-driver/bson"
)

// QRPayload is the scannable verification payload printed on receipts.
// Plain text, round-trips through the QR unchanged.
func QRPayload(invoiceNumber, formattedDate string) string {
	return fmt.Sprintf("%s|%s", invoiceNumber, formattedDate)
}

// PrintInvoice renders a stored invoice as a PDF receipt with an embedded
// verification QR code.
// GET /api/orders/:invoicenr/print
func PrintInvoice(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	invoiceNr := ps.ByName("invoicenr")

	var inv models.Invoice
	err := db.InvoicesCollection.FindOne(ctx, bson.M{
		"invoiceNumber": invoiceNr,
		"customer.uid":  userID,
	}).Decode(&inv)
	if err != nil {
		http.Error(w, "Invoice not found", http.StatusNotFound)
		return
	}

	qrPNG, err := qrcode.Encode(QRPayload(inv.InvoiceNumber, inv.FormattedDate), qrcode.Medium, 256)
	if err != nil {
		http.Error(w, "Failed to generate QR code", http.StatusInternalServerError)
		return
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, "TAKEAWAY ORDER")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Invoice #: %s", inv.InvoiceNumber))
	pdf.Ln(6)
	pdf.Cell(0, 8, fmt.Sprintf("Date: %s", inv.FormattedDate))
	pdf.Ln(6)
	pdf.Cell(0, 8, fmt.Sprintf("Customer: %s", inv.Customer.Name))
	pdf.Ln(6)
	if inv.Customer.RollNumber != "Unknown" {
		pdf.Cell(0, 8, fmt.Sprintf("Roll No: %s", inv.Customer.RollNumber))
		pdf.Ln(6)
	}
	pdf.Ln(4)

	// Items table
	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(80, 8, "Item", "B", 0, "L", false, 0, "")
	pdf.CellFormat(25, 8, "Qty", "B", 0, "C", false, 0, "")
	pdf.CellFormat(30, 8, "Price", "B", 0, "R", false, 0, "")
	pdf.CellFormat(35, 8, "Amount", "B", 1, "R", false, 0, "")

	pdf.SetFont("Arial", "", 11)
	for _, item := range inv.Items {
		amount := "N/A"
		if item.Subtotal != nil {
			amount = cart.FormatAmount(*item.Subtotal)
		}
		pdf.CellFormat(80, 8, item.Name, "", 0, "L", false, 0, "")
		pdf.CellFormat(25, 8, fmt.Sprintf("%d", item.Quantity), "", 0, "C", false, 0, "")
		pdf.CellFormat(30, 8, cart.FormatAmount(item.Price), "", 0, "R", false, 0, "")
		pdf.CellFormat(35, 8, amount, "", 1, "R", false, 0, "")
	}

	pdf.Ln(4)
	pdf.SetFont("Arial", "B", 12)
	total := "N/A"
	if inv.TotalAmount != nil {
		total = cart.FormatAmount(*inv.TotalAmount)
	}
	pdf.CellFormat(135, 8, "Total:", "T", 0, "R", false, 0, "")
	pdf.CellFormat(35, 8, total, "T", 1, "R", false, 0, "")

	// Verification QR
	imageOpts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("qr", imageOpts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("qr", 150, 220, 40, 40, false, imageOpts, 0, "")
	pdf.SetY(262)
	pdf.SetFont("Arial", "I", 9)
	pdf.CellFormat(0, 8, "Scan to verify order", "", 0, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		http.Error(w, "Failed to generate PDF", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=invoice-"+inv.InvoiceNumber+".pdf")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

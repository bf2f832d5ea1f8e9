package service

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"
)

// ReceiptData is everything printed on the confirmation artifact.
type ReceiptData struct {
	PatientName   string
	PatientID     string
	DoctorName    string
	Specialty     string
	SlotDate      string // Format: YYYY-MM-DD
	SlotTime      string // Format: HH:MM
	PaymentMode   string
	TokenFee      decimal.Decimal
	IssuedAt      time.Time
	TravelVoucher bool
}

// ReceiptService renders the booking confirmation as a PDF.
type ReceiptService struct{}

func NewReceiptService() *ReceiptService {
	return &ReceiptService{}
}

func (s *ReceiptService) Generate(data ReceiptData) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 14)
	pdf.SetTextColor(0, 90, 140)
	pdf.CellFormat(0, 10, "AVACARE - Appointment Confirmation", "", 1, "C", false, 0, "")

	pdf.SetFont("Arial", "", 10)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(0, 7, "Your token payment confirms your intent to attend.", "", 1, "C", false, 0, "")

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 10, "Booking Details", "1", 1, "C", false, 0, "")

	addReceiptRow(pdf, "Patient", data.PatientName)
	addReceiptRow(pdf, "Patient ID", data.PatientID)
	addReceiptRow(pdf, "Doctor", data.DoctorName)
	addReceiptRow(pdf, "Specialty", data.Specialty)
	addReceiptRow(pdf, "Date", data.SlotDate)
	addReceiptRow(pdf, "Time", data.SlotTime)
	addReceiptRow(pdf, "Payment Mode", data.PaymentMode)
	addReceiptRow(pdf, "Token Fee", data.TokenFee.StringFixed(2))
	addReceiptRow(pdf, "Issued At", data.IssuedAt.Format(time.RFC1123))

	if data.TravelVoucher {
		pdf.SetY(pdf.GetY() + 5)
		pdf.SetFont("Arial", "B", 12)
		pdf.SetTextColor(0, 110, 50)
		pdf.CellFormat(0, 10, "Travel Voucher", "1", 1, "C", false, 0, "")
		pdf.SetFont("Arial", "", 10)
		pdf.SetTextColor(0, 0, 0)
		pdf.MultiCell(0, 6, fmt.Sprintf(
			"Because your last appointment was missed due to a transportation issue, "+
				"this voucher covers a ride to your appointment on %s at %s. "+
				"Show this receipt at the clinic front desk.",
			data.SlotDate, data.SlotTime), "1", "L", false)
	}

	pdf.SetY(pdf.GetY() + 10)
	pdf.SetFont("Arial", "", 9)
	pdf.CellFormat(0, 8, "This is a computer generated receipt", "", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render receipt pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func addReceiptRow(pdf *gofpdf.Fpdf, label, value string) {
	pdf.SetFont("Arial", "", 10)
	pdf.SetFillColor(240, 240, 240)
	pdf.CellFormat(45, 8, label, "1", 0, "", true, 0, "")
	pdf.CellFormat(0, 8, value, "1", 1, "", false, 0, "")
}

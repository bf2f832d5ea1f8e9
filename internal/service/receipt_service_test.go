package service

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateReceipt(t *testing.T) {
	svc := NewReceiptService()

	pdf, err := svc.Generate(ReceiptData{
		PatientName: "Jane Doe",
		PatientID:   "AVP-4008",
		DoctorName:  "Dr. Lee",
		Specialty:   "Dentist",
		SlotDate:    "2026-09-01",
		SlotTime:    "11:00",
		PaymentMode: "UPI",
		TokenFee:    decimal.NewFromInt(20),
		IssuedAt:    time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.NotEmpty(t, pdf)
	assert.Equal(t, "%PDF", string(pdf[:4]))
}

func TestGenerateReceiptWithTravelVoucher(t *testing.T) {
	svc := NewReceiptService()

	plain, err := svc.Generate(ReceiptData{
		PatientName: "Jane Doe",
		PatientID:   "AVP-4008",
		TokenFee:    decimal.NewFromInt(20),
		IssuedAt:    time.Now().UTC(),
	})
	require.NoError(t, err)

	withVoucher, err := svc.Generate(ReceiptData{
		PatientName:   "Jane Doe",
		PatientID:     "AVP-4008",
		TokenFee:      decimal.NewFromInt(20),
		IssuedAt:      time.Now().UTC(),
		TravelVoucher: true,
	})
	require.NoError(t, err)

	assert.Equal(t, "%PDF", string(withVoucher[:4]))
	assert.Greater(t, len(withVoucher), len(plain))
}

package model_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/dstanchev/invoicepanel/internal/domain/model"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestInvoiceVATAmount(t *testing.T) {
	t.Run("disabled VAT is always zero", func(t *testing.T) {
		inv := model.Invoice{
			Subtotal:   dec("1000"),
			VATRate:    dec("21"),
			VATEnabled: false,
		}
		assert.True(t, inv.VATAmount().IsZero())
	})

	t.Run("enabled VAT is subtotal times rate over 100", func(t *testing.T) {
		inv := model.Invoice{
			Subtotal:   dec("1000"),
			VATRate:    dec("21"),
			VATEnabled: true,
		}
		assert.True(t, dec("210").Equal(inv.VATAmount()))
		assert.True(t, dec("1210").Equal(inv.Total()))
	})

	t.Run("two-decimal display rounding", func(t *testing.T) {
		inv := model.Invoice{
			Subtotal:   dec("333.33"),
			VATRate:    dec("20"),
			VATEnabled: true,
		}
		assert.Equal(t, "66.67", inv.VATAmount().StringFixed(2))
	})
}

func TestRevenueForMonth(t *testing.T) {
	now := time.Date(2024, time.June, 14, 12, 0, 0, 0, time.UTC)

	invoices := []model.Invoice{
		{
			InvoiceType: model.InvoiceTypeClient,
			InvoiceDate: model.NewDate(2024, time.June, 3),
			TotalAmount: dec("5000"),
		},
		{
			InvoiceType: model.InvoiceTypeClient,
			InvoiceDate: model.NewDate(2024, time.June, 28),
			TotalAmount: dec("2500"),
		},
		{
			InvoiceType: model.InvoiceTypeConsultant,
			InvoiceDate: model.NewDate(2024, time.June, 3),
			TotalAmount: dec("4200"),
		},
		// Previous month: excluded.
		{
			InvoiceType: model.InvoiceTypeClient,
			InvoiceDate: model.NewDate(2024, time.May, 31),
			TotalAmount: dec("9999"),
		},
		// Same month last year: excluded.
		{
			InvoiceType: model.InvoiceTypeConsultant,
			InvoiceDate: model.NewDate(2023, time.June, 3),
			TotalAmount: dec("9999"),
		},
	}

	rev := model.RevenueForMonth(invoices, now)

	assert.True(t, dec("7500").Equal(rev.ClientTotal), "client total: %s", rev.ClientTotal)
	assert.True(t, dec("4200").Equal(rev.ConsultantTotal), "consultant total: %s", rev.ConsultantTotal)
	assert.True(t, dec("3300").Equal(rev.Profit), "profit: %s", rev.Profit)
	assert.Equal(t, 2, rev.ClientCount)
	assert.Equal(t, 1, rev.ConsultantCount)
}

func TestRevenueForMonthNegativeProfit(t *testing.T) {
	now := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)

	invoices := []model.Invoice{
		{InvoiceType: model.InvoiceTypeClient, InvoiceDate: model.NewDate(2024, time.June, 1), TotalAmount: dec("100")},
		{InvoiceType: model.InvoiceTypeConsultant, InvoiceDate: model.NewDate(2024, time.June, 1), TotalAmount: dec("250")},
	}

	rev := model.RevenueForMonth(invoices, now)
	assert.True(t, dec("-150").Equal(rev.Profit))
}

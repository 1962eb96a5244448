package tax

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/control-financiero/internal/models"
)

func TestFromTotal_TableTests(t *testing.T) {
	tests := []struct {
		name         string
		total        string
		rate         string
		wantSubtotal string
		wantVAT      string
	}{
		{
			name:         "standard rate",
			total:        "1160.00",
			rate:         "0.16",
			wantSubtotal: "1000",
			wantVAT:      "160",
		},
		{
			name:         "zero rate",
			total:        "500.00",
			rate:         "0",
			wantSubtotal: "500",
			wantVAT:      "0",
		},
		{
			name:         "rounding keeps total intact",
			total:        "99.99",
			rate:         "0.16",
			wantSubtotal: "86.2",
			wantVAT:      "13.79",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			total := decimal.RequireFromString(tt.total)
			b, err := FromTotal(total, decimal.RequireFromString(tt.rate))
			require.NoError(t, err)

			assert.True(t, b.Subtotal.Equal(decimal.RequireFromString(tt.wantSubtotal)),
				"subtotal = %s, want %s", b.Subtotal, tt.wantSubtotal)
			assert.True(t, b.VAT.Equal(decimal.RequireFromString(tt.wantVAT)),
				"vat = %s, want %s", b.VAT, tt.wantVAT)
			assert.True(t, b.Subtotal.Add(b.VAT).Equal(total),
				"subtotal + vat must equal total")
		})
	}
}

func TestFromTotal_NegativeRate(t *testing.T) {
	_, err := FromTotal(decimal.NewFromInt(100), decimal.RequireFromString("-0.1"))
	assert.Error(t, err)
}

func TestWithholdingFor(t *testing.T) {
	b, err := FromTotal(decimal.RequireFromString("1160.00"), DefaultVATRate)
	require.NoError(t, err)
	rates := DefaultWithholdingRates()

	t.Run("persona fisica", func(t *testing.T) {
		w, err := WithholdingFor(models.PersonFisica, b, rates)
		require.NoError(t, err)
		assert.True(t, w.ISR.Equal(decimal.RequireFromString("100")), "isr = %s", w.ISR)
		assert.True(t, w.VAT.Equal(decimal.RequireFromString("106.67")), "iva = %s", w.VAT)
	})

	t.Run("persona moral", func(t *testing.T) {
		w, err := WithholdingFor(models.PersonMoral, b, rates)
		require.NoError(t, err)
		assert.True(t, w.ISR.IsZero())
		assert.True(t, w.VAT.IsZero())
	})

	t.Run("unknown person type", func(t *testing.T) {
		_, err := WithholdingFor("otro", b, rates)
		assert.Error(t, err)
	})
}

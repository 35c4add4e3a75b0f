package entity_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/notas-pagar/internal/domain"
	"github.com/jhoicas/notas-pagar/internal/domain/entity"
)

// ── Date ──

func TestParseDate(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2024-02-01", "2024-02-01"},
		{"2024-02-01T10:00:00-03:00", "2024-02-01"},
		{" 2024-12-31 ", "2024-12-31"},
		{"", ""},
	}
	for _, tt := range tests {
		d, err := entity.ParseDate(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, d.String(), tt.in)
	}

	_, err := entity.ParseDate("01/02/2024")
	assert.Error(t, err)
}

func TestDate_JSON(t *testing.T) {
	type doc struct {
		Due entity.Date `json:"due"`
	}
	b, err := json.Marshal(doc{Due: entity.NewDate(2024, 3, 5)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"due":"2024-03-05"}`, string(b))

	b, err = json.Marshal(doc{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"due":""}`, string(b))

	var got doc
	require.NoError(t, json.Unmarshal([]byte(`{"due":"2024-03-05T23:59:00Z"}`), &got))
	assert.True(t, got.Due.Equal(entity.NewDate(2024, 3, 5)))
}

func TestDate_AddDaysYMes(t *testing.T) {
	d := entity.MustParseDate("2024-02-28")
	assert.Equal(t, "2024-03-01", d.AddDays(2).String())
	assert.Equal(t, "2024-02", d.Month())
	assert.True(t, d.Before(d.AddDays(1)))
}

// ── Catálogos ──

func TestEnums_AceptanAlias(t *testing.T) {
	s, err := entity.ParsePaymentStatus("EM ABERTO")
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentStatusOpen, s)

	m, err := entity.ParsePaymentMethod("cartao")
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentMethodCard, m)

	c, err := entity.ParsePaymentCondition("a vista")
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentConditionCash, c)
}

func TestEnums_DesconocidoEsEntradaInvalida(t *testing.T) {
	_, err := entity.ParseFinancialStatus("pendiente")
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestEnums_JSONNormalizaYVacioEsCero(t *testing.T) {
	var p entity.PaymentRecord
	require.NoError(t, json.Unmarshal([]byte(`{"method":"pix"}`), &p))
	assert.Equal(t, entity.PaymentMethodPix, p.Method)

	var a entity.Attachment
	require.NoError(t, json.Unmarshal([]byte(`{"type":""}`), &a))
	assert.Equal(t, entity.AttachmentType(""), a.Type)

	assert.Error(t, json.Unmarshal([]byte(`{"method":"cheque"}`), &p))
}

// ── Clone ──

func TestCollection_CloneEsIndependiente(t *testing.T) {
	c := &entity.Collection{
		Suppliers: []entity.Supplier{{ID: "s1"}},
		Invoices:  []entity.Invoice{{ID: "i1", Payments: []entity.PaymentRecord{{ID: "p1"}}, Items: []entity.LineItem{}}},
	}
	cp := c.Clone()
	cp.Invoices[0].Payments[0].ID = "cambiado"
	cp.Suppliers[0].ID = "otro"

	assert.Equal(t, "p1", c.Invoices[0].Payments[0].ID)
	assert.Equal(t, "s1", c.Suppliers[0].ID)
	assert.NotNil(t, cp.Invoices[0].Items)
	assert.Nil(t, cp.Invoices[0].Attachments)
}

func TestSupplier_DisplayName(t *testing.T) {
	assert.Equal(t, "ACME", (&entity.Supplier{LegalName: "ACME", TradeName: "Acme"}).DisplayName())
	assert.Equal(t, "Acme", (&entity.Supplier{TradeName: "Acme"}).DisplayName())
	var nilSupplier *entity.Supplier
	assert.Equal(t, "", nilSupplier.DisplayName())
}

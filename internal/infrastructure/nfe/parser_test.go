package nfe_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/jhoicas/notas-pagar/internal/domain"
	"github.com/jhoicas/notas-pagar/internal/domain/entity"
	"github.com/jhoicas/notas-pagar/internal/infrastructure/nfe"
)

// ──────────────────────────────────────────────────────────────────────────────
// Documentos de prueba
// ──────────────────────────────────────────────────────────────────────────────

const nfeDosParcelas = `<?xml version="1.0" encoding="UTF-8"?>
<nfeProc xmlns="http://www.portalfiscal.inf.br/nfe" versao="4.00">
  <NFe>
    <infNFe Id="NFe35240111222333000181550010000012341000000014" versao="4.00">
      <ide>
        <serie>1</serie>
        <nNF>1234</nNF>
        <dhEmi>2024-01-15T10:30:00-03:00</dhEmi>
      </ide>
      <emit>
        <CNPJ>11222333000181</CNPJ>
        <xNome>Distribuidora Paulista Ltda</xNome>
        <xFant>Dist Paulista</xFant>
      </emit>
      <dest>
        <CNPJ>12345678000195</CNPJ>
        <xNome>Elite Trade Comércio</xNome>
      </dest>
      <det nItem="1">
        <prod>
          <xProd>Parafuso sextavado</xProd>
          <NCM>73181500</NCM>
          <CFOP>5102</CFOP>
          <qCom>100.0000</qCom>
          <vUnCom>3.0000000000</vUnCom>
          <vProd>300.00</vProd>
        </prod>
      </det>
      <det nItem="2">
        <prod>
          <xProd>Arruela lisa</xProd>
          <NCM>73182200</NCM>
          <CFOP>5102</CFOP>
          <qCom>abc</qCom>
          <vProd>200.00</vProd>
        </prod>
      </det>
      <total>
        <ICMSTot>
          <vProd>500.00</vProd>
          <vNF>500.00</vNF>
          <vTotTrib>45.30</vTotTrib>
        </ICMSTot>
      </total>
      <cobr>
        <fat><nFat>1234</nFat><vOrig>500.00</vOrig><vLiq>500.00</vLiq></fat>
        <dup><nDup>001</nDup><dVenc>2024-03-01</dVenc><vDup>200.00</vDup></dup>
        <dup><nDup>002</nDup><dVenc>2024-02-01</dVenc><vDup>300.00</vDup></dup>
      </cobr>
      <pag><detPag><tPag>15</tPag><vPag>500.00</vPag></detPag></pag>
    </infNFe>
  </NFe>
  <protNFe versao="4.00">
    <infProt><chNFe>35240111222333000181550010000012341000000014</chNFe></infProt>
  </protNFe>
</nfeProc>`

const nfeSinParcelas = `<NFe xmlns="http://www.portalfiscal.inf.br/nfe">
  <infNFe Id="NFe35240111222333000181550010000012341000000014">
    <ide><serie>2</serie><nNF>77</nNF><dhEmi>2024-04-10T08:00:00-03:00</dhEmi></ide>
    <emit><CPF>52998224725</CPF><xNome>João da Silva</xNome></emit>
    <total><ICMSTot><vNF>1000.00</vNF></ICMSTot></total>
    <pag><detPag><tPag>17</tPag></detPag></pag>
  </infNFe>
</NFe>`

const nfeVencimientoUnico = `<NFe>
  <infNFe>
    <ide><nNF>78</nNF><dEmi>2024-04-10</dEmi></ide>
    <emit><CNPJ>11222333000181</CNPJ><xNome>Distribuidora</xNome></emit>
    <total><ICMSTot><vNF>250.50</vNF></ICMSTot></total>
    <cobr><dVenc>2024-05-10</dVenc></cobr>
  </infNFe>
</NFe>`

const nfseABRASF = `<CompNfse>
  <Nfse>
    <InfNfse>
      <Numero>202400000000015</Numero>
      <DataEmissao>2024-03-05T14:22:10</DataEmissao>
      <Servico>
        <Valores>
          <ValorServicos>1500.00</ValorServicos>
        </Valores>
      </Servico>
      <PrestadorServico>
        <IdentificacaoPrestador><Cnpj>12345678000195</Cnpj></IdentificacaoPrestador>
        <RazaoSocial>Consultoria Contábil ME</RazaoSocial>
        <NomeFantasia>Contábil</NomeFantasia>
      </PrestadorServico>
    </InfNfse>
  </Nfse>
</CompNfse>`

func parse(t *testing.T, raw string) *entity.DraftInvoice {
	t.Helper()
	draft, err := nfe.NewParser().Parse([]byte(raw))
	require.NoError(t, err)
	require.NotNil(t, draft)
	return draft
}

func assertMoney(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, decimal.RequireFromString(want).Equal(got), "esperado %s, obtenido %s", want, got)
}

// ──────────────────────────────────────────────────────────────────────────────
// NF-e
// ──────────────────────────────────────────────────────────────────────────────

func TestParse_NFeDosParcelas(t *testing.T) {
	draft := parse(t, nfeDosParcelas)
	inv := draft.Invoice

	assert.Equal(t, entity.DocumentTypeNFe, inv.Type)
	assert.Equal(t, "1234", inv.Number)
	assert.Equal(t, "1", inv.Series)
	assert.Equal(t, "35240111222333000181550010000012341000000014", inv.AccessKey)
	assert.Equal(t, "2024-01-15", inv.IssueDate.String(), "solo la parte de fecha de dhEmi")
	assertMoney(t, "500", inv.TotalAmount)
	assertMoney(t, "45.30", inv.Taxes)

	require.Len(t, inv.Payments, 2)
	sum := decimal.Zero
	for _, p := range inv.Payments {
		assert.True(t, p.IsScheduled)
		assert.Equal(t, entity.PaymentMethodBoleto, p.Method)
		sum = sum.Add(p.Amount)
	}
	assertMoney(t, "500", sum)
	assert.Equal(t, "Parcela 001", inv.Payments[0].Notes)
	assert.Equal(t, "2024-03-01", inv.Payments[0].Date.String(), "las parcelas conservan el orden del documento")

	assert.Equal(t, "2024-02-01", inv.DueDate.String(), "vencimiento = parcela más temprana")
	assert.Equal(t, entity.PaymentConditionInstallments, inv.PaymentCondition)
	assert.Equal(t, 2, inv.Installments)

	assert.Equal(t, entity.FinancialStatusWaiting, inv.FinancialStatus)
	assert.Equal(t, entity.PaymentStatusOpen, inv.Status)
	assert.Equal(t, nfe.NoteImported, inv.Notes)
	assert.Empty(t, inv.Attachments)
}

func TestParse_NFeProveedorEmitente(t *testing.T) {
	draft := parse(t, nfeDosParcelas)

	assert.Equal(t, "Distribuidora Paulista Ltda", draft.Supplier.LegalName)
	assert.Equal(t, "Dist Paulista", draft.Supplier.TradeName)
	assert.Equal(t, "11222333000181", draft.Supplier.TaxID, "CNPJ del emitente, no del destinatario")
	assert.Equal(t, entity.SupplierStatusActive, draft.Supplier.Status)
}

func TestParse_NFeItems(t *testing.T) {
	items := parse(t, nfeDosParcelas).Invoice.Items

	require.Len(t, items, 2)
	assert.Equal(t, "Parafuso sextavado", items[0].Description)
	assertMoney(t, "100", items[0].Quantity)
	assertMoney(t, "3", items[0].UnitValue)
	assertMoney(t, "300", items[0].TotalValue)
	assert.Equal(t, "5102", items[0].CFOP)
	assert.Equal(t, "73181500", items[0].NCM)

	// Cantidad ilegible y valor unitario ausente degradan a 0 sin fallar el documento.
	assertMoney(t, "0", items[1].Quantity)
	assertMoney(t, "0", items[1].UnitValue)
	assertMoney(t, "200", items[1].TotalValue)
}

func TestParse_SinParcelasUsaEmision(t *testing.T) {
	inv := parse(t, nfeSinParcelas).Invoice

	require.Len(t, inv.Payments, 1)
	p := inv.Payments[0]
	assert.True(t, p.IsScheduled)
	assertMoney(t, "1000", p.Amount)
	assert.Equal(t, "2024-04-10", p.Date.String())
	assert.Equal(t, nfe.NoteSingleDue, p.Notes)
	assert.Equal(t, entity.PaymentMethodPix, p.Method, "tPag 17 = PIX")

	assert.Equal(t, "2024-04-10", inv.DueDate.String())
	assert.Equal(t, entity.PaymentConditionCash, inv.PaymentCondition)
	assert.Equal(t, 1, inv.Installments)
	assert.Equal(t, "35240111222333000181550010000012341000000014", inv.AccessKey,
		"sin protocolo la chave sale del Id de infNFe")
}

func TestParse_SinParcelasUsaVencimientoDelDocumento(t *testing.T) {
	inv := parse(t, nfeVencimientoUnico).Invoice

	require.Len(t, inv.Payments, 1)
	assert.Equal(t, "2024-05-10", inv.Payments[0].Date.String())
	assertMoney(t, "250.50", inv.Payments[0].Amount)
	assert.Equal(t, "2024-05-10", inv.DueDate.String())
	assert.Equal(t, "2024-04-10", inv.IssueDate.String())
	assert.Empty(t, inv.AccessKey)
	assert.Equal(t, entity.PaymentMethodBoleto, inv.PaymentMethod, "sin tPag queda Boleto")
}

func TestParse_CPFComoRespaldo(t *testing.T) {
	draft := parse(t, nfeSinParcelas)

	assert.Equal(t, "52998224725", draft.Supplier.TaxID)
	assert.Equal(t, "João da Silva", draft.Supplier.LegalName)
}

// ──────────────────────────────────────────────────────────────────────────────
// NFS-e
// ──────────────────────────────────────────────────────────────────────────────

func TestParse_NFSeABRASF(t *testing.T) {
	draft := parse(t, nfseABRASF)
	inv := draft.Invoice

	assert.Equal(t, entity.DocumentTypeNFSe, inv.Type)
	assert.Equal(t, "202400000000015", inv.Number)
	assert.Equal(t, "2024-03-05", inv.IssueDate.String())
	assertMoney(t, "1500", inv.TotalAmount)
	assert.Empty(t, inv.AccessKey, "NFS-e no tiene chave de acesso")

	assert.Equal(t, "Consultoria Contábil ME", draft.Supplier.LegalName)
	assert.Equal(t, "Contábil", draft.Supplier.TradeName)
	assert.Equal(t, "12345678000195", draft.Supplier.TaxID)

	require.Len(t, inv.Payments, 1)
	assert.Equal(t, "2024-03-05", inv.Payments[0].Date.String())
	assert.Empty(t, inv.Items)
}

func TestParse_NFSeLatin1(t *testing.T) {
	body := `<?xml version="1.0" encoding="ISO-8859-1"?>
<CompNfse><Nfse><InfNfse>
  <Numero>9</Numero>
  <DataEmissao>2024-03-05</DataEmissao>
  <ValorServicos>10,50</ValorServicos>
  <PrestadorServico><Cnpj>12345678000195</Cnpj><RazaoSocial>Serviços Técnicos São João</RazaoSocial></PrestadorServico>
</InfNfse></Nfse></CompNfse>`
	encoded, err := charmap.ISO8859_1.NewEncoder().String(body)
	require.NoError(t, err)

	draft, err := nfe.NewParser().Parse([]byte(encoded))
	require.NoError(t, err)

	assert.Equal(t, "Serviços Técnicos São João", draft.Supplier.LegalName)
	assertMoney(t, "10.50", draft.Invoice.TotalAmount)
}

// ──────────────────────────────────────────────────────────────────────────────
// Errores
// ──────────────────────────────────────────────────────────────────────────────

func TestParse_Errores(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"XML mal formado", `<NFe><infNFe><emit>`},
		{"vacío", ``},
		{"sin emisor", `<NFe><infNFe><ide><nNF>1</nNF></ide></infNFe></NFe>`},
		{"XML ajeno", `<pedido><numero>1</numero></pedido>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			draft, err := nfe.NewParser().Parse([]byte(tt.raw))
			assert.Nil(t, draft)
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrParse), "debe envolver ErrParse: %v", err)
			var pe *domain.ParseError
			assert.True(t, errors.As(err, &pe))
		})
	}
}

func TestParse_TotalAusenteValeCero(t *testing.T) {
	inv := parse(t, `<NFe><infNFe><emit><CNPJ>11222333000181</CNPJ></emit></infNFe></NFe>`).Invoice

	assertMoney(t, "0", inv.TotalAmount)
	require.Len(t, inv.Payments, 1)
	assertMoney(t, "0", inv.Payments[0].Amount)
	assert.True(t, inv.DueDate.IsZero())
}

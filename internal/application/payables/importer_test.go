package payables_test

import (
	"bytes"
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/notas-pagar/internal/application/payables"
	"github.com/jhoicas/notas-pagar/internal/domain/entity"
	"github.com/jhoicas/notas-pagar/internal/infrastructure/nfe"
	"github.com/jhoicas/notas-pagar/pkg/logger"
)

// nfeXML arma una NF-e mínima con dos parcelas.
func nfeXML(number, key, cnpj, name string) []byte {
	var ch string
	if key != "" {
		ch = "<protNFe><infProt><chNFe>" + key + "</chNFe></infProt></protNFe>"
	}
	return []byte(fmt.Sprintf(`<nfeProc><NFe><infNFe>
  <ide><serie>1</serie><nNF>%s</nNF><dhEmi>2024-01-15T10:00:00-03:00</dhEmi></ide>
  <emit><CNPJ>%s</CNPJ><xNome>%s</xNome></emit>
  <total><ICMSTot><vNF>500.00</vNF></ICMSTot></total>
  <cobr>
    <dup><nDup>001</nDup><dVenc>2024-02-01</dVenc><vDup>300.00</vDup></dup>
    <dup><nDup>002</nDup><dVenc>2024-03-01</dVenc><vDup>200.00</vDup></dup>
  </cobr>
</infNFe></NFe>%s</nfeProc>`, number, cnpj, name, ch))
}

func nfseXML(number, cnpj string) []byte {
	return []byte(fmt.Sprintf(`<CompNfse><Nfse><InfNfse>
  <Numero>%s</Numero><DataEmissao>2024-01-20</DataEmissao>
  <ValorServicos>1500.00</ValorServicos>
  <PrestadorServico><Cnpj>%s</Cnpj><RazaoSocial>Consultoria</RazaoSocial></PrestadorServico>
</InfNfse></Nfse></CompNfse>`, number, cnpj))
}

func newImporter(t *testing.T) (*payables.Importer, *payables.InvoiceRepository) {
	t.Helper()
	repo, _ := newRepo(t)
	return payables.NewImporter(nfe.NewParser(), repo, nil), repo
}

const (
	keyA = "35240111222333000181550010000012341000000014"
	keyB = "35240111222333000181550010000012351000000019"
)

func TestImport_ImportaConParcelas(t *testing.T) {
	im, repo := newImporter(t)

	res := im.Import(context.Background(), []payables.ImportFile{
		{Name: "1234.xml", Content: nfeXML("1234", keyA, "11222333000181", "Distribuidora")},
	})

	assert.Equal(t, 1, res.Imported)
	require.Len(t, res.Files, 1)
	fr := res.Files[0]
	assert.Equal(t, payables.OutcomeImported, fr.Outcome)
	assert.True(t, fr.SupplierCreated)

	inv := repo.Invoice(fr.InvoiceID)
	require.NotNil(t, inv)
	assert.Equal(t, fr.SupplierID, inv.SupplierID)
	assert.Len(t, inv.Payments, 2)
	assert.Equal(t, "2024-02-01", inv.DueDate.String())
	// hoy = 2024-02-10: la primera parcela (300) cuenta, la segunda (200) todavía no.
	assert.Equal(t, entity.PaymentStatusOverdue, inv.Status)
	assert.NotNil(t, inv.Attachments)
	assert.Empty(t, inv.Attachments)
}

func TestImport_DuplicadoPorChaveEnElMismoLote(t *testing.T) {
	im, repo := newImporter(t)

	res := im.Import(context.Background(), []payables.ImportFile{
		{Name: "a.xml", Content: nfeXML("1234", keyA, "11222333000181", "Distribuidora")},
		{Name: "a-copia.xml", Content: nfeXML("1234", keyA, "11222333000181", "Distribuidora")},
		{Name: "b.xml", Content: nfeXML("1235", keyB, "11222333000181", "Distribuidora")},
	})

	assert.Equal(t, 2, res.Imported)
	assert.Equal(t, 1, res.Duplicates)
	assert.Equal(t, payables.OutcomeDuplicate, res.Files[1].Outcome)
	assert.NotEmpty(t, res.Files[1].Reason)
	assert.Len(t, repo.Invoices(), 2)

	// Un segundo lote con la misma chave también es duplicado.
	again := im.Import(context.Background(), []payables.ImportFile{
		{Name: "a.xml", Content: nfeXML("1234", keyA, "11222333000181", "Distribuidora")},
	})
	assert.Equal(t, 1, again.Duplicates)
}

func TestImport_SinChaveNuncaEsDuplicado(t *testing.T) {
	im, repo := newImporter(t)

	res := im.Import(context.Background(), []payables.ImportFile{
		{Name: "nfse-1.xml", Content: nfseXML("15", "12345678000195")},
		{Name: "nfse-1-copia.xml", Content: nfseXML("15", "12345678000195")},
	})

	assert.Equal(t, 2, res.Imported)
	assert.Zero(t, res.Duplicates)
	assert.Len(t, repo.Invoices(), 2)
}

func TestImport_MismoEmisorMismoProveedor(t *testing.T) {
	im, repo := newImporter(t)

	res := im.Import(context.Background(), []payables.ImportFile{
		{Name: "a.xml", Content: nfeXML("1234", keyA, "11222333000181", "Distribuidora")},
		{Name: "b.xml", Content: nfeXML("1235", keyB, "11222333000181", "Distribuidora Filial")},
	})

	require.Equal(t, 2, res.Imported)
	assert.Equal(t, res.Files[0].SupplierID, res.Files[1].SupplierID)
	assert.True(t, res.Files[0].SupplierCreated)
	assert.False(t, res.Files[1].SupplierCreated)
	assert.Len(t, repo.Suppliers(), 1)
}

func TestImport_ProveedorExistente(t *testing.T) {
	im, repo := newImporter(t)
	s := seedSupplier(t, repo)

	res := im.Import(context.Background(), []payables.ImportFile{
		{Name: "a.xml", Content: nfeXML("1234", keyA, s.TaxID, "Otro nombre")},
	})

	require.Equal(t, 1, res.Imported)
	assert.Equal(t, s.ID, res.Files[0].SupplierID)
	assert.Equal(t, "Distribuidora Paulista Ltda", repo.Supplier(s.ID).LegalName, "el proveedor existente no se sobrescribe")
}

func TestImport_FalloAisladoPorArchivo(t *testing.T) {
	im, repo := newImporter(t)

	res := im.Import(context.Background(), []payables.ImportFile{
		{Name: "roto.xml", Content: []byte("<NFe><infNFe>")},
		{Name: "ok.xml", Content: nfeXML("1234", keyA, "11222333000181", "Distribuidora")},
		{Name: "ajeno.xml", Content: []byte("<pedido/>")},
	})

	assert.Equal(t, 1, res.Imported)
	assert.Equal(t, 2, res.Failed)
	assert.Equal(t, payables.OutcomeFailed, res.Files[0].Outcome)
	assert.Contains(t, res.Files[0].Reason, "documento fiscal inválido")
	assert.Equal(t, payables.OutcomeImported, res.Files[1].Outcome)
	assert.Len(t, repo.Invoices(), 1)
}

func TestImport_CNPJInvalidoSeAcepta(t *testing.T) {
	im, repo := newImporter(t)

	res := im.Import(context.Background(), []payables.ImportFile{
		{Name: "a.xml", Content: nfeXML("1", "", "11111111111111", "Emisor")},
	})

	require.Equal(t, 1, res.Imported)
	assert.NotNil(t, repo.SupplierByTaxID("11111111111111"))
}

func TestImport_ContextoCancelado(t *testing.T) {
	im, repo := newImporter(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := im.Import(ctx, []payables.ImportFile{
		{Name: "a.xml", Content: nfeXML("1234", keyA, "11222333000181", "Distribuidora")},
	})

	assert.Equal(t, 1, res.Failed)
	assert.Empty(t, repo.Invoices())
}

// nfseSinDocumento emisor sin CNPJ/CPF y sin fecha de emisión ni vencimiento.
func nfseSinDocumento(number string) []byte {
	return []byte(`<CompNfse><Nfse><InfNfse>
  <Numero>` + number + `</Numero>
  <ValorServicos>80.00</ValorServicos>
  <PrestadorServico><RazaoSocial>Autônomo</RazaoSocial></PrestadorServico>
</InfNfse></Nfse></CompNfse>`)
}

func TestImport_EmisorSinDocumentoReutilizaProveedor(t *testing.T) {
	im, repo := newImporter(t)

	res := im.Import(context.Background(), []payables.ImportFile{
		{Name: "a.xml", Content: nfseSinDocumento("1")},
		{Name: "b.xml", Content: nfseSinDocumento("2")},
	})

	require.Equal(t, 2, res.Imported)
	assert.Equal(t, res.Files[0].SupplierID, res.Files[1].SupplierID)
	assert.True(t, res.Files[0].SupplierCreated)
	assert.False(t, res.Files[1].SupplierCreated)
	assert.Len(t, repo.Suppliers(), 1)
}

func TestImport_SinVencimientoSeRegistraEnLog(t *testing.T) {
	repo, _ := newRepo(t)
	var buf bytes.Buffer
	log := logger.New(logger.Config{Env: "production", Level: "warn", Output: &buf})
	im := payables.NewImporter(nfe.NewParser(), repo, log)

	res := im.Import(context.Background(), []payables.ImportFile{{Name: "sin-fecha.xml", Content: nfseSinDocumento("3")}})

	require.Equal(t, 1, res.Imported)
	assert.True(t, repo.Invoice(res.Files[0].InvoiceID).DueDate.IsZero())
	assert.Contains(t, buf.String(), "sin vencimiento")
	assert.Contains(t, buf.String(), "sin-fecha.xml")
}

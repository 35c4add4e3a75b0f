package payables

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/jhoicas/notas-pagar/internal/domain/entity"
	"github.com/jhoicas/notas-pagar/pkg/logger"
	"github.com/jhoicas/notas-pagar/pkg/nfe"
)

// ImportFile documento recibido para importar.
type ImportFile struct {
	Name    string
	Content []byte
}

// Outcome resultado de importar un archivo.
type Outcome string

const (
	OutcomeImported  Outcome = "imported"
	OutcomeDuplicate Outcome = "duplicate"
	OutcomeFailed    Outcome = "failed"
)

// FileResult resultado por archivo; Reason explica duplicados y fallos.
type FileResult struct {
	Name            string  `json:"name"`
	Outcome         Outcome `json:"outcome"`
	Reason          string  `json:"reason,omitempty"`
	InvoiceID       string  `json:"invoiceId,omitempty"`
	InvoiceNumber   string  `json:"invoiceNumber,omitempty"`
	SupplierID      string  `json:"supplierId,omitempty"`
	SupplierCreated bool    `json:"supplierCreated,omitempty"`
}

// ImportResult resumen del lote.
type ImportResult struct {
	Files      []FileResult `json:"files"`
	Imported   int          `json:"imported"`
	Duplicates int          `json:"duplicates"`
	Failed     int          `json:"failed"`
}

func (r *ImportResult) add(fr FileResult) {
	r.Files = append(r.Files, fr)
	switch fr.Outcome {
	case OutcomeImported:
		r.Imported++
	case OutcomeDuplicate:
		r.Duplicates++
	default:
		r.Failed++
	}
}

// Importer concilia documentos fiscales con el registro: descarta duplicados por chave de acesso,
// reutiliza o crea el proveedor por CNPJ/CPF y registra la nota con sus parcelas.
type Importer struct {
	mu     sync.Mutex // un lote a la vez
	parser DocumentParser
	repo   *InvoiceRepository
	log    *logger.Logger
}

// NewImporter construye el importador.
func NewImporter(parser DocumentParser, repo *InvoiceRepository, log *logger.Logger) *Importer {
	if log == nil {
		log = logger.Nop()
	}
	return &Importer{parser: parser, repo: repo, log: log.WithComponent("importer")}
}

// Import procesa los archivos en orden. Cada archivo es independiente: un fallo no
// detiene el lote ni deshace los anteriores. Si ctx se cancela, los archivos
// pendientes quedan como fallidos.
func (im *Importer) Import(ctx context.Context, files []ImportFile) ImportResult {
	im.mu.Lock()
	defer im.mu.Unlock()

	res := ImportResult{Files: make([]FileResult, 0, len(files))}
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			res.add(FileResult{Name: f.Name, Outcome: OutcomeFailed, Reason: fmt.Sprintf("importación cancelada: %v", err)})
			continue
		}
		fr := im.importOne(ctx, f)
		res.add(fr)
	}
	im.log.Info().
		Int("files", len(files)).
		Int("imported", res.Imported).
		Int("duplicates", res.Duplicates).
		Int("failed", res.Failed).
		Msg("lote importado")
	return res
}

func (im *Importer) importOne(ctx context.Context, f ImportFile) FileResult {
	fr := FileResult{Name: f.Name}

	draft, err := im.parser.Parse(f.Content)
	if err != nil {
		im.log.Warn().Err(err).Str("file", f.Name).Msg("documento descartado")
		fr.Outcome = OutcomeFailed
		fr.Reason = err.Error()
		return fr
	}
	inv := draft.Invoice
	fr.InvoiceNumber = inv.Number
	if inv.DueDate.IsZero() {
		im.log.Warn().Str("file", f.Name).Str("number", inv.Number).Msg("documento sin vencimiento ni fecha de emisión; la nota no quedará vencida")
	}

	if inv.AccessKey == "" {
		im.log.Info().Str("file", f.Name).Str("number", inv.Number).Msg("documento sin chave de acesso; no se verifica duplicado")
	} else if im.repo.HasAccessKey(inv.AccessKey) {
		fr.Outcome = OutcomeDuplicate
		fr.Reason = fmt.Sprintf("chave de acesso %s ya importada", inv.AccessKey)
		return fr
	} else if err := nfe.ValidateAccessKey(inv.AccessKey); err != nil {
		im.log.Warn().Err(err).Str("file", f.Name).Str("access_key", inv.AccessKey).Msg("chave de acesso con dígito verificador inválido")
	}

	supplier, created, err := im.resolveSupplier(ctx, f.Name, draft.Supplier)
	if err != nil {
		fr.Outcome = OutcomeFailed
		fr.Reason = err.Error()
		return fr
	}
	fr.SupplierID = supplier.ID
	fr.SupplierCreated = created

	inv.SupplierID = supplier.ID
	inv.Attachments = []entity.Attachment{}
	saved, err := im.repo.CreateInvoice(ctx, inv)
	if err != nil {
		im.log.Error().Err(err).Str("file", f.Name).Msg("no se pudo registrar la nota")
		fr.Outcome = OutcomeFailed
		fr.Reason = err.Error()
		return fr
	}
	fr.Outcome = OutcomeImported
	fr.InvoiceID = saved.ID
	return fr
}

// resolveSupplier busca por CNPJ/CPF exacto; si no existe lo crea con los datos del emisor.
// Un emisor sin CNPJ/CPF se concilia con el proveedor que tampoco lo tiene.
func (im *Importer) resolveSupplier(ctx context.Context, file string, draft entity.Supplier) (*entity.Supplier, bool, error) {
	if s := im.findSupplier(draft.TaxID); s != nil {
		return s, false, nil
	}
	if err := nfe.ValidateTaxID(draft.TaxID); draft.TaxID != "" && err != nil {
		im.log.Warn().Err(err).Str("file", file).Str("tax_id", draft.TaxID).Msg("CNPJ/CPF con dígito verificador inválido; se acepta el del documento")
	}
	s, err := im.repo.AddSupplier(ctx, draft)
	if err != nil {
		return nil, false, fmt.Errorf("registrar proveedor: %w", err)
	}
	im.log.Info().Str("supplier_id", s.ID).Str("tax_id", s.TaxID).Msg("proveedor creado desde XML")
	return s, true, nil
}

// findSupplier compara el CNPJ/CPF como texto exacto; el vacío también es una clave.
func (im *Importer) findSupplier(taxID string) *entity.Supplier {
	taxID = strings.TrimSpace(taxID)
	if taxID != "" {
		return im.repo.SupplierByTaxID(taxID)
	}
	for _, s := range im.repo.Suppliers() {
		if strings.TrimSpace(s.TaxID) == "" {
			return &s
		}
	}
	return nil
}

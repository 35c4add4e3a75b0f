package payables

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/notas-pagar/internal/domain"
	"github.com/jhoicas/notas-pagar/internal/domain/entity"
	"github.com/jhoicas/notas-pagar/internal/domain/finance"
	"github.com/jhoicas/notas-pagar/internal/domain/repository"
	"github.com/jhoicas/notas-pagar/pkg/logger"
)

// Valores por defecto de un ítem agregado a mano.
const DefaultItemDescription = "Novo Item"

// InvoiceRepository es dueño de la colección {suppliers, invoices}. Cada mutación recalcula
// el estado de pago de la nota afectada y persiste el registro completo antes de retornar;
// si la persistencia falla, el estado en memoria vuelve al snapshot anterior.
// Todas las operaciones se serializan con un mutex.
type InvoiceRepository struct {
	mu    sync.Mutex
	store repository.CollectionStore
	now   Clock
	log   *logger.Logger
	data  *entity.Collection

	// estados corregidos por Open que Refresh aún no informó.
	loadChanged int
}

// NewInvoiceRepository construye el repositorio. clock nil usa time.Now; log nil descarta.
// Hay que llamar Open antes de usarlo para cargar lo persistido.
func NewInvoiceRepository(store repository.CollectionStore, clock Clock, log *logger.Logger) *InvoiceRepository {
	if clock == nil {
		clock = time.Now
	}
	if log == nil {
		log = logger.Nop()
	}
	return &InvoiceRepository{
		store: store,
		now:   clock,
		log:   log.WithComponent("payables"),
		data:  &entity.Collection{},
	}
}

// Today fecha de referencia actual según el reloj inyectado.
func (r *InvoiceRepository) Today() entity.Date {
	return entity.DateOf(r.now())
}

// Open carga la colección y recalcula el estado de todas las notas (el estado guardado no es confiable).
// Si algún estado cambió respecto de lo guardado, persiste el registro corregido.
func (r *InvoiceRepository) Open(ctx context.Context) error {
	c, err := r.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("cargar registro: %w", err)
	}
	if c == nil {
		c = &entity.Collection{}
	}
	today := r.Today()
	changed := 0
	for i := range c.Invoices {
		normalize(&c.Invoices[i])
		if finance.Apply(&c.Invoices[i], today) {
			changed++
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if changed > 0 {
		if err := r.store.Save(ctx, c); err != nil {
			return fmt.Errorf("guardar registro: %w", err)
		}
	}
	r.data = c
	r.loadChanged = changed

	r.log.Info().
		Int("suppliers", len(c.Suppliers)).
		Int("invoices", len(c.Invoices)).
		Int("recalculated", changed).
		Msg("registro cargado")
	return nil
}

// Refresh recalcula los estados con la fecha actual (cambio de día) y guarda si alguno cambió.
// Devuelve cuántas notas cambiaron de estado, incluidas las corregidas por Open y aún no informadas.
func (r *InvoiceRepository) Refresh(ctx context.Context) (int, error) {
	changed := 0
	err := r.mutate(ctx, func(c *entity.Collection) (bool, error) {
		today := r.Today()
		for i := range c.Invoices {
			if finance.Apply(&c.Invoices[i], today) {
				changed++
			}
		}
		return changed > 0, nil
	})
	if err != nil {
		return 0, err
	}

	r.mu.Lock()
	changed += r.loadChanged
	r.loadChanged = 0
	r.mu.Unlock()
	return changed, nil
}

// ── Notas ────────────────────────────────────────────────────────────────────

// CreateInvoice asigna IDs faltantes (nota, ítems, pagos, anexos), deriva el estado y persiste.
func (r *InvoiceRepository) CreateInvoice(ctx context.Context, in entity.Invoice) (*entity.Invoice, error) {
	if strings.TrimSpace(in.SupplierID) == "" {
		return nil, fmt.Errorf("%w: supplierId requerido", domain.ErrInvalidInput)
	}
	inv := in.Clone()
	if inv.ID == "" {
		inv.ID = uuid.New().String()
	}
	if inv.FinancialStatus == "" {
		inv.FinancialStatus = entity.FinancialStatusWaiting
	}
	normalize(inv)
	assignIDs(inv)

	err := r.mutate(ctx, func(c *entity.Collection) (bool, error) {
		if findSupplier(c, inv.SupplierID) < 0 {
			return false, fmt.Errorf("%w: proveedor %s no existe", domain.ErrInvalidInput, inv.SupplierID)
		}
		finance.Apply(inv, r.Today())
		c.Invoices = append(c.Invoices, *inv)
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	r.log.Debug().Str("invoice_id", inv.ID).Str("number", inv.Number).Msg("nota creada")
	return inv.Clone(), nil
}

// UpdateInvoice aplica el patch y recalcula el estado. Un id desconocido no hace nada.
func (r *InvoiceRepository) UpdateInvoice(ctx context.Context, id string, patch InvoicePatch) error {
	return r.mutate(ctx, func(c *entity.Collection) (bool, error) {
		i := findInvoice(c, id)
		if i < 0 {
			r.log.Debug().Str("invoice_id", id).Msg("actualizar: nota inexistente, se ignora")
			return false, nil
		}
		if patch.SupplierID != nil && findSupplier(c, *patch.SupplierID) < 0 {
			return false, fmt.Errorf("%w: proveedor %s no existe", domain.ErrInvalidInput, *patch.SupplierID)
		}
		inv := &c.Invoices[i]
		patch.apply(inv)
		normalize(inv)
		assignIDs(inv)
		finance.Apply(inv, r.Today())
		return true, nil
	})
}

// DeleteInvoice elimina la nota; el proveedor se conserva. Un id desconocido no hace nada.
func (r *InvoiceRepository) DeleteInvoice(ctx context.Context, id string) error {
	return r.mutate(ctx, func(c *entity.Collection) (bool, error) {
		i := findInvoice(c, id)
		if i < 0 {
			r.log.Debug().Str("invoice_id", id).Msg("eliminar: nota inexistente, se ignora")
			return false, nil
		}
		c.Invoices = append(c.Invoices[:i], c.Invoices[i+1:]...)
		return true, nil
	})
}

// ── Proveedores ──────────────────────────────────────────────────────────────

// AddSupplier registra un proveedor. Exige razón social o CNPJ/CPF; un CNPJ/CPF repetido es ErrDuplicate.
func (r *InvoiceRepository) AddSupplier(ctx context.Context, in entity.Supplier) (*entity.Supplier, error) {
	s := in
	s.LegalName = strings.TrimSpace(s.LegalName)
	s.TaxID = strings.TrimSpace(s.TaxID)
	if s.LegalName == "" && s.TaxID == "" {
		return nil, fmt.Errorf("%w: razão social o CNPJ/CPF requerido", domain.ErrInvalidInput)
	}
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	if s.Status == "" {
		s.Status = entity.SupplierStatusActive
	}
	err := r.mutate(ctx, func(c *entity.Collection) (bool, error) {
		if s.TaxID != "" && findSupplierByTaxID(c, s.TaxID) >= 0 {
			return false, fmt.Errorf("%w: CNPJ/CPF %s ya registrado", domain.ErrDuplicate, s.TaxID)
		}
		c.Suppliers = append(c.Suppliers, s)
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// UpdateSupplier aplica el patch al proveedor. Un id desconocido no hace nada.
func (r *InvoiceRepository) UpdateSupplier(ctx context.Context, id string, patch SupplierPatch) error {
	return r.mutate(ctx, func(c *entity.Collection) (bool, error) {
		i := findSupplier(c, id)
		if i < 0 {
			r.log.Debug().Str("supplier_id", id).Msg("actualizar: proveedor inexistente, se ignora")
			return false, nil
		}
		if patch.TaxID != nil {
			taxID := strings.TrimSpace(*patch.TaxID)
			if j := findSupplierByTaxID(c, taxID); taxID != "" && j >= 0 && j != i {
				return false, fmt.Errorf("%w: CNPJ/CPF %s ya registrado", domain.ErrDuplicate, taxID)
			}
			patch.TaxID = &taxID
		}
		patch.apply(&c.Suppliers[i])
		return true, nil
	})
}

// ── Pagos ────────────────────────────────────────────────────────────────────

// AddPayment registra un pago confirmado (nunca programado). Fecha vacía = hoy;
// método vacío = el de la nota. La nota debe existir.
func (r *InvoiceRepository) AddPayment(ctx context.Context, invoiceID string, in entity.PaymentRecord) (*entity.PaymentRecord, error) {
	if !in.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: el valor del pago debe ser mayor que cero", domain.ErrInvalidInput)
	}
	p := in
	p.IsScheduled = false
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	if p.Date.IsZero() {
		p.Date = r.Today()
	}
	err := r.mutate(ctx, func(c *entity.Collection) (bool, error) {
		i := findInvoice(c, invoiceID)
		if i < 0 {
			return false, fmt.Errorf("nota %s: %w", invoiceID, domain.ErrNotFound)
		}
		inv := &c.Invoices[i]
		if p.Method == "" {
			p.Method = inv.PaymentMethod
		}
		inv.Payments = append(inv.Payments, p)
		finance.Apply(inv, r.Today())
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// EditPayment aplica el patch y marca el pago como confirmado. Nota o pago desconocidos no hacen nada.
func (r *InvoiceRepository) EditPayment(ctx context.Context, invoiceID, paymentID string, patch PaymentPatch) error {
	if patch.Amount != nil && !patch.Amount.IsPositive() {
		return fmt.Errorf("%w: el valor del pago debe ser mayor que cero", domain.ErrInvalidInput)
	}
	return r.mutateInvoice(ctx, invoiceID, func(inv *entity.Invoice) bool {
		for i := range inv.Payments {
			if inv.Payments[i].ID == paymentID {
				patch.apply(&inv.Payments[i])
				return true
			}
		}
		return false
	})
}

// DeletePayment quita el pago (o parcela programada). Nota o pago desconocidos no hacen nada.
func (r *InvoiceRepository) DeletePayment(ctx context.Context, invoiceID, paymentID string) error {
	return r.mutateInvoice(ctx, invoiceID, func(inv *entity.Invoice) bool {
		for i := range inv.Payments {
			if inv.Payments[i].ID == paymentID {
				inv.Payments = append(inv.Payments[:i], inv.Payments[i+1:]...)
				return true
			}
		}
		return false
	})
}

// ── Ítems ────────────────────────────────────────────────────────────────────

// AddItem agrega un ítem. Sin descripción usa "Novo Item"; cantidad cero vale 1.
// El total de la nota no se toca.
func (r *InvoiceRepository) AddItem(ctx context.Context, invoiceID string, in entity.LineItem) (*entity.LineItem, error) {
	it := in
	if it.ID == "" {
		it.ID = uuid.New().String()
	}
	if strings.TrimSpace(it.Description) == "" {
		it.Description = DefaultItemDescription
	}
	if it.Quantity.IsZero() {
		it.Quantity = decimal.NewFromInt(1)
	}
	it.TotalValue = it.Quantity.Mul(it.UnitValue)
	err := r.mutate(ctx, func(c *entity.Collection) (bool, error) {
		i := findInvoice(c, invoiceID)
		if i < 0 {
			return false, fmt.Errorf("nota %s: %w", invoiceID, domain.ErrNotFound)
		}
		c.Invoices[i].Items = append(c.Invoices[i].Items, it)
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return &it, nil
}

// EditItem aplica el patch y recalcula el total de la línea. Nota o ítem desconocidos no hacen nada.
func (r *InvoiceRepository) EditItem(ctx context.Context, invoiceID, itemID string, patch ItemPatch) error {
	return r.mutateInvoice(ctx, invoiceID, func(inv *entity.Invoice) bool {
		for i := range inv.Items {
			if inv.Items[i].ID == itemID {
				patch.apply(&inv.Items[i])
				return true
			}
		}
		return false
	})
}

// DeleteItem quita el ítem. Nota o ítem desconocidos no hacen nada.
func (r *InvoiceRepository) DeleteItem(ctx context.Context, invoiceID, itemID string) error {
	return r.mutateInvoice(ctx, invoiceID, func(inv *entity.Invoice) bool {
		for i := range inv.Items {
			if inv.Items[i].ID == itemID {
				inv.Items = append(inv.Items[:i], inv.Items[i+1:]...)
				return true
			}
		}
		return false
	})
}

// ── Anexos ───────────────────────────────────────────────────────────────────

// AddAttachment agrega un anexo opaco. Tipo vacío = Outros documentos; fecha vacía = hoy.
func (r *InvoiceRepository) AddAttachment(ctx context.Context, invoiceID string, in entity.Attachment) (*entity.Attachment, error) {
	a := in
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	if a.Type == "" {
		a.Type = entity.AttachmentTypeOutros
	}
	if a.UploadDate.IsZero() {
		a.UploadDate = r.Today()
	}
	err := r.mutate(ctx, func(c *entity.Collection) (bool, error) {
		i := findInvoice(c, invoiceID)
		if i < 0 {
			return false, fmt.Errorf("nota %s: %w", invoiceID, domain.ErrNotFound)
		}
		c.Invoices[i].Attachments = append(c.Invoices[i].Attachments, a)
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// DeleteAttachment quita el anexo. Nota o anexo desconocidos no hacen nada.
func (r *InvoiceRepository) DeleteAttachment(ctx context.Context, invoiceID, attachmentID string) error {
	return r.mutateInvoice(ctx, invoiceID, func(inv *entity.Invoice) bool {
		for i := range inv.Attachments {
			if inv.Attachments[i].ID == attachmentID {
				inv.Attachments = append(inv.Attachments[:i], inv.Attachments[i+1:]...)
				return true
			}
		}
		return false
	})
}

// ── Lecturas (siempre copias) ────────────────────────────────────────────────

// Invoices todas las notas, en orden de inserción.
func (r *InvoiceRepository) Invoices() []entity.Invoice {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.data.Clone().Invoices
}

// Suppliers todos los proveedores, en orden de inserción.
func (r *InvoiceRepository) Suppliers() []entity.Supplier {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]entity.Supplier{}, r.data.Suppliers...)
}

// Snapshot copia de la colección completa (exportaciones, analytics).
func (r *InvoiceRepository) Snapshot() *entity.Collection {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.data.Clone()
}

// Invoice nota por id, o nil si no existe.
func (r *InvoiceRepository) Invoice(id string) *entity.Invoice {
	r.mu.Lock()
	defer r.mu.Unlock()
	if i := findInvoice(r.data, id); i >= 0 {
		return r.data.Invoices[i].Clone()
	}
	return nil
}

// Supplier proveedor por id, o nil si no existe.
func (r *InvoiceRepository) Supplier(id string) *entity.Supplier {
	r.mu.Lock()
	defer r.mu.Unlock()
	if i := findSupplier(r.data, id); i >= 0 {
		s := r.data.Suppliers[i]
		return &s
	}
	return nil
}

// SupplierByTaxID proveedor con ese CNPJ/CPF exacto, o nil.
func (r *InvoiceRepository) SupplierByTaxID(taxID string) *entity.Supplier {
	taxID = strings.TrimSpace(taxID)
	if taxID == "" {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if i := findSupplierByTaxID(r.data, taxID); i >= 0 {
		s := r.data.Suppliers[i]
		return &s
	}
	return nil
}

// HasAccessKey indica si ya hay una nota con esa chave de acesso. Una chave vacía nunca coincide.
func (r *InvoiceRepository) HasAccessKey(key string) bool {
	key = strings.TrimSpace(key)
	if key == "" {
		return false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.data.Invoices {
		if r.data.Invoices[i].AccessKey == key {
			return true
		}
	}
	return false
}

// ── Internos ─────────────────────────────────────────────────────────────────

// mutate ejecuta fn bajo el mutex. Si fn reporta cambios, persiste; si la persistencia
// falla, restaura el snapshot previo. fn con error no persiste nada.
func (r *InvoiceRepository) mutate(ctx context.Context, fn func(c *entity.Collection) (bool, error)) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	snapshot := r.data.Clone()
	changed, err := fn(r.data)
	if err != nil {
		r.data = snapshot
		return err
	}
	if !changed {
		return nil
	}
	if err := r.store.Save(ctx, r.data); err != nil {
		r.data = snapshot
		r.log.Error().Err(err).Msg("no se pudo guardar el registro; cambios descartados")
		return fmt.Errorf("guardar registro: %w", err)
	}
	return nil
}

// mutateInvoice atajo para operaciones sobre una nota existente: id desconocido o
// fn sin cambios es un no-op; si hubo cambios se recalcula el estado.
func (r *InvoiceRepository) mutateInvoice(ctx context.Context, invoiceID string, fn func(inv *entity.Invoice) bool) error {
	return r.mutate(ctx, func(c *entity.Collection) (bool, error) {
		i := findInvoice(c, invoiceID)
		if i < 0 {
			r.log.Debug().Str("invoice_id", invoiceID).Msg("nota inexistente, se ignora")
			return false, nil
		}
		inv := &c.Invoices[i]
		if !fn(inv) {
			return false, nil
		}
		finance.Apply(inv, r.Today())
		return true, nil
	})
}

// normalize evita slices nil para que el JSON persistido tenga siempre listas.
func normalize(inv *entity.Invoice) {
	if inv.Payments == nil {
		inv.Payments = []entity.PaymentRecord{}
	}
	if inv.Items == nil {
		inv.Items = []entity.LineItem{}
	}
	if inv.Attachments == nil {
		inv.Attachments = []entity.Attachment{}
	}
}

// assignIDs da id a pagos, ítems y anexos que llegan sin uno.
func assignIDs(inv *entity.Invoice) {
	for i := range inv.Items {
		if inv.Items[i].ID == "" {
			inv.Items[i].ID = uuid.New().String()
		}
	}
	for i := range inv.Payments {
		if inv.Payments[i].ID == "" {
			inv.Payments[i].ID = uuid.New().String()
		}
	}
	for i := range inv.Attachments {
		if inv.Attachments[i].ID == "" {
			inv.Attachments[i].ID = uuid.New().String()
		}
	}
}

func findInvoice(c *entity.Collection, id string) int {
	for i := range c.Invoices {
		if c.Invoices[i].ID == id {
			return i
		}
	}
	return -1
}

func findSupplier(c *entity.Collection, id string) int {
	for i := range c.Suppliers {
		if c.Suppliers[i].ID == id {
			return i
		}
	}
	return -1
}

func findSupplierByTaxID(c *entity.Collection, taxID string) int {
	for i := range c.Suppliers {
		if c.Suppliers[i].TaxID == taxID {
			return i
		}
	}
	return -1
}

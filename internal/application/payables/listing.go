package payables

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/notas-pagar/internal/domain"
	"github.com/jhoicas/notas-pagar/internal/domain/entity"
	"github.com/jhoicas/notas-pagar/internal/domain/finance"
)

// InvoiceFilter criterios del listado. Campos vacíos no filtran.
type InvoiceFilter struct {
	SupplierID      string
	Destination     string // subcadena, sin distinguir mayúsculas ni acentos
	Status          entity.PaymentStatus
	FinancialStatus entity.FinancialStatus
	PaymentMethod   entity.PaymentMethod
	IssueFrom       entity.Date
	IssueTo         entity.Date
	DueFrom         entity.Date
	DueTo           entity.Date
	MinAmount       *decimal.Decimal
	MaxAmount       *decimal.Decimal
	Search          string // número, razón social / fantasía, destinación
}

// SortField campo de orden del listado.
type SortField string

const (
	SortByNumber    SortField = "number"
	SortBySupplier  SortField = "supplier"
	SortByIssueDate SortField = "issueDate"
	SortByDueDate   SortField = "dueDate"
	SortByAmount    SortField = "amount"
	SortByStatus    SortField = "status"
)

// ParseSortField valida el campo de orden; vacío = vencimiento.
func ParseSortField(s string) (SortField, error) {
	switch f := SortField(strings.TrimSpace(s)); f {
	case "":
		return SortByDueDate, nil
	case SortByNumber, SortBySupplier, SortByIssueDate, SortByDueDate, SortByAmount, SortByStatus:
		return f, nil
	default:
		return "", fmt.Errorf("%w: campo de orden %q", domain.ErrInvalidInput, s)
	}
}

// SortSpec orden del listado. El cero ordena por vencimiento ascendente.
type SortSpec struct {
	Field SortField
	Desc  bool
}

// InvoiceView nota enriquecida para listados y reportes.
type InvoiceView struct {
	entity.Invoice
	SupplierName  string          `json:"supplierName"`
	SupplierTaxID string          `json:"supplierTaxId"`
	EffectivePaid decimal.Decimal `json:"effectivePaid"`
	Balance       decimal.Decimal `json:"balance"`
}

// List devuelve las notas que cumplen el filtro, ordenadas. Estado, pagado y saldo se calculan a la fecha de hoy.
func (r *InvoiceRepository) List(filter InvoiceFilter, sort SortSpec) []InvoiceView {
	return BuildViews(r.Snapshot(), r.Today(), filter, sort)
}

// BuildViews filtra y ordena las notas de c a la fecha asOf.
func BuildViews(c *entity.Collection, asOf entity.Date, filter InvoiceFilter, sort SortSpec) []InvoiceView {
	suppliers := make(map[string]entity.Supplier, len(c.Suppliers))
	for _, s := range c.Suppliers {
		suppliers[s.ID] = s
	}
	search := fold(filter.Search)
	destination := fold(filter.Destination)

	views := make([]InvoiceView, 0, len(c.Invoices))
	for _, inv := range c.Invoices {
		// El estado guardado puede ser de otro día; se deriva a asOf igual que pagado y saldo.
		inv.Status = finance.DeriveStatus(inv.TotalAmount, inv.DueDate, inv.Payments, asOf)
		s := suppliers[inv.SupplierID]
		if !matches(inv, s, filter, search, destination) {
			continue
		}
		paid := finance.EffectivePaid(inv.Payments, asOf)
		views = append(views, InvoiceView{
			Invoice:       inv,
			SupplierName:  s.DisplayName(),
			SupplierTaxID: s.TaxID,
			EffectivePaid: paid,
			Balance:       inv.TotalAmount.Sub(paid),
		})
	}
	sortViews(views, sort)
	return views
}

func matches(inv entity.Invoice, s entity.Supplier, f InvoiceFilter, search, destination string) bool {
	switch {
	case f.SupplierID != "" && inv.SupplierID != f.SupplierID:
		return false
	case f.Status != "" && inv.Status != f.Status:
		return false
	case f.FinancialStatus != "" && inv.FinancialStatus != f.FinancialStatus:
		return false
	case f.PaymentMethod != "" && inv.PaymentMethod != f.PaymentMethod:
		return false
	case destination != "" && !strings.Contains(fold(inv.Destination), destination):
		return false
	case !inRange(inv.IssueDate, f.IssueFrom, f.IssueTo):
		return false
	case !inRange(inv.DueDate, f.DueFrom, f.DueTo):
		return false
	case f.MinAmount != nil && inv.TotalAmount.LessThan(*f.MinAmount):
		return false
	case f.MaxAmount != nil && inv.TotalAmount.GreaterThan(*f.MaxAmount):
		return false
	}
	if search == "" {
		return true
	}
	for _, field := range []string{inv.Number, s.LegalName, s.TradeName, inv.Destination} {
		if strings.Contains(fold(field), search) {
			return true
		}
	}
	return false
}

// inRange límites inclusivos; una fecha vacía queda fuera de cualquier rango definido.
func inRange(d, from, to entity.Date) bool {
	if from.IsZero() && to.IsZero() {
		return true
	}
	if d.IsZero() {
		return false
	}
	if !from.IsZero() && d.Before(from) {
		return false
	}
	if !to.IsZero() && d.After(to) {
		return false
	}
	return true
}

func sortViews(views []InvoiceView, spec SortSpec) {
	field := spec.Field
	if field == "" {
		field = SortByDueDate
	}
	slices.SortStableFunc(views, func(a, b InvoiceView) int {
		c := compareBy(field, a, b)
		if spec.Desc {
			c = -c
		}
		if c != 0 {
			return c
		}
		return cmp.Compare(a.Number, b.Number)
	})
}

func compareBy(field SortField, a, b InvoiceView) int {
	switch field {
	case SortByNumber:
		return compareNumbers(a.Number, b.Number)
	case SortBySupplier:
		return cmp.Compare(fold(a.SupplierName), fold(b.SupplierName))
	case SortByIssueDate:
		return compareDates(a.IssueDate, b.IssueDate)
	case SortByAmount:
		return a.TotalAmount.Cmp(b.TotalAmount)
	case SortByStatus:
		return cmp.Compare(a.Status, b.Status)
	default:
		return compareDates(a.DueDate, b.DueDate)
	}
}

// compareNumbers ordena numéricamente cuando ambos son dígitos ("9" < "10").
func compareNumbers(a, b string) int {
	da, db := strings.TrimLeft(a, "0"), strings.TrimLeft(b, "0")
	if isDigits(da) && isDigits(db) {
		if c := cmp.Compare(len(da), len(db)); c != 0 {
			return c
		}
		return cmp.Compare(da, db)
	}
	return cmp.Compare(a, b)
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// compareDates fechas vacías al final.
func compareDates(a, b entity.Date) int {
	switch {
	case a.IsZero() && b.IsZero():
		return 0
	case a.IsZero():
		return 1
	case b.IsZero():
		return -1
	}
	return a.Time().Compare(b.Time())
}

// fold minúsculas sin acentos ("São João" -> "sao joao").
func fold(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(out)
}

package payables

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/notas-pagar/internal/domain/entity"
)

// InvoicePatch cambios parciales de una nota; solo se aplican los campos no nil.
// El estado de pago no es editable: se deriva después de aplicar el patch.
type InvoicePatch struct {
	SupplierID       *string                  `json:"supplierId,omitempty"`
	Number           *string                  `json:"invoiceNumber,omitempty"`
	Series           *string                  `json:"series,omitempty"`
	AccessKey        *string                  `json:"accessKey,omitempty"`
	IssueDate        *entity.Date             `json:"issueDate,omitempty"`
	DueDate          *entity.Date             `json:"dueDate,omitempty"`
	TotalAmount      *decimal.Decimal         `json:"totalAmount,omitempty"`
	Taxes            *decimal.Decimal         `json:"taxes,omitempty"`
	Type             *entity.DocumentType     `json:"type,omitempty"`
	Destination      *string                  `json:"destination,omitempty"`
	PaymentMethod    *entity.PaymentMethod    `json:"paymentMethod,omitempty"`
	PaymentCondition *entity.PaymentCondition `json:"paymentCondition,omitempty"`
	FinancialStatus  *entity.FinancialStatus  `json:"financialStatus,omitempty"`
	Installments     *int                     `json:"installments,omitempty"`
	Notes            *string                  `json:"notes,omitempty"`
	Payments         *[]entity.PaymentRecord  `json:"payments,omitempty"`
	Items            *[]entity.LineItem       `json:"items,omitempty"`
	Attachments      *[]entity.Attachment     `json:"attachments,omitempty"`
}

func (p InvoicePatch) apply(inv *entity.Invoice) {
	setIf(&inv.SupplierID, p.SupplierID)
	setIf(&inv.Number, p.Number)
	setIf(&inv.Series, p.Series)
	setIf(&inv.AccessKey, p.AccessKey)
	setIf(&inv.IssueDate, p.IssueDate)
	setIf(&inv.DueDate, p.DueDate)
	setIf(&inv.TotalAmount, p.TotalAmount)
	setIf(&inv.Taxes, p.Taxes)
	setIf(&inv.Type, p.Type)
	setIf(&inv.Destination, p.Destination)
	setIf(&inv.PaymentMethod, p.PaymentMethod)
	setIf(&inv.PaymentCondition, p.PaymentCondition)
	setIf(&inv.FinancialStatus, p.FinancialStatus)
	setIf(&inv.Installments, p.Installments)
	setIf(&inv.Notes, p.Notes)
	if p.Payments != nil {
		inv.Payments = append([]entity.PaymentRecord{}, (*p.Payments)...)
	}
	if p.Items != nil {
		inv.Items = append([]entity.LineItem{}, (*p.Items)...)
	}
	if p.Attachments != nil {
		inv.Attachments = append([]entity.Attachment{}, (*p.Attachments)...)
	}
}

// SupplierPatch cambios parciales de un proveedor.
type SupplierPatch struct {
	LegalName *string                `json:"razaoSocial,omitempty"`
	TradeName *string                `json:"nomeFantasia,omitempty"`
	TaxID     *string                `json:"cnpjCpf,omitempty"`
	Email     *string                `json:"email,omitempty"`
	Phone     *string                `json:"phone,omitempty"`
	Contact   *string                `json:"contato,omitempty"`
	Notes     *string                `json:"notes,omitempty"`
	Status    *entity.SupplierStatus `json:"status,omitempty"`
}

func (p SupplierPatch) apply(s *entity.Supplier) {
	setIf(&s.LegalName, p.LegalName)
	setIf(&s.TradeName, p.TradeName)
	setIf(&s.TaxID, p.TaxID)
	setIf(&s.Email, p.Email)
	setIf(&s.Phone, p.Phone)
	setIf(&s.Contact, p.Contact)
	setIf(&s.Notes, p.Notes)
	setIf(&s.Status, p.Status)
}

// PaymentPatch edición de un pago. Editar un pago lo confirma (deja de ser programado).
type PaymentPatch struct {
	Date       *entity.Date          `json:"date,omitempty"`
	Amount     *decimal.Decimal      `json:"amount,omitempty"`
	Method     *entity.PaymentMethod `json:"method,omitempty"`
	Notes      *string               `json:"notes,omitempty"`
	ReceiptURL *string               `json:"receiptUrl,omitempty"`
}

func (p PaymentPatch) apply(pr *entity.PaymentRecord) {
	setIf(&pr.Date, p.Date)
	setIf(&pr.Amount, p.Amount)
	setIf(&pr.Method, p.Method)
	setIf(&pr.Notes, p.Notes)
	setIf(&pr.ReceiptURL, p.ReceiptURL)
	pr.IsScheduled = false
}

// ItemPatch edición de un ítem; el total de la línea se recalcula como cantidad × valor unitario.
type ItemPatch struct {
	Description *string          `json:"description,omitempty"`
	Quantity    *decimal.Decimal `json:"quantity,omitempty"`
	UnitValue   *decimal.Decimal `json:"unitValue,omitempty"`
	CFOP        *string          `json:"cfop,omitempty"`
	NCM         *string          `json:"ncm,omitempty"`
}

func (p ItemPatch) apply(it *entity.LineItem) {
	setIf(&it.Description, p.Description)
	setIf(&it.Quantity, p.Quantity)
	setIf(&it.UnitValue, p.UnitValue)
	setIf(&it.CFOP, p.CFOP)
	setIf(&it.NCM, p.NCM)
	it.TotalValue = it.Quantity.Mul(it.UnitValue)
}

func setIf[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

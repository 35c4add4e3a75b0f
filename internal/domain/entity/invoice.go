package entity

import "github.com/shopspring/decimal"

// Invoice nota fiscal de entrada con su ciclo de cuentas por pagar.
// Los tags JSON siguen el registro persistido ({suppliers, invoices}).
type Invoice struct {
	ID               string           `json:"id"`
	SupplierID       string           `json:"supplierId"`
	Number           string           `json:"invoiceNumber"`
	Series           string           `json:"series"`
	AccessKey        string           `json:"accessKey"` // chave de acesso; vacía en muchas NFS-e
	IssueDate        Date             `json:"issueDate"`
	DueDate          Date             `json:"dueDate"`
	TotalAmount      decimal.Decimal  `json:"totalAmount"`
	Taxes            decimal.Decimal  `json:"taxes"`
	Type             DocumentType     `json:"type"`
	Destination      string           `json:"destination"`
	PaymentMethod    PaymentMethod    `json:"paymentMethod"`
	PaymentCondition PaymentCondition `json:"paymentCondition"`
	FinancialStatus  FinancialStatus  `json:"financialStatus"`
	Installments     int              `json:"installments,omitempty"`
	Status           PaymentStatus    `json:"status"` // derivado; se recalcula en cada carga y mutación
	Notes            string           `json:"notes"`
	Payments         []PaymentRecord  `json:"payments"`
	Items            []LineItem       `json:"items"`
	Attachments      []Attachment     `json:"attachments"`
}

// LineItem línea de producto o servicio de la nota.
type LineItem struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitValue   decimal.Decimal `json:"unitValue"`
	TotalValue  decimal.Decimal `json:"totalValue"`
	CFOP        string          `json:"cfop,omitempty"`
	NCM         string          `json:"ncm,omitempty"`
}

// PaymentRecord pago confirmado o parcela programada (IsScheduled) importada del XML.
type PaymentRecord struct {
	ID          string          `json:"id"`
	Date        Date            `json:"date"`
	Amount      decimal.Decimal `json:"amount"`
	Method      PaymentMethod   `json:"method"`
	Notes       string          `json:"notes"`
	ReceiptURL  string          `json:"receiptUrl,omitempty"`
	IsScheduled bool            `json:"isScheduled,omitempty"`
}

// Attachment anexo opaco (boleto, comprobante...). El contenido binario vive fuera del núcleo.
type Attachment struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Type        AttachmentType `json:"type"`
	Description string         `json:"description"`
	UploadDate  Date           `json:"uploadDate"`
	URL         string         `json:"url"`
	MimeType    string         `json:"mimeType"`
}

// Clone copia profunda (slices propios) para no exponer alias mutables de la colección.
func (inv *Invoice) Clone() *Invoice {
	if inv == nil {
		return nil
	}
	out := *inv
	out.Payments = cloneSlice(inv.Payments)
	out.Items = cloneSlice(inv.Items)
	out.Attachments = cloneSlice(inv.Attachments)
	return &out
}

// Collection registro persistido completo.
type Collection struct {
	Suppliers []Supplier `json:"suppliers"`
	Invoices  []Invoice  `json:"invoices"`
}

// Clone copia profunda de la colección.
func (c *Collection) Clone() *Collection {
	if c == nil {
		return &Collection{}
	}
	out := &Collection{
		Suppliers: cloneSlice(c.Suppliers),
		Invoices:  make([]Invoice, 0, len(c.Invoices)),
	}
	for i := range c.Invoices {
		out.Invoices = append(out.Invoices, *c.Invoices[i].Clone())
	}
	return out
}

// cloneSlice copia s conservando la distinción nil / vacío.
func cloneSlice[T any](s []T) []T {
	if s == nil {
		return nil
	}
	return append(make([]T, 0, len(s)), s...)
}

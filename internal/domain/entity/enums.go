package entity

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jhoicas/notas-pagar/internal/domain"
)

// PaymentStatus estado de pago derivado (nunca se asigna a mano).
type PaymentStatus string

const (
	PaymentStatusOpen    PaymentStatus = "Em aberto"
	PaymentStatusPaid    PaymentStatus = "Paga"
	PaymentStatusOverdue PaymentStatus = "Vencida"
)

// FinancialStatus flujo documental manual, independiente del estado de pago.
type FinancialStatus string

const (
	FinancialStatusWaiting FinancialStatus = "Aguardando"
	FinancialStatusReceipt FinancialStatus = "Comprovante Pagto"
	FinancialStatusSent    FinancialStatus = "Enviado"
)

// PaymentMethod forma de pago.
type PaymentMethod string

const (
	PaymentMethodPix      PaymentMethod = "Pix"
	PaymentMethodBoleto   PaymentMethod = "Boleto"
	PaymentMethodCard     PaymentMethod = "Cartão"
	PaymentMethodTransfer PaymentMethod = "Transferência"
	PaymentMethodCash     PaymentMethod = "Dinheiro"
)

// PaymentCondition condición de pago de la nota.
type PaymentCondition string

const (
	PaymentConditionCash         PaymentCondition = "À vista"
	PaymentConditionInstallments PaymentCondition = "Parcelado"
)

// DocumentType familia del documento fiscal.
type DocumentType string

const (
	DocumentTypeNFe  DocumentType = "NF-e"
	DocumentTypeNFSe DocumentType = "NFS-e"
)

// AttachmentType clasificación de anexos.
type AttachmentType string

const (
	AttachmentTypeBoleto      AttachmentType = "Boleto bancário"
	AttachmentTypeComprovante AttachmentType = "Comprovante de pagamento"
	AttachmentTypeOutros      AttachmentType = "Outros documentos"
)

// SupplierStatus estado del proveedor.
type SupplierStatus string

const (
	SupplierStatusActive   SupplierStatus = "Ativo"
	SupplierStatusInactive SupplierStatus = "Inativo"
)

// Catálogos: etiqueta canónica + alias aceptados (en minúsculas).
var (
	paymentStatusAliases = map[string]PaymentStatus{
		"em aberto": PaymentStatusOpen, "open": PaymentStatusOpen, "aberta": PaymentStatusOpen,
		"paga": PaymentStatusPaid, "paid": PaymentStatusPaid, "pago": PaymentStatusPaid,
		"vencida": PaymentStatusOverdue, "overdue": PaymentStatusOverdue,
	}
	financialStatusAliases = map[string]FinancialStatus{
		"aguardando": FinancialStatusWaiting, "waiting": FinancialStatusWaiting,
		"comprovante pagto": FinancialStatusReceipt, "comprovante": FinancialStatusReceipt, "receipt": FinancialStatusReceipt,
		"enviado": FinancialStatusSent, "sent": FinancialStatusSent,
	}
	paymentMethodAliases = map[string]PaymentMethod{
		"pix":    PaymentMethodPix,
		"boleto": PaymentMethodBoleto,
		"cartão": PaymentMethodCard, "cartao": PaymentMethodCard, "card": PaymentMethodCard,
		"transferência": PaymentMethodTransfer, "transferencia": PaymentMethodTransfer, "ted": PaymentMethodTransfer, "transfer": PaymentMethodTransfer,
		"dinheiro": PaymentMethodCash, "cash": PaymentMethodCash,
	}
	paymentConditionAliases = map[string]PaymentCondition{
		"à vista": PaymentConditionCash, "a vista": PaymentConditionCash, "cash": PaymentConditionCash,
		"parcelado": PaymentConditionInstallments, "installments": PaymentConditionInstallments,
	}
	documentTypeAliases = map[string]DocumentType{
		"nf-e": DocumentTypeNFe, "nfe": DocumentTypeNFe,
		"nfs-e": DocumentTypeNFSe, "nfse": DocumentTypeNFSe,
	}
	attachmentTypeAliases = map[string]AttachmentType{
		"boleto bancário": AttachmentTypeBoleto, "boleto": AttachmentTypeBoleto,
		"comprovante de pagamento": AttachmentTypeComprovante, "comprovante": AttachmentTypeComprovante,
		"outros documentos": AttachmentTypeOutros, "outros": AttachmentTypeOutros,
	}
	supplierStatusAliases = map[string]SupplierStatus{
		"ativo": SupplierStatusActive, "active": SupplierStatusActive,
		"inativo": SupplierStatusInactive, "inactive": SupplierStatusInactive,
	}
)

func lookup[T ~string](kind string, aliases map[string]T, s string) (T, error) {
	if v, ok := aliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return v, nil
	}
	var zero T
	return zero, fmt.Errorf("%w: %s desconocido %q", domain.ErrInvalidInput, kind, s)
}

func ParsePaymentStatus(s string) (PaymentStatus, error) {
	return lookup("estado de pago", paymentStatusAliases, s)
}

func ParseFinancialStatus(s string) (FinancialStatus, error) {
	return lookup("estado financiero", financialStatusAliases, s)
}

func ParsePaymentMethod(s string) (PaymentMethod, error) {
	return lookup("forma de pago", paymentMethodAliases, s)
}

func ParsePaymentCondition(s string) (PaymentCondition, error) {
	return lookup("condición de pago", paymentConditionAliases, s)
}

func ParseDocumentType(s string) (DocumentType, error) {
	return lookup("tipo de documento", documentTypeAliases, s)
}

func ParseAttachmentType(s string) (AttachmentType, error) {
	return lookup("tipo de anexo", attachmentTypeAliases, s)
}

func ParseSupplierStatus(s string) (SupplierStatus, error) {
	return lookup("estado de proveedor", supplierStatusAliases, s)
}

// unmarshalEnum decodifica un string JSON y lo normaliza con parse.
// Vacío deja el valor cero (campo opcional en el registro persistido).
func unmarshalEnum[T ~string](b []byte, dst *T, parse func(string) (T, error)) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == "" {
		*dst = ""
		return nil
	}
	v, err := parse(s)
	if err != nil {
		return err
	}
	*dst = v
	return nil
}

func (s *PaymentStatus) UnmarshalJSON(b []byte) error {
	return unmarshalEnum(b, s, ParsePaymentStatus)
}

func (s *FinancialStatus) UnmarshalJSON(b []byte) error {
	return unmarshalEnum(b, s, ParseFinancialStatus)
}

func (m *PaymentMethod) UnmarshalJSON(b []byte) error {
	return unmarshalEnum(b, m, ParsePaymentMethod)
}

func (c *PaymentCondition) UnmarshalJSON(b []byte) error {
	return unmarshalEnum(b, c, ParsePaymentCondition)
}

func (t *DocumentType) UnmarshalJSON(b []byte) error {
	return unmarshalEnum(b, t, ParseDocumentType)
}

func (t *AttachmentType) UnmarshalJSON(b []byte) error {
	return unmarshalEnum(b, t, ParseAttachmentType)
}

func (s *SupplierStatus) UnmarshalJSON(b []byte) error {
	return unmarshalEnum(b, s, ParseSupplierStatus)
}

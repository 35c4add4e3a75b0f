// Package nfe contiene catálogos y validaciones del layout de la NF-e (modelo 55)
// y de las NFS-e municipales (padrón ABRASF), usados por el parser de documentos.
package nfe

// =============================================================================
// Marcadores de familia de documento
// =============================================================================

const (
	TagInfNFe  = "infNFe" // presente solo en NF-e de productos
	TagNFSe    = "Nfse"   // raíz ABRASF
	TagInfNFSe = "InfNfse"
)

// =============================================================================
// Grupo emit / prestador (emisor del documento)
// =============================================================================

var (
	IssuerTags    = []string{"emit", "PrestadorServico", "prest", "Prestador"}
	LegalNameTags = []string{"xNome", "RazaoSocial"}
	TradeNameTags = []string{"xFant", "NomeFantasia"}
	CNPJTags      = []string{"CNPJ", "Cnpj"}
	CPFTags       = []string{"CPF", "Cpf"}
)

// =============================================================================
// Identificación y totales
// =============================================================================

var (
	NumberTags    = []string{"nNF", "numero", "Numero"}
	SeriesTags    = []string{"serie", "Serie"}
	AccessKeyTags = []string{"chNFe"}
	IssueDateTags = []string{"dhEmi", "dEmi", "DataEmissao", "dCompet"}
	TotalTags     = []string{"vNF", "vServ", "ValorServicos"}
	TaxTotalTags  = []string{"vTotTrib"}
)

// =============================================================================
// Detalle (det/prod) y cobranza (cobr/dup)
// =============================================================================

const (
	TagDet       = "det"
	TagProd      = "prod"
	TagDup       = "dup"
	TagDupNumber = "nDup"
	TagDupDue    = "dVenc"
	TagDupAmount = "vDup"
	TagDueDate   = "dVenc" // vencimiento único (fuera de dup) como respaldo

	TagDescription = "xProd"
	TagQuantity    = "qCom"
	TagUnitValue   = "vUnCom"
	TagItemTotal   = "vProd"
	TagCFOP        = "CFOP"
	TagNCM         = "NCM"

	TagPaymentType = "tPag"
)

// =============================================================================
// Tabla tPag - Meio de pagamento (NT 2016.002 / NT 2020.006), códigos de uso frecuente
// =============================================================================

const (
	PaymentTypeCash        = "01" // Dinheiro
	PaymentTypeCreditCard  = "03" // Cartão de Crédito
	PaymentTypeDebitCard   = "04" // Cartão de Débito
	PaymentTypeBoleto      = "15" // Boleto Bancário
	PaymentTypeBankDeposit = "16" // Depósito Bancário
	PaymentTypePix         = "17" // PIX dinâmico
	PaymentTypeTransfer    = "18" // Transferência bancária, carteira digital
	PaymentTypePixStatic   = "20" // PIX estático
)

// PaymentTypeLabels etiqueta de forma de pago por código tPag.
// Códigos ausentes no tienen equivalente y el parser usa Boleto.
var PaymentTypeLabels = map[string]string{
	PaymentTypeCash:        "Dinheiro",
	PaymentTypeCreditCard:  "Cartão",
	PaymentTypeDebitCard:   "Cartão",
	PaymentTypeBoleto:      "Boleto",
	PaymentTypeBankDeposit: "Transferência",
	PaymentTypePix:         "Pix",
	PaymentTypeTransfer:    "Transferência",
	PaymentTypePixStatic:   "Pix",
}

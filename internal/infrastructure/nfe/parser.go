// Package nfe convierte XML de NF-e (modelo 55) y NFS-e (ABRASF y variantes municipales)
// en borradores de nota a pagar. No conoce proveedores ni notas existentes.
package nfe

import (
	"fmt"
	"io"
	"strings"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/notas-pagar/internal/domain"
	"github.com/jhoicas/notas-pagar/internal/domain/entity"
	catalog "github.com/jhoicas/notas-pagar/pkg/nfe"
)

// Notas fijas que acompañan a los registros importados.
const (
	NoteImported       = "Importado via XML"
	NoteSingleDue      = "Parcela única (XML)"
	noteInstallmentFmt = "Parcela %s"
)

// Parser extrae nota, proveedor, ítems y parcelas de un documento fiscal.
type Parser struct{}

// NewParser crea el parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse convierte un XML en borrador. Errores de estructura devuelven *domain.ParseError;
// campos numéricos ausentes o ilegibles valen 0 y fechas ilegibles quedan vacías.
func (p *Parser) Parse(raw []byte) (*entity.DraftInvoice, error) {
	doc := etree.NewDocument()
	doc.ReadSettings.CharsetReader = charsetReader
	if err := doc.ReadFromBytes(raw); err != nil {
		return nil, domain.NewParseError("XML mal formado", err)
	}
	root := doc.Root()
	if root == nil {
		return nil, domain.NewParseError("documento sin elemento raíz", nil)
	}

	infNFe := root.FindElement(".//" + catalog.TagInfNFe)
	if root.Tag == catalog.TagInfNFe {
		infNFe = root
	}
	docType := entity.DocumentTypeNFSe
	if infNFe != nil {
		docType = entity.DocumentTypeNFe
	}

	issuer := firstElement(root, catalog.IssuerTags...)
	if issuer == nil {
		return nil, domain.NewParseError("grupo del emisor (emit/prestador) ausente", nil)
	}

	supplier := entity.Supplier{
		LegalName: firstText(issuer, catalog.LegalNameTags...),
		TradeName: firstText(issuer, catalog.TradeNameTags...),
		TaxID:     firstText(issuer, catalog.CNPJTags...),
		Status:    entity.SupplierStatusActive,
	}
	if supplier.TaxID == "" {
		supplier.TaxID = firstText(issuer, catalog.CPFTags...)
	}

	issueDate := parseDate(firstText(root, catalog.IssueDateTags...))
	total := parseDecimal(firstText(root, catalog.TotalTags...))
	method := paymentMethod(firstText(root, catalog.TagPaymentType))

	inv := entity.Invoice{
		Number:          firstText(root, catalog.NumberTags...),
		Series:          firstText(root, catalog.SeriesTags...),
		AccessKey:       accessKey(root, infNFe),
		IssueDate:       issueDate,
		TotalAmount:     total,
		Taxes:           parseDecimal(firstText(root, catalog.TaxTotalTags...)),
		Type:            docType,
		PaymentMethod:   method,
		FinancialStatus: entity.FinancialStatusWaiting,
		Status:          entity.PaymentStatusOpen,
		Notes:           NoteImported,
		Items:           parseItems(root),
		Attachments:     []entity.Attachment{},
	}

	payments, dueDate := parseSchedule(root, total, issueDate, method)
	inv.Payments = payments
	inv.DueDate = dueDate
	inv.Installments = len(payments)
	inv.PaymentCondition = entity.PaymentConditionCash
	if len(payments) > 1 {
		inv.PaymentCondition = entity.PaymentConditionInstallments
	}

	return &entity.DraftInvoice{Invoice: inv, Supplier: supplier}, nil
}

// parseItems lee cada det/prod. Un det sin prod se ignora.
func parseItems(root *etree.Element) []entity.LineItem {
	dets := root.FindElements(".//" + catalog.TagDet)
	items := make([]entity.LineItem, 0, len(dets))
	for _, det := range dets {
		prod := det.FindElement(".//" + catalog.TagProd)
		if prod == nil {
			continue
		}
		items = append(items, entity.LineItem{
			Description: childText(prod, catalog.TagDescription),
			Quantity:    parseDecimal(childText(prod, catalog.TagQuantity)),
			UnitValue:   parseDecimal(childText(prod, catalog.TagUnitValue)),
			TotalValue:  parseDecimal(childText(prod, catalog.TagItemTotal)),
			CFOP:        childText(prod, catalog.TagCFOP),
			NCM:         childText(prod, catalog.TagNCM),
		})
	}
	return items
}

// parseSchedule convierte cada dup en una parcela programada y devuelve el vencimiento
// más temprano. Sin dup, sintetiza una parcela única por el total, con fecha dVenc o emisión.
func parseSchedule(root *etree.Element, total decimal.Decimal, issueDate entity.Date, method entity.PaymentMethod) ([]entity.PaymentRecord, entity.Date) {
	dups := root.FindElements(".//" + catalog.TagDup)
	if len(dups) == 0 {
		due := parseDate(firstText(root, catalog.TagDueDate))
		if due.IsZero() {
			due = issueDate
		}
		return []entity.PaymentRecord{{
			Date:        due,
			Amount:      total,
			Method:      method,
			Notes:       NoteSingleDue,
			IsScheduled: true,
		}}, due
	}

	payments := make([]entity.PaymentRecord, 0, len(dups))
	var minDue entity.Date
	for _, dup := range dups {
		due := parseDate(childText(dup, catalog.TagDupDue))
		if !due.IsZero() && (minDue.IsZero() || due.Before(minDue)) {
			minDue = due
		}
		payments = append(payments, entity.PaymentRecord{
			Date:        due,
			Amount:      parseDecimal(childText(dup, catalog.TagDupAmount)),
			Method:      method,
			Notes:       fmt.Sprintf(noteInstallmentFmt, childText(dup, catalog.TagDupNumber)),
			IsScheduled: true,
		})
	}
	if minDue.IsZero() {
		minDue = issueDate
	}
	return payments, minDue
}

// accessKey usa chNFe (protocolo de autorización); si falta, el atributo Id de infNFe ("NFe" + 44 dígitos).
func accessKey(root, infNFe *etree.Element) string {
	if key := firstText(root, catalog.AccessKeyTags...); key != "" {
		return key
	}
	if infNFe == nil {
		return ""
	}
	id := catalog.Digits(infNFe.SelectAttrValue("Id", ""))
	if len(id) == 44 {
		return id
	}
	return ""
}

// paymentMethod normaliza el código tPag; códigos desconocidos o ausentes quedan en Boleto.
func paymentMethod(code string) entity.PaymentMethod {
	if label, ok := catalog.PaymentTypeLabels[strings.TrimSpace(code)]; ok {
		if m, err := entity.ParsePaymentMethod(label); err == nil {
			return m
		}
	}
	return entity.PaymentMethodBoleto
}

// firstElement primer descendiente de el cuyo tag coincide, respetando el orden de preferencia.
func firstElement(el *etree.Element, tags ...string) *etree.Element {
	for _, tag := range tags {
		if el.Tag == tag {
			return el
		}
		if found := el.FindElement(".//" + tag); found != nil {
			return found
		}
	}
	return nil
}

// firstText texto del primer tag encontrado (por orden de preferencia) con contenido.
func firstText(el *etree.Element, tags ...string) string {
	for _, tag := range tags {
		for _, found := range el.FindElements(".//" + tag) {
			if text := strings.TrimSpace(found.Text()); text != "" {
				return text
			}
		}
	}
	return ""
}

// childText texto del primer descendiente con ese tag, o "".
func childText(el *etree.Element, tag string) string {
	if found := el.FindElement(".//" + tag); found != nil {
		return strings.TrimSpace(found.Text())
	}
	return ""
}

func parseDecimal(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero
	}
	if v, err := decimal.NewFromString(s); err == nil {
		return v
	}
	// Algunas prefeituras publican "1.234,56".
	if strings.Contains(s, ",") {
		normalized := strings.ReplaceAll(strings.ReplaceAll(s, ".", ""), ",", ".")
		if v, err := decimal.NewFromString(normalized); err == nil {
			return v
		}
	}
	return decimal.Zero
}

func parseDate(s string) entity.Date {
	d, err := entity.ParseDate(s)
	if err != nil {
		return entity.Date{}
	}
	return d
}

// charsetReader decodifica XML declarados en ISO-8859-1 / Windows-1252 (frecuentes en NFS-e).
func charsetReader(label string, input io.Reader) (io.Reader, error) {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "iso-8859-1", "iso8859-1", "latin1", "latin-1":
		return transform.NewReader(input, charmap.ISO8859_1.NewDecoder()), nil
	case "windows-1252", "cp1252":
		return transform.NewReader(input, charmap.Windows1252.NewDecoder()), nil
	case "", "utf-8", "utf8":
		return input, nil
	default:
		return nil, fmt.Errorf("codificación no soportada %q", label)
	}
}

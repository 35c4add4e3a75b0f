package entity

// DraftInvoice resultado del parser: la nota (sin ID ni proveedor resuelto)
// y el bloque del emisor tal como vino en el XML.
type DraftInvoice struct {
	Invoice  Invoice
	Supplier Supplier
}

package entity

// Supplier proveedor (emisor de los documentos fiscales).
// La identidad para deduplicación es TaxID (CNPJ o CPF), no ID.
type Supplier struct {
	ID        string         `json:"id"`
	LegalName string         `json:"razaoSocial"`
	TradeName string         `json:"nomeFantasia,omitempty"`
	TaxID     string         `json:"cnpjCpf"`
	Email     string         `json:"email,omitempty"`
	Phone     string         `json:"phone,omitempty"`
	Contact   string         `json:"contato,omitempty"`
	Notes     string         `json:"notes,omitempty"`
	Status    SupplierStatus `json:"status"`
}

// DisplayName nombre para listados: razón social o, si falta, nombre fantasía.
func (s *Supplier) DisplayName() string {
	if s == nil {
		return ""
	}
	if s.LegalName != "" {
		return s.LegalName
	}
	return s.TradeName
}

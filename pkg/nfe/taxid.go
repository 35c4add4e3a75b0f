package nfe

import (
	"fmt"
	"unicode"
)

// pesos módulo 11 de la Receita Federal.
var (
	cnpjWeights1 = []int{5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
	cnpjWeights2 = []int{6, 5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
)

// Digits devuelve solo los dígitos de s ("12.345.678/0001-95" -> "12345678000195").
func Digits(s string) string {
	out := make([]byte, 0, len(s))
	for _, r := range s {
		if unicode.IsDigit(r) && r < unicode.MaxASCII {
			out = append(out, byte(r))
		}
	}
	return string(out)
}

// ValidateTaxID valida un CNPJ (14 dígitos) o CPF (11 dígitos), con o sin máscara.
func ValidateTaxID(taxID string) error {
	digits := Digits(taxID)
	switch len(digits) {
	case 14:
		return ValidateCNPJ(digits)
	case 11:
		return ValidateCPF(digits)
	default:
		return fmt.Errorf("nfe: documento debe tener 11 (CPF) o 14 (CNPJ) dígitos, se encontraron %d", len(digits))
	}
}

// ValidateCNPJ valida los dos dígitos verificadores del CNPJ.
func ValidateCNPJ(cnpj string) error {
	digits := Digits(cnpj)
	if len(digits) != 14 {
		return fmt.Errorf("nfe: CNPJ debe tener 14 dígitos, se encontraron %d", len(digits))
	}
	if allSame(digits) {
		return fmt.Errorf("nfe: CNPJ inválido %s", digits)
	}
	dv1 := mod11Digit(digits[:12], cnpjWeights1)
	dv2 := mod11Digit(digits[:12]+string(dv1), cnpjWeights2)
	if digits[12] != dv1 || digits[13] != dv2 {
		return fmt.Errorf("nfe: dígitos verificadores del CNPJ inválidos: esperado %c%c, recibido %s", dv1, dv2, digits[12:])
	}
	return nil
}

// ValidateCPF valida los dos dígitos verificadores del CPF.
func ValidateCPF(cpf string) error {
	digits := Digits(cpf)
	if len(digits) != 11 {
		return fmt.Errorf("nfe: CPF debe tener 11 dígitos, se encontraron %d", len(digits))
	}
	if allSame(digits) {
		return fmt.Errorf("nfe: CPF inválido %s", digits)
	}
	dv1 := cpfDigit(digits[:9])
	dv2 := cpfDigit(digits[:10])
	if digits[9] != dv1 || digits[10] != dv2 {
		return fmt.Errorf("nfe: dígitos verificadores del CPF inválidos: esperado %c%c, recibido %s", dv1, dv2, digits[9:])
	}
	return nil
}

// ValidateAccessKey valida la chave de acesso de 44 dígitos (dígito final módulo 11, pesos 2..9).
func ValidateAccessKey(key string) error {
	digits := Digits(key)
	if len(digits) != 44 {
		return fmt.Errorf("nfe: chave de acesso debe tener 44 dígitos, se encontraron %d", len(digits))
	}
	var sum, weight int = 0, 2
	for i := 42; i >= 0; i-- {
		sum += int(digits[i]-'0') * weight
		weight++
		if weight > 9 {
			weight = 2
		}
	}
	expected := byte('0')
	if r := sum % 11; r >= 2 {
		expected = byte('0' + (11 - r))
	}
	if digits[43] != expected {
		return fmt.Errorf("nfe: dígito verificador de la chave inválido: esperado %c, recibido %c", expected, digits[43])
	}
	return nil
}

func mod11Digit(base string, weights []int) byte {
	var sum int
	for i := range base {
		sum += int(base[i]-'0') * weights[i]
	}
	r := sum % 11
	if r < 2 {
		return '0'
	}
	return byte('0' + (11 - r))
}

func cpfDigit(base string) byte {
	var sum int
	weight := len(base) + 1
	for i := range base {
		sum += int(base[i]-'0') * weight
		weight--
	}
	r := (sum * 10) % 11
	if r == 10 {
		r = 0
	}
	return byte('0' + r)
}

func allSame(s string) bool {
	for i := 1; i < len(s); i++ {
		if s[i] != s[0] {
			return false
		}
	}
	return true
}

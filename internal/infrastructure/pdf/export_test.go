package pdf

// Exporta helpers internos para los tests del paquete pdf_test.
var FormatMoney = formatMoney

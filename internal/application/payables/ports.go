// Package payables gestiona el registro de notas a pagar: repositorio con persistencia
// inyectada, importación en lote de XML y listados.
package payables

import (
	"time"

	"github.com/jhoicas/notas-pagar/internal/domain/entity"
)

// DocumentParser convierte un documento fiscal (XML) en borrador de nota.
// Los errores de estructura deben envolver domain.ErrParse.
type DocumentParser interface {
	Parse(raw []byte) (*entity.DraftInvoice, error)
}

// Clock devuelve el instante actual; la fecha de referencia del estado de pago sale de aquí.
type Clock func() time.Time

// FixedClock reloj detenido en t (tests y CLI con --as-of).
func FixedClock(t time.Time) Clock {
	return func() time.Time { return t }
}

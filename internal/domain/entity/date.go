package entity

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// DateLayout formato de fecha calendario usado en XML, JSON y exportaciones.
const DateLayout = "2006-01-02"

// Date fecha calendario (sin hora ni zona). El valor cero representa "sin fecha".
type Date struct {
	t time.Time
}

// NewDate construye una fecha a partir de año, mes y día.
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf toma solo la parte de fecha de t, en su propia zona horaria.
func DateOf(t time.Time) Date {
	if t.IsZero() {
		return Date{}
	}
	y, m, d := t.Date()
	return NewDate(y, m, d)
}

// ParseDate interpreta "YYYY-MM-DD". Si s trae hora ISO ("2024-02-01T10:00:00-03:00"),
// solo se usa la parte de fecha. Cadena vacía devuelve la fecha cero sin error.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}, nil
	}
	if i := strings.IndexByte(s, 'T'); i > 0 {
		s = s[:i]
	}
	if len(s) > len(DateLayout) {
		s = s[:len(DateLayout)]
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("fecha inválida %q: %w", s, err)
	}
	return Date{t: t}, nil
}

// MustParseDate como ParseDate pero entra en pánico; solo para tests y constantes.
func MustParseDate(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

// IsZero indica si la fecha no fue informada.
func (d Date) IsZero() bool { return d.t.IsZero() }

// Time devuelve la medianoche UTC de la fecha.
func (d Date) Time() time.Time { return d.t }

// Before compara por día.
func (d Date) Before(o Date) bool { return d.t.Before(o.t) }

// After compara por día.
func (d Date) After(o Date) bool { return d.t.After(o.t) }

// Equal compara por día.
func (d Date) Equal(o Date) bool { return d.t.Equal(o.t) }

// AddDays suma n días.
func (d Date) AddDays(n int) Date { return Date{t: d.t.AddDate(0, 0, n)} }

// Month devuelve "YYYY-MM" (agrupación mensual del dashboard).
func (d Date) Month() string {
	if d.IsZero() {
		return ""
	}
	return d.t.Format("2006-01")
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.t.Format(DateLayout)
}

// MarshalJSON serializa como "YYYY-MM-DD" o "" si es cero.
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON acepta "YYYY-MM-DD", fecha-hora ISO o "".
func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

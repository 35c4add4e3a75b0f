package export

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/notas-pagar/internal/application/dto"
	"github.com/jhoicas/notas-pagar/internal/domain"
)

// Format formato de exportación.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
	FormatPDF  Format = "pdf"
)

// ParseFormat valida el formato (sin distinguir mayúsculas).
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatCSV, FormatXLSX, FormatPDF:
		return f, nil
	default:
		return "", fmt.Errorf("%w: formato de exportación %q (csv, xlsx, pdf)", domain.ErrInvalidInput, s)
	}
}

// ContentType tipo MIME de descarga.
func (f Format) ContentType() string {
	switch f {
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case FormatPDF:
		return "application/pdf"
	default:
		return "text/csv; charset=utf-8"
	}
}

// PDFRenderer genera el PDF del reporte.
type PDFRenderer interface {
	GenerateReportPDF(ctx context.Context, r *dto.ReportDTO) ([]byte, error)
}

// File archivo exportado listo para descargar o escribir a disco.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// Exporter elige el serializador según el formato.
type Exporter struct {
	pdf PDFRenderer
}

// NewExporter construye el exportador.
func NewExporter(pdf PDFRenderer) *Exporter {
	return &Exporter{pdf: pdf}
}

// Export serializa el reporte. El nombre usa la fecha de generación del reporte.
func (e *Exporter) Export(ctx context.Context, format Format, r *dto.ReportDTO) (*File, error) {
	var buf bytes.Buffer
	switch format {
	case FormatCSV:
		if err := WriteCSV(&buf, r); err != nil {
			return nil, err
		}
	case FormatXLSX:
		if err := WriteXLSX(&buf, r); err != nil {
			return nil, err
		}
	case FormatPDF:
		data, err := e.pdf.GenerateReportPDF(ctx, r)
		if err != nil {
			return nil, err
		}
		buf.Write(data)
	default:
		return nil, fmt.Errorf("%w: formato %q", domain.ErrInvalidInput, format)
	}
	return &File{
		Name:        Filename(r.GeneratedAt, string(format)),
		ContentType: format.ContentType(),
		Data:        buf.Bytes(),
	}, nil
}

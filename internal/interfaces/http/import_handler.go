package http

import (
	"errors"
	"io"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/notas-pagar/internal/application/dto"
	"github.com/jhoicas/notas-pagar/internal/application/payables"
)

// maxImportFileSize tope por archivo XML.
const maxImportFileSize = 5 << 20

// ImportHandler recibe XML de NF-e/NFS-e.
type ImportHandler struct {
	importer *payables.Importer
}

// NewImportHandler construye el handler.
func NewImportHandler(importer *payables.Importer) *ImportHandler {
	return &ImportHandler{importer: importer}
}

// Import importa uno o varios XML.
// @Summary      Importar XML
// @Description  multipart/form-data con uno o más campos "files", o el XML crudo en el cuerpo (nombre en X-Filename).
// @Tags         import
// @Accept       mpfd
// @Produce      json
// @Param        files  formData  file  false  "XML de NF-e o NFS-e"
// @Success      200    {object}  payables.ImportResult
// @Failure      400    {object}  dto.ErrorResponse
// @Failure      413    {object}  dto.ErrorResponse
// @Router       /api/imports [post]
func (h *ImportHandler) Import(c *fiber.Ctx) error {
	files, err := readImportFiles(c)
	if err != nil {
		status := fiber.StatusBadRequest
		var fe *fiber.Error
		if errors.As(err, &fe) {
			status = fe.Code
		}
		return c.Status(status).JSON(dto.ErrorResponse{Code: "INVALID_UPLOAD", Message: err.Error()})
	}
	if len(files) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_UPLOAD", Message: "no se recibieron archivos"})
	}
	res := h.importer.Import(c.UserContext(), files)
	return c.JSON(res)
}

func readImportFiles(c *fiber.Ctx) ([]payables.ImportFile, error) {
	form, err := c.MultipartForm()
	if err != nil {
		// Cuerpo crudo.
		body := c.Body()
		if len(body) == 0 {
			return nil, nil
		}
		name := c.Get("X-Filename", "documento.xml")
		return []payables.ImportFile{{Name: name, Content: append([]byte(nil), body...)}}, nil
	}
	headers := form.File["files"]
	out := make([]payables.ImportFile, 0, len(headers))
	for _, fh := range headers {
		if fh.Size > maxImportFileSize {
			return nil, fiber.NewError(fiber.StatusRequestEntityTooLarge, fh.Filename+": archivo demasiado grande")
		}
		data, err := readPart(fh)
		if err != nil {
			return nil, err
		}
		out = append(out, payables.ImportFile{Name: fh.Filename, Content: data})
	}
	return out, nil
}

func readPart(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

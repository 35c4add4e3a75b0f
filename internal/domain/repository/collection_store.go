package repository

import (
	"context"

	"github.com/jhoicas/notas-pagar/internal/domain/entity"
)

// CollectionStore define el puerto de persistencia del registro completo
// {suppliers, invoices}, guardado bajo una única clave versionada.
type CollectionStore interface {
	// Load devuelve la colección guardada; si no existe, una colección vacía sin error.
	Load(ctx context.Context) (*entity.Collection, error)
	// Save reemplaza el registro completo. Debe ser durable al retornar.
	Save(ctx context.Context, c *entity.Collection) error
}

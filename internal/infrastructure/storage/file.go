package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/jhoicas/notas-pagar/internal/domain/entity"
)

// FileStore guarda el registro en <dir>/<key>.json. La escritura es atómica (temporal + rename).
type FileStore struct {
	path string
}

// NewFileStore crea el directorio si no existe.
func NewFileStore(dir, key string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: crear directorio %s: %w", dir, err)
	}
	return &FileStore{path: filepath.Join(dir, key+".json")}, nil
}

// Path ruta del archivo del registro.
func (s *FileStore) Path() string { return s.path }

// Load lee el archivo; si no existe devuelve una colección vacía.
func (s *FileStore) Load(ctx context.Context) (*entity.Collection, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return &entity.Collection{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: leer %s: %w", s.path, err)
	}
	c, err := decode(b)
	if err != nil {
		return nil, fmt.Errorf("storage: registro corrupto en %s: %w", s.path, err)
	}
	return c, nil
}

// Save escribe en un temporal del mismo directorio, hace fsync y lo renombra sobre el destino.
func (s *FileStore) Save(ctx context.Context, c *entity.Collection) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b, err := encode(c)
	if err != nil {
		return fmt.Errorf("storage: serializar: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("storage: crear temporal: %w", err)
	}
	defer os.Remove(tmp.Name()) // no-op tras el rename

	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		return fmt.Errorf("storage: escribir: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("storage: sync: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("storage: cerrar temporal: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("storage: reemplazar %s: %w", s.path, err)
	}
	return nil
}

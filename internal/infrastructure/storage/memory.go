// Package storage implementa repository.CollectionStore sobre archivo, Redis y memoria.
// Todos guardan el registro {suppliers, invoices} como un único JSON bajo una clave versionada.
package storage

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/jhoicas/notas-pagar/internal/domain/entity"
)

// MemoryStore guarda el JSON serializado en memoria. Serializa igual que los demás
// drivers, de modo que los tests ejercitan el mismo formato persistido.
type MemoryStore struct {
	mu      sync.Mutex
	payload []byte
	saves   int
}

// NewMemoryStore crea un store vacío.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Load devuelve la colección guardada o una vacía.
func (s *MemoryStore) Load(_ context.Context) (*entity.Collection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return decode(s.payload)
}

// Save reemplaza el registro.
func (s *MemoryStore) Save(_ context.Context, c *entity.Collection) error {
	b, err := encode(c)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.payload = b
	s.saves++
	s.mu.Unlock()
	return nil
}

// Saves cantidad de Save exitosos.
func (s *MemoryStore) Saves() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}

// Raw JSON persistido (nil si nunca se guardó).
func (s *MemoryStore) Raw() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]byte(nil), s.payload...)
}

func encode(c *entity.Collection) ([]byte, error) {
	if c == nil {
		c = &entity.Collection{}
	}
	out := c.Clone()
	if out.Suppliers == nil {
		out.Suppliers = []entity.Supplier{}
	}
	return json.Marshal(out)
}

func decode(b []byte) (*entity.Collection, error) {
	c := &entity.Collection{}
	if len(b) == 0 {
		return c, nil
	}
	if err := json.Unmarshal(b, c); err != nil {
		return nil, err
	}
	return c, nil
}

package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/notas-pagar/internal/domain/entity"
	"github.com/jhoicas/notas-pagar/internal/domain/repository"
)

// Asegura que AppStateStore implementa repository.CollectionStore.
var _ repository.CollectionStore = (*AppStateStore)(nil)

// SchemaSQL tabla del registro. Una fila por clave versionada.
const SchemaSQL = `
	CREATE TABLE IF NOT EXISTS app_state (
		storage_key TEXT PRIMARY KEY,
		payload     JSONB NOT NULL,
		updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
	)`

// DB subconjunto de *pgxpool.Pool que usa el store.
type DB interface {
	TxBeginner
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// AppStateStore guarda {suppliers, invoices} como JSONB en app_state.
type AppStateStore struct {
	db  DB
	tx  *TxRunner
	key string
}

// NewAppStateStore construye el adaptador para la clave indicada.
func NewAppStateStore(db DB, key string) *AppStateStore {
	return &AppStateStore{db: db, tx: NewTxRunner(db), key: key}
}

// EnsureSchema crea la tabla si no existe.
func (s *AppStateStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, SchemaSQL); err != nil {
		return fmt.Errorf("crear tabla app_state: %w", err)
	}
	return nil
}

// Load lee el registro; sin fila (o sin tabla) devuelve una colección vacía.
func (s *AppStateStore) Load(ctx context.Context) (*entity.Collection, error) {
	var payload []byte
	err := s.db.QueryRow(ctx, `SELECT payload FROM app_state WHERE storage_key = $1`, s.key).Scan(&payload)
	if err != nil {
		if isNoRows(err) || isUndefinedTable(err) {
			return &entity.Collection{}, nil
		}
		return nil, fmt.Errorf("get app_state %s: %w", s.key, err)
	}
	c := &entity.Collection{}
	if err := json.Unmarshal(payload, c); err != nil {
		return nil, fmt.Errorf("registro corrupto en app_state %s: %w", s.key, err)
	}
	return c, nil
}

// Save reemplaza el registro dentro de una transacción (upsert por clave).
func (s *AppStateStore) Save(ctx context.Context, c *entity.Collection) error {
	if c == nil {
		c = &entity.Collection{}
	}
	payload, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("serializar registro: %w", err)
	}
	return s.tx.Run(ctx, func(tx pgx.Tx) error {
		query := `
			INSERT INTO app_state (storage_key, payload, updated_at)
			VALUES ($1, $2, now())
			ON CONFLICT (storage_key) DO UPDATE
			SET payload = EXCLUDED.payload, updated_at = EXCLUDED.updated_at`
		if _, err := tx.Exec(ctx, query, s.key, payload); err != nil {
			return fmt.Errorf("upsert app_state %s: %w", s.key, err)
		}
		return nil
	})
}

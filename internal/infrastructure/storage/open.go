package storage

import (
	"context"
	"fmt"

	"github.com/jhoicas/notas-pagar/internal/domain/repository"
	"github.com/jhoicas/notas-pagar/internal/infrastructure/postgres"
	"github.com/jhoicas/notas-pagar/pkg/config"
	"github.com/jhoicas/notas-pagar/pkg/logger"
)

// Open construye el store del driver configurado. close libera conexiones; nunca es nil.
func Open(ctx context.Context, cfg *config.Config, log *logger.Logger) (repository.CollectionStore, func(), error) {
	noop := func() {}
	switch cfg.Storage.Driver {
	case config.StorageFile, "":
		s, err := NewFileStore(cfg.Storage.Dir, cfg.Storage.Key)
		if err != nil {
			return nil, noop, err
		}
		log.Info().Str("path", s.Path()).Msg("almacenamiento en archivo")
		return s, noop, nil

	case config.StoragePostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, noop, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		s := postgres.NewAppStateStore(pool, cfg.Storage.Key)
		if err := s.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, noop, err
		}
		log.Info().Str("key", cfg.Storage.Key).Msg("almacenamiento en PostgreSQL")
		return s, pool.Close, nil

	case config.StorageRedis:
		rdb, err := NewRedisClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return nil, noop, err
		}
		log.Info().Str("addr", cfg.Redis.Addr).Str("key", cfg.Storage.Key).Msg("almacenamiento en Redis")
		return NewRedisStore(rdb, cfg.Storage.Key), func() { _ = rdb.Close() }, nil

	case config.StorageMemory:
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al salir")
		return NewMemoryStore(), noop, nil

	default:
		return nil, noop, fmt.Errorf("storage: driver desconocido %q", cfg.Storage.Driver)
	}
}

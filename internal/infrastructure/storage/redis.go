package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/notas-pagar/internal/domain/entity"
)

// RedisClient subconjunto de *redis.Client que usa el store.
type RedisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// RedisStore guarda el registro como string JSON bajo la clave configurada, sin expiración.
type RedisStore struct {
	client RedisClient
	key    string
}

// NewRedisStore construye el store sobre un cliente ya conectado.
func NewRedisStore(client RedisClient, key string) *RedisStore {
	return &RedisStore{client: client, key: key}
}

// NewRedisClient abre el cliente y verifica la conexión con PING.
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("storage: redis %s: %w", addr, err)
	}
	return rdb, nil
}

// Load lee la clave; si no existe devuelve una colección vacía.
func (s *RedisStore) Load(ctx context.Context) (*entity.Collection, error) {
	b, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return &entity.Collection{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: redis GET %s: %w", s.key, err)
	}
	c, err := decode(b)
	if err != nil {
		return nil, fmt.Errorf("storage: registro corrupto en %s: %w", s.key, err)
	}
	return c, nil
}

// Save reemplaza el valor de la clave.
func (s *RedisStore) Save(ctx context.Context, c *entity.Collection) error {
	b, err := encode(c)
	if err != nil {
		return fmt.Errorf("storage: serializar: %w", err)
	}
	if err := s.client.Set(ctx, s.key, b, 0).Err(); err != nil {
		return fmt.Errorf("storage: redis SET %s: %w", s.key, err)
	}
	return nil
}

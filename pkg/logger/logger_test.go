package logger_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/notas-pagar/pkg/logger"
)

func TestNew_JSONConComponente(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Env: "production", Level: "info", Output: &buf})

	log.WithComponent("importer").Info().Str("file", "a.xml").Msg("lote importado")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "importer", entry["component"])
	assert.Equal(t, "a.xml", entry["file"])
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "lote importado", entry["message"])
}

func TestNew_NivelFiltra(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Env: "production", Level: "warn", Output: &buf})

	log.Info().Msg("no sale")
	assert.Zero(t, buf.Len())

	log.Warn().Msg("sale")
	assert.NotZero(t, buf.Len())
}

func TestNop_Descarta(t *testing.T) {
	assert.NotPanics(t, func() {
		logger.Nop().WithComponent("x").Error().Msg("nada")
	})
}

package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leondli/centriq/internal/infrastructure/config"
)

func TestNewWritesServiceField(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "json")
	l.Info().Str("component", "call_usecase").Msg("Call created")

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, Service, line["service"])
	assert.Equal(t, "call_usecase", line["component"])
	assert.Equal(t, "Call created", line["message"])
}

func TestInitFileOutput(t *testing.T) {
	prev := zerolog.GlobalLevel()
	t.Cleanup(func() { zerolog.SetGlobalLevel(prev) })
	path := filepath.Join(t.TempDir(), "centriq.log")

	closer, err := Init(&config.LogConfig{Level: "warn", Format: "json", Output: "file", FilePath: path})
	require.NoError(t, err)
	assert.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())

	l := NewLogger("test")
	l.Warn().Msg("written")
	l.Info().Msg("filtered")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "written")
	assert.NotContains(t, string(data), "filtered")
}

func TestInitFileOutputRequiresPath(t *testing.T) {
	_, err := Init(&config.LogConfig{Output: "file"})
	assert.Error(t, err)
}

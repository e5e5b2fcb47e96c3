package client

import (
	"errors"
	"strings"
	"testing"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zucenko/parchis/board"
	"github.com/zucenko/parchis/model"
)

func TestReadConfig_OverridesDefaults(t *testing.T) {
	cfg, err := ReadConfig(strings.NewReader(`
# board
cell_width = 60
cell_height=40

server_url = ws://example.org/play
player_name = Candy
player_color = AZUL
move_duration_ms = 250
log_level = debug
`))
	require.NoError(t, err)
	assert.Equal(t, 60.0, cfg.Geometry.CellWidth)
	assert.Equal(t, 40.0, cfg.Geometry.CellHeight)
	assert.Equal(t, 1180.0, cfg.Geometry.CanvasWidth)
	assert.Equal(t, "ws://example.org/play", cfg.ServerURL)
	assert.Equal(t, "Candy", cfg.PlayerName)
	assert.True(t, cfg.HasColor)
	assert.Equal(t, board.Blue, cfg.PlayerColor)
	assert.Equal(t, 250*time.Millisecond, cfg.MoveDuration)
	assert.Equal(t, 15.0, cfg.HopHeight)
	assert.Equal(t, log.DebugLevel, cfg.LogLevel)
}

func TestReadConfig_Errors(t *testing.T) {
	for name, input := range map[string]string{
		"no equals":   "cell_width 57",
		"unknown key": "cell_depth = 3",
		"bad number":  "cell_width = wide",
		"bad color":   "player_color = MORADO",
		"bad level":   "log_level = loud",
		"negative ms": "move_duration_ms = -5",
	} {
		_, err := ReadConfig(strings.NewReader("# header\n" + input))
		require.Error(t, err, name)
		assert.Contains(t, err.Error(), "line 2", name)
	}

	_, err := ReadConfig(strings.NewReader("player_color = ROSA"))
	assert.True(t, errors.Is(err, model.ErrUnknownColor))
}

func TestApplyEnv(t *testing.T) {
	cfg := DefaultConfig()
	env := map[string]string{
		"PARCHIS_SERVER_URL": "ws://relay:9000/play",
		"PARCHIS_NAME":       "Eva",
		"PARCHIS_COLOR":      "verde",
	}
	require.NoError(t, cfg.ApplyEnv(func(k string) string { return env[k] }))
	assert.Equal(t, "ws://relay:9000/play", cfg.ServerURL)
	assert.Equal(t, "Eva", cfg.PlayerName)
	assert.Equal(t, board.Green, cfg.PlayerColor)
	assert.Equal(t, log.InfoLevel, cfg.LogLevel)

	err := cfg.ApplyEnv(func(k string) string {
		if k == "LOG_LEVEL" {
			return "nope"
		}
		return ""
	})
	assert.Error(t, err)
}

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv("PARCHIS_NAME", "")
	t.Setenv("PARCHIS_COLOR", "")
	t.Setenv("PARCHIS_SERVER_URL", "")
	t.Setenv("LOG_LEVEL", "")
	cfg, err := LoadConfig(t.TempDir() + "/absent.cfg")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

package client

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/zucenko/parchis/board"
	"github.com/zucenko/parchis/model"
)

const ConfigFile = "parchis.cfg"

type Config struct {
	Geometry     board.Geometry
	ServerURL    string
	PlayerName   string
	PlayerColor  board.Color
	HasColor     bool
	MoveDuration time.Duration
	HopHeight    float64
	LogLevel     log.Level
}

func DefaultConfig() Config {
	return Config{
		Geometry: board.Geometry{
			CellWidth:    57,
			CellHeight:   38,
			CanvasWidth:  1180,
			CanvasHeight: 880,
		},
		ServerURL:    "ws://localhost:8080/play",
		MoveDuration: 600 * time.Millisecond,
		HopHeight:    15,
		LogLevel:     log.InfoLevel,
	}
}

// LoadConfig reads path over the defaults, then applies the environment.
// A missing file is not an error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	file, err := os.Open(path)
	switch {
	case err == nil:
		defer file.Close()
		if cfg, err = ReadConfig(file); err != nil {
			return cfg, fmt.Errorf("%s: %w", path, err)
		}
	case os.IsNotExist(err):
		log.Infof("LoadConfig %s not found, using defaults", path)
	default:
		return cfg, err
	}
	if err := cfg.ApplyEnv(os.Getenv); err != nil {
		return cfg, err
	}
	return cfg, cfg.Geometry.Validate()
}

// ReadConfig parses "key = value" lines over the defaults. Blank lines and
// lines starting with # are skipped.
func ReadConfig(reader io.Reader) (Config, error) {
	cfg := DefaultConfig()
	scanner := bufio.NewScanner(reader)
	scanner.Split(bufio.ScanLines)
	line := 0
	for scanner.Scan() {
		line++
		s := strings.TrimSpace(scanner.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		eq := strings.IndexByte(s, '=')
		if eq < 0 {
			return cfg, fmt.Errorf("line %d: expected key = value", line)
		}
		key := strings.TrimSpace(s[:eq])
		value := strings.TrimSpace(s[eq+1:])
		if err := cfg.set(key, value); err != nil {
			return cfg, fmt.Errorf("line %d: %w", line, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// ApplyEnv overrides connection and identity settings from the environment.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	for key, env := range map[string]string{
		"server_url":   "PARCHIS_SERVER_URL",
		"player_name":  "PARCHIS_NAME",
		"player_color": "PARCHIS_COLOR",
		"log_level":    "LOG_LEVEL",
	} {
		if v := getenv(env); v != "" {
			if err := c.set(key, v); err != nil {
				return fmt.Errorf("%s: %w", env, err)
			}
		}
	}
	return nil
}

func (c *Config) set(key, value string) error {
	switch key {
	case "cell_width":
		return parseFloat(value, &c.Geometry.CellWidth)
	case "cell_height":
		return parseFloat(value, &c.Geometry.CellHeight)
	case "canvas_width":
		return parseFloat(value, &c.Geometry.CanvasWidth)
	case "canvas_height":
		return parseFloat(value, &c.Geometry.CanvasHeight)
	case "hop_height":
		return parseFloat(value, &c.HopHeight)
	case "server_url":
		c.ServerURL = value
	case "player_name":
		c.PlayerName = value
	case "player_color":
		if value == "" {
			c.HasColor = false
			return nil
		}
		color, err := model.ParseColor(value)
		if err != nil {
			return err
		}
		c.PlayerColor, c.HasColor = color, true
	case "move_duration_ms":
		ms, err := strconv.Atoi(value)
		if err != nil || ms < 0 {
			return fmt.Errorf("move_duration_ms %q", value)
		}
		c.MoveDuration = time.Duration(ms) * time.Millisecond
	case "log_level":
		level, err := log.ParseLevel(value)
		if err != nil {
			return err
		}
		c.LogLevel = level
	default:
		return fmt.Errorf("unknown key %q", key)
	}
	return nil
}

func parseFloat(value string, dst *float64) error {
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return err
	}
	*dst = f
	return nil
}

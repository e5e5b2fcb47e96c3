package server

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
)

const ConfigFile = "relay.cfg"

type Config struct {
	Port        string
	BrokerAddr  string
	DialTimeout time.Duration
}

func DefaultConfig() Config {
	return Config{
		Port:        "8080",
		BrokerAddr:  "127.0.0.1:5000",
		DialTimeout: 2 * time.Second,
	}
}

// Load reads the optional relay.cfg at path, then PORT, BROKER_ADDR and
// DIAL_TIMEOUT_MS from the environment.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()
	file, err := os.Open(path)
	switch {
	case err == nil:
		defer file.Close()
		if cfg, err = read(file); err != nil {
			return cfg, fmt.Errorf("%s: %w", path, err)
		}
	case os.IsNotExist(err):
	default:
		return cfg, err
	}
	for key, env := range map[string]string{
		"port":            "PORT",
		"broker_addr":     "BROKER_ADDR",
		"dial_timeout_ms": "DIAL_TIMEOUT_MS",
	} {
		if v := os.Getenv(env); v != "" {
			if err := cfg.set(key, v); err != nil {
				return cfg, fmt.Errorf("%s: %w", env, err)
			}
		}
	}
	log.Infof("relay config port:%s broker:%s dial timeout:%s", cfg.Port, cfg.BrokerAddr, cfg.DialTimeout)
	return cfg, nil
}

func read(reader io.Reader) (Config, error) {
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
		parts := strings.SplitN(s, "=", 2)
		if len(parts) != 2 {
			return cfg, fmt.Errorf("line %d: expected key = value", line)
		}
		if err := cfg.set(strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])); err != nil {
			return cfg, fmt.Errorf("line %d: %w", line, err)
		}
	}
	return cfg, scanner.Err()
}

func (c *Config) set(key, value string) error {
	switch key {
	case "port":
		if _, err := strconv.Atoi(value); err != nil {
			return fmt.Errorf("port %q", value)
		}
		c.Port = value
	case "broker_addr":
		c.BrokerAddr = value
	case "dial_timeout_ms":
		ms, err := strconv.Atoi(value)
		if err != nil || ms <= 0 {
			return fmt.Errorf("dial_timeout_ms %q", value)
		}
		c.DialTimeout = time.Duration(ms) * time.Millisecond
	default:
		return fmt.Errorf("unknown key %q", key)
	}
	return nil
}

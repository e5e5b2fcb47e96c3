package main

import (
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/zucenko/parchis/client"
)

// Load reads parchis.cfg from the working directory, or the file named by
// PARCHIS_CONFIG, and configures logging from it.
func Load() (client.Config, error) {
	path := client.ConfigFile
	if p := os.Getenv("PARCHIS_CONFIG"); p != "" {
		path = p
	}
	cfg, err := client.LoadConfig(path)
	if err != nil {
		return cfg, err
	}
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	log.SetLevel(cfg.LogLevel)
	log.Infof("Load %s server:%s player:%q", path, cfg.ServerURL, cfg.PlayerName)
	return cfg, nil
}

package main

import (
	"net/http"
	"os"

	"github.com/matryer/way"
	log "github.com/sirupsen/logrus"

	"github.com/zucenko/parchis/server"
)

type Server struct {
	router *way.Router
	Relay  *server.Relay
}

func main() {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	if lvl, err := log.ParseLevel(os.Getenv("LOG_LEVEL")); err == nil {
		log.SetLevel(lvl)
	}

	cfg, err := server.Load(server.ConfigFile)
	if err != nil {
		log.Fatalf("relay config: %v", err)
	}
	s := Server{
		Relay: server.NewRelay(cfg),
	}
	go s.Relay.Loop()
	s.routes()
	log.Infof("relay listening on :%s", cfg.Port)
	log.Fatalln(http.ListenAndServe(":"+cfg.Port, s.router))
}

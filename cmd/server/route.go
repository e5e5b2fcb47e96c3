package main

import (
	"github.com/matryer/way"
)

const URI_WS = "/play"
const URI_HEALTH = "/health"

func (s *Server) routes() {
	s.router = way.NewRouter()
	s.router.HandleFunc("GET", URI_WS, s.Relay.HandleHttpCall())
	s.router.HandleFunc("GET", URI_HEALTH, s.Relay.HandleHealth())
}
